//go:build !linux

package device

import (
	"github.com/bgrewell/disc-kit/pkg/logging"
	"github.com/bgrewell/disc-kit/pkg/msf"
)

// Drive is a placeholder on platforms without CD-ROM ioctl support.
type Drive struct{}

// OpenDrive always fails off Linux; use OpenImage with a disc image
// file instead.
func OpenDrive(path string, log *logging.Logger) (*Drive, error) {
	return nil, &OpenError{Device: path, Err: ErrUnsupported}
}

func (d *Drive) TrackRange() (int, int, error) {
	return 0, 0, ErrUnsupported
}

func (d *Drive) TrackAddress(track int) (msf.TimeCode, byte, error) {
	return msf.TimeCode{}, 0, ErrUnsupported
}

func (d *Drive) LeadoutAddress() (msf.TimeCode, byte, error) {
	return msf.TimeCode{}, 0, ErrUnsupported
}

func (d *Drive) ReadRawSector(sector int32) ([]byte, error) {
	return nil, ErrUnsupported
}

func (d *Drive) Close() error {
	return nil
}

// IsBlockDevice always reports false off Linux.
func IsBlockDevice(path string) bool {
	return false
}
