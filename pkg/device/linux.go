//go:build linux

package device

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/bgrewell/disc-kit/pkg/consts"
	"github.com/bgrewell/disc-kit/pkg/logging"
	"github.com/bgrewell/disc-kit/pkg/msf"
)

// Linux CDROM ioctl interface, from linux/cdrom.h.
const (
	cdromReadTocHdr   = 0x5305 // CDROMREADTOCHDR
	cdromReadTocEntry = 0x5306 // CDROMREADTOCENTRY
	cdromReadRaw      = 0x5314 // CDROMREADRAW

	addressFormatMSF = 0x02 // CDROM_MSF
)

// tocHeader mirrors struct cdrom_tochdr.
type tocHeader struct {
	First uint8
	Last  uint8
}

// tocEntry mirrors struct cdrom_tocentry with the MSF address union
// member. AdrCtrl packs the ADR field in the low nibble and the control
// bits in the high nibble.
type tocEntry struct {
	Track    uint8
	AdrCtrl  uint8
	Format   uint8
	_        uint8
	Minute   uint8
	Second   uint8
	Frame    uint8
	_        uint8
	DataMode uint8
	_        [3]uint8
}

// msfRange mirrors struct cdrom_msf: a half-open [start, end) range of
// disc time addresses for a raw read request.
type msfRange struct {
	StartMinute uint8
	StartSecond uint8
	StartFrame  uint8
	EndMinute   uint8
	EndSecond   uint8
	EndFrame    uint8
}

// Drive is an exclusively owned handle to a CD-ROM block device. It
// serves the TOC source and raw sector reader capabilities through
// strictly sequential blocking ioctls. Drive is not safe for concurrent
// use; the inspection flow is single threaded.
type Drive struct {
	path string
	fd   int
	log  *logging.Logger
}

// OpenDrive opens the CD-ROM block device at path. The device is opened
// read-only and non-blocking so the TOC can be queried without waiting
// for the drive to spin up.
func OpenDrive(path string, log *logging.Logger) (*Drive, error) {
	if log == nil {
		log = logging.DefaultLogger()
	}
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, &OpenError{Device: path, Err: err}
	}
	log.Debug("opened cd-rom device", "path", path, "fd", fd)
	return &Drive{path: path, fd: fd, log: log}, nil
}

func (d *Drive) ioctl(request uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), request, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// TrackRange queries the TOC header for the first and last track number.
func (d *Drive) TrackRange() (int, int, error) {
	var hdr tocHeader
	if err := d.ioctl(cdromReadTocHdr, unsafe.Pointer(&hdr)); err != nil {
		return 0, 0, fmt.Errorf("CDROMREADTOCHDR: %w", err)
	}
	return int(hdr.First), int(hdr.Last), nil
}

// TrackAddress queries the starting time code and control bits of one
// track.
func (d *Drive) TrackAddress(track int) (msf.TimeCode, byte, error) {
	return d.readTocEntry(uint8(track))
}

// LeadoutAddress queries the lead-out position via the sentinel track.
func (d *Drive) LeadoutAddress() (msf.TimeCode, byte, error) {
	return d.readTocEntry(consts.LEADOUT_TRACK)
}

func (d *Drive) readTocEntry(track uint8) (msf.TimeCode, byte, error) {
	entry := tocEntry{Track: track, Format: addressFormatMSF}
	if err := d.ioctl(cdromReadTocEntry, unsafe.Pointer(&entry)); err != nil {
		return msf.TimeCode{}, 0, fmt.Errorf("CDROMREADTOCENTRY: %w", err)
	}
	tc := msf.TimeCode{Minute: entry.Minute, Second: entry.Second, Frame: entry.Frame}
	return tc, entry.AdrCtrl >> 4, nil
}

// ReadRawSector reads one raw 2352-byte sector at the given absolute
// sector address.
//
// The kernel interface expects the MSF range request at the head of the
// very buffer it then fills with sector data. The request is built as
// its own value and copied into a freshly allocated output buffer, so
// request and response never alias in this API.
func (d *Drive) ReadRawSector(sector int32) ([]byte, error) {
	start := msf.FromSector(sector)
	end := msf.FromSector(sector + 1)
	req := msfRange{
		StartMinute: start.Minute,
		StartSecond: start.Second,
		StartFrame:  start.Frame,
		EndMinute:   end.Minute,
		EndSecond:   end.Second,
		EndFrame:    end.Frame,
	}

	buf := make([]byte, consts.RAW_SECTOR_SIZE)
	*(*msfRange)(unsafe.Pointer(&buf[0])) = req

	if err := d.ioctl(cdromReadRaw, unsafe.Pointer(&buf[0])); err != nil {
		return nil, fmt.Errorf("CDROMREADRAW sector %d: %w", sector, err)
	}
	return buf, nil
}

// Close releases the device handle. It is safe to call more than once.
func (d *Drive) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	if err != nil {
		return fmt.Errorf("device: close %s: %w", d.path, err)
	}
	return nil
}

// IsBlockDevice reports whether path refers to a block device such as
// /dev/sr0, as opposed to a regular file holding a disc image.
func IsBlockDevice(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFBLK
}
