package device

import (
	"fmt"
	"path/filepath"
	"strings"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"

	"github.com/bgrewell/disc-kit/pkg/consts"
	"github.com/bgrewell/disc-kit/pkg/logging"
	"github.com/bgrewell/disc-kit/pkg/msf"
)

// Image serves the device capabilities from a disc image file instead
// of a drive, which makes every core code path exercisable without
// hardware.
//
// Raw images (2352-byte sectors, typically .bin or .raw) are read
// through unchanged. Cooked ISO images (2048-byte payload sectors) are
// served by synthesizing Mode 1 sector framing around each payload, so
// the classifier sees the same layout a drive would return.
//
// The synthetic TOC is a single data track starting at sector 0 with
// the leadout at the end of the image.
type Image struct {
	path       string
	disk       *disk.Disk
	sectorSize int64
	sectors    int32
	log        *logging.Logger
}

// OpenImage opens a disc image file read-only. The sector layout is
// chosen by extension first (.bin/.raw are raw images), then by which
// sector size divides the file evenly.
func OpenImage(path string, log *logging.Logger) (*Image, error) {
	if log == nil {
		log = logging.DefaultLogger()
	}
	dsk, err := diskfs.Open(path, diskfs.WithOpenMode(diskfs.ReadOnly))
	if err != nil {
		return nil, &OpenError{Device: path, Err: err}
	}

	img := &Image{path: path, disk: dsk, log: log}
	img.sectorSize, err = detectSectorSize(path, dsk.Size)
	if err != nil {
		dsk.Close()
		return nil, &OpenError{Device: path, Err: err}
	}
	img.sectors = int32(dsk.Size / img.sectorSize)
	log.Debug("opened disc image",
		"path", path, "size", dsk.Size, "sectorSize", img.sectorSize, "sectors", img.sectors)
	return img, nil
}

func detectSectorSize(path string, size int64) (int64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin", ".raw":
		if size%consts.RAW_SECTOR_SIZE != 0 {
			return 0, fmt.Errorf("image size %d is not a multiple of %d", size, consts.RAW_SECTOR_SIZE)
		}
		return consts.RAW_SECTOR_SIZE, nil
	}
	if size%consts.COOKED_SECTOR_SIZE == 0 {
		return consts.COOKED_SECTOR_SIZE, nil
	}
	if size%consts.RAW_SECTOR_SIZE == 0 {
		return consts.RAW_SECTOR_SIZE, nil
	}
	return 0, fmt.Errorf("image size %d matches no known sector layout", size)
}

// TrackRange reports the synthetic single-track range.
func (i *Image) TrackRange() (int, int, error) {
	return 1, 1, nil
}

// TrackAddress reports the start of the single data track.
func (i *Image) TrackAddress(track int) (msf.TimeCode, byte, error) {
	if track != 1 {
		return msf.TimeCode{}, 0, fmt.Errorf("image has no track %d", track)
	}
	return msf.FromSector(0), consts.DATA_TRACK_CONTROL, nil
}

// LeadoutAddress reports the end of the image.
func (i *Image) LeadoutAddress() (msf.TimeCode, byte, error) {
	return msf.FromSector(i.sectors), consts.DATA_TRACK_CONTROL, nil
}

// ReadRawSector returns one raw 2352-byte sector. Cooked images get
// synthetic Mode 1 framing; raw images are passed through.
func (i *Image) ReadRawSector(sector int32) ([]byte, error) {
	if sector < 0 || sector >= i.sectors {
		return nil, fmt.Errorf("sector %d outside image (0-%d)", sector, i.sectors-1)
	}

	buf := make([]byte, consts.RAW_SECTOR_SIZE)
	if i.sectorSize == consts.RAW_SECTOR_SIZE {
		if _, err := i.disk.Backend.ReadAt(buf, int64(sector)*i.sectorSize); err != nil {
			return nil, fmt.Errorf("read sector %d: %w", sector, err)
		}
		return buf, nil
	}

	payload := buf[consts.MODE1_PAYLOAD_OFFSET : consts.MODE1_PAYLOAD_OFFSET+consts.COOKED_SECTOR_SIZE]
	if _, err := i.disk.Backend.ReadAt(payload, int64(sector)*i.sectorSize); err != nil {
		return nil, fmt.Errorf("read sector %d: %w", sector, err)
	}
	frameSector(buf, sector)
	return buf, nil
}

// frameSector writes Mode 1 sync and header bytes around a cooked
// payload: 12 sync bytes, the BCD-coded MSF address, then mode 1.
func frameSector(buf []byte, sector int32) {
	buf[0] = 0x00
	for i := 1; i <= 10; i++ {
		buf[i] = 0xFF
	}
	buf[11] = 0x00

	tc := msf.FromSector(sector)
	buf[12] = bcd(tc.Minute)
	buf[13] = bcd(tc.Second)
	buf[14] = bcd(tc.Frame)
	buf[consts.MODE_BYTE_OFFSET] = 1
}

func bcd(v uint8) uint8 {
	return (v/10)<<4 | v%10
}

// Close releases the image file.
func (i *Image) Close() error {
	return i.disk.Close()
}
