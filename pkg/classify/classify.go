// Package classify samples one raw sector near the start of a data
// track to determine its low-level encoding mode and to test for an
// ISO9660 volume descriptor signature.
package classify

import (
	"fmt"
	"strings"

	"github.com/bgrewell/disc-kit/pkg/consts"
)

// Mode identifies the low-level encoding of a data sector.
type Mode int

const (
	ModeUnknown Mode = iota
	Mode1
	Mode2Form1
	Mode2Form2
)

// String renders the mode the way the report expects it.
func (m Mode) String() string {
	switch m {
	case Mode1:
		return "mode 1"
	case Mode2Form1:
		return "mode 2/form 1"
	case Mode2Form2:
		return "mode 2/form 2"
	default:
		return "unknown"
	}
}

// SectorReader is the raw read capability the classifier consumes. A
// successful read returns exactly consts.RAW_SECTOR_SIZE bytes.
type SectorReader interface {
	ReadRawSector(sector int32) ([]byte, error)
}

// Classification describes the sampled sector of a data track.
//
// SystemID and VolumeID are only populated when the ISO9660 signature
// matched; they are informational and never appear in the JSON report.
type Classification struct {
	Mode     Mode
	ISO9660  bool
	SystemID string
	VolumeID string
}

// ProbeSector returns the sector sampled for a data track beginning at
// start. The 16 sector offset skips the track's system area; it is a
// protocol fact of the data track layout, not a tunable.
func ProbeSector(start int32) int32 {
	return start + consts.PROBE_OFFSET_SECTORS
}

// Probe reads one raw sector near the start of a data track and
// classifies it.
//
// The mode field at byte 0x0F selects the user data payload offset.
// A mode byte of zero leaves the mode unknown: no payload offset is
// defined in that case, so the signature test is skipped entirely.
func Probe(r SectorReader, startSector int32) (*Classification, error) {
	raw, err := r.ReadRawSector(ProbeSector(startSector))
	if err != nil {
		return nil, err
	}
	if len(raw) < consts.RAW_SECTOR_SIZE {
		return nil, fmt.Errorf("classify: short sector read: %d bytes", len(raw))
	}

	c := &Classification{}
	var payload int
	switch mode := raw[consts.MODE_BYTE_OFFSET]; {
	case mode == 1:
		c.Mode = Mode1
		payload = consts.MODE1_PAYLOAD_OFFSET
	case mode != 0:
		if raw[consts.SUBMODE_BYTE_OFFSET]&consts.SUBMODE_FORM2_BIT != 0 {
			c.Mode = Mode2Form2
		} else {
			c.Mode = Mode2Form1
		}
		payload = consts.MODE2_PAYLOAD_OFFSET
	default:
		return c, nil
	}

	// The volume descriptor begins at the payload; its standard
	// identifier occupies bytes 1-5.
	sig := raw[payload+1 : payload+1+len(consts.ISO9660_STD_IDENTIFIER)]
	if string(sig) != consts.ISO9660_STD_IDENTIFIER {
		return c, nil
	}
	c.ISO9660 = true
	c.SystemID = identifier(raw, payload+consts.ISO9660_SYSTEM_ID_OFFSET)
	c.VolumeID = identifier(raw, payload+consts.ISO9660_VOLUME_ID_OFFSET)
	return c, nil
}

// identifier extracts a fixed-width, space-padded ASCII identifier field.
func identifier(raw []byte, offset int) string {
	field := raw[offset : offset+consts.ISO9660_IDENTIFIER_SIZE]
	return strings.TrimRight(string(field), " \x00")
}
