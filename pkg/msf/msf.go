// Package msf implements the minute:second:frame addressing scheme used
// by CD-ROM hardware and its conversion to the linear sector space.
package msf

import (
	"fmt"

	"github.com/bgrewell/disc-kit/pkg/consts"
)

// TimeCode is a disc time address. Frame is a 1/75th second subdivision,
// so Frame is always in [0, 75) and Second in [0, 60). TimeCodes are
// immutable values once read from the device.
type TimeCode struct {
	Minute uint8
	Second uint8
	Frame  uint8
}

// Sector converts the time code to an absolute sector number. The
// conversion is exact; one frame of disc time is one sector.
func (t TimeCode) Sector() int32 {
	return int32(t.Minute)*consts.SECONDS_PER_MINUTE*consts.FRAMES_PER_SECOND +
		int32(t.Second)*consts.FRAMES_PER_SECOND +
		int32(t.Frame)
}

// FromSector converts an absolute sector number to a time code. It is
// the inverse of [TimeCode.Sector] for every non-negative sector below
// the maximum representable disc time.
func FromSector(sector int32) TimeCode {
	return TimeCode{
		Minute: uint8(sector / consts.FRAMES_PER_SECOND / consts.SECONDS_PER_MINUTE),
		Second: uint8((sector / consts.FRAMES_PER_SECOND) % consts.SECONDS_PER_MINUTE),
		Frame:  uint8(sector % consts.FRAMES_PER_SECOND),
	}
}

// String renders the time code in the conventional MM:SS:FF form.
func (t TimeCode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Minute, t.Second, t.Frame)
}
