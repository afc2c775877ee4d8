// Package device implements the capabilities the inspector core
// consumes: a table of contents source and a raw sector reader, backed
// either by a CD-ROM block device or by a disc image file.
package device

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when CD-ROM drive access is not available
// on the current platform. Disc image files work everywhere.
var ErrUnsupported = errors.New("device: cd-rom drive access is only supported on linux")

// OpenError reports a failed exclusive acquisition of a device or image.
// It is fatal to the whole inspection: nothing can proceed without a
// handle.
type OpenError struct {
	Device string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("device: open %s: %v", e.Device, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
