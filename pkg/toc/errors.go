package toc

import (
	"errors"
	"fmt"
)

// ErrNoTracks is returned when the TOC header reports an empty or
// impossible track range. A header with first > last is treated as a
// corrupt TOC rather than an empty disc.
var ErrNoTracks = errors.New("toc: no tracks on disc")

// ErrNegativeLength is returned when differencing start sectors yields
// a negative track length, which indicates a corrupt or unreadable TOC.
// Lengths are never clamped.
var ErrNegativeLength = errors.New("toc: negative track length")

// TocError reports a failed TOC query. Track is the failing track
// number, or zero when the header query itself failed. Any TocError
// aborts acquisition for the whole disc.
type TocError struct {
	Track int
	Err   error
}

func (e *TocError) Error() string {
	if e.Track == 0 {
		return fmt.Sprintf("toc: %v", e.Err)
	}
	return fmt.Sprintf("toc: track %d: %v", e.Track, e.Err)
}

func (e *TocError) Unwrap() error {
	return e.Err
}

// LeadoutError reports a failed leadout query. Without the leadout the
// final track's length cannot be derived, so it is fatal to acquisition.
type LeadoutError struct {
	Err error
}

func (e *LeadoutError) Error() string {
	return fmt.Sprintf("toc: leadout: %v", e.Err)
}

func (e *LeadoutError) Unwrap() error {
	return e.Err
}
