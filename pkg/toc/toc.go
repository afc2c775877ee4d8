// Package toc acquires an optical disc's table of contents and derives
// per-track geometry in the linear sector space.
package toc

import (
	"fmt"

	"github.com/bgrewell/disc-kit/pkg/classify"
	"github.com/bgrewell/disc-kit/pkg/consts"
	"github.com/bgrewell/disc-kit/pkg/logging"
	"github.com/bgrewell/disc-kit/pkg/msf"
)

// Kind classifies a track as audio or data from its TOC control bits.
type Kind int

const (
	Audio Kind = iota
	Data
)

func (k Kind) String() string {
	if k == Data {
		return "data"
	}
	return "audio"
}

// Track is one entry of the table of contents. StartSector is derived
// from the Start time code; LengthSectors is derived by differencing
// consecutive start sectors and is never read from the device.
//
// Classification is filled in after acquisition for data tracks whose
// probe succeeded; it stays nil for audio tracks and failed probes.
type Track struct {
	Number         int
	Kind           Kind
	Start          msf.TimeCode
	StartSector    int32
	LengthSectors  int32
	Classification *classify.Classification
}

// Toc is the complete table of contents of a disc. Tracks are ordered
// by ascending number and cover the dense range [FirstTrack, LastTrack].
// The leadout marks the end of the last track and is not itself a track.
type Toc struct {
	FirstTrack    int
	LastTrack     int
	Tracks        []Track
	Leadout       msf.TimeCode
	LeadoutSector int32
}

// TrackCount returns the number of tracks on the disc.
func (t *Toc) TrackCount() int {
	return len(t.Tracks)
}

// Source is the device capability the acquirer consumes. TrackAddress
// and LeadoutAddress return the entry's time code together with its raw
// control bits.
type Source interface {
	TrackRange() (first, last int, err error)
	TrackAddress(track int) (msf.TimeCode, byte, error)
	LeadoutAddress() (msf.TimeCode, byte, error)
}

// Acquire queries src for the full table of contents.
//
// Start addresses for every track and the leadout are collected first;
// track lengths are derived afterwards by pairwise differencing, so no
// partial geometry is ever produced. Any failed query aborts the whole
// acquisition: partial TOCs are not a supported outcome.
func Acquire(src Source, log *logging.Logger) (*Toc, error) {
	if log == nil {
		log = logging.DefaultLogger()
	}

	first, last, err := src.TrackRange()
	if err != nil {
		return nil, &TocError{Err: fmt.Errorf("track range: %w", err)}
	}
	log.Debug("toc header", "first", first, "last", last)

	if first > last || first < 1 || last > consts.MAX_TRACKS {
		return nil, &TocError{Err: fmt.Errorf("%w: first %d, last %d", ErrNoTracks, first, last)}
	}

	toc := &Toc{
		FirstTrack: first,
		LastTrack:  last,
		Tracks:     make([]Track, 0, last-first+1),
	}

	for number := first; number <= last; number++ {
		tc, ctrl, err := src.TrackAddress(number)
		if err != nil {
			return nil, &TocError{Track: number, Err: err}
		}
		kind := Audio
		if ctrl&consts.DATA_TRACK_CONTROL != 0 {
			kind = Data
		}
		toc.Tracks = append(toc.Tracks, Track{
			Number:      number,
			Kind:        kind,
			Start:       tc,
			StartSector: tc.Sector(),
		})
		log.Trace("toc entry", "track", number, "start", tc.String(), "kind", kind.String())
	}

	leadout, _, err := src.LeadoutAddress()
	if err != nil {
		return nil, &LeadoutError{Err: err}
	}
	toc.Leadout = leadout
	toc.LeadoutSector = leadout.Sector()
	log.Debug("leadout", "start", leadout.String(), "sector", toc.LeadoutSector)

	// Second pass: each track runs up to the start of the next one, the
	// last up to the leadout.
	for i := range toc.Tracks {
		end := toc.LeadoutSector
		if i+1 < len(toc.Tracks) {
			end = toc.Tracks[i+1].StartSector
		}
		length := end - toc.Tracks[i].StartSector
		if length < 0 {
			return nil, &TocError{
				Track: toc.Tracks[i].Number,
				Err:   fmt.Errorf("%w: track %d spans %d sectors", ErrNegativeLength, toc.Tracks[i].Number, length),
			}
		}
		toc.Tracks[i].LengthSectors = length
	}

	return toc, nil
}
