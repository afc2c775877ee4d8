package classify

import (
	"fmt"
)

// SectorReadError reports a failed raw sector read while sampling a
// track. The failure is recoverable at the whole-disc level: the track
// still appears in the report, just without mode or signature fields.
type SectorReadError struct {
	Track  int
	Sector int32
	Err    error
}

func (e *SectorReadError) Error() string {
	return fmt.Sprintf("classify: track %d: read sector %d: %v", e.Track, e.Sector, e.Err)
}

func (e *SectorReadError) Unwrap() error {
	return e.Err
}
