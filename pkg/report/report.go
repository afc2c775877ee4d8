// Package report renders the result of a disc inspection. The JSON
// shape is a compatibility contract: downstream ripping scripts parse
// it, so field names and nesting never change.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bgrewell/disc-kit/pkg/classify"
	"github.com/bgrewell/disc-kit/pkg/toc"
)

// TrackEntry is one track in the report. DataType is only present for
// data tracks whose sampled sector resolved to a known mode.
type TrackEntry struct {
	TrackType   string `json:"track_type"`
	FirstSector int32  `json:"first_sector"`
	SectorCount int32  `json:"sector_count"`
	DataType    string `json:"data_type,omitempty"`
}

// Report is the structured result of a whole-disc inspection.
type Report struct {
	TrackCount int          `json:"track_count"`
	Tracks     []TrackEntry `json:"tracks"`
}

// Build assembles the report from an acquired table of contents.
func Build(t *toc.Toc) *Report {
	r := &Report{
		TrackCount: t.TrackCount(),
		Tracks:     make([]TrackEntry, 0, t.TrackCount()),
	}
	for _, trk := range t.Tracks {
		entry := TrackEntry{
			TrackType:   trk.Kind.String(),
			FirstSector: trk.StartSector,
			SectorCount: trk.LengthSectors,
		}
		if trk.Kind == toc.Data && trk.Classification != nil &&
			trk.Classification.Mode != classify.ModeUnknown {
			entry.DataType = trk.Classification.Mode.String()
		}
		r.Tracks = append(r.Tracks, entry)
	}
	return r
}

// WriteJSON writes the indented JSON rendering of the report.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes a human-readable listing. Unlike the JSON rendering
// it draws on the full table of contents, including the MSF addresses
// and any filesystem identifiers captured during classification.
func WriteText(w io.Writer, t *toc.Toc) error {
	if _, err := fmt.Fprintf(w, "%d track(s), leadout at %s (sector %d)\n",
		t.TrackCount(), t.Leadout, t.LeadoutSector); err != nil {
		return err
	}
	for _, trk := range t.Tracks {
		line := fmt.Sprintf("track %2d  %s  %-5s  start %-7d length %-7d",
			trk.Number, trk.Start, trk.Kind, trk.StartSector, trk.LengthSectors)
		if c := trk.Classification; c != nil {
			if c.Mode != classify.ModeUnknown {
				line += "  " + c.Mode.String()
			}
			if c.ISO9660 {
				line += fmt.Sprintf("  iso9660 volume %q", c.VolumeID)
				if c.SystemID != "" {
					line += fmt.Sprintf(" system %q", c.SystemID)
				}
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
