// Package disc inspects an optical disc's table of contents, derives
// per-track geometry, samples each data track's leading sector to
// identify its encoding mode and filesystem signature, and produces a
// structured report.
package disc

import (
	"github.com/bgrewell/disc-kit/pkg/classify"
	"github.com/bgrewell/disc-kit/pkg/device"
	"github.com/bgrewell/disc-kit/pkg/logging"
	"github.com/bgrewell/disc-kit/pkg/options"
	"github.com/bgrewell/disc-kit/pkg/report"
	"github.com/bgrewell/disc-kit/pkg/toc"
)

// Device is the capability pair the inspector consumes: a table of
// contents source and a raw sector reader. Both backends in pkg/device
// implement it, as can any test double.
type Device interface {
	toc.Source
	classify.SectorReader
}

// Result couples the acquired table of contents with the report built
// from it. ReadErrors collects per-track sector read failures, which
// are recoverable: the affected tracks appear in the report without
// mode or signature information.
type Result struct {
	Toc        *toc.Toc
	Report     *report.Report
	ReadErrors []*classify.SectorReadError
}

// InspectDevice inspects the CD-ROM block device at path. The handle is
// released on every exit path, including after acquisition failures.
func InspectDevice(path string, opts ...options.Option) (*Result, error) {
	o := apply(opts)
	log := logging.NewLogger(o.Logger)

	drv, err := device.OpenDrive(path, log)
	if err != nil {
		return nil, err
	}
	defer drv.Close()

	return inspect(drv, o, log)
}

// InspectImage inspects a disc image file instead of a drive.
func InspectImage(path string, opts ...options.Option) (*Result, error) {
	o := apply(opts)
	log := logging.NewLogger(o.Logger)

	img, err := device.OpenImage(path, log)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	return inspect(img, o, log)
}

// Inspect runs the inspection over an already-open device. The caller
// keeps ownership of the handle.
func Inspect(dev Device, opts ...options.Option) (*Result, error) {
	o := apply(opts)
	return inspect(dev, o, logging.NewLogger(o.Logger))
}

func apply(opts []options.Option) options.Options {
	o := options.Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// inspect acquires the TOC (fatal on failure: partial reports are never
// produced), then samples each data track. Sector read failures are
// per-track and do not stop the scan.
func inspect(dev Device, o options.Options, log *logging.Logger) (*Result, error) {
	discToc, err := toc.Acquire(dev, log)
	if err != nil {
		return nil, err
	}
	log.Info("toc acquired", "tracks", discToc.TrackCount(), "leadout", discToc.LeadoutSector)

	res := &Result{Toc: discToc}
	if o.Classify {
		for i := range discToc.Tracks {
			trk := &discToc.Tracks[i]
			if trk.Kind != toc.Data {
				continue
			}
			c, err := classify.Probe(dev, trk.StartSector)
			if err != nil {
				readErr := &classify.SectorReadError{
					Track:  trk.Number,
					Sector: classify.ProbeSector(trk.StartSector),
					Err:    err,
				}
				log.Error(readErr, "track probe failed", "track", trk.Number)
				res.ReadErrors = append(res.ReadErrors, readErr)
				continue
			}
			trk.Classification = c
			log.Debug("track classified",
				"track", trk.Number, "mode", c.Mode.String(), "iso9660", c.ISO9660)
		}
	}

	res.Report = report.Build(discToc)
	return res, nil
}
