package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bgrewell/usage"
	"github.com/theckman/yacspin"
	"golang.org/x/term"

	disc "github.com/bgrewell/disc-kit"
	"github.com/bgrewell/disc-kit/pkg/device"
	"github.com/bgrewell/disc-kit/pkg/logging"
	"github.com/bgrewell/disc-kit/pkg/options"
	"github.com/bgrewell/disc-kit/pkg/report"
)

// initializeSpinner sets up and starts a scan spinner on stderr, so the
// JSON report on stdout stays clean.
func initializeSpinner() (*yacspin.Spinner, error) {
	settings := yacspin.Config{
		Writer:            os.Stderr,
		Frequency:         100 * time.Millisecond,
		ShowCursor:        false,
		CharSet:           yacspin.CharSets[14],
		Colors:            []string{"fgHiCyan"},
		StopColors:        []string{"fgHiGreen"},
		StopFailColors:    []string{"fgHiRed"},
		StopFailCharacter: "✗",
		StopCharacter:     "✓",
	}

	spinner, err := yacspin.New(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create spinner: %w", err)
	}
	if err := spinner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start spinner: %w", err)
	}
	spinner.Message(" reading table of contents")
	return spinner, nil
}

func main() {

	u := usage.NewUsage()
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Enable verbose (debug) logging", "", nil)
	trace := u.AddBooleanOption("vv", "trace", false, "Enable trace logging", "", nil)
	text := u.AddBooleanOption("t", "text", false, "Render a human-readable listing instead of JSON", "", nil)
	image := u.AddBooleanOption("i", "image", false, "Treat the path as a disc image file", "", nil)
	noProbe := u.AddBooleanOption("n", "no-classify", false, "Skip data track classification", "", nil)
	path := u.AddArgument(1, "device", "Path to the cd-rom device or disc image", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	// No device argument is not an error: wrapper scripts probe the tool
	// this way and expect a clean exit.
	if path == nil || *path == "" {
		u.PrintUsage()
		os.Exit(0)
	}

	opts := []options.Option{
		options.WithClassification(!*noProbe),
	}
	logEnabled := *verbose || *trace
	if logEnabled {
		level := logging.LEVEL_DEBUG
		if *trace {
			level = logging.LEVEL_TRACE
		}
		useColor := term.IsTerminal(int(os.Stderr.Fd()))
		opts = append(opts, options.WithLogger(logging.NewConsoleLogger(os.Stderr, level, useColor)))
	}

	// The spinner and the log output share stderr; only one runs.
	var spinner *yacspin.Spinner
	if !logEnabled && term.IsTerminal(int(os.Stderr.Fd())) {
		spinner, _ = initializeSpinner()
	}

	var res *disc.Result
	var err error
	if *image || !device.IsBlockDevice(*path) {
		res, err = disc.InspectImage(*path, opts...)
	} else {
		res, err = disc.InspectDevice(*path, opts...)
	}

	if err != nil {
		if spinner != nil {
			spinner.StopFailMessage(fmt.Sprintf(" %v", err))
			spinner.StopFail()
		} else {
			fmt.Fprintf(os.Stderr, "cdinfo: %v\n", err)
		}
		os.Exit(1)
	}

	if spinner != nil {
		spinner.StopMessage(fmt.Sprintf(" scanned %d track(s)", res.Report.TrackCount))
		spinner.Stop()
	}

	// Per-track read failures are diagnostics only: the report is still
	// complete, just without mode fields for the affected tracks.
	for _, readErr := range res.ReadErrors {
		fmt.Fprintf(os.Stderr, "cdinfo: %v\n", readErr)
	}

	if *text {
		err = report.WriteText(os.Stdout, res.Toc)
	} else {
		err = res.Report.WriteJSON(os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "cdinfo: %v\n", err)
		os.Exit(1)
	}
}
