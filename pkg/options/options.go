package options

import (
	"github.com/go-logr/logr"
)

// Options represents the options for inspecting a disc.
type Options struct {
	// Classify controls whether data tracks are sampled for their sector
	// mode and filesystem signature after the TOC is acquired.
	Classify bool
	Logger   logr.Logger
}

// Option represents a function that modifies the Options.
type Option func(*Options)

// Default returns the options used when none are supplied: data tracks
// are classified and logging is discarded.
func Default() Options {
	return Options{
		Classify: true,
		Logger:   logr.Discard(),
	}
}

// WithClassification sets whether data tracks are sampled and classified.
// Disabling it limits the inspection to TOC queries only.
func WithClassification(enabled bool) Option {
	return func(o *Options) {
		o.Classify = enabled
	}
}

// WithLogger sets the Logger used during inspection.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
