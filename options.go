package rnafold

import (
	"log/slog"

	"github.com/wagiedev/rnafold-go/internal/config"
)

// Options configures runners and batches.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to a fresh Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithStderr sets a callback receiving each RNAfold stderr line.
func WithStderr(fn func(string)) Option {
	return func(o *Options) {
		o.Stderr = fn
	}
}

// WithLauncher replaces how the RNAfold process is started, typically with
// a fake in tests. The command line passed to the launcher stays fixed.
func WithLauncher(l Launcher) Option {
	return func(o *Options) {
		o.Launcher = l
	}
}

// WithConcurrency bounds the number of RNAfold processes FoldAll runs at
// once.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

// getLoggerWithComponent returns a logger with the component field set.
func getLoggerWithComponent(options *Options, component string) *slog.Logger {
	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	return log.With("component", component)
}
