// Package config provides configuration types for the RNAfold wrapper.
package config

import (
	"log/slog"

	"github.com/wagiedev/rnafold-go/internal/subprocess"
)

// Options configures how folds are run. The RNAfold command line itself is
// fixed and cannot be configured.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Stderr is called with each line RNAfold writes to stderr.
	// The full stderr text is captured regardless.
	Stderr func(string)

	// Launcher starts the RNAfold process.
	// If nil, RNAfold is located on PATH and run as an OS process.
	Launcher subprocess.Launcher

	// Concurrency bounds how many RNAfold processes a batch runs at once.
	// Values below 1 mean runtime.NumCPU().
	Concurrency int
}
