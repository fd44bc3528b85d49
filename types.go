package rnafold

import (
	"github.com/wagiedev/rnafold-go/internal/cli"
	"github.com/wagiedev/rnafold-go/internal/report"
	"github.com/wagiedev/rnafold-go/internal/subprocess"
)

// FoldResult is a dot-bracket structure and its minimum free energy in
// kcal/mol.
type FoldResult = report.Result

// Launcher starts the RNAfold process.
type Launcher = subprocess.Launcher

// Process is a started RNAfold process as seen by a Launcher.
type Process = subprocess.Process

// VersionInfo describes the installed RNAfold.
type VersionInfo = cli.VersionInfo

// Command is the fixed RNAfold command line.
var Command = cli.CommandLine

// Key identifies a fold request. Two runners over the same command and
// sequence have equal keys; Key is comparable and can be used directly as a
// map key.
type Key struct {
	Command  string
	Sequence string
}

// Outcome is the result of one fold request.
type Outcome struct {
	// Sequence is the canonical sequence, or the raw input if it was invalid.
	Sequence string
	Result   FoldResult
	Err      error
}
