package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which member of the error family an error belongs to.
type Kind int

const (
	// KindInvalidSequence is reported at construction time for bad input.
	KindInvalidSequence Kind = iota + 1
	// KindProcessStart is reported when RNAfold could not be launched.
	KindProcessStart
	// KindProcess is reported when RNAfold exited non-zero.
	KindProcess
	// KindMalformedOutput is reported when no structure line was found.
	KindMalformedOutput
	// KindEnergyParse is reported when the energy line held no number.
	KindEnergyParse
)

func (k Kind) String() string {
	switch k {
	case KindInvalidSequence:
		return "InvalidSequence"
	case KindProcessStart:
		return "ProcessStartFailure"
	case KindProcess:
		return "ProcessError"
	case KindMalformedOutput:
		return "MalformedOutput"
	case KindEnergyParse:
		return "EnergyParseError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RNAFoldError is the base interface for all errors returned by a fold.
type RNAFoldError interface {
	error
	Kind() Kind
	IsRNAFoldError() bool
}

// Compile-time verification that all error types implement RNAFoldError.
var (
	_ RNAFoldError = (*InvalidSequenceError)(nil)
	_ RNAFoldError = (*ProcessStartError)(nil)
	_ RNAFoldError = (*ProcessError)(nil)
	_ RNAFoldError = (*MalformedOutputError)(nil)
	_ RNAFoldError = (*EnergyParseError)(nil)
)

// Sentinel causes wrapped by InvalidSequenceError.
var (
	// ErrEmptySequence indicates the sequence was empty.
	ErrEmptySequence = errors.New("sequence must be a non-empty string")

	// ErrAbsentSequence indicates no sequence value was supplied at all.
	ErrAbsentSequence = errors.New("sequence is absent")

	// ErrNotString indicates the sequence value was not a string.
	ErrNotString = errors.New("sequence must be a string")

	// ErrInvalidNucleotide indicates a character outside A, U, G, C.
	ErrInvalidNucleotide = errors.New("invalid nucleotides in sequence: only A, U, G, C allowed")
)

// UnknownStderr replaces empty stderr text in a ProcessError.
const UnknownStderr = "unknown error"

// KindOf returns the Kind of err if it belongs to the family, or 0.
func KindOf(err error) Kind {
	if e, ok := errors.AsType[RNAFoldError](err); ok {
		return e.Kind()
	}

	return 0
}

// InvalidSequenceError indicates the input was not an RNA sequence.
type InvalidSequenceError struct {
	// Position is the 1-based index of the offending rune, or 0.
	Position int
	Char     rune
	Err      error
}

func (e *InvalidSequenceError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("invalid sequence: %v (got %q at %d)", e.Err, e.Char, e.Position)
	}

	return fmt.Sprintf("invalid sequence: %v", e.Err)
}

func (e *InvalidSequenceError) Unwrap() error { return e.Err }

// Kind implements RNAFoldError.
func (e *InvalidSequenceError) Kind() Kind { return KindInvalidSequence }

// IsRNAFoldError implements RNAFoldError.
func (e *InvalidSequenceError) IsRNAFoldError() bool { return true }

// ProcessStartError indicates the RNAfold process could not be launched.
type ProcessStartError struct {
	Command string
	// SearchedPaths is set when the binary was not found at all.
	SearchedPaths []string
	Err           error
}

func (e *ProcessStartError) Error() string {
	if len(e.SearchedPaths) > 0 {
		return fmt.Sprintf("failed to start %s: not found in: %v", e.Command, e.SearchedPaths)
	}

	return fmt.Sprintf("failed to start %s: %v", e.Command, e.Err)
}

func (e *ProcessStartError) Unwrap() error { return e.Err }

// Kind implements RNAFoldError.
func (e *ProcessStartError) Kind() Kind { return KindProcessStart }

// IsRNAFoldError implements RNAFoldError.
func (e *ProcessStartError) IsRNAFoldError() bool { return true }

// ProcessError indicates RNAfold ran but exited with a non-zero status.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		stderr = UnknownStderr
	}

	return fmt.Sprintf("RNAfold failed with return code %d: %s", e.ExitCode, stderr)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Kind implements RNAFoldError.
func (e *ProcessError) Kind() Kind { return KindProcess }

// IsRNAFoldError implements RNAFoldError.
func (e *ProcessError) IsRNAFoldError() bool { return true }

// MalformedOutputError indicates the output had no recognizable structure line.
// Output preserves the raw text that failed to parse.
type MalformedOutputError struct {
	Reason string
	Output string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("unexpected RNAfold output format (%s): %q", e.Reason, e.Output)
}

// Kind implements RNAFoldError.
func (e *MalformedOutputError) Kind() Kind { return KindMalformedOutput }

// IsRNAFoldError implements RNAFoldError.
func (e *MalformedOutputError) IsRNAFoldError() bool { return true }

// EnergyParseError indicates no free energy could be read from the energy line.
type EnergyParseError struct {
	Line string
	Err  error
}

func (e *EnergyParseError) Error() string {
	return fmt.Sprintf("could not parse MFE from %q: %v", e.Line, e.Err)
}

func (e *EnergyParseError) Unwrap() error { return e.Err }

// Kind implements RNAFoldError.
func (e *EnergyParseError) Kind() Kind { return KindEnergyParse }

// IsRNAFoldError implements RNAFoldError.
func (e *EnergyParseError) IsRNAFoldError() bool { return true }
