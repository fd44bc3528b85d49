package rnafold

import "github.com/wagiedev/rnafold-go/internal/errors"

// Re-export error types from internal package

// RNAFoldError is the base interface for all fold errors.
type RNAFoldError = errors.RNAFoldError

// ErrorKind identifies a member of the RNAFoldError family.
type ErrorKind = errors.Kind

// Error kinds.
const (
	KindInvalidSequence = errors.KindInvalidSequence
	KindProcessStart    = errors.KindProcessStart
	KindProcess         = errors.KindProcess
	KindMalformedOutput = errors.KindMalformedOutput
	KindEnergyParse     = errors.KindEnergyParse
)

// InvalidSequenceError indicates the input was not an RNA sequence.
type InvalidSequenceError = errors.InvalidSequenceError

// ProcessStartError indicates RNAfold could not be launched.
type ProcessStartError = errors.ProcessStartError

// ProcessError indicates RNAfold exited with a non-zero status.
type ProcessError = errors.ProcessError

// MalformedOutputError indicates no structure line was found in the output.
type MalformedOutputError = errors.MalformedOutputError

// EnergyParseError indicates no free energy could be read.
type EnergyParseError = errors.EnergyParseError

// Re-export sentinel errors from internal package.
var (
	// ErrEmptySequence indicates the sequence was empty.
	ErrEmptySequence = errors.ErrEmptySequence

	// ErrAbsentSequence indicates no sequence value was supplied.
	ErrAbsentSequence = errors.ErrAbsentSequence

	// ErrNotString indicates a non-string sequence value.
	ErrNotString = errors.ErrNotString

	// ErrInvalidNucleotide indicates a character outside A, U, G, C.
	ErrInvalidNucleotide = errors.ErrInvalidNucleotide
)

// KindOf returns the ErrorKind of err, or 0 if err is not an RNAFoldError.
func KindOf(err error) ErrorKind {
	return errors.KindOf(err)
}
