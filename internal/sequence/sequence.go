// Package sequence validates and canonicalizes RNA sequences.
//
// The sequence is later written verbatim to RNAfold's stdin, so rejecting
// everything outside A, U, G, C here is what keeps the tool's own batch
// sentinel, line breaks and shell metacharacters out of the data stream.
package sequence

import (
	"unicode"

	"github.com/wagiedev/rnafold-go/internal/errors"
)

// Sequence is a validated, uppercase RNA sequence.
type Sequence string

// Parse validates raw and returns its uppercase canonical form.
func Parse(raw string) (Sequence, error) {
	if raw == "" {
		return "", &errors.InvalidSequenceError{Err: errors.ErrEmptySequence}
	}

	out := make([]byte, 0, len(raw))

	pos := 0
	for _, r := range raw {
		pos++

		switch unicode.ToUpper(r) {
		case 'A', 'U', 'G', 'C':
			out = append(out, byte(unicode.ToUpper(r)))
		default:
			return "", &errors.InvalidSequenceError{
				Position: pos,
				Char:     r,
				Err:      errors.ErrInvalidNucleotide,
			}
		}
	}

	return Sequence(out), nil
}

// FromValue validates a dynamically typed value, such as a field decoded
// from JSON. A nil value is absent; anything other than a string is rejected.
func FromValue(v any) (Sequence, error) {
	switch s := v.(type) {
	case nil:
		return "", &errors.InvalidSequenceError{Err: errors.ErrAbsentSequence}
	case string:
		return Parse(s)
	case *string:
		if s == nil {
			return "", &errors.InvalidSequenceError{Err: errors.ErrAbsentSequence}
		}

		return Parse(*s)
	default:
		return "", &errors.InvalidSequenceError{Err: errors.ErrNotString}
	}
}

// Len returns the number of bases.
func (s Sequence) Len() int { return len(s) }

func (s Sequence) String() string { return string(s) }

// Short renders at most n bases, marking truncation with "...".
func (s Sequence) Short(n int) string {
	if len(s) <= n {
		return string(s)
	}

	return string(s[:n]) + "..."
}
