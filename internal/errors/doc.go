// Package errors defines error types for the RNAfold wrapper.
//
// Every failure a fold can produce is one of the concrete types in this
// package. They all implement RNAFoldError, so callers can catch the family
// with a single errors.As and branch on Kind. All types support unwrapping
// and can be checked using errors.Is, errors.As, and errors.AsType.
package errors
