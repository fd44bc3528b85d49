// Package report parses the free-text report RNAfold prints on stdout.
//
// The layout of the report varies between RNAfold releases, so the parser
// never relies on fixed line numbers. It looks for the first line made only
// of dot-bracket characters and reads the free energy from the line after it.
package report
