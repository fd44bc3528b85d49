package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	inputLines = "lines"
	inputFasta = "fasta"
	inputJSONL = "jsonl"
)

func validInput(s string) bool {
	return s == inputLines || s == inputFasta || s == inputJSONL
}

// record is one sequence to fold. Value is the sequence as read; it may be
// nil or a non-string when it came from JSON.
type record struct {
	ID    string
	Value any
}

// readRecords parses r according to format.
func readRecords(r io.Reader, format string) ([]record, error) {
	switch format {
	case inputLines:
		return readLines(r)
	case inputFasta:
		return readFasta(r)
	case inputJSONL:
		return readJSONL(r)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// readLines treats every non-blank line as one sequence.
func readLines(r io.Reader) ([]record, error) {
	var recs []record

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		recs = append(recs, record{Value: line})
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading sequences: %w", err)
	}

	return recs, nil
}

// readFasta reads ">header" records, concatenating their sequence lines.
func readFasta(r io.Reader) ([]record, error) {
	var (
		recs    []record
		current *record
		seq     strings.Builder
	)

	flush := func() {
		if current != nil {
			current.Value = seq.String()
			recs = append(recs, *current)
		}

		seq.Reset()
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		switch {
		case line == "" || strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, ">"):
			flush()

			current = &record{ID: strings.TrimSpace(line[1:])}
		case current == nil:
			return nil, fmt.Errorf("fasta: sequence data before first header")
		default:
			seq.WriteString(line)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading fasta: %w", err)
	}

	flush()

	return recs, nil
}

// readJSONL reads {"id": ..., "sequence": ...} objects, one per line.
func readJSONL(r io.Reader) ([]record, error) {
	var recs []record

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0

	for sc.Scan() {
		lineNo++

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var in struct {
			ID       string `json:"id"`
			Sequence any    `json:"sequence"`
		}

		if err := json.Unmarshal([]byte(line), &in); err != nil {
			return nil, fmt.Errorf("jsonl line %d: %w", lineNo, err)
		}

		recs = append(recs, record{ID: in.ID, Value: in.Sequence})
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading jsonl: %w", err)
	}

	return recs, nil
}
