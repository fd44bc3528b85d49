package report

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/wagiedev/rnafold-go/internal/errors"
)

// minLines is the fewest report lines that can hold a fold result.
const minLines = 3

// EnergyMethod records which extraction strategy produced the energy.
type EnergyMethod int

const (
	// EnergyLabelled matched "minimum free energy = <v> kcal/mol".
	EnergyLabelled EnergyMethod = iota + 1
	// EnergyParenthesized matched "( <v>)".
	EnergyParenthesized
	// EnergyFallback took the first signed decimal in the line.
	EnergyFallback
)

func (m EnergyMethod) String() string {
	switch m {
	case EnergyLabelled:
		return "labelled"
	case EnergyParenthesized:
		return "parenthesized"
	case EnergyFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

var (
	labelledEnergy      = regexp.MustCompile(`minimum free energy\s*=\s*([-+]?\d+(?:\.\d+)?)\s*kcal/mol`)
	parenthesizedEnergy = regexp.MustCompile(`\(\s*([-+]?\d+(?:\.\d+)?)\s*\)`)
	anyDecimal          = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

	errNoNumber = stderrors.New("no numeric value found")
)

// Result is a predicted secondary structure and its free energy.
type Result struct {
	// Structure is the dot-bracket structure.
	Structure string `json:"structure"`
	// Energy is the minimum free energy in kcal/mol.
	Energy float64 `json:"energy"`
}

// Matches reports whether the structure covers exactly len(seq) bases.
// Parse does not enforce this.
func (r Result) Matches(seq string) bool {
	return len(r.Structure) == len(seq)
}

func (r Result) String() string {
	return fmt.Sprintf("%s (%6.2f)", r.Structure, r.Energy)
}

// Parse extracts the structure and energy from RNAfold stdout.
//
// Returns MalformedOutputError if the report has fewer than three lines or
// no dot-bracket line followed by another line, and EnergyParseError if the
// line after the structure holds no number.
func Parse(log *slog.Logger, stdout string) (Result, error) {
	log = log.With("component", "report_parser")

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) < minLines {
		log.Debug("Report too short", "lines", len(lines))

		return Result{}, &errors.MalformedOutputError{
			Reason: fmt.Sprintf("fewer than %d lines", minLines),
			Output: stdout,
		}
	}

	idx := structureLine(lines)
	if idx < 0 || idx+1 >= len(lines) {
		log.Debug("No structure line found", "lines", len(lines))

		return Result{}, &errors.MalformedOutputError{
			Reason: "no structure line",
			Output: stdout,
		}
	}

	structure := strings.TrimSpace(lines[idx])
	energyLine := strings.TrimSpace(lines[idx+1])

	energy, method, err := ParseEnergy(energyLine)
	if err != nil {
		log.Debug("No energy on line after structure", "line", energyLine)

		return Result{}, err
	}

	if method == EnergyFallback {
		log.Debug("Energy taken from first decimal in line", "line", energyLine, "energy", energy)
	}

	return Result{Structure: structure, Energy: energy}, nil
}

// ParseEnergy reads a free energy from a single report line, trying the
// labelled form, then the parenthesized form, then any signed decimal.
func ParseEnergy(line string) (float64, EnergyMethod, error) {
	strategies := []struct {
		method EnergyMethod
		re     *regexp.Regexp
		group  int
	}{
		{EnergyLabelled, labelledEnergy, 1},
		{EnergyParenthesized, parenthesizedEnergy, 1},
		{EnergyFallback, anyDecimal, 0},
	}

	for _, s := range strategies {
		m := s.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		v, err := strconv.ParseFloat(m[s.group], 64)
		if err != nil {
			continue
		}

		return v, s.method, nil
	}

	return 0, 0, &errors.EnergyParseError{Line: line, Err: errNoNumber}
}

// structureLine returns the index of the first dot-bracket line, or -1.
func structureLine(lines []string) int {
	for i, line := range lines {
		if isDotBracket(strings.TrimSpace(line)) {
			return i
		}
	}

	return -1
}

func isDotBracket(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c != '(' && c != ')' && c != '.' {
			return false
		}
	}

	return true
}
