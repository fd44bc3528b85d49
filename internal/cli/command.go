package cli

import (
	"strings"

	"github.com/wagiedev/rnafold-go/internal/sequence"
)

const (
	// ToolName is the RNAfold executable name.
	ToolName = "RNAfold"

	// Sentinel terminates RNAfold's batch input loop.
	Sentinel = "@"
)

// toolArgs are passed on every invocation. Nothing sequence-derived ever
// appears here.
var toolArgs = []string{"--noPS"}

// CommandLine is the fixed invocation, used as part of a runner's identity.
var CommandLine = strings.Join(append([]string{ToolName}, toolArgs...), " ")

// Command represents the RNAfold process to execute.
type Command struct {
	// Path is the resolved executable path.
	Path string

	// Args are the command line arguments.
	Args []string
}

// Args returns a copy of the fixed fold arguments.
func Args() []string {
	return append([]string(nil), toolArgs...)
}

// FoldCommand returns the fold invocation for the executable at path.
func FoldCommand(path string) Command {
	return Command{Path: path, Args: Args()}
}

// String renders the command line.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// BuildInput returns the stdin payload for one fold: the sequence, a
// newline, the sentinel and a final newline.
func BuildInput(seq sequence.Sequence) []byte {
	var b strings.Builder

	b.Grow(seq.Len() + len(Sentinel) + 2)
	b.WriteString(seq.String())
	b.WriteByte('\n')
	b.WriteString(Sentinel)
	b.WriteByte('\n')

	return []byte(b.String())
}
