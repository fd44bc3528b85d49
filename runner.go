package rnafold

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/rnafold-go/internal/cli"
	"github.com/wagiedev/rnafold-go/internal/report"
	"github.com/wagiedev/rnafold-go/internal/sequence"
	"github.com/wagiedev/rnafold-go/internal/subprocess"
)

// reprLength is how many bases String shows before truncating.
const reprLength = 20

// Runner folds one RNA sequence with RNAfold.
//
// A Runner holds no process between calls: every Fold starts one RNAfold
// process, feeds it the sequence, reads its report and reaps it before
// returning. A Runner is safe for concurrent use; concurrent folds run
// independent processes.
type Runner struct {
	seq     sequence.Sequence
	log     *slog.Logger
	options *Options
}

// New validates seq and returns a Runner for it.
//
// The sequence is case-insensitive and canonicalized to uppercase. New
// returns an InvalidSequenceError, without starting any process, if seq is
// empty or contains anything other than A, U, G and C.
func New(seq string, opts ...Option) (*Runner, error) {
	s, err := sequence.Parse(seq)
	if err != nil {
		return nil, err
	}

	return newRunner(s, applyOptions(opts)), nil
}

// NewFromValue is New for dynamically typed input such as decoded JSON.
// A nil value or a non-string value yields an InvalidSequenceError.
func NewFromValue(v any, opts ...Option) (*Runner, error) {
	s, err := sequence.FromValue(v)
	if err != nil {
		return nil, err
	}

	return newRunner(s, applyOptions(opts)), nil
}

// FoldCompound creates a Runner for seq. It is an alias of New.
func FoldCompound(seq string, opts ...Option) (*Runner, error) {
	return New(seq, opts...)
}

func newRunner(seq sequence.Sequence, options *Options) *Runner {
	return &Runner{
		seq:     seq,
		log:     getLoggerWithComponent(options, "runner"),
		options: options,
	}
}

// Sequence returns the canonical uppercase sequence.
func (r *Runner) Sequence() string { return r.seq.String() }

// Key returns the identity of this fold request.
func (r *Runner) Key() Key {
	return Key{Command: cli.CommandLine, Sequence: r.seq.String()}
}

// Equal reports whether r and other describe the same fold request.
func (r *Runner) Equal(other *Runner) bool {
	if r == nil || other == nil {
		return r == other
	}

	return r.Key() == other.Key()
}

func (r *Runner) String() string {
	return fmt.Sprintf("Runner(sequence=%q)", r.seq.Short(reprLength))
}

// FoldAsync starts a fold and returns immediately. The returned channel
// yields exactly one Outcome and is then closed.
//
// Cancelling ctx abandons the fold; the RNAfold process is still killed and
// reaped before the Outcome is delivered.
func (r *Runner) FoldAsync(ctx context.Context) <-chan Outcome {
	ch := make(chan Outcome, 1)

	go func() {
		defer close(ch)

		res, err := r.fold(ctx)
		ch <- Outcome{Sequence: r.seq.String(), Result: res, Err: err}
	}()

	return ch
}

// Fold runs RNAfold on the sequence and blocks until the result is ready.
//
// Errors are ProcessStartError, ProcessError, MalformedOutputError or
// EnergyParseError, or the context error if ctx ended first.
func (r *Runner) Fold(ctx context.Context) (FoldResult, error) {
	out := <-r.FoldAsync(ctx)

	return out.Result, out.Err
}

// MFE returns the minimum free energy structure and its energy.
func (r *Runner) MFE(ctx context.Context) (string, float64, error) {
	res, err := r.Fold(ctx)
	if err != nil {
		return "", 0, err
	}

	return res.Structure, res.Energy, nil
}

func (r *Runner) fold(ctx context.Context) (FoldResult, error) {
	log := r.log.With("fold_id", ulid.Make().String())

	if err := ctx.Err(); err != nil {
		return FoldResult{}, fmt.Errorf("fold not started: %w", err)
	}

	launcher := r.options.Launcher
	if launcher == nil {
		launcher = subprocess.NewExecLauncher(log)
	}

	log.Debug("Starting fold", "sequence", r.seq.Short(reprLength), "length", r.seq.Len())

	proc, err := launcher.Launch(ctx, cli.Args())
	if err != nil {
		log.Debug("Failed to launch RNAfold", "error", err)

		return FoldResult{}, err
	}

	out, err := subprocess.Exchange(ctx, log, proc, cli.BuildInput(r.seq), r.options.Stderr)
	if err != nil {
		return FoldResult{}, err
	}

	res, err := report.Parse(log, out.Stdout)
	if err != nil {
		return FoldResult{}, err
	}

	log.Debug("Fold complete", "structure", res.Structure, "energy", res.Energy)

	return res, nil
}
