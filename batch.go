package rnafold

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FoldAll folds every sequence and returns one Outcome per input, in input
// order. Invalid sequences get an InvalidSequenceError outcome without
// starting a process. At most WithConcurrency(n) RNAfold processes run at
// once (default runtime.NumCPU()). A failed fold does not stop the others;
// cancelling ctx abandons the remaining ones.
func FoldAll(ctx context.Context, seqs []string, opts ...Option) []Outcome {
	values := make([]any, len(seqs))
	for i, s := range seqs {
		values[i] = s
	}

	return FoldValues(ctx, values, opts...)
}

// FoldValues is FoldAll for dynamically typed input such as decoded JSON.
// Nil and non-string values yield InvalidSequenceError outcomes.
func FoldValues(ctx context.Context, values []any, opts ...Option) []Outcome {
	options := applyOptions(opts)
	log := getLoggerWithComponent(options, "batch")

	limit := options.Concurrency
	if limit < 1 {
		limit = runtime.NumCPU()
	}

	log.Debug("Folding batch", "count", len(values), "concurrency", limit)

	outcomes := make([]Outcome, len(values))

	var g errgroup.Group

	g.SetLimit(limit)

	for i, v := range values {
		r, err := NewFromValue(v, opts...)
		if err != nil {
			outcomes[i] = Outcome{Sequence: rawString(v), Err: err}

			continue
		}

		g.Go(func() error {
			res, err := r.Fold(ctx)
			outcomes[i] = Outcome{Sequence: r.Sequence(), Result: res, Err: err}

			return nil
		})
	}

	_ = g.Wait()

	failed := 0

	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}

	log.Debug("Batch complete", "count", len(values), "failed", failed)

	return outcomes
}

func rawString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case *string:
		if s == nil {
			return ""
		}

		return *s
	default:
		return fmt.Sprint(v)
	}
}
