// Package rnafold predicts RNA secondary structures by running the ViennaRNA
// RNAfold command-line tool.
//
// Each fold starts one "RNAfold --noPS" process, writes the sequence and the
// "@" batch sentinel to its stdin, and parses the dot-bracket structure and
// minimum free energy (MFE) from its report. No folding is done in Go.
//
// # Basic Usage
//
//	r, err := rnafold.New("CGCAGGGAUACCCGCG")
//	if err != nil {
//	    log.Fatal(err) // *rnafold.InvalidSequenceError
//	}
//
//	res, err := r.Fold(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s [%6.2f]\n", res.Structure, res.Energy)
//
// # Blocking and Non-Blocking Folds
//
// Fold blocks until RNAfold has finished. FoldAsync returns at once with a
// channel that delivers a single Outcome, so many folds can be in flight
// from one goroutine:
//
//	pending := make([]<-chan rnafold.Outcome, 0, len(runners))
//	for _, r := range runners {
//	    pending = append(pending, r.FoldAsync(ctx))
//	}
//
//	for _, ch := range pending {
//	    out := <-ch
//	    // handle out.Result / out.Err
//	}
//
// FoldAll does the same for a slice of sequences with a bounded number of
// concurrent processes (see WithConcurrency).
//
// There is no built-in timeout. Use context.WithTimeout; when the context
// ends, the RNAfold process is killed and reaped before the fold returns.
//
// # Legacy Interface
//
// Code written against the earlier synchronous interface can keep using it:
//
//	fc, err := rnafold.RNA{}.FoldCompound("CGCAGGGAUACCCGCG")
//	structure, mfe, err := fc.MFE()
//
// # Logging
//
// The package is silent by default. Pass WithLogger to receive debug logs
// for each fold, tagged with a fold_id.
//
// # Error Handling
//
// Errors about the sequence, the RNAfold process or its output implement
// RNAFoldError. A fold abandoned because ctx ended returns an error wrapping
// ctx.Err(), and a failed read or write on the process pipes is returned
// wrapped as well; KindOf reports 0 for both. Use KindOf or errors.AsType to
// branch:
//
//	res, err := r.Fold(ctx)
//	if procErr, ok := errors.AsType[*rnafold.ProcessError](err); ok {
//	    log.Fatalf("RNAfold exited %d: %s", procErr.ExitCode, procErr.Stderr)
//	}
//	switch rnafold.KindOf(err) {
//	case rnafold.KindMalformedOutput, rnafold.KindEnergyParse:
//	    // the installed RNAfold prints a layout we do not understand
//	}
//
// # Requirements
//
// RNAfold (ViennaRNA 2.4 or newer) must be on PATH or in a common install
// directory. CheckVersion reports what was found.
package rnafold
