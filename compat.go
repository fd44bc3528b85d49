package rnafold

import "context"

// SyncRunner is the old-style synchronous interface: MFE takes no context
// and blocks until RNAfold finishes.
type SyncRunner struct {
	runner *Runner
}

// FoldCompoundSync creates a SyncRunner for seq.
func FoldCompoundSync(seq string, opts ...Option) (*SyncRunner, error) {
	r, err := New(seq, opts...)
	if err != nil {
		return nil, err
	}

	return &SyncRunner{runner: r}, nil
}

// MFE returns the minimum free energy structure and its energy.
func (s *SyncRunner) MFE() (string, float64, error) {
	return s.runner.MFE(context.Background())
}

// Runner returns the wrapped context-aware runner.
func (s *SyncRunner) Runner() *Runner { return s.runner }

// Key returns the identity of the wrapped runner.
func (s *SyncRunner) Key() Key { return s.runner.Key() }

func (s *SyncRunner) String() string { return "Sync" + s.runner.String() }

// RNA is the entry point for callers written against the previous,
// module-level interface:
//
//	fc, err := rnafold.RNA{}.FoldCompound("CGCAGGGAUACCCGCG")
//	structure, mfe, err := fc.MFE()
type RNA struct{}

// FoldCompound creates a SyncRunner for seq.
func (RNA) FoldCompound(seq string, opts ...Option) (*SyncRunner, error) {
	return FoldCompoundSync(seq, opts...)
}
