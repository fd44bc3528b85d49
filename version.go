package rnafold

import (
	"context"

	"github.com/wagiedev/rnafold-go/internal/cli"
)

// CheckVersion locates RNAfold and reports whether its version is at least
// the minimum supported release. It starts its own "RNAfold --version"
// process and is never called while folding.
//
// Set RNAFOLD_SKIP_VERSION_CHECK to skip the probe; the returned info then
// has Skipped set.
func CheckVersion(ctx context.Context, opts ...Option) (*VersionInfo, error) {
	log := getLoggerWithComponent(applyOptions(opts), "version_check")

	path, err := cli.NewDiscoverer(&cli.Config{Logger: log}).Discover(ctx)
	if err != nil {
		return nil, err
	}

	return cli.CheckVersion(ctx, log, path)
}
