package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const (
	// MinimumVersion is the oldest RNAfold release known to accept --noPS
	// and the "@" batch sentinel.
	MinimumVersion = "2.4.0"

	// VersionCheckTimeout bounds the "RNAfold --version" probe.
	VersionCheckTimeout = 2 * time.Second

	// SkipVersionCheckEnv disables version checking when set.
	SkipVersionCheckEnv = "RNAFOLD_SKIP_VERSION_CHECK"
)

var versionPattern = regexp.MustCompile(`([0-9]+\.[0-9]+(?:\.[0-9]+)?)`)

// VersionInfo describes the installed RNAfold.
type VersionInfo struct {
	Path      string
	Version   *semver.Version
	Minimum   *semver.Version
	Supported bool
	Skipped   bool
}

// VersionCheckDisabled reports whether SkipVersionCheckEnv is set.
func VersionCheckDisabled() bool {
	return os.Getenv(SkipVersionCheckEnv) != ""
}

// ParseVersion extracts a version from "RNAfold --version" output,
// e.g. "RNAfold 2.6.4".
func ParseVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindString(strings.TrimSpace(output))
	if match == "" {
		return nil, fmt.Errorf("no version in %q", strings.TrimSpace(output))
	}

	v, err := semver.NewVersion(match)
	if err != nil {
		return nil, fmt.Errorf("parse version %q: %w", match, err)
	}

	return v, nil
}

// CheckVersion runs "<path> --version" and compares it with MinimumVersion.
func CheckVersion(ctx context.Context, log *slog.Logger, path string) (*VersionInfo, error) {
	minimum := semver.MustParse(MinimumVersion)
	info := &VersionInfo{Path: path, Minimum: minimum}

	if VersionCheckDisabled() {
		log.Debug("Skipping RNAfold version check", "env", SkipVersionCheckEnv)

		info.Skipped = true

		return info, nil
	}

	ctx, cancel := context.WithTimeout(ctx, VersionCheckTimeout)
	defer cancel()

	//nolint:gosec // G204: path comes from discovery, args are constant
	output, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("run %s --version: %w", path, err)
	}

	v, err := ParseVersion(string(output))
	if err != nil {
		return nil, err
	}

	info.Version = v
	info.Supported = !v.LessThan(minimum)

	if info.Supported {
		log.Debug("RNAfold version check passed", "version", v.String(), "minimum", MinimumVersion)
	} else {
		log.Warn("RNAfold version is older than supported",
			"version", v.String(),
			"minimum_required", MinimumVersion,
		)
	}

	return info, nil
}
