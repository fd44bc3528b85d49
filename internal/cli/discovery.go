package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/wagiedev/rnafold-go/internal/errors"
)

// Config holds configuration for RNAfold discovery.
type Config struct {
	// Logger is an optional logger for discovery operations.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates the RNAfold binary.
type Discoverer interface {
	// Discover returns the path to the RNAfold binary or a
	// ProcessStartError listing the searched locations.
	Discover(ctx context.Context) (string, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	log  *slog.Logger
	dirs []string
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// NewDiscoverer creates a new RNAfold discoverer with the given configuration.
func NewDiscoverer(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &discoverer{
		log:  log,
		dirs: defaultSearchDirs(),
	}
}

// Discover locates the RNAfold binary.
func (d *discoverer) Discover(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.log.Debug("Searching for RNAfold in PATH")

	if path, err := exec.LookPath(ToolName); err == nil {
		d.log.Debug("Found RNAfold in PATH", "path", path)

		return path, nil
	}

	searched := make([]string, 0, len(d.dirs)+1)
	searched = append(searched, "$PATH")

	for _, dir := range d.dirs {
		path := filepath.Join(dir, ToolName)
		searched = append(searched, path)

		if isExecutable(path) {
			d.log.Debug("Found RNAfold at common path", "path", path)

			return path, nil
		}
	}

	d.log.Warn("RNAfold not found in any searched paths", "searched_paths", searched)

	return "", &errors.ProcessStartError{
		Command:       ToolName,
		SearchedPaths: searched,
		Err:           exec.ErrNotFound,
	}
}

func defaultSearchDirs() []string {
	dirs := []string{"/usr/local/bin", "/usr/bin"}

	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "bin"))
	}

	if prefix := os.Getenv("CONDA_PREFIX"); prefix != "" {
		dirs = append(dirs, filepath.Join(prefix, "bin"))
	}

	return dirs
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	return info.Mode().Perm()&0o111 != 0
}
