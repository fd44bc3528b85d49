package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFile holds defaults read from config.toml. Command-line flags take
// precedence over every field.
type configFile struct {
	Jobs    int    `toml:"jobs"`
	Format  string `toml:"format"`
	Input   string `toml:"input"`
	Verbose bool   `toml:"verbose"`
}

// defaultConfigPath returns $XDG_CONFIG_HOME/rnafold/config.toml (or the
// platform equivalent), or "" if no config directory is known.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "rnafold", "config.toml")
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (*configFile, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	cfg := &configFile{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}

		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *configFile) validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}

	if c.Format != "" && !validFormat(c.Format) {
		return fmt.Errorf("unknown format %q", c.Format)
	}

	if c.Input != "" && !validInput(c.Input) {
		return fmt.Errorf("unknown input %q", c.Input)
	}

	return nil
}
