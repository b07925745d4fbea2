package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is a symstat.toml tool configuration.
type Config struct {
	Input  InputConfig  `toml:"input"`
	Report ReportConfig `toml:"report"`
}

// InputConfig controls tokenization.
type InputConfig struct {
	Mode      string `toml:"mode"`       // "words" or "lines"
	MinLength int    `toml:"min-length"` // tokens shorter than this are skipped
}

// ReportConfig controls output.
type ReportConfig struct {
	Top  int  `toml:"top"`  // number of most frequent tokens to list
	JSON bool `toml:"json"` // emit the report as JSON
}

// loadConfig reads the file at path, or symstat.toml in the working
// directory when path is empty. A missing implicit file is not an error;
// defaults apply.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = "symstat.toml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	// Defaults
	if cfg.Input.Mode == "" {
		cfg.Input.Mode = "words"
	}
	if cfg.Input.MinLength == 0 {
		cfg.Input.MinLength = 1
	}
	if cfg.Report.Top == 0 {
		cfg.Report.Top = 20
	}

	return &cfg, nil
}

// validate checks the merged configuration.
func (c *Config) validate() error {
	if c.Input.Mode != "words" && c.Input.Mode != "lines" {
		return fmt.Errorf("unknown input mode %q (want words or lines)", c.Input.Mode)
	}
	if c.Input.MinLength < 1 {
		return fmt.Errorf("min-length must be at least 1, got %d", c.Input.MinLength)
	}
	if c.Report.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", c.Report.Top)
	}
	return nil
}
