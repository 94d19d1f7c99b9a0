// Package config loads Xylem's application configuration from a YAML
// file. A missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application settings.
type Config struct {
	Window struct {
		Title  string `yaml:"title"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"window"`
	Autosave struct {
		Path            string `yaml:"path"`
		IntervalSeconds int    `yaml:"interval_seconds"`
	} `yaml:"autosave"`
	Evaluator struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"evaluator"`
}

// Default returns the built-in settings.
func Default() Config {
	var c Config
	c.Window.Title = "Xylem"
	c.Window.Width = 1280
	c.Window.Height = 800
	c.Autosave.IntervalSeconds = 30
	c.Evaluator.TimeoutSeconds = 5
	return c
}

// DefaultPath returns the conventional config file location under the
// user config directory, or "" when that directory cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "xylem", "config.yaml")
}

// Load reads the config at path, overlaying it onto the defaults. An
// empty path or a missing file yields the defaults with no error;
// malformed YAML is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return cfg, fmt.Errorf("config: window size %dx%d is not positive",
			cfg.Window.Width, cfg.Window.Height)
	}
	return cfg, nil
}
