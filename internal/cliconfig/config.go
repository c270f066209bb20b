// Package cliconfig holds the CLI configuration for transdb and the
// flag/env/file precedence machinery: explicitly set flags win over
// environment variables, which win over the config file, which wins over
// defaults.
package cliconfig

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Config holds CLI configuration for transdb.
type Config struct {
	// InputPath is the job file to read; empty means stdin.
	InputPath string

	// OutputPath is where the settlement report goes; empty means stdout.
	OutputPath string

	// SpoolDir enables service mode: watch this directory and settle each
	// job file dropped into it.
	SpoolDir string

	// DebounceDelay is how long the spool watcher waits after the last
	// write event before it processes a file.
	DebounceDelay time.Duration

	// RescanInterval is how often the spool watcher rescans the directory
	// for files whose events were missed.
	RescanInterval time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		DebounceDelay:  200 * time.Millisecond,
		RescanInterval: 5 * time.Second,
		LogLevel:       "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.SpoolDir != "" && c.InputPath != "" {
		return fmt.Errorf("spool mode and --input are mutually exclusive")
	}
	if c.SpoolDir != "" && c.OutputPath != "" {
		return fmt.Errorf("spool mode writes reports next to job files; --output is not allowed")
	}
	if c.DebounceDelay <= 0 {
		return fmt.Errorf("debounce delay must be positive")
	}
	if c.RescanInterval <= 0 {
		return fmt.Errorf("rescan interval must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}
