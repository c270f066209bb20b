package cliconfig

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "one-shot with paths is valid",
			mutate: func(c *Config) { c.InputPath = "job.txn"; c.OutputPath = "job.out" },
		},
		{
			name:   "spool mode is valid",
			mutate: func(c *Config) { c.SpoolDir = "/var/spool/transdb" },
		},
		{
			name:    "spool excludes input",
			mutate:  func(c *Config) { c.SpoolDir = "/spool"; c.InputPath = "job.txn" },
			wantErr: "mutually exclusive",
		},
		{
			name:    "spool excludes output",
			mutate:  func(c *Config) { c.SpoolDir = "/spool"; c.OutputPath = "out" },
			wantErr: "--output is not allowed",
		},
		{
			name:    "zero debounce",
			mutate:  func(c *Config) { c.DebounceDelay = 0 },
			wantErr: "debounce delay must be positive",
		},
		{
			name:    "zero rescan interval",
			mutate:  func(c *Config) { c.RescanInterval = 0 },
			wantErr: "rescan interval must be positive",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "chatty" },
			wantErr: "log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DebounceDelay != 200*time.Millisecond {
		t.Errorf("unexpected default debounce: %v", cfg.DebounceDelay)
	}
	if cfg.RescanInterval != 5*time.Second {
		t.Errorf("unexpected default rescan interval: %v", cfg.RescanInterval)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected default log level: %q", cfg.LogLevel)
	}
}
