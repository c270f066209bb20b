package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				InputPath:      "/jobs/batch.txn",
				OutputPath:     "/jobs/batch.out",
				DebounceDelay:  "500ms",
				RescanInterval: "30s",
				LogLevel:       "debug",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				InputPath:      "/jobs/batch.txn",
				OutputPath:     "/jobs/batch.out",
				DebounceDelay:  500 * time.Millisecond,
				RescanInterval: 30 * time.Second,
				LogLevel:       "debug",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				InputPath: "/config/batch.txn",
				LogLevel:  "debug",
			},
			changed: map[string]bool{"input": true},
			initial: Config{
				InputPath: "/flag/batch.txn",
			},
			expected: Config{
				InputPath: "/flag/batch.txn", // unchanged because flag was set
				LogLevel:  "debug",
			},
		},
		{
			name: "spool dir from file",
			fileConfig: FileConfig{
				SpoolDir: "/var/spool/transdb",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				SpoolDir: "/var/spool/transdb",
			},
		},
		{
			name: "invalid duration errors",
			fileConfig: FileConfig{
				DebounceDelay: "soon",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig returned error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, cfg)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
input = "/jobs/day.txn"
spool_dir = ""
debounce = "250ms"
log_level = "warn"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig returned error: %v", err)
	}
	if fc.InputPath != "/jobs/day.txn" {
		t.Errorf("unexpected input: %q", fc.InputPath)
	}
	if fc.DebounceDelay != "250ms" {
		t.Errorf("unexpected debounce: %q", fc.DebounceDelay)
	}
	if fc.LogLevel != "warn" {
		t.Errorf("unexpected log level: %q", fc.LogLevel)
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if FileExists(path) {
		t.Error("expected FileExists to be false for absent file")
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !FileExists(path) {
		t.Error("expected FileExists to be true for present file")
	}
}
