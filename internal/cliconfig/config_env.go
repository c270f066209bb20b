package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (TRANSDB_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", os.Getenv("TRANSDB_INPUT"), &cfg.InputPath)
	s.setString("output", os.Getenv("TRANSDB_OUTPUT"), &cfg.OutputPath)
	s.setString("spool", os.Getenv("TRANSDB_SPOOL_DIR"), &cfg.SpoolDir)
	s.setString("log-level", os.Getenv("TRANSDB_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("debounce", os.Getenv("TRANSDB_DEBOUNCE"), &cfg.DebounceDelay); err != nil {
		return err
	}
	if err := s.setDuration("rescan-interval", os.Getenv("TRANSDB_RESCAN_INTERVAL"), &cfg.RescanInterval); err != nil {
		return err
	}

	return nil
}
