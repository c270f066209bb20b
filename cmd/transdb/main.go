package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/transdb/internal/app"
	"github.com/bft-labs/transdb/internal/cliconfig"
	"github.com/bft-labs/transdb/internal/spool"
	"github.com/bft-labs/transdb/pkg/log"
)

const helpDescription = `
Settle batches of account-to-account transfers against an in-memory ledger.

transdb reads a job (initial balances followed by transactions), applies
every transaction optimistically, then rolls back the locally cheapest
pending transactions until no balance is negative. The report lists the
surviving transaction ids and the final balances.

Modes:
  - One-shot: read a job from --input (or stdin), write the report to
    --output (or stdout).
  - Spool:    watch a directory with --spool and settle each *.txn job file
    dropped into it; reports land next to the jobs.
`

var exampleUsage = strings.TrimSpace(`
  transdb --input jobs/day-one.txn --output day-one.out
  transdb < job.txn
  transdb --spool /var/spool/transdb --log-level debug
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "transdb",
		Short:   "Settle batches of transfers against an in-memory ledger",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.transdb/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			leveled := cliconfig.LeveledLogger(cfg.LogLevel)
			jobLogger := log.NewZerologAdapterWithLogger(leveled)

			if cfg.SpoolDir != "" {
				return runSpool(cfg, jobLogger)
			}
			return runOnce(cfg, jobLogger)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.transdb/config.toml)")
	root.Flags().StringVar(&cfg.InputPath, "input", cfg.InputPath, "job file to settle (default: stdin)")
	root.Flags().StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "report file (default: stdout)")
	root.Flags().StringVar(&cfg.SpoolDir, "spool", cfg.SpoolDir, "watch this directory and settle each *.txn job file")
	root.Flags().DurationVar(&cfg.DebounceDelay, "debounce", cfg.DebounceDelay, "spool: wait for writes to quiesce before processing")
	root.Flags().DurationVar(&cfg.RescanInterval, "rescan-interval", cfg.RescanInterval, "spool: periodic rescan for missed job files")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("transdb")
		os.Exit(1)
	}
}

// runOnce settles a single job from the configured input to the configured
// output.
func runOnce(cfg cliconfig.Config, logger log.Logger) error {
	var in io.Reader = os.Stdin
	if cfg.InputPath != "" {
		f, err := os.Open(cfg.InputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	var closeOut func() error
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		out = f
		closeOut = f.Close
	}

	if err := app.RunJob(in, out, logger); err != nil {
		if closeOut != nil {
			closeOut()
		}
		return err
	}
	if closeOut != nil {
		// A failed close can mean a truncated report; surface it.
		if err := closeOut(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}
	return nil
}

// runSpool watches the spool directory until interrupted.
func runSpool(cfg cliconfig.Config, logger log.Logger) error {
	runner := spool.NewRunner(spool.Config{
		Dir:            cfg.SpoolDir,
		DebounceDelay:  cfg.DebounceDelay,
		RescanInterval: cfg.RescanInterval,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start spool runner: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("received signal, stopping")
	runner.Stop()
	return nil
}
