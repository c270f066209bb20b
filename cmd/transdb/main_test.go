package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bft-labs/transdb/internal/cliconfig"
)

func TestRunOnceWritesReportFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "job.txn")
	outPath := filepath.Join(dir, "job.out")

	job := "2\n1 10\n2 5\n1\n1\n1 2 3\n"
	if err := os.WriteFile(inPath, []byte(job), 0o644); err != nil {
		t.Fatalf("write job: %v", err)
	}

	cfg := cliconfig.DefaultConfig()
	cfg.InputPath = inPath
	cfg.OutputPath = outPath

	if err := runOnce(cfg, nil); err != nil {
		t.Fatalf("runOnce returned error: %v", err)
	}

	report, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	want := "1\n0\n2\n1 7\n2 8\n"
	if string(report) != want {
		t.Errorf("expected report %q, got %q", want, string(report))
	}
}

func TestRunOnceErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing input", func(t *testing.T) {
		cfg := cliconfig.DefaultConfig()
		cfg.InputPath = filepath.Join(dir, "absent.txn")
		if err := runOnce(cfg, nil); err == nil {
			t.Fatal("expected error for missing input file")
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		inPath := filepath.Join(dir, "job.txn")
		if err := os.WriteFile(inPath, []byte("1\n1 5\n0\n"), 0o644); err != nil {
			t.Fatalf("write job: %v", err)
		}

		cfg := cliconfig.DefaultConfig()
		cfg.InputPath = inPath
		cfg.OutputPath = filepath.Join(dir, "no-such-dir", "job.out")
		if err := runOnce(cfg, nil); err == nil {
			t.Fatal("expected error for unwritable output path")
		}
	})
}
