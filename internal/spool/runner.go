// Package spool provides transdb's service mode: a directory watcher that
// settles each job file dropped into the spool directory.
//
// Job files end in ".txn". A processed job leaves a "<job>.out" report next
// to it and is renamed to "<job>.txn.done"; a job that cannot be read is
// renamed to "<job>.txn.err". Jobs run strictly one at a time.
package spool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/transdb/internal/app"
	"github.com/bft-labs/transdb/pkg/log"
)

const (
	jobSuffix    = ".txn"
	reportSuffix = ".out"
	doneSuffix   = ".done"
	failedSuffix = ".err"
)

// Config holds configuration options for the spool runner.
type Config struct {
	// Dir is the directory to watch for job files.
	Dir string

	// DebounceDelay is the delay to wait after a file write before
	// processing, so half-written jobs are not picked up.
	// Default: 200 milliseconds
	DebounceDelay time.Duration

	// RescanInterval is how often the directory is rescanned for job files
	// whose events were missed. Default: 5 seconds
	RescanInterval time.Duration
}

// Runner watches a spool directory and settles job files sequentially.
type Runner struct {
	dir            string
	debounceDelay  time.Duration
	rescanInterval time.Duration
	logger         log.Logger

	mu       sync.Mutex
	debounce map[string]*time.Timer

	jobs   chan string
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a spool runner with the given configuration.
func NewRunner(cfg Config, logger log.Logger) *Runner {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 200 * time.Millisecond
	}
	if cfg.RescanInterval <= 0 {
		cfg.RescanInterval = 5 * time.Second
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Runner{
		dir:            cfg.Dir,
		debounceDelay:  cfg.DebounceDelay,
		rescanInterval: cfg.RescanInterval,
		logger:         logger,
		debounce:       make(map[string]*time.Timer),
		jobs:           make(chan string, 64),
	}
}

// Start begins watching the spool directory. Pre-existing job files are
// picked up by the first rescan. Start returns immediately; call Stop to
// shut down.
func (r *Runner) Start(ctx context.Context) error {
	if _, err := os.Stat(r.dir); err != nil {
		return fmt.Errorf("spool dir: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(2)
	go r.watchLoop(runCtx)
	go r.workLoop(runCtx)

	r.logger.Info("spool runner started", log.String("dir", r.dir))
	return nil
}

// Stop shuts the runner down and waits for the in-flight job, if any.
// Outstanding debounce timers are stopped so nothing fires after return.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Lock()
	for path, t := range r.debounce {
		t.Stop()
		delete(r.debounce, path)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// watchLoop feeds the job channel from fsnotify events and periodic rescans.
func (r *Runner) watchLoop(ctx context.Context) {
	defer r.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.logger.Error("spool: failed to create watcher", log.Err(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		r.logger.Error("spool: failed to watch directory", log.String("dir", r.dir), log.Err(err))
		return
	}

	r.rescan()

	ticker := time.NewTicker(r.rescanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, jobSuffix) {
				continue
			}
			// A file renamed into the directory arrives as Create.
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			r.debounceEnqueue(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Error("spool: watcher error", log.Err(err))

		case <-ticker.C:
			r.rescan()
		}
	}
}

// rescan enqueues every job file currently in the directory. Files already
// processed were renamed away from the job suffix and are skipped naturally.
func (r *Runner) rescan() {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.logger.Error("spool: rescan failed", log.Err(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), jobSuffix) {
			continue
		}
		r.enqueue(filepath.Join(r.dir, e.Name()))
	}
}

// debounceEnqueue delays the enqueue of path until writes have quiesced.
// A new event on the same path resets its timer.
func (r *Runner) debounceEnqueue(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.debounce[path]; ok {
		t.Stop()
	}
	r.debounce[path] = time.AfterFunc(r.debounceDelay, func() {
		r.mu.Lock()
		delete(r.debounce, path)
		r.mu.Unlock()
		r.enqueue(path)
	})
}

// enqueue hands path to the worker without blocking; a full queue is fine
// because the next rescan picks the file up again.
func (r *Runner) enqueue(path string) {
	select {
	case r.jobs <- path:
	default:
	}
}

// workLoop processes queued jobs one at a time.
func (r *Runner) workLoop(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case path := <-r.jobs:
			r.process(path)
		}
	}
}

// process settles a single job file. The file may already be gone or
// renamed when a duplicate enqueue arrives; that is not an error.
func (r *Runner) process(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}

	logger := r.logger
	logger.Info("processing job", log.String("file", filepath.Base(path)))

	if err := r.settleFile(path); err != nil {
		logger.Error("job failed", log.String("file", filepath.Base(path)), log.Err(err))
		if err := os.Rename(path, path+failedSuffix); err != nil {
			logger.Error("spool: failed to quarantine job", log.Err(err))
		}
		return
	}

	if err := os.Rename(path, path+doneSuffix); err != nil {
		logger.Error("spool: failed to archive job", log.Err(err))
		return
	}
	logger.Info("job settled", log.String("file", filepath.Base(path)))
}

// settleFile runs the job through the ledger and writes its report.
func (r *Runner) settleFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	reportPath := strings.TrimSuffix(path, jobSuffix) + reportSuffix
	out, err := os.Create(reportPath)
	if err != nil {
		return err
	}

	if err := app.RunJob(in, out, r.logger); err != nil {
		out.Close()
		os.Remove(reportPath)
		return err
	}
	return out.Close()
}
