// Package forceremove removes a filesystem entry and everything beneath
// it, succeeding where the platform's native recursive delete refuses:
// directories without read or execute permission on Unix, read-only
// files and directories on Windows. Symbolic links are removed as link
// objects, never followed. Deeply nested trees are walked over an
// explicit work stack, so tree depth is not bounded by execution stack
// space.
package forceremove

import (
	"context"
	"fmt"
	"log"
	"sync"

	"force-remove/internal/engine"
	"force-remove/internal/fsops"
	"force-remove/internal/guard"
	"force-remove/internal/journal"
	"force-remove/internal/logging"
	"force-remove/internal/metrics"
	"force-remove/internal/node"
)

// Remove removes everything at path. Fails with ErrNotFound if path
// does not exist.
func Remove(path string) error {
	return std().Remove(path)
}

// EnsureRemoved removes everything at path. A missing path is treated
// as success, making the call idempotent.
func EnsureRemoved(path string) error {
	return std().EnsureRemoved(path)
}

var (
	stdOnce sync.Once
	stdEng  *Engine
)

// std is the zero-config engine behind the package-level functions: no
// journal, no metrics, silent logging, root-only guard.
func std() *Engine {
	stdOnce.Do(func() {
		stdEng = &Engine{
			rm:     engine.New(nil, nil, false),
			guard:  guard.Minimal(),
			logger: logging.Discard(),
		}
	})
	return stdEng
}

// Engine is a configured removal instance carrying the optional
// journal, metrics, guard, and log file from Options. The zero-config
// package-level functions cover the common case; an Engine is for
// callers that want the operational surface.
type Engine struct {
	rm      *engine.Engine
	guard   *guard.Guard
	journal *journal.Journal
	logger  *log.Logger
	opts    Options
}

// New creates an Engine from opts
func New(opts Options) (*Engine, error) {
	if err := opts.validateAndDefault(); err != nil {
		return nil, err
	}

	logger := logging.Discard()
	if opts.Logging.Path != "" {
		logger = logging.NewWithFile(opts.Logging.Path, opts.Logging.RotationDays)
	}

	var jr *journal.Journal
	if opts.JournalPath != "" {
		var err error
		jr, err = journal.Open(opts.JournalPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.Metrics.Enabled {
		metrics.Init()
	}

	return &Engine{
		rm:      engine.New(logging.NewLeveled(logger), jr, opts.Metrics.Enabled),
		guard:   guard.New(opts.Guard.AllowedRoots, opts.Guard.ProtectedPaths),
		journal: jr,
		logger:  logger,
		opts:    opts,
	}, nil
}

// Remove removes everything at path, failing with ErrNotFound if the
// path does not exist
func (e *Engine) Remove(path string) error {
	return e.remove(path, true)
}

// EnsureRemoved removes everything at path, treating a missing path as
// success
func (e *Engine) EnsureRemoved(path string) error {
	return e.remove(path, false)
}

func (e *Engine) remove(path string, failIfMissing bool) error {
	if err := e.guard.Check(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	kind, _, err := node.Classify(fsops.OSFS{}, path)
	if err != nil {
		return fmt.Errorf("classify %s: %w", path, err)
	}
	if kind == node.Missing {
		if failIfMissing {
			return fmt.Errorf("remove %s: %w", path, ErrNotFound)
		}
		return nil
	}

	return e.rm.RemoveTree(path)
}

// StartMetrics starts the Prometheus endpoint configured in Options.
// No-op when metrics are disabled.
func (e *Engine) StartMetrics() {
	if !e.opts.Metrics.Enabled {
		return
	}
	metrics.StartServer(e.opts.MetricsAddress(), e.logger)
}

// StopMetrics shuts the Prometheus endpoint down
func (e *Engine) StopMetrics(ctx context.Context) {
	metrics.Shutdown(ctx, e.logger)
}

// Close releases the engine's resources (the journal, when configured)
func (e *Engine) Close() error {
	if e.journal != nil {
		return e.journal.Close()
	}
	return nil
}
