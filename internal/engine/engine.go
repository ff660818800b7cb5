// Package engine implements the removal algorithm: post-order traversal
// of a subtree over an explicit work stack, deleting children before
// parents, with a single permission remediation retry per node.
package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"force-remove/internal/fsops"
	"force-remove/internal/journal"
	"force-remove/internal/metrics"
	"force-remove/internal/node"
	"force-remove/internal/remedy"
)

// Logger interface for structured logging in the engine
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Engine removes directory trees unconditionally. Single-threaded and
// fully synchronous; callers serialize concurrent use on overlapping
// trees themselves.
type Engine struct {
	fs      fsops.FS
	fix     func(path string) error
	logger  Logger
	journal *journal.Journal // optional removal history
	metrics bool
}

// New creates an Engine. logger may be nil, journal may be nil, and
// enableMetrics requires metrics.Init to have been called.
func New(logger Logger, jr *journal.Journal, enableMetrics bool) *Engine {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Engine{
		fs:      fsops.OSFS{},
		fix:     remedy.Fix,
		logger:  logger,
		journal: jr,
		metrics: enableMetrics,
	}
}

// SetFS replaces the filesystem backend (testing)
func (e *Engine) SetFS(fsys fsops.FS) {
	e.fs = fsys
}

// SetFix replaces the permission remediator (testing)
func (e *Engine) SetFix(fix func(path string) error) {
	e.fix = fix
}

// workItem is one frontier entry of the depth-first walk. enumerated
// marks a directory whose children have already been pushed above it.
type workItem struct {
	path       string
	enumerated bool
}

// RemoveTree removes root and everything beneath it. The frontier lives
// in a heap-allocated stack, so tree depth never grows the execution
// stack. The first unrecoverable failure aborts the whole call with the
// failing path attached, leaving a partially removed tree.
func (e *Engine) RemoveTree(root string) error {
	start := time.Now()
	if e.metrics {
		metrics.RecordRemovalRun()
		defer func() {
			metrics.RemovalDuration.Observe(time.Since(start).Seconds())
		}()
	}

	stack := []workItem{{path: root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.enumerated {
			// Every child was pushed above this directory and has been
			// resolved by now, so the directory is empty.
			if err := e.delete(it.path, node.Dir, 0); err != nil {
				return err
			}
			continue
		}

		// Classified fresh on every visit: the tree may be modified by
		// other processes between enumeration and deletion.
		kind, info, err := node.Classify(e.fs, it.path)
		if err != nil {
			return fmt.Errorf("classify %s: %w", it.path, err)
		}

		switch kind {
		case node.Missing:
			// Already gone, possibly to a concurrent deleter.
		case node.File, node.Symlink:
			var size int64
			if kind == node.File {
				size = info.Size()
			}
			if err := e.delete(it.path, kind, size); err != nil {
				return err
			}
		case node.Dir:
			names, err := e.enumerate(it.path)
			if err != nil {
				return err
			}
			stack = append(stack, workItem{path: it.path, enumerated: true})
			// Reverse order so children pop in enumeration order.
			for i := len(names) - 1; i >= 0; i-- {
				stack = append(stack, workItem{path: filepath.Join(it.path, names[i])})
			}
		}
	}

	return nil
}

// enumerate lists a directory's direct children, remediating the
// directory's own permissions once if listing is denied.
func (e *Engine) enumerate(dir string) ([]string, error) {
	names, err := e.fs.ReadDirNames(dir)
	if err == nil {
		return names, nil
	}
	if !errors.Is(err, fs.ErrPermission) {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	if fixErr := e.fix(dir); fixErr != nil {
		e.record("ERROR", dir, node.Dir, 0, fixErr)
		return nil, fmt.Errorf("fix permissions %s: %w", dir, fixErr)
	}
	e.remediated(dir)

	names, err = e.fs.ReadDirNames(dir)
	if err != nil {
		e.record("ERROR", dir, node.Dir, 0, err)
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	return names, nil
}

// delete issues the removal syscall for a classified node, remediating
// and retrying exactly once on an access failure. Any second failure is
// terminal.
func (e *Engine) delete(path string, kind node.Kind, size int64) error {
	err := e.fs.Remove(path)
	if err != nil && errors.Is(err, fs.ErrPermission) {
		if fixErr := e.fix(path); fixErr != nil {
			e.record("ERROR", path, kind, size, fixErr)
			return fmt.Errorf("fix permissions %s: %w", path, fixErr)
		}
		e.remediated(path)
		err = e.fs.Remove(path)
	}

	if err != nil {
		// Removed underneath us between classification and deletion.
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		e.logger.Error("failed to remove", "path", path, "kind", kind.String(), "error", err)
		e.record("ERROR", path, kind, size, err)
		if e.metrics {
			metrics.ErrorsTotal.Inc()
		}
		return fmt.Errorf("remove %s: %w", path, err)
	}

	e.record("REMOVE", path, kind, size, nil)
	if e.metrics {
		metrics.RecordNodeRemoved(kind.String(), size)
	}
	return nil
}

func (e *Engine) remediated(path string) {
	e.logger.Info("remediated permissions", "path", path)
	if e.metrics {
		metrics.RemediationsTotal.Inc()
	}
}

// record writes the outcome to the removal journal. Journal failures
// never fail the removal itself.
func (e *Engine) record(action, path string, kind node.Kind, size int64, cause error) {
	if e.journal == nil {
		return
	}
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if err := e.journal.Record(action, path, kind.String(), size, msg); err != nil {
		e.logger.Error("failed to record to journal", "error", err)
	}
}
