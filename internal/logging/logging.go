package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// New creates a logger writing to stdout
func New() *log.Logger {
	return log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
}

// Discard creates a logger that drops everything. Default for library
// callers that configured no log file.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// NewWithFile creates a logger appending to path, rotating files older
// than rotationDays first
func NewWithFile(path string, rotationDays int) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("failed to ensure log directory %s: %v", filepath.Dir(path), err)
	}

	if rotationDays <= 0 {
		rotationDays = 30
	}
	rotateIfNeeded(path, rotationDays)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("failed to open log file %s: %v", path, err)
		return New()
	}

	return log.New(f, "", log.LstdFlags|log.Lmicroseconds)
}

// rotateIfNeeded rotates the log file if older than the specified days
func rotateIfNeeded(logPath string, rotationDays int) {
	info, err := os.Stat(logPath)
	if err != nil {
		// Log file doesn't exist yet, nothing to rotate
		return
	}

	cutoffTime := time.Now().AddDate(0, 0, -rotationDays)
	if info.ModTime().Before(cutoffTime) {
		// Rotate: rename current log with timestamp
		timestamp := info.ModTime().Format("20060102-150405")
		rotatedPath := logPath + "." + timestamp

		if err := os.Rename(logPath, rotatedPath); err != nil {
			log.Printf("failed to rotate log file: %v", err)
			return
		}

		cleanupOldLogs(logPath, rotationDays)
	}
}

// cleanupOldLogs removes rotated log files older than rotation days
func cleanupOldLogs(logPath string, rotationDays int) {
	dir := filepath.Dir(logPath)
	baseName := filepath.Base(logPath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	cutoffTime := time.Now().AddDate(0, 0, -rotationDays)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, baseName+".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoffTime) {
			fullPath := filepath.Join(dir, name)
			if err := os.Remove(fullPath); err != nil {
				log.Printf("failed to remove old log file %s: %v", fullPath, err)
			}
		}
	}
}

// Leveled wraps a standard log.Logger with Info/Error levels in
// key-value style
type Leveled struct {
	*log.Logger
}

// NewLeveled wraps logger; nil falls back to a discard logger
func NewLeveled(logger *log.Logger) *Leveled {
	if logger == nil {
		logger = Discard()
	}
	return &Leveled{Logger: logger}
}

func (l *Leveled) Info(msg string, args ...interface{}) {
	l.logWithLevel("INFO", msg, args...)
}

func (l *Leveled) Error(msg string, args ...interface{}) {
	l.logWithLevel("ERROR", msg, args...)
}

func (l *Leveled) logWithLevel(level, msg string, args ...interface{}) {
	// Format key-value pairs
	var parts []interface{}
	parts = append(parts, fmt.Sprintf("[%s]", level), msg)
	parts = append(parts, args...)
	l.Logger.Println(parts...)
}
