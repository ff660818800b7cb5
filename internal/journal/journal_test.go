package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestJournalCreation verifies database file creation and initialization
func TestJournalCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "removals.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	defer func() {
		if err := j.Close(); err != nil {
			t.Errorf("Failed to close journal: %v", err)
		}
	}()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Journal file not created at %s", path)
	}
}

// TestJournalCreatesParentDirectory verifies missing parent directories
// are created
func TestJournalCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "removals.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open journal with nested path: %v", err)
	}
	defer j.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Journal file not created at %s", path)
	}
}

// TestWALModeEnabled verifies that WAL mode is properly configured
func TestWALModeEnabled(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "wal.db"))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()

	var journalMode string
	if err := j.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected journal_mode=wal, got %s", journalMode)
	}
}

// TestRecordAndQuery verifies events round-trip through the query helpers
func TestRecordAndQuery(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "query.db"))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()

	records := []struct {
		action string
		path   string
		kind   string
		size   int64
		errMsg string
	}{
		{"REMOVE", "/data/old/big.bin", "file", 4096, ""},
		{"REMOVE", "/data/old/small.txt", "file", 12, ""},
		{"REMOVE", "/data/old", "directory", 0, ""},
		{"ERROR", "/data/stuck", "file", 99, "permission denied"},
	}
	for _, r := range records {
		if err := j.Record(r.action, r.path, r.kind, r.size, r.errMsg); err != nil {
			t.Fatalf("Record(%s) failed: %v", r.path, err)
		}
	}

	recent, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 4 {
		t.Errorf("Expected 4 recent entries, got %d", len(recent))
	}

	removed, err := j.ByAction("REMOVE")
	if err != nil {
		t.Fatalf("ByAction failed: %v", err)
	}
	if len(removed) != 3 {
		t.Errorf("Expected 3 REMOVE entries, got %d", len(removed))
	}

	errored, err := j.ByAction("ERROR")
	if err != nil {
		t.Fatalf("ByAction failed: %v", err)
	}
	if len(errored) != 1 {
		t.Fatalf("Expected 1 ERROR entry, got %d", len(errored))
	}
	if errored[0].ErrorMessage != "permission denied" {
		t.Errorf("Expected error message preserved, got %q", errored[0].ErrorMessage)
	}
	if errored[0].Name != "stuck" {
		t.Errorf("Expected base name 'stuck', got %q", errored[0].Name)
	}

	largest, err := j.Largest(1)
	if err != nil {
		t.Fatalf("Largest failed: %v", err)
	}
	if len(largest) != 1 || largest[0].Path != "/data/old/big.bin" {
		t.Errorf("Expected largest removal to be big.bin, got %+v", largest)
	}

	total, err := j.TotalBytesFreed(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("TotalBytesFreed failed: %v", err)
	}
	if total != 4108 {
		t.Errorf("Expected 4108 bytes freed, got %d", total)
	}

	counts, err := j.CountByKind()
	if err != nil {
		t.Fatalf("CountByKind failed: %v", err)
	}
	if counts["file"] != 2 || counts["directory"] != 1 {
		t.Errorf("Unexpected kind counts: %v", counts)
	}
}

// TestVacuum verifies vacuum runs without error
func TestVacuum(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "vacuum.db"))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()

	if err := j.Record("REMOVE", "/x", "file", 1, ""); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := j.Vacuum(); err != nil {
		t.Errorf("Vacuum failed: %v", err)
	}
}
