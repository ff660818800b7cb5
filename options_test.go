package forceremove

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write options file: %v", err)
	}
	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeOptionsFile(t, `
journal_path: /var/lib/force-remove/removals.db
metrics:
  enabled: true
  port: 9187
logging:
  path: /var/log/force-remove/removals.log
  rotation_days: 7
guard:
  allowed_roots:
    - /data/scratch
    - /tmp/build
  protected_paths:
    - /data/keep
`)

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}

	if opts.JournalPath != "/var/lib/force-remove/removals.db" {
		t.Errorf("Unexpected journal path: %s", opts.JournalPath)
	}
	if !opts.Metrics.Enabled || opts.Metrics.Port != 9187 {
		t.Errorf("Unexpected metrics options: %+v", opts.Metrics)
	}
	if opts.MetricsAddress() != ":9187" {
		t.Errorf("Unexpected metrics address: %s", opts.MetricsAddress())
	}
	if opts.Logging.RotationDays != 7 {
		t.Errorf("Unexpected rotation days: %d", opts.Logging.RotationDays)
	}
	if len(opts.Guard.AllowedRoots) != 2 || opts.Guard.AllowedRoots[0] != "/data/scratch" {
		t.Errorf("Unexpected allowed roots: %v", opts.Guard.AllowedRoots)
	}
	if len(opts.Guard.ProtectedPaths) != 1 || opts.Guard.ProtectedPaths[0] != "/data/keep" {
		t.Errorf("Unexpected protected paths: %v", opts.Guard.ProtectedPaths)
	}
}

func TestLoadOptionsDefaults(t *testing.T) {
	path := writeOptionsFile(t, `
metrics:
  enabled: true
`)

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}

	if opts.Metrics.Port != 9090 {
		t.Errorf("Expected default metrics port 9090, got %d", opts.Metrics.Port)
	}
	if opts.Logging.RotationDays != 30 {
		t.Errorf("Expected default rotation days 30, got %d", opts.Logging.RotationDays)
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadOptions on missing file should fail")
	}
}

func TestLoadOptionsInvalidYAML(t *testing.T) {
	path := writeOptionsFile(t, "journal_path: [not: valid: here\n")

	_, err := LoadOptions(path)
	if err == nil {
		t.Fatal("LoadOptions on broken YAML should fail")
	}
	if !strings.Contains(err.Error(), "decode yaml") {
		t.Errorf("Expected decode error, got: %v", err)
	}
}
