package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestMetricsInit verifies that Init() is idempotent and registers metrics
func TestMetricsInit(t *testing.T) {
	// Call Init multiple times - should be idempotent via sync.Once
	Init()
	Init()
	Init()

	if RemovalDuration == nil {
		t.Error("RemovalDuration should be initialized")
	}
	if BytesFreedTotal == nil {
		t.Error("BytesFreedTotal should be initialized")
	}
	if NodesRemovedTotal == nil {
		t.Error("NodesRemovedTotal should be initialized")
	}
	if RemediationsTotal == nil {
		t.Error("RemediationsTotal should be initialized")
	}
	if ErrorsTotal == nil {
		t.Error("ErrorsTotal should be initialized")
	}
	if RemovalLastRunTimestamp == nil {
		t.Error("RemovalLastRunTimestamp should be initialized")
	}

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	expectedMetrics := []string{
		"forceremove_removal_duration_seconds",
		"forceremove_bytes_freed_total",
		"forceremove_remediations_total",
		"forceremove_errors_total",
		"forceremove_removal_last_run_timestamp",
	}

	foundMetrics := make(map[string]bool)
	for _, mf := range mfs {
		foundMetrics[*mf.Name] = true
	}

	for _, expected := range expectedMetrics {
		if !foundMetrics[expected] {
			t.Errorf("Expected metric %s not found in registry", expected)
		}
	}
}

// TestRecordNodeRemoved verifies the per-kind counter and bytes counter
func TestRecordNodeRemoved(t *testing.T) {
	Init()

	RecordNodeRemoved("file", 1024)
	RecordNodeRemoved("directory", 0)
	RecordNodeRemoved("symlink", 0)

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if *mf.Name == "forceremove_nodes_removed_total" {
			found = true
			if len(mf.Metric) < 3 {
				t.Errorf("Expected at least 3 kind labels, got %d", len(mf.Metric))
			}
		}
	}
	if !found {
		t.Error("forceremove_nodes_removed_total not found in registry")
	}
}

// TestHelperFunctions verifies that helper functions create valid metrics
func TestHelperFunctions(t *testing.T) {
	t.Run("NewDurationHistogram", func(t *testing.T) {
		if h := NewDurationHistogram("test_duration", "Test duration metric"); h == nil {
			t.Error("NewDurationHistogram returned nil")
		}
	})

	t.Run("NewBytesCounter", func(t *testing.T) {
		if c := NewBytesCounter("test_bytes", "Test bytes metric"); c == nil {
			t.Error("NewBytesCounter returned nil")
		}
	})

	t.Run("NewCounter", func(t *testing.T) {
		if c := NewCounter("test_counter", "Test counter metric"); c == nil {
			t.Error("NewCounter returned nil")
		}
	})

	t.Run("NewCounterVec", func(t *testing.T) {
		if c := NewCounterVec("test_counter_vec", "Test counter vec", []string{"kind"}); c == nil {
			t.Error("NewCounterVec returned nil")
		}
	})

	t.Run("NewSizeGauge", func(t *testing.T) {
		if g := NewSizeGauge("test_gauge", "Test gauge metric"); g == nil {
			t.Error("NewSizeGauge returned nil")
		}
	})
}
