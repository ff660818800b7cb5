package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Removal subsystem metrics
var (
	// RemovalDuration tracks how long tree removals take
	RemovalDuration prometheus.Histogram

	// BytesFreedTotal tracks total bytes freed across all removals
	BytesFreedTotal prometheus.Counter

	// NodesRemovedTotal tracks removed nodes by kind (file, directory, symlink)
	NodesRemovedTotal *prometheus.CounterVec

	// RemediationsTotal counts one-time permission remediations performed
	RemediationsTotal prometheus.Counter

	// ErrorsTotal counts terminal removal failures
	ErrorsTotal prometheus.Counter

	// RemovalLastRunTimestamp records Unix timestamp of last removal run
	RemovalLastRunTimestamp prometheus.Gauge
)

// initRemovalMetrics initializes all removal subsystem metrics
func initRemovalMetrics() {
	RemovalDuration = NewDurationHistogram(
		"forceremove_removal_duration_seconds",
		"Duration of tree removal runs in seconds.",
	)

	BytesFreedTotal = NewBytesCounter(
		"forceremove_bytes_freed_total",
		"Total bytes freed by removed files.",
	)

	NodesRemovedTotal = NewCounterVec(
		"forceremove_nodes_removed_total",
		"Total filesystem nodes removed, by kind.",
		[]string{"kind"},
	)

	RemediationsTotal = NewCounter(
		"forceremove_remediations_total",
		"Total permission remediations performed before retrying.",
	)

	ErrorsTotal = NewCounter(
		"forceremove_errors_total",
		"Total terminal removal failures.",
	)

	RemovalLastRunTimestamp = NewSizeGauge(
		"forceremove_removal_last_run_timestamp",
		"Timestamp of the last removal run (Unix epoch seconds).",
	)
}

// registerRemovalMetrics registers all removal metrics with Prometheus
func registerRemovalMetrics() {
	prometheus.MustRegister(RemovalDuration)
	prometheus.MustRegister(BytesFreedTotal)
	prometheus.MustRegister(NodesRemovedTotal)
	prometheus.MustRegister(RemediationsTotal)
	prometheus.MustRegister(ErrorsTotal)
	prometheus.MustRegister(RemovalLastRunTimestamp)
}

// RecordRemovalRun updates the last run timestamp to current time
func RecordRemovalRun() {
	RemovalLastRunTimestamp.Set(float64(time.Now().Unix()))
}

// RecordNodeRemoved records one removed node and the bytes it freed
func RecordNodeRemoved(kind string, bytes int64) {
	NodesRemovedTotal.WithLabelValues(kind).Inc()
	if bytes > 0 {
		BytesFreedTotal.Add(float64(bytes))
	}
}
