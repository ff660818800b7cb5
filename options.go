package forceremove

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MetricsOptions configures the optional Prometheus surface
type MetricsOptions struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Port    int  `yaml:"port" json:"port"`
}

// LoggingOptions configures the optional removal log file
type LoggingOptions struct {
	Path         string `yaml:"path" json:"path"`
	RotationDays int    `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

// GuardOptions configures target validation
type GuardOptions struct {
	AllowedRoots   []string `yaml:"allowed_roots" json:"allowed_roots"`     // Empty: anywhere outside protected paths
	ProtectedPaths []string `yaml:"protected_paths" json:"protected_paths"` // Extra paths on top of system defaults
}

// Options configures an Engine. The zero value is valid: no journal,
// no metrics, silent logging, default guard.
type Options struct {
	JournalPath string         `yaml:"journal_path" json:"journal_path"` // Path to SQLite removal history
	Metrics     MetricsOptions `yaml:"metrics" json:"metrics"`
	Logging     LoggingOptions `yaml:"logging" json:"logging"`
	Guard       GuardOptions   `yaml:"guard" json:"guard"`
}

// LoadOptions reads Options from a YAML file
func LoadOptions(path string) (*Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open options: %w", err)
	}
	defer f.Close()

	opts, err := decodeOptions(f)
	if err != nil {
		return nil, err
	}
	if err := opts.validateAndDefault(); err != nil {
		return nil, err
	}
	return opts, nil
}

func decodeOptions(r io.Reader) (*Options, error) {
	opts := &Options{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(opts); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return opts, nil
}

func (o *Options) validateAndDefault() error {
	if o.Metrics.Enabled && o.Metrics.Port == 0 {
		o.Metrics.Port = 9090
	}

	if o.Logging.RotationDays <= 0 {
		o.Logging.RotationDays = 30 // Default: keep logs for 30 days
	}

	return nil
}

// MetricsAddress returns the listen address for the metrics server
func (o *Options) MetricsAddress() string {
	return fmt.Sprintf(":%d", o.Metrics.Port)
}
