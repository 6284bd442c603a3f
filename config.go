package rwset

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// Configuration
// ============================================================================

// Config defines the instrumentation options of an RWMutex.
// A lock built from a zero Config behaves exactly like a zero RWMutex.
type Config struct {
	// name identifies the lock in log records and metric attributes.
	// Instrumented locks without a name get a random one.
	name string

	// logger receives slow acquisition and long hold warnings.
	// If nil, nothing is logged.
	logger *slog.Logger

	// slowThreshold is the wait (or write hold) duration above which a
	// warning is logged. Zero disables the warnings.
	slowThreshold time.Duration

	// meterProvider creates the lock instruments. If nil, no metrics are
	// recorded.
	meterProvider metric.MeterProvider
}

// WithName sets the name reported in logs and metrics.
func WithName(name string) func(*Config) {
	return func(c *Config) {
		c.name = name
	}
}

// WithLogger sets the structured logger used for lock warnings.
func WithLogger(logger *slog.Logger) func(*Config) {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithSlowThreshold logs a warning whenever a caller waits longer than d to
// acquire the lock, or a writer holds it longer than d. It requires
// WithLogger; on its own it leaves the lock uninstrumented.
func WithSlowThreshold(d time.Duration) func(*Config) {
	return func(c *Config) {
		c.slowThreshold = d
	}
}

// WithMeterProvider records lock metrics with instruments from mp.
func WithMeterProvider(mp metric.MeterProvider) func(*Config) {
	return func(c *Config) {
		c.meterProvider = mp
	}
}

// WithMetrics records lock metrics through the global OpenTelemetry meter
// provider.
//
//	otel.SetMeterProvider(yourProvider)
//	mu := rwset.NewRWMutex(rwset.WithMetrics())
func WithMetrics() func(*Config) {
	return func(c *Config) {
		c.meterProvider = otel.GetMeterProvider()
	}
}

func (c *Config) instrumented() bool {
	return c.logger != nil || c.meterProvider != nil
}

func newConfig(options ...func(*Config)) *Config {
	var cfg Config
	for _, o := range options {
		o(&cfg)
	}
	if cfg.instrumented() && cfg.name == "" {
		cfg.name = "rwmutex-" + uuid.NewString()
	}
	return &cfg
}

// ============================================================================
// File configuration
// ============================================================================

// FileConfig is the YAML form of a lock configuration plus the named sets a
// Registry should create up front.
//
//	lock:
//	  name: catalog
//	  slow_threshold: 250ms
//	  metrics: true
//	sets:
//	  - name: users
//	    sorted: true
//	  - name: events
type FileConfig struct {
	Lock LockConfig  `yaml:"lock"`
	Sets []SetConfig `yaml:"sets"`
}

// LockConfig mirrors the lock options of Config.
type LockConfig struct {
	Name          string        `yaml:"name"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
	Metrics       bool          `yaml:"metrics"`
}

// SetConfig declares one named set of a Registry.
type SetConfig struct {
	Name   string `yaml:"name"`
	Sorted bool   `yaml:"sorted"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data.
func ParseConfig(data []byte) (*FileConfig, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if fc.Lock.SlowThreshold < 0 {
		return nil, fmt.Errorf("slow_threshold must not be negative: %v", fc.Lock.SlowThreshold)
	}
	seen := make(map[string]struct{}, len(fc.Sets))
	for i, s := range fc.Sets {
		if s.Name == "" {
			return nil, fmt.Errorf("sets[%d]: name is required", i)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("sets[%d]: duplicate set name %q", i, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return &fc, nil
}

// Options converts the lock section into options. logger is attached as is,
// since a logger cannot be described in YAML.
func (fc *FileConfig) Options(logger *slog.Logger) []func(*Config) {
	var opts []func(*Config)
	if fc.Lock.Name != "" {
		opts = append(opts, WithName(fc.Lock.Name))
	}
	if fc.Lock.SlowThreshold > 0 {
		opts = append(opts, WithSlowThreshold(fc.Lock.SlowThreshold))
	}
	if fc.Lock.Metrics {
		opts = append(opts, WithMetrics())
	}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	return opts
}
