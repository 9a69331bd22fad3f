package config

import (
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/vango-dev/weft/internal/errors"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "weft.yaml"

	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "WEFT_"

	// DefaultFrameInterval is the default paint interval.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultMaxContextDepth bounds the Provider lookup walk.
	DefaultMaxContextDepth = 150

	// DefaultInspectorAddr is the default inspector listen address.
	DefaultInspectorAddr = "localhost:7070"
)

// Config is the complete weft configuration.
type Config struct {
	// Log configures the slog handler.
	Log LogConfig `yaml:"log" envPrefix:"LOG_"`

	// Runtime configures the scheduler.
	Runtime RuntimeConfig `yaml:"runtime" envPrefix:"RUNTIME_"`

	// Metrics configures the Prometheus collectors.
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`

	// Inspector configures the devtools server.
	Inspector InspectorConfig `yaml:"inspector" envPrefix:"INSPECTOR_"`

	// Snapshot configures HTML snapshot export.
	Snapshot SnapshotConfig `yaml:"snapshot" envPrefix:"SNAPSHOT_"`

	// path stores the file the config was loaded from, if any.
	path string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL"`

	// Format is text or json.
	Format string `yaml:"format" env:"FORMAT"`
}

// RuntimeConfig contains scheduler settings.
type RuntimeConfig struct {
	// Paint defers effects to paint frames. When false they run from
	// microtasks.
	Paint bool `yaml:"paint" env:"PAINT"`

	// FrameInterval is how often the event loop paints.
	FrameInterval time.Duration `yaml:"frame_interval" env:"FRAME_INTERVAL"`

	// MaxContextDepth bounds how far UseContext walks up the tree.
	MaxContextDepth int `yaml:"max_context_depth" env:"MAX_CONTEXT_DEPTH"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace is the metrics namespace.
	Namespace string `yaml:"namespace" env:"NAMESPACE"`

	// Addr serves /metrics when set.
	Addr string `yaml:"addr" env:"ADDR"`
}

// InspectorConfig contains devtools server settings.
type InspectorConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" env:"ADDR"`
}

// SnapshotConfig contains snapshot export settings.
type SnapshotConfig struct {
	// Out is a file path or an s3://bucket/key URL. Empty writes to stdout.
	Out string `yaml:"out" env:"OUT"`

	// S3 configures the S3 client used for s3:// destinations.
	S3 S3Config `yaml:"s3" envPrefix:"S3_"`
}

// S3Config contains S3 client settings.
type S3Config struct {
	// Region is the AWS region.
	Region string `yaml:"region" env:"REGION"`

	// Endpoint overrides the S3 endpoint (e.g. MinIO).
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`

	// PathStyle forces path-style addressing.
	PathStyle bool `yaml:"path_style" env:"PATH_STYLE"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Runtime: RuntimeConfig{
			Paint:           true,
			FrameInterval:   DefaultFrameInterval,
			MaxContextDepth: DefaultMaxContextDepth,
		},
		Metrics: MetricsConfig{
			Namespace: "weft",
		},
		Inspector: InspectorConfig{
			Addr: DefaultInspectorAddr,
		},
		Snapshot: SnapshotConfig{
			S3: S3Config{
				Region: "us-east-1",
			},
		},
	}
}

// Load reads path (a missing file is not an error), overlays the process
// environment and validates the result.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment. A nil environ reads
// the process environment.
func LoadWithEnv(path string, environ map[string]string) (*Config, error) {
	cfg := New()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(environ); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.New("W021").WithDetail(path).Wrap(err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.New("W021").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + path + " is valid YAML")
	}
	c.path = path
	return nil
}

func (c *Config) applyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.New("W020").WithDetail("environment").Wrap(err)
	}
	return nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("W020").
			WithDetailf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("W020").
			WithDetailf("log.format %q must be text or json", c.Log.Format)
	}
	if c.Runtime.FrameInterval <= 0 {
		return errors.New("W020").
			WithDetail("runtime.frame_interval must be positive")
	}
	if c.Runtime.MaxContextDepth <= 0 {
		return errors.New("W020").
			WithDetail("runtime.max_context_depth must be positive")
	}
	if ep := c.Snapshot.S3.Endpoint; ep != "" {
		u, err := url.Parse(ep)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("W020").
				WithDetailf("snapshot.s3.endpoint %q is not an absolute URL", ep)
		}
	}
	return nil
}
