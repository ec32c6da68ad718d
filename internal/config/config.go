package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/withhover/internal/errors"
	"github.com/vango-dev/withhover/pkg/routepath"
)

const (
	// FileName is the configuration file looked up when no path is given.
	FileName = "withhover.yaml"

	// DefaultAddress is the default listen address.
	DefaultAddress = ":8080"

	// DefaultLivePath is where the websocket endpoint is mounted.
	DefaultLivePath = "/_withhover/live"
)

// Config is the complete withhover.yaml configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
	Page    PageConfig    `yaml:"page"`
	Export  ExportConfig  `yaml:"export"`

	// path stores where the config was loaded from.
	path string
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	LivePath        string        `yaml:"live_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SessionConfig configures live sessions.
type SessionConfig struct {
	MaxEventQueue int           `yaml:"max_event_queue"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	MaxSessions   int           `yaml:"max_sessions"`

	// HeartbeatInterval is how often live connections are pinged. Values
	// not below server.read_timeout are lowered to 90% of it.
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Path      string `yaml:"path"`
}

// TracingConfig configures OpenTelemetry spans around pointer signals.
type TracingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TracerName string `yaml:"tracer_name"`
}

// PageConfig configures the demo page.
type PageConfig struct {
	Title string `yaml:"title"`

	// Texts are rendered as one hover-wrapped paragraph each.
	Texts []string `yaml:"texts"`
}

// ExportConfig configures snapshot publishing to S3.
type ExportConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// New returns a Config with every default applied.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         DefaultAddress,
			LivePath:        DefaultLivePath,
			ReadTimeout:     60 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Session: SessionConfig{
			MaxEventQueue:     256,
			IdleTimeout:       5 * time.Minute,
			MaxSessions:       10000,
			HeartbeatInterval: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "withhover",
			Path:      "/metrics",
		},
		Tracing: TracingConfig{
			Enabled:    false,
			TracerName: "withhover",
		},
		Page: PageConfig{
			Title: "withhover",
			Texts: []string{"hello"},
		},
		Export: ExportConfig{
			Prefix: "snapshots/",
			Region: "us-east-1",
		},
	}
}

// Load reads configuration from path. An empty path means FileName in the
// working directory, and a missing default file yields the defaults. An
// explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return New(), nil
		}
		return nil, errors.New(errors.ConfigRead).WithDetail("%s", path).Wrap(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.ConfigParse).Wrap(err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Path returns the path the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// applyDefaults refills fields a file explicitly blanked.
func (c *Config) applyDefaults() {
	d := New()
	if c.Server.Address == "" {
		c.Server.Address = d.Server.Address
	}
	if c.Server.LivePath == "" {
		c.Server.LivePath = d.Server.LivePath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Session.MaxEventQueue <= 0 {
		return errors.New(errors.ConfigInvalid).
			WithDetail("session.max_event_queue must be positive, got %d", c.Session.MaxEventQueue)
	}
	if c.Session.MaxSessions <= 0 {
		return errors.New(errors.ConfigInvalid).
			WithDetail("session.max_sessions must be positive, got %d", c.Session.MaxSessions)
	}
	if c.Session.IdleTimeout < 0 || c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 ||
		c.Session.HeartbeatInterval < 0 {
		return errors.New(errors.ConfigInvalid).WithDetail("timeouts must not be negative")
	}

	if err := routepath.ValidateMount(c.Server.LivePath); err != nil {
		return errors.New(errors.ConfigInvalid).
			WithDetail("server.live_path %q: %v", c.Server.LivePath, err)
	}
	if c.Metrics.Enabled {
		if err := routepath.ValidateMount(c.Metrics.Path); err != nil {
			return errors.New(errors.ConfigInvalid).
				WithDetail("metrics.path %q: %v", c.Metrics.Path, err)
		}
		if c.Metrics.Path == c.Server.LivePath {
			return errors.New(errors.ConfigInvalid).
				WithDetail("metrics.path and server.live_path are both %q", c.Metrics.Path)
		}
	}
	if len(c.Page.Texts) == 0 {
		return errors.New(errors.ConfigInvalid).WithDetail("page.texts must not be empty")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New(errors.ConfigInvalid).
			WithDetail("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New(errors.ConfigLogLevel).WithDetail("got %q", c.Log.Level)
	}
	return level, nil
}

// Logger builds the slog logger described by Log, writing to w.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch c.Log.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return slog.New(h), nil
}
