package server

import (
	"time"

	"github.com/vango-dev/withhover/internal/config"
	"github.com/vango-dev/withhover/pkg/session"
)

// Config configures a Server.
type Config struct {
	// Address is the listen address.
	Address string

	// LivePath is where the websocket endpoint is mounted.
	LivePath string

	// Title is the document title of the served page.
	Title string

	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	HandshakeTimeout time.Duration

	Session session.Config
	Metrics MetricsConfig
	Tracing TracingConfig
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool
	Namespace string
	Path      string
}

// TracingConfig configures OpenTelemetry spans.
type TracingConfig struct {
	Enabled    bool
	TracerName string
}

// DefaultConfig returns the defaults of an empty withhover.yaml.
func DefaultConfig() Config {
	return FromConfig(config.New())
}

// FromConfig maps a loaded configuration file onto server settings.
func FromConfig(c *config.Config) Config {
	return Config{
		Address:          c.Server.Address,
		LivePath:         c.Server.LivePath,
		Title:            c.Page.Title,
		ReadTimeout:      c.Server.ReadTimeout,
		WriteTimeout:     c.Server.WriteTimeout,
		ShutdownTimeout:  c.Server.ShutdownTimeout,
		HandshakeTimeout: 10 * time.Second,
		Session: session.Config{
			MaxEventQueue:     c.Session.MaxEventQueue,
			IdleTimeout:       c.Session.IdleTimeout,
			ReadTimeout:       c.Server.ReadTimeout,
			HeartbeatInterval: c.Session.HeartbeatInterval,
			WriteTimeout:      c.Server.WriteTimeout,
			MaxSessions:       c.Session.MaxSessions,
		},
		Metrics: MetricsConfig{
			Enabled:   c.Metrics.Enabled,
			Namespace: c.Metrics.Namespace,
			Path:      c.Metrics.Path,
		},
		Tracing: TracingConfig{
			Enabled:    c.Tracing.Enabled,
			TracerName: c.Tracing.TracerName,
		},
	}
}
