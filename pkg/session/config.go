package session

import "time"

// Config holds per-session limits and timeouts.
type Config struct {
	// MaxEventQueue is the capacity of the per-session event queue.
	MaxEventQueue int

	// IdleTimeout closes sessions with no activity for this long.
	// Zero disables idle expiry.
	IdleTimeout time.Duration

	// ReadTimeout bounds the wait for the next client frame or pong.
	ReadTimeout time.Duration

	// HeartbeatInterval is how often the session pings the client. Each
	// pong extends the read deadline, so a still pointer does not drop the
	// connection. It is kept below ReadTimeout.
	HeartbeatInterval time.Duration

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// MaxSessions caps concurrent sessions in a Manager. Zero means no cap.
	MaxSessions int

	// CleanupInterval is how often the Manager scans for idle sessions.
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxEventQueue:     256,
		IdleTimeout:       5 * time.Minute,
		ReadTimeout:       60 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxSessions:       10000,
		CleanupInterval:   30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxEventQueue <= 0 {
		c.MaxEventQueue = d.MaxEventQueue
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.ReadTimeout > 0 && c.HeartbeatInterval >= c.ReadTimeout {
		c.HeartbeatInterval = c.ReadTimeout * 9 / 10
	}
	return c
}
