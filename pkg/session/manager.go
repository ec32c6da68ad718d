package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Manager tracks live sessions and expires idle ones.
type Manager struct {
	sessions map[string]*Session
	reserved int // slots held by sessions being built
	mu       sync.RWMutex

	config   Config
	opts     []Option
	observer Observer
	logger   *slog.Logger

	done        chan struct{}
	cleanupDone chan struct{}
	stopOnce    sync.Once

	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64
	totalExpired atomic.Uint64
}

// NewManager creates a Manager and starts its cleanup loop. The observer,
// if not nil, sees every session's lifecycle and renders. opts are applied
// to every session the manager creates.
func NewManager(config Config, logger *slog.Logger, observer Observer, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	config = config.withDefaults()

	m := &Manager{
		sessions:    make(map[string]*Session),
		config:      config,
		observer:    observer,
		logger:      logger.With("component", "session_manager"),
		done:        make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
	m.opts = append([]Option{WithLogger(logger), WithObserver(observer)}, opts...)

	go m.cleanupLoop()
	return m
}

// Create creates and registers a new session. A slot is reserved before
// the session is built so concurrent calls cannot exceed MaxSessions.
func (m *Manager) Create(mount Mount) (*Session, error) {
	m.mu.Lock()
	if m.config.MaxSessions > 0 && len(m.sessions)+m.reserved >= m.config.MaxSessions {
		m.mu.Unlock()
		m.logger.Warn("session limit reached", "max", m.config.MaxSessions)
		return nil, ErrMaxSessions
	}
	m.reserved++
	m.mu.Unlock()

	var s *Session
	defer func() {
		if s == nil {
			m.mu.Lock()
			m.reserved--
			m.mu.Unlock()
		}
	}()

	built := New(mount, m.config, m.opts...)
	built.onClose = m.remove

	m.mu.Lock()
	m.reserved--
	m.sessions[built.ID] = built
	active := len(m.sessions)
	m.mu.Unlock()
	s = built

	m.totalCreated.Add(1)
	m.observer.SessionOpened()
	m.logger.Debug("session created", "session_id", s.ID, "active", active)
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Close closes and removes a session. Unknown IDs are ignored.
func (m *Manager) Close(id string) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.Close()
	}
}

// remove unregisters a closed session. It runs from Session.Close.
func (m *Manager) remove(s *Session) {
	m.mu.Lock()
	_, ok := m.sessions[s.ID]
	delete(m.sessions, s.ID)
	m.mu.Unlock()

	if ok {
		m.totalClosed.Add(1)
		m.observer.SessionClosed()
	}
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cleanupLoop periodically closes idle sessions.
func (m *Manager) cleanupLoop() {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.expireIdle(now)
		case <-m.done:
			return
		}
	}
}

// expireIdle closes sessions idle for longer than IdleTimeout as of now
// and returns how many it closed.
func (m *Manager) expireIdle(now time.Time) int {
	if m.config.IdleTimeout <= 0 {
		return 0
	}

	m.mu.RLock()
	var expired []*Session
	for _, s := range m.sessions {
		if now.Sub(s.LastActive()) > m.config.IdleTimeout {
			expired = append(expired, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range expired {
		s.Close()
	}

	if len(expired) > 0 {
		m.totalExpired.Add(uint64(len(expired)))
		m.logger.Info("closed idle sessions", "count", len(expired), "remaining", m.Count())
	}
	return len(expired)
}

// Shutdown stops the cleanup loop and closes every session. It returns
// ctx.Err() if ctx ends first.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.stopOnce.Do(func() { close(m.done) })
	<-m.cleanupDone

	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	finished := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for _, s := range sessions {
			wg.Add(1)
			go func(s *Session) {
				defer wg.Done()
				s.Close()
			}(s)
		}
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		m.logger.Info("session manager shutdown", "closed_sessions", len(sessions))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns aggregate counters.
func (m *Manager) Stats() ManagerStats {
	return ManagerStats{
		Active:       m.Count(),
		TotalCreated: m.totalCreated.Load(),
		TotalClosed:  m.totalClosed.Load(),
		TotalExpired: m.totalExpired.Load(),
	}
}

// ManagerStats holds aggregate session counters.
type ManagerStats struct {
	Active       int
	TotalCreated uint64
	TotalClosed  uint64
	TotalExpired uint64
}
