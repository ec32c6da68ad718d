package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vango-dev/withhover/pkg/hover"
	"github.com/vango-dev/withhover/pkg/vdom"
)

type countingObserver struct {
	opened, closed, rendered, patches atomic.Int64
}

func (o *countingObserver) SessionOpened()    { o.opened.Add(1) }
func (o *countingObserver) SessionClosed()    { o.closed.Add(1) }
func (o *countingObserver) Rendered()         { o.rendered.Add(1) }
func (o *countingObserver) PatchesSent(n int) { o.patches.Add(int64(n)) }

func TestManagerLifecycle(t *testing.T) {
	obs := &countingObserver{}
	m := NewManager(DefaultConfig(), nil, obs)
	defer m.Shutdown(context.Background())

	s, err := m.Create(textMount(nil, "hello"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Render(); err != nil {
		t.Fatal(err)
	}

	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if m.Count() != 1 || obs.opened.Load() != 1 || obs.rendered.Load() != 1 {
		t.Errorf("count=%d opened=%d rendered=%d", m.Count(), obs.opened.Load(), obs.rendered.Load())
	}

	m.Close(s.ID)
	m.Close(s.ID)
	if _, err := m.Get(s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Close = %v", err)
	}
	if obs.closed.Load() != 1 {
		t.Errorf("closed = %d, want 1", obs.closed.Load())
	}

	stats := m.Stats()
	if stats.Active != 0 || stats.TotalCreated != 1 || stats.TotalClosed != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestManagerMaxSessions(t *testing.T) {
	m := NewManager(Config{MaxSessions: 1}, nil, nil)
	defer m.Shutdown(context.Background())

	if _, err := m.Create(textMount(nil, "a")); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create(textMount(nil, "b")); !errors.Is(err, ErrMaxSessions) {
		t.Errorf("Create = %v, want ErrMaxSessions", err)
	}
}

func TestManagerMaxSessionsCountsSessionsBeingBuilt(t *testing.T) {
	m := NewManager(Config{MaxSessions: 1}, nil, nil)
	defer m.Shutdown(context.Background())

	entered := make(chan struct{})
	release := make(chan struct{})
	slow := func(opts ...hover.Option) vdom.Component {
		close(entered)
		<-release
		return textMount(nil, "slow")(opts...)
	}

	result := make(chan error, 1)
	go func() {
		_, err := m.Create(slow)
		result <- err
	}()
	<-entered

	if _, err := m.Create(textMount(nil, "fast")); !errors.Is(err, ErrMaxSessions) {
		t.Errorf("Create during a pending Create = %v, want ErrMaxSessions", err)
	}

	close(release)
	if err := <-result; err != nil {
		t.Fatalf("slow Create: %v", err)
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
}

func TestManagerReleasesSlotWhenMountPanics(t *testing.T) {
	m := NewManager(Config{MaxSessions: 1}, nil, nil)
	defer m.Shutdown(context.Background())

	func() {
		defer func() { _ = recover() }()
		m.Create(func(...hover.Option) vdom.Component { panic("mount failed") })
	}()

	if _, err := m.Create(textMount(nil, "a")); err != nil {
		t.Errorf("Create after a failed mount = %v", err)
	}
}

func TestManagerObserverReachesSessions(t *testing.T) {
	obs := &countingObserver{}
	m := NewManager(DefaultConfig(), nil, obs)
	defer m.Shutdown(context.Background())

	s, err := m.Create(textMount(nil, "a"))
	if err != nil {
		t.Fatal(err)
	}
	if s.observer != Observer(obs) {
		t.Errorf("session observer = %T, want the manager's", s.observer)
	}
}

func TestManagerExpireIdle(t *testing.T) {
	m := NewManager(Config{IdleTimeout: time.Minute}, nil, nil)
	defer m.Shutdown(context.Background())

	s, _ := m.Create(textMount(nil, "a"))

	if n := m.expireIdle(time.Now()); n != 0 {
		t.Fatalf("fresh session expired: %d", n)
	}
	if n := m.expireIdle(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("expired = %d, want 1", n)
	}
	if !s.IsClosed() || m.Count() != 0 || m.Stats().TotalExpired != 1 {
		t.Errorf("closed=%t count=%d stats=%+v", s.IsClosed(), m.Count(), m.Stats())
	}
}

func TestManagerShutdown(t *testing.T) {
	m := NewManager(DefaultConfig(), nil, nil)
	a, _ := m.Create(textMount(nil, "a"))
	b, _ := m.Create(textMount(nil, "b"))

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !a.IsClosed() || !b.IsClosed() || m.Count() != 0 {
		t.Errorf("sessions left open: a=%t b=%t count=%d", a.IsClosed(), b.IsClosed(), m.Count())
	}
	if err := m.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown: %v", err)
	}
}
