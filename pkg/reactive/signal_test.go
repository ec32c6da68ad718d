package reactive

import (
	"sync"
	"sync/atomic"
	"testing"
)

// testListener counts MarkDirty calls.
type testListener struct {
	id    uint64
	dirty atomic.Int32
}

func newTestListener() *testListener {
	return &testListener{id: NextID()}
}

func (l *testListener) MarkDirty()          { l.dirty.Add(1) }
func (l *testListener) ID() uint64          { return l.id }
func (l *testListener) getDirtyCount() int { return int(l.dirty.Load()) }

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalSubscription(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	unsubscribe := count.Subscribe(listener)

	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}

	// Same value: no notification
	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("unchanged write should not notify, got %d", listener.getDirtyCount())
	}

	unsubscribe()
	count.Set(2)
	if listener.getDirtyCount() != 1 {
		t.Errorf("unsubscribed listener notified, got %d", listener.getDirtyCount())
	}
}

func TestSignalSubscribeDeduplicates(t *testing.T) {
	s := NewSignal("a")
	l := newTestListener()

	s.Subscribe(l)
	s.Subscribe(l)
	if s.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", s.Subscribers())
	}

	s.Set("b")
	if l.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", l.getDirtyCount())
	}
}

func TestSignalDispose(t *testing.T) {
	s := NewSignal(1)
	l := newTestListener()
	s.Subscribe(l)

	s.Dispose()
	s.Set(2)

	if l.getDirtyCount() != 0 {
		t.Errorf("disposed signal should not notify, got %d", l.getDirtyCount())
	}
	if s.Get() != 2 {
		t.Errorf("value should still update, got %d", s.Get())
	}
}

func TestSignalWithEquals(t *testing.T) {
	type point struct{ X, Y int }
	s := NewSignal(point{1, 1}).WithEquals(func(a, b point) bool { return a.X == b.X })
	l := newTestListener()
	s.Subscribe(l)

	s.Set(point{1, 9})
	if l.getDirtyCount() != 0 {
		t.Error("custom equality should treat equal X as unchanged")
	}
	s.Set(point{2, 9})
	if l.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", l.getDirtyCount())
	}
}

func TestSignalDeepEqualFallback(t *testing.T) {
	s := NewSignal([]string{"a"})
	l := newTestListener()
	s.Subscribe(l)

	s.Set([]string{"a"})
	if l.getDirtyCount() != 0 {
		t.Error("equal slices should not notify")
	}
}

func TestBoolSignal(t *testing.T) {
	b := NewBoolSignal(false)
	l := newTestListener()
	b.Subscribe(l)

	b.SetTrue()
	if !b.Get() {
		t.Error("expected true after SetTrue")
	}
	b.SetTrue()
	b.SetFalse()
	if b.Get() {
		t.Error("expected false after SetFalse")
	}
	b.Toggle()
	if !b.Get() {
		t.Error("expected true after Toggle")
	}
	if l.getDirtyCount() != 3 {
		t.Errorf("expected 3 notifications, got %d", l.getDirtyCount())
	}
}

func TestSignalConcurrentSet(t *testing.T) {
	s := NewSignal(0)
	l := newTestListener()
	s.Subscribe(l)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	if s.Get() != 50 {
		t.Errorf("expected 50, got %d", s.Get())
	}
	if l.getDirtyCount() != 50 {
		t.Errorf("expected 50 notifications, got %d", l.getDirtyCount())
	}
}

func TestListenerFunc(t *testing.T) {
	calls := 0
	l := NewListenerFunc(func() { calls++ })
	other := NewListenerFunc(nil)

	if l.ID() == other.ID() {
		t.Error("listener IDs should be unique")
	}
	l.MarkDirty()
	other.MarkDirty()
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
