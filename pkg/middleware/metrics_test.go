package middleware

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/withhover/pkg/protocol"
	"github.com/vango-dev/withhover/pkg/session"
)

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func enterDispatch() *session.Dispatch {
	return &session.Dispatch{
		SessionID: "sess-1",
		Event:     &protocol.Event{Seq: 1, HID: "h2", Type: protocol.EventMouseEnter},
	}
}

func TestMetricsMiddlewareRecordsSuccessAndError(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	mw := m.Middleware()

	if err := mw.Handle(enterDispatch(), func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantErr := fmt.Errorf("%w: boom", session.ErrHandlerPanic)
	if err := mw.Handle(enterDispatch(), func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("error not propagated: %v", err)
	}

	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("mouseenter", "success")); got != 1 {
		t.Errorf("events_total(success) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("mouseenter", "error")); got != 1 {
		t.Errorf("events_total(error) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.eventErrors.WithLabelValues("mouseenter", "handler_panic")); got != 1 {
		t.Errorf("event_errors_total = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.eventDuration.WithLabelValues("mouseenter")); got != 2 {
		t.Errorf("event_duration_seconds count = %d, want 2", got)
	}
}

func TestMetricsObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.Rendered()
	m.PatchesSent(3)

	expected := `
# HELP test_active_sessions Number of live sessions
# TYPE test_active_sessions gauge
test_active_sessions 1
# HELP test_patches_sent_total Total number of patches sent to clients
# TYPE test_patches_sent_total counter
test_patches_sent_total 3
# HELP test_sessions_total Total number of sessions created
# TYPE test_sessions_total counter
test_sessions_total 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_active_sessions", "test_patches_sent_total", "test_sessions_total"); err != nil {
		t.Error(err)
	}
	if got := testutil.ToFloat64(m.renders); got != 1 {
		t.Errorf("renders_total = %v, want 1", got)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("x: %w", session.ErrHandlerNotFound), "handler_not_found"},
		{fmt.Errorf("x: %w", session.ErrHandlerPanic), "handler_panic"},
		{&session.Error{Op: "write", Err: session.ErrClosed}, "closed"},
		{session.ErrNoConnection, "closed"},
		{errors.New("disk on fire"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMetricsMiddlewareWithoutEvent(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	if err := m.Middleware().Handle(&session.Dispatch{}, func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("unknown", "success")); got != 1 {
		t.Errorf("events_total(unknown) = %v", got)
	}
}
