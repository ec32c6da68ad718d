// Package middleware provides session middleware for withhover servers.
//
// # OpenTelemetry
//
// OpenTelemetry starts a span for every dispatched pointer signal. Spans
// carry the session ID, the event type, the target HID and the number of
// patches the event produced:
//
//	mgr := session.NewManager(cfg, logger, nil,
//	    session.WithMiddleware(middleware.OpenTelemetry(
//	        middleware.WithTracerName("my-app"),
//	    )),
//	)
//
// The tracer comes from the global provider unless WithTracerProvider is
// given.
//
// # Prometheus
//
// Metrics records event counts and durations as middleware and session
// lifecycle as a session.Observer:
//
//   - withhover_events_total{type,status}
//   - withhover_event_duration_seconds{type}
//   - withhover_event_errors_total{type,error_type}
//   - withhover_renders_total
//   - withhover_patches_sent_total
//   - withhover_active_sessions
//   - withhover_sessions_total
//
// Register both with the manager:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	mgr := session.NewManager(cfg, logger, m,
//	    session.WithMiddleware(m.Middleware()),
//	)
package middleware
