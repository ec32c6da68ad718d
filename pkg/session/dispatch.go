package session

import (
	"context"

	"github.com/vango-dev/withhover/pkg/protocol"
)

// Dispatch describes one event being processed by a session.
type Dispatch struct {
	// Context is cancelled when the session closes. Middleware may replace
	// it, for example to carry a trace span.
	Context context.Context

	SessionID string
	Event     *protocol.Event

	// Patches is the number of patches the event produced. It is set
	// before next returns.
	Patches int
}

// Middleware wraps event processing.
type Middleware interface {
	Handle(d *Dispatch, next func() error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(d *Dispatch, next func() error) error

// Handle calls f(d, next).
func (f MiddlewareFunc) Handle(d *Dispatch, next func() error) error {
	return f(d, next)
}

// chain runs final inside mws, first middleware outermost.
func chain(mws []Middleware, d *Dispatch, final func() error) error {
	next := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, inner := mws[i], next
		next = func() error { return mw.Handle(d, inner) }
	}
	return next()
}

// Observer receives lifecycle notifications, typically for metrics.
type Observer interface {
	SessionOpened()
	SessionClosed()
	Rendered()
	PatchesSent(n int)
}

type nopObserver struct{}

func (nopObserver) SessionOpened()  {}
func (nopObserver) SessionClosed()  {}
func (nopObserver) Rendered()       {}
func (nopObserver) PatchesSent(int) {}
