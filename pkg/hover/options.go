package hover

import (
	"log/slog"

	"github.com/vango-dev/withhover/pkg/reactive"
	"github.com/vango-dev/withhover/pkg/vdom"
)

// Instance is the type-erased view of a Composite used by hosts that
// schedule renders and route pointer signals.
type Instance interface {
	vdom.Component

	// ID returns the composite's unique identifier.
	ID() uint64

	// Hovered returns the current hover state.
	Hovered() bool

	// OnEnterSignal handles a pointer-enter signal.
	OnEnterSignal()

	// OnLeaveSignal handles a pointer-leave signal.
	OnLeaveSignal()

	// Dispose discards the hover state.
	Dispose()
}

// Scheduler receives a composite whenever its state changes and it needs
// to be rendered again.
type Scheduler interface {
	Schedule(Instance)
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(Instance)

// Schedule calls f(c).
func (f SchedulerFunc) Schedule(c Instance) { f(c) }

// Option configures a Factory or a single Composite.
type Option func(*options)

type options struct {
	scheduler Scheduler
	owner     *reactive.Owner
	attrs     []vdom.Attr
	logger    *slog.Logger
}

// WithScheduler sets where re-render requests go.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithOwner makes the composite's scope a child of owner, so disposing
// owner disposes the composite.
func WithOwner(owner *reactive.Owner) Option {
	return func(o *options) {
		o.owner = owner
	}
}

// WithContainerAttrs adds attributes to the bounding container.
func WithContainerAttrs(attrs ...vdom.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// WithLogger sets the logger for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(base options, opts []Option) options {
	o := base
	o.attrs = append([]vdom.Attr(nil), base.attrs...)
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
