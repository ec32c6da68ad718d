package hover

import (
	"log/slog"
	"sync/atomic"

	"github.com/vango-dev/withhover/pkg/reactive"
	"github.com/vango-dev/withhover/pkg/vdom"
)

// Unit is a display unit: a pure function of its full inputs.
type Unit[P HasHoverInput] func(P) *vdom.VNode

// Factory builds composites that wrap one display unit.
// The zero value is not usable; create factories with With.
type Factory[C Merger[P], P HasHoverInput] struct {
	unit Unit[P]
	opts options
}

// With returns a factory for composites that render unit with hover state
// injected. C is the caller input type and is usually the only type
// argument that has to be written out:
//
//	var TextWithHover = hover.With[text.Inputs](text.Component)
func With[C Merger[P], P HasHoverInput](unit Unit[P], opts ...Option) *Factory[C, P] {
	if unit == nil {
		panic("hover: With called with nil unit")
	}
	f := &Factory[C, P]{unit: unit}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f
}

// New instantiates a composite with the given caller inputs. The hover
// state starts false. Options given here override the factory's.
func (f *Factory[C, P]) New(caller C, opts ...Option) *Composite[C, P] {
	o := buildOptions(f.opts, opts)

	c := &Composite[C, P]{
		id:        reactive.NextID(),
		unit:      f.unit,
		caller:    caller,
		hovered:   reactive.NewBoolSignal(false),
		owner:     reactive.NewOwner(o.owner),
		scheduler: o.scheduler,
		attrs:     o.attrs,
		logger:    o.logger,
	}

	unsubscribe := c.hovered.Subscribe(c)
	c.owner.OnCleanup(func() {
		unsubscribe()
		c.hovered.Dispose()
	})
	return c
}

// Composite is one instantiated wrapper. It owns a hover signal and renders
// a bounding container around the wrapped unit.
type Composite[C Merger[P], P HasHoverInput] struct {
	id        uint64
	unit      Unit[P]
	caller    C
	hovered   *reactive.BoolSignal
	owner     *reactive.Owner
	scheduler Scheduler
	attrs     []vdom.Attr
	logger    *slog.Logger

	dirty     atomic.Bool
	scheduled atomic.Int64
	renders   atomic.Int64
}

// ID returns the composite's unique identifier.
func (c *Composite[C, P]) ID() uint64 {
	return c.id
}

// Caller returns the caller inputs the composite was created with.
func (c *Composite[C, P]) Caller() C {
	return c.caller
}

// Hovered returns the current hover state.
func (c *Composite[C, P]) Hovered() bool {
	return c.hovered.Get()
}

// Inputs returns the full inputs the wrapped unit receives on the next
// render: the caller inputs merged with the live hover state.
func (c *Composite[C, P]) Inputs() P {
	return MustMerge[C, P](c.caller, Injected{IsHovered: c.hovered.Get()})
}

// OnEnterSignal sets the hover state to true.
func (c *Composite[C, P]) OnEnterSignal() {
	if c.owner.Disposed() {
		return
	}
	c.logger.Debug("pointer enter", "composite", c.id)
	c.hovered.SetTrue()
}

// OnLeaveSignal sets the hover state to false.
func (c *Composite[C, P]) OnLeaveSignal() {
	if c.owner.Disposed() {
		return
	}
	c.logger.Debug("pointer leave", "composite", c.id)
	c.hovered.SetFalse()
}

// MarkDirty implements reactive.Listener. The hover signal calls it after
// every change; it records the pending render and notifies the scheduler.
func (c *Composite[C, P]) MarkDirty() {
	if c.owner.Disposed() {
		return
	}
	c.dirty.Store(true)
	c.scheduled.Add(1)
	if c.scheduler != nil {
		c.scheduler.Schedule(c)
	}
}

// Dirty reports whether a state change happened since the last render.
func (c *Composite[C, P]) Dirty() bool {
	return c.dirty.Load()
}

// Pending returns how many re-renders have been requested.
func (c *Composite[C, P]) Pending() int64 {
	return c.scheduled.Load()
}

// Renders returns how many times Render has run.
func (c *Composite[C, P]) Renders() int64 {
	return c.renders.Load()
}

// Render returns the bounding container with the wrapped unit inside.
func (c *Composite[C, P]) Render() *vdom.VNode {
	c.dirty.Store(false)
	c.renders.Add(1)

	in := c.Inputs()
	unit := c.unit
	return vdom.Div(
		c.attrs,
		vdom.Data("hover", boolString(in.Hovered())),
		vdom.OnMouseEnter(c.OnEnterSignal),
		vdom.OnMouseLeave(c.OnLeaveSignal),
		vdom.Func(func() *vdom.VNode { return unit(in) }),
	)
}

// Dispose discards the hover state. Signals delivered afterwards are
// ignored and nothing is scheduled.
func (c *Composite[C, P]) Dispose() {
	c.owner.Dispose()
}

// Disposed reports whether Dispose has been called, directly or through
// the parent owner.
func (c *Composite[C, P]) Disposed() bool {
	return c.owner.Disposed()
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
