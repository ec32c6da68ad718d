package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/withhover/pkg/hover"
	"github.com/vango-dev/withhover/pkg/protocol"
	"github.com/vango-dev/withhover/pkg/reactive"
	"github.com/vango-dev/withhover/pkg/render"
	"github.com/vango-dev/withhover/pkg/vdom"
)

// RootHID is the hydration ID of the root element. A re-render replaces it
// when a changed composite cannot be addressed on its own.
const RootHID = "h1"

// Mount builds the root component of a session. Every composite in the
// tree must be created with opts so it reports state changes to the
// session and is disposed with it. The root must render a single element.
type Mount func(opts ...hover.Option) vdom.Component

// Option configures a Session.
type Option func(*Session)

// WithMiddleware appends event middleware. The first one added runs
// outermost.
func WithMiddleware(mws ...Middleware) Option {
	return func(s *Session) {
		s.middleware = append(s.middleware, mws...)
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session is one client's live view: a root component tree, its hover
// state, and the connection patches are sent on.
type Session struct {
	ID        string
	CreatedAt time.Time

	lastActive atomic.Int64

	// Connection
	conn     Conn
	connMu   sync.Mutex // protects conn writes
	attached atomic.Bool
	closed   atomic.Bool

	sendSeq atomic.Uint64
	recvSeq atomic.Uint64

	// Component state
	root     vdom.Component
	owner    *reactive.Owner
	renderer *render.Renderer
	handlers map[string]map[string]any // HID -> event -> handler
	renderMu sync.Mutex                // protects renderer and handlers
	dirty    atomic.Bool

	pendingMu sync.Mutex
	pending   map[uint64]hover.Instance // composites changed since the last render

	ctx    context.Context
	cancel context.CancelFunc

	events   chan *protocol.Event
	renderCh chan struct{}
	done     chan struct{}

	config     Config
	middleware []Middleware
	observer   Observer
	logger     *slog.Logger
	onClose    func(*Session)

	eventCount atomic.Uint64
	patchCount atomic.Uint64
	renders    atomic.Uint64
	pings      atomic.Uint64
}

// generateID returns a random 128-bit session ID.
func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// New creates a session and mounts its root. The session is not attached
// to a connection yet; call Render for the first paint and Attach once the
// client connects.
func New(mount Mount, config Config, opts ...Option) *Session {
	config = config.withDefaults()
	now := time.Now()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		ID:        generateID(),
		CreatedAt: now,
		owner:     reactive.NewOwner(nil),
		renderer:  render.NewRenderer(render.RendererConfig{Hydrate: true}),
		handlers:  make(map[string]map[string]any),
		pending:   make(map[uint64]hover.Instance),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan *protocol.Event, config.MaxEventQueue),
		renderCh:  make(chan struct{}, 1),
		done:      make(chan struct{}),
		config:    config,
		observer:  nopObserver{},
		logger:    slog.Default(),
	}
	s.lastActive.Store(now.UnixNano())
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session_id", s.ID)

	s.root = mount(
		hover.WithScheduler(s),
		hover.WithOwner(s.owner),
		hover.WithLogger(s.logger),
	)
	return s
}

// Render renders the whole tree with hydration markers and refreshes the
// handler table. It is used for the first paint and for every re-render.
func (s *Session) Render() (string, error) {
	html, _, _, err := s.render()
	return html, err
}

// render renders the tree and returns the composites that changed since the
// previous render along with the recorded component fragments.
func (s *Session) render() (string, map[uint64]hover.Instance, []render.Fragment, error) {
	if s.closed.Load() {
		return "", nil, nil, ErrClosed
	}

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.dirty.Store(false)
	s.pendingMu.Lock()
	changed := s.pending
	s.pending = make(map[uint64]hover.Instance)
	s.pendingMu.Unlock()

	s.renderer.Reset()
	html, err := s.renderer.RenderToString(vdom.Comp(s.root))
	if err != nil {
		return "", nil, nil, &Error{SessionID: s.ID, Op: "render", Err: err}
	}
	s.handlers = s.renderer.Handlers()
	s.renders.Add(1)
	s.observer.Rendered()
	return html, changed, s.renderer.Fragments(), nil
}

// Schedule implements hover.Scheduler. It marks the session dirty and wakes
// the event loop. Safe to call from any goroutine.
func (s *Session) Schedule(c hover.Instance) {
	if s.closed.Load() {
		return
	}
	s.pendingMu.Lock()
	s.pending[c.ID()] = c
	s.pendingMu.Unlock()
	s.dirty.Store(true)
	s.logger.Debug("render scheduled", "composite", c.ID(), "hovered", c.Hovered())
	select {
	case s.renderCh <- struct{}{}:
	default:
	}
}

// Dirty reports whether a re-render is pending.
func (s *Session) Dirty() bool {
	return s.dirty.Load()
}

// handleEvent processes a single event on the event loop.
func (s *Session) handleEvent(ev *protocol.Event) {
	s.recvSeq.Store(ev.Seq)
	s.eventCount.Add(1)
	s.touch()

	d := &Dispatch{Context: s.ctx, SessionID: s.ID, Event: ev}
	err := chain(s.middleware, d, func() error {
		if err := s.invoke(ev); err != nil {
			return err
		}
		n, err := s.renderDirty()
		d.Patches = n
		return err
	})
	if err == nil {
		return
	}

	s.logger.Warn("event failed", "hid", ev.HID, "event", ev.Type.String(), "error", err)
	switch {
	case errors.Is(err, ErrHandlerNotFound):
		s.sendError(protocol.ErrHandlerNotFound, "handler not found: "+ev.HID)
	case errors.Is(err, ErrHandlerPanic):
		s.sendError(protocol.ErrHandlerPanic, "internal error")
	case errors.Is(err, ErrClosed), errors.Is(err, ErrNoConnection):
	default:
		s.sendError(protocol.ErrServerError, "internal error")
	}
}

// invoke runs the handler registered for ev with panic recovery.
func (s *Session) invoke(ev *protocol.Event) (err error) {
	s.renderMu.Lock()
	h, ok := s.handlers[ev.HID][ev.Type.String()]
	s.renderMu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrHandlerNotFound, ev.Type, ev.HID)
	}

	fn, ok := h.(func())
	if !ok {
		return fmt.Errorf("session: handler for %s on %s has unsupported type %T", ev.Type, ev.HID, h)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"panic", r,
				"hid", ev.HID,
				"event", ev.Type.String(),
				"stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	fn()
	return nil
}

// renderDirty re-renders the tree if any composite changed and sends one
// replacement per changed composite. It returns the number of patches sent.
func (s *Session) renderDirty() (int, error) {
	if !s.dirty.Load() {
		return 0, nil
	}

	html, changed, frags, err := s.render()
	if err != nil {
		return 0, err
	}

	pf := &protocol.PatchesFrame{
		Seq:     s.sendSeq.Add(1),
		Patches: changedPatches(changed, frags),
	}
	if pf.Patches == nil {
		pf.Patches = []protocol.Patch{{Op: protocol.PatchReplace, HID: RootHID, HTML: html}}
	}
	if err := s.writeFrame(protocol.FramePatches, protocol.EncodePatches(pf)); err != nil {
		return 0, err
	}

	n := len(pf.Patches)
	s.patchCount.Add(uint64(n))
	s.observer.PatchesSent(n)
	return n, nil
}

// changedPatches builds a replace patch for the root element of every
// changed composite, in document order. Composites inside an already
// patched one are covered by it. It returns nil if any changed composite
// has no fragment, so the caller falls back to replacing the root.
func changedPatches(changed map[uint64]hover.Instance, frags []render.Fragment) []protocol.Patch {
	if len(changed) == 0 {
		return nil
	}

	var patches []protocol.Patch
	found := make(map[uint64]bool, len(changed))
	for _, f := range frags {
		inst, ok := f.Component.(hover.Instance)
		if !ok || changed[inst.ID()] == nil {
			continue
		}
		found[inst.ID()] = true
		if coveredBy(patches, f.HID) {
			continue
		}
		patches = append(patches, protocol.Patch{Op: protocol.PatchReplace, HID: f.HID, HTML: f.HTML})
	}
	if len(found) < len(changed) {
		return nil
	}
	return patches
}

func coveredBy(patches []protocol.Patch, hid string) bool {
	marker := `data-hid="` + hid + `"`
	for _, p := range patches {
		if strings.Contains(p.HTML, marker) {
			return true
		}
	}
	return false
}

// writeFrame encodes and writes one frame under the connection lock.
func (s *Session) writeFrame(ft protocol.FrameType, payload []byte) error {
	frame, err := protocol.NewFrame(ft, payload)
	if err != nil {
		return &Error{SessionID: s.ID, Op: "encode " + ft.String(), Err: err}
	}

	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.closed.Load() {
		return ErrClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}

	if s.config.WriteTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}
	if err := s.conn.WriteMessage(binaryMessage, frame.Encode()); err != nil {
		return &Error{SessionID: s.ID, Op: "write " + ft.String(), Err: err}
	}
	return nil
}

// sendError sends an error frame to the client.
func (s *Session) sendError(code protocol.ErrorCode, message string) {
	payload := protocol.EncodeErrorMessage(&protocol.ErrorMessage{Code: code, Message: message})
	if err := s.writeFrame(protocol.FrameError, payload); err != nil {
		s.logger.Debug("error frame not sent", "code", code.String(), "error", err)
	}
}

// Close disposes the component tree and closes the connection.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}

	close(s.done)
	s.cancel()
	s.owner.Dispose()

	s.connMu.Lock()
	if s.conn != nil {
		_ = s.conn.WriteMessage(closeMessage, normalClosure)
		_ = s.conn.Close()
	}
	s.connMu.Unlock()

	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"patches", s.patchCount.Load(),
		"renders", s.renders.Load())

	if s.onClose != nil {
		s.onClose(s)
	}
}

// IsClosed reports whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Context returns a context cancelled when the session closes.
func (s *Session) Context() context.Context {
	return s.ctx
}

// LastActive returns the time of the last client activity.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// Stats returns per-session counters.
func (s *Session) Stats() Stats {
	return Stats{
		Events:   s.eventCount.Load(),
		Patches:  s.patchCount.Load(),
		Renders:  s.renders.Load(),
		Pings:    s.pings.Load(),
		LastSeq:  s.recvSeq.Load(),
		Attached: s.attached.Load(),
	}
}

// Stats holds per-session counters.
type Stats struct {
	Events   uint64
	Patches  uint64
	Renders  uint64
	Pings    uint64
	LastSeq  uint64
	Attached bool
}
