package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/withhover/internal/errors"
	"github.com/vango-dev/withhover/pkg/middleware"
	"github.com/vango-dev/withhover/pkg/protocol"
	"github.com/vango-dev/withhover/pkg/render"
	"github.com/vango-dev/withhover/pkg/session"
	"github.com/vango-dev/withhover/pkg/text"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry sets the Prometheus registry metrics are registered on and
// served from. By default each server gets its own registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithTracerProvider sets the provider used when tracing is enabled.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracerProvider = tp
	}
}

// WithSessionMiddleware appends event middleware after the built-in ones.
func WithSessionMiddleware(mws ...session.Middleware) Option {
	return func(s *Server) {
		s.extra = append(s.extra, mws...)
	}
}

// Server serves the page, the live endpoint, metrics and health checks.
type Server struct {
	config Config
	mount  session.Mount

	router   chi.Router
	sessions *session.Manager
	upgrader websocket.Upgrader

	registry       *prometheus.Registry
	metrics        *middleware.Metrics
	tracerProvider trace.TracerProvider
	extra          []session.Middleware

	logger *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
	addr       net.Addr
}

// New creates a Server. mount builds each session's tree.
func New(config Config, mount session.Mount, opts ...Option) *Server {
	s := &Server{
		config: config,
		mount:  mount,
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
			HandshakeTimeout: config.HandshakeTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.config.LivePath == "" {
		s.config.LivePath = "/_withhover/live"
	}

	var (
		mws         []session.Middleware
		sessionOpts []session.Option
		observer    session.Observer
	)
	if config.Tracing.Enabled {
		otelOpts := []middleware.OTelOption{middleware.WithTracerName(config.Tracing.TracerName)}
		if s.tracerProvider != nil {
			otelOpts = append(otelOpts, middleware.WithTracerProvider(s.tracerProvider))
		}
		mws = append(mws, middleware.OpenTelemetry(otelOpts...))
	}
	if config.Metrics.Enabled {
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
			s.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		s.metrics = middleware.NewMetrics(
			middleware.WithNamespace(config.Metrics.Namespace),
			middleware.WithRegistry(s.registry),
		)
		mws = append(mws, s.metrics.Middleware())
		observer = s.metrics
	}
	mws = append(mws, s.extra...)
	sessionOpts = append(sessionOpts, session.WithMiddleware(mws...))

	s.sessions = session.NewManager(config.Session, s.logger, observer, sessionOpts...)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get(s.config.LivePath, s.handleLive)
	r.Get("/healthz", s.handleHealth)
	if s.config.Metrics.Enabled {
		path := s.config.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	}
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Addr returns the listening address once Serve has started, or nil.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// handlePage creates a session, renders its tree and returns the page
// with the live client bound to it.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create(s.mount)
	if err != nil {
		s.logger.Warn("session create failed",
			"request_id", chimw.GetReqID(r.Context()),
			"error", errors.New(errors.TransportSession).Wrap(err))
		http.Error(w, "server busy", http.StatusServiceUnavailable)
		return
	}

	body, err := sess.Render()
	if err != nil {
		s.sessions.Close(sess.ID)
		s.logger.Error("render failed", "session_id", sess.ID, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	page := render.PageData{
		BodyHTML:  body,
		Title:     s.config.Title,
		Styles:    []string{text.Stylesheet},
		LivePath:  s.config.LivePath,
		SessionID: sess.ID,
	}
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(w, page); err != nil {
		s.logger.Warn("page write failed", "session_id", sess.ID, "error", err)
	}
	s.logger.Debug("page served", "session_id", sess.ID, "request_id", chimw.GetReqID(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleLive upgrades the connection, reads the handshake and attaches
// the socket to the session named in it.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", errors.New(errors.TransportUpgrade).Wrap(err))
		return
	}
	conn.SetReadLimit(protocol.FrameHeaderSize + protocol.MaxPayloadSize)
	if s.config.HandshakeTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.config.HandshakeTimeout))
	}

	hs, err := readHandshake(conn)
	if err != nil {
		s.logger.Warn("handshake failed", "error", err)
		rejectConn(conn, protocol.ErrInvalidFrame, "invalid handshake")
		return
	}

	sess, err := s.sessions.Get(hs.SessionID)
	if err != nil {
		s.logger.Info("handshake for unknown session", "session_id", hs.SessionID)
		rejectConn(conn, protocol.ErrSessionExpired, "session expired")
		return
	}
	if err := sess.Attach(conn); err != nil {
		s.logger.Info("attach refused", "session_id", hs.SessionID, "error", err)
		rejectConn(conn, protocol.ErrSessionExpired, "session unavailable")
		return
	}
}

func readHandshake(conn *websocket.Conn) (*protocol.Handshake, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, errors.New(errors.ProtocolHandshake).Wrap(err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		return nil, errors.New(errors.ProtocolHandshake).Wrap(err)
	}
	if frame.Type != protocol.FrameHandshake {
		return nil, errors.New(errors.ProtocolHandshake).WithDetail("got %s frame", frame.Type)
	}
	hs, err := protocol.DecodeHandshake(frame.Payload)
	if err != nil {
		return nil, errors.New(errors.ProtocolHandshake).Wrap(err)
	}
	return hs, nil
}

// rejectConn sends a fatal error frame and closes the connection.
func rejectConn(conn *websocket.Conn, code protocol.ErrorCode, message string) {
	payload := protocol.EncodeErrorMessage(&protocol.ErrorMessage{Code: code, Message: message, Fatal: true})
	if frame, err := protocol.NewFrame(protocol.FrameError, payload); err == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
		_ = conn.WriteMessage(websocket.BinaryMessage, frame.Encode())
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, message),
		time.Now().Add(time.Second))
	_ = conn.Close()
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return errors.New(errors.TransportListen).WithDetail("%s", s.config.Address).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
	}

	s.mu.Lock()
	s.httpServer = httpServer
	s.addr = ln.Addr()
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "live_path", s.config.LivePath)
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down")
		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.sessions.Shutdown(ctx); err != nil {
		s.logger.Error("session shutdown error", "error", err)
	}

	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
