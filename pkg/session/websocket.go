package session

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/withhover/pkg/protocol"
)

const (
	binaryMessage = websocket.BinaryMessage
	closeMessage  = websocket.CloseMessage
	pingMessage   = websocket.PingMessage
)

var normalClosure = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")

// Conn is the subset of *websocket.Conn a session uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

// Attach binds a connection to the session and starts its loops. A
// session accepts one connection for its lifetime.
func (s *Session) Attach(conn Conn) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if !s.attached.CompareAndSwap(false, true) {
		return ErrAttached
	}

	s.connMu.Lock()
	s.conn = conn
	s.connMu.Unlock()
	s.touch()

	conn.SetPongHandler(func(string) error {
		s.touch()
		s.extendReadDeadline()
		return nil
	})

	s.logger.Info("session attached")
	go s.readLoop()
	go s.eventLoop()
	go s.heartbeatLoop()
	return nil
}

func (s *Session) extendReadDeadline() {
	if s.config.ReadTimeout > 0 {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	}
}

// heartbeatLoop pings the client until the session closes. Browsers answer
// pings without script involvement; the pong handler keeps the read
// deadline ahead.
func (s *Session) heartbeatLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				s.logger.Debug("heartbeat stopped", "error", err)
				return
			}
		case <-s.done:
			return
		}
	}
}

// sendPing writes a websocket ping control frame.
func (s *Session) sendPing() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.closed.Load() {
		return ErrClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}

	deadline := time.Now().Add(time.Second)
	if s.config.WriteTimeout > 0 {
		deadline = time.Now().Add(s.config.WriteTimeout)
	}
	if err := s.conn.WriteControl(pingMessage, nil, deadline); err != nil {
		return &Error{SessionID: s.ID, Op: "ping", Err: err}
	}
	s.pings.Add(1)
	return nil
}

// readLoop decodes client frames and queues events until the connection
// fails or the session closes.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.extendReadDeadline()

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.touch()

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.sendError(protocol.ErrInvalidFrame, "invalid frame")
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type.String())
		}
	}
}

func (s *Session) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Warn("event decode error", "error", err)
		s.sendError(protocol.ErrInvalidEvent, "invalid event")
		return
	}
	if err := s.QueueEvent(ev); err != nil {
		s.sendError(protocol.ErrRateLimited, "event queue full")
	}
}

// eventLoop processes queued events and scheduled renders. It is the only
// goroutine that runs handlers.
func (s *Session) eventLoop() {
	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)

		case <-s.renderCh:
			if _, err := s.renderDirty(); err != nil {
				s.logger.Warn("render failed", "error", err)
			}

		case <-s.done:
			return
		}
	}
}

// QueueEvent queues an event for the event loop.
func (s *Session) QueueEvent(ev *protocol.Event) error {
	if s.closed.Load() {
		return ErrClosed
	}
	select {
	case s.events <- ev:
		return nil
	default:
		s.logger.Warn("event queue full, dropping event", "hid", ev.HID)
		return ErrQueueFull
	}
}
