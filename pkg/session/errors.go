package session

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when an operation is attempted on a closed session.
	ErrClosed = errors.New("session: closed")

	// ErrQueueFull is returned when the event queue is full and an event is dropped.
	ErrQueueFull = errors.New("session: event queue full")

	// ErrNotFound is returned when a session ID does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrMaxSessions is returned when the manager is at capacity.
	ErrMaxSessions = errors.New("session: max sessions reached")

	// ErrAttached is returned when a second connection tries to attach.
	ErrAttached = errors.New("session: already attached")

	// ErrNoConnection is returned when sending on a session without a connection.
	ErrNoConnection = errors.New("session: no connection")

	// ErrHandlerNotFound is returned when no handler is registered for an event.
	ErrHandlerNotFound = errors.New("session: handler not found")

	// ErrHandlerPanic is returned when a handler panicked.
	ErrHandlerPanic = errors.New("session: handler panic")
)

// Error wraps an error with session context.
type Error struct {
	SessionID string
	Op        string
	Err       error
}

func (e *Error) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("session: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
