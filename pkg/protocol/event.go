package protocol

import (
	"errors"
	"fmt"
)

// EventType identifies the type of client event.
type EventType uint8

// Event type values match the live client's table.
const (
	EventClick      EventType = 0x01
	EventMouseEnter EventType = 0x06
	EventMouseLeave EventType = 0x07
)

// ErrUnknownEvent is returned when an event frame names a type the server
// does not handle.
var ErrUnknownEvent = errors.New("protocol: unknown event type")

// String returns the DOM event name.
func (et EventType) String() string {
	switch et {
	case EventClick:
		return "click"
	case EventMouseEnter:
		return "mouseenter"
	case EventMouseLeave:
		return "mouseleave"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(et))
	}
}

// ParseEventType maps a DOM event name to its EventType.
func ParseEventType(name string) (EventType, error) {
	switch name {
	case "click":
		return EventClick, nil
	case "mouseenter":
		return EventMouseEnter, nil
	case "mouseleave":
		return EventMouseLeave, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
}

// Event is a pointer signal sent by the client.
//
// Payload format:
//
//	uvarint seq | string hid | byte type
type Event struct {
	Seq  uint64
	HID  string
	Type EventType
}

// EncodeEvent encodes an event payload.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	e.WriteUvarint(ev.Seq)
	e.WriteString(ev.HID)
	e.WriteByte(byte(ev.Type))
	return e.Bytes()
}

// DecodeEvent decodes an event payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)

	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("protocol: event seq: %w", err)
	}
	hid, err := d.ReadString()
	if err != nil {
		return nil, fmt.Errorf("protocol: event hid: %w", err)
	}
	b, err := d.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("protocol: event type: %w", err)
	}

	et := EventType(b)
	switch et {
	case EventClick, EventMouseEnter, EventMouseLeave:
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownEvent, b)
	}

	return &Event{Seq: seq, HID: hid, Type: et}, nil
}
