package protocol

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	f, err := NewFrame(FrameEvent, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	data := f.Encode()
	if !bytes.Equal(data[:4], []byte{0x01, 0x00, 0x00, 0x03}) {
		t.Errorf("unexpected header % x", data[:4])
	}

	// Trailing bytes after the declared payload are ignored.
	got, err := DecodeFrame(append(data, 0xff))
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if got.Type != FrameEvent || !bytes.Equal(got.Payload, []byte{1, 2, 3}) {
		t.Errorf("decoded %+v", got)
	}
}

func TestFrameErrors(t *testing.T) {
	if _, err := NewFrame(FramePatches, make([]byte, MaxPayloadSize+1)); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("expected ErrFrameTooLarge, got %v", err)
	}
	if _, err := DecodeFrame([]byte{0x01, 0x00}); err != io.ErrUnexpectedEOF {
		t.Errorf("short header: got %v", err)
	}
	if _, err := DecodeFrame([]byte{0x01, 0x00, 0x00, 0x05, 1}); err != io.ErrUnexpectedEOF {
		t.Errorf("short payload: got %v", err)
	}
	if _, err := DecodeFrame([]byte{0x09, 0x00, 0x00, 0x00}); !errors.Is(err, ErrInvalidFrameType) {
		t.Errorf("bad type: got %v", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	if FramePatches.String() != "Patches" || FrameType(0x42).String() != "Unknown" {
		t.Error("unexpected FrameType strings")
	}
}

func TestEventCodec(t *testing.T) {
	ev := &Event{Seq: 300, HID: "h1", Type: EventMouseEnter}
	payload := EncodeEvent(ev)

	// seq 300 = 0xac 0x02, "h1", type
	want := []byte{0xac, 0x02, 0x02, 'h', '1', 0x06}
	if !bytes.Equal(payload, want) {
		t.Fatalf("payload % x, want % x", payload, want)
	}

	got, err := DecodeEvent(payload)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if *got != *ev {
		t.Errorf("got %+v, want %+v", got, ev)
	}
}

func TestDecodeEventErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, io.ErrUnexpectedEOF},
		{"truncated hid", []byte{0x01, 0x05, 'h'}, io.ErrUnexpectedEOF},
		{"missing type", []byte{0x01, 0x01, 'h'}, io.ErrUnexpectedEOF},
		{"unknown type", []byte{0x01, 0x01, 'h', 0x99}, ErrUnknownEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeEvent(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseEventType(t *testing.T) {
	for _, et := range []EventType{EventClick, EventMouseEnter, EventMouseLeave} {
		got, err := ParseEventType(et.String())
		if err != nil || got != et {
			t.Errorf("ParseEventType(%q) = %v, %v", et.String(), got, err)
		}
	}
	if _, err := ParseEventType("keydown"); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("expected ErrUnknownEvent, got %v", err)
	}
	if !strings.HasPrefix(EventType(0x99).String(), "unknown") {
		t.Error("unknown event type should say so")
	}
}

func TestPatchesCodec(t *testing.T) {
	pf := &PatchesFrame{Seq: 7, Patches: []Patch{
		{Op: PatchReplace, HID: "h1", HTML: `<div data-hid="h1">ü</div>`},
		{Op: PatchReplace, HID: "h9", HTML: ""},
	}}

	got, err := DecodePatches(EncodePatches(pf))
	if err != nil {
		t.Fatalf("DecodePatches: %v", err)
	}
	if got.Seq != 7 || len(got.Patches) != 2 || got.Patches[0] != pf.Patches[0] || got.Patches[1] != pf.Patches[1] {
		t.Errorf("got %+v", got)
	}
}

func TestDecodePatchesErrors(t *testing.T) {
	// count claims far more patches than bytes available
	if _, err := DecodePatches([]byte{0x01, 0xff, 0xff, 0x03}); !errors.Is(err, ErrAllocationTooLarge) {
		t.Errorf("expected ErrAllocationTooLarge, got %v", err)
	}
	if _, err := DecodePatches([]byte{0x01, 0x01, 0x09, 0x00, 0x00}); !errors.Is(err, ErrUnknownPatchOp) {
		t.Errorf("expected ErrUnknownPatchOp, got %v", err)
	}
}

func TestErrorMessageCodec(t *testing.T) {
	em := &ErrorMessage{Code: ErrHandlerNotFound, Message: "no handler for h3", Fatal: true}
	got, err := DecodeErrorMessage(EncodeErrorMessage(em))
	if err != nil {
		t.Fatalf("DecodeErrorMessage: %v", err)
	}
	if *got != *em {
		t.Errorf("got %+v, want %+v", got, em)
	}
	if got.Code.String() != "HandlerNotFound" || ErrorCode(0x7777).String() != "Unknown" {
		t.Error("unexpected ErrorCode strings")
	}

	if _, err := DecodeErrorMessage([]byte{0, 1, 0, 2}); !errors.Is(err, ErrInvalidBool) {
		t.Errorf("expected ErrInvalidBool, got %v", err)
	}
}

func TestHandshakeCodec(t *testing.T) {
	got, err := DecodeHandshake(EncodeHandshake(&Handshake{SessionID: "abc"}))
	if err != nil || got.SessionID != "abc" {
		t.Errorf("got %+v, %v", got, err)
	}
	if _, err := DecodeHandshake(nil); err == nil {
		t.Error("expected error for empty handshake")
	}
}

func TestUvarintOverflow(t *testing.T) {
	d := NewDecoder(bytes.Repeat([]byte{0xff}, 11))
	if _, err := d.ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("expected ErrVarintOverflow, got %v", err)
	}
}

func TestReadStringLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxStringLength + 1)
	if _, err := NewDecoder(e.Bytes()).ReadString(); !errors.Is(err, ErrAllocationTooLarge) {
		t.Errorf("expected ErrAllocationTooLarge, got %v", err)
	}
}
