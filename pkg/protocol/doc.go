// Package protocol defines the binary wire format between the live client
// and a withhover session.
//
// Every websocket message is one Frame: a 4-byte header (type, flags,
// big-endian payload length) followed by the payload. Strings are
// uvarint-length-prefixed UTF-8.
//
//	client → server  FrameHandshake  Handshake{SessionID}
//	client → server  FrameEvent      Event{Seq, HID, Type}
//	server → client  FramePatches    PatchesFrame{Seq, []Patch}
//	server → client  FrameError      ErrorMessage{Code, Message, Fatal}
//
// Only the pointer signals the hover wrapper consumes (mouseenter,
// mouseleave) plus click are defined.
package protocol
