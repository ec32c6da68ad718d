package protocol

import (
	"errors"
	"fmt"
)

// PatchOp identifies the patch operation.
type PatchOp uint8

const (
	// PatchReplace replaces the element with the given HID by the HTML.
	PatchReplace PatchOp = 0x01
)

// ErrUnknownPatchOp is returned when decoding an unsupported operation.
var ErrUnknownPatchOp = errors.New("protocol: unknown patch op")

// Patch is a single DOM update.
type Patch struct {
	Op   PatchOp
	HID  string
	HTML string
}

// PatchesFrame is a batch of patches produced by one render.
//
// Payload format:
//
//	uvarint seq | uvarint count | count × (byte op | string hid | string html)
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a patches payload.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for _, p := range pf.Patches {
		e.WriteByte(byte(p.Op))
		e.WriteString(p.HID)
		e.WriteString(p.HTML)
	}
	return e.Bytes()
}

// DecodePatches decodes a patches payload.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	d := NewDecoder(data)

	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	// Each patch takes at least three bytes.
	if count > uint64(d.Remaining()/3) {
		return nil, ErrAllocationTooLarge
	}

	pf := &PatchesFrame{Seq: seq, Patches: make([]Patch, 0, count)}
	for i := uint64(0); i < count; i++ {
		op, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		if PatchOp(op) != PatchReplace {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownPatchOp, op)
		}
		hid, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		html, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		pf.Patches = append(pf.Patches, Patch{Op: PatchOp(op), HID: hid, HTML: html})
	}
	return pf, nil
}
