package protocol

// Handshake binds a websocket to the session that rendered the page.
//
// Payload format:
//
//	string session_id
type Handshake struct {
	SessionID string
}

// EncodeHandshake encodes a handshake payload.
func EncodeHandshake(h *Handshake) []byte {
	e := NewEncoder()
	e.WriteString(h.SessionID)
	return e.Bytes()
}

// DecodeHandshake decodes a handshake payload.
func DecodeHandshake(data []byte) (*Handshake, error) {
	d := NewDecoder(data)
	id, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &Handshake{SessionID: id}, nil
}
