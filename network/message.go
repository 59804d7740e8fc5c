// Package network defines messages exchanged between peers and the framing
// used to put them on a stream. Transport is left to the caller.
package network

import "errors"

// MessageType tags a message on the wire.
type MessageType uint16

const (
	MsgNone         MessageType = 0x0000
	TextMessageType MessageType = 0x0001

	// Application messages should use tags at or above MsgUser.
	MsgUser MessageType = 0x0100
)

var (
	ErrUnknownType     = errors.New("network: unknown message type")
	ErrDuplicateType   = errors.New("network: message type already registered")
	ErrPayloadTooLarge = errors.New("network: payload exceeds maximum size")
	ErrTruncated       = errors.New("network: truncated payload")
	ErrTrailingData    = errors.New("network: trailing data after payload")
)

// Message is anything that can be sent between peers. Implementations carry
// their own payload encoding; the frame around it belongs to Codec.
type Message interface {
	Type() MessageType
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// Reliabler is implemented by messages that can ask for unreliable delivery.
// Messages without it are treated as reliable.
type Reliabler interface {
	Reliable() bool
	SetReliable(bool)
}

// Header carries per-message delivery settings. Embed it to get Reliabler.
// The zero value is reliable.
type Header struct {
	unreliable bool
}

func (h *Header) Reliable() bool { return !h.unreliable }

func (h *Header) SetReliable(v bool) { h.unreliable = !v }

func isReliable(m Message) bool {
	if r, ok := m.(Reliabler); ok {
		return r.Reliable()
	}
	return true
}
