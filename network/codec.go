package network

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the fixed frame header that precedes every payload:
// [Type:2][Flags:1][Len:4], big endian.
const HeaderSize = 7

// MaxPayloadSize bounds a single frame so a corrupt length can't make the
// reader allocate without limit.
const MaxPayloadSize = 16 << 20

const (
	FlagNone       uint8 = 0x00
	FlagUnreliable uint8 = 0x01
)

// Codec frames registered messages onto a byte stream.
type Codec struct {
	registry *Registry
}

func NewCodec(r *Registry) *Codec {
	if r == nil {
		r = NewDefaultRegistry()
	}
	return &Codec{registry: r}
}

func (c *Codec) Registry() *Registry { return c.registry }

// Encode writes m as one frame. The type must be registered.
func (c *Codec) Encode(w io.Writer, m Message) error {
	if m == nil {
		return fmt.Errorf("network: encode nil message")
	}
	t := m.Type()
	if !c.registry.Has(t) {
		return fmt.Errorf("network: encode: %w: 0x%04x", ErrUnknownType, uint16(t))
	}

	payload, err := m.MarshalBinary()
	if err != nil {
		return fmt.Errorf("network: marshal 0x%04x: %w", uint16(t), err)
	}
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("network: encode 0x%04x: %w", uint16(t), ErrPayloadTooLarge)
	}

	flags := FlagNone
	if !isReliable(m) {
		flags |= FlagUnreliable
	}

	frame := make([]byte, HeaderSize+len(payload))
	binary.BigEndian.PutUint16(frame[0:2], uint16(t))
	frame[2] = flags
	binary.BigEndian.PutUint32(frame[3:7], uint32(len(payload)))
	copy(frame[HeaderSize:], payload)

	if _, err := w.Write(frame); err != nil {
		return err
	}
	return nil
}

// Decode reads one frame and returns the message it carries. io.EOF is
// returned unwrapped when the stream ends cleanly between frames.
func (c *Codec) Decode(r io.Reader) (Message, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	t := MessageType(binary.BigEndian.Uint16(header[0:2]))
	flags := header[2]
	n := binary.BigEndian.Uint32(header[3:7])
	if n > MaxPayloadSize {
		return nil, fmt.Errorf("network: decode 0x%04x: %w", uint16(t), ErrPayloadTooLarge)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("network: decode 0x%04x payload: %w", uint16(t), err)
	}

	m, err := c.registry.New(t)
	if err != nil {
		return nil, err
	}
	if err := m.UnmarshalBinary(payload); err != nil {
		return nil, fmt.Errorf("network: unmarshal 0x%04x: %w", uint16(t), err)
	}
	if rel, ok := m.(Reliabler); ok {
		rel.SetReliable(flags&FlagUnreliable == 0)
	}
	return m, nil
}
