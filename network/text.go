package network

import (
	"encoding/binary"
	"fmt"
)

// TextMessage carries a single string. The zero value is the empty message
// a decoder fills in.
type TextMessage struct {
	Header
	message string
}

func NewTextMessage(s string) *TextMessage {
	return &TextMessage{message: s}
}

// Message returns the payload exactly as it was constructed or decoded.
func (m *TextMessage) Message() string { return m.message }

func (m *TextMessage) Type() MessageType { return TextMessageType }

func (m *TextMessage) String() string {
	return fmt.Sprintf("TextMessage[%q]", m.message)
}

// MarshalBinary writes the string as a uvarint byte length followed by the
// raw bytes.
func (m *TextMessage) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, binary.MaxVarintLen64+len(m.message))
	buf = binary.AppendUvarint(buf, uint64(len(m.message)))
	buf = append(buf, m.message...)
	return buf, nil
}

// UnmarshalBinary expects exactly the layout MarshalBinary writes. Short
// input fails with ErrTruncated and extra bytes after the string with
// ErrTrailingData.
func (m *TextMessage) UnmarshalBinary(data []byte) error {
	n, read := binary.Uvarint(data)
	if read <= 0 {
		return fmt.Errorf("text message length: %w", ErrTruncated)
	}
	rest := data[read:]
	if uint64(len(rest)) < n {
		return fmt.Errorf("text message body: want %d bytes, have %d: %w", n, len(rest), ErrTruncated)
	}
	if uint64(len(rest)) > n {
		return fmt.Errorf("text message body: %d bytes after string: %w", uint64(len(rest))-n, ErrTrailingData)
	}
	m.message = string(rest)
	return nil
}
