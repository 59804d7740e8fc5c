package network

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestTextMessage(t *testing.T) {
	m := NewTextMessage("hello")
	if m.Message() != "hello" {
		t.Fatalf("Message() = %q", m.Message())
	}
	if m.Message() != "hello" {
		t.Fatalf("Message() must not mutate the payload")
	}
	if m.Type() != TextMessageType {
		t.Fatalf("Type() = %v", m.Type())
	}
	if !m.Reliable() {
		t.Fatalf("messages default to reliable")
	}

	var empty TextMessage
	if empty.Message() != "" {
		t.Fatalf("zero value should be empty")
	}
}

func TestTextMessagePayload(t *testing.T) {
	cases := []string{"", "hello", "ünïcødé ✓", strings.Repeat("x", 300)}
	for _, s := range cases {
		data, err := NewTextMessage(s).MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		n, read := binary.Uvarint(data)
		if int(n) != len(s) || string(data[read:]) != s {
			t.Fatalf("payload layout wrong for %q", s)
		}

		var got TextMessage
		if err := got.UnmarshalBinary(data); err != nil {
			t.Fatalf("unmarshal %q: %v", s, err)
		}
		if got.Message() != s {
			t.Fatalf("got %q, want %q", got.Message(), s)
		}
	}
}

func TestTextMessageTruncated(t *testing.T) {
	var m TextMessage
	if err := m.UnmarshalBinary(nil); !errors.Is(err, ErrTruncated) {
		t.Fatalf("empty payload: %v", err)
	}
	if err := m.UnmarshalBinary([]byte{5, 'a', 'b'}); !errors.Is(err, ErrTruncated) {
		t.Fatalf("short body: %v", err)
	}
	if err := m.UnmarshalBinary([]byte{1, 'a', 'b', 'c'}); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("extra bytes after body: %v", err)
	}
	if m.Message() != "" {
		t.Fatalf("failed unmarshal changed the message to %q", m.Message())
	}
}

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	if name, ok := r.Name(TextMessageType); !ok || name != "TextMessage" {
		t.Fatalf("TextMessage not registered: %q %v", name, ok)
	}

	err := r.Register(TextMessageType, "Other", func() Message { return &TextMessage{} })
	if !errors.Is(err, ErrDuplicateType) {
		t.Fatalf("expected ErrDuplicateType, got %v", err)
	}
	if err := r.Register(MsgNone, "Zero", func() Message { return &TextMessage{} }); err == nil {
		t.Fatalf("type 0 must be rejected")
	}
	if err := r.Register(MsgUser, "Nil", nil); err == nil {
		t.Fatalf("nil factory must be rejected")
	}

	if _, err := r.New(MsgUser); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}

	m, err := r.New(TextMessageType)
	if err != nil {
		t.Fatal(err)
	}
	if tm, ok := m.(*TextMessage); !ok || tm.Message() != "" {
		t.Fatalf("New returned %#v", m)
	}

	if err := r.Register(MsgUser, "Mismatched", func() Message { return &TextMessage{} }); err != nil {
		t.Fatal(err)
	}
	if _, err := r.New(MsgUser); err == nil {
		t.Fatalf("factory building the wrong type should fail")
	}

	if got := r.Types(); len(got) != 2 || got[0] != TextMessageType || got[1] != MsgUser {
		t.Fatalf("Types = %v", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec(nil)
	var buf bytes.Buffer

	unreliable := NewTextMessage("fast")
	unreliable.SetReliable(false)

	in := []*TextMessage{NewTextMessage("hello"), NewTextMessage(""), unreliable}
	for _, m := range in {
		if err := c.Encode(&buf, m); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}

	for _, want := range in {
		m, err := c.Decode(&buf)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got, ok := m.(*TextMessage)
		if !ok {
			t.Fatalf("decoded %T", m)
		}
		if got.Message() != want.Message() || got.Reliable() != want.Reliable() {
			t.Fatalf("got %v reliable=%v, want %v reliable=%v", got, got.Reliable(), want, want.Reliable())
		}
	}

	if _, err := c.Decode(&buf); err != io.EOF {
		t.Fatalf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestCodecFrameLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCodec(nil).Encode(&buf, NewTextMessage("hi")); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0x01, FlagNone, 0, 0, 0, 3, 2, 'h', 'i'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("frame = %v, want %v", buf.Bytes(), want)
	}
}

type pingMessage struct{ seq uint32 }

func (p *pingMessage) Type() MessageType { return MsgUser + 1 }

func (p *pingMessage) MarshalBinary() ([]byte, error) {
	return binary.BigEndian.AppendUint32(nil, p.seq), nil
}

func (p *pingMessage) UnmarshalBinary(data []byte) error {
	if len(data) != 4 {
		return ErrTruncated
	}
	p.seq = binary.BigEndian.Uint32(data)
	return nil
}

func TestCodecErrors(t *testing.T) {
	c := NewCodec(nil)

	if err := c.Encode(io.Discard, &pingMessage{}); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("encoding unregistered type: %v", err)
	}

	var frame bytes.Buffer
	other := NewRegistry()
	if err := other.Register(MsgUser+1, "Ping", func() Message { return &pingMessage{} }); err != nil {
		t.Fatal(err)
	}
	if err := NewCodec(other).Encode(&frame, &pingMessage{seq: 7}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Decode(bytes.NewReader(frame.Bytes())); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("decoding unregistered type: %v", err)
	}

	huge := []byte{0x00, 0x01, 0, 0xff, 0xff, 0xff, 0xff}
	if _, err := c.Decode(bytes.NewReader(huge)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("oversized frame: %v", err)
	}

	short := []byte{0x00, 0x01, 0, 0, 0, 0, 9, 1}
	if _, err := c.Decode(bytes.NewReader(short)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("short payload: %v", err)
	}
}

func TestCustomMessage(t *testing.T) {
	r := NewDefaultRegistry()
	if err := r.Register(MsgUser+1, "Ping", func() Message { return &pingMessage{} }); err != nil {
		t.Fatal(err)
	}
	c := NewCodec(r)

	var buf bytes.Buffer
	if err := c.Encode(&buf, &pingMessage{seq: 42}); err != nil {
		t.Fatal(err)
	}
	m, err := c.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := m.(*pingMessage); !ok || p.seq != 42 {
		t.Fatalf("decoded %#v", m)
	}
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()
	var order []string
	d.Handle(TextMessageType, func(m Message) { order = append(order, "first") })
	d.HandleText(func(m *TextMessage) { order = append(order, "text:"+m.Message()) })

	var unhandled []Message
	d.Fallback(func(m Message) { unhandled = append(unhandled, m) })

	if !d.Dispatch(NewTextMessage("hello")) {
		t.Fatalf("text message should be handled")
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "text:hello" {
		t.Fatalf("listener order = %v", order)
	}

	if d.Dispatch(&pingMessage{}) {
		t.Fatalf("ping has no listener")
	}
	if len(unhandled) != 1 {
		t.Fatalf("fallback not called")
	}
	if d.Dispatch(nil) {
		t.Fatalf("nil message dispatched")
	}
}
