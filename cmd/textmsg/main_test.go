package main

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/milk9111/shaderblow/network"
)

func TestDecodeAll(t *testing.T) {
	codec := network.NewCodec(nil)
	var frames bytes.Buffer
	for _, s := range []string{"hello", "", "world"} {
		if err := codec.Encode(&frames, network.NewTextMessage(s)); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	if err := decodeAll(codec, &frames, &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "hello\n\nworld\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestDecodeAllTruncated(t *testing.T) {
	codec := network.NewCodec(nil)
	var frames bytes.Buffer
	if err := codec.Encode(&frames, network.NewTextMessage("cut short")); err != nil {
		t.Fatal(err)
	}
	data := frames.Bytes()[:frames.Len()-3]

	if err := decodeAll(codec, bytes.NewReader(data), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for truncated frame")
	}
}

func TestDecodeAllSkipsUnknown(t *testing.T) {
	codec := network.NewCodec(nil)
	var frames bytes.Buffer

	header := make([]byte, network.HeaderSize)
	binary.BigEndian.PutUint16(header[0:2], 0x0200)
	binary.BigEndian.PutUint32(header[3:7], 3)
	frames.Write(header)
	frames.WriteString("xyz")
	if err := codec.Encode(&frames, network.NewTextMessage("hi")); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := decodeAll(codec, &frames, &out); err != nil {
		t.Fatalf("unknown frame should be skipped: %v", err)
	}
	if out.String() != "hi\n" {
		t.Fatalf("output = %q", out.String())
	}
}
