// Command textmsg writes text messages as wire frames, or reads frames back
// and prints the text they carry.
//
//	textmsg hello world > frames.bin
//	textmsg -decode < frames.bin
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/shaderblow/network"
)

func main() {
	decode := flag.Bool("decode", false, "read frames from stdin and print each text message")
	unreliable := flag.Bool("unreliable", false, "mark encoded messages as unreliable")
	flag.Parse()

	codec := network.NewCodec(network.NewDefaultRegistry())

	if *decode {
		if err := decodeAll(codec, bufio.NewReader(os.Stdin), os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	w := bufio.NewWriter(os.Stdout)
	for _, arg := range flag.Args() {
		m := network.NewTextMessage(arg)
		m.SetReliable(!*unreliable)
		if err := codec.Encode(w, m); err != nil {
			log.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

func decodeAll(codec *network.Codec, r io.Reader, out io.Writer) error {
	d := network.NewDispatcher()
	d.HandleText(func(m *network.TextMessage) {
		fmt.Fprintln(out, m.Message())
	})

	for {
		m, err := codec.Decode(r)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, network.ErrUnknownType):
			// Decode consumed the whole frame, so the stream is still aligned.
			log.Printf("skipping frame: %v", err)
			continue
		case err != nil:
			return err
		}
		d.Dispatch(m)
	}
}
