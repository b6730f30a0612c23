// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package bitstream packs and unpacks bit fields of arbitrary width
// over byte-oriented streams, least significant bit first.
package bitstream

import (
	"bufio"
	"errors"
	"io"
)

var (
	ErrEndOfStream = errors.New("bitstream: read past end of stream")
	ErrClosed      = errors.New("bitstream: write to closed writer")
)

// A Reader takes bit fields from a byte stream, LSB first.
type Reader struct {
	in   io.ByteReader
	buf  byte
	nbuf uint // unconsumed bits remaining in buf
	eos  bool
	err  error
}

// NewReader buffers in unless it is already an io.ByteReader.
func NewReader(in io.Reader) *Reader {
	br, ok := in.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Reader{in: br}
}

// Read returns the next n bits, the earliest in bit 0.
//
// Running off the end of the source yields zero bits and sets EOS.
// The first Read that starts with EOS already set fails with ErrEndOfStream,
// so exactly one read may overhang the end.
func (r *Reader) Read(n int) (uint64, error) {
	if n < 1 || n > 64 {
		panic("bitstream: bit count out of range")
	}
	if r.err != nil {
		return 0, r.err
	}
	if r.eos {
		return 0, ErrEndOfStream
	}

	var u uint64
	for i := 0; i < n; {
		if r.nbuf == 0 {
			b, err := r.in.ReadByte()
			if err == io.EOF {
				b = 0
				r.eos = true
			} else if err != nil {
				r.err = err
				return 0, err
			}
			r.buf, r.nbuf = b, 8
		}
		// take as many bits as this byte can supply
		take := min(uint(n-i), r.nbuf)
		chunk := uint64(r.buf>>(8-r.nbuf)) & (1<<take - 1)
		u |= chunk << i
		r.nbuf -= take
		i += int(take)
	}
	return u, nil
}

func (r *Reader) EOS() bool { return r.eos }
