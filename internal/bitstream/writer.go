// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package bitstream

import (
	"bufio"
	"io"
	"math/bits"
)

// A Writer packs bit fields into a byte stream, LSB first.
type Writer struct {
	out     io.ByteWriter
	wrapper *bufio.Writer // non-nil if out did not implement io.ByteWriter
	buf     byte
	nbuf    uint // bits occupied in buf
	closed  bool
	err     error
}

// A Writer must be closed to flush the final partial byte.
func NewWriter(out io.Writer) *Writer {
	w := &Writer{}
	if bw, ok := out.(io.ByteWriter); ok {
		w.out = bw
	} else {
		w.wrapper = bufio.NewWriter(out)
		w.out = w.wrapper
	}
	return w
}

// Write appends the low n bits of v, bit 0 first.
func (w *Writer) Write(v uint64, n int) error {
	if n < 1 || n > 64 {
		panic("bitstream: bit count out of range")
	}
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return ErrClosed
	}

	for n > 0 {
		room := 8 - w.nbuf
		take := min(uint(n), room)
		w.buf |= byte(v&(1<<take-1)) << w.nbuf
		w.nbuf += take
		v >>= take
		n -= int(take)
		if w.nbuf == 8 {
			if err := w.out.WriteByte(w.buf); err != nil {
				w.err = err
				return err
			}
			w.buf, w.nbuf = 0, 0
		}
	}
	return nil
}

// WriteCode appends an n-bit prefix code with its most significant bit first,
// which is the order a decoder walks the tree.
func (w *Writer) WriteCode(code uint64, n int) error {
	if n < 1 || n > 64 {
		panic("bitstream: bit count out of range")
	}
	return w.Write(bits.Reverse64(code)>>(64-n), n)
}

// Close flushes any partial byte, padding the high bits with zeros.
// Close does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	if w.nbuf > 0 {
		if err := w.out.WriteByte(w.buf); err != nil {
			w.err = err
			return err
		}
		w.buf, w.nbuf = 0, 0
	}
	if w.wrapper != nil {
		w.err = w.wrapper.Flush()
	}
	return w.err
}
