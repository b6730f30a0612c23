// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/elliotnunn/hufarc/internal/bitstream"
	"github.com/elliotnunn/hufarc/internal/huffman"
)

// A Decoder reads an archive block by block, handing each file to a Sink.
type Decoder struct {
	src     *bufio.Reader
	r       *bitstream.Reader
	sink    Sink
	cfg     config
	entries []BlockInfo
}

func NewDecoder(r io.Reader, sink Sink, opts ...Option) *Decoder {
	cfg := newConfig(opts)
	src := bufio.NewReaderSize(r, cfg.bufSize)
	return &Decoder{
		src:  src,
		r:    bitstream.NewReader(src),
		sink: sink,
		cfg:  cfg,
	}
}

// DecodeAll decodes blocks until one ends the archive.
// An empty archive holds no blocks at all.
func (d *Decoder) DecodeAll() error {
	if len(d.entries) == 0 {
		if _, err := d.src.Peek(1); err == io.EOF {
			d.cfg.log.Debug("archiveEmpty")
			return nil
		} else if err != nil {
			return err
		}
	}
	for {
		more, err := d.DecodeBlock()
		if err != nil {
			return err
		}
		if !more {
			d.cfg.log.Debug("archiveEnd", "blocks", len(d.entries))
			return nil
		}
	}
}

// DecodeBlock decodes one file and reports whether another block follows.
func (d *Decoder) DecodeBlock() (more bool, err error) {
	n := len(d.entries)
	info, more, err := d.decodeBlock()
	if err != nil {
		if info.Name != "" {
			return false, fmt.Errorf("block %d %q: %w", n, info.Name, err)
		}
		return false, fmt.Errorf("block %d: %w", n, err)
	}
	d.entries = append(d.entries, info)
	d.cfg.log.Debug("blockDecoded", "block", n, "info", info, "more", more)
	return more, nil
}

func (d *Decoder) decodeBlock() (info BlockInfo, more bool, err error) {
	lengths, err := readHeader(d.r)
	if err != nil {
		return info, false, err
	}
	if d.r.EOS() {
		return info, false, bitstream.ErrEndOfStream // header ran into padding
	}
	tree, err := huffman.Rebuild(lengths)
	if err != nil {
		return info, false, err
	}
	info.Symbols = len(lengths)
	for _, e := range lengths {
		info.MaxLen = max(info.MaxLen, e.Len)
	}

	info.Name, err = d.readName(tree)
	if err != nil {
		return info, false, err
	}
	if info.Name == "" {
		return info, false, ErrEmptyName
	}

	w, err := d.sink.Create(info.Name)
	if err != nil {
		return info, false, err
	}
	digest := xxhash.New()
	info.Size, more, err = d.readContent(tree, io.MultiWriter(w, digest))
	info.Digest = digest.Sum64()
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return info, more, err
}

func (d *Decoder) next(tree *huffman.Tree) (huffman.Symbol, error) {
	for {
		bit, err := d.r.Read(1)
		if err != nil {
			return 0, err
		}
		// every code of a well-formed archive lies within real bytes,
		// so a padding bit here would complete a symbol from nothing
		if d.r.EOS() {
			return 0, bitstream.ErrEndOfStream
		}
		s, ok, err := tree.Walk(bit)
		if err != nil {
			return 0, err
		}
		if ok {
			return s, nil
		}
	}
}

func (d *Decoder) readName(tree *huffman.Tree) (string, error) {
	var name []byte
	for {
		s, err := d.next(tree)
		if err != nil {
			return "", err
		}
		switch {
		case s == huffman.FilenameEnd:
			return string(name), nil
		case s.IsControl():
			return "", fmt.Errorf("%v inside file name: %w", s, huffman.ErrCorruptTree)
		}
		name = append(name, byte(s))
	}
}

func (d *Decoder) readContent(tree *huffman.Tree, w io.Writer) (n int64, more bool, err error) {
	bw := bufio.NewWriterSize(w, d.cfg.bufSize)
	for {
		s, err := d.next(tree)
		if err != nil {
			return n, false, err
		}
		switch s {
		case huffman.OneMoreFile, huffman.ArchiveEnd:
			return n, s == huffman.OneMoreFile, bw.Flush()
		case huffman.FilenameEnd:
			return n, false, errors.Join(
				fmt.Errorf("%v inside file content: %w", s, huffman.ErrCorruptTree),
				bw.Flush())
		}
		if err := bw.WriteByte(byte(s)); err != nil {
			return n, false, err
		}
		n++
	}
}

// Entries describes every block decoded so far.
func (d *Decoder) Entries() []BlockInfo { return d.entries }
