// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package archive

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/elliotnunn/hufarc/internal/bitstream"
	"github.com/elliotnunn/hufarc/internal/huffman"
)

// An Encoder writes an archive one file at a time.
// It must be closed to terminate the archive.
type Encoder struct {
	w   *bitstream.Writer
	buf *bufio.Writer // non-nil if we wrapped the destination
	cfg config

	// terminator codes of the most recent block, nil before the first
	pending *terminators
	blocks  int
	err     error // set once a block is abandoned part-written
}

type terminators struct {
	more, end huffman.Entry
}

func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	e := &Encoder{cfg: newConfig(opts)}
	if _, ok := w.(io.ByteWriter); !ok {
		e.buf = bufio.NewWriterSize(w, e.cfg.bufSize)
		w = e.buf
	}
	e.w = bitstream.NewWriter(w)
	return e
}

// EncodeFile appends one block. The content is read twice,
// once to count symbols and once to encode them.
func (e *Encoder) EncodeFile(content io.ReadSeeker, name string) (BlockInfo, error) {
	if e.err != nil {
		return BlockInfo{Name: name}, e.err
	}
	info, err := e.encodeFile(content, name)
	if err != nil {
		return info, fmt.Errorf("encoding %q: %w", name, err)
	}
	e.cfg.log.Debug("blockEncoded", "block", e.blocks-1, "info", info)
	return info, nil
}

// EncodeBytes appends one block holding an in-memory file.
func (e *Encoder) EncodeBytes(content []byte, name string) (BlockInfo, error) {
	return e.EncodeFile(bytes.NewReader(content), name)
}

func (e *Encoder) encodeFile(content io.ReadSeeker, name string) (BlockInfo, error) {
	info := BlockInfo{Name: name}
	if name == "" {
		return info, ErrEmptyName
	}

	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return info, err
	}
	var freqs huffman.Frequencies
	freqs.AddBytes([]byte(name))
	digest := xxhash.New()
	size, err := io.Copy(io.MultiWriter((*freqCounter)(&freqs), digest), content)
	if err != nil {
		return info, err
	}
	freqs.AddSymbol(huffman.FilenameEnd)
	freqs.AddSymbol(huffman.OneMoreFile)
	freqs.AddSymbol(huffman.ArchiveEnd)
	info.Size, info.Digest = size, digest.Sum64()

	table, err := huffman.Build(&freqs)
	if err != nil {
		return info, err
	}
	info.Symbols, info.MaxLen = len(table), table.MaxLen()
	book := table.Codebook()

	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return info, err
	}

	if err := e.emitBlock(content, name, table, book, size); err != nil {
		e.err = fmt.Errorf("archive abandoned mid-block: %w", err)
		return info, err
	}
	more, _ := book.Lookup(huffman.OneMoreFile)
	end, _ := book.Lookup(huffman.ArchiveEnd)
	e.pending = &terminators{more: more, end: end}
	e.blocks++
	return info, nil
}

func (e *Encoder) emitBlock(content io.Reader, name string, table huffman.Table, book *huffman.Codebook, size int64) error {
	// the previous block's decoder is still live at this point
	if e.pending != nil {
		if err := e.emit(e.pending.more); err != nil {
			return err
		}
	}

	if err := writeHeader(e.w, table); err != nil {
		return err
	}
	for _, b := range []byte(name) {
		if err := e.emitSymbol(book, huffman.Symbol(b)); err != nil {
			return err
		}
	}
	if err := e.emitSymbol(book, huffman.FilenameEnd); err != nil {
		return err
	}

	br := bufio.NewReaderSize(content, e.cfg.bufSize)
	var n int64
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		if n++; n > size {
			return ErrContentChanged
		}
		if err := e.emitSymbol(book, huffman.Symbol(b)); err != nil {
			return err
		}
	}
	if n != size {
		return ErrContentChanged
	}
	return nil
}

func (e *Encoder) emitSymbol(book *huffman.Codebook, s huffman.Symbol) error {
	c, ok := book.Lookup(s)
	if !ok {
		// counted in the first pass, so the source must have changed
		return ErrContentChanged
	}
	return e.emit(c)
}

func (e *Encoder) emit(c huffman.Entry) error {
	return e.w.WriteCode(c.Code, c.Len)
}

// Close writes the last block's ARCHIVE_END code and flushes the stream.
// An Encoder that never encoded a file leaves the output empty.
// Close does not close the underlying writer.
func (e *Encoder) Close() error {
	var err error
	if e.pending != nil && e.err == nil {
		err = e.emit(e.pending.end)
		e.pending = nil
	}
	if cerr := e.w.Close(); err == nil {
		err = cerr
	}
	if e.buf != nil {
		if ferr := e.buf.Flush(); err == nil {
			err = ferr
		}
	}
	if err == nil {
		err = e.err
	}
	if err != nil {
		return err
	}
	e.cfg.log.Debug("archiveClosed", "blocks", e.blocks)
	return nil
}

// Blocks reports how many files have been encoded.
func (e *Encoder) Blocks() int { return e.blocks }

type freqCounter huffman.Frequencies

func (f *freqCounter) Write(p []byte) (int, error) {
	(*huffman.Frequencies)(f).AddBytes(p)
	return len(p), nil
}
