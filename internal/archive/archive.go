// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package archive chains canonical-Huffman coded file blocks into a single
// bitstream and splits them apart again.
//
// Each block carries its own code table:
//
//	symbolCount:9
//	symbol:9 * symbolCount        (ordered by code length, then value)
//	lengthCount:9 * k             (codes of length 1, 2, ... until the sum is symbolCount)
//	name codes, FILENAME_END code
//	content codes, ONE_MORE_FILE or ARCHIVE_END code
//
// The ONE_MORE_FILE code that separates two blocks belongs to the earlier
// block's table, because the decoder is still walking that tree.
package archive

import (
	"errors"
	"log/slog"
)

var (
	ErrEmptyName      = errors.New("archive: empty file name")
	ErrContentChanged = errors.New("archive: content changed between passes")
)

// BlockInfo describes one encoded or decoded file.
type BlockInfo struct {
	Name    string
	Size    int64
	Symbols int    // distinct symbols in the block's code table
	MaxLen  int    // longest code length
	Digest  uint64 // xxhash64 of the content
}

func (b BlockInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", b.Name),
		slog.Int64("size", b.Size),
		slog.Int("symbols", b.Symbols),
		slog.Int("maxLen", b.MaxLen),
		slog.Uint64("xxhash", b.Digest),
	)
}

const defaultBufSize = 64 << 10

type config struct {
	log     *slog.Logger
	bufSize int
}

type Option func(*config)

func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithBufferSize sets the size of the buffers between the coder and its streams.
func WithBufferSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.bufSize = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{log: slog.Default(), bufSize: defaultBufSize}
	for _, o := range opts {
		o(&c)
	}
	return c
}
