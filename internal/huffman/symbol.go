// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package huffman builds canonical Huffman codes over a 259-symbol alphabet
// of literal bytes plus three control symbols, and rebuilds decoding trees
// from code lengths alone.
package huffman

import (
	"errors"
	"fmt"
)

// A Symbol is a literal byte (0-255) or one of the control symbols.
type Symbol uint16

const (
	FilenameEnd Symbol = 256 + iota
	OneMoreFile
	ArchiveEnd
)

const (
	AlphabetSize = 259
	SymbolBits   = 9  // width of every symbol index or count in a block header
	MaxCodeLen   = 64 // codes are held in a uint64
)

var (
	ErrNoSymbols    = errors.New("huffman: no symbols with nonzero frequency")
	ErrCorruptTree  = errors.New("huffman: corrupt tree")
	ErrCodeOverflow = errors.New("huffman: code lengths overflow the code space")
)

func (s Symbol) IsControl() bool { return s >= FilenameEnd }

func (s Symbol) String() string {
	switch s {
	case FilenameEnd:
		return "FILENAME_END"
	case OneMoreFile:
		return "ONE_MORE_FILE"
	case ArchiveEnd:
		return "ARCHIVE_END"
	}
	return fmt.Sprintf("%#02x", uint16(s))
}

// Frequencies counts occurrences of every symbol in one block.
type Frequencies [AlphabetSize]uint64

func (f *Frequencies) AddBytes(p []byte) {
	for _, b := range p {
		f[b]++
	}
}

func (f *Frequencies) AddSymbol(s Symbol) { f[s]++ }

// Present counts symbols that would get a code.
func (f *Frequencies) Present() int {
	n := 0
	for _, c := range f {
		if c > 0 {
			n++
		}
	}
	return n
}
