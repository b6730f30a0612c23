// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package archive

import (
	"github.com/elliotnunn/hufarc/internal/bitstream"
	"github.com/elliotnunn/hufarc/internal/huffman"
)

func writeHeader(w *bitstream.Writer, t huffman.Table) error {
	if err := w.Write(uint64(len(t)), huffman.SymbolBits); err != nil {
		return err
	}
	for _, e := range t {
		if err := w.Write(uint64(e.Symbol), huffman.SymbolBits); err != nil {
			return err
		}
	}
	for _, n := range t.LengthCounts() {
		if err := w.Write(uint64(n), huffman.SymbolBits); err != nil {
			return err
		}
	}
	return nil
}

// readHeader returns the block's symbols with their code lengths, codes unset.
func readHeader(r *bitstream.Reader) ([]huffman.Entry, error) {
	n, err := r.Read(huffman.SymbolBits)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, huffman.ErrCorruptTree // every block codes at least the control symbols
	}
	entries := make([]huffman.Entry, n)
	for i := range entries {
		s, err := r.Read(huffman.SymbolBits)
		if err != nil {
			return nil, err
		}
		entries[i].Symbol = huffman.Symbol(s)
	}

	i := 0
	for length := 1; i < len(entries); length++ {
		if length > huffman.MaxCodeLen {
			return nil, huffman.ErrCodeOverflow
		}
		count, err := r.Read(huffman.SymbolBits)
		if err != nil {
			return nil, err
		}
		if count > uint64(len(entries)-i) {
			return nil, huffman.ErrCorruptTree // counts overshoot the symbol count
		}
		for range count {
			entries[i].Len = length
			i++
		}
	}
	return entries, nil
}
