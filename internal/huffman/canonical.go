// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"cmp"
	"slices"
)

// An Entry is one symbol's code. Code holds Len bits, the first bit
// on the wire being the most significant.
type Entry struct {
	Symbol Symbol
	Len    int
	Code   uint64
}

// A Table lists codes ordered by length, then by symbol.
type Table []Entry

// Canonical sorts (symbol, length) pairs and assigns consecutive codes
// within each length. Any Code already in the input is ignored.
func Canonical(lengths []Entry) (Table, error) {
	t := slices.Clone(Table(lengths))
	slices.SortFunc(t, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(a.Len, b.Len), cmp.Compare(a.Symbol, b.Symbol))
	})

	var code uint64
	for i := range t {
		if t[i].Len < 1 || t[i].Len > MaxCodeLen {
			return nil, ErrCodeOverflow
		}
		if i > 0 {
			prev := t[i-1].Len
			if code == ^uint64(0)>>(64-prev) {
				return nil, ErrCodeOverflow // no successor at this width
			}
			code++
			code <<= t[i].Len - prev
		}
		t[i].Code = code
	}
	return t, nil
}

func (t Table) MaxLen() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Len
}

// LengthCounts returns how many codes have each length from 1 to MaxLen.
func (t Table) LengthCounts() []int {
	counts := make([]int, t.MaxLen())
	for _, e := range t {
		counts[e.Len-1]++
	}
	return counts
}

// A Codebook indexes a Table by symbol. Absent symbols have Len 0.
type Codebook [AlphabetSize]Entry

func (t Table) Codebook() *Codebook {
	cb := new(Codebook)
	for _, e := range t {
		if int(e.Symbol) < AlphabetSize {
			cb[e.Symbol] = e
		}
	}
	return cb
}

func (cb *Codebook) Lookup(s Symbol) (Entry, bool) {
	if int(s) >= AlphabetSize || cb[s].Len == 0 {
		return Entry{}, false
	}
	return cb[s], true
}
