// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

// Child index 0 means "no child": the root is node 0 and is nobody's child.
type node struct {
	zero, one int
	sym       Symbol
	leaf      bool
}

// A Tree decodes a bitstream one bit at a time.
type Tree struct {
	nodes []node
	cur   int
}

// Rebuild reconstructs a decoding tree from (symbol, length) pairs.
// The pairs need not be sorted and any codes they carry are ignored.
func Rebuild(lengths []Entry) (*Tree, error) {
	table, err := Canonical(lengths)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, ErrCorruptTree
	}
	t := &Tree{nodes: make([]node, 1, 2*len(table))}
	for _, e := range table {
		if err := t.insert(e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree) insert(e Entry) error {
	if int(e.Symbol) >= AlphabetSize {
		return ErrCorruptTree
	}
	n := 0
	for i := e.Len - 1; i >= 0; i-- {
		if t.nodes[n].leaf {
			return ErrCorruptTree
		}
		child := &t.nodes[n].zero
		if e.Code>>i&1 == 1 {
			child = &t.nodes[n].one
		}
		next := *child
		if next == 0 {
			next = len(t.nodes)
			*child = next
			t.nodes = append(t.nodes, node{})
		}
		n = next
	}
	if t.nodes[n].leaf || t.nodes[n].zero != 0 || t.nodes[n].one != 0 {
		return ErrCorruptTree
	}
	t.nodes[n].leaf, t.nodes[n].sym = true, e.Symbol
	return nil
}

// Walk steps the cursor one edge (bit 0 left, 1 right) and reports the
// symbol if that lands on a leaf. After a leaf the next Walk starts from the root.
func (t *Tree) Walk(bit uint64) (Symbol, bool, error) {
	if t.nodes[t.cur].leaf {
		t.cur = 0
	}
	next := t.nodes[t.cur].zero
	if bit != 0 {
		next = t.nodes[t.cur].one
	}
	if next == 0 {
		return 0, false, ErrCorruptTree
	}
	t.cur = next
	if t.nodes[next].leaf {
		return t.nodes[next].sym, true, nil
	}
	return 0, false, nil
}

func (t *Tree) Reset() { t.cur = 0 }
