// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import "container/heap"

// A buildNode lives in an arena for the duration of one Build.
// Leaves have zero == -1.
type buildNode struct {
	prio      uint64
	seq       int // insertion order, breaks ties between equal priorities
	sym       Symbol
	zero, one int
}

type nodeHeap struct {
	arena []buildNode
	idx   []int
}

func (h *nodeHeap) Len() int { return len(h.idx) }
func (h *nodeHeap) Less(i, j int) bool {
	a, b := &h.arena[h.idx[i]], &h.arena[h.idx[j]]
	if a.prio != b.prio {
		return a.prio < b.prio
	}
	return a.seq < b.seq
}
func (h *nodeHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *nodeHeap) Push(x any)   { h.idx = append(h.idx, x.(int)) }
func (h *nodeHeap) Pop() any {
	n := h.idx[len(h.idx)-1]
	h.idx = h.idx[:len(h.idx)-1]
	return n
}

func (h *nodeHeap) add(n buildNode) {
	n.seq = len(h.arena)
	h.arena = append(h.arena, n)
	heap.Push(h, n.seq)
}

// Build derives a canonical code table from symbol frequencies.
// Symbols with a zero count get no code.
func Build(freqs *Frequencies) (Table, error) {
	h := &nodeHeap{}
	for s, c := range freqs {
		if c > 0 {
			h.add(buildNode{prio: c, sym: Symbol(s), zero: -1, one: -1})
		}
	}
	if h.Len() == 0 {
		return nil, ErrNoSymbols
	}

	for h.Len() > 1 {
		a := heap.Pop(h).(int)
		b := heap.Pop(h).(int)
		h.add(buildNode{prio: h.arena[a].prio + h.arena[b].prio, zero: a, one: b})
	}
	root := heap.Pop(h).(int)

	lengths, err := depths(h.arena, root)
	if err != nil {
		return nil, err
	}
	return Canonical(lengths)
}

// depths walks the tree breadth first, recording each leaf's depth as its code length.
func depths(arena []buildNode, root int) ([]Entry, error) {
	if arena[root].zero == -1 {
		// lone symbol still needs one bit to be decodable
		return []Entry{{Symbol: arena[root].sym, Len: 1}}, nil
	}

	type item struct{ node, depth int }
	var ret []Entry
	queue := []item{{root, 0}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		n := &arena[it.node]
		if n.zero == -1 {
			if it.depth > MaxCodeLen {
				return nil, ErrCodeOverflow
			}
			ret = append(ret, Entry{Symbol: n.sym, Len: it.depth})
			continue
		}
		queue = append(queue, item{n.zero, it.depth + 1}, item{n.one, it.depth + 1})
	}
	return ret, nil
}
