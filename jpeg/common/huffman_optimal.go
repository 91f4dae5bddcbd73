package common

import (
	"container/heap"
	"sort"
)

// SentinelSymbol is a reserved pseudo-symbol included in every optimal
// table build. It is guaranteed the deepest, lexicographically last code,
// so after it is stripped no emitted code consists of all 1-bits (a code
// the JPEG standard forbids).
const SentinelSymbol = 256

// NumSymbols is the size of a frequency table: 256 byte symbols plus the
// sentinel.
const NumSymbols = 257

type huffNode struct {
	count  int
	seq    int // push order, fixes tie-breaking
	symbol int // -1 for internal nodes
	left   int // pool index, -1 for leaves
	right  int
}

type nodeHeap struct {
	pool    []huffNode
	indices []int
}

func (h *nodeHeap) Len() int { return len(h.indices) }

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.pool[h.indices[i]], h.pool[h.indices[j]]
	if a.count != b.count {
		return a.count < b.count
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Swap(i, j int) {
	h.indices[i], h.indices[j] = h.indices[j], h.indices[i]
}

func (h *nodeHeap) Push(x any) {
	h.indices = append(h.indices, x.(int))
}

func (h *nodeHeap) Pop() any {
	old := h.indices
	n := len(old)
	x := old[n-1]
	h.indices = old[:n-1]
	return x
}

// BuildOptimal constructs a length-limited canonical Huffman table from
// symbol frequencies. freq[s] is the number of occurrences of symbol s in
// the record stream; freq[SentinelSymbol] is ignored (the sentinel is
// always added with count zero). Code lengths are limited to 16 by the
// Annex K adjustment of ITU-T T.81, and the sentinel's code is removed
// from the emitted (Bits, Values) pair, so Bits may be short one code at
// the longest length.
func BuildOptimal(freq *[NumSymbols]int) *Table {
	pool := make([]huffNode, 0, 2*NumSymbols)
	h := &nodeHeap{indices: make([]int, 0, NumSymbols)}

	push := func(count, symbol, left, right int) int {
		idx := len(pool)
		pool = append(pool, huffNode{
			count:  count,
			seq:    idx,
			symbol: symbol,
			left:   left,
			right:  right,
		})
		h.indices = append(h.indices, idx)
		return idx
	}

	// The sentinel goes in first: count 0 beats every observed symbol, so
	// it is merged in the first round and lands at the maximum depth.
	push(0, SentinelSymbol, -1, -1)
	for s := 0; s < 256; s++ {
		if freq[s] > 0 {
			push(freq[s], s, -1, -1)
		}
	}
	h.pool = pool
	heap.Init(h)

	if h.Len() < 2 {
		// No observed symbols at all; nothing to code.
		return NewTable([16]int{}, nil)
	}

	for h.Len() > 1 {
		left := heap.Pop(h).(int)
		right := heap.Pop(h).(int)
		idx := len(pool)
		pool = append(pool, huffNode{
			count:  pool[left].count + pool[right].count,
			seq:    idx,
			symbol: -1,
			left:   left,
			right:  right,
		})
		h.pool = pool
		heap.Push(h, idx)
	}
	root := h.indices[0]

	var codeLen [NumSymbols]int
	assignDepths(pool, root, 0, &codeLen)

	maxLen := 0
	for _, n := range pool {
		if n.symbol >= 0 && codeLen[n.symbol] > maxLen {
			maxLen = codeLen[n.symbol]
		}
	}

	// Histogram of lengths, then the Annex K adjustment: every pair of
	// over-long codes trades places with one code higher in the tree.
	counts := make([]int, maxLen+1)
	symbols := make([]int, 0, NumSymbols)
	for _, n := range pool {
		if n.symbol >= 0 {
			counts[codeLen[n.symbol]]++
			symbols = append(symbols, n.symbol)
		}
	}
	for l := maxLen; l > 16; l-- {
		for counts[l] > 0 {
			j := l - 2
			for counts[j] == 0 {
				j--
			}
			counts[l] -= 2
			counts[l-1]++
			counts[j+1] += 2
			counts[j]--
		}
	}

	// HUFFVAL order: length ascending, then symbol value ascending. The
	// sentinel sorts last (deepest length, value 256).
	sort.Slice(symbols, func(i, j int) bool {
		a, b := symbols[i], symbols[j]
		if codeLen[a] != codeLen[b] {
			return codeLen[a] < codeLen[b]
		}
		return a < b
	})

	var bits [16]int
	for l := 1; l <= 16 && l < len(counts); l++ {
		bits[l-1] = counts[l]
	}

	// Strip the sentinel: drop the last symbol and one code at the
	// longest emitted length.
	values := make([]byte, 0, len(symbols)-1)
	for _, s := range symbols[:len(symbols)-1] {
		values = append(values, byte(s))
	}
	for l := 15; l >= 0; l-- {
		if bits[l] > 0 {
			bits[l]--
			break
		}
	}

	return NewTable(bits, values)
}

func assignDepths(pool []huffNode, idx, depth int, codeLen *[NumSymbols]int) {
	n := pool[idx]
	if n.symbol >= 0 {
		codeLen[n.symbol] = depth
		return
	}
	assignDepths(pool, n.left, depth+1, codeLen)
	assignDepths(pool, n.right, depth+1, codeLen)
}
