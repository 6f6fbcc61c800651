package huffman

import "sort"

// code is a canonical Huffman code: a bit pattern (LSB-first, as DEFLATE
// requires) and its length in bits.
type code struct {
	bits uint16
	len  uint8
}

// table is a canonical Huffman table built from a symbol frequency
// histogram: code lengths derived by a standard Huffman tree build, then
// length-limited to maxBits and assigned canonical (lowest-bit-pattern-first)
// codes per RFC 1951 3.2.2.
type table struct {
	codes []code
}

type heapNode struct {
	freq     int
	sym      int // leaf symbol, or -1 for an internal node
	depth    int // max depth below this node, used to break frequency ties
	children [2]*heapNode
}

// buildTable constructs a canonical Huffman table for the given symbol
// frequencies, with no code longer than maxBits. Symbols with zero
// frequency get a zero-length (unused) code. When fewer than two symbols
// are used, a single symbol (symbol 0 if none is used) gets a 1-bit code so
// the table still describes at least one code.
func buildTable(freq []int, maxBits int) table {
	lengths := buildLengths(freq, maxBits)
	return table{codes: assignCanonicalCodes(lengths)}
}

// buildLengths runs a classic Huffman tree construction (repeatedly merge
// the two least frequent nodes) and then applies Kraft-McMillan length
// limiting so no code exceeds maxBits.
func buildLengths(freq []int, maxBits int) []uint8 {
	n := len(freq)
	lengths := make([]uint8, n)

	var nodes []*heapNode
	for sym, f := range freq {
		if f > 0 {
			nodes = append(nodes, &heapNode{freq: f, sym: sym})
		}
	}

	switch len(nodes) {
	case 0:
		// No symbols used at all (can happen for the distance table of a
		// block with no matches); give symbol 0 a 1-bit code so the table
		// is still syntactically valid.
		lengths[0] = 1
		return lengths
	case 1:
		lengths[nodes[0].sym] = 1
		return lengths
	}

	h := &nodeHeap{nodes}
	h.heapify()
	for h.Len() > 1 {
		a := h.pop()
		b := h.pop()
		depth := a.depth
		if b.depth > depth {
			depth = b.depth
		}
		h.push(&heapNode{freq: a.freq + b.freq, sym: -1, depth: depth + 1, children: [2]*heapNode{a, b}})
	}
	root := h.pop()
	assignDepths(root, 0, lengths)

	limitLengths(lengths, maxBits)
	return lengths
}

func assignDepths(n *heapNode, depth int, lengths []uint8) {
	if n.sym >= 0 {
		if depth == 0 {
			depth = 1 // a single-symbol subtree still needs a 1-bit code
		}
		lengths[n.sym] = uint8(depth)
		return
	}
	assignDepths(n.children[0], depth+1, lengths)
	assignDepths(n.children[1], depth+1, lengths)
}

// limitLengths enforces the Kraft-McMillan inequality for a maximum code
// length, using zlib's gen_bitlen overflow-repayment technique: symbols
// whose length exceeds maxBits are clamped, which overfills the code space
// by some number of maxBits-long codes; each such unit is then repaid by
// moving the deepest available leaf below maxBits down one level and
// splitting an overflow slot at maxBits into two siblings one level up
// (trading one code of length k for two of length k+1 is Kraft-neutral, and
// removing one of the surplus codes sitting at maxBits repays one unit).
func limitLengths(lengths []uint8, maxBits int) {
	counts := make([]int, maxBits+2)
	clamped := false
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		if int(l) > maxBits {
			clamped = true
			lengths[i] = uint8(maxBits)
			l = uint8(maxBits)
		}
		counts[l]++
	}
	if !clamped {
		return
	}

	// overflow is the Kraft sum's excess over 1, in units of 2^-maxBits.
	overflow := -(1 << maxBits)
	for l := 1; l <= maxBits; l++ {
		overflow += counts[l] << (maxBits - l)
	}
	for overflow > 0 {
		bits := maxBits - 1
		for bits > 0 && counts[bits] == 0 {
			bits--
		}
		counts[bits]--
		counts[bits+1] += 2
		counts[maxBits]--
		overflow--
	}

	// Re-derive per-symbol lengths from the corrected length histogram,
	// preserving the original frequency ordering (longer codes to rarer
	// symbols) by re-walking symbols sorted by their clamped length, ties
	// broken by symbol index so the assignment is deterministic.
	order := make([]int, 0, len(lengths))
	for i, l := range lengths {
		if l > 0 {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if lengths[order[i]] != lengths[order[j]] {
			return lengths[order[i]] < lengths[order[j]]
		}
		return order[i] < order[j]
	})

	idx := 0
	for l := 1; l <= maxBits; l++ {
		for c := 0; c < counts[l]; c++ {
			if idx >= len(order) {
				break
			}
			lengths[order[idx]] = uint8(l)
			idx++
		}
	}
}

// assignCanonicalCodes assigns canonical Huffman bit patterns given final
// code lengths, per RFC 1951 3.2.2, then bit-reverses each code since
// DEFLATE Huffman codes are packed MSB-first within the code but the
// surrounding bitstream is LSB-first.
func assignCanonicalCodes(lengths []uint8) []code {
	codes := make([]code, len(lengths))

	var maxLen uint8
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return codes
	}

	blCount := make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}
	nextCode := make([]uint16, maxLen+1)
	var c uint16
	for bits := 1; bits <= int(maxLen); bits++ {
		c = (c + uint16(blCount[bits-1])) << 1
		nextCode[bits] = c
	}

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		codes[sym] = code{bits: reverseBits(nextCode[l], l), len: l}
		nextCode[l]++
	}
	return codes
}

func reverseBits(v uint16, nb uint8) uint16 {
	var r uint16
	for i := uint8(0); i < nb; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// bitLength returns the number of bits it would take to encode freq
// according to this table's code lengths.
func (t table) bitLength(freq []int) int {
	total := 0
	for sym, f := range freq {
		if f == 0 {
			continue
		}
		total += f * int(t.lengthOf(sym))
	}
	return total
}

func (t table) lengthOf(sym int) uint8 {
	if sym >= len(t.codes) {
		return 0
	}
	return t.codes[sym].len
}

// nodeHeap is a small binary min-heap over heapNode by frequency, with ties
// broken by subtree depth (shallower first) to keep trees shallow.
type nodeHeap struct {
	data []*heapNode
}

func (h *nodeHeap) Len() int { return len(h.data) }

func (h *nodeHeap) heapify() {
	for i := len(h.data)/2 - 1; i >= 0; i-- {
		h.down(i)
	}
}

func (h *nodeHeap) push(n *heapNode) {
	h.data = append(h.data, n)
	h.up(len(h.data) - 1)
}

func (h *nodeHeap) pop() *heapNode {
	n := h.data[0]
	last := len(h.data) - 1
	h.data[0] = h.data[last]
	h.data = h.data[:last]
	if len(h.data) > 0 {
		h.down(0)
	}
	return n
}

func less(a, b *heapNode) bool {
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.depth < b.depth
}

func (h *nodeHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.data[i], h.data[parent]) {
			break
		}
		h.data[i], h.data[parent] = h.data[parent], h.data[i]
		i = parent
	}
}

func (h *nodeHeap) down(i int) {
	n := len(h.data)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && less(h.data[right], h.data[left]) {
			smallest = right
		}
		if !less(h.data[smallest], h.data[i]) {
			break
		}
		h.data[i], h.data[smallest] = h.data[smallest], h.data[i]
		i = smallest
	}
}
