// Package huffman is the entropy-coding collaborator consumed by the
// deflate engine: it tallies literal and length/distance symbols as the
// engine's match search produces them, and turns the accumulated block into
// an RFC 1951 Huffman or stored block written to a bitbuf.Buffer.
//
// The engine never inspects a Coder's internals; it only calls TallyLit,
// TallyDist, IsFull, FlushBlock, FlushStoredBlock and Reset, matching the
// external collaborator contract the engine is specified against.
package huffman

import "github.com/nox-compress/deflate/bitbuf"

// maxBlockTokens bounds how many literal/match tokens accumulate before a
// Coder reports itself full, so blocks stay a reasonable size to encode and
// decode in one pass.
const maxBlockTokens = 1 << 14

type tokenKind uint8

const (
	literalToken tokenKind = iota
	matchToken
)

type token struct {
	kind   tokenKind
	lit    byte
	length uint16
	dist   uint16
}

// Coder is the concrete Huffman coder the engine is built around. It
// implements the tally/flush contract described by the engine's external
// interfaces.
type Coder struct {
	buf *bitbuf.Buffer

	tokens []token

	litFreq  [numLitSymbols]int
	distFreq [numDistSymbols]int

	fixedLit  table
	fixedDist table
}

// NewCoder creates a Coder that writes encoded blocks to buf.
func NewCoder(buf *bitbuf.Buffer) *Coder {
	c := &Coder{buf: buf}
	c.fixedLit = table{codes: assignCanonicalCodes(fixedLiteralLengths())}
	c.fixedDist = table{codes: assignCanonicalCodes(fixedDistLengths())}
	return c
}

// Reset clears all tallied state, preparing the Coder for a new stream. It
// does not touch the underlying bitbuf.Buffer; callers reset that
// separately since it may be shared with a fresh destination writer.
func (c *Coder) Reset() {
	c.tokens = c.tokens[:0]
	for i := range c.litFreq {
		c.litFreq[i] = 0
	}
	for i := range c.distFreq {
		c.distFreq[i] = 0
	}
}

// IsFull reports whether the current block has accumulated enough tokens
// that the caller should flush before tallying more.
func (c *Coder) IsFull() bool {
	return len(c.tokens) >= maxBlockTokens
}

// TallyLit records a literal byte in the current block and returns whether
// the block is now full.
func (c *Coder) TallyLit(b byte) bool {
	c.tokens = append(c.tokens, token{kind: literalToken, lit: b})
	c.litFreq[b]++
	return c.IsFull()
}

// TallyDist records a length/distance match in the current block and
// returns whether the block is now full.
func (c *Coder) TallyDist(dist, length int) bool {
	c.tokens = append(c.tokens, token{kind: matchToken, length: uint16(length), dist: uint16(dist)})
	lsym, _, _ := lengthToSymbol(length)
	dsym, _, _ := distToSymbol(dist)
	c.litFreq[lsym]++
	c.distFreq[dsym]++
	return c.IsFull()
}

// numUsedLiterals returns the number of literal/length symbols that must be
// represented in the table (always at least through the end-of-block code).
func (c *Coder) numUsedLiterals() int {
	n := lengthCodesStart + 1
	for i := len(c.litFreq) - 1; i >= n; i-- {
		if c.litFreq[i] != 0 {
			return i + 1
		}
	}
	return n
}

func (c *Coder) numUsedDistances() int {
	for i := len(c.distFreq) - 1; i >= 1; i-- {
		if c.distFreq[i] != 0 {
			return i + 1
		}
	}
	return 1
}

// FlushBlock writes the accumulated tokens as one RFC 1951 block, choosing
// whichever of {stored, fixed Huffman, dynamic Huffman} is smallest. window
// is the raw byte range the block covers (for the stored-block fallback);
// it may be empty if this block is purely a flush with no data. A negative
// start means the block began before the window's last slide, so its raw
// bytes are gone and no stored block is considered.
func (c *Coder) FlushBlock(window []byte, start, length int, last bool) {
	c.litFreq[endOfBlock] = 1

	numLit := c.numUsedLiterals()
	numDist := c.numUsedDistances()

	litTable := buildTable(c.litFreq[:numLit], 15)
	distTable := buildTable(c.distFreq[:numDist], 15)

	extraBits := c.extraBitTotal()
	dynamicBits, numCodegens, codegen, codegenFreq := c.codegenSize(numLit, numDist, litTable, distTable)
	dynamicSize := dynamicBits + litTable.bitLength(c.litFreq[:numLit]) + distTable.bitLength(c.distFreq[:numDist]) + extraBits

	fixedSize := 3 + c.fixedLit.bitLength(c.litFreq[:]) + c.fixedDist.bitLength(c.distFreq[:]) + extraBits

	var body []byte
	storedSize, storable := 0, false
	if start >= 0 {
		body = window[start : start+length]
		storedSize, storable = storedBitSize(body)
	}

	switch {
	case storable && storedSize <= dynamicSize && storedSize <= fixedSize:
		c.writeStoredHeader(length, last)
		c.buf.WriteBytes(body)
	case dynamicSize <= fixedSize:
		c.writeDynamicHeader(numLit, numDist, numCodegens, codegen, codegenFreq, last)
		c.writeTokens(litTable, distTable)
	default:
		c.writeFixedHeader(last)
		c.writeTokens(c.fixedLit, c.fixedDist)
	}

	c.Reset()
	if last {
		c.buf.Flush()
	}
}

// FlushStoredBlock writes window[start:start+length] as a stored block,
// bypassing Huffman tallying entirely. This is the Stored driver's only
// interaction with the coder.
func (c *Coder) FlushStoredBlock(window []byte, start, length int, last bool) {
	c.writeStoredHeader(length, last)
	c.buf.WriteBytes(window[start : start+length])
	if last {
		c.buf.Flush()
	}
}

func (c *Coder) extraBitTotal() int {
	total := 0
	for _, t := range c.tokens {
		if t.kind != matchToken {
			continue
		}
		_, _, lnb := lengthToSymbol(int(t.length))
		_, _, dnb := distToSymbol(int(t.dist))
		total += int(lnb) + int(dnb)
	}
	return total
}

// storedBitSize returns the bit cost of a stored block (3-bit header,
// padding to a byte boundary, 4-byte LEN/NLEN, then the raw bytes) and
// whether the block is small enough to be stored at all.
func storedBitSize(body []byte) (int, bool) {
	if len(body) > 0xffff {
		return 0, false
	}
	return (len(body) + 5) * 8, true
}

func (c *Coder) writeStoredHeader(length int, last bool) {
	var flag uint32
	if last {
		flag = 1
	}
	c.buf.WriteBits(flag, 3)
	c.buf.AlignToByte()
	c.buf.FlushBits()
	c.buf.WriteBits(uint32(length), 16)
	c.buf.WriteBits(uint32(^uint16(length)), 16)
	c.buf.FlushBits()
}

func (c *Coder) writeFixedHeader(last bool) {
	v := uint32(2)
	if last {
		v = 3
	}
	c.buf.WriteBits(v, 3)
}

func (c *Coder) writeDynamicHeader(numLit, numDist, numCodegens int, codegen []uint8, codegenFreq []int, last bool) {
	v := uint32(4)
	if last {
		v = 5
	}
	c.buf.WriteBits(v, 3)
	c.buf.WriteBits(uint32(numLit-257), 5)
	c.buf.WriteBits(uint32(numDist-1), 5)
	c.buf.WriteBits(uint32(numCodegens-4), 4)

	codegenTable := buildTable(codegenFreq, 7)
	for i := 0; i < numCodegens; i++ {
		c.buf.WriteBits(uint32(codegenTable.lengthOf(int(codegenOrder[i]))), 3)
	}

	i := 0
	for {
		sym := codegen[i]
		i++
		if sym == badCode {
			break
		}
		cd := codegenTable.codes[sym]
		c.buf.WriteBits(uint32(cd.bits), uint(cd.len))
		switch sym {
		case 16:
			c.buf.WriteBits(uint32(codegen[i]), 2)
			i++
		case 17:
			c.buf.WriteBits(uint32(codegen[i]), 3)
			i++
		case 18:
			c.buf.WriteBits(uint32(codegen[i]), 7)
			i++
		}
	}
}

func (c *Coder) writeTokens(litTable, distTable table) {
	for _, t := range c.tokens {
		if t.kind == literalToken {
			cd := litTable.codes[t.lit]
			c.buf.WriteBits(uint32(cd.bits), uint(cd.len))
			continue
		}
		lsym, lextra, lnb := lengthToSymbol(int(t.length))
		cd := litTable.codes[lsym]
		c.buf.WriteBits(uint32(cd.bits), uint(cd.len))
		if lnb > 0 {
			c.buf.WriteBits(lextra, uint(lnb))
		}
		dsym, dextra, dnb := distToSymbol(int(t.dist))
		cd = distTable.codes[dsym]
		c.buf.WriteBits(uint32(cd.bits), uint(cd.len))
		if dnb > 0 {
			c.buf.WriteBits(dextra, uint(dnb))
		}
	}
	eob := litTable.codes[endOfBlock]
	c.buf.WriteBits(uint32(eob.bits), uint(eob.len))
}

// codegenSize computes the RFC 1951 3.2.7 run-length encoding of the
// concatenated literal/distance code lengths, returning its bit cost along
// with the codegen symbol stream itself (reused by writeDynamicHeader so
// the run-length encoding is only computed once per block).
func (c *Coder) codegenSize(numLit, numDist int, litTable, distTable table) (size int, numCodegens int, codegen []uint8, codegenFreq []int) {
	codegen = make([]uint8, 0, numLit+numDist+1)
	for i := 0; i < numLit; i++ {
		codegen = append(codegen, litTable.lengthOf(i))
	}
	for i := 0; i < numDist; i++ {
		codegen = append(codegen, distTable.lengthOf(i))
	}

	codegenFreq = make([]int, numCodegenSymbols)
	runLength := runLengthEncode(codegen, codegenFreq)

	numCodegens = numCodegenSymbols
	for numCodegens > 4 && codegenFreq[codegenOrder[numCodegens-1]] == 0 {
		numCodegens--
	}

	cgTable := buildTable(codegenFreq, 7)
	size = 3 + 5 + 5 + 4 + 3*numCodegens + cgTable.bitLength(codegenFreq)
	size += codegenFreq[16]*2 + codegenFreq[17]*3 + codegenFreq[18]*7

	return size, numCodegens, runLength, codegenFreq
}

// runLengthEncode applies the RFC 1951 3.2.7 run-length scheme to a
// concatenated literal+distance code-length array, returning the resulting
// codegen symbol stream (terminated by badCode) and tallying codegenFreq.
func runLengthEncode(lens []uint8, codegenFreq []int) []uint8 {
	out := make([]uint8, 0, len(lens)+1)
	size := lens[0]
	count := 1
	for i := 1; ; i++ {
		var next uint8 = badCode
		if i < len(lens) {
			next = lens[i]
		}
		if next == size && i < len(lens) {
			count++
			continue
		}
		if size != 0 {
			out = append(out, size)
			codegenFreq[size]++
			count--
			for count >= 3 {
				n := 6
				if n > count {
					n = count
				}
				out = append(out, 16, uint8(n-3))
				codegenFreq[16]++
				count -= n
			}
		} else {
			for count >= 11 {
				n := 138
				if n > count {
					n = count
				}
				out = append(out, 18, uint8(n-11))
				codegenFreq[18]++
				count -= n
			}
			if count >= 3 {
				out = append(out, 17, uint8(count-3))
				codegenFreq[17]++
				count = 0
			}
		}
		for ; count > 0; count-- {
			out = append(out, size)
			codegenFreq[size]++
		}
		if i >= len(lens) {
			break
		}
		size = next
		count = 1
	}
	out = append(out, badCode)
	return out
}
