package huffman

import (
	"bytes"
	stdflate "compress/flate"
	"io"
	"testing"

	"github.com/nox-compress/deflate/bitbuf"
)

func decode(t *testing.T, p []byte) []byte {
	t.Helper()
	r := stdflate.NewReader(bytes.NewReader(p))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	return got
}

func TestFlushBlockAllLiterals(t *testing.T) {
	var dst bytes.Buffer
	buf := bitbuf.New(&dst)
	c := NewCoder(buf)

	window := []byte("the quick brown fox jumps over the lazy dog")
	for _, b := range window {
		c.TallyLit(b)
	}
	c.FlushBlock(window, 0, len(window), true)
	if err := buf.Err(); err != nil {
		t.Fatal(err)
	}

	got := decode(t, dst.Bytes())
	if !bytes.Equal(got, window) {
		t.Fatalf("got %q, want %q", got, window)
	}
}

func TestFlushBlockWithMatches(t *testing.T) {
	var dst bytes.Buffer
	buf := bitbuf.New(&dst)
	c := NewCoder(buf)

	window := []byte("abcabcabcabc")
	for _, b := range window[:3] {
		c.TallyLit(b)
	}
	c.TallyDist(3, 9) // repeat "abcabcabc" from distance 3
	c.FlushBlock(window, 0, len(window), true)
	if err := buf.Err(); err != nil {
		t.Fatal(err)
	}

	got := decode(t, dst.Bytes())
	if !bytes.Equal(got, window) {
		t.Fatalf("got %q, want %q", got, window)
	}
}

func TestFlushStoredBlock(t *testing.T) {
	var dst bytes.Buffer
	buf := bitbuf.New(&dst)
	c := NewCoder(buf)

	window := bytes.Repeat([]byte{0xAB, 0xCD}, 40)
	c.FlushStoredBlock(window, 0, len(window), true)
	if err := buf.Err(); err != nil {
		t.Fatal(err)
	}

	got := decode(t, dst.Bytes())
	if !bytes.Equal(got, window) {
		t.Fatal("stored block round trip mismatch")
	}
}

func TestIsFullAndReset(t *testing.T) {
	var dst bytes.Buffer
	buf := bitbuf.New(&dst)
	c := NewCoder(buf)

	if c.IsFull() {
		t.Fatal("fresh coder should not be full")
	}
	for i := 0; i < maxBlockTokens; i++ {
		c.TallyLit('a')
	}
	if !c.IsFull() {
		t.Fatal("coder should report full after maxBlockTokens tallies")
	}
	c.Reset()
	if c.IsFull() {
		t.Fatal("coder should not be full after Reset")
	}
}

// TestLimitLengthsRepaysKraftDeficit uses Fibonacci-weighted frequencies,
// the classic construction that forces a Huffman tree's depth to grow by
// one level per symbol, to drive buildLengths's overflow-repayment path
// (overflow > 0) with a realistic maxBits=15 the way FlushBlock calls it. A
// length-limiting bug that breaks the Kraft-McMillan inequality or leaves
// symbols stuck above maxBits would otherwise go completely untested.
func TestLimitLengthsRepaysKraftDeficit(t *testing.T) {
	const maxBits = 15
	const numSymbols = 24 // deep enough that the natural tree exceeds 15 levels

	freq := make([]int, numSymbols)
	a, b := 1, 1
	for i := range freq {
		freq[i] = a
		a, b = b, a+b
	}

	lengths := buildLengths(freq, maxBits)

	kraft := 0.0
	for i, l := range lengths {
		if freq[i] == 0 {
			continue
		}
		if l == 0 || int(l) > maxBits {
			t.Fatalf("symbol %d has invalid length %d after length limiting", i, l)
		}
		kraft += 1.0 / float64(uint32(1)<<l)
	}
	if kraft > 1.0+1e-9 {
		t.Fatalf("Kraft sum %v exceeds 1 after length limiting (codes would collide)", kraft)
	}

	codes := assignCanonicalCodes(lengths)
	type codeKey struct {
		length uint8
		value  uint16
	}
	seen := make(map[codeKey]int)
	for sym, c := range codes {
		if lengths[sym] == 0 {
			continue
		}
		key := codeKey{length: c.len, value: reverseBits(c.bits, c.len)}
		if other, ok := seen[key]; ok {
			t.Fatalf("symbols %d and %d share canonical code %+v", other, sym, key)
		}
		seen[key] = sym
	}
}

func TestMultipleBlocksConcatenate(t *testing.T) {
	var dst bytes.Buffer
	buf := bitbuf.New(&dst)
	c := NewCoder(buf)

	window1 := []byte("first block of text")
	for _, b := range window1 {
		c.TallyLit(b)
	}
	c.FlushBlock(window1, 0, len(window1), false)

	window2 := []byte("second block of text")
	for _, b := range window2 {
		c.TallyLit(b)
	}
	c.FlushBlock(window2, 0, len(window2), true)

	if err := buf.Err(); err != nil {
		t.Fatal(err)
	}

	got := decode(t, dst.Bytes())
	want := append(append([]byte{}, window1...), window2...)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}
