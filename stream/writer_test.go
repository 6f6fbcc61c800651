package stream

import (
	"bytes"
	"compress/flate"
	stdadler32 "hash/adler32"
	"io"
	"math/rand"
	"strings"
	"testing"

	nflate "github.com/nox-compress/deflate/flate"
)

func adler32Reference(p []byte) uint32 {
	return stdadler32.Checksum(p)
}

func roundTrip(t *testing.T, input []byte, level int) []byte {
	t.Helper()
	var b bytes.Buffer
	w := NewWriter(&b, level)
	if _, err := w.Write(input); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := flate.NewReader(bytes.NewReader(b.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(input))
	}
	return b.Bytes()
}

func TestRoundTripAllLevels(t *testing.T) {
	input := []byte(strings.Repeat("Hello, Hello, Hello. ", 50))
	for level := 0; level <= 9; level++ {
		roundTrip(t, input, level)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil, 6)
}

func TestRoundTripOneByte(t *testing.T) {
	roundTrip(t, []byte{'x'}, 6)
}

func TestRoundTripHighlyRepetitive(t *testing.T) {
	input := bytes.Repeat([]byte{'A'}, 100000)
	out := roundTrip(t, input, 6)
	if len(out) > 2000 {
		t.Fatalf("expected small compressed output for repetitive input, got %d bytes", len(out))
	}
}

func TestRoundTripRandom32KiB(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	input := make([]byte, 32768)
	rng.Read(input)
	roundTrip(t, input, 0)
}

func TestRoundTripStreamedChunks(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	input := make([]byte, 10007)
	rng.Read(input)

	var b bytes.Buffer
	w := NewWriter(&b, 6)
	for off := 0; off < len(input); off += 7 {
		end := off + 7
		if end > len(input) {
			end = len(input)
		}
		if _, err := w.Write(input[off:end]); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := flate.NewReader(bytes.NewReader(b.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	if !bytes.Equal(got, input) {
		t.Fatal("streamed round trip mismatch")
	}
}

func TestFlushMidStream(t *testing.T) {
	var b bytes.Buffer
	w := NewWriter(&b, 6)
	if _, err := w.Write([]byte("first part")); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	firstLen := b.Len()
	if firstLen == 0 {
		t.Fatal("Flush produced no output")
	}
	if _, err := w.Write([]byte("second part")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := flate.NewReader(bytes.NewReader(b.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	if string(got) != "first partsecond part" {
		t.Fatalf("got %q", got)
	}
}

func TestHuffmanOnlyStrategyRoundTrip(t *testing.T) {
	input := make([]byte, 0, 256000)
	for i := 0; i < 1000; i++ {
		for b := 0; b < 256; b++ {
			input = append(input, byte(b))
		}
	}

	var b bytes.Buffer
	w := NewWriter(&b, 1)
	w.SetStrategy(nflate.HuffmanOnly)
	if _, err := w.Write(input); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := flate.NewReader(bytes.NewReader(b.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	if !bytes.Equal(got, input) {
		t.Fatal("round trip mismatch under HuffmanOnly")
	}
}

func TestAdlerMatchesStandardLibrary(t *testing.T) {
	input := []byte("The quick brown fox jumps over the lazy dog")
	var b bytes.Buffer
	w := NewWriter(&b, 6)
	if _, err := w.Write(input); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	want := adler32Reference(input)
	if got := w.Adler(); got != want {
		t.Fatalf("Adler() = %x, want %x", got, want)
	}
}

func TestResetReusesWriter(t *testing.T) {
	var b1 bytes.Buffer
	w := NewWriter(&b1, 6)
	if _, err := w.Write([]byte("first stream")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	var b2 bytes.Buffer
	w.Reset(&b2)
	if _, err := w.Write([]byte("second stream")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := flate.NewReader(bytes.NewReader(b2.Bytes()))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	if string(got) != "second stream" {
		t.Fatalf("got %q", got)
	}
}
