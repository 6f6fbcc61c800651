package adler32

import (
	stdadler32 "hash/adler32"
	"testing"
)

func TestValueMatchesStandardLibrary(t *testing.T) {
	s := New()
	input := []byte("Wikipedia")
	s.Update(input)
	if got, want := s.Value(), stdadler32.Checksum(input); got != want {
		t.Fatalf("got %#x, want %#x", got, want)
	}
}

func TestIncrementalUpdatesMatchSinglePass(t *testing.T) {
	s := New()
	chunks := [][]byte{[]byte("The quick "), []byte("brown fox "), []byte("jumps over the lazy dog")}
	var all []byte
	for _, c := range chunks {
		s.Update(c)
		all = append(all, c...)
	}
	if got, want := s.Value(), stdadler32.Checksum(all); got != want {
		t.Fatalf("got %#x, want %#x", got, want)
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.Update([]byte("some bytes"))
	s.Reset()
	if got, want := s.Value(), stdadler32.Checksum(nil); got != want {
		t.Fatalf("got %#x, want %#x after reset", got, want)
	}
}

func TestEmptyInput(t *testing.T) {
	s := New()
	if got, want := s.Value(), uint32(1); got != want {
		t.Fatalf("got %#x, want %#x for empty input", got, want)
	}
}
