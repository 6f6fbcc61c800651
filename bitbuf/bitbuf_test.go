package bitbuf

import (
	"bytes"
	"testing"
)

func TestWriteBitsLSBFirst(t *testing.T) {
	var b bytes.Buffer
	buf := New(&b)
	buf.WriteBits(0x5, 3) // 101 LSB-first -> bit0=1,bit1=0,bit2=1
	buf.WriteBits(0x1, 1)
	buf.Flush()
	if err := buf.Err(); err != nil {
		t.Fatal(err)
	}
	got := b.Bytes()
	if len(got) != 1 {
		t.Fatalf("expected 1 byte, got %d: %x", len(got), got)
	}
	// bits written in order: 1,0,1,1 -> byte = 0b1101 = 0x0d (LSB first packing)
	if got[0] != 0x0d {
		t.Fatalf("got %#x, want %#x", got[0], 0x0d)
	}
}

func TestAlignToByteAndWriteBytes(t *testing.T) {
	var b bytes.Buffer
	buf := New(&b)
	buf.WriteBits(0x1, 3)
	buf.AlignToByte()
	buf.WriteBytes([]byte("hi"))
	if err := buf.Err(); err != nil {
		t.Fatal(err)
	}
	got := b.Bytes()
	if len(got) != 3 {
		t.Fatalf("expected 3 bytes, got %d", len(got))
	}
	if got[0] != 0x01 {
		t.Fatalf("padded first byte = %#x, want 0x01", got[0])
	}
	if string(got[1:]) != "hi" {
		t.Fatalf("got %q", got[1:])
	}
}

func TestWriteBytesRequiresAlignment(t *testing.T) {
	var b bytes.Buffer
	buf := New(&b)
	buf.WriteBits(0x1, 3)
	buf.WriteBytes([]byte("x"))
	if buf.Err() == nil {
		t.Fatal("expected error writing unaligned bytes")
	}
}

func TestIsFlushed(t *testing.T) {
	var b bytes.Buffer
	buf := New(&b)
	if !buf.IsFlushed() {
		t.Fatal("fresh buffer should be flushed")
	}
	buf.WriteBits(1, 1)
	if buf.IsFlushed() {
		t.Fatal("buffer with pending bits should not be flushed")
	}
	buf.Flush()
	if !buf.IsFlushed() {
		t.Fatal("buffer should be flushed after Flush")
	}
}

func TestResetSwitchesDestination(t *testing.T) {
	var b1, b2 bytes.Buffer
	buf := New(&b1)
	buf.WriteBits(0xff, 8)
	buf.Flush()
	if b1.Len() == 0 {
		t.Fatal("expected output in first destination")
	}
	buf.Reset(&b2)
	buf.WriteBits(0x01, 1)
	buf.Flush()
	if b2.Len() == 0 {
		t.Fatal("expected output in second destination after Reset")
	}
}

func TestManyBitsDrainCorrectly(t *testing.T) {
	var b bytes.Buffer
	buf := New(&b)
	for i := 0; i < 1000; i++ {
		buf.WriteBits(uint32(i&1), 1)
	}
	buf.Flush()
	if err := buf.Err(); err != nil {
		t.Fatal(err)
	}
	if got, want := b.Len(), (1000+7)/8; got != want {
		t.Fatalf("got %d bytes, want %d", got, want)
	}
}
