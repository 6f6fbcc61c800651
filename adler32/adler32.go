// Package adler32 wraps the standard library's rolling Adler-32 checksum
// behind the flate.Checksum collaborator interface. There is no ecosystem
// replacement for hash/adler32 in the retrieved dependency stack: brotli,
// snappy, lz4 and klauspost/compress all either omit Adler-32 entirely or
// bury it as an unexported implementation detail of their own zlib-framing
// code, so the engine's window checksum wraps hash/adler32 directly, the
// same way gzip outer-format checksums lean on hash/crc32.
package adler32

import (
	"hash"
	"hash/adler32"
)

// Sum wraps hash/adler32 so it can be handed to flate.NewEngine as the
// window checksum collaborator.
type Sum struct {
	h hash.Hash32
}

// New returns a Sum ready to accumulate bytes admitted to the window.
func New() *Sum {
	return &Sum{h: adler32.New()}
}

// Update folds p into the running checksum.
func (s *Sum) Update(p []byte) {
	s.h.Write(p)
}

// Reset restarts the checksum from its initial value.
func (s *Sum) Reset() {
	s.h.Reset()
}

// Value returns the Adler-32 checksum of all bytes seen since construction
// or the last Reset.
func (s *Sum) Value() uint32 {
	return s.h.Sum32()
}
