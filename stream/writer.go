// Package stream composes the engine, Huffman coder, bit buffer and
// checksum collaborators into an io.Writer, the way a compression
// package's own writer.go typically assembles a matcher and an encoder
// around a shared destination and level.
package stream

import (
	"io"

	"github.com/nox-compress/deflate/adler32"
	"github.com/nox-compress/deflate/bitbuf"
	"github.com/nox-compress/deflate/flate"
	"github.com/nox-compress/deflate/huffman"
)

// blockSize bounds how much unconsumed input Write hands to the engine in
// a single Deflate call; it has no relationship to the 65535-byte stored
// block limit, which the engine's stored driver enforces on its own.
const blockSize = 1 << 16

// Writer is a raw-DEFLATE io.Writer: no zlib or gzip framing, just the
// RFC 1951 block stream the engine and its collaborators produce together.
// The zero value is not usable; construct with NewWriter.
type Writer struct {
	buf    *bitbuf.Buffer
	coder  *huffman.Coder
	sum    *adler32.Sum
	engine *flate.Engine

	closed bool
}

// NewWriter returns a Writer that compresses to dst at the given level
// (clamped to [0,9]) using the Default strategy.
func NewWriter(dst io.Writer, level int) *Writer {
	w := &Writer{}
	w.buf = bitbuf.New(dst)
	w.sum = adler32.New()
	w.coder = huffman.NewCoder(w.buf)
	w.engine = flate.NewEngine(w.coder, w.buf, w.sum)
	if level < flate.NoCompression {
		level = flate.NoCompression
	}
	if level > flate.BestCompression {
		level = flate.BestCompression
	}
	w.engine.SetLevel(level)
	return w
}

// SetStrategy changes the match-acceptance strategy for subsequent input.
func (w *Writer) SetStrategy(s flate.Strategy) {
	w.engine.SetStrategy(s)
}

// SetLevel changes the compression level for subsequent input, emitting a
// block boundary if the underlying driver changes (see flate.Engine.SetLevel).
func (w *Writer) SetLevel(level int) error {
	return w.engine.SetLevel(level)
}

// Write compresses p, buffering any bytes that don't yet form a complete
// block. It never returns a short write without an error.
func (w *Writer) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		chunk := p
		if len(chunk) > blockSize {
			chunk = chunk[:blockSize]
		}
		if err := w.engine.SetInput(chunk, 0, len(chunk)); err != nil {
			return n - len(p), err
		}
		for !w.engine.NeedsInput() {
			w.engine.Deflate(false, false)
			if err := w.buf.Err(); err != nil {
				return n - len(p), err
			}
		}
		p = p[len(chunk):]
	}
	return n, w.buf.Err()
}

// Flush emits all pending tokens as a non-final block, follows it with an
// empty stored block that brings the stream to a byte boundary, and drains
// the bit buffer, so a reader positioned at this point in dst can decode
// everything written so far.
func (w *Writer) Flush() error {
	if err := w.engine.SetInput(nil, 0, 0); err != nil {
		return err
	}
	for w.engine.Deflate(true, false) {
	}
	w.coder.FlushStoredBlock(nil, 0, 0, false)
	w.buf.Flush()
	return w.buf.Err()
}

// Close finalizes the stream: every remaining byte is flushed and the last
// block carries DEFLATE's final-block bit. Close does not close dst.
func (w *Writer) Close() error {
	if w.closed {
		return w.buf.Err()
	}
	w.closed = true
	if err := w.engine.SetInput(nil, 0, 0); err != nil {
		return err
	}
	for w.engine.Deflate(true, true) {
	}
	w.buf.Flush()
	return w.buf.Err()
}

// Adler returns the Adler-32 checksum of all bytes written so far.
func (w *Writer) Adler() uint32 {
	return w.engine.Adler()
}

// Reset discards the Writer's state and reconfigures it to write to dst.
func (w *Writer) Reset(dst io.Writer) {
	w.closed = false
	w.buf.Reset(dst)
	w.engine.Reset()
}
