// Copyright 2009 The Go Authors. All rights reserved.
// Copyright (c) 2015 Klaus Post
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flate implements the block-producing core of a DEFLATE
// compression engine: the sliding-window LZ77 match search and the three
// driver state machines (stored, fast, lazy) that turn raw bytes into a
// stream of literal and length/distance tokens. Entropy coding, checksums
// and container framing are supplied by collaborators passed in at
// construction; this package never emits a byte itself.
package flate

// Engine is the sole owner of the sliding window, hash chains and match
// state. It is not safe for concurrent use; a single caller drives it
// start to finish.
type Engine struct {
	coder    HuffmanCoder
	pending  PendingBuffer
	checksum Checksum

	// window holds 2*WindowSize bytes; valid unprocessed/lookahead bytes
	// live in window[blockStart:strstart+lookahead].
	window []byte

	// head[h] is the most recent window index with hash h, biased so that
	// 0 means "no predecessor" (see insertString).
	head []int32
	// prev[i&windowMask] is the previous window index with the same hash
	// as index i.
	prev []int32

	insHash int

	strstart   int
	lookahead  int
	blockStart int

	matchStart int
	matchLen   int

	prevAvailable bool

	strategy Strategy
	params   levelParams
	level    int

	inputBuf []byte
	inputOff int
	inputEnd int

	totalIn uint64
}

// NewEngine constructs an Engine around the given collaborators. The
// collaborators' lifetime must exceed the Engine's; the Engine retains no
// other resources that need explicit release.
func NewEngine(coder HuffmanCoder, pending PendingBuffer, checksum Checksum) *Engine {
	e := &Engine{
		coder:    coder,
		pending:  pending,
		checksum: checksum,
		window:   make([]byte, 2*WindowSize),
		head:     make([]int32, hashSize),
		prev:     make([]int32, WindowSize),
	}
	e.SetLevel(DefaultCompression)
	e.resetState()
	return e
}

// resetState restores the window/hash/position bookkeeping to its initial
// values without touching the level/strategy configuration.
func (e *Engine) resetState() {
	for i := range e.head {
		e.head[i] = 0
	}
	for i := range e.prev {
		e.prev[i] = 0
	}
	// strstart begins at 1, never 0, so that a stored head/prev value of 0
	// unambiguously means "no predecessor" (see insertString).
	e.blockStart = 1
	e.strstart = 1
	e.lookahead = 0
	e.matchLen = MinMatchLength - 1
	e.matchStart = 0
	e.prevAvailable = false
	e.insHash = 0
	e.totalIn = 0
	e.inputOff = 0
	e.inputEnd = 0
}

// Reset restores the Engine's window, hash and position state (and its
// Huffman coder and checksum) to their initial values, reusing all
// allocated tables. The level and strategy are kept.
func (e *Engine) Reset() {
	e.coder.Reset()
	e.checksum.Reset()
	e.resetState()
}

// ResetChecksum resets only the checksum, leaving window/match state
// untouched.
func (e *Engine) ResetChecksum() {
	e.checksum.Reset()
}

// Adler returns the checksum's current value over every byte admitted via
// fillWindow so far.
func (e *Engine) Adler() uint32 {
	return e.checksum.Value()
}

// SetInput attaches an input region the Engine will consume on subsequent
// Deflate calls. It fails with InvalidState if a prior input region is not
// yet fully consumed, and with BadArgument for a malformed range.
func (e *Engine) SetInput(buf []byte, offset, count int) error {
	if e.inputOff < e.inputEnd {
		return newError(InvalidState, "SetInput called before prior input was consumed")
	}
	if offset < 0 || count < 0 {
		return newError(BadArgument, "negative offset or count")
	}
	end := offset + count
	if end < offset || end > len(buf) {
		return newError(BadArgument, "offset+count out of bounds")
	}
	e.inputBuf = buf
	e.inputOff = offset
	e.inputEnd = end
	return nil
}

// NeedsInput reports whether the previously attached input region has been
// fully consumed.
func (e *Engine) NeedsInput() bool {
	return e.inputOff == e.inputEnd
}

// SetStrategy changes the match-acceptance policy used by subsequent search
// decisions.
func (e *Engine) SetStrategy(s Strategy) {
	e.strategy = s
}

// SetLevel validates and installs a new level 0-9, performing a mode
// transition (flushing whatever the previous driver had pending) if the
// selected driver function changes. This is a deliberate side effect: a
// mid-stream level change is a legitimate operation that draws a block
// boundary at the point of change.
func (e *Engine) SetLevel(level int) error {
	if level < 0 || level > 9 {
		return newError(BadArgument, "level out of range [0,9]")
	}
	newParams := levelParamsFor(level)
	oldFn := e.params.fn
	newFn := newParams.fn

	if oldFn != newFn {
		switch oldFn {
		case storedFunction:
			if e.strstart > e.blockStart {
				e.coder.FlushStoredBlock(e.window, e.blockStart, e.strstart-e.blockStart, false)
				e.blockStart = e.strstart
				e.updateHash()
			}
		case fastFunction:
			if e.strstart > e.blockStart {
				e.coder.FlushBlock(e.window, e.blockStart, e.strstart-e.blockStart, false)
				e.blockStart = e.strstart
			}
		case slowFunction:
			if e.prevAvailable {
				e.coder.TallyLit(e.window[e.strstart-1])
				e.prevAvailable = false
			}
			if e.strstart > e.blockStart {
				e.coder.FlushBlock(e.window, e.blockStart, e.strstart-e.blockStart, false)
				e.blockStart = e.strstart
			}
			e.matchLen = MinMatchLength - 1
		}
	}

	e.params = newParams
	e.level = level
	return nil
}

// Deflate drives the engine: it repeatedly fills the window from the
// attached input and dispatches to the selected driver until either the
// driver makes no further progress or the pending buffer still holds
// undrained output. It returns the progress value (tokens emitted or
// window advanced) of the last driver call, so true means it stopped
// because the pending buffer held undrained output, not because the driver
// ran out of work.
//
// When finish is true, the final emitted block carries the last-block bit
// once the lookahead fully drains.
func (e *Engine) Deflate(flush, finish bool) bool {
	var progress bool
	for {
		e.fillWindow()
		canFlush := flush && e.NeedsInput()

		var madeProgress bool
		switch e.params.fn {
		case storedFunction:
			madeProgress = e.deflateStored(canFlush, finish)
		case fastFunction:
			madeProgress = e.deflateFast(canFlush, finish)
		case slowFunction:
			madeProgress = e.deflateSlow(canFlush, finish)
		default:
			panic(newError(InternalInvariant, "unknown compression function"))
		}
		progress = madeProgress

		if !(e.pending.IsFlushed() && madeProgress) {
			break
		}
	}
	return progress
}
