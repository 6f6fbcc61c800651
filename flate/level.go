// Copyright 2009 The Go Authors. All rights reserved.
// Copyright (c) 2015 Klaus Post
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// Package-level constants governing the sliding window, hash chains and
// match search. These mirror the classic zlib/deflate tunables; the window
// size in particular is baked into the wire format (a DEFLATE
// back-reference reaches at most 32768 bytes) and must not be changed.
const (
	windowBits = 15
	WindowSize = 1 << windowBits // W
	windowMask = WindowSize - 1

	MinMatchLength = 3
	MaxMatchLength = 258

	// MinLookahead is the smallest amount of lookahead fillWindow tries to
	// maintain so a match search can always examine a full MaxMatchLength
	// window starting at strstart.
	MinLookahead = MaxMatchLength + MinMatchLength + 1

	// MaxDist is the farthest a match distance may reach back.
	MaxDist = WindowSize - MinLookahead

	hashBits  = 15
	hashSize  = 1 << hashBits
	hashMask  = hashSize - 1
	hashShift = (hashBits + MinMatchLength - 1) / MinMatchLength

	// tooFar is the distance past which the lazy matcher starts rejecting
	// otherwise-minimal matches: a long-distance 3-byte match rarely pays
	// for its own encoding cost.
	tooFar = 4096

	// maxStoreBlockSize bounds how much of the stored driver's pending
	// region is flushed into a single stored block at once.
	maxStoreBlockSize = 65535
)

// Strategy selects how aggressively the match search accepts candidates it
// finds.
type Strategy int

const (
	// Default runs the ordinary lazy-match acceptance rule.
	Default Strategy = iota
	// Filtered discards short matches more aggressively; suited to data
	// whose value distribution is close to random but has occasional small
	// repeats (e.g. already partially-filtered image data).
	Filtered
	// HuffmanOnly disables match search entirely; every byte is emitted as
	// a literal and only the entropy coder's statistical redundancy is
	// exploited.
	HuffmanOnly
)

func (s Strategy) String() string {
	switch s {
	case Default:
		return "Default"
	case Filtered:
		return "Filtered"
	case HuffmanOnly:
		return "HuffmanOnly"
	default:
		return "Strategy(?)"
	}
}

// function selects which of the three co-equal drivers owns emission
// policy for a given level.
type function int

const (
	storedFunction function = iota
	fastFunction
	slowFunction
)

// levelParams holds one row of the per-level tunable table.
type levelParams struct {
	goodLength int
	maxLazy    int
	niceLength int
	maxChain   int
	fn         function
}

// levels is indexed 0..9, matching the classic deflate level table. Level 0
// is store-only; 1-3 use the fast (greedy) driver; 4-9 use the slow (lazy)
// driver with increasingly aggressive search parameters.
var levels = [10]levelParams{
	{0, 0, 0, 0, storedFunction},
	{4, 4, 8, 4, fastFunction},
	{4, 5, 16, 8, fastFunction},
	{4, 6, 32, 32, fastFunction},
	{4, 4, 16, 16, slowFunction},
	{8, 16, 32, 32, slowFunction},
	{8, 16, 128, 128, slowFunction},
	{32, 32, 128, 256, slowFunction},
	{32, 128, 258, 1024, slowFunction},
	{32, 258, 258, 4096, slowFunction},
}

// BestSpeed, DefaultCompression and BestCompression are the conventional
// level constants recognized by compression tooling built on this engine.
const (
	NoCompression      = 0
	BestSpeed          = 1
	DefaultCompression = 6
	BestCompression    = 9
)

func levelParamsFor(level int) levelParams {
	return levels[level]
}
