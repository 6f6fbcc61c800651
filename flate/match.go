// Copyright 2009 The Go Authors. All rights reserved.
// Copyright (c) 2015 Klaus Post
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// findLongestMatch walks the hash chain starting at curMatch looking for
// the longest run of bytes equal to window[strstart:], bounded by maxChain
// candidates and by how far back MaxDist allows reaching. It sets
// matchStart and matchLen to describe the best candidate found and reports
// whether that candidate is long enough to count as a real match.
//
// Precondition: strstart+MaxMatchLength <= len(window).
func (e *Engine) findLongestMatch(curMatch int) bool {
	nice := e.params.niceLength
	if e.lookahead < nice {
		nice = e.lookahead
	}

	limit := e.strstart - MaxDist
	if limit < 0 {
		limit = 0
	}

	chainLength := e.params.maxChain
	bestLen := MinMatchLength - 1
	if e.matchLen >= MinMatchLength {
		bestLen = e.matchLen
	}
	if bestLen >= e.params.goodLength {
		chainLength >>= 2
	}

	win := e.window
	scan := e.strstart
	matchStart := e.matchStart
	found := false

	match := curMatch
	for {
		if match <= limit {
			break
		}
		// Fast reject: compare the byte just past the current best length
		// (and the one before it) before committing to a full extension.
		if bestLen > 0 &&
			(win[match+bestLen] != win[scan+bestLen] ||
				win[match+bestLen-1] != win[scan+bestLen-1] ||
				win[match] != win[scan] ||
				win[match+1] != win[scan+1]) {
			chainLength--
			if chainLength == 0 {
				break
			}
			match = int(e.prev[match&windowMask])
			continue
		}

		length := matchLength(win[match:], win[scan:], MaxMatchLength)
		if length > bestLen {
			matchStart = match
			bestLen = length
			found = true
			if length >= nice {
				break
			}
		}

		chainLength--
		if chainLength == 0 {
			break
		}
		match = int(e.prev[match&windowMask])
	}

	if bestLen > e.lookahead {
		bestLen = e.lookahead
	}
	e.matchLen = bestLen
	e.matchStart = matchStart
	return found && e.matchLen >= MinMatchLength
}

// matchLength returns how many leading bytes of a and b agree, up to max.
// Both slices must be at least max bytes long (findLongestMatch's
// precondition strstart+MaxMatchLength <= len(window) provides this).
func matchLength(a, b []byte, max int) int {
	n := 0
	for n+8 <= max {
		av := le64(a[n:])
		bv := le64(b[n:])
		if av != bv {
			return n + trailingEqualBytes(av, bv)
		}
		n += 8
	}
	for n < max {
		if a[n] != b[n] {
			return n
		}
		n++
	}
	return max
}

func le64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func trailingEqualBytes(a, b uint64) int {
	diff := a ^ b
	n := 0
	for diff&0xff == 0 {
		diff >>= 8
		n++
	}
	return n
}
