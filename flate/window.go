// Copyright 2009 The Go Authors. All rights reserved.
// Copyright (c) 2015 Klaus Post
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// fillWindow slides the window if it has grown too close to its end, then
// copies as much attached input as fits into the lookahead region,
// updating the checksum over every byte admitted. It primes insHash once
// enough lookahead exists so the first insertString call has a valid
// rolling hash.
func (e *Engine) fillWindow() {
	if e.strstart >= WindowSize+MaxDist {
		e.slideWindow()
	}

	for e.lookahead < MinLookahead && e.inputOff < e.inputEnd {
		n := e.inputEnd - e.inputOff
		if room := 2*WindowSize - e.lookahead - e.strstart; room < n {
			n = room
		}
		if n <= 0 {
			break
		}
		dst := e.strstart + e.lookahead
		copy(e.window[dst:dst+n], e.inputBuf[e.inputOff:e.inputOff+n])
		e.checksum.Update(e.window[dst : dst+n])
		e.inputOff += n
		e.totalIn += uint64(n)
		e.lookahead += n
	}

	if e.lookahead >= MinMatchLength {
		e.updateHash()
	}
}

// slideWindow copies the upper half of the window down by WindowSize bytes
// and rewrites every hash-chain entry to match, discarding entries that
// fall out of the window entirely (encoded as 0, the same sentinel used
// for "no predecessor").
func (e *Engine) slideWindow() {
	copy(e.window[0:WindowSize], e.window[WindowSize:2*WindowSize])
	e.matchStart -= WindowSize
	e.strstart -= WindowSize
	e.blockStart -= WindowSize

	for i, m := range e.head {
		if m >= WindowSize {
			e.head[i] = m - WindowSize
		} else {
			e.head[i] = 0
		}
	}
	for i, m := range e.prev {
		if m >= WindowSize {
			e.prev[i] = m - WindowSize
		} else {
			e.prev[i] = 0
		}
	}
}

// updateHash recomputes insHash from the two bytes at strstart, priming
// the rolling hash before the first insertString call of a run.
func (e *Engine) updateHash() {
	e.insHash = (int(e.window[e.strstart]) << hashShift) ^ int(e.window[e.strstart+1])
}

// insertString advances the rolling hash by one byte, links strstart into
// its hash chain, and returns the previous chain head (0 if there was
// none). The caller must ensure strstart+MinMatchLength <= len(window).
func (e *Engine) insertString() int {
	hash := ((e.insHash << hashShift) ^ int(e.window[e.strstart+MinMatchLength-1])) & hashMask
	head := e.head[hash]
	e.prev[e.strstart&windowMask] = head
	e.head[hash] = int32(e.strstart)
	e.insHash = hash
	return int(head)
}
