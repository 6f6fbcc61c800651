// Copyright 2009 The Go Authors. All rights reserved.
// Copyright (c) 2015 Klaus Post
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// deflateSlow implements levels 4-9: lazy matching defers emission by one
// position so a longer match starting just after the current one can
// preempt it. At most one literal is ever "pending" at strstart-1 waiting
// on that decision (prevAvailable).
func (e *Engine) deflateSlow(flush, finish bool) bool {
	progress := false

	for e.lookahead >= MinLookahead || flush {
		if e.lookahead == 0 {
			if e.prevAvailable {
				e.coder.TallyLit(e.window[e.strstart-1])
				progress = true
				e.prevAvailable = false
			}
			last := finish
			e.coder.FlushBlock(e.window, e.blockStart, e.strstart-e.blockStart, last)
			e.blockStart = e.strstart
			return false
		}

		if e.strstart > 2*WindowSize-MinLookahead {
			e.slideWindow()
		}

		prevMatch := e.matchStart
		prevLen := e.matchLen
		e.matchLen = MinMatchLength - 1
		e.matchStart = 0

		var hashHead int
		if e.lookahead >= MinMatchLength {
			hashHead = e.insertString()
		}

		if e.strategy != HuffmanOnly && hashHead != 0 &&
			e.strstart-hashHead <= MaxDist && e.findLongestMatch(hashHead) {

			if e.matchLen <= 5 &&
				(e.strategy == Filtered ||
					(e.matchLen == MinMatchLength && e.strstart-e.matchStart > tooFar)) {
				e.matchLen = MinMatchLength - 1
			}
		}

		if prevLen >= MinMatchLength && e.matchLen <= prevLen {
			// Commit the match found one position ago: it started at
			// strstart-1 (this position's predecessor) and runs prevLen
			// bytes, so the cursor must land at strstart-1+prevLen.
			full := e.coder.TallyDist(e.strstart-1-prevMatch, prevLen)
			progress = true

			newIndex := e.strstart + prevLen - 1
			for e.strstart < newIndex-1 {
				e.strstart++
				e.lookahead--
				if e.lookahead >= MinMatchLength {
					e.insertString()
				}
			}
			// The landing position is inserted by the next iteration.
			e.strstart++
			e.lookahead--

			e.prevAvailable = false
			e.matchLen = MinMatchLength - 1

			if full {
				last := finish && e.lookahead == 0 && !e.prevAvailable
				e.coder.FlushBlock(e.window, e.blockStart, e.strstart-e.blockStart, last)
				e.blockStart = e.strstart
				return !last
			}
			continue
		}

		if e.prevAvailable {
			full := e.coder.TallyLit(e.window[e.strstart-1])
			progress = true
			e.prevAvailable = true
			e.strstart++
			e.lookahead--
			if full {
				// window[strstart-1] is the byte that just became pending
				// again; it hasn't been tallied, so it stays out of this
				// block and carries over as block_start for the next one.
				blockLen := e.strstart - e.blockStart - 1
				e.coder.FlushBlock(e.window, e.blockStart, blockLen, false)
				e.blockStart = e.strstart - 1
			}
			continue
		}
		e.prevAvailable = true
		e.strstart++
		e.lookahead--
	}
	return progress
}
