// Copyright 2009 The Go Authors. All rights reserved.
// Copyright (c) 2015 Klaus Post
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// deflateFast implements levels 1-3: a plain greedy match search with no
// lazy one-position lookahead. Every accepted match is emitted immediately.
func (e *Engine) deflateFast(flush, finish bool) bool {
	progress := false

	for e.lookahead >= MinLookahead || flush {
		if e.lookahead == 0 {
			e.coder.FlushBlock(e.window, e.blockStart, e.strstart-e.blockStart, finish)
			e.blockStart = e.strstart
			return false
		}

		if e.strstart > 2*WindowSize-MinLookahead {
			e.slideWindow()
		}

		var hashHead int
		haveHash := e.lookahead >= MinMatchLength
		if haveHash {
			hashHead = e.insertString()
		}

		if haveHash && hashHead != 0 && e.strategy != HuffmanOnly &&
			e.strstart-hashHead <= MaxDist && e.findLongestMatch(hashHead) {

			full := e.coder.TallyDist(e.strstart-e.matchStart, e.matchLen)
			progress = true
			matchLen := e.matchLen
			e.lookahead -= matchLen

			if matchLen <= e.params.maxLazy && e.lookahead >= MinMatchLength {
				for i := 1; i < matchLen; i++ {
					e.strstart++
					e.insertString()
				}
				e.strstart++
			} else {
				e.strstart += matchLen
				if e.lookahead >= MinMatchLength-1 {
					e.updateHash()
				}
			}
			e.matchLen = MinMatchLength - 1

			if full {
				last := finish && e.lookahead == 0
				e.coder.FlushBlock(e.window, e.blockStart, e.strstart-e.blockStart, last)
				e.blockStart = e.strstart
				return !last
			}
			continue
		}

		full := e.coder.TallyLit(e.window[e.strstart])
		progress = true
		e.strstart++
		e.lookahead--

		if full {
			last := finish && e.lookahead == 0
			e.coder.FlushBlock(e.window, e.blockStart, e.strstart-e.blockStart, last)
			e.blockStart = e.strstart
			return !last
		}
	}
	return progress
}
