// Copyright 2009 The Go Authors. All rights reserved.
// Copyright (c) 2015 Klaus Post
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// deflateStored implements level 0: every byte is absorbed into the
// pending stored region and emitted verbatim, with no match search or
// entropy coding at all.
func (e *Engine) deflateStored(flush, finish bool) bool {
	consumed := e.lookahead > 0
	e.strstart += e.lookahead
	e.lookahead = 0

	storedLength := e.strstart - e.blockStart

	for {
		mustFlush := storedLength >= maxStoreBlockSize ||
			(e.blockStart < WindowSize && storedLength >= MaxDist) ||
			flush

		if !mustFlush {
			return consumed
		}

		emit := storedLength
		capped := false
		if emit > maxStoreBlockSize {
			emit = maxStoreBlockSize
			capped = true
		}

		last := finish && !capped && emit == storedLength
		e.coder.FlushStoredBlock(e.window, e.blockStart, emit, last)
		e.blockStart += emit
		storedLength -= emit

		if capped {
			continue
		}
		return !last && emit > 0
	}
}
