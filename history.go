package mevcli

// History keeps previously-submitted lines packed back to back in a fixed
// byte pool, newest first at offset 0.  Each entry is zero-terminated and
// lens records its length including the terminator; a 0 in lens ends the
// list.  When the pool or the slot table fills up, the oldest entries fall
// off.  Browsing (up/down arrows) swaps history entries into the line
// buffer, with a one-slot backup so the in-progress line survives a round
// trip.

// historyEnd returns the byte offset just past slot idx.
func historyEnd(c *CLI, idx int) int {
	off := 0
	for i := 0; i <= idx; i++ {
		off += c.lens[i]
	}
	return off
}

// historyEntry returns the stored bytes of slot idx, without the
// terminator.
func historyEntry(c *CLI, idx int) []byte {
	end := historyEnd(c, idx)
	return c.history[end-c.lens[idx] : end-1]
}

// historyAppend records a submitted line as the newest entry, evicting from
// the old end until both the pool and the slot table fit.
func historyAppend(c *CLI, line []byte) {
	if len(line) == 0 {
		return
	}
	n := len(line) + 1

	// Find the oldest slot that still fits once the new entry is in.
	keep := -1
	sum := 0
	for i := 0; i <= c.topValid; i++ {
		sum += c.lens[i]
		if n+sum > HistoryBytes {
			break
		}
		keep = i
	}
	// Slots shift up by one; the last table entry has nowhere to go.
	if keep > historySlots-2 {
		keep = historySlots - 2
	}

	if keep >= 0 {
		// Make room at the front.  copy() is overlap-safe.
		kept := historyEnd(c, keep)
		copy(c.history[n:n+kept], c.history[:kept])
		for i := keep; i >= 0; i-- {
			c.lens[i+1] = c.lens[i]
		}
	}

	copy(c.history[:], line)
	c.history[n-1] = 0
	c.lens[0] = n
	c.topValid = keep + 1
	if c.topValid+1 < historySlots {
		c.lens[c.topValid+1] = 0
	}
	c.browseIdx = -1
}

// loadHistoryEntry replaces the line buffer with slot idx and repaints the
// whole line, cursor at the end.
func loadHistoryEntry(c *CLI, idx int) {
	entry := historyEntry(c, idx)
	copy(c.line[:], entry)
	c.linepos = len(entry)
	c.cursorpos = len(entry)
	redrawLine(c)
}

func redrawLine(c *CLI) {
	c.gotoCol(c.promptLen)
	c.eraseRight()
	c.emitRange(0, c.linepos)
	c.gotoCol(c.promptLen + c.cursorpos)
}

// historyPrev handles up-arrow: step to the next-older entry, snapshotting
// the in-progress line on the way into browse mode.  BEL at the oldest
// entry (or with nothing stored at all).
func historyPrev(c *CLI) {
	if c.noHistory {
		return
	}
	if c.browseIdx == c.topValid {
		c.putch(keyBell)
		return
	}
	if c.browseIdx == -1 {
		copy(c.backupLine[:], c.line[:c.linepos])
		c.backupLen = c.linepos
	}
	c.browseIdx++
	loadHistoryEntry(c, c.browseIdx)
}

// historyNext handles down-arrow: step back toward the newest entry, then
// restore the backed-up in-progress line.  BEL when not browsing.
func historyNext(c *CLI) {
	if c.noHistory {
		return
	}
	switch {
	case c.browseIdx == -1:
		c.putch(keyBell)

	case c.browseIdx == 0:
		copy(c.line[:], c.backupLine[:c.backupLen])
		c.linepos = c.backupLen
		c.cursorpos = c.backupLen
		c.browseIdx = -1
		redrawLine(c)

	default:
		c.browseIdx--
		loadHistoryEntry(c, c.browseIdx)
	}
}
