package mevcli

// Editing and cursor operations.  Each one mutates the line buffer first and
// then emits the smallest display update that keeps the terminal honest:
// edits at the end of the line get short byte sequences (plain echo, the
// "\b \b" rubout), mid-line edits fall back to a generic repaint of the
// suffix.  A no-op emits nothing at all.

func isLineSpace(b byte) bool {
	return b <= ' '
}

func cursorRightCharacter(c *CLI) {
	if c.cursorpos < c.linepos {
		c.cursorpos++
		c.gotoCol(c.cursorpos + c.promptLen)
	}
}

func cursorLeftCharacter(c *CLI) {
	if c.cursorpos > 0 {
		c.cursorpos--
		c.gotoCol(c.cursorpos + c.promptLen)
	}
}

// searchWordLeft scans left from the cursor for a whitespace boundary and
// returns the index of the first character right of it.  Whitespace
// immediately left of the cursor is skipped first, so repeating the search
// walks word by word.  With no boundary in reach it returns 0.
func searchWordLeft(c *CLI) int {
	sawWord := false
	for i := c.cursorpos; i > 0; i-- {
		if isLineSpace(c.line[i-1]) {
			if sawWord {
				return i
			}
		} else {
			sawWord = true
		}
	}
	return 0
}

// searchWordRight mirrors searchWordLeft: the index of the next whitespace
// right of the cursor after at least one word character, or the end of the
// line.
func searchWordRight(c *CLI) int {
	sawWord := false
	for i := c.cursorpos; i < c.linepos; i++ {
		if isLineSpace(c.line[i]) {
			if sawWord {
				return i
			}
		} else {
			sawWord = true
		}
	}
	return c.linepos
}

func cursorRightWord(c *CLI) {
	c.cursorpos = searchWordRight(c)
	c.gotoCol(c.cursorpos + c.promptLen)
}

func cursorLeftWord(c *CLI) {
	c.cursorpos = searchWordLeft(c)
	c.gotoCol(c.cursorpos + c.promptLen)
}

func goHome(c *CLI) {
	if c.cursorpos > 0 {
		c.cursorpos = 0
		c.gotoCol(c.promptLen)
	}
}

func goEnd(c *CLI) {
	if c.cursorpos < c.linepos {
		c.cursorpos = c.linepos
		c.gotoCol(c.cursorpos + c.promptLen)
	}
}

// cutDownTo deletes the characters between pos and the cursor, which may be
// one character, a word, or everything back to the start of the line.
func cutDownTo(c *CLI, pos int) {
	if pos >= c.cursorpos {
		return
	}
	distance := c.cursorpos - pos

	if c.cursorpos == c.linepos {
		// Nothing right of the cursor, so no bytes need shifting;
		// the tail past linepos is simply never observed again.
		c.cursorpos = pos
		c.linepos = pos
		if distance == 1 {
			// Rubout: backspace, overwrite, backspace.
			c.putstr("\b \b")
			return
		}
	} else {
		copy(c.line[pos:], c.line[c.cursorpos:c.linepos])
		c.linepos -= distance
		c.cursorpos = pos
	}

	c.gotoCol(c.promptLen + c.cursorpos)
	c.eraseRight()
	c.emitRange(c.cursorpos, c.linepos)
	c.gotoCol(c.promptLen + c.cursorpos)
}

// eraseCharacterBackwards handles DEL: take one character off left of the
// cursor, if there is one.
func eraseCharacterBackwards(c *CLI) {
	if c.cursorpos > 0 {
		cutDownTo(c, c.cursorpos-1)
	}
}

// killLine (^U) cuts from the cursor back to the start of the line.
func killLine(c *CLI) {
	cutDownTo(c, 0)
}

// eraseWordBackwards (^W) cuts from the cursor back one word.
func eraseWordBackwards(c *CLI) {
	cutDownTo(c, searchWordLeft(c))
}

// eraseToEnd (^K) drops everything from the cursor rightwards.
func eraseToEnd(c *CLI) {
	if c.cursorpos < c.linepos {
		c.eraseRight()
		c.linepos = c.cursorpos
	}
}

// insertCharacter puts a printable byte at the cursor.  Appending at the
// end of the line echoes the single byte; inserting mid-line opens a gap
// and repaints the suffix.  A full buffer answers with BEL.
func insertCharacter(c *CLI, in byte) {
	if c.linepos >= MaxLineLen {
		c.putch(keyBell)
		return
	}

	if c.cursorpos == c.linepos {
		c.line[c.linepos] = in
		c.linepos++
		c.cursorpos++
		c.putch(in)
		return
	}

	copy(c.line[c.cursorpos+1:c.linepos+1], c.line[c.cursorpos:c.linepos])
	c.line[c.cursorpos] = in
	c.cursorpos++
	c.linepos++

	c.gotoCol(c.promptLen + c.cursorpos - 1)
	c.eraseRight()
	c.emitRange(c.cursorpos-1, c.linepos)
	c.gotoCol(c.promptLen + c.cursorpos)
}
