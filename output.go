package mevcli

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

// Every byte the interpreter produces funnels through here, one callback
// invocation per byte.  Nothing is buffered; the host sink sees echoes and
// redraws exactly as they are decided.

func (c *CLI) putch(b byte) {
	c.out(b)
}

// putstr emits s and returns the number of bytes written.
func (c *CLI) putstr(s string) int {
	for i := 0; i < len(s); i++ {
		c.out(s[i])
	}
	return len(s)
}

func (c *CLI) newline() {
	c.putstr("\r\n")
}

// prompt emits the prompt and records its display width.  The prompt may
// change between emissions (SetPrompt), so the width is measured fresh each
// time.  Width is counted in terminal cells rather than bytes: the line
// itself is plain ASCII but the prompt is allowed to be UTF-8.
func (c *CLI) prompt() {
	c.putstr(c.promptStr)
	c.promptLen = runewidth.StringWidth(c.promptStr)
}

// eraseLine erases the whole current row.
func (c *CLI) eraseLine() {
	c.putstr("\x1b[2K")
}

// eraseRight erases from the cursor to the end of the row.
func (c *CLI) eraseRight() {
	c.putstr("\x1b[0K")
}

// gotoCol moves the cursor to absolute column x (0-based; the CSI G
// parameter is 1-based).  Column 0 is the common case and gets a bare CR.
// Columns past 999 are silently dropped rather than emitting a sequence
// this editor should never need.
func (c *CLI) gotoCol(x int) {
	if x > 999 {
		return
	}
	if x == 0 {
		c.putch('\r')
		return
	}
	c.putstr("\x1b[")
	c.putstr(strconv.Itoa(x + 1))
	c.putch('G')
}

// emitRange echoes line[from:to] to the terminal.
func (c *CLI) emitRange(from, to int) {
	for i := from; i < to; i++ {
		c.putch(c.line[i])
	}
}
