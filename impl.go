package mevcli

// InputChar feeds one input byte to the interpreter.  Any echo, redraw and
// (on CR) command dispatch happen synchronously before it returns.
//
// Editing follows the usual Emacs/bash basics: DEL rubs out, arrows and
// ^A/^E move, ^W cuts a word back, ^U cuts to the start, ^K cuts to the
// end.  ESC-b/ESC-f move by word for terminals that send them.  Other
// control bytes are ignored; TAB is reserved.
func (c *CLI) InputChar(in byte) {
	// An escape in flight bypasses regular handling entirely.
	if c.processEscape(in) {
		return
	}

	switch in {
	case keyTab:
		// Reserved for completion.

	case keyEnter:
		c.processCommand()

	case keyDelete:
		eraseCharacterBackwards(c)

	case keyCtrlA:
		goHome(c)

	case keyCtrlE:
		goEnd(c)

	case keyCtrlU:
		killLine(c)

	case keyCtrlW:
		eraseWordBackwards(c)

	case keyCtrlK:
		eraseToEnd(c)

	default:
		if in < 0x20 || in > 0x7e {
			// Remaining control bytes and anything non-ASCII.
			return
		}
		insertCharacter(c, in)
	}
}

// Input feeds a chunk of input bytes, one at a time.  Convenient for hosts
// that drain a UART FIFO or socket read into a slice.
func (c *CLI) Input(p []byte) {
	for _, b := range p {
		c.InputChar(b)
	}
}

// Write makes CLI an io.Writer over its input, so a host can io.Copy a
// pty, socket or serial port straight into the interpreter.  It never
// fails.
func (c *CLI) Write(p []byte) (int, error) {
	c.Input(p)
	return len(p), nil
}

// processEscape runs the escape/CSI recognizer.  It reports whether the
// byte was consumed; in the idle state a non-ESC byte falls through to
// regular handling.  Anything unrecognized inside a sequence silently
// resets the machine.
func (c *CLI) processEscape(in byte) bool {
	switch c.state {
	case inputStateFree:
		if in == keyEscape {
			c.state = inputStateGotEscape
			return true
		}
		return false

	case inputStateGotEscape:
		c.state = inputStateFree
		switch in {
		case '[':
			c.state = inputStateGotCSI
		case 'b':
			// Some terminals send ctrl/alt-arrows as ESC-b and
			// ESC-f; treat them as word motion.
			cursorLeftWord(c)
		case 'f':
			cursorRightWord(c)
		}
		return true

	default: // inputStateGotCSI
		switch in {
		case 'A':
			historyPrev(c)
		case 'B':
			historyNext(c)
		case 'C':
			cursorRightCharacter(c)
		case 'D':
			cursorLeftCharacter(c)
		}
		c.state = inputStateFree
		return true
	}
}

// processCommand runs on CR: record the line in history, tokenize it in
// place, match the first word against the command table and dispatch.
// Whatever happens, the line resets and a fresh prompt is emitted.
func (c *CLI) processCommand() {
	c.line[c.linepos] = 0
	c.newline()

	// Skip whitespace to find the command.
	cmdStart := -1
	for i := 0; i < c.linepos; i++ {
		if !isLineSpace(c.line[i]) {
			cmdStart = i
			break
		}
	}
	if cmdStart == -1 {
		// Nothing on the line.
		c.finishCommand()
		return
	}

	// Capture the line for history before the whitespace below is
	// overwritten with terminators.
	if !c.noHistory {
		end := c.linepos
		for end > cmdStart && isLineSpace(c.line[end-1]) {
			end--
		}
		historyAppend(c, c.line[cmdStart:end])
	}

	// Terminate each word in place, noting the first gap after the
	// command.
	afterCmd := -1
	for i := cmdStart; i < c.linepos; i++ {
		if isLineSpace(c.line[i]) {
			c.line[i] = 0
			if afterCmd == -1 {
				afterCmd = i
			}
		}
	}

	wordEnd := afterCmd
	if wordEnd == -1 {
		wordEnd = c.linepos
	}
	name := c.line[cmdStart:wordEnd]

	cmd := c.lookupCommand(name)
	if cmd == nil {
		c.help("Unknown command")
		c.finishCommand()
		return
	}

	argc := 0
	if afterCmd != -1 {
		for i := afterCmd; i < c.linepos && argc < MaxArgs; i++ {
			if c.line[i] == 0 {
				continue
			}
			j := i
			for j < c.linepos && c.line[j] != 0 {
				j++
			}
			c.argv[argc] = string(c.line[i:j])
			argc++
			i = j
		}
	}

	if cmd.NArgs != -1 && cmd.NArgs != argc {
		c.help("Command args are incorrect")
		c.finishCommand()
		return
	}

	cmd.Run(cmd.Opaque, c.argv[:argc])
	c.finishCommand()
}

// finishCommand resets the edit state after a submission and reprompts.
func (c *CLI) finishCommand() {
	c.cursorpos = 0
	c.linepos = 0
	c.browseIdx = -1
	c.prompt()
}

// lookupCommand finds the first table entry whose name matches, comparing
// case-insensitively.  The line is 7-bit by construction, so a plain ASCII
// fold is all that's needed.
func (c *CLI) lookupCommand(name []byte) *Command {
	for i := range c.commands {
		if asciiFoldEqual(name, c.commands[i].Name) {
			return &c.commands[i]
		}
	}
	return nil
}

func lowerAlpha(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		b |= 0x20
	}
	return b
}

func asciiFoldEqual(a []byte, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerAlpha(a[i]) != lowerAlpha(b[i]) {
			return false
		}
	}
	return true
}

// help prints why dispatch failed, then the command table.  Help strings
// are printed right after their command name and are expected to bring
// their own alignment and argument hints.
func (c *CLI) help(why string) {
	c.newline()
	c.putstr(why)
	c.putstr(".  Commands are:\r\n\r\n")
	for i := range c.commands {
		c.putch('\t')
		c.putstr(c.commands[i].Name)
		c.putstr(c.commands[i].Help)
		c.newline()
	}
	c.newline()
	if c.extraHelp != "" {
		c.putstr(c.extraHelp)
	}
}
