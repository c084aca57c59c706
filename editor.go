// Package mevcli is a tiny embeddable command interpreter with
// bash/Emacs-style line editing, meant for hosts that deal in raw bytes:
// UARTs, USB-CDC endpoints, sockets, ptys.  The host pushes input bytes in
// one at a time and supplies a single-byte output callback; mevcli keeps an
// editable line with cursor navigation, a browsable history, and dispatches
// completed lines against an application-supplied command table.
//
// The library never touches the terminal itself.  Raw mode, echo settings
// and teardown are the host's problem; mevcli only ever speaks through the
// OutputFunc it was given.
package mevcli

// Compile-time tunables of the context record.  The whole working set lives
// inside the CLI struct as fixed arrays, so these bound both the line and
// the memory footprint.
const (
	// MaxLineLen is the number of editable characters per line, not
	// counting the prompt.
	MaxLineLen = 78

	// MaxArgs is the hard limit on arguments passed to any command.
	MaxArgs = 8

	// HistoryBytes is the size of the packed history pool.
	HistoryBytes = 512

	// historySlots bounds the number of history entries so a run of very
	// short commands can't outgrow the length table.
	historySlots = 3 * HistoryBytes / MaxLineLen
)

// DefaultPrompt is used when Config.Prompt is empty.
const DefaultPrompt = "> "

// Recognized control bytes.
const (
	keyCtrlA  = 0x01
	keyCtrlE  = 0x05
	keyBell   = 0x07
	keyTab    = 0x09
	keyCtrlK  = 0x0b
	keyEnter  = 0x0d
	keyCtrlU  = 0x15
	keyCtrlW  = 0x17
	keyEscape = 0x1b
	keyDelete = 0x7f
)

// OutputFunc is the host's byte sink.  It is called synchronously, once per
// emitted byte, on the goroutine that fed the triggering input byte.
type OutputFunc func(byte)

// Command describes one entry of the application's command table.
//
// The table is read in place for the life of the CLI; the caller retains
// ownership and must keep it (and every string it references) alive.
type Command struct {
	// Name is matched case-insensitively (ASCII) against the first word
	// of a submitted line.
	Name string

	// Help is printed directly after Name in help output; it should
	// carry its own leading alignment spaces and argument hints.
	Help string

	// Opaque is handed to Run unmodified.
	Opaque any

	// Run handles the command.  args holds only the arguments, not the
	// command name itself, so one argument means len(args) == 1.
	Run func(opaque any, args []string)

	// NArgs is the expected argument count, or -1 for a variable number
	// (in all cases capped at MaxArgs).  A submitted line with a
	// different count gets the help text instead of a Run call.
	NArgs int
}

// Config carries the host wiring for New.
type Config struct {
	// Commands is the borrowed command table.
	Commands []Command

	// Output is the byte sink.  Required; New panics if nil.
	Output OutputFunc

	// Prompt is emitted after init and after every submitted line.
	// Defaults to DefaultPrompt.  Its display width is re-measured on
	// every emission, so SetPrompt from inside a command handler takes
	// effect at the next redraw.
	Prompt string

	// ExtraHelp, when non-empty, is printed after the command list in
	// help output.
	ExtraHelp string

	// NoHistory disables the history store; up/down arrows become
	// no-ops.
	NoHistory bool
}

// inputState tracks escape/CSI recognition across InputChar calls.
type inputState int

const (
	inputStateFree inputState = iota
	inputStateGotEscape
	inputStateGotCSI
)

// CLI is the interpreter context.  A zero CLI is not usable; construct with
// New.  All state lives inline, so a CLI embeds cleanly in a host's own
// statically-allocated structures and allocates nothing while running.
//
// A CLI is not safe for concurrent use; the host serializes access.
// Re-entering InputChar from within a command handler is unsupported.
type CLI struct {
	out       OutputFunc
	commands  []Command
	promptStr string
	extraHelp string
	noHistory bool

	// promptLen is the display width observed at the last prompt
	// emission; cursor columns are computed relative to it.
	promptLen int

	// linepos is the count of valid bytes in line; cursorpos is the
	// insertion point.  0 <= cursorpos <= linepos <= MaxLineLen.
	linepos   int
	cursorpos int

	state inputState

	// line has one spare slot for the terminator written at dispatch.
	line [MaxLineLen + 1]byte

	argv [MaxArgs]string

	// Packed history: zero-terminated strings back to back, newest at
	// offset 0.  lens holds each entry's byte length including its
	// terminator, newest first, with a 0 sentinel ending the list.
	history  [HistoryBytes]byte
	lens     [historySlots]int
	topValid int

	// browseIdx is -1 while editing, else the history slot currently
	// shown.  backupLine/backupLen snapshot the in-progress line while
	// browsing.
	browseIdx  int
	backupLine [MaxLineLen]byte
	backupLen  int
}

// New wires up a CLI and emits the initial prompt through cfg.Output.
func New(cfg Config) *CLI {
	if cfg.Output == nil {
		panic("mevcli: Config.Output must not be nil")
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}

	c := &CLI{
		out:       cfg.Output,
		commands:  cfg.Commands,
		promptStr: cfg.Prompt,
		extraHelp: cfg.ExtraHelp,
		noHistory: cfg.NoHistory,
		topValid:  -1,
		browseIdx: -1,
	}
	c.prompt()
	return c
}

// SetPrompt replaces the prompt string.  The new prompt shows from the next
// emission onward; its width is re-measured every time, so commands may
// switch prompts freely (e.g. to indicate a mode).
func (c *CLI) SetPrompt(prompt string) {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	c.promptStr = prompt
}
