package mevcli

import (
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

// testTable returns an echo (variable args) and add (exactly two args)
// command table recording calls into the returned slice.
func testTable(calls *[]call) []Command {
	record := func(name string) func(any, []string) {
		return func(_ any, args []string) {
			*calls = append(*calls, call{name, append([]string(nil), args...)})
		}
	}
	return []Command{
		{Name: "echo", Help: " [args...]", NArgs: -1, Run: record("echo")},
		{Name: "add", Help: "  <a> <b>", NArgs: 2, Run: record("add")},
	}
}

func TestDispatchSimpleCommand(t *testing.T) {
	var calls []call
	c, out := newTestCLI(t, Config{Commands: testTable(&calls)})
	feed(c, "echo hi world\r")
	if len(calls) != 1 {
		t.Fatalf("got %d calls", len(calls))
	}
	if calls[0].name != "echo" || len(calls[0].args) != 2 ||
		calls[0].args[0] != "hi" || calls[0].args[1] != "world" {
		t.Errorf("call = %+v", calls[0])
	}
	// Echoed input, newline, fresh prompt; the handler itself printed
	// nothing.
	if got := out.String(); got != "echo hi world\r\n> " {
		t.Errorf("emitted %q", got)
	}
	if c.linepos != 0 || c.cursorpos != 0 {
		t.Errorf("line not reset: linepos=%d cursorpos=%d", c.linepos, c.cursorpos)
	}
	checkInvariants(t, c)
}

func TestDispatchSurroundingWhitespace(t *testing.T) {
	var calls []call
	c, _ := newTestCLI(t, Config{Commands: testTable(&calls)})
	feed(c, "   echo  a   b  \r")
	if len(calls) != 1 || len(calls[0].args) != 2 {
		t.Fatalf("calls = %+v", calls)
	}
	if calls[0].args[0] != "a" || calls[0].args[1] != "b" {
		t.Errorf("args = %q", calls[0].args)
	}
}

func TestDispatchCaseInsensitive(t *testing.T) {
	var calls []call
	c, _ := newTestCLI(t, Config{Commands: testTable(&calls)})
	feed(c, "ECHO x\r")
	feed(c, "Add 1 2\r")
	if len(calls) != 2 || calls[0].name != "echo" || calls[1].name != "add" {
		t.Errorf("calls = %+v", calls)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	var calls []call
	c, out := newTestCLI(t, Config{Commands: testTable(&calls)})
	feed(c, "xyz\r")
	if len(calls) != 0 {
		t.Errorf("handler called for unknown command: %+v", calls)
	}
	got := out.String()
	if !strings.Contains(got, "Unknown command.  Commands are:") {
		t.Errorf("missing banner in %q", got)
	}
	if !strings.Contains(got, "\techo [args...]\r\n") || !strings.Contains(got, "\tadd  <a> <b>\r\n") {
		t.Errorf("missing command list in %q", got)
	}
	if !strings.HasSuffix(got, "> ") {
		t.Errorf("no fresh prompt in %q", got)
	}
}

func TestDispatchWrongArgCount(t *testing.T) {
	var calls []call
	c, out := newTestCLI(t, Config{Commands: testTable(&calls)})
	feed(c, "add 1\r")
	if len(calls) != 0 {
		t.Errorf("handler called with wrong arg count: %+v", calls)
	}
	if !strings.Contains(out.String(), "Command args are incorrect.  Commands are:") {
		t.Errorf("missing banner in %q", out.String())
	}
}

func TestDispatchExtraHelp(t *testing.T) {
	c, out := newTestCLI(t, Config{ExtraHelp: "See the manual.\r\n"})
	feed(c, "nope\r")
	if !strings.Contains(out.String(), "See the manual.\r\n") {
		t.Errorf("extra help missing from %q", out.String())
	}
}

func TestDispatchEmptyLine(t *testing.T) {
	var calls []call
	c, out := newTestCLI(t, Config{Commands: testTable(&calls)})
	feed(c, "\r")
	feed(c, "   \r")
	if len(calls) != 0 {
		t.Errorf("handler called on empty line")
	}
	if c.topValid != -1 {
		t.Errorf("empty line reached history: topValid=%d", c.topValid)
	}
	if got := out.String(); got != "\r\n> "+"   \r\n> " {
		t.Errorf("emitted %q", got)
	}
}

func TestDispatchArgLimit(t *testing.T) {
	var calls []call
	c, _ := newTestCLI(t, Config{Commands: testTable(&calls)})
	feed(c, "echo 1 2 3 4 5 6 7 8 9 10\r")
	if len(calls) != 1 {
		t.Fatalf("got %d calls", len(calls))
	}
	if len(calls[0].args) != MaxArgs {
		t.Errorf("argc = %d, want %d", len(calls[0].args), MaxArgs)
	}
	if calls[0].args[MaxArgs-1] != "8" {
		t.Errorf("last arg = %q", calls[0].args[MaxArgs-1])
	}
}

func TestDispatchVariableArgsNone(t *testing.T) {
	var calls []call
	c, _ := newTestCLI(t, Config{Commands: testTable(&calls)})
	feed(c, "echo\r")
	if len(calls) != 1 || len(calls[0].args) != 0 {
		t.Errorf("calls = %+v", calls)
	}
}

func TestMidLineEditThenSubmit(t *testing.T) {
	var calls []call
	c, _ := newTestCLI(t, Config{Commands: testTable(&calls)})
	feed(c, "echo abc")
	feed(c, "\x1b[D\x1b[D\x1b[D")
	feed(c, "q")
	feed(c, "\r")
	if len(calls) != 1 || len(calls[0].args) != 1 || calls[0].args[0] != "qabc" {
		t.Errorf("calls = %+v", calls)
	}
	checkInvariants(t, c)
}

func TestEscapeUnknownTailIgnored(t *testing.T) {
	c, out := newTestCLI(t, Config{})
	feed(c, "\x1bx")
	if out.Len() != 0 || c.linepos != 0 || c.state != inputStateFree {
		t.Errorf("ESC-x: emitted %q, linepos %d, state %d", out.String(), c.linepos, c.state)
	}
	// The escaped byte was consumed, not inserted; the next byte is
	// ordinary input again.
	feed(c, "a")
	if lineString(c) != "a" {
		t.Errorf("line = %q", lineString(c))
	}
}

func TestCSIUnknownFinalIgnored(t *testing.T) {
	c, out := newTestCLI(t, Config{})
	feed(c, "ab")
	out.Reset()
	feed(c, "\x1b[Z")
	if out.Len() != 0 || c.state != inputStateFree {
		t.Errorf("CSI-Z: emitted %q, state %d", out.String(), c.state)
	}
	if lineString(c) != "ab" {
		t.Errorf("line = %q", lineString(c))
	}
}

func TestControlBytesIgnored(t *testing.T) {
	c, out := newTestCLI(t, Config{})
	feed(c, "\x03\x0c\x12\x80\xff")
	if out.Len() != 0 || c.linepos != 0 {
		t.Errorf("control bytes: emitted %q, linepos %d", out.String(), c.linepos)
	}
}

func TestTabIsReservedNoOp(t *testing.T) {
	c, out := newTestCLI(t, Config{})
	feed(c, "ab\tc")
	if lineString(c) != "abc" {
		t.Errorf("line = %q", lineString(c))
	}
	if got := out.String(); got != "abc" {
		t.Errorf("emitted %q", got)
	}
}

func TestPromptChangeFromHandler(t *testing.T) {
	var c *CLI
	cfg := Config{Commands: []Command{{
		Name:  "mode",
		NArgs: 1,
		Run:   func(_ any, args []string) { c.SetPrompt(args[0] + "> ") },
	}}}
	c, out := newTestCLI(t, cfg)
	feed(c, "mode debug\r")
	if !strings.HasSuffix(out.String(), "debug> ") {
		t.Errorf("emitted %q", out.String())
	}
	if c.promptLen != 7 {
		t.Errorf("promptLen = %d, want 7", c.promptLen)
	}
}
