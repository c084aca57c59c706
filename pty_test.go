package mevcli

import (
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// TestPtySession drives the interpreter through a real pseudo-terminal: the
// sink writes to the pty's terminal side and the test reads the master end,
// the same path a serial console or ssh session would exercise.
func TestPtySession(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	// Raw mode on the terminal side, or the line discipline rewrites
	// our CR/LF pairs on the way through.
	if _, err := term.MakeRaw(int(tty.Fd())); err != nil {
		t.Fatalf("MakeRaw: %v", err)
	}

	one := make([]byte, 1)
	c := New(Config{
		Commands: []Command{{
			Name:  "add",
			NArgs: 2,
			Run: func(_ any, args []string) {
				fmt.Fprintf(tty, "%s+%s\r\n", args[0], args[1])
			},
		}},
		Output: func(b byte) {
			one[0] = b
			tty.Write(one)
		},
	})

	c.Input([]byte("add 2 3\r"))

	want := "> " + "add 2 3\r\n" + "2+3\r\n" + "> "
	got := readPty(t, ptmx, len(want))
	if got != want {
		t.Errorf("pty saw %q, want %q", got, want)
	}
}

// readPty accumulates n bytes from the master end, bailing out after a
// couple of seconds rather than hanging the test run.
func readPty(t *testing.T, ptmx io.Reader, n int) string {
	t.Helper()
	result := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		chunk := make([]byte, 256)
		for buf.Len() < n {
			r, err := ptmx.Read(chunk)
			if r > 0 {
				buf.Write(chunk[:r])
			}
			if err != nil {
				break
			}
		}
		result <- buf.String()
	}()
	select {
	case s := <-result:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out reading pty")
		return ""
	}
}
