// Command example runs an interactive mevcli session on the controlling
// terminal.  It owns the terminal setup (raw mode in, restore on exit) and
// feeds stdin bytes to the interpreter one at a time, the same shape a
// firmware host would use with a UART.
package main

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/evansm7/mevcli"
)

func main() {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintln(os.Stderr, "example: not a terminal:", err)
		os.Exit(1)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	done := false
	var cli *mevcli.CLI

	commands := []mevcli.Command{
		{
			Name:  "echo",
			Help:  "  [args...]: print the arguments",
			NArgs: -1,
			Run: func(_ any, args []string) {
				for i, a := range args {
					if i > 0 {
						fmt.Print(" ")
					}
					fmt.Print(a)
				}
				fmt.Print("\r\n")
			},
		},
		{
			Name:  "add",
			Help:  "   <a> <b>: add two integers",
			NArgs: 2,
			Run: func(_ any, args []string) {
				a, err1 := strconv.Atoi(args[0])
				b, err2 := strconv.Atoi(args[1])
				if err1 != nil || err2 != nil {
					fmt.Print("add: arguments must be integers\r\n")
					return
				}
				fmt.Printf("%d\r\n", a+b)
			},
		},
		{
			Name:  "size",
			Help:  "  : show the terminal size",
			NArgs: 0,
			Run: func(_ any, _ []string) {
				ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
				if err != nil {
					fmt.Printf("size: %v\r\n", err)
					return
				}
				fmt.Printf("%d cols x %d rows\r\n", ws.Col, ws.Row)
			},
		},
		{
			Name:  "prompt",
			Help:  "<text>: change the prompt",
			NArgs: 1,
			Run: func(_ any, args []string) {
				cli.SetPrompt(args[0] + " ")
			},
		},
		{
			Name:  "exit",
			Help:  "  : leave",
			NArgs: 0,
			Run: func(_ any, _ []string) {
				done = true
			},
		},
	}

	one := make([]byte, 1)
	cli = mevcli.New(mevcli.Config{
		Commands: commands,
		Output: func(b byte) {
			one[0] = b
			os.Stdout.Write(one)
		},
		Prompt:    "mev> ",
		ExtraHelp: "Try 'echo hello world' or 'add 2 3'.\r\n",
	})

	buf := make([]byte, 64)
	for !done {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			break
		}
		cli.Input(buf[:n])
	}
	fmt.Print("\r\n")
}
