package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Open(ctx context.Context, path string) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Destinations(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Prompts and REPL messages go to w. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Handlers print their own failures, so returned errors are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	printlnFn := func(args ...any) { fmt.Fprintln(w, args...) }

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("travelrisk %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, destinations [list|add|update|delete], notifications [list|add|read|readall|rm|refresh], account, about, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, register, about, open <path>, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "home":
			_ = a.Open(ctx, "/")

		case "about":
			_ = a.Open(ctx, "/about")

		case "account":
			_ = a.Open(ctx, "/account")

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "destinations", "d":
			_ = a.Destinations(ctx, args)

		case "notifications", "n":
			_ = a.Notifications(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
