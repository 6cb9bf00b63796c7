package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the sensorhub CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the rest as arguments. The loop exits on EOF, on ctx cancellation,
// or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                              show available commands
//	  - register                          create an account
//	  - login                             authenticate
//	  - exit | quit                       leave the program
//
//	Logged in:
//	  - help                              show available commands
//	  - add <sensorId> <value> [time]     record a reading
//	  - (l)ist [sensorId]                 list readings
//	  - logout                            forget the cached token
//	  - exit | quit                       leave the program
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("sh %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add <sensorId> <value> [timestamp], (l)ist [sensorId], logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "add":
			cmdErr = a.Add(ctx, args)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describeError(cmdErr))
		}
	}
}
