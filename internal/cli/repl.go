package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Delete(ctx context.Context) error
	Clear(ctx context.Context) error
	Sync(ctx context.Context) error
	Push(ctx context.Context) error
	Pull(ctx context.Context) error
	Export(ctx context.Context) error
	Import(ctx context.Context) error
	Stat(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the pourlog CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	- help           — show available commands
//	- add            — record a pour (interactive prompts)
//	- list | l       — list pours grouped by day
//	- show           — show a single pour (interactive ID prompt)
//	- delete         — delete a pour by ID
//	- clear          — delete every pour (asks for confirmation)
//	- sync           — upload locally stored photos to object storage
//	- push           — push a whole-dataset snapshot to the remote table
//	- pull           — replace local data with the latest remote snapshot
//	- export         — write a snapshot file to the export directory
//	- import         — replace local data from a snapshot file
//	- stat           — show collection statistics
//	- exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pourlog> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: add, (l)ist, show, delete, clear, sync, push, pull, export, import, stat, exit")

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "clear":
			_ = a.Clear(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "push":
			_ = a.Push(ctx)

		case "pull":
			_ = a.Pull(ctx)

		case "export":
			_ = a.Export(ctx)

		case "import":
			_ = a.Import(ctx)

		case "stat":
			_ = a.Stat(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
