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
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Token(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Types(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	View(ctx context.Context, args []string) error
	Thumb(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Progress(ctx context.Context) error
	Stats(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login [user], token [user], status, help, exit"
	helpLoggedIn  = "Available commands: upload <files...>, (l)ist, search [text], filter [type], types, " +
		"show <id>, view <id>, thumb <id>, download <id>, delete <id>, export <file>, import <file>, " +
		"progress, stats, token [user], status, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the records CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as its arguments, and dispatches to methods on 'a'.
// Record commands are refused until the user is logged in; login, token
// and status work either way. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("records %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			err = a.Login(ctx, args)

		case "token":
			err = a.Token(ctx, args)

		case "status":
			err = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if !knownCommand(cmd) {
				printlnFn("Unknown command:", cmd)
				continue
			}
			if !a.isLoggedIn() {
				printlnFn("Please log in first: login [user]")
				continue
			}
			err = dispatch(ctx, a, cmd, args)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

var recordCommands = map[string]struct{}{
	"logout": {}, "upload": {}, "l": {}, "list": {}, "search": {}, "filter": {}, "types": {},
	"show": {}, "view": {}, "thumb": {}, "download": {}, "delete": {},
	"export": {}, "import": {}, "progress": {}, "stats": {},
}

func knownCommand(cmd string) bool {
	_, ok := recordCommands[cmd]
	return ok
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "upload":
		return a.Upload(ctx, args)
	case "l", "list":
		return a.List(ctx)
	case "search":
		return a.Search(ctx, args)
	case "filter":
		return a.Filter(ctx, args)
	case "types":
		return a.Types(ctx)
	case "show":
		return a.Show(ctx, args)
	case "view":
		return a.View(ctx, args)
	case "thumb":
		return a.Thumb(ctx, args)
	case "download":
		return a.Download(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "export":
		return a.Export(ctx, args)
	case "import":
		return a.Import(ctx, args)
	case "progress":
		return a.Progress(ctx)
	case "stats":
		return a.Stats(ctx)
	}
	return nil
}
