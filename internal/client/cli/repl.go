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
	isLoggedIn(ctx context.Context) bool
	Go(ctx context.Context, path string) error
	Refresh(ctx context.Context) error
	Tenant(ctx context.Context, tenantID string) error
	Filter(ctx context.Context, from, to string) error
	ClearFilter(ctx context.Context) error
	Sync(ctx context.Context) error
	Customers(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
	flushNotifications()
}

// runREPL starts a simple read–eval–print loop for the StorePulse console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. Pending notifications are printed after every command.
// The loop exits on scanner EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	help                 show available commands
//	go <path>            navigate, e.g. "go /mainLayout/tenants"
//	refresh              refetch everything on screen
//	tenant <id>          analytics of one tenant
//	filter <from> <to>   dashboard date range, YYYY-MM-DD
//	clear                reset the dashboard date range
//	sync                 resynchronize backend data and refresh
//	customers            customers of every tenant (admin)
//	whoami               show the stored session
//	logout               wipe the local store
//	exit | quit          leave the program
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("sp %s > ", statusFn()))
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
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: go, refresh, tenant, filter, clear, sync, customers, whoami, logout, exit")
			} else {
				printlnFn("Available commands: go, whoami, exit. Log in with 'storepulse session import'.")
			}

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			err = a.Go(ctx, args[0])

		case "r", "refresh":
			err = a.Refresh(ctx)

		case "tenant":
			if len(args) != 1 {
				printlnFn("Usage: tenant <id>")
				continue
			}
			err = a.Tenant(ctx, args[0])

		case "filter":
			if len(args) != 2 {
				printlnFn("Usage: filter <from> <to>")
				continue
			}
			err = a.Filter(ctx, args[0], args[1])

		case "clear":
			err = a.ClearFilter(ctx)

		case "sync":
			err = a.Sync(ctx)

		case "customers":
			err = a.Customers(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.flushNotifications()
		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

// Root mounts the layout root and runs the REPL on the App's input until
// the user leaves.
func (a *App) Root(ctx context.Context) error {
	printlnFn("Welcome to StorePulse (type 'help' for commands)")
	if err := a.Start(ctx); err != nil {
		return err
	}
	a.flushNotifications()

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, bufio.NewScanner(a.reader))
	return nil
}
