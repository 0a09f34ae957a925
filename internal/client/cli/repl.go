package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	SyncList(ctx context.Context)
	ShowList(ctx context.Context)
	Retry(ctx context.Context)
	Create(ctx context.Context)
	Edit(ctx context.Context, ref string)
	Delete(ctx context.Context, ref string)
	Help()
}

// runREPL reads one command per line and dispatches it to a. It returns on
// EOF, on "exit" or "quit", or when ctx is done.
//
//	list | l         reload and show users
//	retry            reload after an error
//	create | new     open the create form
//	edit <id>        open the edit form (any unique id prefix)
//	delete <id>      delete after confirmation
//	help             show commands
//	exit | quit      leave
//
// Before each prompt the list is reloaded if another client changed a user.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.SyncList(ctx)

		printlnFn("roster> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help", "h":
			a.Help()

		case "list", "l":
			a.ShowList(ctx)

		case "retry":
			a.Retry(ctx)

		case "create", "new":
			a.Create(ctx)

		case "edit", "delete":
			if len(parts) < 2 {
				printlnFn("Usage:", cmd, "<id>")
				continue
			}
			if cmd == "edit" {
				a.Edit(ctx, parts[1])
			} else {
				a.Delete(ctx, parts[1])
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
