package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	Next(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Fav(ctx context.Context, arg string) error
	Favs(ctx context.Context) error
	Filter(ctx context.Context, arg string) error
}

// runREPL starts a simple read-eval-print loop for the pokedex client.
//
// Commands:
//
//	next          load the next catalog page
//	list          print the working set
//	filter <t>    print records with type tag t ("Null" for untyped)
//	show <id>     show one record's profile
//	create        create a record interactively
//	edit <id>     edit a record interactively
//	delete <id>   delete a record
//	fav <id>      toggle the favorite flag
//	favs          list favorited records
//	exit | quit   leave the program
//
// Errors returned by command handlers are printed and the loop carries
// on; nothing here is fatal.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("pokedex> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var err error
		switch cmd {
		case "help":
			printlnFn("commands: next, list, filter <type>, show <id>, create, edit <id>, delete <id>, fav <id>, favs, exit")
		case "next":
			err = a.Next(ctx)
		case "list":
			err = a.List(ctx)
		case "filter":
			err = a.Filter(ctx, arg)
		case "show":
			err = a.Show(ctx, arg)
		case "create":
			err = a.Create(ctx)
		case "edit":
			err = a.Edit(ctx, arg)
		case "delete":
			err = a.Delete(ctx, arg)
		case "fav":
			err = a.Fav(ctx, arg)
		case "favs":
			err = a.Favs(ctx)
		case "exit", "quit":
			return
		default:
			printlnFn("unknown command: " + cmd)
		}

		if err != nil {
			printlnFn("error: " + err.Error())
		}
	}
}
