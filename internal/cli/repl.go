package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
)

// execIface is the command surface the loop dispatches to. *App implements
// it; tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Write(ctx context.Context) error
	List(ctx context.Context) error
	Mood(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Recent(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Users(ctx context.Context) error
	All(ctx context.Context) error
	Promote(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: register, login, exit"
	helpMember = "Available commands: write, (l)ist, mood <MOOD>, search <term>, recent [n], show <id>, edit <id>, delete <id>, export <id>, logout, exit"
	helpAdmin  = "Administration: users, all, promote <userID>"
)

// runREPL reads commands from r until EOF or "exit"/"quit".
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  write            compose a new entry
//	  list | l         all own entries, newest first
//	  mood <MOOD>      own entries with that mood
//	  search <term>    own entries whose content contains term
//	  recent [n]       the n newest own entries
//	  show <id>        print one own entry
//	  edit <id>        change title, mood or content of an own entry
//	  delete <id>      remove an own entry
//	  export <id>      write an own entry to the export directory
//	  users            list accounts (admin)
//	  all              list every entry (admin)
//	  promote <id>     grant the admin role (admin)
//	  logout
//
// Handler errors are reported to w and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "diary%s> ", prefixed(statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpMember)
				fmt.Fprintln(w, helpAdmin)
			} else {
				fmt.Fprintln(w, helpGuest)
			}
			continue
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		default:
			if !a.isLoggedIn() {
				if isMemberCommand(cmd) {
					fmt.Fprintln(w, "Please login first")
				} else {
					fmt.Fprintln(w, "Unknown command:", cmd)
				}
				continue
			}
			cmdErr = dispatch(ctx, a, cmd, args, w)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", userMessage(cmdErr))
		}
	}
}

var memberCommands = []string{
	"logout", "write", "list", "l", "mood", "search", "recent", "show",
	"edit", "delete", "export", "users", "all", "promote",
}

func isMemberCommand(cmd string) bool {
	for _, c := range memberCommands {
		if c == cmd {
			return true
		}
	}
	return false
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "write":
		return a.Write(ctx)
	case "l", "list":
		return a.List(ctx)
	case "mood":
		return a.Mood(ctx, args)
	case "search":
		return a.Search(ctx, args)
	case "recent":
		return a.Recent(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "edit":
		return a.Edit(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "export":
		return a.Export(ctx, args)
	case "users":
		return a.Users(ctx)
	case "all":
		return a.All(ctx)
	case "promote":
		return a.Promote(ctx, args)
	}
	fmt.Fprintln(w, "Unknown command:", cmd)
	return nil
}

func prefixed(status string) string {
	if status == "" {
		return ""
	}
	return " " + status
}

// userMessage turns service errors into short terminal messages.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return "invalid username or password"
	case errors.Is(err, common.ErrorForbidden):
		return "this command requires an administrator"
	case errors.Is(err, common.ErrorLocked):
		return "encryption key not available, please login again"
	case errors.Is(err, common.ErrorStorageUnavailable):
		return "diary storage is unavailable, try again later"
	}
	return err.Error()
}
