package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/collectivehq/collective/internal/client/access"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	showsAdminCommands() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Interests(ctx context.Context) error
	Events(ctx context.Context) error
	RSVP(ctx context.Context, args []string) error
	Benefits(ctx context.Context) error
	Redeem(ctx context.Context, args []string) error
	Library(ctx context.Context) error
	Progress(ctx context.Context, args []string) error
	Upgrade(ctx context.Context) error
	CancelUpgrade(ctx context.Context) error
	AdminMode(ctx context.Context) error
	Pending(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Decline(ctx context.Context, args []string) error
}

// runREPL reads a line, parses the first token as the command and dispatches
// to methods on a. Errors returned by handlers are already reported by the
// handlers themselves; the loop stays resilient and focused on I/O. Exits on
// scanner EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("collective %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printHelp(a)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "interests":
			_ = a.Interests(ctx)

		case "e", "events":
			_ = a.Events(ctx)

		case "rsvp":
			_ = a.RSVP(ctx, args)

		case "b", "benefits":
			_ = a.Benefits(ctx)

		case "redeem":
			_ = a.Redeem(ctx, args)

		case "library":
			_ = a.Library(ctx)

		case "progress":
			_ = a.Progress(ctx, args)

		case "upgrade":
			_ = a.Upgrade(ctx)

		case "cancelupgrade":
			_ = a.CancelUpgrade(ctx)

		case "adminmode":
			_ = a.AdminMode(ctx)

		case "pending":
			_ = a.Pending(ctx)

		case "approve":
			_ = a.Approve(ctx, args)

		case "decline":
			_ = a.Decline(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: login, exit")
		return
	}
	printlnFn("Available commands: whoami, profile, edit, interests, (e)vents, rsvp, (b)enefits, redeem, library, progress, upgrade, cancelupgrade, adminmode, logout, exit")
	if a.showsAdminCommands() {
		printlnFn("Admin commands: pending, approve <id>, decline <id>")
	}
}

func (a *App) showsAdminCommands() bool {
	return access.CanSeeAdminSurface(a.sessions.Current())
}

func (a *App) getStatus() string {
	s := ""
	cur := a.sessions.Current()
	if cur.FullName != "" {
		s = cur.FullName + " "
	} else if cur.Email != "" {
		s = cur.Email + " "
	}
	if access.CanSeeAdminSurface(cur) {
		s += "[admin] "
	}
	if a.Mode != "" {
		s += string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", strings.TrimSpace(s))
	}
	return s
}

func (a *App) repl(ctx context.Context) {
	printlnFn("Collective CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
