package cli

import (
	"context"
	"errors"
	"os"

	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/common"
)

// promptLogin loops until the user signs in successfully or types "exit".
// Returns false when the user chose to leave.
func (a *App) promptLogin(ctx context.Context) bool {
	for {
		email, err := GetSimpleText(a.reader, "Email (or 'exit'):", os.Stdout)
		if err != nil {
			return false
		}
		if email == "exit" || email == "quit" {
			return false
		}
		if email == "" {
			continue
		}

		pw, err := GetPassword(os.Stdout)
		if err != nil {
			printlnFn("Could not read password:", err)
			continue
		}

		err = a.client.Login(ctx, email, string(pw))
		common.WipeByteArray(pw)
		if err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				printlnFn("Invalid email or password, try again.")
			} else if errors.Is(err, api.ErrNetwork) {
				printlnFn("Server unreachable, try again later.")
			} else {
				printlnFn("Sign-in failed:", err)
			}
			continue
		}

		if err := a.sessions.Initialize(ctx); err != nil {
			a.log.Warn(ctx, "profile fetch after sign-in failed", "error", err)
		}
		printlnFn("Signed in.")
		return true
	}
}

// Login is the interactive "login" command for users who signed out during
// the session.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in. Use 'logout' first.")
		return nil
	}
	a.promptLogin(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		printlnFn("Sign-out failed:", err)
		return err
	}
	printlnFn("Signed out.")
	return nil
}
