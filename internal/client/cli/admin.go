package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/collectivehq/collective/internal/client/access"
	"github.com/collectivehq/collective/internal/common"
)

// AdminMode toggles the admin surface on this device. Only available to
// members with the admin role; the toggle never leaves the machine.
func (a *App) AdminMode(ctx context.Context) error {
	on, err := a.admin.ToggleAdminMode(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Admin mode is only available to admins.")
			return nil
		}
		printlnFn("Could not toggle admin mode:", err)
		return err
	}
	if on {
		printlnFn("Admin mode ON.")
	} else {
		printlnFn("Admin mode OFF.")
	}
	return nil
}

func (a *App) Pending(ctx context.Context) error {
	reqs, err := a.admin.PendingRequests(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Enable admin mode first ('adminmode').")
			return nil
		}
		printlnFn("Could not load pending requests:", err)
		return err
	}
	if len(reqs) == 0 {
		printlnFn("No pending membership requests.")
		return nil
	}

	for _, r := range reqs {
		printlnFn(fmt.Sprintf("%s  %s <%s> wants %s (since %s)",
			r.ID, r.MemberName, r.MemberEmail,
			access.MembershipLabel(r.RequestedTier),
			r.RequestedAt.Format("2006-01-02")))
	}
	printlnFn("('approve <id>' / 'decline <id>')")
	return nil
}

func (a *App) Approve(ctx context.Context, args []string) error {
	return a.decideRequest(ctx, args, "approve", a.admin.Approve, "Request approved.")
}

func (a *App) Decline(ctx context.Context, args []string) error {
	return a.decideRequest(ctx, args, "decline", a.admin.Decline, "Request declined.")
}

func (a *App) decideRequest(ctx context.Context, args []string, verb string,
	decide func(context.Context, string) error, done string) error {

	if len(args) != 1 {
		printlnFn("Usage: " + verb + " <request-id>")
		return nil
	}
	if err := decide(ctx, args[0]); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Enable admin mode first ('adminmode').")
			return nil
		}
		printlnFn("Could not "+verb+" request:", err)
		return err
	}
	printlnFn(done)
	return nil
}
