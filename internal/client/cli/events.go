package cli

import (
	"context"
	"fmt"

	"github.com/collectivehq/collective/internal/client/access"
)

func (a *App) Events(ctx context.Context) error {
	events, err := a.events.Visible(ctx)
	if err != nil {
		printlnFn("Could not load events:", err)
		return err
	}
	if len(events) == 0 {
		printlnFn("No upcoming events for your membership.")
		return nil
	}

	for _, e := range events {
		tier := "public"
		if !e.IsPublic {
			tier = access.MembershipLabel(e.MembershipRequired)
		}
		mark := " "
		if e.Attending {
			mark = "*"
		}
		printlnFn(fmt.Sprintf("%s %s  %s @ %s [%s] (%s)",
			mark, e.ID, e.Title, e.Location, e.StartsAt.Format("2006-01-02 15:04"), tier))
	}
	printlnFn("(* = attending; 'rsvp <id>' to attend, 'rsvp <id> no' to cancel)")
	return nil
}

func (a *App) RSVP(ctx context.Context, args []string) error {
	if len(args) < 1 {
		printlnFn("Usage: rsvp <event-id> [no]")
		return nil
	}
	attending := !(len(args) > 1 && args[1] == "no")

	if err := a.events.RSVP(ctx, args[0], attending); err != nil {
		printlnFn("RSVP failed:", err)
		return err
	}
	if attending {
		printlnFn("See you there!")
	} else {
		printlnFn("RSVP cancelled.")
	}
	return nil
}
