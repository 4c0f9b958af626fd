package cli

import (
	"context"
	"fmt"

	"github.com/collectivehq/collective/internal/client/access"
)

func (a *App) Benefits(ctx context.Context) error {
	benefits, err := a.benefits.Visible(ctx)
	if err != nil {
		printlnFn("Could not load benefits:", err)
		return err
	}
	if len(benefits) == 0 {
		printlnFn("No benefits available for your membership.")
		return nil
	}

	for _, b := range benefits {
		tier := "public"
		if !b.IsPublic {
			tier = access.MembershipLabel(b.MembershipRequired)
		}
		printlnFn(fmt.Sprintf("%s  %s — %s (%s)", b.ID, b.Title, b.Partner, tier))
	}
	printlnFn("('redeem <id>' to redeem)")
	return nil
}

func (a *App) Redeem(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: redeem <benefit-id>")
		return nil
	}
	if err := a.benefits.Redeem(ctx, args[0]); err != nil {
		printlnFn("Redeem failed:", err)
		return err
	}
	printlnFn("Benefit redeemed, check your email for details.")
	return nil
}
