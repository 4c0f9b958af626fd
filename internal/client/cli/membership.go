package cli

import (
	"context"
	"errors"
	"os"

	"github.com/collectivehq/collective/internal/client/access"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/common"
)

// Upgrade asks which tier the member wants and files the upgrade request.
func (a *App) Upgrade(ctx context.Context) error {
	cur := a.sessions.Current()
	if cur.IsEmpty() {
		printlnFn("Sign in first.")
		return nil
	}
	if cur.PendingRequest != nil {
		printlnFn("You already have a pending request for",
			access.MembershipLabel(cur.PendingRequest.Type)+".",
			"Use 'cancelupgrade' to withdraw it.")
		return nil
	}

	printlnFn("Current membership:", access.MembershipLabel(cur.Tier()))
	printlnFn("Available tiers: key_access, creative_workspace")

	answer, err := GetSimpleText(a.reader, "Request which tier?", os.Stdout)
	if err != nil {
		return err
	}
	tier := models.MembershipTier(answer)
	if !tier.Valid() {
		printlnFn("Unknown tier:", answer)
		return nil
	}

	if err := a.memberships.RequestUpgrade(ctx, tier); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			printlnFn("A request is already pending.")
			return nil
		}
		printlnFn("Request failed:", err)
		return err
	}
	printlnFn("Upgrade request filed. An admin will review it shortly.")
	return nil
}

func (a *App) CancelUpgrade(ctx context.Context) error {
	if err := a.memberships.CancelPending(ctx); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No pending upgrade request to cancel.")
			return nil
		}
		printlnFn("Cancel failed:", err)
		return err
	}
	printlnFn("Upgrade request withdrawn.")
	return nil
}
