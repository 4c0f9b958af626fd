package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/collectivehq/collective/internal/client/access"
)

func (a *App) Library(ctx context.Context) error {
	items, err := a.library.Visible(ctx)
	if err != nil {
		printlnFn("Could not load the library:", err)
		return err
	}
	if len(items) == 0 {
		printlnFn("No content available for your membership.")
		return nil
	}

	for _, c := range items {
		tier := "public"
		if !c.IsPublic {
			tier = access.MembershipLabel(c.MembershipRequired)
		}
		printlnFn(fmt.Sprintf("%s  %s [%s] %d%% (%s)", c.ID, c.Title, c.Kind, c.ProgressPercent, tier))
	}
	printlnFn("('progress <id> <percent>' to update)")
	return nil
}

func (a *App) Progress(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: progress <content-id> <percent>")
		return nil
	}
	percent, err := strconv.Atoi(args[1])
	if err != nil {
		printlnFn("Percent must be a number between 0 and 100.")
		return nil
	}

	if err := a.library.SetProgress(ctx, args[0], percent); err != nil {
		printlnFn("Could not save progress:", err)
		return err
	}
	printlnFn("Progress saved.")
	return nil
}
