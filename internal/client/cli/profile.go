package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/collectivehq/collective/internal/client/access"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/services"
)

func (a *App) Whoami(ctx context.Context) error {
	cur := a.sessions.Current()
	if cur.IsEmpty() {
		printlnFn("Not signed in.")
		return nil
	}
	name := cur.FullName
	if name == "" {
		name = cur.Email
	}
	line := fmt.Sprintf("%s — %s member", name, access.MembershipLabel(cur.Tier()))
	if since, ok := cur.MemberSince(); ok {
		line += fmt.Sprintf(" since %s", since.Format("Jan 2006"))
	}
	if cur.IsAdmin {
		line += " (admin)"
	}
	printlnFn(line)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if err := a.profiles.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "profile refresh failed, showing stored copy", "error", err)
	}

	cur := a.sessions.Current()
	if cur.IsEmpty() {
		printlnFn("Not signed in.")
		return nil
	}

	printlnFn("Name:      ", cur.FullName)
	printlnFn("Email:     ", cur.Email)
	printlnFn("Phone:     ", cur.PhoneNumber)
	printlnFn("Location:  ", cur.Location)
	printlnFn("Bio:       ", cur.Bio)
	printlnFn("Membership:", access.MembershipLabel(cur.Tier()))
	if cur.PendingRequest != nil {
		printlnFn("Pending upgrade to:", access.MembershipLabel(cur.PendingRequest.Type))
	}
	printlnFn("Interests: ", interestLine(cur.Interests))
	return nil
}

func interestLine(interests []models.Interest) string {
	if len(interests) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(interests))
	for _, i := range interests {
		parts = append(parts, string(i))
	}
	return strings.Join(parts, ", ")
}

// EditProfile walks the user through each editable field. Pressing Enter
// keeps the stored value.
func (a *App) EditProfile(ctx context.Context) error {
	cur := a.sessions.Current()
	if cur.IsEmpty() {
		printlnFn("Sign in first.")
		return nil
	}

	edit := services.ProfileEdit{}

	name, err := GetSimpleText(a.reader, fmt.Sprintf("Full name [%s]:", cur.FullName), os.Stdout)
	if err != nil {
		return err
	}
	if name != "" {
		edit.FullName = &name
	}

	phone, err := GetSimpleText(a.reader, fmt.Sprintf("Phone [%s]:", cur.PhoneNumber), os.Stdout)
	if err != nil {
		return err
	}
	if phone != "" {
		edit.PhoneNumber = &phone
	}

	location, err := GetSimpleText(a.reader, fmt.Sprintf("Location [%s]:", cur.Location), os.Stdout)
	if err != nil {
		return err
	}
	if location != "" {
		edit.Location = &location
	}

	bio, err := GetMultiline(a.reader, "Bio:", os.Stdout)
	if err != nil {
		return err
	}
	if bio != "" {
		edit.Bio = &bio
	}

	if edit.FullName == nil && edit.PhoneNumber == nil && edit.Location == nil && edit.Bio == nil {
		printlnFn("Nothing changed.")
		return nil
	}

	if err := a.profiles.Update(ctx, edit); err != nil {
		printlnFn("Update failed:", err)
		return err
	}
	printlnFn("Profile updated.")
	return nil
}

// Interests shows the vocabulary with the user's current picks marked and
// lets them enter a new comma-separated selection.
func (a *App) Interests(ctx context.Context) error {
	cur := a.sessions.Current()
	if cur.IsEmpty() {
		printlnFn("Sign in first.")
		return nil
	}

	printlnFn("Interests (pick from):")
	for _, i := range models.Interests {
		mark := " "
		if cur.HasInterest(i) {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("  [%s] %s", mark, i))
	}

	line, err := GetSimpleText(a.reader, "New selection (comma separated, empty to keep):", os.Stdout)
	if err != nil {
		return err
	}
	if line == "" {
		printlnFn("Nothing changed.")
		return nil
	}

	selected, unknown := parseInterests(line)
	if len(unknown) > 0 {
		printlnFn("Unknown interests ignored:", strings.Join(unknown, ", "))
	}

	if err := a.profiles.Update(ctx, services.ProfileEdit{Interests: &selected}); err != nil {
		printlnFn("Update failed:", err)
		return err
	}
	printlnFn("Interests updated.")
	return nil
}

func parseInterests(line string) (selected []models.Interest, unknown []string) {
	selected = []models.Interest{}
	for _, raw := range strings.Split(line, ",") {
		s := models.Interest(strings.ToLower(strings.TrimSpace(raw)))
		if s == "" {
			continue
		}
		if !models.ValidInterest(s) {
			unknown = append(unknown, string(s))
			continue
		}
		selected = append(selected, s)
	}
	return selected, unknown
}

// CompleteProfile collects the minimum the backend requires before the rest
// of the app unlocks.
func (a *App) CompleteProfile(ctx context.Context) error {
	var name string
	for name == "" {
		var err error
		name, err = GetSimpleText(a.reader, "Full name:", os.Stdout)
		if err != nil {
			return err
		}
	}

	location, err := GetSimpleText(a.reader, "Location (optional):", os.Stdout)
	if err != nil {
		return err
	}

	edit := services.ProfileEdit{FullName: &name}
	if location != "" {
		edit.Location = &location
	}

	if err := a.profiles.Update(ctx, edit); err != nil {
		printlnFn("Could not save profile:", err)
		return err
	}
	printlnFn("Welcome,", name+"!")
	return nil
}
