// Package services contains the application services the CLI drives. Each
// service composes the API client, the session store and the access rules;
// none of them render anything.
package services

import (
	"context"

	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/session"
)

// ProfileEdit is the editable subset of the profile. Nil fields are left
// unchanged.
type ProfileEdit struct {
	FullName    *string
	PhoneNumber *string
	Location    *string
	Bio         *string
	Interests   *[]models.Interest
}

type ProfileService struct {
	client   api.Client
	sessions *session.Store
}

func NewProfileService(client api.Client, sessions *session.Store) *ProfileService {
	return &ProfileService{client: client, sessions: sessions}
}

// Update sends a partial profile edit and stores the profile the backend
// returns. Interest changes are sent as an explicit added/removed/unchanged
// diff against the current session, so the backend can end-date removed
// interest records instead of overwriting history.
func (p *ProfileService) Update(ctx context.Context, edit ProfileEdit) error {
	upd := api.ProfileUpdate{
		FullName:    edit.FullName,
		PhoneNumber: edit.PhoneNumber,
		Location:    edit.Location,
		Bio:         edit.Bio,
	}

	if edit.Interests != nil {
		diff := diffInterests(p.sessions.Current().Interests, *edit.Interests)
		upd.Interests = &diff
	}

	updated, err := p.client.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	return p.sessions.SetProfile(ctx, updated)
}

// Refresh refetches the authoritative profile and stores it.
func (p *ProfileService) Refresh(ctx context.Context) error {
	fetched, err := p.client.FetchProfile(ctx)
	if err != nil {
		return err
	}
	return p.sessions.SetProfile(ctx, fetched)
}

// diffInterests splits desired against current into the structured update
// the profile endpoint expects. Unknown tags are dropped; order follows the
// vocabulary order.
func diffInterests(current, desired []models.Interest) api.InterestsUpdate {
	has := func(list []models.Interest, i models.Interest) bool {
		for _, cur := range list {
			if cur == i {
				return true
			}
		}
		return false
	}

	out := api.InterestsUpdate{
		Added:     []models.Interest{},
		Removed:   []models.Interest{},
		Unchanged: []models.Interest{},
	}
	for _, i := range models.Interests {
		inCur, inNew := has(current, i), has(desired, i)
		switch {
		case inCur && inNew:
			out.Unchanged = append(out.Unchanged, i)
		case !inCur && inNew:
			out.Added = append(out.Added, i)
		case inCur && !inNew:
			out.Removed = append(out.Removed, i)
		}
	}
	return out
}
