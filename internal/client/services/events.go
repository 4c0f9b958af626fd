package services

import (
	"context"
	"sort"

	"github.com/collectivehq/collective/internal/client/access"
	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/session"
)

type EventService struct {
	client   api.Client
	sessions *session.Store
}

func NewEventService(client api.Client, sessions *session.Store) *EventService {
	return &EventService{client: client, sessions: sessions}
}

// Visible lists the events the current member may see, soonest first. The
// backend returns lists unordered, so sorting happens here.
func (e *EventService) Visible(ctx context.Context) ([]models.Event, error) {
	all, err := e.client.Events(ctx)
	if err != nil {
		return nil, err
	}

	visible := access.FilterVisible(e.sessions.Current(), all)
	sort.Slice(visible, func(i, j int) bool { return visible[i].StartsAt.Before(visible[j].StartsAt) })
	return visible, nil
}

func (e *EventService) RSVP(ctx context.Context, eventID string, attending bool) error {
	return e.client.RSVP(ctx, eventID, attending)
}
