package services

import (
	"context"
	"fmt"

	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/session"
	"github.com/collectivehq/collective/internal/common"
)

type MembershipService struct {
	client   api.Client
	sessions *session.Store
}

func NewMembershipService(client api.Client, sessions *session.Store) *MembershipService {
	return &MembershipService{client: client, sessions: sessions}
}

// RequestUpgrade files an upgrade request and mirrors the backend's answer
// into the session. The backend enforces at-most-one pending request per
// member and owns the request id.
func (m *MembershipService) RequestUpgrade(ctx context.Context, tier models.MembershipTier) error {
	if !tier.Valid() {
		return fmt.Errorf("unknown membership tier %q", tier)
	}
	cur := m.sessions.Current()
	if cur.PendingRequest != nil {
		return fmt.Errorf("%w: a request for %s is already pending", common.ErrAlreadyExists, cur.PendingRequest.Type)
	}

	created, err := m.client.RequestUpgrade(ctx, tier)
	if err != nil {
		return err
	}

	pending := &created
	return m.sessions.Update(ctx, models.SessionPatch{PendingRequest: &pending})
}

// CancelPending withdraws the member's pending upgrade request.
func (m *MembershipService) CancelPending(ctx context.Context) error {
	cur := m.sessions.Current()
	if cur.PendingRequest == nil {
		return common.ErrNotFound
	}

	if err := m.client.CancelUpgrade(ctx, cur.PendingRequest.ID); err != nil {
		return err
	}

	var cleared *models.PendingMembershipRequest
	return m.sessions.Update(ctx, models.SessionPatch{PendingRequest: &cleared})
}
