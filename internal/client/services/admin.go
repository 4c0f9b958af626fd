package services

import (
	"context"
	"sort"

	"github.com/collectivehq/collective/internal/client/access"
	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/session"
	"github.com/collectivehq/collective/internal/common"
)

// AdminService exposes the membership-approval console. Every operation
// requires both the admin role and the admin-mode toggle; a plain member (or
// an admin browsing in member mode) gets ErrUnauthorized without a network
// call.
type AdminService struct {
	client   api.Client
	sessions *session.Store
}

func NewAdminService(client api.Client, sessions *session.Store) *AdminService {
	return &AdminService{client: client, sessions: sessions}
}

func (a *AdminService) authorize() error {
	if !access.CanSeeAdminSurface(a.sessions.Current()) {
		return common.ErrUnauthorized
	}
	return nil
}

// ToggleAdminMode flips the admin-mode toggle. Only meaningful for admins;
// for anyone else it fails.
func (a *AdminService) ToggleAdminMode(ctx context.Context) (bool, error) {
	cur := a.sessions.Current()
	if !access.IsAdmin(cur) {
		return false, common.ErrUnauthorized
	}

	next := !cur.AdminMode
	if err := a.sessions.Update(ctx, models.SessionPatch{AdminMode: &next}); err != nil {
		return false, err
	}
	return next, nil
}

// PendingRequests lists upgrade requests awaiting a decision, oldest first.
func (a *AdminService) PendingRequests(ctx context.Context) ([]models.MembershipRequestView, error) {
	if err := a.authorize(); err != nil {
		return nil, err
	}

	reqs, err := a.client.PendingRequests(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].RequestedAt.Before(reqs[j].RequestedAt) })
	return reqs, nil
}

func (a *AdminService) Approve(ctx context.Context, requestID string) error {
	if err := a.authorize(); err != nil {
		return err
	}
	return a.client.ApproveRequest(ctx, requestID)
}

func (a *AdminService) Decline(ctx context.Context, requestID string) error {
	if err := a.authorize(); err != nil {
		return err
	}
	return a.client.DeclineRequest(ctx, requestID)
}
