// Package api implements the REST client for the Collective backend: bearer
// authentication, a single transparent refresh-and-retry on 401, and one
// normalization point that turns raw wire profiles into models.Session.
package api

import (
	"context"

	"github.com/collectivehq/collective/internal/client/models"
)

// InterestsUpdate describes an interest change as an explicit diff, so the
// backend can close out ended interest records instead of overwriting them.
type InterestsUpdate struct {
	Added     []models.Interest `json:"added"`
	Removed   []models.Interest `json:"removed"`
	Unchanged []models.Interest `json:"unchanged"`
}

// ProfileUpdate is a partial profile edit. Nil fields are omitted from the
// request and left unchanged by the backend.
type ProfileUpdate struct {
	FullName    *string          `json:"full_name,omitempty"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Bio         *string          `json:"bio,omitempty"`
	Interests   *InterestsUpdate `json:"interests_update,omitempty"`
}

// Client is the backend surface the rest of the client is written against.
type Client interface {
	Login(ctx context.Context, username, password string) error
	Ping(ctx context.Context) error

	FetchProfile(ctx context.Context) (models.Session, error)
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (models.Session, error)

	Events(ctx context.Context) ([]models.Event, error)
	RSVP(ctx context.Context, eventID string, attending bool) error

	Benefits(ctx context.Context) ([]models.Benefit, error)
	RedeemBenefit(ctx context.Context, benefitID string) error

	Library(ctx context.Context) ([]models.ContentItem, error)
	SetProgress(ctx context.Context, contentID string, percent int) error

	RequestUpgrade(ctx context.Context, tier models.MembershipTier) (models.PendingMembershipRequest, error)
	CancelUpgrade(ctx context.Context, requestID string) error

	PendingRequests(ctx context.Context) ([]models.MembershipRequestView, error)
	ApproveRequest(ctx context.Context, requestID string) error
	DeclineRequest(ctx context.Context, requestID string) error
}
