package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/collectivehq/collective/internal/client/models"
)

// Events lists all events the backend is willing to show this member.
// Tier filtering for display happens client-side via the access package.
func (c *HTTPClient) Events(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	err := c.do(ctx, request{method: http.MethodGet, path: "/events/", authed: true}, &out)
	return out, err
}

// RSVP marks or clears attendance for an event.
func (c *HTTPClient) RSVP(ctx context.Context, eventID string, attending bool) error {
	req := request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/events/%s/rsvp/", eventID),
		body:   map[string]bool{"attending": attending},
		authed: true,
	}
	return c.do(ctx, req, nil)
}

func (c *HTTPClient) Benefits(ctx context.Context) ([]models.Benefit, error) {
	var out []models.Benefit
	err := c.do(ctx, request{method: http.MethodGet, path: "/benefits/", authed: true}, &out)
	return out, err
}

func (c *HTTPClient) RedeemBenefit(ctx context.Context, benefitID string) error {
	req := request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/benefits/%s/redeem/", benefitID),
		authed: true,
	}
	return c.do(ctx, req, nil)
}

func (c *HTTPClient) Library(ctx context.Context) ([]models.ContentItem, error) {
	var out []models.ContentItem
	err := c.do(ctx, request{method: http.MethodGet, path: "/library/", authed: true}, &out)
	return out, err
}

// SetProgress records course progress for a library item.
func (c *HTTPClient) SetProgress(ctx context.Context, contentID string, percent int) error {
	req := request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/library/%s/progress/", contentID),
		body:   map[string]int{"progress_percent": percent},
		authed: true,
	}
	return c.do(ctx, req, nil)
}

// RequestUpgrade files a membership upgrade request. The backend owns the
// request id; the client never invents one.
func (c *HTTPClient) RequestUpgrade(ctx context.Context, tier models.MembershipTier) (models.PendingMembershipRequest, error) {
	var out models.PendingMembershipRequest
	req := request{
		method: http.MethodPost,
		path:   "/membership/requests/",
		body:   map[string]string{"membership_type": string(tier)},
		authed: true,
	}
	err := c.do(ctx, req, &out)
	return out, err
}

func (c *HTTPClient) CancelUpgrade(ctx context.Context, requestID string) error {
	req := request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/membership/requests/%s/", requestID),
		authed: true,
	}
	return c.do(ctx, req, nil)
}

func (c *HTTPClient) PendingRequests(ctx context.Context) ([]models.MembershipRequestView, error) {
	var out []models.MembershipRequestView
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/membership-requests/", authed: true}, &out)
	return out, err
}

func (c *HTTPClient) ApproveRequest(ctx context.Context, requestID string) error {
	req := request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/admin/membership-requests/%s/approve/", requestID),
		authed: true,
	}
	return c.do(ctx, req, nil)
}

func (c *HTTPClient) DeclineRequest(ctx context.Context, requestID string) error {
	req := request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/admin/membership-requests/%s/decline/", requestID),
		authed: true,
	}
	return c.do(ctx, req, nil)
}
