package api

import (
	"context"
	"net/http"
	"time"

	"github.com/collectivehq/collective/internal/client/models"
)

const dateLayout = "2006-01-02"

// normalizeProfile maps the raw wire profile into the normalized session
// shape. This is the single place that knows about snake_case field names,
// the legacy "profile" vs "profile_details" nesting, and the staff/superuser
// admin signal. Everything above the API boundary sees only models.Session.
func normalizeProfile(w wireProfile) models.Session {
	s := models.Session{
		ID:       w.ID,
		FullName: w.FullName,
		Email:    w.Email,
		IsAdmin:  w.IsStaff || w.IsSuperuser,
	}

	details := w.ProfileDetails
	if details == nil {
		details = w.Profile
	}
	if details != nil {
		s.PhoneNumber = details.PhoneNumber
		s.Location = details.Location
		s.Bio = details.Bio
	}

	if w.CurrentMembership != nil {
		s.CurrentMembership = &models.Membership{
			Type:      models.MembershipTier(w.CurrentMembership.MembershipType),
			StartDate: parseDate(w.CurrentMembership.StartDate),
		}
	}

	if w.PendingMembershipRequest != nil {
		s.PendingRequest = &models.PendingMembershipRequest{
			ID:   w.PendingMembershipRequest.ID,
			Type: models.MembershipTier(w.PendingMembershipRequest.MembershipType),
		}
	}

	for _, m := range w.MembershipHistory {
		s.History = append(s.History, models.Membership{
			Type:      models.MembershipTier(m.MembershipType),
			StartDate: parseDate(m.StartDate),
		})
	}

	for _, raw := range w.CurrentInterests {
		if i := models.Interest(raw); models.ValidInterest(i) {
			s.Interests = append(s.Interests, i)
		}
	}

	return s
}

func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FetchProfile retrieves the authoritative profile for the signed-in member.
func (c *HTTPClient) FetchProfile(ctx context.Context) (models.Session, error) {
	var w wireProfile
	req := request{method: http.MethodGet, path: "/auth/profile/", authed: true}
	if err := c.do(ctx, req, &w); err != nil {
		return models.Session{}, err
	}
	return normalizeProfile(w), nil
}

// UpdateProfile applies a partial profile edit and returns the resulting
// profile as the backend now sees it.
func (c *HTTPClient) UpdateProfile(ctx context.Context, upd ProfileUpdate) (models.Session, error) {
	var w wireProfile
	req := request{method: http.MethodPut, path: "/auth/profile/", body: upd, authed: true}
	if err := c.do(ctx, req, &w); err != nil {
		return models.Session{}, err
	}
	return normalizeProfile(w), nil
}
