package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/collectivehq/collective/internal/client/models"
)

func member(tier models.MembershipTier) models.Session {
	s := models.Session{ID: "u1", Email: "m@x"}
	if tier != "" {
		s.CurrentMembership = &models.Membership{Type: tier}
	}
	return s
}

func event(public bool, required models.MembershipTier) models.Event {
	return models.Event{ID: "e1", IsPublic: public, MembershipRequired: required}
}

func TestVisibleTo_TierBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		session  models.Session
		resource models.Tiered
		want     bool
	}{
		{
			name:     "community member cannot see key_access event",
			session:  member(models.TierCommunity),
			resource: event(false, models.TierKeyAccess),
			want:     false,
		},
		{
			name:     "community member sees public key_access event",
			session:  member(models.TierCommunity),
			resource: event(true, models.TierKeyAccess),
			want:     true,
		},
		{
			name:     "key_access member sees key_access event",
			session:  member(models.TierKeyAccess),
			resource: event(false, models.TierKeyAccess),
			want:     true,
		},
		{
			name:     "key_access member cannot see creative_workspace event",
			session:  member(models.TierKeyAccess),
			resource: event(false, models.TierCreativeWorkspace),
			want:     false,
		},
		{
			name:     "creative_workspace member sees key_access event",
			session:  member(models.TierCreativeWorkspace),
			resource: event(false, models.TierKeyAccess),
			want:     true,
		},
		{
			name:     "no membership defaults to community",
			session:  member(""),
			resource: event(false, models.TierKeyAccess),
			want:     false,
		},
		{
			name:     "anonymous sees only public",
			session:  models.Session{},
			resource: event(false, models.TierCommunity),
			want:     false,
		},
		{
			name:     "anonymous sees public",
			session:  models.Session{},
			resource: event(true, models.TierCreativeWorkspace),
			want:     true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VisibleTo(tc.session, tc.resource))
		})
	}
}

func TestVisibleTo_AdminSeesEverything(t *testing.T) {
	admin := models.Session{ID: "a1", IsAdmin: true}
	assert.True(t, VisibleTo(admin, event(false, models.TierCreativeWorkspace)))

	// Visibility does not depend on the admin-mode toggle, only the role.
	admin.AdminMode = false
	assert.True(t, VisibleTo(admin, event(false, models.TierCreativeWorkspace)))
}

func TestCanSeeAdminSurface_RequiresRoleAndMode(t *testing.T) {
	tests := []struct {
		name    string
		session models.Session
		want    bool
	}{
		{name: "admin with mode on", session: models.Session{ID: "a", IsAdmin: true, AdminMode: true}, want: true},
		{name: "admin with mode off", session: models.Session{ID: "a", IsAdmin: true}, want: false},
		{name: "non-admin with mode flag set", session: models.Session{ID: "m", AdminMode: true}, want: false},
		{name: "anonymous", session: models.Session{}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanSeeAdminSurface(tc.session))
		})
	}
}

func TestFilterVisible(t *testing.T) {
	events := []models.Event{
		{ID: "pub", IsPublic: true},
		{ID: "key", MembershipRequired: models.TierKeyAccess},
		{ID: "ws", MembershipRequired: models.TierCreativeWorkspace},
	}

	got := FilterVisible(member(models.TierKeyAccess), events)
	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"pub", "key"}, ids)
}

func TestMembershipLabel_DefaultsToCommunity(t *testing.T) {
	assert.Equal(t, "Key Access", MembershipLabel(models.TierKeyAccess))
	assert.Equal(t, "Creative Workspace", MembershipLabel(models.TierCreativeWorkspace))
	assert.Equal(t, "Community", MembershipLabel(models.TierCommunity))
	assert.Equal(t, "Community", MembershipLabel(""))
	assert.Equal(t, "Community", MembershipLabel("vip"))
}

func TestIsAuthenticated(t *testing.T) {
	assert.False(t, IsAuthenticated(models.Session{}))
	assert.True(t, IsAuthenticated(models.Session{ID: "u1"}))
}
