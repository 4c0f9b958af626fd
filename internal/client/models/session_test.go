package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Tier_DefaultsToCommunity(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    MembershipTier
	}{
		{name: "no membership", session: Session{}, want: TierCommunity},
		{
			name:    "unknown tier value",
			session: Session{CurrentMembership: &Membership{Type: "vip"}},
			want:    TierCommunity,
		},
		{
			name:    "key access",
			session: Session{CurrentMembership: &Membership{Type: TierKeyAccess}},
			want:    TierKeyAccess,
		},
		{
			name:    "creative workspace",
			session: Session{CurrentMembership: &Membership{Type: TierCreativeWorkspace}},
			want:    TierCreativeWorkspace,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.session.Tier())
		})
	}
}

func TestMembershipTier_Rank_Ordering(t *testing.T) {
	assert.Less(t, TierCommunity.Rank(), TierKeyAccess.Rank())
	assert.Less(t, TierKeyAccess.Rank(), TierCreativeWorkspace.Rank())
	assert.Equal(t, TierCommunity.Rank(), MembershipTier("bogus").Rank())
}

func TestSession_MemberSince_SortsHistory(t *testing.T) {
	older := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)

	s := Session{History: []Membership{
		{Type: TierKeyAccess, StartDate: newer},
		{Type: TierCommunity, StartDate: older},
	}}

	since, ok := s.MemberSince()
	require.True(t, ok)
	assert.Equal(t, older, since)

	// The session's own history must not be reordered.
	assert.Equal(t, newer, s.History[0].StartDate)
}

func TestSession_MemberSince_EmptyHistory(t *testing.T) {
	_, ok := Session{}.MemberSince()
	assert.False(t, ok)
}

func TestSessionPatch_Apply_ShallowMerge(t *testing.T) {
	s := Session{ID: "u1", FullName: "Alice", Location: "Oslo"}

	name := "Alice Larsen"
	mode := true
	patch := SessionPatch{FullName: &name, AdminMode: &mode}

	got := patch.Apply(s)
	assert.Equal(t, "Alice Larsen", got.FullName)
	assert.True(t, got.AdminMode)
	assert.Equal(t, "Oslo", got.Location, "untouched fields survive")
	assert.Equal(t, "u1", got.ID)
}

func TestSessionPatch_Apply_CanClearPointerFields(t *testing.T) {
	s := Session{PendingRequest: &PendingMembershipRequest{ID: "r1", Type: TierKeyAccess}}

	var cleared *PendingMembershipRequest
	got := SessionPatch{PendingRequest: &cleared}.Apply(s)
	assert.Nil(t, got.PendingRequest)
}

func TestValidInterest(t *testing.T) {
	assert.True(t, ValidInterest(InterestCreating))
	assert.False(t, ValidInterest(Interest("gaming")))
}
