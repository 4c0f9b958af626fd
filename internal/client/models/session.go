// Package models defines the normalized domain types the client works with.
// Raw wire shapes from the backend are mapped into these types once, at the
// API boundary; everything above it sees only the normalized form.
package models

import (
	"sort"
	"time"
)

// MembershipTier orders members by access breadth. Tiers gate visibility of
// events, content and benefits.
type MembershipTier string

const (
	TierCommunity         MembershipTier = "community"
	TierKeyAccess         MembershipTier = "key_access"
	TierCreativeWorkspace MembershipTier = "creative_workspace"
)

// tierRank maps tiers onto their ordering. Unknown values rank as community.
var tierRank = map[MembershipTier]int{
	TierCommunity:         0,
	TierKeyAccess:         1,
	TierCreativeWorkspace: 2,
}

// Rank returns the tier's position in the access ordering. Any unknown or
// empty tier ranks as community.
func (t MembershipTier) Rank() int {
	return tierRank[t]
}

// Valid reports whether t is one of the known tiers.
func (t MembershipTier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

// Interest is one of a fixed vocabulary of member focus areas.
type Interest string

const (
	InterestCaring       Interest = "caring"
	InterestSharing      Interest = "sharing"
	InterestCreating     Interest = "creating"
	InterestExperiencing Interest = "experiencing"
	InterestWorking      Interest = "working"
)

// Interests lists the full vocabulary in display order.
var Interests = []Interest{
	InterestCaring,
	InterestSharing,
	InterestCreating,
	InterestExperiencing,
	InterestWorking,
}

// ValidInterest reports whether s belongs to the vocabulary.
func ValidInterest(s Interest) bool {
	for _, i := range Interests {
		if i == s {
			return true
		}
	}
	return false
}

// Membership is one granted membership period.
type Membership struct {
	Type      MembershipTier `json:"membership_type"`
	StartDate time.Time      `json:"start_date"`
}

// PendingMembershipRequest is an upgrade request awaiting an admin decision.
// At most one exists per member; the backend owns its lifecycle and the
// client only ever reflects what the backend returned.
type PendingMembershipRequest struct {
	ID   string         `json:"id"`
	Type MembershipTier `json:"membership_type"`
}

// Session is the authenticated member profile the whole client keys off.
// The zero value means "no session".
type Session struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`

	IsAdmin   bool `json:"is_admin"`
	AdminMode bool `json:"admin_mode"`

	CurrentMembership *Membership               `json:"current_membership,omitempty"`
	PendingRequest    *PendingMembershipRequest `json:"pending_membership_request,omitempty"`
	History           []Membership              `json:"membership_history,omitempty"`

	Interests []Interest `json:"interests,omitempty"`
}

// IsEmpty reports whether no one is signed in.
func (s Session) IsEmpty() bool {
	return s.ID == "" && s.Email == ""
}

// Tier resolves the member's effective tier. Absent or unknown membership
// resolves to community; this default applies everywhere tier is branched on.
func (s Session) Tier() MembershipTier {
	if s.CurrentMembership != nil && s.CurrentMembership.Type.Valid() {
		return s.CurrentMembership.Type
	}
	return TierCommunity
}

// MemberSince returns the start date of the earliest membership on record.
// The backend does not guarantee history order, so it is sorted here.
func (s Session) MemberSince() (time.Time, bool) {
	if len(s.History) == 0 {
		return time.Time{}, false
	}
	h := make([]Membership, len(s.History))
	copy(h, s.History)
	sort.Slice(h, func(i, j int) bool { return h[i].StartDate.Before(h[j].StartDate) })
	return h[0].StartDate, true
}

// HasInterest reports whether the member lists the given interest.
func (s Session) HasInterest(i Interest) bool {
	for _, cur := range s.Interests {
		if cur == i {
			return true
		}
	}
	return false
}

// SessionPatch is a shallow-merge update to a Session. Nil fields are left
// untouched; non-nil fields replace the current value.
type SessionPatch struct {
	FullName    *string
	PhoneNumber *string
	Location    *string
	Bio         *string
	AdminMode   *bool
	Interests   *[]Interest

	CurrentMembership **Membership
	PendingRequest    **PendingMembershipRequest
	History           *[]Membership
}

// Apply merges p into s and returns the result.
func (p SessionPatch) Apply(s Session) Session {
	if p.FullName != nil {
		s.FullName = *p.FullName
	}
	if p.PhoneNumber != nil {
		s.PhoneNumber = *p.PhoneNumber
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Bio != nil {
		s.Bio = *p.Bio
	}
	if p.AdminMode != nil {
		s.AdminMode = *p.AdminMode
	}
	if p.Interests != nil {
		s.Interests = *p.Interests
	}
	if p.CurrentMembership != nil {
		s.CurrentMembership = *p.CurrentMembership
	}
	if p.PendingRequest != nil {
		s.PendingRequest = *p.PendingRequest
	}
	if p.History != nil {
		s.History = *p.History
	}
	return s
}
