package models

import "time"

// Visibility describes who may see a tiered resource. Public resources are
// visible to everyone regardless of tier; otherwise RequiredTier sets the
// minimum tier.
type Visibility struct {
	Public       bool
	RequiredTier MembershipTier
}

// Tiered is implemented by every resource whose visibility is gated on
// membership tier.
type Tiered interface {
	Visibility() Visibility
}

// Event is a community event members can RSVP to.
type Event struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Location           string         `json:"location"`
	StartsAt           time.Time      `json:"starts_at"`
	IsPublic           bool           `json:"is_public"`
	MembershipRequired MembershipTier `json:"membership_required"`
	Attending          bool           `json:"attending"`
}

func (e Event) Visibility() Visibility {
	return Visibility{Public: e.IsPublic, RequiredTier: e.MembershipRequired}
}

// Benefit is a partner offer from the benefits catalog.
type Benefit struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Partner            string         `json:"partner"`
	IsPublic           bool           `json:"is_public"`
	MembershipRequired MembershipTier `json:"membership_required"`
}

func (b Benefit) Visibility() Visibility {
	return Visibility{Public: b.IsPublic, RequiredTier: b.MembershipRequired}
}

// ContentItem is an entry in the digital content library.
type ContentItem struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Kind               string         `json:"kind"`
	IsPublic           bool           `json:"is_public"`
	MembershipRequired MembershipTier `json:"membership_required"`
	ProgressPercent    int            `json:"progress_percent"`
}

func (c ContentItem) Visibility() Visibility {
	return Visibility{Public: c.IsPublic, RequiredTier: c.MembershipRequired}
}

// MembershipRequestView is what admins see when reviewing upgrade requests.
type MembershipRequestView struct {
	ID            string         `json:"id"`
	MemberID      string         `json:"member_id"`
	MemberName    string         `json:"member_name"`
	MemberEmail   string         `json:"member_email"`
	RequestedTier MembershipTier `json:"requested_tier"`
	RequestedAt   time.Time      `json:"requested_at"`
}
