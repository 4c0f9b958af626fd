// Package access derives visibility and permission decisions from a session
// snapshot. Everything here is a pure function: no I/O, no clock, no
// network, so feature code and tests can call these freely.
package access

import "github.com/collectivehq/collective/internal/client/models"

// IsAuthenticated reports whether anyone is signed in.
func IsAuthenticated(s models.Session) bool {
	return !s.IsEmpty()
}

// IsAdmin reports whether the member holds the admin role. Role alone does
// not unlock admin screens; see CanSeeAdminSurface.
func IsAdmin(s models.Session) bool {
	return IsAuthenticated(s) && s.IsAdmin
}

// CanSeeAdminSurface gates administrative screens on both the role and the
// explicit admin-mode toggle, so an admin browsing as a normal member sees
// no admin affordances.
func CanSeeAdminSurface(s models.Session) bool {
	return IsAdmin(s) && s.AdminMode
}

// Tier resolves the member's effective tier, defaulting to community.
func Tier(s models.Session) models.MembershipTier {
	return s.Tier()
}

// VisibleTo decides whether a tiered resource is visible to the member.
// Public resources are visible to everyone; admins see everything; otherwise
// the member's tier must rank at least the resource's required tier.
func VisibleTo(s models.Session, r models.Tiered) bool {
	v := r.Visibility()
	if v.Public {
		return true
	}
	if !IsAuthenticated(s) {
		return false
	}
	if IsAdmin(s) {
		return true
	}
	return Tier(s).Rank() >= v.RequiredTier.Rank()
}

// FilterVisible returns the subset of items the member may see, preserving
// order.
func FilterVisible[T models.Tiered](s models.Session, items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if VisibleTo(s, it) {
			out = append(out, it)
		}
	}
	return out
}

// membershipLabels maps tiers onto their display names.
var membershipLabels = map[models.MembershipTier]string{
	models.TierCommunity:         "Community",
	models.TierKeyAccess:         "Key Access",
	models.TierCreativeWorkspace: "Creative Workspace",
}

// MembershipLabel returns the display label for a tier. Unknown or absent
// tiers get the community label, consistent with how tier defaults
// everywhere else.
func MembershipLabel(t models.MembershipTier) string {
	if label, ok := membershipLabels[t]; ok {
		return label
	}
	return membershipLabels[models.TierCommunity]
}
