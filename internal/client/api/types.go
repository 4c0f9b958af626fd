package api

// Wire DTOs. Only the profile shape needs real normalization (see
// profile.go); list endpoints already match the normalized models.

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// wireMembership carries dates as "YYYY-MM-DD" strings.
type wireMembership struct {
	MembershipType string `json:"membership_type"`
	StartDate      string `json:"start_date"`
}

type wirePendingRequest struct {
	ID             string `json:"id"`
	MembershipType string `json:"membership_type"`
}

// wireProfileDetails holds the free-form profile fields. Older backend
// versions nested these under "profile" instead of "profile_details".
type wireProfileDetails struct {
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
}

type wireProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`

	CurrentMembership        *wireMembership     `json:"current_membership"`
	PendingMembershipRequest *wirePendingRequest `json:"pending_membership_request"`
	MembershipHistory        []wireMembership    `json:"membership_history"`
	CurrentInterests         []string            `json:"current_interests"`

	ProfileDetails *wireProfileDetails `json:"profile_details"`
	// Legacy field name still emitted by older backend deployments.
	Profile *wireProfileDetails `json:"profile"`
}
