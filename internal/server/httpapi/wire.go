package httpapi

import (
	"time"

	"github.com/collectivehq/collective/internal/server/store"
)

const dateLayout = "2006-01-02"

// The response DTOs below define the JSON contract the client parses.

type membershipDTO struct {
	MembershipType string `json:"membership_type"`
	StartDate      string `json:"start_date"`
}

type pendingRequestDTO struct {
	ID             string `json:"id"`
	MembershipType string `json:"membership_type"`
}

type profileDetailsDTO struct {
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
}

type profileDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`

	CurrentMembership        *membershipDTO     `json:"current_membership"`
	PendingMembershipRequest *pendingRequestDTO `json:"pending_membership_request"`
	MembershipHistory        []membershipDTO    `json:"membership_history"`
	CurrentInterests         []string           `json:"current_interests"`

	ProfileDetails *profileDetailsDTO `json:"profile_details"`
}

type eventDTO struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Location           string    `json:"location"`
	StartsAt           time.Time `json:"starts_at"`
	IsPublic           bool      `json:"is_public"`
	MembershipRequired string    `json:"membership_required"`
	Attending          bool      `json:"attending"`
}

type benefitDTO struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Partner            string `json:"partner"`
	IsPublic           bool   `json:"is_public"`
	MembershipRequired string `json:"membership_required"`
}

type contentItemDTO struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Kind               string `json:"kind"`
	IsPublic           bool   `json:"is_public"`
	MembershipRequired string `json:"membership_required"`
	ProgressPercent    int    `json:"progress_percent"`
}

type requestViewDTO struct {
	ID            string    `json:"id"`
	MemberID      string    `json:"member_id"`
	MemberName    string    `json:"member_name"`
	MemberEmail   string    `json:"member_email"`
	RequestedTier string    `json:"requested_tier"`
	RequestedAt   time.Time `json:"requested_at"`
}

func toProfileDTO(u *store.User) profileDTO {
	dto := profileDTO{
		ID:          u.ID,
		Username:    u.Email,
		FullName:    u.FullName,
		Email:       u.Email,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,

		MembershipHistory: []membershipDTO{},
		CurrentInterests:  append([]string{}, u.Interests...),

		ProfileDetails: &profileDetailsDTO{
			PhoneNumber: u.PhoneNumber,
			Location:    u.Location,
			Bio:         u.Bio,
		},
	}

	for _, m := range u.Memberships {
		dto.MembershipHistory = append(dto.MembershipHistory, membershipDTO{
			MembershipType: m.Type,
			StartDate:      m.StartDate.Format(dateLayout),
		})
	}
	if cur := u.CurrentMembership(); cur != nil {
		dto.CurrentMembership = &membershipDTO{
			MembershipType: cur.Type,
			StartDate:      cur.StartDate.Format(dateLayout),
		}
	}
	if u.Pending != nil {
		dto.PendingMembershipRequest = &pendingRequestDTO{
			ID:             u.Pending.ID,
			MembershipType: u.Pending.Tier,
		}
	}

	return dto
}
