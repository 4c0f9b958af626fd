// Package store holds the development server's state. Everything lives in
// memory behind one mutex and is reseeded on every start; the devserver is a
// fixture for exercising the client, not a durable backend.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/collectivehq/collective/internal/common"
)

type Membership struct {
	Type      string
	StartDate time.Time
}

type MembershipRequest struct {
	ID          string
	UserID      string
	Tier        string
	RequestedAt time.Time
}

type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash []byte
	PhoneNumber  string
	Location     string
	Bio          string
	IsStaff      bool
	IsSuperuser  bool
	Interests    []string

	Memberships []Membership
	Pending     *MembershipRequest

	RSVPs    map[string]bool
	Progress map[string]int
	Redeemed map[string]bool
}

// CurrentMembership returns the most recent membership, or nil for members
// still on the default community tier.
func (u *User) CurrentMembership() *Membership {
	if len(u.Memberships) == 0 {
		return nil
	}
	latest := u.Memberships[0]
	for _, m := range u.Memberships[1:] {
		if m.StartDate.After(latest.StartDate) {
			latest = m
		}
	}
	return &latest
}

type Event struct {
	ID                 string
	Title              string
	Description        string
	Location           string
	StartsAt           time.Time
	IsPublic           bool
	MembershipRequired string
}

type Benefit struct {
	ID                 string
	Title              string
	Description        string
	Partner            string
	IsPublic           bool
	MembershipRequired string
}

type ContentItem struct {
	ID                 string
	Title              string
	Kind               string
	IsPublic           bool
	MembershipRequired string
}

// ProfilePatch mirrors the partial profile update the API accepts. Nil
// fields stay unchanged.
type ProfilePatch struct {
	FullName    *string
	PhoneNumber *string
	Location    *string
	Bio         *string
	// Interest diff; nil slices mean no interest change at all.
	AddInterests    []string
	RemoveInterests []string
}

type Memory struct {
	mu sync.RWMutex

	users         map[string]*User
	usersByEmail  map[string]string
	refreshTokens map[string]string
	events        []Event
	benefits      []Benefit
	library       []ContentItem
}

func NewMemory() *Memory {
	m := &Memory{
		users:         make(map[string]*User),
		usersByEmail:  make(map[string]string),
		refreshTokens: make(map[string]string),
	}
	m.seed()
	return m
}

// Authenticate checks credentials and returns the user's id.
func (m *Memory) Authenticate(ctx context.Context, email, password string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usersByEmail[strings.ToLower(email)]
	if !ok {
		return "", common.ErrInvalidCredentials
	}
	u := m.users[id]
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return "", common.ErrInvalidCredentials
	}
	return u.ID, nil
}

func (m *Memory) CreateRefreshToken(ctx context.Context, userID string) (string, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", common.ErrInternal
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshTokens[token] = userID
	return token, nil
}

func (m *Memory) UserIDForRefreshToken(ctx context.Context, token string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.refreshTokens[token]
	if !ok {
		return "", common.ErrInvalidToken
	}
	return id, nil
}

// User returns a deep-enough copy; maps stay shared but handlers only read
// them under subsequent calls, so mutation goes through store methods.
func (m *Memory) User(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}

	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Location != nil {
		u.Location = *patch.Location
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}

	for _, r := range patch.RemoveInterests {
		for i, cur := range u.Interests {
			if cur == r {
				u.Interests = append(u.Interests[:i], u.Interests[i+1:]...)
				break
			}
		}
	}
	for _, a := range patch.AddInterests {
		found := false
		for _, cur := range u.Interests {
			if cur == a {
				found = true
				break
			}
		}
		if !found {
			u.Interests = append(u.Interests, a)
		}
	}

	cp := *u
	return &cp, nil
}

func (m *Memory) Events(ctx context.Context) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Event(nil), m.events...)
}

func (m *Memory) SetRSVP(ctx context.Context, userID, eventID string, attending bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	for _, e := range m.events {
		if e.ID == eventID {
			u.RSVPs[eventID] = attending
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *Memory) Benefits(ctx context.Context) []Benefit {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Benefit(nil), m.benefits...)
}

func (m *Memory) Redeem(ctx context.Context, userID, benefitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	for _, b := range m.benefits {
		if b.ID == benefitID {
			u.Redeemed[benefitID] = true
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *Memory) Library(ctx context.Context) []ContentItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ContentItem(nil), m.library...)
}

func (m *Memory) SetProgress(ctx context.Context, userID, contentID string, percent int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	for _, c := range m.library {
		if c.ID == contentID {
			u.Progress[contentID] = percent
			return nil
		}
	}
	return common.ErrNotFound
}

// CreateMembershipRequest files an upgrade request. A member can hold at
// most one pending request at a time.
func (m *Memory) CreateMembershipRequest(ctx context.Context, userID, tier string) (*MembershipRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	if u.Pending != nil {
		return nil, common.ErrAlreadyExists
	}

	req := &MembershipRequest{
		ID:          uuid.NewString(),
		UserID:      userID,
		Tier:        tier,
		RequestedAt: time.Now().UTC(),
	}
	u.Pending = req
	cp := *req
	return &cp, nil
}

func (m *Memory) CancelMembershipRequest(ctx context.Context, userID, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	if u.Pending == nil || u.Pending.ID != requestID {
		return common.ErrNotFound
	}
	u.Pending = nil
	return nil
}

// PendingRequests lists every open request across all members, oldest first.
func (m *Memory) PendingRequests(ctx context.Context) []MembershipRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []MembershipRequest
	for _, u := range m.users {
		if u.Pending != nil {
			out = append(out, *u.Pending)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out
}

// ApproveRequest grants the requested tier as a new membership record and
// clears the pending request.
func (m *Memory) ApproveRequest(ctx context.Context, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Pending != nil && u.Pending.ID == requestID {
			u.Memberships = append(u.Memberships, Membership{
				Type:      u.Pending.Tier,
				StartDate: time.Now().UTC(),
			})
			u.Pending = nil
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *Memory) DeclineRequest(ctx context.Context, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Pending != nil && u.Pending.ID == requestID {
			u.Pending = nil
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *Memory) addUser(u *User) {
	if u.RSVPs == nil {
		u.RSVPs = make(map[string]bool)
	}
	if u.Progress == nil {
		u.Progress = make(map[string]int)
	}
	if u.Redeemed == nil {
		u.Redeemed = make(map[string]bool)
	}
	m.users[u.ID] = u
	m.usersByEmail[strings.ToLower(u.Email)] = u.ID
}

func mustHash(password string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}

func (m *Memory) seed() {
	now := time.Now().UTC()

	m.addUser(&User{
		ID:           uuid.NewString(),
		Email:        "member@collective.test",
		FullName:     "Maya Member",
		PasswordHash: mustHash("password"),
		Location:     "Amsterdam",
		Interests:    []string{"caring", "creating"},
		Memberships: []Membership{
			{Type: "key_access", StartDate: now.AddDate(-1, 0, 0)},
		},
	})

	m.addUser(&User{
		ID:           uuid.NewString(),
		Email:        "new@collective.test",
		PasswordHash: mustHash("password"),
	})

	m.addUser(&User{
		ID:           uuid.NewString(),
		Email:        "admin@collective.test",
		FullName:     "Ada Admin",
		PasswordHash: mustHash("password"),
		IsStaff:      true,
		Memberships: []Membership{
			{Type: "creative_workspace", StartDate: now.AddDate(-2, 0, 0)},
		},
	})

	m.events = []Event{
		{
			ID:       "ev-open-day",
			Title:    "Open Day",
			Location: "The Commons",
			StartsAt: now.AddDate(0, 0, 7),
			IsPublic: true,
		},
		{
			ID:                 "ev-members-dinner",
			Title:              "Members Dinner",
			Location:           "The Kitchen",
			StartsAt:           now.AddDate(0, 0, 14),
			MembershipRequired: "key_access",
		},
		{
			ID:                 "ev-studio-night",
			Title:              "Studio Night",
			Location:           "Workshop Floor",
			StartsAt:           now.AddDate(0, 0, 21),
			MembershipRequired: "creative_workspace",
		},
	}

	m.benefits = []Benefit{
		{
			ID:       "bf-cafe-discount",
			Title:    "Cafe Discount",
			Partner:  "Corner Cafe",
			IsPublic: true,
		},
		{
			ID:                 "bf-gym-pass",
			Title:              "Gym Day Pass",
			Partner:            "City Gym",
			MembershipRequired: "key_access",
		},
	}

	m.library = []ContentItem{
		{
			ID:       "ct-welcome",
			Title:    "Welcome to Collective",
			Kind:     "video",
			IsPublic: true,
		},
		{
			ID:                 "ct-woodworking",
			Title:              "Woodworking Basics",
			Kind:               "course",
			MembershipRequired: "creative_workspace",
		},
	}
}
