// Package guard decides what a screen may show before the session is known:
// it drives session initialization and maps the outcome onto a small state
// machine consumed by the UI layer.
package guard

import (
	"context"
	"errors"

	"github.com/collectivehq/collective/internal/client/access"
	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/tokens"
	"github.com/collectivehq/collective/internal/common"
)

// State is the route guard's decision.
type State int

const (
	// Loading means session initialization is still in flight. Resolve never
	// returns it; it is the state callers should assume before Resolve
	// completes.
	Loading State = iota

	// Unauthorized: no credentials, or the profile fetch failed with an
	// authorization error. Show the sign-in entry point.
	Unauthorized

	// NeedsProfileCompletion: signed in, not an admin, and the profile has
	// no full name yet. Show the blocking profile-completion prompt.
	NeedsProfileCompletion

	// Authorized: render the requested screen.
	Authorized
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Unauthorized:
		return "unauthorized"
	case NeedsProfileCompletion:
		return "needs_profile_completion"
	case Authorized:
		return "authorized"
	}
	return "unknown"
}

// Sessions is the session-store surface the guard consumes.
type Sessions interface {
	Initialize(ctx context.Context) error
	Current() models.Session
}

type Guard struct {
	sessions Sessions
	tokens   tokens.Store
}

func New(sessions Sessions, toks tokens.Store) *Guard {
	return &Guard{sessions: sessions, tokens: toks}
}

// Resolve initializes the session and returns the resulting state. A profile
// fetch failing with an authorization error resolves to Unauthorized instead
// of propagating, so a dead session cannot wedge the UI in a retry loop.
// Non-auth failures (network, server) are returned for the caller's own
// retry affordance.
func (g *Guard) Resolve(ctx context.Context) (State, error) {
	acc, err := g.tokens.Get(ctx, tokens.Access)
	if err != nil {
		return Unauthorized, err
	}
	refresh, err := g.tokens.Get(ctx, tokens.Refresh)
	if err != nil {
		return Unauthorized, err
	}
	if acc == "" && refresh == "" && g.sessions.Current().IsEmpty() {
		return Unauthorized, nil
	}

	if err := g.sessions.Initialize(ctx); err != nil {
		if isAuthError(err) {
			return Unauthorized, nil
		}
		return Unauthorized, err
	}

	return g.decide(g.sessions.Current()), nil
}

func (g *Guard) decide(s models.Session) State {
	if !access.IsAuthenticated(s) {
		return Unauthorized
	}
	if !s.IsAdmin && s.FullName == "" {
		return NeedsProfileCompletion
	}
	return Authorized
}

func isAuthError(err error) bool {
	return errors.Is(err, api.ErrAuthExpired) ||
		errors.Is(err, api.ErrRefreshFailed) ||
		errors.Is(err, common.ErrUnauthorized)
}
