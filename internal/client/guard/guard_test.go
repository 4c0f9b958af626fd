package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/tokens"
)

// fakeSessions implements Sessions.
type fakeSessions struct {
	session  models.Session
	initErr  error
	initRuns int
}

func (f *fakeSessions) Initialize(ctx context.Context) error {
	f.initRuns++
	return f.initErr
}

func (f *fakeSessions) Current() models.Session { return f.session }

func withAccessToken(t *testing.T) tokens.Store {
	t.Helper()
	s := tokens.NewMemoryStore()
	require.NoError(t, s.Set(context.Background(), tokens.Access, "tok"))
	return s
}

func TestResolve_NoCredentialsNoSession(t *testing.T) {
	g := New(&fakeSessions{}, tokens.NewMemoryStore())

	state, err := g.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Unauthorized, state)
}

func TestResolve_Authorized(t *testing.T) {
	sessions := &fakeSessions{session: models.Session{ID: "u1", FullName: "Alice"}}
	g := New(sessions, withAccessToken(t))

	state, err := g.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Authorized, state)
	assert.Equal(t, 1, sessions.initRuns)
}

func TestResolve_NeedsProfileCompletion(t *testing.T) {
	sessions := &fakeSessions{session: models.Session{ID: "u1", Email: "a@x"}}
	g := New(sessions, withAccessToken(t))

	state, err := g.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NeedsProfileCompletion, state)
}

func TestResolve_AdminSkipsProfileCompletion(t *testing.T) {
	sessions := &fakeSessions{session: models.Session{ID: "u1", IsAdmin: true}}
	g := New(sessions, withAccessToken(t))

	state, err := g.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Authorized, state)
}

func TestResolve_AuthErrorFallsBackToUnauthorized(t *testing.T) {
	for _, initErr := range []error{api.ErrRefreshFailed, api.ErrAuthExpired} {
		sessions := &fakeSessions{initErr: initErr}
		g := New(sessions, withAccessToken(t))

		state, err := g.Resolve(context.Background())
		require.NoError(t, err, "auth failures are absorbed, not propagated")
		assert.Equal(t, Unauthorized, state)
	}
}

func TestResolve_NonAuthErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	sessions := &fakeSessions{initErr: boom}
	g := New(sessions, withAccessToken(t))

	state, err := g.Resolve(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Unauthorized, state)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "authorized", Authorized.String())
	assert.Equal(t, "unknown", State(99).String())
}
