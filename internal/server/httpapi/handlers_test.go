package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectivehq/collective/internal/logging"
	"github.com/collectivehq/collective/internal/server/auth"
	"github.com/collectivehq/collective/internal/server/store"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewServer(store.NewMemory(), log, testSecret, time.Minute).Router()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email string) (access, refresh string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/token/", "",
		map[string]string{"username": email, "password": "password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Access)
	require.NotEmpty(t, out.Refresh)
	return out.Access, out.Refresh
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIssueTokens_BadCredentials(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/token/", "",
		map[string]string{"username": "member@collective.test", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/token/", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshToken(t *testing.T) {
	r := newTestRouter(t)
	_, refresh := login(t, r, "member@collective.test")

	w := doJSON(t, r, http.MethodPost, "/auth/token/refresh/", "",
		map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Access)

	w = doJSON(t, r, http.MethodPost, "/auth/token/refresh/", "",
		map[string]string{"refresh": "bogus"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/auth/profile/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired, err := auth.GenerateToken("whatever", testSecret, -time.Second)
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodGet, "/auth/profile/", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfile_Shape(t *testing.T) {
	r := newTestRouter(t)
	access, _ := login(t, r, "member@collective.test")

	w := doJSON(t, r, http.MethodGet, "/auth/profile/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out profileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Maya Member", out.FullName)
	assert.Equal(t, "member@collective.test", out.Email)
	assert.False(t, out.IsStaff)
	require.NotNil(t, out.CurrentMembership)
	assert.Equal(t, "key_access", out.CurrentMembership.MembershipType)
	require.NotNil(t, out.ProfileDetails)
	assert.Equal(t, "Amsterdam", out.ProfileDetails.Location)
	assert.ElementsMatch(t, []string{"caring", "creating"}, out.CurrentInterests)
}

func TestUpdateProfile(t *testing.T) {
	r := newTestRouter(t)
	access, _ := login(t, r, "member@collective.test")

	w := doJSON(t, r, http.MethodPut, "/auth/profile/", access, map[string]any{
		"full_name": "Maya Renamed",
		"interests_update": map[string]any{
			"added":   []string{"working"},
			"removed": []string{"creating"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out profileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Maya Renamed", out.FullName)
	assert.Equal(t, "Amsterdam", out.ProfileDetails.Location)
	assert.ElementsMatch(t, []string{"caring", "working"}, out.CurrentInterests)
}

func TestUpdateProfile_UnknownInterest(t *testing.T) {
	r := newTestRouter(t)
	access, _ := login(t, r, "member@collective.test")

	w := doJSON(t, r, http.MethodPut, "/auth/profile/", access, map[string]any{
		"interests_update": map[string]any{"added": []string{"gardening"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventsAndRSVP(t *testing.T) {
	r := newTestRouter(t)
	access, _ := login(t, r, "member@collective.test")

	w := doJSON(t, r, http.MethodPost, "/events/ev-open-day/rsvp/", access,
		map[string]bool{"attending": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/events/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var events []eventDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.NotEmpty(t, events)

	byID := map[string]eventDTO{}
	for _, e := range events {
		byID[e.ID] = e
	}
	assert.True(t, byID["ev-open-day"].Attending)
	assert.False(t, byID["ev-members-dinner"].Attending)
}

func TestSetProgress_Validation(t *testing.T) {
	r := newTestRouter(t)
	access, _ := login(t, r, "member@collective.test")

	w := doJSON(t, r, http.MethodPut, "/library/ct-welcome/progress/", access,
		map[string]int{"progress_percent": 101})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/library/ct-welcome/progress/", access,
		map[string]int{"progress_percent": 55})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/library/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []contentItemDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	for _, i := range items {
		if i.ID == "ct-welcome" {
			assert.Equal(t, 55, i.ProgressPercent)
		}
	}
}

func TestMembershipRequestFlow(t *testing.T) {
	r := newTestRouter(t)
	access, _ := login(t, r, "member@collective.test")

	w := doJSON(t, r, http.MethodPost, "/membership/requests/", access,
		map[string]string{"membership_type": "platinum"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/membership/requests/", access,
		map[string]string{"membership_type": "creative_workspace"})
	require.Equal(t, http.StatusCreated, w.Code)

	var req pendingRequestDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &req))
	require.NotEmpty(t, req.ID)

	w = doJSON(t, r, http.MethodPost, "/membership/requests/", access,
		map[string]string{"membership_type": "creative_workspace"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/membership/requests/"+req.ID+"/", access, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/membership/requests/"+req.ID+"/", access, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	r := newTestRouter(t)
	memberAccess, _ := login(t, r, "member@collective.test")
	adminAccess, _ := login(t, r, "admin@collective.test")

	// Non-admins never reach the admin surface.
	w := doJSON(t, r, http.MethodGet, "/admin/membership-requests/", memberAccess, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/membership/requests/", memberAccess,
		map[string]string{"membership_type": "creative_workspace"})
	require.Equal(t, http.StatusCreated, w.Code)

	var req pendingRequestDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &req))

	w = doJSON(t, r, http.MethodGet, "/admin/membership-requests/", adminAccess, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pending []requestViewDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, req.ID, pending[0].ID)
	assert.Equal(t, "Maya Member", pending[0].MemberName)
	assert.Equal(t, "creative_workspace", pending[0].RequestedTier)

	w = doJSON(t, r, http.MethodPost, "/admin/membership-requests/"+req.ID+"/approve/", adminAccess, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/auth/profile/", memberAccess, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile profileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.NotNil(t, profile.CurrentMembership)
	assert.Equal(t, "creative_workspace", profile.CurrentMembership.MembershipType)
	assert.Nil(t, profile.PendingMembershipRequest)
}
