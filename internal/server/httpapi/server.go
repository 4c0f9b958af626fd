// Package httpapi exposes the development server's REST surface. The routes
// and JSON shapes match what the client expects; handlers stay thin and
// delegate to the store.
package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/collectivehq/collective/internal/common"
	"github.com/collectivehq/collective/internal/logging"
	"github.com/collectivehq/collective/internal/server/auth"
	"github.com/collectivehq/collective/internal/server/store"
)

const userIDKey = "userID"

type Server struct {
	store     *store.Memory
	log       logging.Logger
	secret    []byte
	accessTTL time.Duration
}

func NewServer(st *store.Memory, log logging.Logger, secret []byte, accessTTL time.Duration) *Server {
	return &Server{store: st, log: log, secret: secret, accessTTL: accessTTL}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health/", s.health)
	r.POST("/auth/token/", s.issueTokens)
	r.POST("/auth/token/refresh/", s.refreshToken)

	authed := r.Group("/", s.requireAuth)
	{
		authed.GET("/auth/profile/", s.getProfile)
		authed.PUT("/auth/profile/", s.updateProfile)

		authed.GET("/events/", s.listEvents)
		authed.POST("/events/:id/rsvp/", s.rsvp)

		authed.GET("/benefits/", s.listBenefits)
		authed.POST("/benefits/:id/redeem/", s.redeem)

		authed.GET("/library/", s.listLibrary)
		authed.PUT("/library/:id/progress/", s.setProgress)

		authed.POST("/membership/requests/", s.createMembershipRequest)
		authed.DELETE("/membership/requests/:id/", s.cancelMembershipRequest)

		admin := authed.Group("/admin", s.requireAdmin)
		{
			admin.GET("/membership-requests/", s.listMembershipRequests)
			admin.POST("/membership-requests/:id/approve/", s.approveMembershipRequest)
			admin.POST("/membership-requests/:id/decline/", s.declineMembershipRequest)
		}
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireAuth validates the bearer token and stashes the user id in the gin
// context. Expired and malformed tokens both come back as 401; the client
// treats them the same.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader(common.AuthorizationHeader)
	if !strings.HasPrefix(header, common.BearerPrefix) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "missing bearer token"})
		return
	}

	userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(header, common.BearerPrefix), s.secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid or expired token"})
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

func (s *Server) requireAdmin(c *gin.Context) {
	u, err := s.store.User(c.Request.Context(), c.GetString(userIDKey))
	if err != nil || !(u.IsStaff || u.IsSuperuser) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "admin role required"})
		return
	}
	c.Next()
}

func (s *Server) currentUser(c *gin.Context) (*store.User, bool) {
	u, err := s.store.User(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "unknown user"})
		return nil, false
	}
	return u, true
}

// abortStoreErr maps store errors onto HTTP statuses.
func abortStoreErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "not found"})
	case errors.Is(err, common.ErrAlreadyExists):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"detail": "already exists"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}
