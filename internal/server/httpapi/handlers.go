package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collectivehq/collective/internal/server/auth"
	"github.com/collectivehq/collective/internal/server/store"
)

func (s *Server) issueTokens(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	userID, err := s.store.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
		return
	}

	access, err := auth.GenerateToken(userID, s.secret, s.accessTTL)
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	refresh, err := s.store.CreateRefreshToken(c.Request.Context(), userID)
	if err != nil {
		abortStoreErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

func (s *Server) refreshToken(c *gin.Context) {
	var in struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "refresh is required"})
		return
	}

	userID, err := s.store.UserIDForRefreshToken(c.Request.Context(), in.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid refresh token"})
		return
	}

	access, err := auth.GenerateToken(userID, s.secret, s.accessTTL)
	if err != nil {
		abortStoreErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (s *Server) getProfile(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toProfileDTO(u))
}

var validInterests = map[string]bool{
	"caring":       true,
	"sharing":      true,
	"creating":     true,
	"experiencing": true,
	"working":      true,
}

func (s *Server) updateProfile(c *gin.Context) {
	var in struct {
		FullName    *string `json:"full_name"`
		PhoneNumber *string `json:"phone_number"`
		Location    *string `json:"location"`
		Bio         *string `json:"bio"`
		Interests   *struct {
			Added   []string `json:"added"`
			Removed []string `json:"removed"`
		} `json:"interests_update"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed profile update"})
		return
	}

	patch := store.ProfilePatch{
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		Location:    in.Location,
		Bio:         in.Bio,
	}
	if in.Interests != nil {
		for _, i := range append(in.Interests.Added, in.Interests.Removed...) {
			if !validInterests[i] {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "unknown interest: " + i})
				return
			}
		}
		patch.AddInterests = in.Interests.Added
		patch.RemoveInterests = in.Interests.Removed
	}

	u, err := s.store.UpdateProfile(c.Request.Context(), c.GetString(userIDKey), patch)
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileDTO(u))
}

func (s *Server) listEvents(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}

	out := []eventDTO{}
	for _, e := range s.store.Events(c.Request.Context()) {
		out = append(out, eventDTO{
			ID:                 e.ID,
			Title:              e.Title,
			Description:        e.Description,
			Location:           e.Location,
			StartsAt:           e.StartsAt,
			IsPublic:           e.IsPublic,
			MembershipRequired: e.MembershipRequired,
			Attending:          u.RSVPs[e.ID],
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) rsvp(c *gin.Context) {
	var in struct {
		Attending bool `json:"attending"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed rsvp"})
		return
	}

	if err := s.store.SetRSVP(c.Request.Context(), c.GetString(userIDKey), c.Param("id"), in.Attending); err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attending": in.Attending})
}

func (s *Server) listBenefits(c *gin.Context) {
	out := []benefitDTO{}
	for _, b := range s.store.Benefits(c.Request.Context()) {
		out = append(out, benefitDTO{
			ID:                 b.ID,
			Title:              b.Title,
			Description:        b.Description,
			Partner:            b.Partner,
			IsPublic:           b.IsPublic,
			MembershipRequired: b.MembershipRequired,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) redeem(c *gin.Context) {
	if err := s.store.Redeem(c.Request.Context(), c.GetString(userIDKey), c.Param("id")); err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redeemed": true})
}

func (s *Server) listLibrary(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}

	out := []contentItemDTO{}
	for _, item := range s.store.Library(c.Request.Context()) {
		out = append(out, contentItemDTO{
			ID:                 item.ID,
			Title:              item.Title,
			Kind:               item.Kind,
			IsPublic:           item.IsPublic,
			MembershipRequired: item.MembershipRequired,
			ProgressPercent:    u.Progress[item.ID],
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) setProgress(c *gin.Context) {
	var in struct {
		ProgressPercent *int `json:"progress_percent" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || *in.ProgressPercent < 0 || *in.ProgressPercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "progress_percent must be between 0 and 100"})
		return
	}

	if err := s.store.SetProgress(c.Request.Context(), c.GetString(userIDKey), c.Param("id"), *in.ProgressPercent); err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress_percent": *in.ProgressPercent})
}

func (s *Server) createMembershipRequest(c *gin.Context) {
	var in struct {
		MembershipType string `json:"membership_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "membership_type is required"})
		return
	}
	if in.MembershipType != "key_access" && in.MembershipType != "creative_workspace" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unknown membership type: " + in.MembershipType})
		return
	}

	req, err := s.store.CreateMembershipRequest(c.Request.Context(), c.GetString(userIDKey), in.MembershipType)
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, pendingRequestDTO{ID: req.ID, MembershipType: req.Tier})
}

func (s *Server) cancelMembershipRequest(c *gin.Context) {
	if err := s.store.CancelMembershipRequest(c.Request.Context(), c.GetString(userIDKey), c.Param("id")); err != nil {
		abortStoreErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listMembershipRequests(c *gin.Context) {
	out := []requestViewDTO{}
	for _, r := range s.store.PendingRequests(c.Request.Context()) {
		view := requestViewDTO{
			ID:            r.ID,
			MemberID:      r.UserID,
			RequestedTier: r.Tier,
			RequestedAt:   r.RequestedAt,
		}
		if u, err := s.store.User(c.Request.Context(), r.UserID); err == nil {
			view.MemberName = u.FullName
			view.MemberEmail = u.Email
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) approveMembershipRequest(c *gin.Context) {
	if err := s.store.ApproveRequest(c.Request.Context(), c.Param("id")); err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": true})
}

func (s *Server) declineMembershipRequest(c *gin.Context) {
	if err := s.store.DeclineRequest(c.Request.Context(), c.Param("id")); err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"declined": true})
}
