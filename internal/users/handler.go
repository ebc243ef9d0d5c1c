package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me/profile", h.updateProfile)
	rg.GET("/me/onboarding", h.onboarding)
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Internal(c, "service unavailable")
		return
	}
	user, err := h.Svc.UpsertFromIdentity(c.Request.Context(), Identity{
		Subject: middleware.UserIDFromContext(c),
		Email:   middleware.UserEmailFromContext(c),
		Name:    middleware.UserNameFromContext(c),
		Picture: middleware.UserPictureFromContext(c),
	})
	if err != nil {
		RespondError(c, err, "failed to load user")
		return
	}
	c.Set(middleware.ResourceIDKey, user.ID)
	respond.OK(c, user)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid JSON body", nil)
		return
	}
	user, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		RespondError(c, err, "failed to update profile")
		return
	}
	c.Set(middleware.ResourceIDKey, user.ID)
	respond.OK(c, user)
}

func (h *Handler) onboarding(c *gin.Context) {
	onboarded, err := h.Svc.OnboardingStatus(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		RespondError(c, err, "failed to check onboarding status")
		return
	}
	respond.OK(c, gin.H{"isOnboarded": onboarded})
}

// RespondError maps user resolution failures onto the error envelope.
func RespondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "user not found")
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(c, err.Error(), nil)
	default:
		respond.Internal(c, fallback)
	}
}
