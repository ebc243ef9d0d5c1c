package insights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/insights", h.get)
}

func (h *Handler) get(c *gin.Context) {
	insight, err := h.Svc.GetForUser(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotOnboarded) {
			respond.Error(c, http.StatusConflict, "onboarding_required", "complete your profile first", nil)
			return
		}
		users.RespondError(c, err, "failed to load industry insights")
		return
	}
	c.Set(middleware.ResourceIDKey, insight.ID)
	respond.OK(c, insight)
}
