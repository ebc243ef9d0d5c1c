package assessments

import (
	"errors"

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
	rg.POST("/assessments/quiz", h.quiz)
	rg.POST("/assessments", h.save)
	rg.GET("/assessments", h.list)
}

func (h *Handler) quiz(c *gin.Context) {
	questions, err := h.Svc.GenerateQuiz(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to generate quiz")
		return
	}
	respond.OK(c, gin.H{"questions": questions})
}

func (h *Handler) save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid JSON body", nil)
		return
	}
	assessment, err := h.Svc.SaveResult(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err, "failed to save quiz result")
		return
	}
	c.Set(middleware.ResourceIDKey, assessment.ID)
	respond.Created(c, assessment)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to list assessments")
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(c, err.Error(), nil)
	case errors.Is(err, ErrGenerationFailed):
		respond.GenerationFailed(c, ErrGenerationFailed.Error())
	default:
		users.RespondError(c, err, fallback)
	}
}
