package coverletters

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
	rg.POST("/cover-letters", h.generate)
	rg.GET("/cover-letters", h.list)
	rg.GET("/cover-letters/:id", h.get)
	rg.DELETE("/cover-letters/:id", h.delete)
}

func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid JSON body", nil)
		return
	}
	letter, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err, "failed to generate cover letter")
		return
	}
	c.Set(middleware.ResourceIDKey, letter.ID)
	respond.Created(c, letter)
}

func (h *Handler) list(c *gin.Context) {
	letters, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to list cover letters")
		return
	}
	respond.OK(c, gin.H{"items": letters})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	letter, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.fail(c, err, "failed to load cover letter")
		return
	}
	respond.OK(c, letter)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		h.fail(c, err, "failed to delete cover letter")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(c, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "cover letter not found")
	case errors.Is(err, ErrGenerationFailed):
		respond.GenerationFailed(c, ErrGenerationFailed.Error())
	default:
		users.RespondError(c, err, fallback)
	}
}
