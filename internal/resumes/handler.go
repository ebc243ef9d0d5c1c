package resumes

import (
	"errors"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/util"
	"career-backend/internal/users"
	"career-backend/resume/model"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume", h.get)
	rg.PUT("/resume", h.save)
	rg.POST("/resume/preview", h.preview)
	rg.POST("/resume/pdf", h.pdf)
	rg.POST("/resume/improve", h.improve)
}

func (h *Handler) get(c *gin.Context) {
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to load resume")
		return
	}
	c.Set(middleware.ResourceIDKey, resume.ID)
	respond.OK(c, resume)
}

func (h *Handler) save(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "invalid JSON body", nil)
		return
	}
	resume, err := h.Svc.Save(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		h.fail(c, err, "failed to save resume")
		return
	}
	c.Set(middleware.ResourceIDKey, resume.ID)
	respond.OK(c, resume)
}

func (h *Handler) preview(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, "invalid JSON body", nil)
		return
	}
	out, err := h.Svc.Preview(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		h.fail(c, err, "failed to build preview")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) pdf(c *gin.Context) {
	var doc model.ResumeDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		respond.BadRequest(c, "invalid JSON body", nil)
		return
	}
	out, err := h.Svc.PDF(c.Request.Context(), middleware.UserIDFromContext(c), doc)
	if err != nil {
		h.fail(c, err, "failed to render pdf")
		return
	}
	name, err := util.SanitizeFileName(out.FileName)
	if err != nil {
		name = "resume.pdf"
	}
	respond.Attachment(c, name, "application/pdf", out.Bytes)
}

func (h *Handler) improve(c *gin.Context) {
	var req ImproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid JSON body", nil)
		return
	}
	improved, err := h.Svc.Improve(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err, "failed to improve content")
		return
	}
	respond.OK(c, gin.H{"improved": improved})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case IsClientError(err):
		respond.BadRequest(c, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "resume not found")
	case errors.Is(err, ErrGenerationFailed):
		respond.GenerationFailed(c, ErrGenerationFailed.Error())
	default:
		users.RespondError(c, err, fallback)
	}
}
