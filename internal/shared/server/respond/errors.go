package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/telemetry"
)

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error aborts with {"error":{code,message,details}} and logs it, at error
// level for 5xx and warn otherwise.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := telemetry.FromContext(c.Request.Context(), map[string]any{
		"status":  status,
		"code":    code,
		"message": message,
		"route":   c.FullPath(),
		"method":  c.Request.Method,
	})
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

func BadRequest(c *gin.Context, message string, details any) {
	Error(c, http.StatusBadRequest, "invalid_request", message, details)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "not_found", message, nil)
}

// GenerationFailed reports a language model failure without provider internals.
func GenerationFailed(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, "generation_failed", message, nil)
}

func Internal(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, "internal_error", message, nil)
}
