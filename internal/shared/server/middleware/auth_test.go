package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"career-backend/internal/shared/auth"
)

type fakeVerifier map[string]auth.Claims

func (f fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	claims, ok := f[token]
	if !ok {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return claims, nil
}

func testVerifier() fakeVerifier {
	return fakeVerifier{
		"good": {Email: "ada@example.com", RegisteredClaims: jwt.RegisteredClaims{Subject: "user_1"}},
	}
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(testVerifier()))
	router.OPTIONS("/api/v1/cover-letters", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cover-letters", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(testVerifier(), "/api/v1/health"))
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserIDFromContext(c), "email": UserEmailFromContext(c)})
	}
	router.GET("/api/v1/resume", handler)
	router.GET("/api/v1/health", handler)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "valid token", path: "/api/v1/resume", header: "Bearer good", want: http.StatusOK},
		{name: "missing header", path: "/api/v1/resume", want: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/api/v1/resume", header: "Basic good", want: http.StatusUnauthorized},
		{name: "empty bearer", path: "/api/v1/resume", header: "Bearer ", want: http.StatusUnauthorized},
		{name: "unknown token", path: "/api/v1/resume", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "public path", path: "/api/v1/health", want: http.StatusOK},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, resp.Code, resp.Body.String())
			}
		})
	}
}
