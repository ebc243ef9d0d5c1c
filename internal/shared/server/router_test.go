package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/services/health"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

type staticVerifier struct{}

func (staticVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	var claims auth.Claims
	claims.Subject = "sub-1"
	return claims, nil
}

type echoHandler struct{}

func (echoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", func(c *gin.Context) {
		respond.OK(c, gin.H{"subject": middleware.UserIDFromContext(c)})
	})
	rg.POST("/cover-letters", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
}

type publicHandler struct{}

func (publicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", func(c *gin.Context) {
		c.Status(http.StatusFound)
	})
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return NewRouter(RouterDeps{
		Config:   config.Config{Env: "test"},
		Verifier: staticVerifier{},
		Health:   health.NewService(nil, nil, "gemini"),
		Limiter:  middleware.NewRateLimiter(func() time.Time { return now }),
		Public:   []RouteRegistrar{publicHandler{}},
		Handlers: []RouteRegistrar{echoHandler{}},
	})
}

func TestRouterAuthBoundaries(t *testing.T) {
	r := newTestRouter()
	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{name: "health is public", path: "/api/v1/health", want: http.StatusOK},
		{name: "metrics is public", path: "/metrics", want: http.StatusOK},
		{name: "oauth start is public", path: "/api/v1/auth/google/start", want: http.StatusFound},
		{name: "me requires token", path: "/api/v1/me", want: http.StatusUnauthorized},
		{name: "me rejects bad token", path: "/api/v1/me", token: "bad", want: http.StatusUnauthorized},
		{name: "me with token", path: "/api/v1/me", token: "good", want: http.StatusOK},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)
			if resp.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestRouterLimitsGenerationRoutes(t *testing.T) {
	r := newTestRouter()
	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cover-letters", nil)
		req.Header.Set("Authorization", "Bearer good")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	for i := 0; i < 5; i++ {
		if codes[i] != http.StatusOK {
			t.Fatalf("request %d expected 200, got %v", i+1, codes)
		}
	}
	if codes[5] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected default group unaffected, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":8080", ":9000": ":9000", "3000": ":3000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
