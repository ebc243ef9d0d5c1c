package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	sharedauth "career-backend/internal/shared/auth"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/users"
)

func TestAppendToken(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "http://localhost:3000/auth/done", want: "http://localhost:3000/auth/done?token=abc"},
		{name: "existing query", raw: "https://app.example.com/cb?next=%2Fdashboard", want: "https://app.example.com/cb?next=%2Fdashboard&token=abc"},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := appendToken(tt.raw, "abc")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("appendToken: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestStateStoreSingleUse(t *testing.T) {
	s := newStateStore()
	s.put("live", time.Now().Add(time.Minute))
	s.put("old", time.Now().Add(-time.Minute))

	if !s.consume("live") {
		t.Fatalf("expected live state to be accepted")
	}
	if s.consume("live") {
		t.Fatalf("expected state to be single use")
	}
	if s.consume("old") {
		t.Fatalf("expected expired state to be rejected")
	}
	if s.consume("never") {
		t.Fatalf("expected unknown state to be rejected")
	}
}

func TestIssueRecordsIdentityAndSigns(t *testing.T) {
	signer, err := sharedauth.NewHMACSigner("test-secret", "test")
	if err != nil {
		t.Fatalf("NewHMACSigner: %v", err)
	}
	userSvc := users.NewService(users.NewMemoryRepo(), &db.MemoryTx{}, nil, 0)
	svc := NewGoogleService(GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"}, signer, userSvc)

	token, err := svc.issue(context.Background(), googleUserInfo{Sub: "123", Email: "ada@example.com", Name: "Ada"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := signer.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "google:123" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	u, err := userSvc.Resolve(context.Background(), "google:123")
	if err != nil || u.Email != "ada@example.com" {
		t.Fatalf("expected recorded user, got %+v err=%v", u, err)
	}

	if _, err := svc.issue(context.Background(), googleUserInfo{}); err == nil {
		t.Fatalf("expected error for missing subject")
	}
}

func TestGoogleRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer, _ := sharedauth.NewHMACSigner("test-secret", "test")

	tests := []struct {
		name     string
		cfg      GoogleConfig
		path     string
		wantCode int
	}{
		{name: "start unconfigured", path: "/api/v1/auth/google/start", wantCode: http.StatusInternalServerError},
		{name: "start redirects", cfg: GoogleConfig{ClientID: "id", ClientSecret: "s", RedirectURL: "http://localhost/cb"}, path: "/api/v1/auth/google/start", wantCode: http.StatusFound},
		{name: "callback missing code", path: "/api/v1/auth/google/callback?state=x", wantCode: http.StatusBadRequest},
		{name: "callback unknown state", path: "/api/v1/auth/google/callback?state=x&code=y", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			NewGoogleService(tt.cfg, signer, nil).RegisterRoutes(r.Group("/api/v1"))
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if resp.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, resp.Code, resp.Body.String())
			}
			if resp.Code == http.StatusFound {
				loc, err := url.Parse(resp.Header().Get("Location"))
				if err != nil || loc.Query().Get("state") == "" || !strings.Contains(loc.Host, "google") {
					t.Fatalf("unexpected redirect %q", resp.Header().Get("Location"))
				}
			}
		})
	}
}
