package assessments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"career-backend/internal/llm/llmtest"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/server/middleware"
)

type tokenVerifier map[string]string

func (v tokenVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	subject, ok := v[token]
	if !ok {
		return auth.Claims{}, errors.New("bad token")
	}
	var claims auth.Claims
	claims.Subject = subject
	return claims, nil
}

func setupRouter(t *testing.T, replies ...llmtest.Reply) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newService(llmtest.NewProvider(replies...))
	r := gin.New()
	r.Use(middleware.Auth(tokenVerifier{"t1": "sub-1", "t9": "sub-9"}))
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func call(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestAssessmentRoutes(t *testing.T) {
	r := setupRouter(t, llmtest.Reply{Text: quizJSON})

	resp := call(r, http.MethodPost, "/api/v1/assessments/quiz", "t1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var quiz struct {
		Questions []Question `json:"questions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&quiz); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}

	answers := []string{quiz.Questions[0].CorrectAnswer, quiz.Questions[1].CorrectAnswer}
	resp = call(r, http.MethodPost, "/api/v1/assessments", "t1", SaveRequest{Questions: quiz.Questions, Answers: answers})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = call(r, http.MethodGet, "/api/v1/assessments", "t1", nil)
	var list struct {
		Items []Assessment `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].QuizScore != 100 {
		t.Fatalf("unexpected list %+v", list.Items)
	}
}

func TestAssessmentRouteErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		reply  llmtest.Reply
		want   int
	}{
		{name: "no token", method: http.MethodGet, path: "/api/v1/assessments", want: http.StatusUnauthorized},
		{name: "unknown user", method: http.MethodGet, path: "/api/v1/assessments", token: "t9", want: http.StatusNotFound},
		{name: "bad quiz output", method: http.MethodPost, path: "/api/v1/assessments/quiz", token: "t1", reply: llmtest.Reply{Text: "nope"}, want: http.StatusBadGateway},
		{name: "mismatched answers", method: http.MethodPost, path: "/api/v1/assessments", token: "t1", body: SaveRequest{Questions: sampleQuestions}, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.reply)
			if resp := call(r, tt.method, tt.path, tt.token, tt.body); resp.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, resp.Code, resp.Body.String())
			}
		})
	}
}
