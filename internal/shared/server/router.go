package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/services/health"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

const (
	apiPrefix       = "/api/v1"
	groupDefault    = "DEFAULT"
	groupGeneration = "GENERATION"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

type RouterDeps struct {
	Config   config.Config
	Verifier auth.Verifier
	Health   *health.Service
	Limiter  *middleware.RateLimiter
	// Public handlers are mounted without authentication under /api/v1/auth.
	Public   []RouteRegistrar
	Handlers []RouteRegistrar
}

// generationRoutes are the POST endpoints that call the language model or render PDFs.
var generationRoutes = map[string]bool{
	apiPrefix + "/resume/improve":   true,
	apiPrefix + "/resume/pdf":       true,
	apiPrefix + "/cover-letters":    true,
	apiPrefix + "/assessments/quiz": true,
	apiPrefix + "/assessments":      true,
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !config.IsDevLike(deps.Config.Env) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Verifier, apiPrefix+"/health", apiPrefix+"/auth/", "/metrics"),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: groupDefault,
			GroupFor:     rateLimitGroup,
			Limiter:      deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				groupDefault:    {Rate: 10, Burst: 30},
				groupGeneration: {Rate: 0.2, Burst: 5},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		st := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !st.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, st)
	})
	for _, h := range deps.Public {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}
	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}
	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && generationRoutes[strings.TrimSuffix(c.FullPath(), "/")] {
		return groupGeneration
	}
	return groupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
