package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/assessments"
	googleauth "career-backend/internal/auth"
	"career-backend/internal/coverletters"
	"career-backend/internal/insights"
	"career-backend/internal/llm"
	"career-backend/internal/llm/gemini"
	"career-backend/internal/llm/openai"
	"career-backend/internal/resumes"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
	"career-backend/resume/render"
)

// App holds the wired dependencies of the API process.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Tx     db.TxRunner
	LLM    *llm.Client
	Signer *auth.HMACSigner

	// Breaker is nil when the provider is unconfigured or LLM_BREAKER is off.
	Breaker *llm.BreakerProvider

	UsersService        *users.Service
	InsightsService     *insights.Service
	ResumesService      *resumes.Service
	CoverLettersService *coverletters.Service
	AssessmentsService  *assessments.Service
	GoogleAuth          *googleauth.GoogleService
}

type repos struct {
	users        users.Repo
	insights     insights.Repo
	resumes      resumes.Repo
	coverLetters coverletters.Repo
	assessments  assessments.Repo
}

// Build connects storage, selects the generation provider and wires every handler into a router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	var r repos
	if sqlDB != nil {
		app.Tx = &db.TxManager{DB: sqlDB}
		r = repos{
			users:        &users.PGRepo{DB: sqlDB},
			insights:     &insights.PGRepo{DB: sqlDB},
			resumes:      &resumes.PGRepo{DB: sqlDB},
			coverLetters: &coverletters.PGRepo{DB: sqlDB},
			assessments:  &assessments.PGRepo{DB: sqlDB},
		}
	} else {
		app.Tx = &db.MemoryTx{}
		r = repos{
			users:        users.NewMemoryRepo(),
			insights:     insights.NewMemoryRepo(),
			resumes:      resumes.NewMemoryRepo(),
			coverLetters: coverletters.NewMemoryRepo(),
			assessments:  assessments.NewMemoryRepo(),
		}
	}

	if err := app.buildLLM(ctx); err != nil {
		return nil, err
	}

	signer, err := auth.NewHMACSigner(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}
	app.Signer = signer
	verifier := auth.Chain{signer}
	if strings.TrimSpace(cfg.AuthJWKSURL) != "" {
		jwks, err := auth.NewJWKSVerifier(ctx, cfg.AuthJWKSURL)
		if err != nil {
			return nil, err
		}
		verifier = append(verifier, jwks)
	}

	app.InsightsService = insights.NewService(r.insights, app.LLM, nil)
	app.UsersService = users.NewService(r.users, app.Tx, app.InsightsService, cfg.ProfileTxTimeout)
	app.InsightsService.Users = app.UsersService
	app.ResumesService = resumes.NewService(r.resumes, app.UsersService, app.LLM, render.NewPDFRenderer())
	app.CoverLettersService = coverletters.NewService(r.coverLetters, app.UsersService, app.LLM)
	app.AssessmentsService = assessments.NewService(r.assessments, app.UsersService, app.LLM)
	app.GoogleAuth = googleauth.NewGoogleService(googleauth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		UIRedirect:   cfg.UIRedirectURL,
	}, signer, app.UsersService)

	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	var breaker health.BreakerState
	if app.Breaker != nil {
		breaker = app.Breaker
	}
	providerName := "none"
	if app.LLM.Provider != nil {
		providerName = app.LLM.Provider.Name()
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Verifier: verifier,
		Health:   health.NewService(pinger, breaker, providerName),
		Public:   []server.RouteRegistrar{app.GoogleAuth},
		Handlers: []server.RouteRegistrar{
			users.NewHandler(app.UsersService),
			insights.NewHandler(app.InsightsService),
			resumes.NewHandler(app.ResumesService),
			coverletters.NewHandler(app.CoverLettersService),
			assessments.NewHandler(app.AssessmentsService),
		},
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) || cfg.Env == "test" {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func (a *App) buildLLM(ctx context.Context) error {
	cfg := a.Config
	var provider llm.Provider
	switch cfg.LLMProvider {
	case "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) != "" {
			p, err := gemini.New(ctx, cfg.GeminiAPIKey)
			if err != nil {
				return err
			}
			provider = p
		}
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
			p, err := openai.NewClient(cfg.OpenAIAPIKey)
			if err != nil {
				return err
			}
			provider = p
		}
	}
	if provider == nil {
		if cfg.Env == "production" && cfg.LLMProvider != "none" {
			return fmt.Errorf("%s API key is required in production", cfg.LLMProvider)
		}
		telemetry.Warn("bootstrap.llm_disabled", map[string]any{"provider": cfg.LLMProvider})
	} else if cfg.LLMBreaker {
		a.Breaker = llm.WithBreaker(provider, llm.DefaultBreakerSettings())
		provider = a.Breaker
	}

	retry := llm.DefaultRetryPolicy()
	if cfg.LLMMaxAttempts > 0 {
		retry.MaxAttempts = cfg.LLMMaxAttempts
	}
	if cfg.LLMRetryDelay > 0 {
		retry.Delay = cfg.LLMRetryDelay
	}
	client, err := llm.NewClient(provider, cfg.LLMModel, retry)
	if err != nil {
		return err
	}
	a.LLM = client
	return nil
}
