package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/ai"
	"resume-screener/internal/ai/gemini"
	"resume-screener/internal/ai/openai"
	"resume-screener/internal/analyses"
	"resume-screener/internal/ingestion"
	"resume-screener/internal/resumes"
	"resume-screener/internal/shared/cache"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
	"resume-screener/internal/shared/telemetry"
)

const memoryCacheEntries = 1024

// App holds shared dependencies.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Cache     cache.Cache
	Store     object.ObjectStore
	Extractor ai.Extractor

	ResumesRepo  resumes.Repo
	AnalysesRepo analyses.Repo

	Ingestion *ingestion.Service
	Analytics *analyses.Service

	closers []func() error
}

// Options lets callers replace infrastructure, mainly for tests.
type Options struct {
	Store     object.ObjectStore
	Extractor ai.Extractor
	Cache     cache.Cache
}

// Build prepares every dependency and the HTTP router.
func Build(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB.Close)
	}

	app.Store = opts.Store
	if app.Store == nil {
		if app.Store, err = buildStore(ctx, cfg); err != nil {
			app.Close()
			return nil, err
		}
	}

	app.Extractor = opts.Extractor
	if app.Extractor == nil {
		if app.Extractor, err = buildExtractor(ctx, cfg); err != nil {
			app.Close()
			return nil, err
		}
	}

	app.Cache = opts.Cache
	if app.Cache == nil {
		if app.Cache, err = app.buildCache(ctx, cfg); err != nil {
			app.Close()
			return nil, err
		}
	}

	app.buildServices()
	app.Router = server.NewRouter(app.routerDeps())
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if cfg.IsDevLike() {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, s3store.Options{
			Region:     cfg.AWSRegion,
			Bucket:     cfg.S3Bucket,
			Prefix:     cfg.S3Prefix,
			KMSKeyID:   cfg.SSEKMSKeyID,
			PublicBase: cfg.S3PublicBaseURL,
		})
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicUploadBase), nil
	}
}

func buildExtractor(ctx context.Context, cfg config.Config) (ai.Extractor, error) {
	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return unconfigured("openai"), nil
		}
		return openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AITimeout)
	case "gemini", "":
		if cfg.GeminiAPIKey == "" {
			return unconfigured("gemini"), nil
		}
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	default:
		return nil, fmt.Errorf("unknown AI_PROVIDER %q", cfg.AIProvider)
	}
}

func unconfigured(provider string) ai.Extractor {
	telemetry.Warn("bootstrap.ai.unconfigured", map[string]any{"provider": provider})
	return ai.Unconfigured{Provider: provider}
}

func (a *App) buildCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryCache(memoryCacheEntries), nil
	}

	rc, err := cache.NewRedisCache(cfg.RedisURL)
	if err == nil {
		if err = rc.Ping(ctx); err == nil {
			a.closers = append(a.closers, rc.Close)
			return rc, nil
		}
		_ = rc.Close()
	}
	if cfg.IsDevLike() {
		telemetry.Warn("bootstrap.cache.memory", map[string]any{"error": err})
		return cache.NewMemoryCache(memoryCacheEntries), nil
	}
	return nil, fmt.Errorf("connect redis: %w", err)
}

func (a *App) buildServices() {
	if a.DB != nil {
		a.ResumesRepo = &resumes.PGRepo{DB: a.DB}
		a.AnalysesRepo = &analyses.PGRepo{DB: a.DB}
	} else {
		resumeRepo := resumes.NewMemoryRepo()
		a.ResumesRepo = resumeRepo
		a.AnalysesRepo = analyses.NewMemoryRepo(resumeRepo)
	}

	a.Analytics = analyses.NewService(a.AnalysesRepo, a.Cache, a.Config.AnalyticsCacheTTL)
	a.Ingestion = &ingestion.Service{
		Store:     a.Store,
		Resumes:   a.ResumesRepo,
		Analyses:  a.AnalysesRepo,
		Extractor: a.Extractor,
		Notifier:  a.Analytics,
	}
}

func (a *App) routerDeps() server.RouterDeps {
	deps := server.RouterDeps{
		Config: a.Config,
		Resumes: []server.RouteRegistrar{
			ingestion.NewHandler(a.Ingestion, a.Config.MaxUploadBytes),
			analyses.NewHandler(a.Analytics),
		},
		Checks: map[string]server.HealthCheck{},
	}
	if local, ok := a.Store.(*localstore.Store); ok {
		deps.UploadDir = local.Dir()
		deps.UploadBase = local.BasePath()
	}
	if a.DB != nil {
		deps.Checks["database"] = a.DB.PingContext
	}
	if a.Cache != nil {
		deps.Checks["cache"] = a.Cache.Ping
	}
	return deps
}
