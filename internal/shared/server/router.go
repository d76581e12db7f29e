package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

const (
	uploadGroup  = "UPLOAD"
	defaultGroup = "DEFAULT"
	uploadPath   = "/api/resumes/upload"
	healthWait   = 2 * time.Second
)

// RouteRegistrar attaches a feature's routes to the résumé group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// RouterDeps carries everything NewRouter wires into the engine.
type RouterDeps struct {
	Config     config.Config
	Resumes    []RouteRegistrar
	UploadDir  string
	UploadBase string
	Checks     map[string]HealthCheck
	RateRules  map[string]middleware.RateLimitRule
	Limiter    *middleware.RateLimiter
}

// DefaultRateRules limits uploads to a handful per minute per client.
func DefaultRateRules() map[string]middleware.RateLimitRule {
	return map[string]middleware.RateLimitRule{
		uploadGroup:  {Rate: 10.0 / 60.0, Burst: 10},
		defaultGroup: {Rate: 5, Burst: 60},
	}
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	rules := deps.RateRules
	if rules == nil {
		rules = DefaultRateRules()
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        rules,
			DefaultGroup: defaultGroup,
			GroupFor:     rateGroup,
			Limiter:      deps.Limiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", health(deps.Checks))

	resumes := api.Group("/resumes")
	for _, h := range deps.Resumes {
		if h != nil {
			h.RegisterRoutes(resumes)
		}
	}

	if deps.UploadDir != "" {
		base := deps.UploadBase
		if base == "" {
			base = "/uploads"
		}
		r.Static(base, deps.UploadDir)
	}

	return r
}

func rateGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == uploadPath {
		return uploadGroup
	}
	return defaultGroup
}

func health(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(checks) == 0 {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthWait)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}
		respond.JSON(c, status, gin.H{"ok": status == http.StatusOK, "checks": results})
	}
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
