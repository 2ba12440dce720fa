package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvscore-api/internal/analyses"
	"cvscore-api/internal/services/health"
	"cvscore-api/internal/shared/config"
	"cvscore-api/internal/shared/metrics"
	"cvscore-api/internal/shared/server/middleware"
	"cvscore-api/internal/shared/server/respond"
)

const (
	rateGroupAnalyze = "ANALYZE"
	rateGroupRead    = "READ"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	Health          *health.Service
	Limiter         *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" || deps.Config.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})

	limited := api.Group("")
	limited.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: rateGroupAnalyze,
		GroupFor:     rateGroupFor,
		Limiter:      deps.Limiter,
		Rules: map[string]middleware.RateLimitRule{
			rateGroupAnalyze: {Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst},
			rateGroupRead:    {Rate: deps.Config.RateLimitRPS * 4, Burst: deps.Config.RateLimitBurst * 4},
		},
	}))
	deps.AnalysisHandler.RegisterRoutes(limited)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "route not found", nil)
	})
	return r
}

func rateGroupFor(c *gin.Context) string {
	if c.Request.Method == http.MethodGet {
		return rateGroupRead
	}
	return rateGroupAnalyze
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
