package bootstrap

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/SunilThagyal/fbase-api/internal/config"
	"github.com/SunilThagyal/fbase-api/internal/core"
	"github.com/SunilThagyal/fbase-api/internal/metrics"
	"github.com/SunilThagyal/fbase-api/internal/middleware"
	"github.com/SunilThagyal/fbase-api/internal/store"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	h handlerSet,
	verifier core.TokenVerifier,
	recorder metrics.Recorder,
	rateLimitRedisClient *redis.Client,
) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(gin.Logger(), gin.Recovery())

	// Health check endpoint
	r.GET("/health", createHealthCheckHandler(db))

	// Metrics endpoint
	setupMetricsEndpoint(r, cfg)

	// Rate limiting
	rateLimiters := setupRateLimiting(cfg, rateLimitRedisClient)

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", rateLimiters.signup, h.Auth.Signup)
		auth.POST("/login", rateLimiters.login, h.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(verifier, recorder), h.Auth.Me)
	}

	log.Printf("Server listening on %s", cfg.ServerAddr)

	return r
}

// setupGinMode configures the Gin run mode
func setupGinMode(cfg *config.Config) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// createHealthCheckHandler returns a handler that probes store connectivity
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
