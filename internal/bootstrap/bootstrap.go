package bootstrap

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SunilThagyal/fbase-api/internal/config"
	"github.com/SunilThagyal/fbase-api/internal/core"
	"github.com/SunilThagyal/fbase-api/internal/metrics"
	"github.com/SunilThagyal/fbase-api/internal/services"
	"github.com/SunilThagyal/fbase-api/internal/store"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB                   *store.Store
	MetricsRecorder      metrics.Recorder
	RateLimitRedisClient *redis.Client

	// Identity provider
	Provider core.IdentityProvider
	Verifier core.TokenVerifier

	// Services
	AccountService *services.AccountService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(ctx context.Context, cfg *config.Config) error {
	app := &Application{Config: cfg}

	// Phase 1: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		return err
	}

	// Phase 2: Initialize business layer
	if err := app.initializeBusinessLayer(ctx); err != nil {
		return err
	}

	// Phase 3: Initialize HTTP layer
	app.initializeHTTPLayer()

	// Phase 4: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics, and Redis
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	app.DB, err = initializeDatabase(app.Config)
	if err != nil {
		return err
	}

	app.MetricsRecorder = initializeMetrics(app.Config)

	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(ctx, app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up the identity provider and services
func (app *Application) initializeBusinessLayer(ctx context.Context) error {
	var err error

	app.Provider, app.Verifier, err = initializeIdentityProvider(ctx, app.Config)
	if err != nil {
		return err
	}

	app.AccountService = services.NewAccountService(app.DB, app.Provider, app.MetricsRecorder)
	return nil
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() {
	app.HandlerSet = initializeHandlers(app.AccountService)

	app.Router = setupRouter(
		app.Config,
		app.DB,
		app.HandlerSet,
		app.Verifier,
		app.MetricsRecorder,
		app.RateLimitRedisClient,
	)

	app.Server = createHTTPServer(app.Config, app.Router)
}
