package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/SunilThagyal/fbase-api/internal/config"
	"github.com/SunilThagyal/fbase-api/internal/core"
	"github.com/SunilThagyal/fbase-api/internal/idp"
	"github.com/SunilThagyal/fbase-api/internal/metrics"
)

// initializeIdentityProvider constructs the identity provider client and the
// ID token verifier. A missing Web API key is logged, not fatal: password
// sign-in degrades to a configuration error at call time.
func initializeIdentityProvider(
	ctx context.Context,
	cfg *config.Config,
) (core.IdentityProvider, core.TokenVerifier, error) {
	if cfg.WebAPIKey == "" {
		log.Printf("WARNING: Web API key not configured; password sign-in will be unavailable")
	}

	minter, err := idp.NewTokenMinter(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize token minter: %w", err)
	}
	if cfg.ServiceAccountKey == "" {
		log.Printf("Custom tokens: HS256 dev mode (no service account key configured)")
	} else {
		log.Printf("Custom tokens: RS256 (signer: %s)", cfg.ServiceAccountEmail)
	}

	verifier, err := idp.NewVerifier(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	client := idp.NewClient(cfg, minter)
	log.Printf("Identity provider client initialized (endpoint: %s)", cfg.IdentityBaseURL)

	return client, verifier, nil
}

// initializeMetrics sets up the metrics recorder
func initializeMetrics(cfg *config.Config) metrics.Recorder {
	recorder := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}
	return recorder
}
