package idp

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/SunilThagyal/fbase-api/internal/config"
)

// customTokenAudience is the token-exchange audience required by the
// provider for custom tokens.
const customTokenAudience = "https://identitytoolkit.googleapis.com/google.identity.identitytoolkit.v1.IdentityToolkit"

// TokenMinter signs short-lived custom tokens that clients exchange for a
// full session. With a service-account key configured it signs RS256 tokens
// the provider accepts; without one it falls back to HS256 signing with a
// shared secret for development setups.
type TokenMinter struct {
	issuer    string
	ttl       time.Duration
	rsaKey    *rsa.PrivateKey
	devSecret string
	devIssuer string
}

// NewTokenMinter creates a token minter from configuration
func NewTokenMinter(cfg *config.Config) (*TokenMinter, error) {
	m := &TokenMinter{
		issuer:    cfg.ServiceAccountEmail,
		ttl:       cfg.CustomTokenTTL,
		devSecret: cfg.CustomTokenSecret,
		devIssuer: cfg.ProjectID,
	}

	if cfg.ServiceAccountKey != "" {
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.ServiceAccountKey))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid service account key: %v", ErrConfiguration, err)
		}
		m.rsaKey = key
	}

	return m, nil
}

// Mint signs a custom token for the given account ID.
func (m *TokenMinter) Mint(accountID string) (string, error) {
	now := time.Now()

	if m.rsaKey != nil {
		claims := jwt.MapClaims{
			"iss": m.issuer,
			"sub": m.issuer,
			"aud": customTokenAudience,
			"uid": accountID,
			"iat": now.Unix(),
			"exp": now.Add(m.ttl).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		signed, err := token.SignedString(m.rsaKey)
		if err != nil {
			return "", fmt.Errorf("%w: custom token signing failed: %v", ErrProvider, err)
		}
		return signed, nil
	}

	// Dev mode: HS256 with a shared secret. Not exchangeable against the
	// real provider.
	claims := jwt.MapClaims{
		"iss": m.devIssuer,
		"sub": m.devIssuer,
		"aud": customTokenAudience,
		"uid": accountID,
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.devSecret))
	if err != nil {
		return "", fmt.Errorf("%w: custom token signing failed: %v", ErrProvider, err)
	}
	return signed, nil
}
