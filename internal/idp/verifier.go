package idp

import (
	"context"
	"fmt"

	keyfunc "github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SunilThagyal/fbase-api/internal/config"
	"github.com/SunilThagyal/fbase-api/internal/core"
)

// Verifier validates provider-issued bearer ID tokens against an
// auto-refreshing JWKS. Signature, issuer, audience and expiry checks all
// collapse into ErrInvalidToken; the underlying reason is for logs only.
type Verifier struct {
	issuer   string
	audience string
	keyfunc  jwt.Keyfunc
}

// NewVerifier constructs a verifier that fetches the provider signing keys
// from the configured JWKS URL. Keys are refreshed in the background.
func NewVerifier(ctx context.Context, cfg *config.Config) (*Verifier, error) {
	kf, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
	if err != nil {
		return nil, fmt.Errorf("%w: jwks init failed: %v", ErrConfiguration, err)
	}
	return NewVerifierWithKeyfunc(cfg.TokenIssuer, cfg.ProjectID, kf.Keyfunc), nil
}

// NewVerifierWithKeyfunc constructs a verifier with an explicit key
// resolution function. Tests inject static keys through this seam.
func NewVerifierWithKeyfunc(issuer, audience string, kf jwt.Keyfunc) *Verifier {
	return &Verifier{
		issuer:   issuer,
		audience: audience,
		keyfunc:  kf,
	}
}

// VerifyToken parses and validates a raw bearer ID token and returns the
// decoded caller claims.
func (v *Verifier) VerifyToken(ctx context.Context, rawToken string) (*core.Claims, error) {
	if rawToken == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	parser := jwt.NewParser(opts...)

	parsed, err := parser.Parse(rawToken, v.keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}

	claims := &core.Claims{}
	if sub, _ := mapClaims["sub"].(string); sub != "" {
		claims.UID = sub
	}
	// Provider tokens also carry an explicit user_id claim; prefer sub.
	if claims.UID == "" {
		claims.UID, _ = mapClaims["user_id"].(string)
	}
	if claims.UID == "" {
		return nil, fmt.Errorf("%w: token missing subject", ErrInvalidToken)
	}

	claims.Email, _ = mapClaims["email"].(string)
	claims.EmailVerified, _ = mapClaims["email_verified"].(bool)
	claims.Name, _ = mapClaims["name"].(string)
	claims.Picture, _ = mapClaims["picture"].(string)

	return claims, nil
}
