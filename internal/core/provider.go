package core

import "context"

// SignInResult holds the outcome of a password sign-in at the identity
// provider.
type SignInResult struct {
	AccountID string
	Email     string
	IDToken   string
}

// IdentityProvider is the interface that identity backends must implement.
// All methods perform exactly one remote attempt; failures are classified
// into the closed error set in the idp package before they reach callers.
type IdentityProvider interface {
	// CreateAccount registers a new email/password account and returns the
	// provider-assigned account ID.
	CreateAccount(ctx context.Context, email, password string) (string, error)

	// SignInWithPassword exchanges email/password for a session ID token.
	SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error)

	// MintCustomToken issues a short-lived custom token for the account,
	// exchangeable by a client for a full session.
	MintCustomToken(accountID string) (string, error)
}

// TokenVerifier verifies provider-issued bearer ID tokens.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, rawToken string) (*Claims, error)
}
