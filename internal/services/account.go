package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/SunilThagyal/fbase-api/internal/core"
	"github.com/SunilThagyal/fbase-api/internal/idp"
	"github.com/SunilThagyal/fbase-api/internal/metrics"
	"github.com/SunilThagyal/fbase-api/internal/models"
	"github.com/SunilThagyal/fbase-api/internal/store"
)

// AuthResult is the outcome of a signup or login flow: a session (or custom)
// token plus the condensed user summary.
type AuthResult struct {
	Token string         `json:"token"`
	User  models.Summary `json:"user"`
}

// CurrentUser is the user shape returned by the who-am-I flow. When no
// stored record exists the synthesized fallback carries only the identity
// fields; the record fields stay omitted.
type CurrentUser struct {
	UserID              string     `json:"userId"`
	Email               *string    `json:"email"`
	SubscriptionStatus  string     `json:"subscriptionStatus"`
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
	StripeCustomerID    *string    `json:"stripeCustomerId,omitempty"`
	SubscriptionEndDate *time.Time `json:"subscriptionEndDate,omitempty"`
}

// AccountService orchestrates signup, login and who-am-I flows across the
// identity provider and the user record store. It holds no state of its own;
// every external call is attempted exactly once.
type AccountService struct {
	store    *store.Store
	provider core.IdentityProvider
	metrics  metrics.Recorder
}

func NewAccountService(
	s *store.Store,
	provider core.IdentityProvider,
	recorder metrics.Recorder,
) *AccountService {
	return &AccountService{
		store:    s,
		provider: provider,
		metrics:  recorder,
	}
}

// Signup creates a provider account, writes the user record, and mints a
// custom token for the client to exchange for a session.
//
// If the record write fails after the account was created, the provider
// account is left without a record. Deleting it would require admin
// credentials this gateway does not hold, so the condition is logged and
// counted instead of compensated.
func (s *AccountService) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	accountID, err := s.provider.CreateAccount(ctx, email, password)
	if err != nil {
		if errors.Is(err, idp.ErrAccountExists) {
			s.metrics.RecordSignup(metrics.ResultRejected)
		} else {
			s.metrics.RecordSignup(metrics.ResultError)
		}
		log.Printf("[Account] Signup failed for email=%s: %v", email, err)
		return nil, err
	}

	if _, err := s.store.Upsert(accountID, email); err != nil {
		s.metrics.RecordSignup(metrics.ResultError)
		s.metrics.RecordOrphanedSignup()
		s.metrics.RecordStoreError("upsert")
		log.Printf("[Account] Orphaned account uid=%s: record write failed: %v", accountID, err)
		return nil, err
	}

	token, err := s.provider.MintCustomToken(accountID)
	if err != nil {
		s.metrics.RecordSignup(metrics.ResultError)
		log.Printf("[Account] Custom token minting failed for uid=%s: %v", accountID, err)
		return nil, err
	}

	s.metrics.RecordSignup(metrics.ResultSuccess)

	// The record was just created with the default status, so the summary
	// reports the shared constant instead of re-reading the store.
	return &AuthResult{
		Token: token,
		User: models.Summary{
			UserID:             accountID,
			Email:              email,
			SubscriptionStatus: models.SubscriptionFree,
		},
	}, nil
}

// Login exchanges email/password for a provider-issued session token.
// A missing user record is not an error: the subscription status defaults.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	signIn, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, idp.ErrInvalidCredentials) {
			s.metrics.RecordLogin(metrics.ResultRejected)
		} else {
			s.metrics.RecordLogin(metrics.ResultError)
		}
		log.Printf("[Account] Login failed for email=%s: %v", email, err)
		return nil, err
	}

	subscriptionStatus := models.SubscriptionFree
	record, err := s.store.GetByID(signIn.AccountID)
	switch {
	case err == nil:
		subscriptionStatus = record.SubscriptionStatus
	case errors.Is(err, store.ErrRecordNotFound):
		// No record yet; report the default without writing one.
	default:
		s.metrics.RecordLogin(metrics.ResultError)
		s.metrics.RecordStoreError("get")
		log.Printf("[Account] Record lookup failed for uid=%s: %v", signIn.AccountID, err)
		return nil, err
	}

	s.metrics.RecordLogin(metrics.ResultSuccess)

	return &AuthResult{
		Token: signIn.IDToken,
		User: models.Summary{
			UserID:             signIn.AccountID,
			Email:              email,
			SubscriptionStatus: subscriptionStatus,
		},
	}, nil
}

// WhoAmI resolves the caller's user record from verified token claims. When
// no record exists it synthesizes one from the claims without writing to the
// store.
func (s *AccountService) WhoAmI(ctx context.Context, claims *core.Claims) (*CurrentUser, error) {
	record, err := s.store.GetByID(claims.UID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			var email *string
			if claims.Email != "" {
				email = &claims.Email
			}
			return &CurrentUser{
				UserID:             claims.UID,
				Email:              email,
				SubscriptionStatus: models.SubscriptionFree,
			}, nil
		}
		s.metrics.RecordStoreError("get")
		log.Printf("[Account] Record lookup failed for uid=%s: %v", claims.UID, err)
		return nil, err
	}

	return &CurrentUser{
		UserID:              record.UserID,
		Email:               &record.Email,
		SubscriptionStatus:  record.SubscriptionStatus,
		CreatedAt:           &record.CreatedAt,
		StripeCustomerID:    record.StripeCustomerID,
		SubscriptionEndDate: record.SubscriptionEndDate,
	}, nil
}
