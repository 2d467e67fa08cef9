package idp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SunilThagyal/fbase-api/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		ProjectID:         "demo-project",
		WebAPIKey:         "test-key",
		IdentityBaseURL:   baseURL,
		IdentityTimeout:   2 * time.Second,
		CustomTokenSecret: "test-secret",
		CustomTokenTTL:    time.Hour,
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := testConfig(baseURL)
	minter, err := NewTokenMinter(cfg)
	require.NoError(t, err)
	return NewClient(cfg, minter)
}

// fakeIdentityAPI builds an httptest server that answers like the Identity
// Toolkit API. errCode is returned as the provider error identifier when
// non-empty.
func fakeIdentityAPI(t *testing.T, errCode string, success map[string]any) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		if errCode != "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 400, "message": errCode},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(success)
	}))
}

func TestCreateAccount(t *testing.T) {
	srv := fakeIdentityAPI(t, "", map[string]any{
		"localId": "uid-1",
		"email":   "a@x.com",
		"idToken": "tok",
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	uid, err := client.CreateAccount(context.Background(), "a@x.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
}

func TestCreateAccountErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		errCode string
		want    error
	}{
		{"email exists", "EMAIL_EXISTS", ErrAccountExists},
		{"invalid email", "INVALID_EMAIL", ErrInvalidInput},
		{"weak password with detail", "WEAK_PASSWORD : Password should be at least 6 characters", ErrInvalidInput},
		{"unknown identifier", "QUOTA_EXCEEDED", ErrProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeIdentityAPI(t, tt.errCode, nil)
			defer srv.Close()

			client := newTestClient(t, srv.URL)

			_, err := client.CreateAccount(context.Background(), "a@x.com", "pw")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignInWithPassword(t *testing.T) {
	srv := fakeIdentityAPI(t, "", map[string]any{
		"localId": "uid-1",
		"email":   "a@x.com",
		"idToken": "session-token",
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	result, err := client.SignInWithPassword(context.Background(), "a@x.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", result.AccountID)
	assert.Equal(t, "session-token", result.IDToken)
}

func TestSignInWithPasswordErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		errCode string
		want    error
	}{
		{"unknown email", "EMAIL_NOT_FOUND", ErrInvalidCredentials},
		{"wrong password", "INVALID_PASSWORD", ErrInvalidCredentials},
		{"combined identifier", "INVALID_LOGIN_CREDENTIALS", ErrInvalidCredentials},
		{"disabled user", "USER_DISABLED", ErrInvalidCredentials},
		{"unknown identifier", "TOO_MANY_ATTEMPTS_TRY_LATER", ErrProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeIdentityAPI(t, tt.errCode, nil)
			defer srv.Close()

			client := newTestClient(t, srv.URL)

			_, err := client.SignInWithPassword(context.Background(), "a@x.com", "pw")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignInWithPasswordMissingAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.WebAPIKey = ""
	minter, err := NewTokenMinter(cfg)
	require.NoError(t, err)
	client := NewClient(cfg, minter)

	_, err = client.SignInWithPassword(context.Background(), "a@x.com", "pw123456")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.False(t, called, "no provider call should be made without an API key")
}

func TestSignInWithPasswordNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.SignInWithPassword(context.Background(), "a@x.com", "pw123456")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestErrorIdentifier(t *testing.T) {
	assert.Equal(t, "EMAIL_EXISTS", errorIdentifier("EMAIL_EXISTS"))
	assert.Equal(t, "WEAK_PASSWORD", errorIdentifier("WEAK_PASSWORD : Password should be at least 6 characters"))
	assert.Equal(t, "INVALID_EMAIL", errorIdentifier("INVALID_EMAIL:bad address"))
}
