package idp

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SunilThagyal/fbase-api/internal/config"
)

func TestMintCustomTokenDevMode(t *testing.T) {
	cfg := &config.Config{
		ProjectID:         "demo-project",
		CustomTokenSecret: "test-secret",
		CustomTokenTTL:    time.Hour,
	}
	minter, err := NewTokenMinter(cfg)
	require.NoError(t, err)

	signed, err := minter.Mint("uid-1")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "uid-1", claims["uid"])
	assert.Equal(t, "demo-project", claims["iss"])
	assert.Equal(t, customTokenAudience, claims["aud"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestMintCustomTokensAreUnique(t *testing.T) {
	cfg := &config.Config{
		ProjectID:         "demo-project",
		CustomTokenSecret: "test-secret",
		CustomTokenTTL:    time.Hour,
	}
	minter, err := NewTokenMinter(cfg)
	require.NoError(t, err)

	first, err := minter.Mint("uid-1")
	require.NoError(t, err)
	second, err := minter.Mint("uid-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewTokenMinterInvalidKey(t *testing.T) {
	cfg := &config.Config{
		ProjectID:           "demo-project",
		ServiceAccountEmail: "signer@demo-project.iam.gserviceaccount.com",
		ServiceAccountKey:   "not a pem key",
		CustomTokenTTL:      time.Hour,
	}
	_, err := NewTokenMinter(cfg)
	assert.ErrorIs(t, err, ErrConfiguration)
}
