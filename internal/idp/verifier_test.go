package idp

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://securetoken.example.com/demo-project"
	testAudience = "demo-project"
)

type signerFixture struct {
	key      *rsa.PrivateKey
	verifier *Verifier
}

func newSignerFixture(t *testing.T) *signerFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier := NewVerifierWithKeyfunc(testIssuer, testAudience, func(token *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})

	return &signerFixture{key: key, verifier: verifier}
}

func (f *signerFixture) sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":            testIssuer,
		"aud":            testAudience,
		"sub":            "uid-1",
		"user_id":        "uid-1",
		"email":          "a@x.com",
		"email_verified": true,
		"iat":            now.Unix(),
		"exp":            now.Add(time.Hour).Unix(),
	}
}

func TestVerifyToken(t *testing.T) {
	f := newSignerFixture(t)

	claims, err := f.verifier.VerifyToken(context.Background(), f.sign(t, validClaims()))
	require.NoError(t, err)

	assert.Equal(t, "uid-1", claims.UID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.True(t, claims.EmailVerified)
}

func TestVerifyTokenFailures(t *testing.T) {
	f := newSignerFixture(t)

	t.Run("empty token", func(t *testing.T) {
		_, err := f.verifier.VerifyToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := f.verifier.VerifyToken(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		_, err := f.verifier.VerifyToken(context.Background(), f.sign(t, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := validClaims()
		delete(claims, "exp")
		_, err := f.verifier.VerifyToken(context.Background(), f.sign(t, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims["iss"] = "https://evil.example.com"
		_, err := f.verifier.VerifyToken(context.Background(), f.sign(t, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims()
		claims["aud"] = "another-project"
		_, err := f.verifier.VerifyToken(context.Background(), f.sign(t, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := validClaims()
		delete(claims, "sub")
		delete(claims, "user_id")
		_, err := f.verifier.VerifyToken(context.Background(), f.sign(t, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects HMAC signing", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = f.verifier.VerifyToken(context.Background(), signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := newSignerFixture(t)
		_, err := f.verifier.VerifyToken(context.Background(), other.sign(t, validClaims()))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifyTokenFallsBackToUserID(t *testing.T) {
	f := newSignerFixture(t)

	claims := validClaims()
	delete(claims, "sub")

	decoded, err := f.verifier.VerifyToken(context.Background(), f.sign(t, claims))
	require.NoError(t, err)
	assert.Equal(t, "uid-1", decoded.UID)
}
