package idp

import "errors"

// Closed error set for identity-provider failures. Provider error
// identifiers are translated into these at the client boundary so callers
// never inspect free-text messages.
var (
	// ErrAccountExists is returned when the email is already registered
	ErrAccountExists = errors.New("email already registered")

	// ErrInvalidInput is returned when the email or password is malformed
	ErrInvalidInput = errors.New("invalid email or password format")

	// ErrInvalidCredentials is returned on unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a bearer token is malformed, expired,
	// or carries an invalid signature
	ErrInvalidToken = errors.New("invalid token")

	// ErrConfiguration is returned when a required credential (API key,
	// signing key) is not configured
	ErrConfiguration = errors.New("identity provider not configured")

	// ErrProvider is returned on any other provider or transport failure
	ErrProvider = errors.New("identity provider request failed")
)

// classifyCode maps Identity Toolkit error identifiers onto the closed error
// set. Unknown identifiers fall through to ErrProvider.
func classifyCode(code string) error {
	switch code {
	case "EMAIL_EXISTS":
		return ErrAccountExists
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return ErrInvalidCredentials
	case "INVALID_EMAIL", "WEAK_PASSWORD", "MISSING_EMAIL", "MISSING_PASSWORD":
		return ErrInvalidInput
	default:
		return ErrProvider
	}
}
