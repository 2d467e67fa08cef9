package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	httpclient "github.com/appleboy/go-httpclient"

	"github.com/SunilThagyal/fbase-api/internal/config"
	"github.com/SunilThagyal/fbase-api/internal/core"
)

// Client talks to the Identity Toolkit REST API. Every call is attempted
// exactly once; failures are classified into the closed error set.
type Client struct {
	baseURL string
	apiKey  string
	minter  *TokenMinter
	client  *http.Client
}

// NewClient creates a new identity provider client
func NewClient(cfg *config.Config, minter *TokenMinter) *Client {
	client := httpclient.NewAuthClient(
		"none",
		"",
		httpclient.WithTimeout(cfg.IdentityTimeout),
	)

	return &Client{
		baseURL: strings.TrimSuffix(cfg.IdentityBaseURL, "/"),
		apiKey:  cfg.WebAPIKey,
		minter:  minter,
		client:  client,
	}
}

// signUpRequest is the payload for the accounts:signUp endpoint
type signUpRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// signUpResponse is the expected accounts:signUp response
type signUpResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

// signInRequest is the payload for the accounts:signInWithPassword endpoint
type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// signInResponse is the expected accounts:signInWithPassword response
type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

// apiError is the Identity Toolkit error envelope
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateAccount registers a new email/password account and returns the
// provider-assigned account ID.
func (c *Client) CreateAccount(ctx context.Context, email, password string) (string, error) {
	body, err := c.post(ctx, "/accounts:signUp", signUpRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return "", err
	}

	var resp signUpResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: invalid signUp response: %v", ErrProvider, err)
	}
	if resp.LocalID == "" {
		return "", fmt.Errorf("%w: signUp response missing localId", ErrProvider)
	}

	return resp.LocalID, nil
}

// SignInWithPassword exchanges email/password for a session ID token via the
// password-grant endpoint. A missing API key is a permanent configuration
// failure, not a startup error.
func (c *Client) SignInWithPassword(
	ctx context.Context,
	email, password string,
) (*core.SignInResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: Web API key missing", ErrConfiguration)
	}

	body, err := c.post(ctx, "/accounts:signInWithPassword", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, err
	}

	var resp signInResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: invalid signIn response: %v", ErrProvider, err)
	}
	if resp.LocalID == "" || resp.IDToken == "" {
		return nil, fmt.Errorf("%w: signIn response missing localId or idToken", ErrProvider)
	}

	return &core.SignInResult{
		AccountID: resp.LocalID,
		Email:     resp.Email,
		IDToken:   resp.IDToken,
	}, nil
}

// MintCustomToken issues a short-lived custom token for the account.
func (c *Client) MintCustomToken(accountID string) (string, error) {
	return c.minter.Mint(accountID)
}

// post performs a single JSON POST against the Identity Toolkit API and
// returns the raw success body. Error responses are classified by their
// provider error identifier.
func (c *Client) post(ctx context.Context, endpoint string, reqBody any) ([]byte, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrProvider, err)
	}

	url := c.baseURL + endpoint
	if c.apiKey != "" {
		url += "?key=" + c.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", ErrProvider)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.classifyErrorBody(endpoint, resp.StatusCode, body)
	}

	return body, nil
}

// classifyErrorBody translates an Identity Toolkit error response into the
// closed error set. The raw identifier is logged, never surfaced to callers.
func (c *Client) classifyErrorBody(endpoint string, status int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		code := errorIdentifier(apiErr.Error.Message)
		log.Printf("[IdP] %s failed: HTTP %d code=%s", endpoint, status, code)
		return fmt.Errorf("%w: %s", classifyCode(code), code)
	}

	bodyPreview := string(body)
	if len(bodyPreview) > 200 {
		bodyPreview = bodyPreview[:200] + "..."
	}
	log.Printf("[IdP] %s failed: HTTP %d body=%s", endpoint, status, bodyPreview)
	return fmt.Errorf("%w: HTTP %d", ErrProvider, status)
}

// errorIdentifier extracts the leading provider error identifier from a
// message such as "WEAK_PASSWORD : Password should be at least 6 characters".
func errorIdentifier(message string) string {
	id := message
	if i := strings.IndexAny(id, " :"); i >= 0 {
		id = id[:i]
	}
	return id
}
