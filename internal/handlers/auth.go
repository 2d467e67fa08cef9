package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SunilThagyal/fbase-api/internal/idp"
	"github.com/SunilThagyal/fbase-api/internal/middleware"
	"github.com/SunilThagyal/fbase-api/internal/services"
)

// AuthHandler serves the signup, login and current-user endpoints.
type AuthHandler struct {
	accounts *services.AccountService
}

func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// credentialsRequest is the request body for signup and login
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /auth/signup.
// Returns 201 with a custom token and the user summary, 400 on missing
// fields, 409 when the email is already registered.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	result, err := h.accounts.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, idp.ErrAccountExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		case errors.Is(err, idp.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password format"})
		default:
			serverError(c, "signup", err)
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Login handles POST /auth/login.
// Returns 200 with a provider-issued session token and the user summary,
// 400 on missing fields, 401 on unknown email or wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, idp.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		serverError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me handles GET /auth/me (requires RequireAuth).
// Returns the stored user record, or a synthesized one when the caller has
// no record yet.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetCaller(c)
	if !ok {
		// Route misconfiguration: Me mounted without RequireAuth.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.accounts.WhoAmI(c.Request.Context(), claims)
	if err != nil {
		serverError(c, "/auth/me", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// serverError logs the internal error and returns the generic 500 body.
// Internal error text never reaches the client.
func serverError(c *gin.Context, operation string, err error) {
	log.Printf("[Handler] %s error: %v", operation, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}
