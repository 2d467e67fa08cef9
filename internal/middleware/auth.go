package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SunilThagyal/fbase-api/internal/core"
	"github.com/SunilThagyal/fbase-api/internal/metrics"
)

// RequireAuth rejects requests that do not carry a verifiable bearer ID
// token. The header must be the literal form "Bearer <token>"; anything else
// is rejected before the verifier is consulted. Verification failure reasons
// are logged, never exposed to the caller.
func RequireAuth(verifier core.TokenVerifier, recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			recorder.RecordTokenVerification(metrics.ResultInvalidInput)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing or invalid token",
			})
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			recorder.RecordTokenVerification(metrics.ResultRejected)
			log.Printf("[Auth] Token verification failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		recorder.RecordTokenVerification(metrics.ResultSuccess)
		SetCaller(c, claims)
		c.Next()
	}
}
