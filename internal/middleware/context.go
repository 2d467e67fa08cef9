package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/SunilThagyal/fbase-api/internal/core"
)

const callerContextKey = "caller_claims"

// SetCaller attaches verified caller claims to the request context
func SetCaller(c *gin.Context, claims *core.Claims) {
	c.Set(callerContextKey, claims)
}

// GetCaller returns the verified caller claims attached by RequireAuth.
// The boolean is false on routes that did not pass through RequireAuth.
func GetCaller(c *gin.Context) (*core.Claims, bool) {
	value, exists := c.Get(callerContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*core.Claims)
	return claims, ok
}
