package middleware

import (
	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/response"
)

// RequireRole admits only identities whose role matches exactly. There is
// no role hierarchy. Must run after Auth; an absent identity is rejected.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || identity.Role != role {
			response.Forbidden(c, "Forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}
