package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alienbank/bank-backend/internal/auth"
	"github.com/alienbank/bank-backend/internal/domain"
)

const claimsKey = "claims"

// RequireAuth validates the bearer token and stores its claims in the
// request context
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
				Status:  http.StatusUnauthorized,
				Success: false,
				Errors:  "missing bearer token",
			})
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
				Status:  http.StatusUnauthorized,
				Success: false,
				Errors:  "invalid or expired token",
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the ADMIN
// role. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
				Status:  http.StatusUnauthorized,
				Success: false,
				Errors:  "administrator access required",
			})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the authenticated token claims, or nil outside an
// authenticated request
func ClaimsFrom(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
