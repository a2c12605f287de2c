package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SuperShot3/order-form/internal/service"
)

const (
	// ContextKeyClaims carries the validated session claims.
	ContextKeyClaims = "claims"

	authCookieName = "auth_token"
)

// AuthMiddleware returns Gin middleware that validates the session token
// from the Authorization header or the session cookie. When no password is
// configured the gate is open and every request passes through.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		token := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		} else if cookie, err := c.Cookie(authCookieName); err == nil {
			token = cookie
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing session token"},
			})
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}
