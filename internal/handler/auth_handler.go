package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SuperShot3/order-form/internal/service"
)

const authCookieName = "auth_token"

// AuthHandler handles the shared-password session endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	session, err := h.authService.Login(input.Password)
	if err != nil {
		HandleError(c, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, session.Token, maxAge, "/", "", false, true)
	RespondOK(c, session)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
	RespondOK(c, gin.H{"logged_out": true})
}

// Status handles GET /api/v1/auth/status. It is mounted outside the auth
// middleware so the login page can probe it.
func (h *AuthHandler) Status(c *gin.Context) {
	authenticated := false
	if token := extractToken(c); token != "" {
		if _, err := h.authService.ValidateToken(token); err == nil {
			authenticated = true
		}
	}
	RespondOK(c, gin.H{
		"auth_enabled":  h.authService.Enabled(),
		"authenticated": authenticated || !h.authService.Enabled(),
	})
}

// extractToken pulls the session token from the Authorization header or the
// session cookie.
func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}
