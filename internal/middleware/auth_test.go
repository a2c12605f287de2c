package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuperShot3/order-form/internal/config"
	"github.com/SuperShot3/order-form/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func guardedRouter(authService service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(authService))
	r.GET("/protected", func(c *gin.Context) {
		_, hasClaims := c.Get(ContextKeyClaims)
		c.JSON(http.StatusOK, gin.H{"claims": hasClaims})
	})
	return r
}

func TestAuthMiddlewareOpenGateWithoutPassword(t *testing.T) {
	r := guardedRouter(service.NewAuthService(config.AuthConfig{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := guardedRouter(service.NewAuthService(config.AuthConfig{AppPassword: "p"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing session token")
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	r := guardedRouter(service.NewAuthService(config.AuthConfig{AppPassword: "p"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	svc := service.NewAuthService(config.AuthConfig{AppPassword: "p"})
	r := guardedRouter(svc)

	session, err := svc.Login("p")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"claims":true`)
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	svc := service.NewAuthService(config.AuthConfig{AppPassword: "p"})
	r := guardedRouter(svc)

	session, err := svc.Login("p")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: session.Token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
