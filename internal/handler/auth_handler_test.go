package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuperShot3/order-form/internal/config"
	"github.com/SuperShot3/order-form/internal/service"
)

func authRouter(cfg config.AuthConfig) (*gin.Engine, service.AuthService) {
	svc := service.NewAuthService(cfg)
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/status", h.Status)
	return r, svc
}

func TestAuthHandlerLoginSetsCookie(t *testing.T) {
	r, _ := authRouter(config.AuthConfig{AppPassword: "flower-shop"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"flower-shop"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Equal(t, resp.Data.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	r, _ := authRouter(config.AuthConfig{AppPassword: "flower-shop"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestAuthHandlerLoginRequiresPassword(t *testing.T) {
	r, _ := authRouter(config.AuthConfig{AppPassword: "flower-shop"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandlerLogoutClearsCookie(t *testing.T) {
	r, _ := authRouter(config.AuthConfig{AppPassword: "flower-shop"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAuthHandlerStatus(t *testing.T) {
	r, svc := authRouter(config.AuthConfig{AppPassword: "flower-shop"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"auth_enabled":true`)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	session, err := svc.Login("flower-shop")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestAuthHandlerStatusOpenInstance(t *testing.T) {
	r, _ := authRouter(config.AuthConfig{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"auth_enabled":false`)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}
