package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SuperShot3/order-form/internal/config"
	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/service"
)

func TestAuthServiceDisabledWithoutPassword(t *testing.T) {
	svc := service.NewAuthService(config.AuthConfig{})

	assert.False(t, svc.Enabled())
	_, err := svc.Login("anything")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthServicePlainPasswordLogin(t *testing.T) {
	svc := service.NewAuthService(config.AuthConfig{AppPassword: "flower-shop"})
	assert.True(t, svc.Enabled())

	_, err := svc.Login("wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	session, err := svc.Login("flower-shop")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), session.ExpiresAt, time.Minute)
}

func TestAuthServiceBcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := service.NewAuthService(config.AuthConfig{
		AppPassword:     "plain-pass",
		AppPasswordHash: string(hash),
	})

	// The plain password is ignored once a hash is configured.
	_, err = svc.Login("plain-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login("hashed-pass")
	assert.NoError(t, err)
}

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	svc := service.NewAuthService(config.AuthConfig{
		AppPassword: "flower-shop",
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
	})

	session, err := svc.Login("flower-shop")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthServiceRejectsTamperedToken(t *testing.T) {
	svc := service.NewAuthService(config.AuthConfig{AppPassword: "flower-shop"})

	session, err := svc.Login("flower-shop")
	require.NoError(t, err)

	_, err = svc.ValidateToken(session.Token + "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthServiceRejectsTokenFromOtherSecret(t *testing.T) {
	a := service.NewAuthService(config.AuthConfig{AppPassword: "p", JWTSecret: "secret-a"})
	b := service.NewAuthService(config.AuthConfig{AppPassword: "p", JWTSecret: "secret-b"})

	session, err := a.Login("p")
	require.NoError(t, err)

	_, err = b.ValidateToken(session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
