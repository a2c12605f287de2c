package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SuperShot3/order-form/internal/config"
	"github.com/SuperShot3/order-form/internal/domain"
)

// Claims is the session token payload. The app has a single shared
// operator identity, so the registered claims are all there is.
type Claims struct {
	jwt.RegisteredClaims
}

// Session is the issued token with its expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService implements the shared-password gate. The whole instance is
// protected by one operator password; a successful login yields a JWT the
// browser keeps for the session lifetime.
type AuthService interface {
	// Enabled reports whether a password is configured at all. When it is
	// not, the API runs open and login always fails.
	Enabled() bool
	Login(password string) (*Session, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg    config.AuthConfig
	secret []byte
	now    func() time.Time
}

// NewAuthService creates an AuthService. With no JWT secret configured a
// random per-process secret is used, invalidating sessions on restart.
func NewAuthService(cfg config.AuthConfig) AuthService {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = []byte(uuid.NewString())
	}
	if cfg.TokenExpiry == 0 {
		cfg.TokenExpiry = 168 * time.Hour
	}
	return &authService{cfg: cfg, secret: secret, now: time.Now}
}

func (s *authService) Enabled() bool {
	return s.cfg.AppPassword != "" || s.cfg.AppPasswordHash != ""
}

func (s *authService) Login(password string) (*Session, error) {
	if !s.Enabled() {
		return nil, domain.ErrInvalidCredentials
	}
	if s.cfg.AppPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AppPasswordHash), []byte(password)); err != nil {
			return nil, domain.ErrInvalidCredentials
		}
	} else if password != s.cfg.AppPassword {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TokenExpiry)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator",
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &Session{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
