package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/server/middleware"
)

// Claims represents session token claims. The subject is the wizard session id.
type Claims struct {
	jwt.RegisteredClaims
}

// GetSessionID returns the session id from the claims.
// This implements the middleware.SessionIDGetter interface.
func (c *Claims) GetSessionID() string {
	return c.Subject
}

// SessionService issues and validates wizard session tokens.
type SessionService struct {
	config *config.SessionConfig
	now    func() time.Time
}

// NewSessionService creates a new session service with the given configuration.
func NewSessionService(cfg *config.SessionConfig) *SessionService {
	return &SessionService{config: cfg, now: time.Now}
}

// AsTokenValidator returns a TokenValidator adapter for this SessionService.
func (s *SessionService) AsTokenValidator() middleware.TokenValidator {
	return &sessionValidator{service: s}
}

type sessionValidator struct {
	service *SessionService
}

func (v *sessionValidator) ValidateToken(tokenString string) (middleware.SessionIDGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// NewSession starts a session with a fresh id and returns its signed token.
func (s *SessionService) NewSession() (sessionID, token string, expiresAt time.Time, err error) {
	sessionID = uuid.NewString()
	token, expiresAt, err = s.GenerateToken(sessionID)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return sessionID, token, expiresAt, nil
}

// GenerateToken generates a token for sessionID.
func (s *SessionService) GenerateToken(sessionID string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(time.Duration(s.config.TTLHours) * time.Hour)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a session token and returns the claims.
func (s *SessionService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrSignatureInvalid), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("invalid token signature: %w", err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("malformed token: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no session")
	}

	return claims, nil
}
