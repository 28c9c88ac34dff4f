package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the session token claims. A guest session carries only a
// session id; authentication adds the user id and role to a reissued token.
// The session id is stable across login so a pending intent keyed by it
// survives the authentication redirect.
type Claims struct {
	SessionID     uuid.UUID `json:"session_id"`
	UserID        *int64    `json:"user_id,omitempty"`
	Role          string    `json:"role,omitempty"`
	Authenticated bool      `json:"authenticated"`
	jwt.RegisteredClaims
}

// Service signs and validates session tokens
type Service struct {
	secret      string
	tokenExpiry time.Duration
}

// NewService creates a new token service
func NewService(secret string, tokenExpiry time.Duration) *Service {
	return &Service{
		secret:      secret,
		tokenExpiry: tokenExpiry,
	}
}

// GenerateGuestToken issues a token for an unauthenticated session
func (s *Service) GenerateGuestToken(sessionID uuid.UUID) (string, error) {
	return s.generate(Claims{
		SessionID:     sessionID,
		Authenticated: false,
	}, sessionID.String())
}

// GenerateUserToken issues a token for an authenticated session, preserving
// the session id the caller already holds.
func (s *Service) GenerateUserToken(sessionID uuid.UUID, userID int64, role string) (string, error) {
	return s.generate(Claims{
		SessionID:     sessionID,
		UserID:        &userID,
		Role:          role,
		Authenticated: true,
	}, fmt.Sprintf("%d", userID))
}

func (s *Service) generate(claims Claims, subject string) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    "silvertrail-tours",
		Subject:   subject,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Validate validates and parses a session token
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
