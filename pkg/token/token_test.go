package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-session-secret-key-for-testing-purposes"

func TestNewService(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	assert.NotNil(t, service)
	assert.Equal(t, testSecret, service.secret)
	assert.Equal(t, time.Hour, service.tokenExpiry)
}

func TestGenerateGuestToken(t *testing.T) {
	service := NewService(testSecret, time.Hour)
	sessionID := uuid.New()

	token, err := service.GenerateGuestToken(sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Nil(t, claims.UserID)
	assert.Empty(t, claims.Role)
	assert.False(t, claims.Authenticated)
}

func TestGenerateUserToken(t *testing.T) {
	service := NewService(testSecret, time.Hour)
	sessionID := uuid.New()

	token, err := service.GenerateUserToken(sessionID, 42, "client")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	require.NotNil(t, claims.UserID)
	assert.Equal(t, int64(42), *claims.UserID)
	assert.Equal(t, "client", claims.Role)
	assert.True(t, claims.Authenticated)
}

func TestUserTokenKeepsSessionID(t *testing.T) {
	service := NewService(testSecret, time.Hour)
	sessionID := uuid.New()

	guestToken, err := service.GenerateGuestToken(sessionID)
	require.NoError(t, err)
	guestClaims, err := service.Validate(guestToken)
	require.NoError(t, err)

	// Reissuing the token after login must not change the session id, or a
	// pending intent keyed by it would be orphaned.
	userToken, err := service.GenerateUserToken(guestClaims.SessionID, 7, "client")
	require.NoError(t, err)
	userClaims, err := service.Validate(userToken)
	require.NoError(t, err)

	assert.Equal(t, guestClaims.SessionID, userClaims.SessionID)
}

func TestValidateRejectsBadTokens(t *testing.T) {
	service := NewService(testSecret, time.Hour)
	sessionID := uuid.New()

	token, err := service.GenerateGuestToken(sessionID)
	require.NoError(t, err)

	// Garbage token
	_, err = service.Validate("invalid.token.here")
	assert.Error(t, err)

	// Wrong secret
	wrongService := NewService("wrong-secret", time.Hour)
	_, err = wrongService.Validate(token)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	service := NewService(testSecret, time.Millisecond)
	sessionID := uuid.New()

	token, err := service.GenerateGuestToken(sessionID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = service.Validate(token)
	assert.Error(t, err)
}

func TestTokenIssuerAndSubject(t *testing.T) {
	service := NewService(testSecret, time.Hour)
	sessionID := uuid.New()

	guestToken, err := service.GenerateGuestToken(sessionID)
	require.NoError(t, err)
	guestClaims, err := service.Validate(guestToken)
	require.NoError(t, err)
	assert.Equal(t, "silvertrail-tours", guestClaims.Issuer)
	assert.Equal(t, sessionID.String(), guestClaims.Subject)

	userToken, err := service.GenerateUserToken(sessionID, 42, "admin")
	require.NoError(t, err)
	userClaims, err := service.Validate(userToken)
	require.NoError(t, err)
	assert.Equal(t, "42", userClaims.Subject)
}

func TestTokenSigningMethod(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	token, err := service.GenerateGuestToken(uuid.New())
	require.NoError(t, err)

	parsedToken, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	_, ok := parsedToken.Method.(*jwt.SigningMethodHMAC)
	assert.True(t, ok, "Token should use HMAC signing method")
}

func TestConcurrentTokenGeneration(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	done := make(chan bool)
	errors := make(chan error, 100)

	for i := 0; i < 100; i++ {
		go func() {
			token, err := service.GenerateGuestToken(uuid.New())
			if err != nil {
				errors <- err
				done <- true
				return
			}

			if _, err := service.Validate(token); err != nil {
				errors <- err
			}
			done <- true
		}()
	}

	for i := 0; i < 100; i++ {
		<-done
	}

	close(errors)
	assert.Empty(t, errors)
}
