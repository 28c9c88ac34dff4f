package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvertrail/tours-backend/internal/config"
	"github.com/silvertrail/tours-backend/pkg/token"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:      "test-session-secret",
		CookieName:  "tours_session",
		TokenExpiry: time.Hour,
	}
}

func setupRouter(tokenService *token.Service, cfg config.SessionConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(tokenService, cfg))
	router.GET("/whoami", func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"session_id":    session.SessionID.String(),
			"authenticated": session.Authenticated,
		})
	})
	router.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/admin-only", RequireAuth(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSessionMiddleware_IssuesGuestSession(t *testing.T) {
	cfg := testSessionConfig()
	tokenService := token.NewService(cfg.Secret, cfg.TokenExpiry)
	router := setupRouter(tokenService, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w, cfg.CookieName)
	require.NotNil(t, cookie, "a guest session cookie should be set")
	assert.True(t, cookie.HttpOnly)

	claims, err := tokenService.Validate(cookie.Value)
	require.NoError(t, err)
	assert.False(t, claims.Authenticated)
	assert.NotEqual(t, uuid.Nil, claims.SessionID)
}

func TestSessionMiddleware_RecoversExistingSession(t *testing.T) {
	cfg := testSessionConfig()
	tokenService := token.NewService(cfg.Secret, cfg.TokenExpiry)
	router := setupRouter(tokenService, cfg)

	sessionID := uuid.New()
	guestToken, err := tokenService.GenerateGuestToken(sessionID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: guestToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sessionID.String())

	// A valid cookie is not reissued
	assert.Nil(t, sessionCookie(t, w, cfg.CookieName))
}

func TestSessionMiddleware_ReplacesTamperedCookie(t *testing.T) {
	cfg := testSessionConfig()
	tokenService := token.NewService(cfg.Secret, cfg.TokenExpiry)
	router := setupRouter(tokenService, cfg)

	// Token signed with a different secret
	otherService := token.NewService("other-secret", cfg.TokenExpiry)
	forged, err := otherService.GenerateUserToken(uuid.New(), 1, "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: forged})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	cookie := sessionCookie(t, w, cfg.CookieName)
	require.NotNil(t, cookie, "a fresh guest cookie should replace the forged one")
	claims, err := tokenService.Validate(cookie.Value)
	require.NoError(t, err)
	assert.False(t, claims.Authenticated)
}

func TestRequireAuth(t *testing.T) {
	cfg := testSessionConfig()
	tokenService := token.NewService(cfg.Secret, cfg.TokenExpiry)
	router := setupRouter(tokenService, cfg)

	// Guest is rejected
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated user passes
	userToken, err := tokenService.GenerateUserToken(uuid.New(), 1, "client")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: userToken})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	cfg := testSessionConfig()
	tokenService := token.NewService(cfg.Secret, cfg.TokenExpiry)
	router := setupRouter(tokenService, cfg)

	// Client role is rejected
	clientToken, err := tokenService.GenerateUserToken(uuid.New(), 1, "client")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: clientToken})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin role passes
	adminToken, err := tokenService.GenerateUserToken(uuid.New(), 2, "admin")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: adminToken})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetAuthenticatedCookieKeepsSessionID(t *testing.T) {
	cfg := testSessionConfig()
	tokenService := token.NewService(cfg.Secret, cfg.TokenExpiry)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	session := &Session{SessionID: uuid.New()}
	require.NoError(t, SetAuthenticatedCookie(c, tokenService, cfg, session, 42, "client"))

	cookie := sessionCookie(t, w, cfg.CookieName)
	require.NotNil(t, cookie)

	claims, err := tokenService.Validate(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, claims.SessionID)
	assert.True(t, claims.Authenticated)
	require.NotNil(t, claims.UserID)
	assert.Equal(t, int64(42), *claims.UserID)
}
