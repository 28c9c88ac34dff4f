package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/silvertrail/tours-backend/internal/config"
	"github.com/silvertrail/tours-backend/pkg/token"
)

// SessionContextKey is the key used to store the session in Gin context
const SessionContextKey = "session"

// Session represents the caller's session as recovered from the signed cookie
type Session struct {
	SessionID     uuid.UUID
	UserID        *int64
	Role          string
	Authenticated bool
}

// IsAdmin reports whether the session belongs to an authenticated admin
func (s *Session) IsAdmin() bool {
	return s.Authenticated && s.Role == "admin"
}

// SessionMiddleware recovers the session from the signed cookie, issuing a
// fresh guest session when the cookie is absent, expired or tampered with.
// Every request therefore has a session id for the intent store to key on.
func SessionMiddleware(tokenService *token.Service, cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := &Session{}

		cookie, err := c.Cookie(cfg.CookieName)
		if err == nil && cookie != "" {
			if claims, err := tokenService.Validate(cookie); err == nil {
				session.SessionID = claims.SessionID
				session.UserID = claims.UserID
				session.Role = claims.Role
				session.Authenticated = claims.Authenticated
			}
		}

		if session.SessionID == uuid.Nil {
			session.SessionID = uuid.New()
			if guestToken, err := tokenService.GenerateGuestToken(session.SessionID); err == nil {
				setSessionCookie(c, cfg, guestToken)
			}
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// GetSession retrieves the session from the Gin context
func GetSession(c *gin.Context) (*Session, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*Session)
	return session, ok
}

// RequireAuth aborts with 401 unless the session is authenticated
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || !session.Authenticated || session.UserID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "You must be logged in to access this resource",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the session belongs to an admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || !session.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Administrator access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetAuthenticatedCookie reissues the session cookie for a logged-in user,
// keeping the existing session id so a pending intent survives the redirect.
func SetAuthenticatedCookie(c *gin.Context, tokenService *token.Service, cfg config.SessionConfig, session *Session, userID int64, role string) error {
	userToken, err := tokenService.GenerateUserToken(session.SessionID, userID, role)
	if err != nil {
		return err
	}
	setSessionCookie(c, cfg, userToken)
	return nil
}

// ClearSessionCookie replaces the cookie with a fresh guest session
func ClearSessionCookie(c *gin.Context, tokenService *token.Service, cfg config.SessionConfig) {
	sessionID := uuid.New()
	if guestToken, err := tokenService.GenerateGuestToken(sessionID); err == nil {
		setSessionCookie(c, cfg, guestToken)
	}
}

func setSessionCookie(c *gin.Context, cfg config.SessionConfig, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, value, int(cfg.TokenExpiry.Seconds()), "/", "", cfg.CookieSecure, true)
}
