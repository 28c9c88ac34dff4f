package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/silvertrail/tours-backend/internal/config"
	"github.com/silvertrail/tours-backend/internal/middleware"
	"github.com/silvertrail/tours-backend/internal/models"
	"github.com/silvertrail/tours-backend/internal/services"
	"github.com/silvertrail/tours-backend/pkg/token"
)

// AuthHandler serves registration, login and logout. On successful
// authentication it hands any pending booking intent to the orchestrator, so
// a guest's selection becomes a booking in the same request that created or
// authenticated their account.
type AuthHandler struct {
	auth         *services.AuthService
	orchestrator *services.BookingOrchestratorService
	audit        *services.AuditService
	tokenService *token.Service
	sessionCfg   config.SessionConfig
	logger       *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	auth *services.AuthService,
	orchestrator *services.BookingOrchestratorService,
	audit *services.AuditService,
	tokenService *token.Service,
	sessionCfg config.SessionConfig,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		orchestrator: orchestrator,
		audit:        audit,
		tokenService: tokenService,
		sessionCfg:   sessionCfg,
		logger:       logger,
	}
}

// Register handles POST /register. A failed registration leaves any pending
// intent untouched so the guest can correct the form and keep their
// selection.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "session missing"})
		return
	}

	user, err := h.auth.Register(req)
	if err != nil {
		h.audit.LogAuthEvent("register", nil, req.Email, c.ClientIP(), c.Request.UserAgent(), false, err.Error())
		respondError(c, err)
		return
	}

	h.audit.LogAuthEvent("register", &user.ID, user.Email, c.ClientIP(), c.Request.UserAgent(), true, "")

	h.completeAuth(c, session, user, http.StatusCreated)
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "session missing"})
		return
	}

	user, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		// The intent, if any, stays captured: the guest can retry the login
		// without re-entering passenger data.
		h.audit.LogAuthEvent("login", nil, req.Email, c.ClientIP(), c.Request.UserAgent(), false, "invalid credentials")
		respondError(c, err)
		return
	}

	h.audit.LogAuthEvent("login", &user.ID, user.Email, c.ClientIP(), c.Request.UserAgent(), true, "")

	h.completeAuth(c, session, user, http.StatusOK)
}

// completeAuth establishes the authenticated session and converts a pending
// intent into a booking when one exists.
func (h *AuthHandler) completeAuth(c *gin.Context, session *middleware.Session, user models.User, successStatus int) {
	if err := middleware.SetAuthenticatedCookie(c, h.tokenService, h.sessionCfg, session, user.ID, string(user.Role)); err != nil {
		h.logger.WithError(err).Error("Failed to issue session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "failed to establish session"})
		return
	}

	booking, hadIntent, err := h.orchestrator.CompleteAfterAuth(session.SessionID.String(), user.ID)
	if err != nil {
		// Authentication itself succeeded; the intent was discarded.
		if errors.Is(err, models.ErrTourUnavailable) {
			c.JSON(http.StatusConflict, gin.H{
				"user":    user,
				"error":   "tour_unavailable",
				"message": "The selected tour is no longer available, please choose another",
				"next":    "/search",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to complete pending booking")
		respondError(c, err)
		return
	}

	if hadIntent {
		h.audit.LogBookingEvent("booking_created", user.ID, booking.ID, c.ClientIP(), c.Request.UserAgent())
		c.JSON(successStatus, gin.H{
			"user":    user,
			"booking": booking,
			"next":    "/booking/" + strconv.FormatInt(booking.ID, 10),
		})
		return
	}

	c.JSON(successStatus, gin.H{"user": user, "next": "/"})
}

// Logout handles POST /logout. Clears the session and expires any pending
// intent.
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if ok {
		h.orchestrator.AbandonIntent(session.SessionID.String())
		if session.UserID != nil {
			h.audit.LogAuthEvent("logout", session.UserID, "", c.ClientIP(), c.Request.UserAgent(), true, "")
		}
	}

	middleware.ClearSessionCookie(c, h.tokenService, h.sessionCfg)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "next": "/"})
}
