package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/silvertrail/tours-backend/internal/middleware"
	"github.com/silvertrail/tours-backend/internal/models"
	"github.com/silvertrail/tours-backend/internal/repository"
)

const (
	maxFeedbackSubjectLen = 200
	maxFeedbackMessageLen = 2000
)

// FeedbackHandler serves user feedback submission and history
type FeedbackHandler struct {
	feedback *repository.FeedbackRepository
	logger   *logrus.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedback *repository.FeedbackRepository, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, logger: logger}
}

// Submit handles POST /feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}

	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)

	if subject == "" {
		respondError(c, models.NewValidationError("subject", "subject is required"))
		return
	}
	if message == "" {
		respondError(c, models.NewValidationError("message", "message is required"))
		return
	}
	if len(subject) > maxFeedbackSubjectLen {
		respondError(c, models.NewValidationError("subject", "subject is too long"))
		return
	}
	if len(message) > maxFeedbackMessageLen {
		respondError(c, models.NewValidationError("message", "message is too long"))
		return
	}

	priority := models.FeedbackPriority(req.Priority)
	if priority == "" {
		priority = models.FeedbackPriorityNormal
	}
	if !models.IsValidFeedbackPriority(priority) {
		respondError(c, models.NewValidationError("priority", "unknown priority"))
		return
	}

	category := req.Category
	if category == "" {
		category = "general"
	}

	session, _ := middleware.GetSession(c)

	fb, err := h.feedback.Create(models.Feedback{
		UserID:    session.UserID,
		Subject:   subject,
		Message:   message,
		Category:  category,
		Priority:  priority,
		Status:    models.FeedbackStatusNew,
		CreatedAt: time.Now(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"feedback_id": fb.ID,
		"priority":    fb.Priority,
		"category":    fb.Category,
	}).Info("Feedback submitted")

	c.JSON(http.StatusCreated, gin.H{"feedback": fb})
}

// MyFeedback handles GET /my-feedback
func (h *FeedbackHandler) MyFeedback(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{"feedback": h.feedback.GetByUserID(*session.UserID)})
}
