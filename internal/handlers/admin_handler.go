package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/silvertrail/tours-backend/internal/middleware"
	"github.com/silvertrail/tours-backend/internal/models"
	"github.com/silvertrail/tours-backend/internal/repository"
)

// AdminHandler serves the administrative CRUD surface: tours, bookings,
// users and feedback management. It talks to the same repositories as the
// core flow; there is no separate path for administrative callers.
type AdminHandler struct {
	tours    *repository.TourRepository
	users    *repository.UserRepository
	bookings *repository.BookingRepository
	feedback *repository.FeedbackRepository
	logger   *logrus.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	tours *repository.TourRepository,
	users *repository.UserRepository,
	bookings *repository.BookingRepository,
	feedback *repository.FeedbackRepository,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		tours:    tours,
		users:    users,
		bookings: bookings,
		feedback: feedback,
		logger:   logger,
	}
}

// tourRequest is the payload for tour create/update
type tourRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Category        string   `json:"category"`
	DurationDays    int      `json:"duration_days"`
	BasePrice       float64  `json:"base_price"`
	MinPrice        *float64 `json:"min_price"`
	MaxPrice        *float64 `json:"max_price"`
	Capacity        int      `json:"capacity"`
	PhotoURL        string   `json:"photo_url"`
	WeatherAdvisory bool     `json:"weather_advisory"`
}

func (r *tourRequest) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return models.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(r.City) == "" {
		return models.NewValidationError("city", "city is required")
	}
	if !models.IsValidTourCategory(models.TourCategory(r.Category)) {
		return models.NewValidationError("category", "unknown tour category")
	}
	if r.DurationDays < 1 {
		return models.NewValidationError("duration_days", "duration must be at least one day")
	}
	if r.BasePrice < 0 {
		return models.NewValidationError("base_price", "price cannot be negative")
	}
	return nil
}

func (r *tourRequest) toModel() models.Tour {
	return models.Tour{
		Title:           strings.TrimSpace(r.Title),
		Description:     r.Description,
		City:            strings.TrimSpace(r.City),
		Country:         strings.TrimSpace(r.Country),
		Category:        models.TourCategory(r.Category),
		DurationDays:    r.DurationDays,
		BasePrice:       r.BasePrice,
		MinPrice:        r.MinPrice,
		MaxPrice:        r.MaxPrice,
		Capacity:        r.Capacity,
		PhotoURL:        r.PhotoURL,
		WeatherAdvisory: r.WeatherAdvisory,
	}
}

// CreateTour handles POST /admin/tours
func (h *AdminHandler) CreateTour(c *gin.Context) {
	var req tourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, err)
		return
	}

	tour, err := h.tours.Create(req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{"tour_id": tour.ID, "title": tour.Title}).Info("Tour created")
	c.JSON(http.StatusCreated, gin.H{"tour": tour})
}

// UpdateTour handles PUT /admin/tours/:id
func (h *AdminHandler) UpdateTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	var req tourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, err)
		return
	}

	tour, err := h.tours.Update(id, req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tour": tour})
}

// DeleteTour handles DELETE /admin/tours/:id. Existing bookings keep their
// tour reference; pending intents against the tour will fail with
// tour_unavailable at consumption time.
func (h *AdminHandler) DeleteTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	if err := h.tours.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	h.logger.WithField("tour_id", id).Info("Tour deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Tour deleted"})
}

// AllBookings handles GET /admin/bookings
func (h *AdminHandler) AllBookings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bookings": h.bookings.List()})
}

// UpdateBookingStatus handles PUT /admin/bookings/:id/status. Booking status
// transitions happen only through this admin action.
func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}

	status := models.BookingStatus(req.Status)
	if !models.IsValidBookingStatus(status) {
		respondError(c, models.NewValidationError("status", "unknown booking status"))
		return
	}

	booking, err := h.bookings.UpdateStatus(id, status)
	if err != nil {
		respondError(c, err)
		return
	}

	session, _ := middleware.GetSession(c)
	h.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"status":     booking.Status,
		"admin_id":   *session.UserID,
	}).Info("Booking status changed")

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.users.List()})
}

// ListFeedback handles GET /admin/feedback
func (h *AdminHandler) ListFeedback(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"feedback": h.feedback.List()})
}

// RespondToFeedback handles POST /admin/feedback/:id/respond
func (h *AdminHandler) RespondToFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	var req struct {
		Response string `json:"response"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Response) == "" {
		respondError(c, models.NewValidationError("response", "response is required"))
		return
	}

	session, _ := middleware.GetSession(c)

	fb, err := h.feedback.Respond(id, *session.UserID, strings.TrimSpace(req.Response))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": fb})
}

// UpdateFeedbackStatus handles PUT /admin/feedback/:id/status
func (h *AdminHandler) UpdateFeedbackStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}

	status := models.FeedbackStatus(req.Status)
	if !models.IsValidFeedbackStatus(status) {
		respondError(c, models.NewValidationError("status", "unknown feedback status"))
		return
	}

	fb, err := h.feedback.UpdateStatus(id, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": fb})
}

// UpdateFeedbackPriority handles PUT /admin/feedback/:id/priority
func (h *AdminHandler) UpdateFeedbackPriority(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	var req struct {
		Priority string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}

	priority := models.FeedbackPriority(req.Priority)
	if !models.IsValidFeedbackPriority(priority) {
		respondError(c, models.NewValidationError("priority", "unknown feedback priority"))
		return
	}

	fb, err := h.feedback.UpdatePriority(id, priority)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": fb})
}
