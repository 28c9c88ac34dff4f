package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/silvertrail/tours-backend/internal/middleware"
	"github.com/silvertrail/tours-backend/internal/models"
	"github.com/silvertrail/tours-backend/internal/repository"
	"github.com/silvertrail/tours-backend/internal/services"
)

// BookingHandler serves booking creation and booking views
type BookingHandler struct {
	orchestrator *services.BookingOrchestratorService
	bookings     *repository.BookingRepository
	tours        *repository.TourRepository
	users        *repository.UserRepository
	voucher      *services.VoucherService
	audit        *services.AuditService
	logger       *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(
	orchestrator *services.BookingOrchestratorService,
	bookings *repository.BookingRepository,
	tours *repository.TourRepository,
	users *repository.UserRepository,
	voucher *services.VoucherService,
	audit *services.AuditService,
	logger *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		orchestrator: orchestrator,
		bookings:     bookings,
		tours:        tours,
		users:        users,
		voucher:      voucher,
		audit:        audit,
		logger:       logger,
	}
}

// Book handles POST /book/:id. An authenticated caller gets a booking
// immediately; a guest gets their selection captured and is pointed at the
// registration page.
func (h *BookingHandler) Book(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "invalid request body: " + err.Error()})
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "session missing"})
		return
	}

	if !session.Authenticated || session.UserID == nil {
		if err := h.orchestrator.CaptureIntent(session.SessionID.String(), tourID, req.TravelDate, req.Passengers); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"message": "Please register or log in to complete your booking",
			"next":    "/register",
		})
		return
	}

	booking, err := h.orchestrator.BookDirect(*session.UserID, tourID, req.TravelDate, req.Passengers)
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit.LogBookingEvent("booking_created", *session.UserID, booking.ID, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, gin.H{
		"booking": booking,
		"next":    "/booking/" + strconv.FormatInt(booking.ID, 10),
	})
}

// PendingIntent handles GET /intent. The registration page uses this to
// pre-fill passenger fields the guest already entered. Peek only; the intent
// stays consumable.
func (h *BookingHandler) PendingIntent(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"intent": nil})
		return
	}

	intent, found := h.orchestrator.PendingIntent(session.SessionID.String())
	if !found {
		c.JSON(http.StatusOK, gin.H{"intent": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"intent": intent})
}

// GetBooking handles GET /booking/:id, visible to the owner and admins
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, ok := h.loadOwnedBooking(c)
	if !ok {
		return
	}

	tour, err := h.tours.GetByID(booking.TourID)
	if err != nil {
		// A booking always references an existing tour at creation time, but
		// the tour may have been removed by an admin afterwards.
		c.JSON(http.StatusOK, gin.H{"booking": booking, "tour": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking, "tour": tour})
}

// MyBookings handles GET /my-bookings
func (h *BookingHandler) MyBookings(c *gin.Context) {
	session, _ := middleware.GetSession(c)

	bookings := h.bookings.GetByUserID(*session.UserID)
	result := make([]gin.H, 0, len(bookings))
	for _, booking := range bookings {
		entry := gin.H{"booking": booking}
		if tour, err := h.tours.GetByID(booking.TourID); err == nil {
			entry["tour"] = tour
		}
		result = append(result, entry)
	}

	c.JSON(http.StatusOK, gin.H{"bookings": result})
}

// CancelBooking handles POST /booking/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	session, _ := middleware.GetSession(c)

	booking, err := h.orchestrator.CancelBooking(bookingID, *session.UserID, session.IsAdmin())
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit.LogBookingEvent("booking_cancelled", *session.UserID, booking.ID, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// Voucher handles GET /booking/:id/voucher, returning a PDF confirmation
func (h *BookingHandler) Voucher(c *gin.Context) {
	booking, ok := h.loadOwnedBooking(c)
	if !ok {
		return
	}

	tour, err := h.tours.GetByID(booking.TourID)
	if err != nil {
		respondError(c, models.ErrTourUnavailable)
		return
	}
	user, err := h.users.GetByID(booking.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, filename, err := h.voucher.BuildVoucherPDF(booking, tour, user)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render booking voucher")
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// loadOwnedBooking parses the id parameter and enforces owner-or-admin
// access. Unauthorized lookups report not found rather than forbidden so the
// id space is not probeable.
func (h *BookingHandler) loadOwnedBooking(c *gin.Context) (models.Booking, bool) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return models.Booking{}, false
	}

	booking, err := h.bookings.GetByID(bookingID)
	if err != nil {
		respondError(c, err)
		return models.Booking{}, false
	}

	session, _ := middleware.GetSession(c)
	if booking.UserID != *session.UserID && !session.IsAdmin() {
		respondError(c, models.ErrNotFound)
		return models.Booking{}, false
	}

	return booking, true
}
