package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/silvertrail/tours-backend/internal/config"
	"github.com/silvertrail/tours-backend/internal/models"
	"github.com/silvertrail/tours-backend/internal/repository"
	"github.com/silvertrail/tours-backend/pkg/validator"
)

// BookingOrchestratorService ties intent capture, authentication, pricing and
// booking creation together. It is the only component that creates bookings.
type BookingOrchestratorService struct {
	tours    *repository.TourRepository
	users    *repository.UserRepository
	bookings *repository.BookingRepository
	intents  *IntentStore
	pricing  *PricingService
	cfg      config.BookingConfig
	logger   *logrus.Logger
}

// NewBookingOrchestratorService creates a new booking orchestrator
func NewBookingOrchestratorService(
	tours *repository.TourRepository,
	users *repository.UserRepository,
	bookings *repository.BookingRepository,
	intents *IntentStore,
	pricing *PricingService,
	cfg config.BookingConfig,
	logger *logrus.Logger,
) *BookingOrchestratorService {
	return &BookingOrchestratorService{
		tours:    tours,
		users:    users,
		bookings: bookings,
		intents:  intents,
		pricing:  pricing,
		cfg:      cfg,
		logger:   logger,
	}
}

// ValidateSelection checks the tour/date/passenger selection shared by the
// direct and deferred paths. The tour must exist, the travel date must lie in
// the bookable window and every passenger record must be complete.
func (s *BookingOrchestratorService) ValidateSelection(tourID int64, travelDate string, passengers []models.Passenger) (models.Tour, error) {
	tour, err := s.tours.GetByID(tourID)
	if err != nil {
		return models.Tour{}, err
	}

	if len(passengers) == 0 {
		return models.Tour{}, models.ErrInvalidPassengerList
	}
	if err := validator.ValidatePassengers(passengers, s.cfg.MaxPassengers); err != nil {
		return models.Tour{}, err
	}
	if err := s.validateTravelDate(travelDate); err != nil {
		return models.Tour{}, err
	}

	return tour, nil
}

func (s *BookingOrchestratorService) validateTravelDate(travelDate string) error {
	date, err := validator.ParseDate(travelDate)
	if err != nil {
		return models.NewValidationError("travel_date", "travel date must be in YYYY-MM-DD format")
	}

	today := time.Now().Truncate(24 * time.Hour)
	if date.Before(today) {
		return models.NewValidationError("travel_date", "travel date cannot be in the past")
	}
	if date.After(today.AddDate(0, 0, s.cfg.MaxAdvanceDays)) {
		return models.NewValidationError("travel_date", "travel date is too far in the future")
	}
	return nil
}

// BookDirect creates a booking for an authenticated user in one step. The
// intent store is never touched on this path.
func (s *BookingOrchestratorService) BookDirect(userID, tourID int64, travelDate string, passengers []models.Passenger) (models.Booking, error) {
	tour, err := s.ValidateSelection(tourID, travelDate, passengers)
	if err != nil {
		return models.Booking{}, err
	}

	if _, err := s.users.GetByID(userID); err != nil {
		return models.Booking{}, fmt.Errorf("booking user lookup: %w", err)
	}

	return s.createBooking(tour, userID, travelDate, passengers)
}

// CaptureIntent records a guest's booking selection so it survives the
// redirect through registration or login. The selection is validated up front
// so the guest is not sent through registration with an unbookable choice.
func (s *BookingOrchestratorService) CaptureIntent(sessionID string, tourID int64, travelDate string, passengers []models.Passenger) error {
	if _, err := s.ValidateSelection(tourID, travelDate, passengers); err != nil {
		return err
	}

	nonce := s.intents.Capture(sessionID, tourID, travelDate, passengers)

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"tour_id":    tourID,
		"nonce":      nonce,
	}).Info("Booking intent captured")

	return nil
}

// PendingIntent returns the session's pending intent without consuming it
func (s *BookingOrchestratorService) PendingIntent(sessionID string) (models.PendingIntent, bool) {
	return s.intents.Peek(sessionID)
}

// AbandonIntent discards the session's pending intent, if any
func (s *BookingOrchestratorService) AbandonIntent(sessionID string) {
	s.intents.Expire(sessionID)
}

// CompleteAfterAuth consumes the session's pending intent, if any, and turns
// it into a booking bound to the newly authenticated user. The price is
// recomputed from the current tour state; only the tour/date/passenger
// selection survives from capture time.
//
// Returns (booking, true, nil) when an intent was converted, (zero, false,
// nil) when no intent was pending, and (zero, true, err) when an intent
// existed but could not be converted. A failed conversion discards the
// intent: the tour is gone, so re-queueing could never succeed.
func (s *BookingOrchestratorService) CompleteAfterAuth(sessionID string, userID int64) (models.Booking, bool, error) {
	intent, ok := s.intents.Consume(sessionID)
	if !ok {
		return models.Booking{}, false, nil
	}

	tour, err := s.tours.GetByID(intent.TourID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.WithFields(logrus.Fields{
				"session_id": sessionID,
				"tour_id":    intent.TourID,
			}).Warn("Pending intent discarded, tour no longer exists")
			return models.Booking{}, true, models.ErrTourUnavailable
		}
		return models.Booking{}, true, fmt.Errorf("intent tour lookup: %w", err)
	}

	booking, err := s.createBooking(tour, userID, intent.TravelDate, intent.Passengers)
	if err != nil {
		return models.Booking{}, true, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"booking_id": booking.ID,
		"user_id":    userID,
		"nonce":      intent.Nonce,
	}).Info("Pending intent converted to booking")

	return booking, true, nil
}

// createBooking prices the passenger list against the current tour state and
// writes the booking. Both booking paths converge here, which is what keeps
// their totals identical for the same inputs.
func (s *BookingOrchestratorService) createBooking(tour models.Tour, userID int64, travelDate string, passengers []models.Passenger) (models.Booking, error) {
	breakdown, err := s.pricing.ComputeTotal(tour, passengers)
	if err != nil {
		return models.Booking{}, err
	}

	booking, err := s.bookings.Create(models.Booking{
		TourID:      tour.ID,
		UserID:      userID,
		TravelDate:  travelDate,
		Passengers:  passengers,
		TotalPrice:  breakdown.Total,
		Status:      models.BookingStatusConfirmed,
		BookingDate: time.Now(),
	})
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"tour_id":     tour.ID,
		"user_id":     userID,
		"passengers":  len(passengers),
		"total_price": booking.TotalPrice,
	}).Info("Booking created")

	return booking, nil
}

// CancelBooking transitions a booking to cancelled on behalf of its owner or
// an admin. Cancellation is refused inside the lead window before travel.
func (s *BookingOrchestratorService) CancelBooking(bookingID, userID int64, isAdmin bool) (models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	if booking.UserID != userID && !isAdmin {
		return models.Booking{}, models.ErrNotFound
	}

	travel, err := validator.ParseDate(booking.TravelDate)
	if err == nil && !isAdmin {
		if time.Until(travel) < time.Duration(s.cfg.CancelLeadDays)*24*time.Hour {
			return models.Booking{}, models.NewValidationError("travel_date",
				fmt.Sprintf("bookings cannot be cancelled less than %d days before travel", s.cfg.CancelLeadDays))
		}
	}

	return s.bookings.UpdateStatus(bookingID, models.BookingStatusCancelled)
}
