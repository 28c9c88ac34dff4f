package repository

import (
	"sync"

	"github.com/silvertrail/tours-backend/internal/models"
)

// BookingRepository is an in-memory store for bookings. Only the booking
// orchestrator creates bookings; admin views read and transition them.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[int64]models.Booking
	order    []int64
	nextID   int64
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[int64]models.Booking),
		nextID:   1,
	}
}

// Create allocates an identifier and stores the booking
func (r *BookingRepository) Create(booking models.Booking) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.ID = r.nextID
	r.nextID++
	r.bookings[booking.ID] = booking
	r.order = append(r.order, booking.ID)
	return booking, nil
}

// GetByID returns the booking with the given id, or models.ErrNotFound
func (r *BookingRepository) GetByID(id int64) (models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return models.Booking{}, models.ErrNotFound
	}
	return booking, nil
}

// List returns all bookings in insertion order
func (r *BookingRepository) List() []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Booking, 0, len(r.order))
	for _, id := range r.order {
		if booking, ok := r.bookings[id]; ok {
			result = append(result, booking)
		}
	}
	return result
}

// GetByUserID returns all bookings belonging to a user, in insertion order
func (r *BookingRepository) GetByUserID(userID int64) []models.Booking {
	all := r.List()
	result := make([]models.Booking, 0)
	for _, booking := range all {
		if booking.UserID == userID {
			result = append(result, booking)
		}
	}
	return result
}

// GetByTourID returns all bookings referencing a tour, in insertion order
func (r *BookingRepository) GetByTourID(tourID int64) []models.Booking {
	all := r.List()
	result := make([]models.Booking, 0)
	for _, booking := range all {
		if booking.TourID == tourID {
			result = append(result, booking)
		}
	}
	return result
}

// Update replaces the stored booking fields for id. The identifier is preserved.
func (r *BookingRepository) Update(id int64, booking models.Booking) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return models.Booking{}, models.ErrNotFound
	}
	booking.ID = id
	r.bookings[id] = booking
	return booking, nil
}

// UpdateStatus transitions the booking status
func (r *BookingRepository) UpdateStatus(id int64, status models.BookingStatus) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return models.Booking{}, models.ErrNotFound
	}
	booking.Status = status
	r.bookings[id] = booking
	return booking, nil
}

// Delete removes the booking with the given id. The identifier is not reused.
func (r *BookingRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.bookings, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
