package models

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValidBookingStatus reports whether s is a known booking status
func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Passenger is a named individual with passport details included in a single
// booking. It is a value object embedded in the booking, not independently
// persisted, and is distinct from the account holder.
type Passenger struct {
	FullName           string `json:"full_name"`
	PassportNumber     string `json:"passport_number"`
	PassportIssuedBy   string `json:"passport_issued_by"`
	PassportIssuedDate string `json:"passport_issued_date"`
}

// Booking represents a confirmed reservation of a tour for one or more
// passengers. TotalPrice is fixed at creation time from the pricing engine
// output and is never recomputed.
type Booking struct {
	ID          int64         `json:"id"`
	TourID      int64         `json:"tour_id"`
	UserID      int64         `json:"user_id"`
	TravelDate  string        `json:"travel_date"` // YYYY-MM-DD
	Passengers  []Passenger   `json:"passengers"`
	TotalPrice  float64       `json:"total_price"`
	Status      BookingStatus `json:"status"`
	BookingDate time.Time     `json:"booking_date"`
}

// PassengerCount returns the number of passengers on the booking
func (b *Booking) PassengerCount() int {
	return len(b.Passengers)
}

// BookRequest is the payload for POST /book/:id
type BookRequest struct {
	TravelDate string      `json:"travel_date"`
	Passengers []Passenger `json:"passengers"`
}
