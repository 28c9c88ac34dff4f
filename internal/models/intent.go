package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingIntent is a provisional booking selection captured before the caller
// is authenticated. It is owned by the intent store, keyed by session id, and
// is valid for exactly one consumption. Only the tour/date/passenger selection
// is captured; the price is recomputed from the current tour state when the
// intent is consumed.
type PendingIntent struct {
	TourID     int64       `json:"tour_id"`
	TravelDate string      `json:"travel_date"`
	Passengers []Passenger `json:"passengers"`
	Nonce      uuid.UUID   `json:"nonce"`
	CapturedAt time.Time   `json:"captured_at"`
}
