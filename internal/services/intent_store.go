package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/silvertrail/tours-backend/internal/models"
)

// IntentStore bridges an unauthenticated booking attempt across the
// registration/login redirect boundary. Intents live server-side keyed by
// session id; the client cookie only carries the signed session id, so a
// replayed cookie cannot resurrect a consumed intent.
//
// At most one pending intent exists per session: a new capture overwrites any
// prior unconsumed intent. Consume is a destructive read guarded by the store
// lock, so a concurrent duplicate consumption (double form submit) yields the
// intent exactly once.
type IntentStore struct {
	mu      sync.Mutex
	intents map[string]models.PendingIntent
	logger  *logrus.Logger
}

// NewIntentStore creates a new intent store
func NewIntentStore(logger *logrus.Logger) *IntentStore {
	return &IntentStore{
		intents: make(map[string]models.PendingIntent),
		logger:  logger,
	}
}

// Capture stores a pending intent for the session, replacing any prior
// unconsumed intent, and returns the intent's single-use nonce.
func (s *IntentStore) Capture(sessionID string, tourID int64, travelDate string, passengers []models.Passenger) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent := models.PendingIntent{
		TourID:     tourID,
		TravelDate: travelDate,
		Passengers: passengers,
		Nonce:      uuid.New(),
		CapturedAt: time.Now(),
	}

	if prior, ok := s.intents[sessionID]; ok {
		s.logger.WithFields(logrus.Fields{
			"session_id":    sessionID,
			"prior_tour_id": prior.TourID,
			"tour_id":       tourID,
		}).Info("Pending intent overwritten by new capture")
	}

	s.intents[sessionID] = intent
	return intent.Nonce
}

// Peek returns the pending intent for the session without consuming it.
// Used to pre-fill the registration form with passenger data already entered.
func (s *IntentStore) Peek(sessionID string) (models.PendingIntent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[sessionID]
	return intent, ok
}

// Consume atomically removes and returns the pending intent for the session.
// A second consume for the same session returns ok=false.
func (s *IntentStore) Consume(sessionID string) (models.PendingIntent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[sessionID]
	if !ok {
		return models.PendingIntent{}, false
	}
	delete(s.intents, sessionID)
	return intent, true
}

// Expire discards any pending intent for the session. Invoked on logout and
// abandonment.
func (s *IntentStore) Expire(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.intents[sessionID]; ok {
		delete(s.intents, sessionID)
		s.logger.WithField("session_id", sessionID).Debug("Pending intent expired")
	}
}

// Len returns the number of pending intents currently held
func (s *IntentStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.intents)
}
