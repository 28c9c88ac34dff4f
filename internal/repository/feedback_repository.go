package repository

import (
	"sync"
	"time"

	"github.com/silvertrail/tours-backend/internal/models"
)

// FeedbackRepository is an in-memory store for feedback messages
type FeedbackRepository struct {
	mu       sync.RWMutex
	feedback map[int64]models.Feedback
	order    []int64
	nextID   int64
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{
		feedback: make(map[int64]models.Feedback),
		nextID:   1,
	}
}

// Create allocates an identifier and stores the feedback
func (r *FeedbackRepository) Create(fb models.Feedback) (models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fb.ID = r.nextID
	r.nextID++
	r.feedback[fb.ID] = fb
	r.order = append(r.order, fb.ID)
	return fb, nil
}

// GetByID returns the feedback with the given id, or models.ErrNotFound
func (r *FeedbackRepository) GetByID(id int64) (models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fb, ok := r.feedback[id]
	if !ok {
		return models.Feedback{}, models.ErrNotFound
	}
	return fb, nil
}

// List returns all feedback in insertion order
func (r *FeedbackRepository) List() []models.Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Feedback, 0, len(r.order))
	for _, id := range r.order {
		if fb, ok := r.feedback[id]; ok {
			result = append(result, fb)
		}
	}
	return result
}

// GetByUserID returns all feedback submitted by a user, in insertion order
func (r *FeedbackRepository) GetByUserID(userID int64) []models.Feedback {
	all := r.List()
	result := make([]models.Feedback, 0)
	for _, fb := range all {
		if fb.UserID != nil && *fb.UserID == userID {
			result = append(result, fb)
		}
	}
	return result
}

// Respond records an admin response and marks the feedback in progress
func (r *FeedbackRepository) Respond(id, adminID int64, response string) (models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fb, ok := r.feedback[id]
	if !ok {
		return models.Feedback{}, models.ErrNotFound
	}
	now := time.Now()
	fb.AdminResponse = response
	fb.AdminID = &adminID
	fb.RespondedAt = &now
	if fb.Status == models.FeedbackStatusNew {
		fb.Status = models.FeedbackStatusInProgress
	}
	r.feedback[id] = fb
	return fb, nil
}

// UpdateStatus transitions the feedback status
func (r *FeedbackRepository) UpdateStatus(id int64, status models.FeedbackStatus) (models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fb, ok := r.feedback[id]
	if !ok {
		return models.Feedback{}, models.ErrNotFound
	}
	fb.Status = status
	r.feedback[id] = fb
	return fb, nil
}

// UpdatePriority changes the feedback priority
func (r *FeedbackRepository) UpdatePriority(id int64, priority models.FeedbackPriority) (models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fb, ok := r.feedback[id]
	if !ok {
		return models.Feedback{}, models.ErrNotFound
	}
	fb.Priority = priority
	r.feedback[id] = fb
	return fb, nil
}

// Delete removes the feedback with the given id. The identifier is not reused.
func (r *FeedbackRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.feedback[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.feedback, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
