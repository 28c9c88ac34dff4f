package models

import "time"

// FeedbackStatus represents the handling state of a feedback message
type FeedbackStatus string

const (
	FeedbackStatusNew        FeedbackStatus = "new"
	FeedbackStatusInProgress FeedbackStatus = "in_progress"
	FeedbackStatusResolved   FeedbackStatus = "resolved"
	FeedbackStatusClosed     FeedbackStatus = "closed"
)

// IsValidFeedbackStatus reports whether s is a known feedback status
func IsValidFeedbackStatus(s FeedbackStatus) bool {
	switch s {
	case FeedbackStatusNew, FeedbackStatusInProgress, FeedbackStatusResolved, FeedbackStatusClosed:
		return true
	}
	return false
}

// FeedbackPriority represents the urgency assigned to a feedback message
type FeedbackPriority string

const (
	FeedbackPriorityLow    FeedbackPriority = "low"
	FeedbackPriorityNormal FeedbackPriority = "normal"
	FeedbackPriorityHigh   FeedbackPriority = "high"
	FeedbackPriorityUrgent FeedbackPriority = "urgent"
)

// IsValidFeedbackPriority reports whether p is a known feedback priority
func IsValidFeedbackPriority(p FeedbackPriority) bool {
	switch p {
	case FeedbackPriorityLow, FeedbackPriorityNormal, FeedbackPriorityHigh, FeedbackPriorityUrgent:
		return true
	}
	return false
}

// Feedback represents a message from a user to the support team
type Feedback struct {
	ID            int64            `json:"id"`
	UserID        *int64           `json:"user_id,omitempty"` // nil for anonymous feedback
	Subject       string           `json:"subject"`
	Message       string           `json:"message"`
	Category      string           `json:"category"` // general, booking, technical, complaint, suggestion
	Priority      FeedbackPriority `json:"priority"`
	Status        FeedbackStatus   `json:"status"`
	AdminResponse string           `json:"admin_response,omitempty"`
	AdminID       *int64           `json:"admin_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	RespondedAt   *time.Time       `json:"responded_at,omitempty"`
}

// FeedbackRequest is the payload for POST /feedback
type FeedbackRequest struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}
