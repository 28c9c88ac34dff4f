package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvertrail/tours-backend/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestFeedbackRepository_CreateAndGet(t *testing.T) {
	repo := NewFeedbackRepository()

	created, err := repo.Create(models.Feedback{
		UserID:   int64Ptr(1),
		Subject:  "Lost voucher",
		Message:  "I cannot find my booking voucher",
		Category: "booking",
		Priority: models.FeedbackPriorityNormal,
		Status:   models.FeedbackStatusNew,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFeedbackRepository_GetByUserID(t *testing.T) {
	repo := NewFeedbackRepository()

	_, err := repo.Create(models.Feedback{UserID: int64Ptr(1), Subject: "a", Status: models.FeedbackStatusNew})
	require.NoError(t, err)
	_, err = repo.Create(models.Feedback{UserID: int64Ptr(2), Subject: "b", Status: models.FeedbackStatusNew})
	require.NoError(t, err)
	_, err = repo.Create(models.Feedback{Subject: "anonymous", Status: models.FeedbackStatusNew})
	require.NoError(t, err)

	mine := repo.GetByUserID(1)
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].Subject)
}

func TestFeedbackRepository_RespondMarksInProgress(t *testing.T) {
	repo := NewFeedbackRepository()
	created, err := repo.Create(models.Feedback{UserID: int64Ptr(1), Subject: "a", Status: models.FeedbackStatusNew})
	require.NoError(t, err)

	responded, err := repo.Respond(created.ID, 9, "We are looking into it")
	require.NoError(t, err)
	assert.Equal(t, "We are looking into it", responded.AdminResponse)
	require.NotNil(t, responded.AdminID)
	assert.Equal(t, int64(9), *responded.AdminID)
	assert.NotNil(t, responded.RespondedAt)
	assert.Equal(t, models.FeedbackStatusInProgress, responded.Status)

	_, err = repo.Respond(999, 9, "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFeedbackRepository_RespondKeepsResolvedStatus(t *testing.T) {
	repo := NewFeedbackRepository()
	created, err := repo.Create(models.Feedback{UserID: int64Ptr(1), Subject: "a", Status: models.FeedbackStatusNew})
	require.NoError(t, err)

	_, err = repo.UpdateStatus(created.ID, models.FeedbackStatusResolved)
	require.NoError(t, err)

	// A follow-up response must not bounce the status back to in_progress
	responded, err := repo.Respond(created.ID, 9, "Closing note")
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackStatusResolved, responded.Status)
}

func TestFeedbackRepository_UpdateStatusAndPriority(t *testing.T) {
	repo := NewFeedbackRepository()
	created, err := repo.Create(models.Feedback{UserID: int64Ptr(1), Subject: "a", Status: models.FeedbackStatusNew, Priority: models.FeedbackPriorityNormal})
	require.NoError(t, err)

	fb, err := repo.UpdateStatus(created.ID, models.FeedbackStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackStatusClosed, fb.Status)

	fb, err = repo.UpdatePriority(created.ID, models.FeedbackPriorityUrgent)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackPriorityUrgent, fb.Priority)

	_, err = repo.UpdateStatus(999, models.FeedbackStatusClosed)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = repo.UpdatePriority(999, models.FeedbackPriorityLow)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
