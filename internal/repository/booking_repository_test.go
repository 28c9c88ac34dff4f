package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvertrail/tours-backend/internal/models"
)

func TestBookingRepository_CreateAndGet(t *testing.T) {
	repo := NewBookingRepository()

	created, err := repo.Create(models.Booking{
		TourID:     1,
		UserID:     2,
		TravelDate: "2026-10-01",
		Passengers: []models.Passenger{{FullName: "Anna Bergström", PassportNumber: "P1"}},
		TotalPrice: 90,
		Status:     models.BookingStatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBookingRepository_GetByUserID(t *testing.T) {
	repo := NewBookingRepository()

	for _, userID := range []int64{1, 2, 1, 1} {
		_, err := repo.Create(models.Booking{TourID: 1, UserID: userID, Status: models.BookingStatusConfirmed})
		require.NoError(t, err)
	}

	mine := repo.GetByUserID(1)
	require.Len(t, mine, 3)
	for _, booking := range mine {
		assert.Equal(t, int64(1), booking.UserID)
	}

	assert.Empty(t, repo.GetByUserID(99))
}

func TestBookingRepository_GetByTourID(t *testing.T) {
	repo := NewBookingRepository()

	for _, tourID := range []int64{5, 6, 5} {
		_, err := repo.Create(models.Booking{TourID: tourID, UserID: 1, Status: models.BookingStatusConfirmed})
		require.NoError(t, err)
	}

	assert.Len(t, repo.GetByTourID(5), 2)
	assert.Len(t, repo.GetByTourID(6), 1)
	assert.Empty(t, repo.GetByTourID(7))
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	repo := NewBookingRepository()
	created, err := repo.Create(models.Booking{TourID: 1, UserID: 1, Status: models.BookingStatusConfirmed})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(created.ID, models.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)

	_, err = repo.UpdateStatus(999, models.BookingStatusCancelled)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBookingRepository_DeleteDoesNotReuseIDs(t *testing.T) {
	repo := NewBookingRepository()
	first, err := repo.Create(models.Booking{TourID: 1, UserID: 1})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(first.ID))

	second, err := repo.Create(models.Booking{TourID: 1, UserID: 1})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
