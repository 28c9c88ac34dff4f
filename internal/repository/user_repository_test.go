package repository

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvertrail/tours-backend/internal/models"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository()

	created, err := repo.Create(models.User{Email: "anna@example.com", Role: models.RoleClient, FirstName: "Anna"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	_, err := repo.Create(models.User{Email: "anna@example.com", Role: models.RoleClient})
	require.NoError(t, err)

	_, err = repo.Create(models.User{Email: "Anna@Example.COM", Role: models.RoleClient})
	require.Error(t, err)

	var dupErr *models.DuplicateEmailError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "anna@example.com", dupErr.Email)
	assert.Len(t, repo.List(), 1)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewUserRepository()

	const attempts = 20
	var successes int64
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if _, err := repo.Create(models.User{Email: "anna@example.com", Role: models.RoleClient}); err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes)
	assert.Len(t, repo.List(), 1)
}

func TestUserRepository_GetByEmailCaseInsensitive(t *testing.T) {
	repo := NewUserRepository()
	created, err := repo.Create(models.User{Email: "anna@example.com", Role: models.RoleClient})
	require.NoError(t, err)

	found, err := repo.GetByEmail("Anna@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserRepository_ListInsertionOrder(t *testing.T) {
	repo := NewUserRepository()
	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		_, err := repo.Create(models.User{Email: email, Role: models.RoleClient})
		require.NoError(t, err)
	}

	users := repo.List()
	require.Len(t, users, 3)
	for i, user := range users {
		assert.Equal(t, emails[i], user.Email)
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository()
	created, err := repo.Create(models.User{Email: "anna@example.com", Role: models.RoleClient, Phone: "111"})
	require.NoError(t, err)

	updated, err := repo.Update(created.ID, models.User{Email: "anna@example.com", Role: models.RoleClient, Phone: "222"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "222", updated.Phone)

	_, err = repo.Update(999, models.User{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository()
	created, err := repo.Create(models.User{Email: "anna@example.com", Role: models.RoleClient})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))
	assert.ErrorIs(t, repo.Delete(created.ID), models.ErrNotFound)

	_, err = repo.GetByEmail("anna@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
