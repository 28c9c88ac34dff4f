package repository

import (
	"strings"
	"sync"

	"github.com/silvertrail/tours-backend/internal/models"
)

// UserRepository is an in-memory store for user accounts. Email lookups are
// case-insensitive.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	order  []int64
	nextID int64
}

// NewUserRepository creates a new user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int64]models.User),
		nextID: 1,
	}
}

// Create allocates an identifier and stores the user. The email uniqueness
// check happens under the same write lock as the insert, so two concurrent
// registrations with the same email cannot both succeed.
func (r *UserRepository) Create(user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if existing, ok := r.users[id]; ok && strings.EqualFold(existing.Email, user.Email) {
			return models.User{}, &models.DuplicateEmailError{Email: existing.Email}
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
	return user, nil
}

// GetByID returns the user with the given id, or models.ErrNotFound
func (r *UserRepository) GetByID(id int64) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return user, nil
}

// GetByEmail returns the user registered under email, or models.ErrNotFound
func (r *UserRepository) GetByEmail(email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		user, ok := r.users[id]
		if ok && strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

// List returns all users in insertion order
func (r *UserRepository) List() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		if user, ok := r.users[id]; ok {
			result = append(result, user)
		}
	}
	return result
}

// Update replaces the stored user fields for id. The identifier is preserved.
func (r *UserRepository) Update(id int64, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return models.User{}, models.ErrNotFound
	}
	user.ID = id
	r.users[id] = user
	return user, nil
}

// Delete removes the user with the given id. The identifier is not reused.
func (r *UserRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.users, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
