package repository

import (
	"strings"
	"sync"

	"github.com/silvertrail/tours-backend/internal/models"
)

// TourRepository is an in-memory store for tours. Identifier allocation is
// strictly increasing for the lifetime of the process; identifiers are never
// reused after deletion.
type TourRepository struct {
	mu     sync.RWMutex
	tours  map[int64]models.Tour
	order  []int64
	nextID int64
}

// NewTourRepository creates a new tour repository
func NewTourRepository() *TourRepository {
	return &TourRepository{
		tours:  make(map[int64]models.Tour),
		nextID: 1,
	}
}

// Create allocates an identifier and stores the tour
func (r *TourRepository) Create(tour models.Tour) (models.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tour.ID = r.nextID
	r.nextID++
	r.tours[tour.ID] = tour
	r.order = append(r.order, tour.ID)
	return tour, nil
}

// GetByID returns the tour with the given id, or models.ErrNotFound
func (r *TourRepository) GetByID(id int64) (models.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tour, ok := r.tours[id]
	if !ok {
		return models.Tour{}, models.ErrNotFound
	}
	return tour, nil
}

// List returns all tours in insertion order
func (r *TourRepository) List() []models.Tour {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Tour, 0, len(r.order))
	for _, id := range r.order {
		if tour, ok := r.tours[id]; ok {
			result = append(result, tour)
		}
	}
	return result
}

// ListFeatured returns up to limit tours in insertion order
func (r *TourRepository) ListFeatured(limit int) []models.Tour {
	tours := r.List()
	if limit > 0 && len(tours) > limit {
		return tours[:limit]
	}
	return tours
}

// Search returns tours matching the filter, in insertion order
func (r *TourRepository) Search(filter models.TourFilter) []models.Tour {
	all := r.List()
	result := make([]models.Tour, 0, len(all))
	for _, tour := range all {
		if matchesFilter(tour, filter) {
			result = append(result, tour)
		}
	}
	return result
}

func matchesFilter(tour models.Tour, filter models.TourFilter) bool {
	if filter.Location != "" {
		loc := strings.ToLower(filter.Location)
		if !strings.Contains(strings.ToLower(tour.City), loc) &&
			!strings.Contains(strings.ToLower(tour.Country), loc) {
			return false
		}
	}
	if filter.Category != "" && tour.Category != filter.Category {
		return false
	}
	if filter.MinPrice != nil && tour.UnitPrice() < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && tour.UnitPrice() > *filter.MaxPrice {
		return false
	}
	if filter.Duration != nil && tour.DurationDays != *filter.Duration {
		return false
	}
	if filter.Keyword != "" {
		kw := strings.ToLower(filter.Keyword)
		if !strings.Contains(strings.ToLower(tour.Title), kw) &&
			!strings.Contains(strings.ToLower(tour.Description), kw) {
			return false
		}
	}
	return true
}

// Update replaces the stored tour fields for id. The identifier is preserved.
func (r *TourRepository) Update(id int64, tour models.Tour) (models.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tours[id]; !ok {
		return models.Tour{}, models.ErrNotFound
	}
	tour.ID = id
	r.tours[id] = tour
	return tour, nil
}

// Delete removes the tour with the given id. The identifier is not reused.
func (r *TourRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tours[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.tours, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
