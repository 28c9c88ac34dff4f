package services

import (
	"github.com/silvertrail/tours-backend/internal/config"
	"github.com/silvertrail/tours-backend/internal/models"
)

// PriceBreakdown is the result of a price computation
type PriceBreakdown struct {
	UnitPrice        float64 `json:"unit_price"`
	PassengerCount   int     `json:"passenger_count"`
	PolicyMultiplier float64 `json:"policy_multiplier"`
	Total            float64 `json:"total"`
}

// PricingService computes booking totals. It is a pure function of the tour
// and passenger list: the direct and deferred booking paths call the same
// code and always agree on price for the same inputs.
type PricingService struct {
	cfg config.BookingConfig
}

// NewPricingService creates a new pricing service
func NewPricingService(cfg config.BookingConfig) *PricingService {
	return &PricingService{cfg: cfg}
}

// PolicyMultiplier returns the configured multiplier for a tour category.
// Categories without a policy pay the listed price unchanged.
func (s *PricingService) PolicyMultiplier(category models.TourCategory) float64 {
	if category == models.CategoryElderlyMountain {
		return s.cfg.ElderlyMountainMultiplier
	}
	return 1.0
}

// ComputeTotal computes the total price for a tour and passenger list.
// An empty passenger list is rejected before any arithmetic happens.
func (s *PricingService) ComputeTotal(tour models.Tour, passengers []models.Passenger) (PriceBreakdown, error) {
	if len(passengers) == 0 {
		return PriceBreakdown{}, models.ErrInvalidPassengerList
	}

	multiplier := s.PolicyMultiplier(tour.Category)
	unit := tour.UnitPrice()

	return PriceBreakdown{
		UnitPrice:        unit,
		PassengerCount:   len(passengers),
		PolicyMultiplier: multiplier,
		Total:            unit * float64(len(passengers)) * multiplier,
	}, nil
}
