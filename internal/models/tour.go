package models

// TourCategory represents the category of a tour
type TourCategory string

const (
	CategoryCity            TourCategory = "city"
	CategoryMountain        TourCategory = "mountain"
	CategoryElderlyMountain TourCategory = "elderly_mountain"
	CategoryGroup           TourCategory = "group"
	CategoryExperience      TourCategory = "experience"
)

// ValidTourCategories lists the categories accepted on tour create/update
var ValidTourCategories = []TourCategory{
	CategoryCity,
	CategoryMountain,
	CategoryElderlyMountain,
	CategoryGroup,
	CategoryExperience,
}

// IsValidTourCategory reports whether c is an accepted tour category
func IsValidTourCategory(c TourCategory) bool {
	for _, valid := range ValidTourCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// Tour represents a bookable tour. Capacity is informational only and is not
// enforced against bookings.
type Tour struct {
	ID              int64        `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	City            string       `json:"city"`
	Country         string       `json:"country"`
	Category        TourCategory `json:"category"`
	DurationDays    int          `json:"duration_days"`
	BasePrice       float64      `json:"base_price"` // per passenger
	MinPrice        *float64     `json:"min_price,omitempty"`
	MaxPrice        *float64     `json:"max_price,omitempty"`
	Capacity        int          `json:"capacity"`
	PhotoURL        string       `json:"photo_url,omitempty"`
	WeatherAdvisory bool         `json:"weather_advisory"` // eligible for weather advisory on the detail view
}

// UnitPrice returns the per-passenger price used for booking totals.
// Preference order follows the listing data: min price, then max price, then
// the base price.
func (t *Tour) UnitPrice() float64 {
	if t.MinPrice != nil {
		return *t.MinPrice
	}
	if t.MaxPrice != nil {
		return *t.MaxPrice
	}
	return t.BasePrice
}

// TourFilter holds search criteria for tour lookups
type TourFilter struct {
	Location string
	Category TourCategory
	MinPrice *float64
	MaxPrice *float64
	Duration *int
	Keyword  string
}
