package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/silvertrail/tours-backend/internal/models"
	"github.com/silvertrail/tours-backend/internal/repository"
	"github.com/silvertrail/tours-backend/internal/services"
	"github.com/silvertrail/tours-backend/pkg/weather"
)

// TourHandler serves tour listing, search and detail endpoints
type TourHandler struct {
	tours   *repository.TourRepository
	pricing *services.PricingService
	weather *weather.Client
	logger  *logrus.Logger
}

// NewTourHandler creates a new TourHandler
func NewTourHandler(
	tours *repository.TourRepository,
	pricing *services.PricingService,
	weatherClient *weather.Client,
	logger *logrus.Logger,
) *TourHandler {
	return &TourHandler{
		tours:   tours,
		pricing: pricing,
		weather: weatherClient,
		logger:  logger,
	}
}

// ListTours handles GET /tours
func (h *TourHandler) ListTours(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tours": h.tours.List()})
}

// FeaturedTours handles GET /tours/featured
func (h *TourHandler) FeaturedTours(c *gin.Context) {
	limit := 6
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	c.JSON(http.StatusOK, gin.H{"tours": h.tours.ListFeatured(limit)})
}

// SearchTours handles GET /search
func (h *TourHandler) SearchTours(c *gin.Context) {
	filter := models.TourFilter{
		Location: c.Query("location"),
		Category: models.TourCategory(c.Query("type")),
		Keyword:  c.Query("keyword"),
	}

	if raw := c.Query("min_price"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &parsed
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &parsed
		}
	}
	if raw := c.Query("duration"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Duration = &parsed
		}
	}

	c.JSON(http.StatusOK, gin.H{"tours": h.tours.Search(filter)})
}

// GetTour handles GET /tour/:id. The detail view includes a weather advisory
// for elderly_mountain tours; the advisory is informational and never blocks
// booking.
func (h *TourHandler) GetTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	tour, err := h.tours.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{"tour": tour}

	if tour.WeatherAdvisory && tour.Category == models.CategoryElderlyMountain {
		report := h.weather.GetWeather(tour.City, tour.Country)
		response["weather"] = report
		response["weather_ok"] = weather.OKForElderlyMountain(report)
	}

	c.JSON(http.StatusOK, response)
}

// PreviewPrice handles GET /tour/:id/price?passengers=N. The preview uses the
// same pricing engine as booking creation, so the quoted total always matches
// what a booking would cost.
func (h *TourHandler) PreviewPrice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, models.ErrNotFound)
		return
	}

	tour, err := h.tours.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := strconv.Atoi(c.DefaultQuery("passengers", "1"))
	if err != nil || count < 0 {
		respondError(c, models.NewValidationError("passengers", "passenger count must be a number"))
		return
	}

	breakdown, err := h.pricing.ComputeTotal(tour, make([]models.Passenger, count))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": breakdown})
}
