package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silvertrail/tours-backend/internal/models"
)

// respondError maps the domain error taxonomy onto HTTP responses. Every
// error is request-scoped and reported to the caller; nothing is swallowed.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var duplicateErr *models.DuplicateEmailError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
	case errors.As(err, &duplicateErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "duplicate_email",
			"message": duplicateErr.Error(),
		})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "Invalid email or password",
		})
	case errors.Is(err, models.ErrInvalidPassengerList):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_passenger_list",
			"message": "At least one passenger is required",
		})
	case errors.Is(err, models.ErrTourUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "tour_unavailable",
			"message": "The selected tour is no longer available",
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "The requested resource was not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Something went wrong",
		})
	}
}
