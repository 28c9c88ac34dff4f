package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/silvertrail/tours-backend/internal/models"
)

const (
	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 6

	// DateLayout is the wire format for travel and passport dates
	DateLayout = "2006-01-02"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateRegistration checks the required fields of a registration profile.
// Returns a *models.ValidationError naming the first offending field.
func ValidateRegistration(req models.RegisterRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return models.NewValidationError("email", "email is required")
	}
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("email", "email is not valid")
	}
	if len(req.Password) < MinPasswordLength {
		return models.NewValidationError("password", "password must be at least 6 characters")
	}
	if req.Password != req.ConfirmPassword {
		return models.NewValidationError("confirm_password", "passwords do not match")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return models.NewValidationError("first_name", "first name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return models.NewValidationError("last_name", "last name is required")
	}
	if strings.TrimSpace(req.PassportNumber) == "" {
		return models.NewValidationError("passport_number", "passport number is required")
	}
	if strings.TrimSpace(req.PassportIssuedBy) == "" {
		return models.NewValidationError("passport_issued_by", "passport issuing authority is required")
	}
	if err := ValidateDate("passport_issued_date", req.PassportIssuedDate); err != nil {
		return err
	}
	return nil
}

// ValidatePassengers checks every passenger on a booking request. The empty
// list case is left to the pricing engine, which rejects it uniformly for
// both booking paths.
func ValidatePassengers(passengers []models.Passenger, max int) error {
	if max > 0 && len(passengers) > max {
		return models.NewValidationError("passengers", "too many passengers for one booking")
	}
	for _, p := range passengers {
		if strings.TrimSpace(p.FullName) == "" {
			return models.NewValidationError("passengers", "passenger name is required")
		}
		if strings.TrimSpace(p.PassportNumber) == "" {
			return models.NewValidationError("passengers", "passenger passport number is required")
		}
		if strings.TrimSpace(p.PassportIssuedBy) == "" {
			return models.NewValidationError("passengers", "passenger passport issuing authority is required")
		}
		if err := ValidateDate("passengers", p.PassportIssuedDate); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDate checks that value is a parseable YYYY-MM-DD date
func ValidateDate(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return models.NewValidationError(field, "date is required")
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return models.NewValidationError(field, "date must be in YYYY-MM-DD format")
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
