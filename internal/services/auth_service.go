package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/silvertrail/tours-backend/internal/config"
	"github.com/silvertrail/tours-backend/internal/models"
	"github.com/silvertrail/tours-backend/internal/repository"
	"github.com/silvertrail/tours-backend/pkg/validator"
)

// dummyHash is compared against when a login email is unknown so that the
// unknown-email and wrong-password paths cost the same.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.MinCost)

// AuthService registers and authenticates users against the user repository
type AuthService struct {
	users      *repository.UserRepository
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, security config.SecurityConfig, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:      users,
		bcryptCost: security.BcryptCost,
		logger:     logger,
	}
}

// Register validates the profile, checks email uniqueness and creates the
// user with the client role. Returns a ValidationError for malformed or
// missing fields and a DuplicateEmailError for a taken email.
func (s *AuthService) Register(req models.RegisterRequest) (models.User, error) {
	if err := validator.ValidateRegistration(req); err != nil {
		return models.User{}, err
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	// Fast-path rejection before the expensive hash. The authoritative
	// uniqueness check is the one inside users.Create, under the store lock.
	if _, err := s.users.GetByEmail(email); err == nil {
		return models.User{}, &models.DuplicateEmailError{Email: email}
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.User{}, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(models.User{
		Email:              email,
		PasswordHash:       string(hash),
		Role:               models.RoleClient,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Phone:              strings.TrimSpace(req.Phone),
		PassportNumber:     strings.TrimSpace(req.PassportNumber),
		PassportIssuedBy:   strings.TrimSpace(req.PassportIssuedBy),
		PassportIssuedDate: strings.TrimSpace(req.PassportIssuedDate),
		CreatedAt:          time.Now(),
	})
	if err != nil {
		var dupErr *models.DuplicateEmailError
		if errors.As(err, &dupErr) {
			return models.User{}, dupErr
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return user, nil
}

// Login verifies the password against the stored bcrypt hash. Both an unknown
// email and a wrong password return models.ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		// Burn a comparison anyway to keep both failure paths uniform.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.User{}, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, models.ErrInvalidCredentials
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User logged in")

	return user, nil
}
