package models

import "time"

// UserRole represents the role assigned to an account
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

// User represents a registered account. Users are created by the auth service
// and are referenced, never mutated, by bookings.
type User struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               UserRole  `json:"role"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Phone              string    `json:"phone,omitempty"`
	PassportNumber     string    `json:"passport_number,omitempty"`
	PassportIssuedBy   string    `json:"passport_issued_by,omitempty"`
	PassportIssuedDate string    `json:"passport_issued_date,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest is the payload for POST /register
type RegisterRequest struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	ConfirmPassword    string `json:"confirm_password"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Phone              string `json:"phone"`
	PassportNumber     string `json:"passport_number"`
	PassportIssuedBy   string `json:"passport_issued_by"`
	PassportIssuedDate string `json:"passport_issued_date"`
}

// LoginRequest is the payload for POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
