package domain

import (
	"errors"
	"strings"

	"github.com/udea/couriersync/internal/shared/principal"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrInvalidRole   = errors.New("role must be ADMIN, OPERATOR or DRIVER")
)

// MinPasswordLength is the shortest accepted plain-text password.
const MinPasswordLength = 6

// User is an account able to sign in. PasswordHash never holds plain text.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         principal.Role
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks plain-text strength before hashing.
func ValidatePassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Validate normalizes profile fields and re-applies invariants.
func (u *User) Validate() error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)
	u.Phone = strings.TrimSpace(u.Phone)
	if u.Name == "" {
		return ErrEmptyName
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// Principal is the identity carried by tokens issued for u.
func (u *User) Principal() principal.Principal {
	return principal.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
