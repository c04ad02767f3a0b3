package types

import (
	"time"

	"github.com/udea/couriersync/internal/shared/principal"
)

// CreateUserInput carries a new account with its plain-text password.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     principal.Role
}

// UpdateUserInput replaces the profile. An empty Password keeps the stored hash.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     principal.Role
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// AdminCredentials identify the bootstrap administrator.
type AdminCredentials struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// DefaultAdminCredentials are used when no bootstrap account is configured.
func DefaultAdminCredentials() AdminCredentials {
	return AdminCredentials{
		Name:     "Admin",
		Email:    "admin@couriersync.com",
		Password: "admin123",
		Phone:    "1234567890",
	}
}

// BootstrapOutcome reports what EnsureAdmin did.
type BootstrapOutcome string

const (
	BootstrapCreated   BootstrapOutcome = "created"
	BootstrapPromoted  BootstrapOutcome = "promoted"
	BootstrapUnchanged BootstrapOutcome = "unchanged"
)
