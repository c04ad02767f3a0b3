// Package principal carries the authenticated caller and its single role.
package principal

import (
	"context"
	"errors"
	"strings"
)

// Role is the closed set of roles a user may hold. A user holds exactly one.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
	RoleDriver   Role = "DRIVER"
)

// ErrUnknownRole is returned when a role value is outside the closed set.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole resolves a role name, accepting an optional ROLE_ prefix and any casing.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.TrimPrefix(normalized, "ROLE_")
	switch Role(normalized) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleOperator:
		return RoleOperator, nil
	case RoleDriver:
		return RoleDriver, nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleDriver:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// Principal is the authenticated identity behind a request.
type Principal struct {
	UserID int64
	Email  string
	Role   Role
}

type contextKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// WithRole attaches a principal that only carries a role.
func WithRole(ctx context.Context, role Role) context.Context {
	if existing, ok := FromContext(ctx); ok {
		existing.Role = role
		return WithPrincipal(ctx, existing)
	}
	return WithPrincipal(ctx, Principal{Role: role})
}

// FromContext extracts the principal stored by WithPrincipal.
func FromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(contextKey{}).(Principal)
	if !ok || !p.Role.Valid() {
		return Principal{}, false
	}
	return p, true
}
