package application

import (
	"context"
	"errors"
	"strings"

	"github.com/udea/couriersync/internal/domains/users/application/types"
	"github.com/udea/couriersync/internal/domains/users/domain"
	"github.com/udea/couriersync/internal/domains/users/ports"
	"github.com/udea/couriersync/internal/shared/principal"
)

// EnsureAdmin guarantees at least one ADMIN account exists. It is safe to run on every start.
// When no ADMIN exists, the account registered under credentials.Email is promoted,
// or created if absent. Blank credential fields fall back to DefaultAdminCredentials.
func (s *Service) EnsureAdmin(ctx context.Context, credentials types.AdminCredentials) (types.BootstrapOutcome, error) {
	credentials = withDefaults(credentials)
	admins, err := s.repo.CountByRole(ctx, principal.RoleAdmin)
	if err != nil {
		return "", err
	}
	if admins > 0 {
		return types.BootstrapUnchanged, nil
	}
	existing, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(credentials.Email))
	switch {
	case errors.Is(err, ports.ErrNotFound):
		_, err := s.Create(ctx, types.CreateUserInput{
			Name:     credentials.Name,
			Email:    credentials.Email,
			Password: credentials.Password,
			Phone:    credentials.Phone,
			Role:     principal.RoleAdmin,
		})
		if err != nil {
			return "", err
		}
		return types.BootstrapCreated, nil
	case err != nil:
		return "", err
	}
	existing.Role = principal.RoleAdmin
	if _, err := s.repo.Update(ctx, existing); err != nil {
		return "", mapError(err)
	}
	return types.BootstrapPromoted, nil
}

func withDefaults(c types.AdminCredentials) types.AdminCredentials {
	d := types.DefaultAdminCredentials()
	if strings.TrimSpace(c.Name) == "" {
		c.Name = d.Name
	}
	if strings.TrimSpace(c.Email) == "" {
		c.Email = d.Email
	}
	if strings.TrimSpace(c.Password) == "" {
		c.Password = d.Password
	}
	if strings.TrimSpace(c.Phone) == "" {
		c.Phone = d.Phone
	}
	return c
}
