package ports

import (
	"context"

	"github.com/udea/couriersync/internal/domains/users/application/types"
	"github.com/udea/couriersync/internal/domains/users/domain"
	"github.com/udea/couriersync/internal/shared/principal"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Create(ctx context.Context, input types.CreateUserInput) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id int64, input types.UpdateUserInput) (*domain.User, error)
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Login(ctx context.Context, email, password string) (*types.AccessToken, error)
	VerifyToken(ctx context.Context, token string) (principal.Principal, error)
	EnsureAdmin(ctx context.Context, credentials types.AdminCredentials) (types.BootstrapOutcome, error)
}
