package ports

import (
	"context"
	"errors"

	"github.com/udea/couriersync/internal/domains/clients/domain"
)

var ErrNotFound = errors.New("client not found")

type Repository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
