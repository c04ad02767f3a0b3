package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udea/couriersync/internal/domains/clients/adapters/memory"
	"github.com/udea/couriersync/internal/domains/clients/domain"
)

func newService() *Service {
	return NewService(memory.NewRepository())
}

func TestCreateAndFindClient(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.Client{Name: "  Acme ", Email: "ops@acme.test", Phone: "555"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Acme", created.Name)

	found, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, found)

	exists, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestCreateClient_Invalid(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &domain.Client{Name: " "})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.Create(context.Background(), &domain.Client{Name: "x", Email: "nope"})
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestFindClient_MissingIsEmpty(t *testing.T) {
	svc := newService()

	found, err := svc.FindByID(context.Background(), 404)
	require.NoError(t, err)
	require.Nil(t, found)

	exists, err := svc.Exists(context.Background(), 404)
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = svc.Exists(context.Background(), 0)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestUpdateAndDeleteClient(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, err := svc.Create(ctx, &domain.Client{Name: "Acme"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &domain.Client{Name: "Acme Corp", Address: "Calle 1"})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Acme Corp", updated.Name)

	_, err = svc.Update(ctx, 999, &domain.Client{Name: "ghost"})
	require.ErrorIs(t, err, ErrNotFound)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	require.NoError(t, svc.DeleteByID(ctx, created.ID))
	require.ErrorIs(t, svc.DeleteByID(ctx, created.ID), ErrNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}
