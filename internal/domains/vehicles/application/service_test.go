package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udea/couriersync/internal/domains/vehicles/adapters/memory"
	"github.com/udea/couriersync/internal/domains/vehicles/domain"
)

func TestCreateVehicle_NormalizesPlate(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.Vehicle{Plate: " abc123 ", Model: "Toyota Corolla", MaximumCapacity: 500, Available: true})
	require.NoError(t, err)
	require.Equal(t, "ABC123", created.Plate)

	found, err := svc.FindByPlate(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
}

func TestCreateVehicle_Rejections(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &domain.Vehicle{Plate: ""})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &domain.Vehicle{Plate: "X1", MaximumCapacity: -1})
	require.ErrorIs(t, err, domain.ErrNegativeCapacity)

	_, err = svc.Create(ctx, &domain.Vehicle{Plate: "DUP1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.Vehicle{Plate: "dup1"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestVehicleLookups_MissingIsEmpty(t *testing.T) {
	svc := NewService(memory.NewRepository())

	v, err := svc.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = svc.FindByPlate(context.Background(), "NOPE")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestUpdateAndDeleteVehicle(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()
	a, err := svc.Create(ctx, &domain.Vehicle{Plate: "AAA111", Available: true})
	require.NoError(t, err)
	b, err := svc.Create(ctx, &domain.Vehicle{Plate: "BBB222"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.ID, &domain.Vehicle{Plate: "aaa111", Model: "Honda Civic", Available: false})
	require.NoError(t, err)
	require.Equal(t, "Honda Civic", updated.Model)
	require.False(t, updated.Available)

	_, err = svc.Update(ctx, a.ID, &domain.Vehicle{Plate: b.Plate})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Update(ctx, 99, &domain.Vehicle{Plate: "ZZZ"})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteByID(ctx, a.ID))
	require.ErrorIs(t, svc.DeleteByID(ctx, a.ID), ErrNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
