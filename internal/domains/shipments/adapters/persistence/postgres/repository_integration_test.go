//go:build integration

package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
	"github.com/udea/couriersync/internal/platform/postgres/pgtest"
)

func newShipment(t *testing.T, code string) *domain.Shipment {
	t.Helper()
	shipment, err := domain.NewShipment(1, domain.StatusPending, domain.PriorityHigh, "")
	require.NoError(t, err)
	require.NoError(t, shipment.AssignTrackingCode(code))
	return shipment
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, newShipment(t, "CS1000001"))
	require.NoError(t, err)
	assert.NotZero(t, created.Entity.ID)
	assert.False(t, created.Metadata.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, created.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS1000001", byID.Entity.TrackingCode)

	byCode, err := repo.GetByTrackingCode(ctx, "CS1000001")
	require.NoError(t, err)
	assert.Equal(t, created.Entity.ID, byCode.Entity.ID)

	_, err = repo.Create(ctx, newShipment(t, "CS1000001"))
	require.ErrorIs(t, err, ports.ErrDuplicateTrackingCode)

	_, err = repo.GetByID(ctx, 999999)
	require.ErrorIs(t, err, ports.ErrNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_UpdateRollsBackOnMutateError(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()
	created, err := repo.Create(ctx, newShipment(t, "CS1000002"))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, created.Entity.ID, func(current *domain.Shipment) error {
		current.Status = domain.StatusDelivered
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := repo.GetByID(ctx, created.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Entity.Status)

	updated, err := repo.Update(ctx, created.Entity.ID, func(current *domain.Shipment) error {
		current.Status = domain.StatusInTransit
		current.Observations = "loaded"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInTransit, updated.Entity.Status)
	assert.Equal(t, "CS1000002", updated.Entity.TrackingCode)
}

func TestRepository_UpdateSerializesPerRow(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()
	created, err := repo.Create(ctx, newShipment(t, "CS1000003"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, created.Entity.ID, func(current *domain.Shipment) error {
				if current.Status != domain.StatusPending {
					return errors.New("stale")
				}
				current.Status = domain.StatusInTransit
				return nil
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestRepository_DeleteWithGuard(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()
	created, err := repo.Create(ctx, newShipment(t, "CS1000004"))
	require.NoError(t, err)

	denied := errors.New("denied")
	require.ErrorIs(t, repo.Delete(ctx, created.Entity.ID, func(*domain.Shipment) error { return denied }), denied)
	require.NoError(t, repo.Delete(ctx, created.Entity.ID, nil))
	require.ErrorIs(t, repo.Delete(ctx, created.Entity.ID, nil), ports.ErrNotFound)
}
