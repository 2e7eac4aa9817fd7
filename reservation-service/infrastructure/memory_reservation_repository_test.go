package infrastructure

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airline/reservation-system/reservation-service/domain"
	"github.com/airline/reservation-system/shared/models"
)

func storedReservation(t *testing.T) *domain.Reservation {
	t.Helper()
	passenger, err := domain.NewPassengerInfo("Hong Gildong", "hong@example.com", "010-1234-5678", "")
	require.NoError(t, err)
	reservation, err := domain.CreateReservation("KE001", passenger)
	require.NoError(t, err)
	return reservation
}

func TestMemoryReservationRepository_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReservationRepository()

	reservation := storedReservation(t)
	require.NoError(t, repo.Save(ctx, reservation))

	// Mutating the caller's instance must not leak into the store
	require.NoError(t, reservation.Fail("flight", "after save"))

	loaded, err := repo.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, domain.ReservationStatusPending, loaded.Status)
	assert.Empty(t, loaded.Events())

	// And mutating a loaded copy must not change the next read
	require.NoError(t, loaded.MarkSeatReserved(1))
	again, err := repo.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusPending, again.Status)
}

func TestMemoryReservationRepository_MissingID(t *testing.T) {
	repo := NewMemoryReservationRepository()

	reservation, err := repo.FindByID(context.Background(), "RES-missing")
	assert.NoError(t, err)
	assert.Nil(t, reservation)

	exists, err := repo.Exists(context.Background(), "RES-missing")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryReservationRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReservationRepository()

	ids := make([]models.ID, 20)
	for i := range ids {
		reservation := storedReservation(t)
		require.NoError(t, repo.Save(ctx, reservation))
		ids[i] = reservation.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(2)
		go func(id models.ID) {
			defer wg.Done()
			reservation, err := repo.FindByID(ctx, id)
			assert.NoError(t, err)
			if assert.NotNil(t, reservation) {
				assert.NoError(t, repo.Save(ctx, reservation))
			}
		}(id)
		go func(id models.ID) {
			defer wg.Done()
			_, err := repo.FindByStatus(ctx, domain.ReservationStatusPending)
			assert.NoError(t, err)
			exists, err := repo.Exists(ctx, id)
			assert.NoError(t, err)
			assert.True(t, exists)
		}(id)
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(ids))
}
