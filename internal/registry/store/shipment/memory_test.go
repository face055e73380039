package shipment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waybill/internal/registry/models"
)

func TestAppendPreservesOrderAndDuplicates(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	now := time.Now()

	// Duplicate shipment numbers are accepted; the store keeps no unique key.
	for _, num := range []int64{100, 100, 42} {
		require.NoError(t, store.Append(ctx, &models.Shipment{
			ID:             uuid.New(),
			ShipmentNumber: num,
			DriverName:     "Dan",
			Status:         models.StatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		}))
	}

	shipments, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, shipments, 3)
	assert.Equal(t, int64(100), shipments[0].ShipmentNumber)
	assert.Equal(t, int64(100), shipments[1].ShipmentNumber)
	assert.Equal(t, int64(42), shipments[2].ShipmentNumber)
}

func TestListReturnsCopy(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &models.Shipment{ID: uuid.New(), ShipmentNumber: 1}))

	first, err := store.List(ctx)
	require.NoError(t, err)
	first[0] = nil

	second, err := store.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, second[0])
}
