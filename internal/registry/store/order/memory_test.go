package order

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

	// Same order number twice on purpose: the store keeps no unique key.
	for _, num := range []int64{7, 3, 7} {
		require.NoError(t, store.Append(ctx, &models.Order{
			ID:           uuid.New(),
			OrderNumber:  num,
			CustomerName: "Bob",
			CreatedAt:    now,
		}))
	}

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, int64(7), orders[0].OrderNumber)
	assert.Equal(t, int64(3), orders[1].OrderNumber)
	assert.Equal(t, int64(7), orders[2].OrderNumber)
}

func TestListReturnsCopy(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &models.Order{ID: uuid.New(), OrderNumber: 1}))

	first, err := store.List(ctx)
	require.NoError(t, err)
	first[0] = nil

	second, err := store.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, second[0])
}
