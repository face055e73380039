//go:build integration

package driver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waybill/internal/registry/models"
	"waybill/pkg/platform/sentinel"
	"waybill/pkg/testutil/containers"
)

func TestPostgresDriverStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	store := NewPostgres(pg.Pool)
	require.NoError(t, store.EnsureSchema(ctx))

	newDriver := func(name string) *models.Driver {
		return &models.Driver{
			ID:        uuid.New(),
			Name:      name,
			CarID:     "CAR-1",
			CreatedAt: time.Now().UTC(),
		}
	}

	t.Run("create, exists and ordered list", func(t *testing.T) {
		names := []string{"Carol", "Alice", "Bob"}
		for _, name := range names {
			require.NoError(t, store.CreateIfNameAvailable(ctx, newDriver(name)))
		}

		exists, err := store.Exists(ctx, "Alice")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.Exists(ctx, "Nobody")
		require.NoError(t, err)
		assert.False(t, exists)

		drivers, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, drivers, 3)
		for i, name := range names {
			assert.Equal(t, name, drivers[i].Name)
		}
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		err := store.CreateIfNameAvailable(ctx, newDriver("Alice"))
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	})

	t.Run("concurrent creates admit exactly one", func(t *testing.T) {
		const workers = 8
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			errs []error
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.CreateIfNameAvailable(ctx, newDriver("Racer"))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}()
		}
		wg.Wait()

		var won, lost int
		for _, err := range errs {
			switch {
			case err == nil:
				won++
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				lost++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, workers-1, lost)
	})
}
