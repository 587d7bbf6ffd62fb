package product

import (
	"context"
	"errors"
	"testing"

	"handmade-market/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Set(ctx context.Context, key, value string) error { return f.err }

func TestRepository_LoadSave(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewRepository(store)

	t.Run("EmptyStore", func(t *testing.T) {
		products, ok, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, products)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, DemoCatalog()[:2]))

		products, ok, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Len(t, products, 2)
		assert.Equal(t, "Handwoven Silk Saree", products[0].Name)
	})

	t.Run("NilSavesEmptyCollection", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, nil))

		products, ok, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, products)
	})

	t.Run("CorruptValue", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, storage.KeyProducts, "{"))

		_, _, err := repo.Load(ctx)
		assert.ErrorIs(t, err, ErrFailedLoadCatalog)
	})

	t.Run("SaveError", func(t *testing.T) {
		broken := NewRepository(failingStore{Store: store, err: errors.New("quota exceeded")})

		err := broken.Save(ctx, DemoCatalog())
		assert.ErrorIs(t, err, ErrFailedSaveCatalog)
	})
}
