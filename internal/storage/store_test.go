package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the same contract against every local implementation.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("MissingKey", func(t *testing.T) {
		v, ok, err := s.Get(ctx, "absent")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("SetGetOverwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "cart", `[1]`))
		require.NoError(t, s.Set(ctx, "cart", `[1,2]`))

		v, ok, err := s.Get(ctx, "cart")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[1,2]`, v)
	})

	t.Run("RemoveIsIdempotent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "orders", `[]`))
		assert.NoError(t, s.Remove(ctx, "orders"))
		assert.NoError(t, s.Remove(ctx, "orders"))

		_, ok, err := s.Get(ctx, "orders")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("EmptyKey", func(t *testing.T) {
		_, _, err := s.Get(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyKey)
		assert.ErrorIs(t, s.Set(ctx, "", "x"), ErrEmptyKey)
		assert.ErrorIs(t, s.Remove(ctx, ""), ErrEmptyKey)
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	exerciseStore(t, fs)

	t.Run("SanitisesKeys", func(t *testing.T) {
		require.NoError(t, fs.Set(context.Background(), "../escape", "{}"))

		_, err := os.Stat(filepath.Join(dir, ".._escape.json"))
		assert.NoError(t, err)
	})

	t.Run("SurvivesReopen", func(t *testing.T) {
		require.NoError(t, fs.Set(context.Background(), "products", `["a"]`))

		reopened, err := NewFileStore(dir)
		require.NoError(t, err)
		v, ok, err := reopened.Get(context.Background(), "products")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `["a"]`, v)
	})
}
