package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestSaveLoadJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, SaveJSON(ctx, s, "products", []sample{{ID: "1", Name: "Vase"}}))

	raw, _, _ := s.Get(ctx, "products")
	assert.JSONEq(t, `{"v":1,"data":[{"id":"1","name":"Vase"}]}`, raw)

	var out []sample
	ok, err := LoadJSON(ctx, s, "products", &out)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []sample{{ID: "1", Name: "Vase"}}, out)
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		var out []sample
		ok, err := LoadJSON(ctx, NewMemoryStore(), "cart", &out)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, out)
	})

	t.Run("LegacyBareArray", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, "cart", `[{"id":"7","name":"Saree"}]`))

		var out []sample
		ok, err := LoadJSON(ctx, s, "cart", &out)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Saree", out[0].Name)
	})

	t.Run("LegacyBareObject", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, "currentUser", `{"id":"7","name":"Asha"}`))

		var out sample
		ok, err := LoadJSON(ctx, s, "currentUser", &out)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Asha", out.Name)
	})

	t.Run("FutureVersion", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, "cart", `{"v":99,"data":[]}`))

		var out []sample
		_, err := LoadJSON(ctx, s, "cart", &out)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("Corrupt", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, "cart", `[{"id":`))

		var out []sample
		_, err := LoadJSON(ctx, s, "cart", &out)
		assert.ErrorIs(t, err, ErrCorruptValue)
	})

	t.Run("WrongShape", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, "cart", `{"v":1,"data":"text"}`))

		var out []sample
		_, err := LoadJSON(ctx, s, "cart", &out)
		assert.ErrorIs(t, err, ErrCorruptValue)
	})
}
