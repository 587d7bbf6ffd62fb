package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, "tab-1")
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		mock.ExpectGet("tab-1:cart").SetVal(`[]`)

		v, ok, err := store.Get(ctx, "cart")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[]`, v)
	})

	t.Run("GetMissing", func(t *testing.T) {
		mock.ExpectGet("tab-1:orders").RedisNil()

		_, ok, err := store.Get(ctx, "orders")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("GetError", func(t *testing.T) {
		mock.ExpectGet("tab-1:orders").SetErr(errors.New("timeout"))

		_, _, err := store.Get(ctx, "orders")
		assert.Error(t, err)
	})

	t.Run("Set", func(t *testing.T) {
		mock.ExpectSet("tab-1:cart", `[1]`, 0).SetVal("OK")
		assert.NoError(t, store.Set(ctx, "cart", `[1]`))
	})

	t.Run("Remove", func(t *testing.T) {
		mock.ExpectDel("tab-1:cart").SetVal(1)
		assert.NoError(t, store.Remove(ctx, "cart"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
