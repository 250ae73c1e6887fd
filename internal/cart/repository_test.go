package cart

import (
	"context"
	"testing"

	"fantasy-books/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_LoadSave(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	repo := NewRepository(storage.NewStore(backend))

	t.Run("absent cart is empty", func(t *testing.T) {
		items := repo.Load(ctx)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("round trip", func(t *testing.T) {
		want := []CartItem{
			{BookID: 3, Title: "The Crystal Mage", Author: "A", Price: decimal.RequireFromString("38.50"), Image: "img", Quantity: 2},
		}
		repo.Save(ctx, want)

		got := repo.Load(ctx)
		require.Len(t, got, 1)
		assert.True(t, got[0].Price.Equal(want[0].Price))
		got[0].Price, want[0].Price = decimal.Zero, decimal.Zero
		assert.Equal(t, want, got)
	})

	t.Run("stored layout", func(t *testing.T) {
		raw, err := backend.Get(ctx, storage.KeyCart)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"bookId":3,"title":"The Crystal Mage","author":"A","price":38.5,"image":"img","quantity":2}]`, string(raw))
	})

	t.Run("nil saves an empty list", func(t *testing.T) {
		repo.Save(ctx, nil)
		raw, err := backend.Get(ctx, storage.KeyCart)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("clear", func(t *testing.T) {
		repo.Save(ctx, []CartItem{{BookID: 1, Quantity: 1}})
		repo.Clear(ctx)
		_, err := backend.Get(ctx, storage.KeyCart)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("corrupted cart reads as empty", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, storage.KeyCart, []byte("{not json")))
		assert.Empty(t, repo.Load(ctx))
	})
}
