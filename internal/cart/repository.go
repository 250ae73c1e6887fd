package cart

import (
	"context"

	"fantasy-books/internal/storage"
)

// Repository persists the whole cart as one document.
type Repository interface {
	Load(ctx context.Context) []CartItem
	Save(ctx context.Context, items []CartItem)
	Clear(ctx context.Context)
}

type repository struct {
	store *storage.Store
}

func NewRepository(store *storage.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Load(ctx context.Context) []CartItem {
	items := storage.LoadOr(ctx, r.store, storage.KeyCart, []CartItem{})
	if items == nil {
		return []CartItem{}
	}
	return items
}

func (r *repository) Save(ctx context.Context, items []CartItem) {
	if items == nil {
		items = []CartItem{}
	}
	r.store.Save(ctx, storage.KeyCart, items)
}

func (r *repository) Clear(ctx context.Context) {
	r.store.Remove(ctx, storage.KeyCart)
}
