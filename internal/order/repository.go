package order

import (
	"context"

	"fantasy-books/internal/storage"
)

// Repository persists the full order list as one document, newest first.
type Repository interface {
	// Load reports false when no order list has been stored yet.
	Load(ctx context.Context) ([]Order, bool)
	SaveAll(ctx context.Context, orders []Order)
}

type repository struct {
	store *storage.Store
}

func NewRepository(store *storage.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Load(ctx context.Context) ([]Order, bool) {
	var orders []Order
	if !r.store.Load(ctx, storage.KeyOrders, &orders) {
		return nil, false
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, true
}

func (r *repository) SaveAll(ctx context.Context, orders []Order) {
	if orders == nil {
		orders = []Order{}
	}
	r.store.Save(ctx, storage.KeyOrders, orders)
}
