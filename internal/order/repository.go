package order

import (
	"context"
	"fmt"

	"handmade-market/internal/storage"
)

type Repository interface {
	Load(ctx context.Context) ([]Order, error)
	Save(ctx context.Context, orders []Order) error
}

type repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Load(ctx context.Context) ([]Order, error) {
	var orders []Order
	if _, err := storage.LoadJSON(ctx, r.store, storage.KeyOrders, &orders); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedLoadOrders, err)
	}
	return orders, nil
}

func (r *repository) Save(ctx context.Context, orders []Order) error {
	if orders == nil {
		orders = []Order{}
	}
	if err := storage.SaveJSON(ctx, r.store, storage.KeyOrders, orders); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedSaveOrders, err)
	}
	return nil
}
