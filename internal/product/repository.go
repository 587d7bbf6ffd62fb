package product

import (
	"context"
	"fmt"

	"handmade-market/internal/storage"
)

// Repository persists the whole catalog as one collection.
type Repository interface {
	Load(ctx context.Context) ([]Product, bool, error)
	Save(ctx context.Context, products []Product) error
}

type repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Load(ctx context.Context) ([]Product, bool, error) {
	var products []Product
	ok, err := storage.LoadJSON(ctx, r.store, storage.KeyProducts, &products)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrFailedLoadCatalog, err)
	}
	return products, ok, nil
}

func (r *repository) Save(ctx context.Context, products []Product) error {
	if products == nil {
		products = []Product{}
	}
	if err := storage.SaveJSON(ctx, r.store, storage.KeyProducts, products); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedSaveCatalog, err)
	}
	return nil
}
