package cart

import (
	"context"
	"fmt"

	"handmade-market/internal/storage"
)

type Repository interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
}

type repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Load(ctx context.Context) ([]Line, error) {
	var lines []Line
	if _, err := storage.LoadJSON(ctx, r.store, storage.KeyCart, &lines); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedLoadCart, err)
	}
	return lines, nil
}

func (r *repository) Save(ctx context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	if err := storage.SaveJSON(ctx, r.store, storage.KeyCart, lines); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedSaveCart, err)
	}
	return nil
}
