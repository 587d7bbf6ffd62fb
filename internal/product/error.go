package product

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyName     = errors.New("product name cannot be empty")
	ErrEmptySeller   = errors.New("product seller is required")
	ErrInvalidPrice  = errors.New("product price must not be negative")
	ErrInvalidStock  = errors.New("product stock must not be negative")
	ErrInvalidRating = errors.New("product rating must be between 0 and 5")
	ErrInvalidStatus = errors.New("invalid approval state")
	ErrEmptyPatch    = errors.New("no product fields to update")

	// -- Persistence --
	ErrFailedLoadCatalog = errors.New("failed to load product catalog")
	ErrFailedSaveCatalog = errors.New("failed to save product catalog")
)
