package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrInvalidPrice    = errors.New("invalid cart price")
	ErrMissingProduct  = errors.New("cart line requires a product id")

	// -- Persistence --
	ErrFailedLoadCart = errors.New("failed to load cart")
	ErrFailedSaveCart = errors.New("failed to save cart")
)
