package order

import (
	"errors"
	"fmt"
)

var (
	// -- Validation & Input --
	ErrMissingUser          = errors.New("order requires a user id")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrInvalidTotal         = errors.New("order total must not be negative")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrIncompleteAddress    = errors.New("incomplete shipping address")

	// -- Lifecycle --
	ErrInvalidTransition = errors.New("order status transition not allowed")

	// -- Persistence --
	ErrFailedLoadOrders = errors.New("failed to load orders")
	ErrFailedSaveOrders = errors.New("failed to save orders")
)

// TransitionError is returned when a policy refuses a status change.
type TransitionError struct {
	OrderID string
	From    Status
	To      Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: %s -> %s: %v", e.OrderID, e.From, e.To, ErrInvalidTransition)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
