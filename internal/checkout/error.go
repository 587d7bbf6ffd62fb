package checkout

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrMissingUser   = errors.New("checkout requires a signed-in user")
	ErrPaymentFailed = errors.New("payment was not authorised")

	// ErrRetryable marks failures that left the cart untouched; the same
	// request can be sent again.
	ErrRetryable = errors.New("checkout failed, cart kept")

	// ErrCartNotCleared is returned together with a placed order when the
	// cart could not be emptied afterwards.
	ErrCartNotCleared = errors.New("order placed but cart was not cleared")
)
