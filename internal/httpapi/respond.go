package httpapi

import (
	"errors"
	"net/http"

	"handmade-market/internal/cart"
	"handmade-market/internal/checkout"
	"handmade-market/internal/dashboard"
	"handmade-market/internal/logger"
	"handmade-market/internal/order"
	"handmade-market/internal/product"
	"handmade-market/internal/session"
	"handmade-market/internal/user"
	"handmade-market/internal/utils"

	"go.uber.org/zap"
)

var (
	errNotFound   = errors.New("not found")
	errOutOfStock = errors.New("product is out of stock")
	errForbidden  = errors.New("forbidden")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, errNotFound):
		return http.StatusNotFound
	case errors.Is(err, errForbidden), errors.Is(err, dashboard.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, session.ErrSessionInvalid), errors.Is(err, session.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrAuthFailed):
		return http.StatusBadGateway
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, errOutOfStock):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrRetryable):
		return http.StatusServiceUnavailable
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, order.ErrIncompleteAddress),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidPaymentStatus),
		errors.Is(err, product.ErrEmptyName),
		errors.Is(err, product.ErrEmptySeller),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, product.ErrInvalidRating),
		errors.Is(err, product.ErrInvalidStatus),
		errors.Is(err, product.ErrEmptyPatch),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidPrice),
		errors.Is(err, cart.ErrMissingProduct),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrEmptyProfile):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
	}
	if code == http.StatusInternalServerError {
		utils.WriteJSONError(w, "internal server error", code)
		return
	}
	utils.WriteJSONError(w, err.Error(), code)
}

// authMessage turns an auth service failure into text for the user.
func authMessage(err error) string {
	var se *session.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return "authentication failed"
}
