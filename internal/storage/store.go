// Package storage is the key-value persistence adapter shared by the catalog,
// cart, order and session stores. Values are JSON strings.
package storage

import (
	"context"
	"errors"
)

// Keys used by the storefront session.
const (
	KeyCurrentUser = "currentUser"
	KeyToken       = "jwtToken"
	KeyCart        = "cart"
	KeyOrders      = "orders"
	KeyProducts    = "products"
)

var (
	ErrEmptyKey           = errors.New("storage key is empty")
	ErrUnsupportedVersion = errors.New("stored schema version is newer than supported")
	ErrCorruptValue       = errors.New("stored value is not valid JSON")
)

// Store is an opaque key-value store. A missing key is reported by ok=false,
// never by an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
