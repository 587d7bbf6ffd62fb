package user

import (
	"fmt"
	"strings"
)

// Role is a closed set of values: Customer, Seller and Admin are the only
// roles that can exist. The zero Role is treated as Customer.
type Role struct {
	name string
}

var (
	Customer = Role{"customer"}
	Seller   = Role{"seller"}
	Admin    = Role{"admin"}
)

func (r Role) String() string {
	if r.name == "" {
		return Customer.name
	}
	return r.name
}

// ParseRole accepts the canonical names plus "artisan", the name older
// clients use for sellers.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "customer", "user":
		return Customer, nil
	case "seller", "artisan":
		return Seller, nil
	case "admin":
		return Admin, nil
	}
	return Role{}, fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Match dispatches on r. Every role needs a handler, so adding a role is a
// compile error at each call site until it is handled.
func Match[T any](r Role, customer, seller, admin func() T) T {
	switch r {
	case Seller:
		return seller()
	case Admin:
		return admin()
	default:
		return customer()
	}
}
