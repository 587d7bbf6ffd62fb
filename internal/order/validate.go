package order

import (
	"fmt"
	"strings"
)

// Validate reports the missing fields of a shipping address.
func (a ShippingAddress) Validate() error {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"postalCode", a.PostalCode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteAddress, strings.Join(missing, ", "))
	}
	return nil
}

func (n NewOrder) validate() error {
	switch {
	case strings.TrimSpace(n.UserID) == "":
		return ErrMissingUser
	case len(n.Items) == 0:
		return ErrEmptyOrder
	case n.Total < 0:
		return ErrInvalidTotal
	case !n.PaymentMethod.Valid():
		return ErrInvalidPaymentMethod
	case !n.PaymentStatus.Valid():
		return ErrInvalidPaymentStatus
	}
	return nil
}
