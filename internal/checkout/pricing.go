package checkout

import "math"

// Pricing holds the shipping and tax rules applied to a cart subtotal.
type Pricing struct {
	FreeShippingThreshold float64
	ShippingFee           float64
	TaxRate               float64
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: 500,
		ShippingFee:           50,
		TaxRate:               0.18,
	}
}

type Quote struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grandTotal"`
}

// Quote prices a subtotal. Shipping is free strictly above the threshold and
// tax is rounded to a whole currency unit.
func (p Pricing) Quote(subtotal float64) Quote {
	q := Quote{
		Subtotal: subtotal,
		Shipping: p.ShippingFee,
		Tax:      math.Round(subtotal * p.TaxRate),
	}
	if subtotal > p.FreeShippingThreshold {
		q.Shipping = 0
	}
	q.GrandTotal = q.Subtotal + q.Shipping + q.Tax
	return q
}
