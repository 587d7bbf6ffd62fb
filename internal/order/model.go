package order

import (
	"slices"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPacked    Status = "packed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// progression is the forward path an order normally takes. Cancelled sits
// outside it.
var progression = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPacked,
	StatusShipped,
	StatusDelivered,
}

func (s Status) Valid() bool {
	return s == StatusCancelled || slices.Contains(progression, s)
}

// Terminal reports whether s is an end state.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Reached reports whether an order in status s is at stage or beyond it on
// the forward path. StatusPacked.Reached(StatusConfirmed) is true; a cancelled
// order has reached only StatusCancelled.
func (s Status) Reached(stage Status) bool {
	if s == StatusCancelled || stage == StatusCancelled {
		return s == stage
	}
	i, j := slices.Index(progression, s), slices.Index(progression, stage)
	return i >= 0 && j >= 0 && i >= j
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentOnline
}

// ParsePaymentMethod accepts the canonical values and the long form
// "cashOnDelivery".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cod", "cashondelivery", "cash_on_delivery":
		return PaymentCOD, nil
	case "online":
		return PaymentOnline, nil
	}
	return "", ErrInvalidPaymentMethod
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

type ShippingAddress struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// Line is a frozen copy of a cart line taken when the order was placed.
type Line struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image,omitempty"`
	SellerID   string  `json:"sellerId"`
	SellerName string  `json:"sellerName,omitempty"`
}

func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []Line          `json:"items"`
	Total           float64         `json:"total"`
	Status          Status          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (o Order) clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// HasSeller reports whether any line of o was sold by sellerID.
func (o Order) HasSeller(sellerID string) bool {
	return slices.ContainsFunc(o.Items, func(l Line) bool { return l.SellerID == sellerID })
}

// NewOrder carries everything Create needs. Items are copied; the caller
// keeps ownership of the slice.
type NewOrder struct {
	UserID          string
	Items           []Line
	Total           float64
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
}
