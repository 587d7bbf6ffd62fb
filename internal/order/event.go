package order

import (
	"context"
	"time"
)

const (
	EventCreated        = "order.created"
	EventStatusChanged  = "order.status_changed"
	EventPaymentChanged = "order.payment_changed"
)

// Event is the payload published after a ledger mutation is persisted.
type Event struct {
	Type          string        `json:"type"`
	OrderID       string        `json:"orderId"`
	UserID        string        `json:"userId"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Total         float64       `json:"total"`
	At            time.Time     `json:"at"`
}

// Publisher delivers ledger events to subscribers outside the process.
type Publisher interface {
	Publish(ctx context.Context, key, eventType string, payload any) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, string, any) error { return nil }

func newEvent(eventType string, o Order) Event {
	return Event{
		Type:          eventType,
		OrderID:       o.ID,
		UserID:        o.UserID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total,
		At:            o.UpdatedAt,
	}
}
