package checkout

import (
	"context"
	"time"

	"handmade-market/internal/logger"
	"handmade-market/internal/order"
	"handmade-market/internal/utils"

	"go.uber.org/zap"
)

type Charge struct {
	UserID string
	Amount float64
	Method order.PaymentMethod
}

type Receipt struct {
	Reference string
	Status    order.PaymentStatus
}

// Gateway authorises a charge before the order is recorded.
type Gateway interface {
	Authorize(ctx context.Context, c Charge) (Receipt, error)
}

// SimulatedGateway stands in for a card processor. Cash on delivery is
// accepted immediately with a pending payment; online payments complete after
// a fixed delay.
type SimulatedGateway struct {
	delay time.Duration
	after func(time.Duration) <-chan time.Time
}

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{delay: delay, after: time.After}
}

func (g *SimulatedGateway) Authorize(ctx context.Context, c Charge) (Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", string(c.Method)),
	)

	switch c.Method {
	case order.PaymentCOD:
		return Receipt{Status: order.PaymentPending}, nil
	case order.PaymentOnline:
	default:
		return Receipt{}, order.ErrInvalidPaymentMethod
	}

	if g.delay > 0 {
		select {
		case <-ctx.Done():
			log.Warn("payment abandoned", zap.Error(ctx.Err()))
			return Receipt{}, ctx.Err()
		case <-g.after(g.delay):
		}
	}

	ref := utils.GeneratePaymentReference()
	log.Info("payment authorised",
		zap.String("reference", ref),
		zap.Float64("amount", c.Amount),
	)
	return Receipt{Reference: ref, Status: order.PaymentCompleted}, nil
}
