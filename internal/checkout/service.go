package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"handmade-market/internal/cart"
	"handmade-market/internal/logger"
	"handmade-market/internal/order"
	"handmade-market/internal/utils"

	"go.uber.org/zap"
)

type Request struct {
	UserID  string                `json:"-"`
	Address order.ShippingAddress `json:"shippingAddress"`
	Method  order.PaymentMethod   `json:"paymentMethod"`
}

type Result struct {
	OrderID          string              `json:"orderId"`
	Quote            Quote               `json:"quote"`
	PaymentStatus    order.PaymentStatus `json:"paymentStatus"`
	PaymentReference string              `json:"paymentReference,omitempty"`
	Instructions     []string            `json:"instructions"`
}

// Outcome labels reported to an Observer.
const (
	OutcomePlaced         = "placed"
	OutcomeRejected       = "rejected"
	OutcomePaymentFailed  = "payment_failed"
	OutcomeOrderFailed    = "order_failed"
	OutcomeCartNotCleared = "cart_not_cleared"
)

// Observer is told how each checkout attempt ended.
type Observer func(outcome string, method order.PaymentMethod)

type Service interface {
	Quote(ctx context.Context) (Quote, error)
	PlaceOrder(ctx context.Context, req Request) (Result, error)
}

type service struct {
	carts   cart.Service
	orders  order.Service
	gateway Gateway
	pricing Pricing
	observe Observer
}

func NewService(carts cart.Service, orders order.Service, gateway Gateway, pricing Pricing, observe Observer) Service {
	if observe == nil {
		observe = func(string, order.PaymentMethod) {}
	}
	return &service{
		carts:   carts,
		orders:  orders,
		gateway: gateway,
		pricing: pricing,
		observe: observe,
	}
}

func (s *service) Quote(ctx context.Context) (Quote, error) {
	if s.carts.Count(ctx) == 0 {
		return Quote{}, ErrEmptyCart
	}
	return s.pricing.Quote(s.carts.Total(ctx)), nil
}

// PlaceOrder authorises payment, records the order and then empties the
// cart. Every failure before the order is recorded leaves the cart as it was
// and wraps ErrRetryable.
func (s *service) PlaceOrder(ctx context.Context, req Request) (Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.String("user_id", req.UserID),
	)

	lines := s.carts.Lines(ctx)
	if err := s.validate(req, lines); err != nil {
		log.Warn("checkout rejected", zap.Error(err))
		s.observe(OutcomeRejected, req.Method)
		return Result{}, err
	}

	items := make([]order.Line, 0, len(lines))
	var subtotal float64
	for _, l := range lines {
		items = append(items, order.Line{
			ProductID:  l.ProductID,
			Name:       l.Name,
			Price:      l.Price,
			Quantity:   l.Quantity,
			Image:      l.Image,
			SellerID:   l.SellerID,
			SellerName: l.SellerName,
		})
		subtotal += l.Subtotal()
	}
	quote := s.pricing.Quote(subtotal)

	receipt, err := s.gateway.Authorize(ctx, Charge{
		UserID: req.UserID,
		Amount: quote.GrandTotal,
		Method: req.Method,
	})
	if err != nil {
		log.Error("payment failed", zap.Error(err))
		s.observe(OutcomePaymentFailed, req.Method)
		return Result{}, fmt.Errorf("%w: %w: %w", ErrRetryable, ErrPaymentFailed, err)
	}

	orderID, err := s.orders.Create(ctx, order.NewOrder{
		UserID:          req.UserID,
		Items:           items,
		Total:           quote.GrandTotal,
		ShippingAddress: req.Address,
		PaymentMethod:   req.Method,
		PaymentStatus:   receipt.Status,
	})
	if err != nil {
		log.Error("failed to record order", zap.Error(err))
		s.observe(OutcomeOrderFailed, req.Method)
		return Result{}, fmt.Errorf("%w: %w", ErrRetryable, err)
	}

	res := Result{
		OrderID:          orderID,
		Quote:            quote,
		PaymentStatus:    receipt.Status,
		PaymentReference: receipt.Reference,
	}
	res.Instructions = Instructions(req.Method, InstructionVars{
		"amount":    utils.FormatINR(quote.GrandTotal),
		"reference": receipt.Reference,
	})

	if err := s.carts.Clear(ctx); err != nil {
		log.Error("order placed but cart clear failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		s.observe(OutcomeCartNotCleared, req.Method)
		return res, fmt.Errorf("%w: %w", ErrCartNotCleared, err)
	}

	log.Info("checkout completed",
		zap.String("order_id", orderID),
		zap.Float64("grand_total", quote.GrandTotal),
		zap.String("payment_status", string(receipt.Status)),
	)
	s.observe(OutcomePlaced, req.Method)
	return res, nil
}

func (s *service) validate(req Request, lines []cart.Line) error {
	if strings.TrimSpace(req.UserID) == "" {
		return ErrMissingUser
	}
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	if !req.Method.Valid() {
		return order.ErrInvalidPaymentMethod
	}
	return req.Address.Validate()
}

// IsRetryable reports whether err left the cart intact.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRetryable)
}
