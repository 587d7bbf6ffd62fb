package order

import (
	"context"
	"slices"
	"sync"
	"time"

	"handmade-market/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the order ledger. Orders are immutable snapshots apart from
// their status and payment status.
type Service interface {
	Create(ctx context.Context, in NewOrder) (string, error)
	SetStatus(ctx context.Context, id string, status Status) (bool, error)
	SetPaymentStatus(ctx context.Context, id string, status PaymentStatus) (bool, error)
	GetByID(ctx context.Context, id string) (*Order, bool)
	ListByUser(ctx context.Context, userID string) []Order
	ListAll(ctx context.Context) []Order
}

type Option func(*service)

// WithPolicy replaces the default Permissive transition policy.
func WithPolicy(p TransitionPolicy) Option {
	return func(s *service) {
		if p != nil {
			s.policy = p
		}
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *service) {
		if p != nil {
			s.publisher = p
		}
	}
}

type service struct {
	mu     sync.Mutex
	repo   Repository
	orders []Order

	policy    TransitionPolicy
	publisher Publisher

	now   func() time.Time
	newID func() string
}

// NewService rehydrates the ledger from repo.
func NewService(ctx context.Context, repo Repository, opts ...Option) (Service, error) {
	orders, err := repo.Load(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load orders", zap.Error(err))
		return nil, err
	}

	s := &service{
		repo:      repo,
		orders:    orders,
		policy:    Permissive,
		publisher: nopPublisher{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	logger.FromCtx(ctx).Info("order ledger loaded", zap.Int("count", len(orders)))
	return s, nil
}

func (s *service) Create(ctx context.Context, in NewOrder) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", in.UserID),
	)

	if err := in.validate(); err != nil {
		log.Warn("rejected order", zap.Error(err))
		return "", err
	}

	now := s.now().UTC()
	o := Order{
		ID:              s.newID(),
		UserID:          in.UserID,
		Items:           slices.Clone(in.Items),
		Total:           in.Total,
		Status:          StatusPending,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   in.PaymentStatus,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.mu.Lock()
	next := append(slices.Clone(s.orders), o)
	if err := s.repo.Save(ctx, next); err != nil {
		s.mu.Unlock()
		log.Error("failed to persist order", zap.Error(err))
		return "", err
	}
	s.orders = next
	s.mu.Unlock()

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Float64("total", o.Total),
		zap.Int("items", len(o.Items)),
	)
	s.publish(ctx, EventCreated, o)
	return o.ID, nil
}

func (s *service) SetStatus(ctx context.Context, id string, status Status) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidStatus
	}
	return s.mutate(ctx, id, EventStatusChanged, func(o *Order) error {
		if !s.policy.Allow(o.Status, status) {
			return &TransitionError{OrderID: o.ID, From: o.Status, To: status}
		}
		o.Status = status
		return nil
	})
}

func (s *service) SetPaymentStatus(ctx context.Context, id string, status PaymentStatus) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidPaymentStatus
	}
	return s.mutate(ctx, id, EventPaymentChanged, func(o *Order) error {
		o.PaymentStatus = status
		return nil
	})
}

// mutate applies change to a copy of the order, persists the new ledger and
// only then makes it visible. UpdatedAt is refreshed on every change.
func (s *service) mutate(ctx context.Context, id, eventType string, change func(*Order) error) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", eventType),
		zap.String("order_id", id),
	)

	s.mu.Lock()
	idx := slices.IndexFunc(s.orders, func(o Order) bool { return o.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		log.Debug("order not found")
		return false, nil
	}

	updated := s.orders[idx].clone()
	if err := change(&updated); err != nil {
		s.mu.Unlock()
		log.Warn("order change refused", zap.Error(err))
		return true, err
	}
	updated.UpdatedAt = s.now().UTC()

	next := slices.Clone(s.orders)
	next[idx] = updated
	if err := s.repo.Save(ctx, next); err != nil {
		s.mu.Unlock()
		log.Error("failed to persist order change", zap.Error(err))
		return true, err
	}
	s.orders = next
	s.mu.Unlock()

	log.Info("order updated",
		zap.String("status", string(updated.Status)),
		zap.String("payment_status", string(updated.PaymentStatus)),
	)
	s.publish(ctx, eventType, updated)
	return true, nil
}

// publish is best effort: the ledger is already durable when it runs.
func (s *service) publish(ctx context.Context, eventType string, o Order) {
	if err := s.publisher.Publish(ctx, o.ID, eventType, newEvent(eventType, o)); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("event", eventType),
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			c := o.clone()
			return &c, true
		}
	}
	return nil, false
}

func (s *service) ListByUser(ctx context.Context, userID string) []Order {
	return s.filter(func(o Order) bool { return o.UserID == userID })
}

func (s *service) ListAll(ctx context.Context) []Order {
	return s.filter(func(Order) bool { return true })
}

func (s *service) filter(keep func(Order) bool) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o.clone())
		}
	}
	return out
}
