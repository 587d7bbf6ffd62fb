package cart

import (
	"context"
	"slices"
	"sync"

	"handmade-market/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the cart accumulator for one storefront session. Every mutation
// writes the whole line collection back through the repository.
type Service interface {
	Lines(ctx context.Context) []Line
	AddLine(ctx context.Context, in LineInput) (Line, error)
	RemoveLine(ctx context.Context, lineID string) error
	SetQuantity(ctx context.Context, lineID string, quantity int) (bool, error)
	Clear(ctx context.Context) error
	Total(ctx context.Context) float64
	Count(ctx context.Context) int
}

type service struct {
	mu    sync.Mutex
	repo  Repository
	lines []Line
	newID func() string
}

// NewService rehydrates the cart once from repo.
func NewService(ctx context.Context, repo Repository) (Service, error) {
	lines, err := repo.Load(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load cart", zap.Error(err))
		return nil, err
	}
	return &service{repo: repo, lines: lines, newID: uuid.NewString}, nil
}

func (s *service) Lines(ctx context.Context) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// AddLine merges into the existing line for the same product, otherwise it
// appends a new line.
func (s *service) AddLine(ctx context.Context, in LineInput) (Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.String("product_id", in.ProductID),
	)

	switch {
	case in.ProductID == "":
		return Line{}, ErrMissingProduct
	case in.Quantity <= 0:
		return Line{}, ErrInvalidQuantity
	case in.Price < 0:
		return Line{}, ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.lines)
	idx := slices.IndexFunc(next, func(l Line) bool { return l.ProductID == in.ProductID })

	var line Line
	if idx >= 0 {
		next[idx].Quantity += in.Quantity
		line = next[idx]
	} else {
		line = Line{
			ID:         s.newID(),
			ProductID:  in.ProductID,
			Name:       in.Name,
			Price:      in.Price,
			Quantity:   in.Quantity,
			Image:      in.Image,
			SellerID:   in.SellerID,
			SellerName: in.SellerName,
		}
		next = append(next, line)
	}

	if err := s.commitLocked(ctx, next); err != nil {
		log.Error("failed to persist cart", zap.Error(err))
		return Line{}, err
	}

	log.Info("cart line added",
		zap.String("line_id", line.ID),
		zap.Int("quantity", line.Quantity),
		zap.Bool("merged", idx >= 0),
	)
	return line, nil
}

func (s *service) RemoveLine(ctx context.Context, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, lineID)
}

// SetQuantity overwrites a line's quantity; zero or less removes the line.
// It reports false when no line has lineID.
func (s *service) SetQuantity(ctx context.Context, lineID string, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.lines, func(l Line) bool { return l.ID == lineID })
	if idx < 0 {
		return false, nil
	}
	if quantity <= 0 {
		return true, s.removeLocked(ctx, lineID)
	}

	next := slices.Clone(s.lines)
	next[idx].Quantity = quantity
	if err := s.commitLocked(ctx, next); err != nil {
		logger.FromCtx(ctx).Error("failed to persist cart quantity",
			zap.String("line_id", lineID),
			zap.Error(err),
		)
		return true, err
	}
	return true, nil
}

func (s *service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commitLocked(ctx, []Line{}); err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Total(ctx context.Context) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

func (s *service) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *service) removeLocked(ctx context.Context, lineID string) error {
	idx := slices.IndexFunc(s.lines, func(l Line) bool { return l.ID == lineID })
	if idx < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.lines), idx, idx+1)
	return s.commitLocked(ctx, next)
}

// commitLocked persists next and only then makes it the live collection.
func (s *service) commitLocked(ctx context.Context, next []Line) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.lines = next
	return nil
}
