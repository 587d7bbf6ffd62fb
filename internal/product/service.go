package product

import (
	"context"
	"slices"
	"sync"
	"time"

	"handmade-market/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the catalog store: the full product collection of one
// storefront session, approved and unapproved.
type Service interface {
	List(ctx context.Context) []Product
	ListApproved(ctx context.Context) []Product
	Browse(ctx context.Context, q Query) []Product
	GetByID(ctx context.Context, id string) (*Product, bool)
	ListBySeller(ctx context.Context, sellerID string) []Product
	DistinctCategories(ctx context.Context) []string

	Add(ctx context.Context, draft Draft) (Product, error)
	Update(ctx context.Context, id string, patch Patch) (Product, bool, error)
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) (bool, error)
	Reject(ctx context.Context, id string) (bool, error)
}

type service struct {
	mu       sync.Mutex
	repo     Repository
	products []Product

	now   func() time.Time
	newID func() string
}

// NewService rehydrates the catalog from repo. When nothing has been
// persisted yet the catalog starts from seed.
func NewService(ctx context.Context, repo Repository, seed []Product) (Service, error) {
	products, ok, err := repo.Load(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load catalog", zap.Error(err))
		return nil, err
	}
	if !ok {
		products = make([]Product, 0, len(seed))
		for _, p := range seed {
			products = append(products, p.clone())
		}
	}

	logger.FromCtx(ctx).Info("catalog loaded",
		zap.Int("count", len(products)),
		zap.Bool("seeded", !ok),
	)

	return &service{
		repo:     repo,
		products: products,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

func (s *service) List(ctx context.Context) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked(func(Product) bool { return true })
}

func (s *service) ListApproved(ctx context.Context) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked(func(p Product) bool { return p.Status == StatusApproved })
}

// Browse is the customer-facing listing: approved products narrowed and
// ordered by q.
func (s *service) Browse(ctx context.Context, q Query) []Product {
	return Apply(s.ListApproved(ctx), q)
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, false
	}
	p := s.products[idx].clone()
	return &p, true
}

func (s *service) ListBySeller(ctx context.Context, sellerID string) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLocked(func(p Product) bool { return p.SellerID == sellerID })
}

func (s *service) DistinctCategories(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.products))
	out := make([]string, 0, len(s.products))
	for _, p := range s.products {
		if _, dup := seen[p.Category]; dup || p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func (s *service) Add(ctx context.Context, draft Draft) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddProduct"),
	)

	p := Product{
		ID:          s.newID(),
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		Image:       draft.Image,
		Category:    draft.Category,
		SellerID:    draft.SellerID,
		SellerName:  draft.SellerName,
		Status:      draft.Status,
		Stock:       draft.Stock,
		Tags:        append([]string(nil), draft.Tags...),
		CreatedAt:   s.now().UTC(),
		Rating:      draft.Rating,
		ReviewCount: draft.ReviewCount,
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	if err := validate(p); err != nil {
		log.Warn("rejected product draft", zap.Error(err))
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.products), p)
	if err := s.repo.Save(ctx, next); err != nil {
		log.Error("failed to persist new product", zap.Error(err))
		return Product{}, err
	}
	s.products = next

	log.Info("product added",
		zap.String("product_id", p.ID),
		zap.String("seller_id", p.SellerID),
		zap.String("status", string(p.Status)),
	)
	return p.clone(), nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (Product, bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", id),
	)

	if patch.IsEmpty() {
		return Product{}, false, ErrEmptyPatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		log.Debug("product not found")
		return Product{}, false, nil
	}

	updated := s.products[idx].clone()
	patch.apply(&updated)
	if err := validate(updated); err != nil {
		return Product{}, true, err
	}

	next := slices.Clone(s.products)
	next[idx] = updated
	if err := s.repo.Save(ctx, next); err != nil {
		log.Error("failed to persist product update", zap.Error(err))
		return Product{}, true, err
	}
	s.products = next

	log.Info("product updated", zap.String("status", string(updated.Status)))
	return updated.clone(), true, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.products), idx, idx+1)
	if err := s.repo.Save(ctx, next); err != nil {
		logger.FromCtx(ctx).Error("failed to persist product delete",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return err
	}
	s.products = next

	logger.FromCtx(ctx).Info("product deleted", zap.String("product_id", id))
	return nil
}

func (s *service) Approve(ctx context.Context, id string) (bool, error) {
	status := StatusApproved
	_, found, err := s.Update(ctx, id, Patch{Status: &status})
	return found, err
}

func (s *service) Reject(ctx context.Context, id string) (bool, error) {
	status := StatusRejected
	_, found, err := s.Update(ctx, id, Patch{Status: &status})
	return found, err
}

func (s *service) indexLocked(id string) int {
	return slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
}

func (s *service) filterLocked(keep func(Product) bool) []Product {
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p.clone())
		}
	}
	return out
}
