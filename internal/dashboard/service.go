package dashboard

import (
	"context"

	"handmade-market/internal/logger"
	"handmade-market/internal/order"
	"handmade-market/internal/product"
	"handmade-market/internal/user"

	"go.uber.org/zap"
)

type Service interface {
	For(ctx context.Context, u user.User) (View, error)
	Seller(ctx context.Context, sellerID string) SellerStats
	Admin(ctx context.Context) AdminStats
}

type service struct {
	products product.Service
	orders   order.Service
}

func NewService(products product.Service, orders order.Service) Service {
	return &service{products: products, orders: orders}
}

// dispatch is what each role handler of For produces.
type dispatch struct {
	view View
	err  error
}

// For builds the dashboard matching the user's role. Customers have none.
func (s *service) For(ctx context.Context, u user.User) (View, error) {
	res := user.Match(u.Role,
		func() dispatch {
			return dispatch{err: ErrForbidden}
		},
		func() dispatch {
			stats := s.Seller(ctx, u.ID)
			return dispatch{view: View{Role: user.Seller.String(), Seller: &stats}}
		},
		func() dispatch {
			stats := s.Admin(ctx)
			return dispatch{view: View{Role: user.Admin.String(), Admin: &stats}}
		},
	)
	if res.err != nil {
		logger.FromCtx(ctx).Info("dashboard refused",
			zap.String("user_id", u.ID),
			zap.String("role", u.Role.String()),
		)
	}
	return res.view, res.err
}

func (s *service) Seller(ctx context.Context, sellerID string) SellerStats {
	stats := SellerStats{
		Products: s.products.ListBySeller(ctx, sellerID),
		Orders:   []order.Order{},
	}
	stats.TotalProducts = len(stats.Products)
	for _, p := range stats.Products {
		switch p.Status {
		case product.StatusApproved:
			stats.ApprovedProducts++
		case product.StatusPending:
			stats.PendingProducts++
		}
	}

	for _, o := range s.orders.ListAll(ctx) {
		if !o.HasSeller(sellerID) {
			continue
		}
		stats.Orders = append(stats.Orders, o)
		for _, l := range o.Items {
			if l.SellerID == sellerID {
				stats.Revenue += l.Subtotal()
			}
		}
	}
	return stats
}

func (s *service) Admin(ctx context.Context) AdminStats {
	all := s.products.List(ctx)
	stats := AdminStats{
		TotalProducts:   len(all),
		PendingApproval: []product.Product{},
		Orders:          s.orders.ListAll(ctx),
	}
	for _, p := range all {
		switch p.Status {
		case product.StatusApproved:
			stats.ApprovedProducts++
		case product.StatusPending:
			stats.PendingProducts++
			stats.PendingApproval = append(stats.PendingApproval, p)
		}
	}

	stats.TotalOrders = len(stats.Orders)
	for _, o := range stats.Orders {
		stats.Revenue += o.Total
	}
	return stats
}
