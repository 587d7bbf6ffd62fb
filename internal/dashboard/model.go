package dashboard

import (
	"errors"

	"handmade-market/internal/order"
	"handmade-market/internal/product"
)

var ErrForbidden = errors.New("dashboard is not available for this role")

type SellerStats struct {
	TotalProducts    int               `json:"totalProducts"`
	ApprovedProducts int               `json:"approvedProducts"`
	PendingProducts  int               `json:"pendingProducts"`
	Products         []product.Product `json:"products"`
	Orders           []order.Order     `json:"orders"`
	// Revenue counts only this seller's lines of each order.
	Revenue float64 `json:"revenue"`
}

type AdminStats struct {
	TotalProducts    int               `json:"totalProducts"`
	ApprovedProducts int               `json:"approvedProducts"`
	PendingProducts  int               `json:"pendingProducts"`
	PendingApproval  []product.Product `json:"pendingApproval"`
	TotalOrders      int               `json:"totalOrders"`
	Orders           []order.Order     `json:"orders"`
	Revenue          float64           `json:"revenue"`
}

// View is the dashboard of one user; exactly one of Seller and Admin is set.
type View struct {
	Role   string       `json:"role"`
	Seller *SellerStats `json:"seller,omitempty"`
	Admin  *AdminStats  `json:"admin,omitempty"`
}
