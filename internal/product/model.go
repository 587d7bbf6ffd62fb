package product

import "time"

type ApprovalState string

const (
	StatusPending  ApprovalState = "pending"
	StatusApproved ApprovalState = "approved"
	StatusRejected ApprovalState = "rejected"
)

func (s ApprovalState) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Image       string        `json:"image"`
	Category    string        `json:"category"`
	SellerID    string        `json:"sellerId"`
	SellerName  string        `json:"sellerName"`
	Status      ApprovalState `json:"status"`
	Stock       int           `json:"stock"`
	Tags        []string      `json:"tags"`
	CreatedAt   time.Time     `json:"createdAt"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"reviewCount"`
}

func (p Product) clone() Product {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

// InStock reports whether at least one unit can be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Draft is what a seller submits. An empty Status means pending.
type Draft struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Image       string        `json:"image"`
	Category    string        `json:"category"`
	SellerID    string        `json:"sellerId"`
	SellerName  string        `json:"sellerName"`
	Status      ApprovalState `json:"status,omitempty"`
	Stock       int           `json:"stock"`
	Tags        []string      `json:"tags"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"reviewCount"`
}

// Patch carries the fields to merge into an existing product; nil means
// unchanged.
type Patch struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Price       *float64       `json:"price,omitempty"`
	Image       *string        `json:"image,omitempty"`
	Category    *string        `json:"category,omitempty"`
	SellerName  *string        `json:"sellerName,omitempty"`
	Status      *ApprovalState `json:"status,omitempty"`
	Stock       *int           `json:"stock,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Rating      *float64       `json:"rating,omitempty"`
	ReviewCount *int           `json:"reviewCount,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Image == nil && p.Category == nil && p.SellerName == nil &&
		p.Status == nil && p.Stock == nil && p.Tags == nil &&
		p.Rating == nil && p.ReviewCount == nil
}

func (p Patch) apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.SellerName != nil {
		dst.SellerName = *p.SellerName
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.Tags != nil {
		dst.Tags = append([]string(nil), p.Tags...)
	}
	if p.Rating != nil {
		dst.Rating = *p.Rating
	}
	if p.ReviewCount != nil {
		dst.ReviewCount = *p.ReviewCount
	}
}
