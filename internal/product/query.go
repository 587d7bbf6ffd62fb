package product

import (
	"cmp"
	"slices"
	"strings"
)

type SortBy string

const (
	SortNewest    SortBy = "newest"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
	SortRating    SortBy = "rating"
)

// ParseSort maps a client sort key to a SortBy. Unknown or empty keys fall
// back to newest first.
func ParseSort(s string) SortBy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price_asc", "price-asc", "price-low":
		return SortPriceAsc
	case "price_desc", "price-desc", "price-high":
		return SortPriceDesc
	case "rating":
		return SortRating
	}
	return SortNewest
}

// Query narrows and orders a product listing. Zero values disable a stage.
type Query struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortBy
}

// Apply filters by search text, category and price range, then stable-sorts.
// The input slice is never modified.
func Apply(products []Product, q Query) []Product {
	out := make([]Product, 0, len(products))

	term := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range products {
		if term != "" && !matchesText(p, term) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		out = append(out, p.clone())
	}

	slices.SortStableFunc(out, comparator(q.Sort))
	return out
}

func matchesText(p Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func comparator(by SortBy) func(a, b Product) int {
	switch by {
	case SortPriceAsc:
		return func(a, b Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		return func(a, b Product) int { return cmp.Compare(b.Price, a.Price) }
	case SortRating:
		return func(a, b Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return func(a, b Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}
