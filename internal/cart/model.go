package cart

// Line is one product in the cart. Everything except Quantity is a snapshot
// of the product taken when it was first added.
type Line struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image"`
	SellerID   string  `json:"sellerId"`
	SellerName string  `json:"sellerName"`
}

func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

type LineInput struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image"`
	SellerID   string  `json:"sellerId"`
	SellerName string  `json:"sellerName"`
}
