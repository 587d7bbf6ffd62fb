package httpapi

import (
	"net/http"
	"slices"

	"handmade-market/internal/cart"
	"handmade-market/internal/utils"
)

type cartView struct {
	Items []cart.Line `json:"items"`
	Count int         `json:"count"`
	Total float64     `json:"total"`
}

func (s *Server) cartView(r *http.Request) cartView {
	ctx := r.Context()
	return cartView{
		Items: s.Cart.Lines(ctx),
		Count: s.Cart.Count(ctx),
		Total: s.Cart.Total(ctx),
	}
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, s.cartView(r))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// addCartItem snapshots an approved product into the cart. The quantity
// already in the cart counts against the product's stock.
func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	switch {
	case req.Quantity < 0:
		writeError(w, r, cart.ErrInvalidQuantity)
		return
	case req.Quantity == 0:
		req.Quantity = 1
	}

	p, ok := s.Products.GetByID(r.Context(), req.ProductID)
	if !ok || !s.canSee(r, *p) {
		utils.WriteJSONError(w, "product not found", http.StatusNotFound)
		return
	}
	if !p.InStock() {
		writeError(w, r, errOutOfStock)
		return
	}

	held := 0
	for _, l := range s.Cart.Lines(r.Context()) {
		if l.ProductID == p.ID {
			held += l.Quantity
		}
	}
	qty := min(req.Quantity, p.Stock-held)
	if qty <= 0 {
		writeError(w, r, errOutOfStock)
		return
	}

	line, err := s.Cart.AddLine(r.Context(), cart.LineInput{
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   qty,
		Image:      p.Image,
		SellerID:   p.SellerID,
		SellerName: p.SellerName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, line)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// setCartQuantity caps the new quantity at the product's stock. Zero or less
// removes the line whatever the stock.
func (s *Server) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	lines := s.Cart.Lines(r.Context())
	idx := slices.IndexFunc(lines, func(l cart.Line) bool { return l.ID == id })
	if idx < 0 {
		writeError(w, r, errNotFound)
		return
	}

	qty := req.Quantity
	if qty > 0 {
		stock := 0
		if p, ok := s.Products.GetByID(r.Context(), lines[idx].ProductID); ok && s.canSee(r, *p) {
			stock = p.Stock
		}
		if stock <= 0 {
			writeError(w, r, errOutOfStock)
			return
		}
		qty = min(qty, stock)
	}

	found, err := s.Cart.SetQuantity(r.Context(), id, qty)
	if err == nil && !found {
		err = errNotFound
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.cartView(r))
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := s.Cart.RemoveLine(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.cartView(r))
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.Cart.Clear(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
