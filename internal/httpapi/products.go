package httpapi

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"handmade-market/internal/product"
	"handmade-market/internal/user"
	"handmade-market/internal/utils"
)

func parseQuery(r *http.Request) product.Query {
	v := r.URL.Query()
	return product.Query{
		Search:   v.Get("search"),
		Category: v.Get("category"),
		Sort:     product.ParseSort(v.Get("sort")),
		MinPrice: priceBound(v.Get("minPrice")),
		MaxPrice: priceBound(v.Get("maxPrice")),
	}
}

// priceBound ignores anything that is not a finite number.
func priceBound(raw string) *float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func (s *Server) browseProducts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, s.Products.Browse(r.Context(), parseQuery(r)))
}

// getProduct hides unapproved products from everyone but their seller and
// administrators.
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.Products.GetByID(r.Context(), r.PathValue("id"))
	if !ok || !s.canSee(r, *p) {
		utils.WriteJSONError(w, "product not found", http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) canSee(r *http.Request, p product.Product) bool {
	if p.Status == product.StatusApproved {
		return true
	}
	id, _ := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())
	return role == user.Admin.String() || (id != "" && id == p.SellerID)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	cats := map[string]struct{}{}
	for _, p := range s.Products.ListApproved(r.Context()) {
		if p.Category != "" {
			cats[p.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(cats))
	for _, c := range s.Products.DistinctCategories(r.Context()) {
		if _, ok := cats[c]; ok {
			out = append(out, c)
		}
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) listOwnProducts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, s.Products.ListBySeller(r.Context(), s.currentUser().ID))
}

// createProduct files a seller submission. It always starts pending.
func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var d product.Draft
	if err := utils.DecodeJSON(r, &d); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	u := s.currentUser()
	d.SellerID = u.ID
	d.SellerName = u.ShopName
	if d.SellerName == "" {
		d.SellerName = u.Name
	}
	d.Status = product.StatusPending

	p, err := s.Products.Add(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

// ownProduct loads a product of the signed-in seller.
func (s *Server) ownProduct(r *http.Request) (*product.Product, error) {
	p, ok := s.Products.GetByID(r.Context(), r.PathValue("id"))
	if !ok {
		return nil, errNotFound
	}
	if p.SellerID != s.currentUser().ID {
		return nil, errForbidden
	}
	return p, nil
}

func (s *Server) updateOwnProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.ownProduct(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch product.Patch
	if err := utils.DecodeJSON(r, &patch); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Approval is an administrator decision.
	patch.Status = nil

	updated, found, err := s.Products.Update(r.Context(), p.ID, patch)
	if err == nil && !found {
		err = errNotFound
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteOwnProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.ownProduct(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Products.Delete(r.Context(), p.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listAllProducts(w http.ResponseWriter, r *http.Request) {
	list := s.Products.List(r.Context())
	if st := product.ApprovalState(r.URL.Query().Get("status")); st.Valid() {
		filtered := list[:0]
		for _, p := range list {
			if p.Status == st {
				filtered = append(filtered, p)
			}
		}
		list = filtered
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (s *Server) approveProduct(w http.ResponseWriter, r *http.Request) {
	s.review(w, r, s.Products.Approve)
}

func (s *Server) rejectProduct(w http.ResponseWriter, r *http.Request) {
	s.review(w, r, s.Products.Reject)
}

func (s *Server) review(w http.ResponseWriter, r *http.Request, decide func(ctx context.Context, id string) (bool, error)) {
	id := r.PathValue("id")
	found, err := decide(r.Context(), id)
	if err == nil && !found {
		err = errNotFound
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, _ := s.Products.GetByID(r.Context(), id)
	utils.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.Products.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
