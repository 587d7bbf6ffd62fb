package httpapi

import (
	"errors"
	"net/http"

	"handmade-market/internal/checkout"
	"handmade-market/internal/order"
	"handmade-market/internal/user"
	"handmade-market/internal/utils"
)

type quoteView struct {
	checkout.Quote
	Display map[string]string `json:"display"`
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	q, err := s.Checkout.Quote(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quoteView{
		Quote: q,
		Display: map[string]string{
			"subtotal":   utils.FormatINR(q.Subtotal),
			"shipping":   utils.FormatINR(q.Shipping),
			"tax":        utils.FormatINR(q.Tax),
			"grandTotal": utils.FormatINR(q.GrandTotal),
		},
	})
}

type placeOrderRequest struct {
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
}

type placeOrderResponse struct {
	checkout.Result
	Warning string `json:"warning,omitempty"`
}

// placeOrder answers 201 even when the cart could not be emptied, since the
// order exists at that point.
func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.Checkout.PlaceOrder(r.Context(), checkout.Request{
		UserID:  s.currentUser().ID,
		Address: req.ShippingAddress,
		Method:  method,
	})
	switch {
	case errors.Is(err, checkout.ErrCartNotCleared):
		utils.WriteJSON(w, http.StatusCreated, placeOrderResponse{
			Result:  res,
			Warning: "order placed, but the cart could not be emptied",
		})
	case checkout.IsRetryable(err):
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":     err.Error(),
			"retryable": true,
		})
	case err != nil:
		writeError(w, r, err)
	default:
		utils.WriteJSON(w, http.StatusCreated, placeOrderResponse{Result: res})
	}
}

func (s *Server) listOwnOrders(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, s.Orders.ListByUser(r.Context(), s.currentUser().ID))
}

// getOrder shows an order to its buyer, to administrators and to any seller
// with items in it.
func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := s.Orders.GetByID(r.Context(), r.PathValue("id"))
	if !ok {
		utils.WriteJSONError(w, "order not found", http.StatusNotFound)
		return
	}

	u := s.currentUser()
	visible := user.Match(u.Role,
		func() bool { return o.UserID == u.ID },
		func() bool { return o.UserID == u.ID || o.HasSeller(u.ID) },
		func() bool { return true },
	)
	if !visible {
		utils.WriteJSONError(w, "order not found", http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (s *Server) listAllOrders(w http.ResponseWriter, r *http.Request) {
	list := s.Orders.ListAll(r.Context())
	if st := order.Status(r.URL.Query().Get("status")); st.Valid() {
		filtered := list[:0]
		for _, o := range list {
			if o.Status == st {
				filtered = append(filtered, o)
			}
		}
		list = filtered
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	found, err := s.Orders.SetStatus(r.Context(), id, order.Status(req.Status))
	s.respondOrder(w, r, id, found, err)
}

func (s *Server) setPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	found, err := s.Orders.SetPaymentStatus(r.Context(), id, order.PaymentStatus(req.Status))
	s.respondOrder(w, r, id, found, err)
}

func (s *Server) respondOrder(w http.ResponseWriter, r *http.Request, id string, found bool, err error) {
	if err == nil && !found {
		err = errNotFound
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	o, _ := s.Orders.GetByID(r.Context(), id)
	utils.WriteJSON(w, http.StatusOK, o)
}
