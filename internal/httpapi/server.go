package httpapi

import (
	"context"
	"errors"
	"net/http"

	"handmade-market/internal/cart"
	"handmade-market/internal/checkout"
	"handmade-market/internal/dashboard"
	"handmade-market/internal/logger"
	"handmade-market/internal/metrics"
	"handmade-market/internal/middleware"
	"handmade-market/internal/order"
	"handmade-market/internal/product"
	"handmade-market/internal/session"
	"handmade-market/internal/user"
	"handmade-market/internal/utils"
)

// Deps are the storefront services the HTTP layer exposes.
type Deps struct {
	Products  product.Service
	Cart      cart.Service
	Orders    order.Service
	Checkout  checkout.Service
	Dashboard dashboard.Service
	Session   *session.Manager
	Metrics   *metrics.Metrics
}

type Options struct {
	Origins   []string
	RateLimit bool
}

type Server struct {
	Deps
}

func New(d Deps) *Server {
	return &Server{Deps: d}
}

func (s *Server) Routes(opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)
	mux.Handle("GET /metrics", s.Metrics.Handler())

	// catalog
	mux.HandleFunc("GET /products", s.browseProducts)
	mux.HandleFunc("GET /products/{id}", s.getProduct)
	mux.HandleFunc("GET /categories", s.listCategories)

	seller := s.requireRole(user.Seller)
	mux.Handle("GET /seller/products", seller(s.listOwnProducts))
	mux.Handle("POST /seller/products", seller(s.createProduct))
	mux.Handle("PUT /seller/products/{id}", seller(s.updateOwnProduct))
	mux.Handle("DELETE /seller/products/{id}", seller(s.deleteOwnProduct))

	admin := s.requireRole(user.Admin)
	mux.Handle("GET /admin/products", admin(s.listAllProducts))
	mux.Handle("POST /admin/products/{id}/approve", admin(s.approveProduct))
	mux.Handle("POST /admin/products/{id}/reject", admin(s.rejectProduct))
	mux.Handle("DELETE /admin/products/{id}", admin(s.deleteProduct))

	// cart
	mux.HandleFunc("GET /cart", s.getCart)
	mux.HandleFunc("POST /cart/items", s.addCartItem)
	mux.HandleFunc("PUT /cart/items/{id}", s.setCartQuantity)
	mux.HandleFunc("DELETE /cart/items/{id}", s.removeCartItem)
	mux.HandleFunc("DELETE /cart", s.clearCart)

	// checkout and orders
	signedIn := s.requireSession
	mux.Handle("GET /checkout/quote", signedIn(s.quote))
	mux.Handle("POST /checkout", signedIn(s.placeOrder))
	mux.Handle("GET /orders", signedIn(s.listOwnOrders))
	mux.Handle("GET /orders/{id}", signedIn(s.getOrder))
	mux.Handle("GET /admin/orders", admin(s.listAllOrders))
	mux.Handle("PUT /admin/orders/{id}/status", admin(s.setOrderStatus))
	mux.Handle("PUT /admin/orders/{id}/payment", admin(s.setPaymentStatus))

	mux.Handle("GET /dashboard", signedIn(s.dashboard))

	// account
	mux.HandleFunc("POST /auth/login", s.login)
	mux.HandleFunc("POST /auth/register", s.register)
	mux.HandleFunc("POST /auth/logout", s.logout)
	mux.HandleFunc("GET /auth/me", s.me)
	mux.Handle("PUT /auth/profile", signedIn(s.updateProfile))

	var handler http.Handler = s.Metrics.Middleware(mux)
	if opts.RateLimit {
		handler = middleware.NewRateLimiter().Middleware(handler)
	}
	handler = s.withSession(handler)
	handler = middleware.CORS(opts.Origins...)(handler)
	handler = logger.LoggingMiddleware(handler)
	return logger.RequestIDMiddleware(handler)
}

// withSession puts the signed-in user, if any, into the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := s.Session.Current(); ok {
			ctx := utils.SetUserContext(r.Context(), u.ID, u.Email, u.Role.String())
			ctx = logger.WithUserID(ctx, u.ID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// requireSession runs h as a protected call: a missing or expired session
// token logs the session out and answers 401.
func (s *Server) requireSession(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := s.Session.Do(r.Context(), func(context.Context, string) error {
			h(w, r)
			return nil
		})
		if errors.Is(err, session.ErrSessionInvalid) {
			utils.WriteJSONError(w, "please log in again", http.StatusUnauthorized)
		}
	})
}

func (s *Server) requireRole(role user.Role) func(http.HandlerFunc) http.Handler {
	return func(h http.HandlerFunc) http.Handler {
		return s.requireSession(func(w http.ResponseWriter, r *http.Request) {
			middleware.RequireRole(role.String())(h).ServeHTTP(w, r)
		})
	}
}

// currentUser is only valid behind requireSession.
func (s *Server) currentUser() user.User {
	u, ok := s.Session.Current()
	if !ok {
		return user.User{}
	}
	return *u
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
