package authapi

import (
	"errors"
	"net/http"

	"handmade-market/internal/logger"
	"handmade-market/internal/metrics"
	"handmade-market/internal/middleware"
	"handmade-market/internal/user"
	"handmade-market/internal/utils"

	"go.uber.org/zap"
)

// Handler serves the authentication API consumed by the storefront.
type Handler struct {
	users   user.Service
	tokens  *user.TokenIssuer
	metrics *metrics.Metrics
}

func NewHandler(users user.Service, tokens *user.TokenIssuer, m *metrics.Metrics) *Handler {
	return &Handler{users: users, tokens: tokens, metrics: m}
}

type authResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Options tune the middleware chain around the routes.
type Options struct {
	Origins   []string
	RateLimit bool
}

// Routes mounts the API under /api and wraps it with the standard chain.
func (h *Handler) Routes(opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.Handle("PUT /api/auth/profile", middleware.RequireAuth(http.HandlerFunc(h.updateProfile)))
	mux.HandleFunc("GET /api/auth/me", h.me)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", h.metrics.Handler())

	var handler http.Handler = h.metrics.Middleware(mux)
	if opts.RateLimit {
		handler = middleware.NewRateLimiter().Middleware(handler)
	}
	handler = middleware.AuthMiddleware(Verifier(h.tokens))(handler)
	handler = middleware.CORS(opts.Origins...)(handler)
	handler = logger.LoggingMiddleware(handler)
	return logger.RequestIDMiddleware(handler)
}

// Verifier checks tokens locally with the signing key.
func Verifier(tokens *user.TokenIssuer) middleware.TokenVerifier {
	return func(token string) (middleware.Identity, error) {
		claims, err := tokens.Parse(token)
		if err != nil {
			return middleware.Identity{}, err
		}
		return middleware.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in user.RegisterInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, u, err := h.users.Register(r.Context(), in)
	h.metrics.RecordAuth("register", err == nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, authResponse{Token: token, User: u})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, u, err := h.users.Login(r.Context(), in.Email, in.Password)
	h.metrics.RecordAuth("login", err == nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, authResponse{Token: token, User: u})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var in user.ProfileUpdate
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, u, err := h.users.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, authResponse{Token: token, User: u})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	token := utils.BearerToken(r)
	if token == "" {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	u, err := h.users.Authenticate(r.Context(), token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]user.User{"user": u})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("auth request failed", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", code)
		return
	}
	utils.WriteJSONError(w, err.Error(), code)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, user.ErrRoleNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrEmptyProfile):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
