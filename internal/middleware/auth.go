package middleware

import (
	"net/http"
	"slices"

	"handmade-market/internal/logger"
	"handmade-market/internal/utils"
)

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// TokenVerifier validates a bearer token.
type TokenVerifier func(token string) (Identity, error)

// AuthMiddleware is optional auth: requests without a bearer token pass
// through anonymously, an invalid token is rejected with 401.
func AuthMiddleware(verify TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := utils.BearerToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := verify(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected bearer token")
				utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := utils.SetUserContext(r.Context(), id.UserID, id.Email, id.Role)
			ctx = logger.WithUserID(ctx, id.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose user role is not one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, utils.GetUserRoleFromContext(r.Context())) {
				utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
