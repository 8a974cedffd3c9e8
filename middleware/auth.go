package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"tshirt-shop/auth"
	"tshirt-shop/models"
	"tshirt-shop/store"
)

// Key type for context
type contextKey string

const principalContextKey = contextKey("principal")

// PrincipalFrom extracts the verified principal attached by RequireAuth.
func PrincipalFrom(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*auth.Principal)
	return p, ok
}

// Auth holds the two guard stages. RequireAuth resolves the bearer
// token into a principal; RequireAdmin additionally checks the stored
// role and must be chained after RequireAuth.
type Auth struct {
	verifier auth.Verifier
	users    store.Users
}

func NewAuth(verifier auth.Verifier, users store.Users) *Auth {
	return &Auth{verifier: verifier, users: users}
}

// RequireAuth rejects requests without a valid bearer token and attaches
// the resolved principal to the request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			reject(w, http.StatusUnauthorized, "Unauthorized: No token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			reject(w, http.StatusUnauthorized, "Unauthorized: No token")
			return
		}

		principal, err := a.verifier.Verify(r.Context(), parts[1])
		if err != nil {
			reject(w, http.StatusForbidden, "Forbidden: Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin ensures the principal's stored role is admin.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFrom(r.Context())
		if !ok {
			reject(w, http.StatusUnauthorized, "Unauthorized: No token")
			return
		}

		user, err := a.users.FindByEmail(r.Context(), principal.Email)
		if err != nil || user.Role != models.RoleAdmin {
			reject(w, http.StatusUnauthorized, "Unauthorized: Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func reject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
