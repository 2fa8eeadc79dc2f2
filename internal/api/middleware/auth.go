package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/realkdc/top-thc-brands/internal/auth"
)

// AuthMiddleware guards routes that require a valid session token
type AuthMiddleware struct {
	tokens *auth.TokenService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// validated claims on the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			respondUnauthorized(w, "authentication required")
			return
		}

		claims, err := m.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondUnauthorized(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
	})
}

// RequireAdmin builds on RequireAuth and additionally rejects sessions whose
// role cannot manage content.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok || !claims.ParsedRole().CanManageContent() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "insufficient permissions",
			})
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
