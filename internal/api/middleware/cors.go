package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/realkdc/top-thc-brands/pkg/config"
)

// CORSMiddleware adds CORS headers based on the configured origin allowlist.
// Outside production, and when CORS debugging is enabled, every origin is
// allowed so local frontends can talk to the API without extra setup.
func CORSMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	allowAll := cfg.CORS.Debug || !cfg.IsProduction()
	allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
	for _, origin := range cfg.CORS.AllowedOrigins {
		allowed[normalizeOrigin(origin)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" {
				if _, ok := allowed[normalizeOrigin(origin)]; ok || allowAll {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				} else {
					log.Debug().Str("origin", origin).Msg("blocked CORS origin")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// normalizeOrigin strips a trailing slash so configured origins match the
// Origin header browsers actually send.
func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.TrimSpace(origin), "/")
}
