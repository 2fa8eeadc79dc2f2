package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/realkdc/top-thc-brands/pkg/errors"
)

// verboseErrors controls whether internal error detail is included in
// responses. Set once at startup, before the server accepts requests.
var verboseErrors bool

// SetVerboseErrors enables internal error detail in responses. Only meant for
// non-production environments.
func SetVerboseErrors(v bool) {
	verboseErrors = v
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps a repository/service error onto an HTTP response.
// Validation, not-found, conflict and unauthorized errors surface their
// message; anything else is logged and reported generically unless verbose
// error mode is on.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeInternal, apperrors.ErrorTypeExternal:
			// fall through to the generic path below
		default:
			respondWithError(w, appErr.StatusCode(), appErr.Message)
			return
		}
	}

	log.Error().Err(err).Msg("request failed")
	if verboseErrors {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
