package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/realkdc/top-thc-brands/internal/api/middleware"
	"github.com/realkdc/top-thc-brands/pkg/config"
)

func corsHandler(cfg *config.Config) http.Handler {
	return middleware.CORSMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	cfg := &config.Config{
		Environment: "production",
		CORS:        config.CORSConfig{AllowedOrigins: []string{"https://topthcbrands.com"}},
	}
	handler := corsHandler(cfg)

	req := httptest.NewRequest("GET", "/api/brands", nil)
	req.Header.Set("Origin", "https://topthcbrands.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://topthcbrands.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Values("Vary"), "Origin")
}

func TestCORSMiddleware_TrailingSlashNormalized(t *testing.T) {
	cfg := &config.Config{
		Environment: "production",
		CORS:        config.CORSConfig{AllowedOrigins: []string{"https://topthcbrands.com/"}},
	}
	handler := corsHandler(cfg)

	req := httptest.NewRequest("GET", "/api/brands", nil)
	req.Header.Set("Origin", "https://topthcbrands.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "https://topthcbrands.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_BlockedOriginInProduction(t *testing.T) {
	cfg := &config.Config{
		Environment: "production",
		CORS:        config.CORSConfig{AllowedOrigins: []string{"https://topthcbrands.com"}},
	}
	handler := corsHandler(cfg)

	var logBuf bytes.Buffer
	origLogger := log.Logger
	log.Logger = zerolog.New(&logBuf)
	defer func() { log.Logger = origLogger }()

	req := httptest.NewRequest("GET", "/api/brands", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	// request still served, but no allow header for the foreign origin
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	// the rejection is visible in the logs
	assert.Contains(t, logBuf.String(), "blocked CORS origin")
	assert.Contains(t, logBuf.String(), "https://evil.example.com")
}

func TestCORSMiddleware_DevelopmentAllowsAnyOrigin(t *testing.T) {
	cfg := &config.Config{
		Environment: "development",
		CORS:        config.CORSConfig{AllowedOrigins: []string{"https://topthcbrands.com"}},
	}
	handler := corsHandler(cfg)

	req := httptest.NewRequest("GET", "/api/brands", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_DebugOverridesProduction(t *testing.T) {
	cfg := &config.Config{
		Environment: "production",
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://topthcbrands.com"},
			Debug:          true,
		},
	}
	handler := corsHandler(cfg)

	req := httptest.NewRequest("GET", "/api/brands", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	cfg := &config.Config{
		Environment: "production",
		CORS:        config.CORSConfig{AllowedOrigins: []string{"https://topthcbrands.com"}},
	}
	handler := middleware.CORSMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/api/brands", nil)
	req.Header.Set("Origin", "https://topthcbrands.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}
