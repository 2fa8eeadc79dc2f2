package handlers

import "net/http"

// MetaHandler serves the service root and health endpoints
type MetaHandler struct {
	serviceName string
	version     string
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(serviceName, version string) *MetaHandler {
	return &MetaHandler{
		serviceName: serviceName,
		version:     version,
	}
}

// Health handles GET /health. It reports OK as long as the process is
// serving; database trouble surfaces through the API endpoints instead.
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "OK",
	})
}

// Root handles GET /
func (h *MetaHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"service": h.serviceName,
		"version": h.version,
		"endpoints": []string{
			"GET /health",
			"GET /api/brands",
			"GET /api/brands/{id}",
			"GET /api/brands/slug/{slug}",
			"POST /api/contact",
			"POST /api/subscribe",
			"DELETE /api/subscribe",
			"GET /api/leaderboard",
			"POST /api/leaderboard/{brandId}/rate",
			"POST /api/auth/login",
		},
	})
}
