package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realkdc/top-thc-brands/internal/api/handlers"
)

func TestMetaHandler_Health(t *testing.T) {
	handler := handlers.NewMetaHandler("top-thc-brands-api", "1.0.0")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "OK", response["status"])
}

func TestMetaHandler_Root(t *testing.T) {
	handler := handlers.NewMetaHandler("top-thc-brands-api", "1.0.0")

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler.Root(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Service   string   `json:"service"`
		Endpoints []string `json:"endpoints"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "top-thc-brands-api", response.Service)
	assert.NotEmpty(t, response.Endpoints)
}
