package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/internal/domain/repositories"
)

// BrandHandler handles brand directory HTTP requests
type BrandHandler struct {
	brandRepo repositories.BrandRepository
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(brandRepo repositories.BrandRepository) *BrandHandler {
	return &BrandHandler{
		brandRepo: brandRepo,
	}
}

type brandRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	LogoURL      *string  `json:"logo_url"`
	Category     *string  `json:"category"`
	Rating       *float64 `json:"rating"`
	Featured     *bool    `json:"featured"`
	Website      *string  `json:"website"`
	ProductTypes []string `json:"product_types"`
	Location     *string  `json:"location"`
	Slug         *string  `json:"slug"`
}

// ListBrands handles GET /api/brands
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	filter := repositories.BrandFilter{
		Category: r.URL.Query().Get("category"),
	}
	if r.URL.Query().Get("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}

	brands, err := h.brandRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"brands": brands,
		"count":  len(brands),
	})
}

// GetBrand handles GET /api/brands/{id}
func (h *BrandHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "brand ID is required")
		return
	}

	brand, err := h.brandRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, brand)
}

// GetBrandBySlug handles GET /api/brands/slug/{slug}
func (h *BrandHandler) GetBrandBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		respondWithError(w, http.StatusBadRequest, "brand slug is required")
		return
	}

	brand, err := h.brandRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, brand)
}

// CreateBrand handles POST /api/brands
func (h *BrandHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var payload brandRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		respondWithError(w, http.StatusBadRequest, "brand name is required")
		return
	}

	now := time.Now().UTC()
	brand := &entities.Brand{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(*payload.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyBrandRequest(brand, &payload)

	if brand.Slug == "" {
		brand.Slug = slugify(brand.Name)
	}

	if err := h.brandRepo.Create(r.Context(), brand); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, brand)
}

// UpdateBrand handles PUT /api/brands/{id}
func (h *BrandHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "brand ID is required")
		return
	}

	var payload brandRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	brand, err := h.brandRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if payload.Name != nil {
		if strings.TrimSpace(*payload.Name) == "" {
			respondWithError(w, http.StatusBadRequest, "brand name cannot be empty")
			return
		}
		brand.Name = strings.TrimSpace(*payload.Name)
	}
	applyBrandRequest(brand, &payload)

	if err := h.brandRepo.Update(r.Context(), brand); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, brand)
}

// DeleteBrand handles DELETE /api/brands/{id}
func (h *BrandHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "brand ID is required")
		return
	}

	if err := h.brandRepo.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "brand deleted successfully",
	})
}

// applyBrandRequest copies the optional fields of the payload onto the brand.
// Name is handled by the callers because create and update treat it differently.
func applyBrandRequest(brand *entities.Brand, payload *brandRequest) {
	if payload.Description != nil {
		brand.Description = *payload.Description
	}
	if payload.LogoURL != nil {
		brand.LogoURL = *payload.LogoURL
	}
	if payload.Category != nil {
		brand.Category = *payload.Category
	}
	if payload.Rating != nil {
		brand.Rating = *payload.Rating
	}
	if payload.Featured != nil {
		brand.Featured = *payload.Featured
	}
	if payload.Website != nil {
		brand.Website = *payload.Website
	}
	if payload.ProductTypes != nil {
		brand.ProductTypes = payload.ProductTypes
	}
	if payload.Location != nil {
		brand.Location = *payload.Location
	}
	if payload.Slug != nil && *payload.Slug != "" {
		brand.Slug = slugify(*payload.Slug)
	}
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(value string) string {
	slug := strings.ToLower(strings.TrimSpace(value))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
