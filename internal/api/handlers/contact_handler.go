package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/internal/domain/repositories"
)

// ContactHandler handles contact form HTTP requests
type ContactHandler struct {
	contactRepo repositories.ContactRepository
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactRepo repositories.ContactRepository) *ContactHandler {
	return &ContactHandler{
		contactRepo: contactRepo,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactStatusRequest struct {
	Status string `json:"status"`
}

// SubmitContact handles POST /api/contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var payload contactRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)

	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		respondWithError(w, http.StatusBadRequest, "name, email and message are required")
		return
	}

	now := time.Now().UTC()
	contact := &entities.Contact{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		Email:     payload.Email,
		Message:   payload.Message,
		Status:    entities.ContactStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.contactRepo.Create(r.Context(), contact); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, contact)
}

// ListContacts handles GET /api/contact
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactRepo.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

// GetContact handles GET /api/contact/{id}
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "contact ID is required")
		return
	}

	contact, err := h.contactRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, contact)
}

// UpdateContactStatus handles PUT /api/contact/{id}
func (h *ContactHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "contact ID is required")
		return
	}

	var payload contactStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	status := entities.ContactStatus(payload.Status)
	if !status.Valid() {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf(
			"invalid status %q, must be one of: %s, %s, %s, %s",
			payload.Status,
			entities.ContactStatusPending,
			entities.ContactStatusInProgress,
			entities.ContactStatusCompleted,
			entities.ContactStatusArchived,
		))
		return
	}

	contact, err := h.contactRepo.UpdateStatus(r.Context(), id, status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, contact)
}

// DeleteContact handles DELETE /api/contact/{id}
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "contact ID is required")
		return
	}

	if err := h.contactRepo.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "contact deleted successfully",
	})
}
