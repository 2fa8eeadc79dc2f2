package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/internal/domain/repositories"
	apperrors "github.com/realkdc/top-thc-brands/pkg/errors"
)

const defaultSubscriptionSource = "website"

// SubscriberHandler handles newsletter subscription HTTP requests
type SubscriberHandler struct {
	subscriberRepo repositories.SubscriberRepository
}

// NewSubscriberHandler creates a new subscriber handler
func NewSubscriberHandler(subscriberRepo repositories.SubscriberRepository) *SubscriberHandler {
	return &SubscriberHandler{
		subscriberRepo: subscriberRepo,
	}
}

type subscribeRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

type subscribeResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	Email             string `json:"email,omitempty"`
	AlreadySubscribed bool   `json:"alreadySubscribed,omitempty"`
}

// Subscribe handles POST /api/subscribe
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var payload subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" || !strings.Contains(email, "@") {
		respondWithError(w, http.StatusBadRequest, "valid email is required")
		return
	}

	if _, err := h.subscriberRepo.GetByEmail(r.Context(), email); err == nil {
		respondWithJSON(w, http.StatusOK, subscribeResponse{
			Success:           true,
			Message:           "you are already subscribed to our newsletter",
			Email:             email,
			AlreadySubscribed: true,
		})
		return
	} else if appErr, ok := apperrors.AsAppError(err); !ok || appErr.Type != apperrors.ErrorTypeNotFound {
		respondWithAppError(w, err)
		return
	}

	source := strings.TrimSpace(payload.Source)
	if source == "" {
		source = defaultSubscriptionSource
	}

	subscriber := &entities.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.TrimSpace(payload.Name),
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.subscriberRepo.Create(r.Context(), subscriber); err != nil {
		// A concurrent subscribe for the same email shows up as a conflict;
		// still an idempotent success from the caller's point of view.
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Type == apperrors.ErrorTypeConflict {
			respondWithJSON(w, http.StatusOK, subscribeResponse{
				Success:           true,
				Message:           "you are already subscribed to our newsletter",
				Email:             email,
				AlreadySubscribed: true,
			})
			return
		}
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, subscribeResponse{
		Success: true,
		Message: "you have been subscribed to our newsletter",
		Email:   email,
	})
}

// Unsubscribe handles DELETE /api/subscribe?email=
func (h *SubscriberHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		respondWithError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.subscriberRepo.DeleteByEmail(r.Context(), email); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, subscribeResponse{
		Success: true,
		Message: "you have been unsubscribed from our newsletter",
	})
}
