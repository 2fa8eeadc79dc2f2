package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/realkdc/top-thc-brands/internal/auth"
	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/internal/domain/repositories"
	apperrors "github.com/realkdc/top-thc-brands/pkg/errors"
)

// AuthHandler handles login and session HTTP requests
type AuthHandler struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" || payload.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.userRepo.GetByEmail(r.Context(), email)
	if err != nil {
		// Unknown email and wrong password produce the same response so the
		// endpoint does not leak which accounts exist.
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			respondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondWithAppError(w, err)
		return
	}

	if !auth.CheckPassword(user.Password, payload.Password) {
		respondWithError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respondWithAppError(w, apperrors.NewInternalError("failed to issue session token", err))
		return
	}

	now := time.Now().UTC()
	if err := h.userRepo.UpdateLastLogin(r.Context(), user.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	} else {
		user.LastLogin = &now
	}

	respondWithJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  user,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), claims.UserID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
