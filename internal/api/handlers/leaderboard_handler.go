package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/internal/domain/providers"
	"github.com/realkdc/top-thc-brands/internal/domain/repositories"
)

const (
	ratingRateLimit   = 10
	ratingRateWindow  = time.Hour
	ratingDedupWindow = 24 * time.Hour
)

// LeaderboardHandler handles leaderboard and rating HTTP requests
type LeaderboardHandler struct {
	leaderboardRepo repositories.LeaderboardRepository
	brandRepo       repositories.BrandRepository
	cache           providers.CacheProvider
	local           *localRateLimiter
	deduper         *localDeduper
}

// NewLeaderboardHandler creates a new leaderboard handler. The cache provider
// may be nil, in which case rate limiting and dedup fall back to process-local
// state.
func NewLeaderboardHandler(
	leaderboardRepo repositories.LeaderboardRepository,
	brandRepo repositories.BrandRepository,
	cache providers.CacheProvider,
) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardRepo: leaderboardRepo,
		brandRepo:       brandRepo,
		cache:           cache,
		local:           newLocalRateLimiter(),
		deduper:         newLocalDeduper(),
	}
}

// GetLeaderboard handles GET /api/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardRepo.ListEntries(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": entries,
		"count":       len(entries),
	})
}

// RateBrand handles POST /api/leaderboard/{brandId}/rate
func (h *LeaderboardHandler) RateBrand(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("brandId")
	if brandID == "" {
		respondWithError(w, http.StatusBadRequest, "brand ID is required")
		return
	}

	var scores entities.RatingScores
	if err := json.NewDecoder(r.Body).Decode(&scores); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := scores.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.brandRepo.GetByID(r.Context(), brandID); err != nil {
		respondWithAppError(w, err)
		return
	}

	ip := clientIP(r)
	rateKey := "rating:rate:" + ip
	allowed, retryAfter := h.allowRequest(r.Context(), rateKey)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	dupKey := "rating:dup:" + ratingFingerprint(brandID, scores, ip)
	if h.isDuplicate(r.Context(), dupKey) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	rating := &entities.BrandRating{
		ID:        uuid.NewString(),
		BrandID:   brandID,
		Scores:    scores,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.leaderboardRepo.Create(r.Context(), rating); err != nil {
		respondWithAppError(w, err)
		return
	}

	h.refreshBrandRating(r.Context(), brandID)

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"status": "received",
		"id":     rating.ID,
	})
}

// refreshBrandRating recomputes the brand's aggregate rating from its votes.
// The rating column is a denormalized convenience, so a failure here only
// leaves it stale until the next vote.
func (h *LeaderboardHandler) refreshBrandRating(ctx context.Context, brandID string) {
	avg, count, err := h.leaderboardRepo.AggregateOverall(ctx, brandID)
	if err != nil {
		log.Warn().Err(err).Str("brand_id", brandID).Msg("failed to aggregate brand ratings")
		return
	}
	if count == 0 {
		return
	}
	if err := h.brandRepo.UpdateRating(ctx, brandID, avg); err != nil {
		log.Warn().Err(err).Str("brand_id", brandID).Msg("failed to update brand rating")
	}
}

func (h *LeaderboardHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, ratingRateLimit, ratingRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= ratingRateLimit {
		return false, ratingRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(ratingRateWindow.Seconds()))
	return true, ratingRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

func (h *LeaderboardHandler) isDuplicate(ctx context.Context, key string) bool {
	if h.cache == nil {
		return h.deduper.seen(key, ratingDedupWindow)
	}

	exists, err := h.cache.Exists(ctx, key)
	if err == nil && exists {
		return true
	}

	_ = h.cache.Set(ctx, key, []byte("1"), int(ratingDedupWindow.Seconds()))
	return false
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

type localDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
	}
}

func (d *localDeduper) seen(key string, window time.Duration) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if expiresAt, ok := d.entries[key]; ok && now.Before(expiresAt) {
		return true
	}

	d.entries[key] = now.Add(window)
	return false
}

func ratingFingerprint(brandID string, scores entities.RatingScores, ip string) string {
	normalized := []string{
		brandID,
		strconv.Itoa(scores.Potency),
		strconv.Itoa(scores.Flavor),
		strconv.Itoa(scores.Effects),
		strconv.Itoa(scores.Value),
		strconv.Itoa(scores.Overall),
		ip,
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}
