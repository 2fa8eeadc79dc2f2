package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realkdc/top-thc-brands/internal/api/handlers"
	"github.com/realkdc/top-thc-brands/internal/domain/entities"
)

type stubLeaderboardRepo struct {
	ratings []*entities.BrandRating
	entries []*entities.LeaderboardEntry
}

func (s *stubLeaderboardRepo) Create(ctx context.Context, rating *entities.BrandRating) error {
	s.ratings = append(s.ratings, rating)
	return nil
}

func (s *stubLeaderboardRepo) AggregateOverall(ctx context.Context, brandID string) (float64, int, error) {
	var sum, count int
	for _, r := range s.ratings {
		if r.BrandID == brandID {
			sum += r.Scores.Overall
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (s *stubLeaderboardRepo) ListEntries(ctx context.Context) ([]*entities.LeaderboardEntry, error) {
	return s.entries, nil
}

func rateRequest(body, ip string) *http.Request {
	req := httptest.NewRequest("POST", "/api/leaderboard/b1/rate", strings.NewReader(body))
	req.SetPathValue("brandId", "b1")
	req.RemoteAddr = ip + ":1234"
	return req
}

func TestLeaderboardHandler_RateBrand_Success(t *testing.T) {
	brands := &stubBrandRepo{brands: []*entities.Brand{{ID: "b1", Name: "Alien Labs", Slug: "alien-labs"}}}
	ratings := &stubLeaderboardRepo{}
	handler := handlers.NewLeaderboardHandler(ratings, brands, nil)

	body := `{"potency":8,"flavor":9,"effects":8,"value":7,"overall":8}`
	w := httptest.NewRecorder()

	handler.RateBrand(w, rateRequest(body, "10.0.0.1"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, ratings.ratings, 1)
	assert.Equal(t, "b1", ratings.ratings[0].BrandID)

	// the brand's aggregate rating was refreshed from the new vote
	assert.Equal(t, 8.0, brands.ratings["b1"])

	var response map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "received", response["status"])
	assert.NotEmpty(t, response["id"])
}

func TestLeaderboardHandler_RateBrand_ScoreBounds(t *testing.T) {
	brands := &stubBrandRepo{brands: []*entities.Brand{{ID: "b1", Slug: "alien-labs"}}}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"all minimum", `{"potency":1,"flavor":1,"effects":1,"value":1,"overall":1}`, http.StatusCreated},
		{"all maximum", `{"potency":10,"flavor":10,"effects":10,"value":10,"overall":10}`, http.StatusCreated},
		{"zero score", `{"potency":0,"flavor":5,"effects":5,"value":5,"overall":5}`, http.StatusBadRequest},
		{"over maximum", `{"potency":5,"flavor":11,"effects":5,"value":5,"overall":5}`, http.StatusBadRequest},
		{"missing scores", `{"overall":5}`, http.StatusBadRequest},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := handlers.NewLeaderboardHandler(&stubLeaderboardRepo{}, brands, nil)
			w := httptest.NewRecorder()

			handler.RateBrand(w, rateRequest(tc.body, "10.0.1."+strconv.Itoa(i+1)))

			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestLeaderboardHandler_RateBrand_UnknownBrand(t *testing.T) {
	handler := handlers.NewLeaderboardHandler(&stubLeaderboardRepo{}, &stubBrandRepo{}, nil)

	body := `{"potency":8,"flavor":9,"effects":8,"value":7,"overall":8}`
	w := httptest.NewRecorder()

	handler.RateBrand(w, rateRequest(body, "10.0.0.2"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeaderboardHandler_RateBrand_Duplicate(t *testing.T) {
	brands := &stubBrandRepo{brands: []*entities.Brand{{ID: "b1", Slug: "alien-labs"}}}
	ratings := &stubLeaderboardRepo{}
	handler := handlers.NewLeaderboardHandler(ratings, brands, nil)

	body := `{"potency":8,"flavor":9,"effects":8,"value":7,"overall":8}`

	w := httptest.NewRecorder()
	handler.RateBrand(w, rateRequest(body, "10.0.0.3"))
	assert.Equal(t, http.StatusCreated, w.Code)

	w2 := httptest.NewRecorder()
	handler.RateBrand(w2, rateRequest(body, "10.0.0.3"))
	assert.Equal(t, http.StatusAccepted, w2.Code)
	assert.Len(t, ratings.ratings, 1)
}

func TestLeaderboardHandler_RateBrand_RateLimit(t *testing.T) {
	brands := &stubBrandRepo{brands: []*entities.Brand{{ID: "b1", Slug: "alien-labs"}}}
	handler := handlers.NewLeaderboardHandler(&stubLeaderboardRepo{}, brands, nil)

	// distinct payloads sidestep dedup; the eleventh request trips the limit
	for overall := 1; overall <= 10; overall++ {
		body := `{"potency":5,"flavor":5,"effects":5,"value":5,"overall":` + strconv.Itoa(overall) + `}`
		w := httptest.NewRecorder()
		handler.RateBrand(w, rateRequest(body, "10.0.0.4"))
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	handler.RateBrand(w, rateRequest(`{"potency":6,"flavor":6,"effects":6,"value":6,"overall":6}`, "10.0.0.4"))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestLeaderboardHandler_GetLeaderboard(t *testing.T) {
	ratings := &stubLeaderboardRepo{entries: []*entities.LeaderboardEntry{
		{Brand: entities.Brand{ID: "b1", Name: "Alien Labs", Rating: 9.1}, Votes: 12},
		{Brand: entities.Brand{ID: "b2", Name: "Jungle Boys", Rating: 8.7}, Votes: 9},
	}}
	handler := handlers.NewLeaderboardHandler(ratings, &stubBrandRepo{}, nil)

	req := httptest.NewRequest("GET", "/api/leaderboard", nil)
	w := httptest.NewRecorder()

	handler.GetLeaderboard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Leaderboard []entities.LeaderboardEntry `json:"leaderboard"`
		Count       int                         `json:"count"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, "Alien Labs", response.Leaderboard[0].Brand.Name)
	assert.Equal(t, 12, response.Leaderboard[0].Votes)
}
