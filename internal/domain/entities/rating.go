package entities

import (
	"time"

	"github.com/realkdc/top-thc-brands/pkg/rating"
)

const (
	// RatingScoreMin and RatingScoreMax bound each submitted criterion score.
	RatingScoreMin = rating.ScoreMin
	RatingScoreMax = rating.ScoreMax
)

// RatingScores aliases the shared wire type so the server and the client
// packages agree on one definition.
type RatingScores = rating.Scores

// BrandRating represents one persisted rating submission for a brand
type BrandRating struct {
	ID        string       `json:"id" db:"id"`
	BrandID   string       `json:"brand_id" db:"brand_id"`
	Scores    RatingScores `json:"scores"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// LeaderboardEntry is a brand with its aggregated rating standing
type LeaderboardEntry struct {
	Brand Brand `json:"brand"`
	Votes int   `json:"votes"`
}
