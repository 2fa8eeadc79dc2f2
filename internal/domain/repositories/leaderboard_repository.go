package repositories

import (
	"context"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
)

// LeaderboardRepository defines the interface for rating submissions
type LeaderboardRepository interface {
	// Create persists a rating submission
	Create(ctx context.Context, rating *entities.BrandRating) error

	// AggregateOverall returns the average overall score and submission count
	// for a brand. count is zero when the brand has no ratings.
	AggregateOverall(ctx context.Context, brandID string) (avg float64, count int, err error)

	// ListEntries returns all brands with their vote counts, ordered by the
	// brands' aggregate rating, highest first
	ListEntries(ctx context.Context) ([]*entities.LeaderboardEntry, error)
}
