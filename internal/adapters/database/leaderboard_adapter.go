package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/internal/domain/repositories"
	"github.com/realkdc/top-thc-brands/internal/infrastructure/clients/postgres"
	apperrors "github.com/realkdc/top-thc-brands/pkg/errors"
)

// LeaderboardAdapter implements the LeaderboardRepository interface over the
// brand_leaderboard table
type LeaderboardAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLeaderboardAdapter creates a new leaderboard adapter
func NewLeaderboardAdapter(client *postgres.Client) repositories.LeaderboardRepository {
	return &LeaderboardAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a rating submission
func (a *LeaderboardAdapter) Create(ctx context.Context, rating *entities.BrandRating) error {
	record := goqu.Record{
		"id":         rating.ID,
		"brand_id":   rating.BrandID,
		"potency":    rating.Scores.Potency,
		"flavor":     rating.Scores.Flavor,
		"effects":    rating.Scores.Effects,
		"value":      rating.Scores.Value,
		"overall":    rating.Scores.Overall,
		"created_at": rating.CreatedAt,
	}

	query, args, err := a.db.Insert("brand_leaderboard").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build rating insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create rating", err)
	}

	return nil
}

// AggregateOverall returns the average overall score and submission count for a brand
func (a *LeaderboardAdapter) AggregateOverall(ctx context.Context, brandID string) (float64, int, error) {
	query, args, err := a.db.From("brand_leaderboard").
		Select(
			goqu.COALESCE(goqu.AVG("overall"), 0),
			goqu.COUNT(goqu.Star()),
		).
		Where(goqu.Ex{"brand_id": brandID}).
		ToSQL()
	if err != nil {
		return 0, 0, apperrors.NewInternalError("failed to build aggregate query", err)
	}

	var avg float64
	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&avg, &count); err != nil {
		return 0, 0, apperrors.NewInternalError("failed to aggregate ratings", err)
	}

	return avg, count, nil
}

// ListEntries returns all brands with their vote counts, highest rated first
func (a *LeaderboardAdapter) ListEntries(ctx context.Context) ([]*entities.LeaderboardEntry, error) {
	query, args, err := a.db.From(goqu.T("brands").As("b")).
		LeftJoin(
			goqu.T("brand_leaderboard").As("r"),
			goqu.On(goqu.I("r.brand_id").Eq(goqu.I("b.id"))),
		).
		Select(
			goqu.I("b.id"), goqu.I("b.name"), goqu.I("b.description"),
			goqu.I("b.logo_url"), goqu.I("b.category"), goqu.I("b.rating"),
			goqu.I("b.featured"), goqu.I("b.website"), goqu.I("b.product_types"),
			goqu.I("b.location"), goqu.I("b.slug"),
			goqu.I("b.created_at"), goqu.I("b.updated_at"),
			goqu.COUNT(goqu.I("r.id")).As("votes"),
		).
		GroupBy(goqu.I("b.id")).
		Order(goqu.I("b.rating").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build leaderboard query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list leaderboard entries", err)
	}
	defer rows.Close()

	var entries []*entities.LeaderboardEntry
	for rows.Next() {
		entry := &entities.LeaderboardEntry{}
		brand, err := scanLeaderboardBrand(rows, &entry.Votes)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan leaderboard entry", err)
		}
		entry.Brand = *brand
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate leaderboard entries", err)
	}

	return entries, nil
}

func scanLeaderboardBrand(row rowScanner, votes *int) (*entities.Brand, error) {
	brand := &entities.Brand{}
	var description, logoURL, category, website, location sql.NullString
	var productTypes pq.StringArray

	err := row.Scan(
		&brand.ID,
		&brand.Name,
		&description,
		&logoURL,
		&category,
		&brand.Rating,
		&brand.Featured,
		&website,
		&productTypes,
		&location,
		&brand.Slug,
		&brand.CreatedAt,
		&brand.UpdatedAt,
		votes,
	)
	if err != nil {
		return nil, err
	}

	brand.Description = description.String
	brand.LogoURL = logoURL.String
	brand.Category = category.String
	brand.Website = website.String
	brand.Location = location.String
	brand.ProductTypes = []string(productTypes)

	return brand, nil
}
