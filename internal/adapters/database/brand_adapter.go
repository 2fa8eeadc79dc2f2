package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/internal/domain/repositories"
	"github.com/realkdc/top-thc-brands/internal/infrastructure/clients/postgres"
	apperrors "github.com/realkdc/top-thc-brands/pkg/errors"
)

var brandColumns = []interface{}{
	"id", "name", "description", "logo_url", "category", "rating",
	"featured", "website", "product_types", "location", "slug",
	"created_at", "updated_at",
}

// BrandAdapter implements the BrandRepository interface
type BrandAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBrandAdapter creates a new brand adapter
func NewBrandAdapter(client *postgres.Client) repositories.BrandRepository {
	return &BrandAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new brand
func (a *BrandAdapter) Create(ctx context.Context, brand *entities.Brand) error {
	record := goqu.Record{
		"id":            brand.ID,
		"name":          brand.Name,
		"description":   sql.NullString{String: brand.Description, Valid: brand.Description != ""},
		"logo_url":      sql.NullString{String: brand.LogoURL, Valid: brand.LogoURL != ""},
		"category":      sql.NullString{String: brand.Category, Valid: brand.Category != ""},
		"rating":        brand.Rating,
		"featured":      brand.Featured,
		"website":       sql.NullString{String: brand.Website, Valid: brand.Website != ""},
		"product_types": pq.StringArray(brand.ProductTypes),
		"location":      sql.NullString{String: brand.Location, Valid: brand.Location != ""},
		"slug":          brand.Slug,
		"created_at":    brand.CreatedAt,
		"updated_at":    brand.UpdatedAt,
	}

	query, args, err := a.db.Insert("brands").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build brand insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return apperrors.NewConflictError(fmt.Sprintf("brand with slug %s already exists", brand.Slug))
		}
		return apperrors.NewInternalError("failed to create brand", err)
	}

	return nil
}

// GetByID retrieves a brand by ID
func (a *BrandAdapter) GetByID(ctx context.Context, id string) (*entities.Brand, error) {
	return a.getByColumn(ctx, "id", id)
}

// GetBySlug retrieves a brand by its URL slug
func (a *BrandAdapter) GetBySlug(ctx context.Context, slug string) (*entities.Brand, error) {
	return a.getByColumn(ctx, "slug", slug)
}

func (a *BrandAdapter) getByColumn(ctx context.Context, column, value string) (*entities.Brand, error) {
	query, args, err := a.db.Select(brandColumns...).
		From("brands").
		Where(goqu.Ex{column: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build brand query", err)
	}

	brand, err := scanBrand(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("brand with %s %s not found", column, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get brand", err)
	}

	return brand, nil
}

// List retrieves brands matching the filter, newest first
func (a *BrandAdapter) List(ctx context.Context, filter repositories.BrandFilter) ([]*entities.Brand, error) {
	ds := a.db.Select(brandColumns...).From("brands")

	if filter.Featured != nil {
		ds = ds.Where(goqu.Ex{"featured": *filter.Featured})
	}
	if filter.Category != "" {
		ds = ds.Where(goqu.Ex{"category": filter.Category})
	}

	query, args, err := ds.Order(goqu.I("created_at").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build brand list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list brands", err)
	}
	defer rows.Close()

	var brands []*entities.Brand
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan brand", err)
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate brands", err)
	}

	return brands, nil
}

// Update replaces the mutable fields of a brand
func (a *BrandAdapter) Update(ctx context.Context, brand *entities.Brand) error {
	brand.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"name":          brand.Name,
		"description":   sql.NullString{String: brand.Description, Valid: brand.Description != ""},
		"logo_url":      sql.NullString{String: brand.LogoURL, Valid: brand.LogoURL != ""},
		"category":      sql.NullString{String: brand.Category, Valid: brand.Category != ""},
		"rating":        brand.Rating,
		"featured":      brand.Featured,
		"website":       sql.NullString{String: brand.Website, Valid: brand.Website != ""},
		"product_types": pq.StringArray(brand.ProductTypes),
		"location":      sql.NullString{String: brand.Location, Valid: brand.Location != ""},
		"slug":          brand.Slug,
		"updated_at":    brand.UpdatedAt,
	}

	query, args, err := a.db.Update("brands").
		Set(record).
		Where(goqu.Ex{"id": brand.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build brand update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update brand", err)
	}

	return requireRowAffected(result, fmt.Sprintf("brand with id %s not found", brand.ID))
}

// UpdateRating sets the denormalized aggregate rating column
func (a *BrandAdapter) UpdateRating(ctx context.Context, id string, rating float64) error {
	query, args, err := a.db.Update("brands").
		Set(goqu.Record{"rating": rating, "updated_at": time.Now().UTC()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build rating update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update brand rating", err)
	}

	return requireRowAffected(result, fmt.Sprintf("brand with id %s not found", id))
}

// Delete deletes a brand
func (a *BrandAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("brands").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build brand delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete brand", err)
	}

	return requireRowAffected(result, fmt.Sprintf("brand with id %s not found", id))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBrand(row rowScanner) (*entities.Brand, error) {
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

func requireRowAffected(result sql.Result, notFoundMessage string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(notFoundMessage)
	}
	return nil
}
