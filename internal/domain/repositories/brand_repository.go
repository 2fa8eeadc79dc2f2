package repositories

import (
	"context"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
)

// BrandFilter narrows brand listings
type BrandFilter struct {
	// Featured selects only featured brands when set
	Featured *bool
	// Category matches the brand category exactly when non-empty
	Category string
}

// BrandRepository defines the interface for brand data operations
type BrandRepository interface {
	// List retrieves brands matching the filter, newest first
	List(ctx context.Context, filter BrandFilter) ([]*entities.Brand, error)

	// GetByID retrieves a brand by ID
	GetByID(ctx context.Context, id string) (*entities.Brand, error)

	// GetBySlug retrieves a brand by its URL slug
	GetBySlug(ctx context.Context, slug string) (*entities.Brand, error)

	// Create creates a new brand
	Create(ctx context.Context, brand *entities.Brand) error

	// Update replaces the mutable fields of a brand
	Update(ctx context.Context, brand *entities.Brand) error

	// UpdateRating sets the denormalized aggregate rating column
	UpdateRating(ctx context.Context, id string, rating float64) error

	// Delete deletes a brand
	Delete(ctx context.Context, id string) error
}
