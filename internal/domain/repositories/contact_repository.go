package repositories

import (
	"context"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
)

// ContactRepository defines the interface for contact submission operations
type ContactRepository interface {
	// Create inserts a new contact submission
	Create(ctx context.Context, contact *entities.Contact) error

	// List retrieves all submissions, newest first
	List(ctx context.Context) ([]*entities.Contact, error)

	// GetByID retrieves a submission by ID
	GetByID(ctx context.Context, id string) (*entities.Contact, error)

	// UpdateStatus moves a submission to the given status and returns the
	// updated record
	UpdateStatus(ctx context.Context, id string, status entities.ContactStatus) (*entities.Contact, error)

	// Delete deletes a submission
	Delete(ctx context.Context, id string) error
}
