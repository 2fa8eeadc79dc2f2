package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/internal/domain/repositories"
	"github.com/realkdc/top-thc-brands/internal/infrastructure/clients/postgres"
	apperrors "github.com/realkdc/top-thc-brands/pkg/errors"
)

var contactColumns = []interface{}{
	"id", "name", "email", "message", "status", "created_at", "updated_at",
}

// ContactAdapter implements the ContactRepository interface
type ContactAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewContactAdapter creates a new contact adapter
func NewContactAdapter(client *postgres.Client) repositories.ContactRepository {
	return &ContactAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new contact submission
func (a *ContactAdapter) Create(ctx context.Context, contact *entities.Contact) error {
	record := goqu.Record{
		"id":         contact.ID,
		"name":       contact.Name,
		"email":      contact.Email,
		"message":    contact.Message,
		"status":     string(contact.Status),
		"created_at": contact.CreatedAt,
		"updated_at": contact.UpdatedAt,
	}

	query, args, err := a.db.Insert("contacts").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build contact insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create contact", err)
	}

	return nil
}

// List retrieves all submissions, newest first
func (a *ContactAdapter) List(ctx context.Context) ([]*entities.Contact, error) {
	query, args, err := a.db.Select(contactColumns...).
		From("contacts").
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build contact list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list contacts", err)
	}
	defer rows.Close()

	var contacts []*entities.Contact
	for rows.Next() {
		contact := &entities.Contact{}
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Message,
			&contact.Status,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan contact", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate contacts", err)
	}

	return contacts, nil
}

// GetByID retrieves a submission by ID
func (a *ContactAdapter) GetByID(ctx context.Context, id string) (*entities.Contact, error) {
	query, args, err := a.db.Select(contactColumns...).
		From("contacts").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build contact query", err)
	}

	contact := &entities.Contact{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Message,
		&contact.Status,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("contact with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get contact", err)
	}

	return contact, nil
}

// UpdateStatus moves a submission to the given status
func (a *ContactAdapter) UpdateStatus(ctx context.Context, id string, status entities.ContactStatus) (*entities.Contact, error) {
	query, args, err := a.db.Update("contacts").
		Set(goqu.Record{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build contact update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update contact status", err)
	}

	if err := requireRowAffected(result, fmt.Sprintf("contact with id %s not found", id)); err != nil {
		return nil, err
	}

	return a.GetByID(ctx, id)
}

// Delete deletes a submission
func (a *ContactAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("contacts").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build contact delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete contact", err)
	}

	return requireRowAffected(result, fmt.Sprintf("contact with id %s not found", id))
}
