package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/internal/domain/repositories"
	"github.com/realkdc/top-thc-brands/internal/infrastructure/clients/postgres"
	apperrors "github.com/realkdc/top-thc-brands/pkg/errors"
)

// SubscriberAdapter implements the SubscriberRepository interface
type SubscriberAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSubscriberAdapter creates a new subscriber adapter
func NewSubscriberAdapter(client *postgres.Client) repositories.SubscriberRepository {
	return &SubscriberAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByEmail retrieves a subscriber by normalized email
func (a *SubscriberAdapter) GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error) {
	query, args, err := a.db.Select(
		"id", "email", "name", "source", "confirmed",
		"unsubscribed", "unsubscribed_at", "created_at",
	).From("subscribers").
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build subscriber query", err)
	}

	subscriber := &entities.Subscriber{}
	var name sql.NullString
	var unsubscribedAt sql.NullTime

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&subscriber.ID,
		&subscriber.Email,
		&name,
		&subscriber.Source,
		&subscriber.Confirmed,
		&subscriber.Unsubscribed,
		&unsubscribedAt,
		&subscriber.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("subscriber with email %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get subscriber", err)
	}

	subscriber.Name = name.String
	if unsubscribedAt.Valid {
		subscriber.UnsubscribedAt = &unsubscribedAt.Time
	}

	return subscriber, nil
}

// Create inserts a new subscriber
func (a *SubscriberAdapter) Create(ctx context.Context, subscriber *entities.Subscriber) error {
	record := goqu.Record{
		"id":           subscriber.ID,
		"email":        subscriber.Email,
		"name":         sql.NullString{String: subscriber.Name, Valid: subscriber.Name != ""},
		"source":       subscriber.Source,
		"confirmed":    subscriber.Confirmed,
		"unsubscribed": subscriber.Unsubscribed,
		"created_at":   subscriber.CreatedAt,
	}

	query, args, err := a.db.Insert("subscribers").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build subscriber insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		// Two clients racing on the same email both deserve the friendly
		// already-subscribed response, so surface the unique violation as a
		// conflict rather than an internal error.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return apperrors.NewConflictError(fmt.Sprintf("subscriber with email %s already exists", subscriber.Email))
		}
		return apperrors.NewInternalError("failed to create subscriber", err)
	}

	return nil
}

// DeleteByEmail removes the subscription row for the given email
func (a *SubscriberAdapter) DeleteByEmail(ctx context.Context, email string) error {
	query, args, err := a.db.Delete("subscribers").
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build subscriber delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete subscriber", err)
	}

	return nil
}
