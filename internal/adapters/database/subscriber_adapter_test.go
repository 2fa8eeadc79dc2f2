package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/realkdc/top-thc-brands/internal/adapters/database"
	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	apperrors "github.com/realkdc/top-thc-brands/pkg/errors"
)

var subscriberRows = []string{
	"id", "email", "name", "source", "confirmed", "unsubscribed", "unsubscribed_at", "created_at",
}

func TestSubscriberAdapter_GetByEmail(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewSubscriberAdapter(client)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .* FROM "subscribers" WHERE`).WillReturnRows(
		mock.NewRows(subscriberRows).AddRow("s1", "fan@example.com", nil, "website", false, false, nil, now),
	)

	sub, err := adapter.GetByEmail(context.Background(), "fan@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "fan@example.com", sub.Email)
	assert.Empty(t, sub.Name)
	assert.Nil(t, sub.UnsubscribedAt)
}

func TestSubscriberAdapter_GetByEmail_NotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewSubscriberAdapter(client)

	mock.ExpectQuery(`SELECT .* FROM "subscribers" WHERE`).WillReturnRows(mock.NewRows(subscriberRows))

	_, err := adapter.GetByEmail(context.Background(), "nobody@example.com")
	appErr, ok := apperrors.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestSubscriberAdapter_Create_DuplicateEmail(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewSubscriberAdapter(client)

	mock.ExpectExec(`INSERT INTO "subscribers"`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := adapter.Create(context.Background(), &entities.Subscriber{
		ID: "s1", Email: "fan@example.com", Source: "website",
	})
	appErr, ok := apperrors.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
}

func TestSubscriberAdapter_DeleteByEmail(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewSubscriberAdapter(client)

	// deleting an absent email is not an error; unsubscribe is idempotent
	mock.ExpectExec(`DELETE FROM "subscribers"`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, adapter.DeleteByEmail(context.Background(), "nobody@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
