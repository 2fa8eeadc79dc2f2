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

var userColumns = []interface{}{
	"id", "email", "password", "name", "role", "last_login", "created_at",
}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":         user.ID,
		"email":      user.Email,
		"password":   user.Password,
		"name":       user.Name,
		"role":       string(user.Role),
		"created_at": user.CreatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return apperrors.NewConflictError(fmt.Sprintf("user with email %s already exists", user.Email))
		}
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.getByColumn(ctx, "id", id)
}

// GetByEmail retrieves a user by normalized email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getByColumn(ctx, "email", email)
}

func (a *UserAdapter) getByColumn(ctx context.Context, column, value string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From("users").
		Where(goqu.Ex{column: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user := &entities.User{}
	var role string
	var lastLogin sql.NullTime

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Name,
		&role,
		&lastLogin,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with %s %s not found", column, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	// Unknown stored roles demote to the least-privileged role rather than fail.
	parsed, ok := entities.ParseRole(role)
	if !ok {
		parsed = entities.RoleUser
	}
	user.Role = parsed

	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}

// UpdateLastLogin records the time of a successful login
func (a *UserAdapter) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	query, args, err := a.db.Update("users").
		Set(goqu.Record{"last_login": at}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build last login update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update last login", err)
	}

	return requireRowAffected(result, fmt.Sprintf("user with id %s not found", id))
}
