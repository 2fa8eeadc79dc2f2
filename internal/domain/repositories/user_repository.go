package repositories

import (
	"context"
	"time"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// UpdateLastLogin records the time of a successful login
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
