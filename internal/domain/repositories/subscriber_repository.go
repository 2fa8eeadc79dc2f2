package repositories

import (
	"context"

	"github.com/realkdc/top-thc-brands/internal/domain/entities"
)

// SubscriberRepository defines the interface for newsletter subscriptions
type SubscriberRepository interface {
	// GetByEmail retrieves a subscriber by normalized email
	GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error)

	// Create inserts a new subscriber. A duplicate email returns a conflict
	// error so callers can treat it as already subscribed.
	Create(ctx context.Context, subscriber *entities.Subscriber) error

	// DeleteByEmail removes the subscription row for the given email
	DeleteByEmail(ctx context.Context, email string) error
}
