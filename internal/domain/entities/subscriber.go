package entities

import "time"

// Subscriber represents a newsletter subscription.
// Unsubscribing currently removes the row; the unsubscribed columns are kept
// in the schema so a retention-preserving flow can be introduced later.
type Subscriber struct {
	ID             string     `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	Name           string     `json:"name,omitempty" db:"name"`
	Source         string     `json:"source" db:"source"`
	Confirmed      bool       `json:"confirmed" db:"confirmed"`
	Unsubscribed   bool       `json:"unsubscribed" db:"unsubscribed"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty" db:"unsubscribed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
