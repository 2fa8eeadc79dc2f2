package entities

import "time"

// ContactStatus is the workflow state of a contact submission
type ContactStatus string

const (
	ContactStatusPending    ContactStatus = "pending"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusCompleted  ContactStatus = "completed"
	ContactStatusArchived   ContactStatus = "archived"
)

// Valid reports whether the status is one of the allowed values
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusPending, ContactStatusInProgress, ContactStatusCompleted, ContactStatusArchived:
		return true
	}
	return false
}

// Contact represents a contact-form submission
type Contact struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Email     string        `json:"email" db:"email"`
	Message   string        `json:"message" db:"message"`
	Status    ContactStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}
