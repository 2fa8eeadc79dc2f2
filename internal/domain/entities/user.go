package entities

import "time"

// Role is an enumerated user role. Authorization goes through the capability
// predicates rather than comparing raw strings at call sites.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

// ParseRole maps a stored role string onto a known Role
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleUser:
		return Role(s), true
	}
	return "", false
}

// CanManageContent reports whether the role may create, update or delete
// directory content (brands, contact submissions)
func (r Role) CanManageContent() bool {
	return r == RoleAdmin || r == RoleEditor
}

// User represents an account able to sign in to the admin UI
type User struct {
	ID        string     `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	Password  string     `json:"-" db:"password"`
	Name      string     `json:"name" db:"name"`
	Role      Role       `json:"role" db:"role"`
	LastLogin *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
