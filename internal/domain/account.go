package domain

import "time"

// Role enumerates the permission classes an account can hold. The set is
// closed; every protected route declares the exact roles it accepts, there
// is no implicit hierarchy between them.
type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleStaff, RoleManager, RoleAdmin}

// Valid reports whether the role belongs to the enumerated set.
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Account is the domain model for a registered user of the system.
type Account struct {
	ID       string
	Username string
	Email    string
	// Password holds the stored credential. Its shape depends on the
	// configured scheme: a bcrypt hash in production, the raw value when the
	// plaintext scheme is enabled for deterministic fixtures.
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
