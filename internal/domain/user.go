package domain

import "time"

// Role is the authorization tier stored on a user record.
type Role string

const (
	RoleNone       Role = "none"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// ParseRole maps a stored role value onto the closed set of roles.
// Anything unrecognized becomes RoleNone.
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSuperAdmin:
		return RoleSuperAdmin
	default:
		return RoleNone
	}
}

// Privileged reports whether the role may pass admin-tier routes.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// UserStatus represents lifecycle states for a user.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User is a job-board account keyed by email.
type User struct {
	ID        string
	Email     string
	Name      string
	Image     string
	Role      Role
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
