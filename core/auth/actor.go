package auth

import (
	"fmt"

	"stocktake/core/apperror"
)

// Role is the privilege level of an actor.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// Actor identifies who performs an operation.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Label returns the identity recorded in audit fields.
func (a Actor) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// RequireAuthenticated rejects anonymous actors.
func RequireAuthenticated(a Actor) error {
	if a.ID == "" || !a.Role.Valid() {
		return fmt.Errorf("%w: authenticated actor required", apperror.ErrUnauthorized)
	}
	return nil
}

// RequireAdmin rejects actors without the admin role.
func RequireAdmin(a Actor) error {
	if err := RequireAuthenticated(a); err != nil {
		return err
	}
	if !a.IsAdmin() {
		return fmt.Errorf("%w: admin role required", apperror.ErrUnauthorized)
	}
	return nil
}
