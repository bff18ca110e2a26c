package service

import "rideshare/internal/domain"

// Actor identifies the authenticated caller of an operation. It is built
// from the verified token claims on every request and passed explicitly;
// the engine never reads ambient session state.
type Actor struct {
	ID   string
	Role domain.Role
}

// IsAdmin reports whether the actor holds the ADMIN role.
func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }
