package repository

import (
	"context"

	"rideshare/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// GetByRole retrieves all users with the given role.
	GetByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// Update updates an existing user's profile fields.
	Update(ctx context.Context, user *domain.User) error

	// UpdateDriverStatus updates the availability of a driver.
	UpdateDriverStatus(ctx context.Context, id string, status domain.DriverStatus) error

	// SetActive activates or deactivates an account.
	SetActive(ctx context.Context, id string, active bool) error
}
