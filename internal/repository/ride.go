package repository

import (
	"context"

	"rideshare/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetAll retrieves all rides, most recently requested first.
	GetAll(ctx context.Context) ([]*domain.Ride, error)

	// GetByCustomerID retrieves a customer's rides, most recently requested first.
	GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Ride, error)

	// GetByDriverID retrieves a driver's rides, most recently requested first.
	GetByDriverID(ctx context.Context, driverID string) ([]*domain.Ride, error)

	// GetActiveByCustomerID retrieves the customer's ride in REQUESTED,
	// ACCEPTED or IN_PROGRESS state. Returns nil if no active ride exists.
	GetActiveByCustomerID(ctx context.Context, customerID string) (*domain.Ride, error)

	// UpdateIfStatus writes the full ride row only if the stored status still
	// equals from. Returns ErrStatusConflict when the guard fails, which is
	// how losers of a concurrent transition race are detected. Every state
	// transition goes through this method so a ride either commits completely
	// or not at all.
	UpdateIfStatus(ctx context.Context, ride *domain.Ride, from domain.RideStatus) error
}
