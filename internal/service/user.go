package service

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// UserService is the user directory: identity, role and status lookups plus
// the admin-facing account operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers retrieves all users. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor Actor) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.userRepo.GetAll(ctx)
}

// ListDrivers retrieves all drivers. Admin only.
func (s *UserService) ListDrivers(ctx context.Context, actor Actor) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.userRepo.GetByRole(ctx, domain.RoleDriver)
}

// SetUserActive activates or deactivates an account. Admin only. Drivers
// register inactive and stay that way until an admin vets them here.
func (s *UserService) SetUserActive(ctx context.Context, userID string, active bool, actor Actor) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// UpdateUserRequest contains the editable profile fields.
type UpdateUserRequest struct {
	FirstName    string
	LastName     string
	Phone        string
	VehicleType  string
	LicensePlate string
}

// UpdateUser updates a user's profile. Users may edit themselves; admins may
// edit anyone.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest, actor Actor) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != userID {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.VehicleType != "" {
		user.VehicleType = req.VehicleType
	}
	if req.LicensePlate != "" {
		user.LicensePlate = req.LicensePlate
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
