package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rideshare/internal/auth"
	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterRequest contains the parameters for creating an account.
type RegisterRequest struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Phone        string
	Role         string
	VehicleType  string
	LicensePlate string
}

// Register creates a new account. Drivers start inactive (an admin vets them)
// and OFFLINE; customers and admins are active immediately.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return nil, ErrInvalidRegistration
	}

	role, err := parseRole(req.Role)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now(),
	}

	if role == domain.RoleDriver {
		user.Active = false
		user.DriverStatus = domain.DriverStatusOffline
		user.VehicleType = req.VehicleType
		user.LicensePlate = req.LicensePlate
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.Active {
		return "", nil, ErrUserInactive
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func parseRole(role string) (domain.Role, error) {
	switch domain.Role(role) {
	case domain.RoleAdmin, domain.RoleDriver, domain.RoleCustomer:
		return domain.Role(role), nil
	case "":
		return domain.RoleCustomer, nil
	default:
		return "", ErrInvalidRole
	}
}
