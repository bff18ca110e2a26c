package service

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

// DriverService handles driver availability and location reporting.
type DriverService struct {
	locationStore redis.LocationStoreInterface
	cacheStore    *redis.CacheStore
	userRepo      repository.UserRepository
}

// NewDriverService creates a new DriverService. cacheStore may be nil.
func NewDriverService(
	locationStore redis.LocationStoreInterface,
	cacheStore *redis.CacheStore,
	userRepo repository.UserRepository,
) *DriverService {
	return &DriverService{
		locationStore: locationStore,
		cacheStore:    cacheStore,
		userRepo:      userRepo,
	}
}

// UpdateLocationRequest contains the parameters for a location report.
type UpdateLocationRequest struct {
	DriverID string
	Lat      float64
	Lng      float64
}

// UpdateLocation records a driver's position in the geo index. Drivers may
// only report their own position. Location is independent of ride state.
func (s *DriverService) UpdateLocation(ctx context.Context, req UpdateLocationRequest, actor Actor) error {
	if req.DriverID == "" {
		return ErrInvalidDriverID
	}
	if actor.ID != req.DriverID {
		return ErrUnauthorized
	}
	if !isValidLatitude(req.Lat) || !isValidLongitude(req.Lng) {
		return ErrInvalidLocation
	}

	driver, err := s.userRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return err
	}
	if driver.Role != domain.RoleDriver {
		return ErrNotDriver
	}

	return s.locationStore.UpdateLocation(ctx, req.DriverID, req.Lat, req.Lng)
}

// SetDriverStatus changes a driver's availability. Drivers set their own
// status; admins may force one. Going OFFLINE removes the driver from the
// geo index so matching stops suggesting them.
func (s *DriverService) SetDriverStatus(ctx context.Context, driverID string, status domain.DriverStatus, actor Actor) (*domain.User, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	if !actor.IsAdmin() && actor.ID != driverID {
		return nil, ErrUnauthorized
	}

	switch status {
	case domain.DriverStatusAvailable, domain.DriverStatusBusy, domain.DriverStatusOffline:
	default:
		return nil, ErrInvalidDriverStatus
	}

	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Role != domain.RoleDriver {
		return nil, ErrNotDriver
	}
	if !driver.Active {
		return nil, ErrUserInactive
	}

	if err := s.userRepo.UpdateDriverStatus(ctx, driverID, status); err != nil {
		return nil, err
	}
	driver.DriverStatus = status

	if status == domain.DriverStatusOffline {
		if err := s.locationStore.RemoveLocation(ctx, driverID); err != nil {
			return nil, err
		}
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateDriver(ctx, driverID)
	}

	return driver, nil
}

// NearbyDriver is an AVAILABLE driver with their last-known position.
type NearbyDriver struct {
	DriverID string
	Lat      float64
	Lng      float64
}

// FindNearby returns AVAILABLE drivers within radiusKm of a point,
// closest first.
func (s *DriverService) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyDriver, error) {
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return nil, ErrInvalidLocation
	}
	if radiusKm <= 0 {
		radiusKm = initialSearchRadiusKm
	}

	locations, err := s.locationStore.FindNearbyDrivers(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	var nearby []NearbyDriver
	for _, loc := range locations {
		driver, err := s.userRepo.GetByID(ctx, loc.DriverID)
		if err != nil {
			continue
		}
		if driver.Role != domain.RoleDriver || !driver.Active ||
			driver.DriverStatus != domain.DriverStatusAvailable {
			continue
		}
		nearby = append(nearby, NearbyDriver{
			DriverID: loc.DriverID,
			Lat:      loc.Lat,
			Lng:      loc.Lng,
		})
	}

	return nearby, nil
}
