package service

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

const (
	initialSearchRadiusKm = 5.0
	maxSearchRadiusKm     = 20.0
	radiusIncrementKm     = 5.0
	maxCandidates         = 10
)

// MatchingService finds candidate drivers for a pickup location. It widens
// the search ring until it finds available drivers or gives up at the max
// radius. It never assigns anyone to a ride; that only happens through
// RideService.AcceptRide.
type MatchingService struct {
	locationStore redis.LocationStoreInterface
	cacheStore    *redis.CacheStore
	userRepo      repository.UserRepository
}

// Ensure MatchingService implements DriverFinder.
var _ DriverFinder = (*MatchingService)(nil)

// NewMatchingService creates a new MatchingService. cacheStore may be nil.
func NewMatchingService(
	locationStore redis.LocationStoreInterface,
	cacheStore *redis.CacheStore,
	userRepo repository.UserRepository,
) *MatchingService {
	return &MatchingService{
		locationStore: locationStore,
		cacheStore:    cacheStore,
		userRepo:      userRepo,
	}
}

// FindNearbyAvailable returns IDs of AVAILABLE drivers around the pickup
// point, closest first, capped at maxCandidates.
func (s *MatchingService) FindNearbyAvailable(ctx context.Context, lat, lng float64) ([]string, error) {
	for radius := initialSearchRadiusKm; radius <= maxSearchRadiusKm; radius += radiusIncrementKm {
		locations, err := s.locationStore.FindNearbyDrivers(ctx, lat, lng, radius)
		if err != nil {
			return nil, err
		}
		if len(locations) == 0 {
			continue
		}

		candidates := s.filterAvailable(ctx, locations)
		if len(candidates) > 0 {
			return candidates, nil
		}
	}

	return nil, nil
}

// filterAvailable keeps drivers that are active and AVAILABLE, checking the
// cache first and falling back to the database on misses.
func (s *MatchingService) filterAvailable(ctx context.Context, locations []redis.DriverLocation) []string {
	driverIDs := make([]string, len(locations))
	for i, loc := range locations {
		driverIDs[i] = loc.DriverID
	}

	cached := map[string]*redis.CachedDriver{}
	if s.cacheStore != nil {
		cached, _, _ = s.cacheStore.GetDriversBatch(ctx, driverIDs)
	}

	var available []string
	for _, id := range driverIDs {
		if hit, ok := cached[id]; ok {
			if hit.Active && hit.Status == string(domain.DriverStatusAvailable) {
				available = append(available, id)
			}
			continue
		}

		driver, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			// A stale geo entry can outlive the account; skip it.
			continue
		}
		if driver.Role != domain.RoleDriver {
			continue
		}

		s.cacheDriver(ctx, driver)

		if driver.Active && driver.DriverStatus == domain.DriverStatusAvailable {
			available = append(available, id)
		}

		if len(available) >= maxCandidates {
			break
		}
	}

	if len(available) > maxCandidates {
		available = available[:maxCandidates]
	}

	return available
}

func (s *MatchingService) cacheDriver(ctx context.Context, driver *domain.User) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.SetDriver(ctx, &redis.CachedDriver{
		ID:          driver.ID,
		FirstName:   driver.FirstName,
		LastName:    driver.LastName,
		Status:      string(driver.DriverStatus),
		VehicleType: driver.VehicleType,
		Active:      driver.Active,
	})
}
