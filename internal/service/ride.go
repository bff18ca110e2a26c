package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

// rideAcceptLockTTL bounds how long a crashed accept attempt can keep other
// drivers away from the ride.
const rideAcceptLockTTL = 10 * time.Second

// DriverFinder locates candidate drivers around a pickup point.
// This interface allows for testing with mock implementations.
type DriverFinder interface {
	FindNearbyAvailable(ctx context.Context, lat, lng float64) ([]string, error)
}

// RideService owns the ride lifecycle: it creates rides and enforces legal
// state transitions, actor authorization and exclusive acceptance. Every
// mutation returns the full updated ride so callers never need a re-fetch.
type RideService struct {
	rideRepo            repository.RideRepository
	userRepo            repository.UserRepository
	lockStore           redis.LockStoreInterface
	locationStore       redis.LocationStoreInterface
	finder              DriverFinder
	notificationService *NotificationService
	calculateFare       FareCalculator
}

// NewRideService creates a new RideService. lockStore, locationStore, finder
// and notificationService may be nil; fare must not be.
func NewRideService(
	rideRepo repository.RideRepository,
	userRepo repository.UserRepository,
	lockStore redis.LockStoreInterface,
	locationStore redis.LocationStoreInterface,
	finder DriverFinder,
	notificationService *NotificationService,
	fare FareCalculator,
) *RideService {
	if fare == nil {
		fare = StandardFare
	}
	return &RideService{
		rideRepo:            rideRepo,
		userRepo:            userRepo,
		lockStore:           lockStore,
		locationStore:       locationStore,
		finder:              finder,
		notificationService: notificationService,
		calculateFare:       fare,
	}
}

// RequestRideRequest contains the parameters for requesting a ride.
type RequestRideRequest struct {
	CustomerID string
	Pickup     domain.Point
	Dropoff    domain.Point
}

// RequestRide creates a new ride in REQUESTED state and notifies nearby
// available drivers. A customer can hold at most one active ride.
func (s *RideService) RequestRide(ctx context.Context, req RequestRideRequest) (*domain.Ride, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.userRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Role != domain.RoleCustomer {
		return nil, ErrNotCustomer
	}
	if !customer.Active {
		return nil, ErrUserInactive
	}

	active, err := s.rideRepo.GetActiveByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrActiveRideExists
	}

	ride := &domain.Ride{
		ID:          uuid.New().String(),
		CustomerID:  req.CustomerID,
		Pickup:      req.Pickup,
		Dropoff:     req.Dropoff,
		Status:      domain.RideStatusRequested,
		RequestedAt: time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	// Matching is advisory: candidates get notified, but assignment only
	// happens when a driver accepts. A failed search must not fail the request.
	if s.finder != nil && s.notificationService != nil {
		if driverIDs, err := s.finder.FindNearbyAvailable(ctx, ride.Pickup.Lat, ride.Pickup.Lng); err == nil {
			_ = s.notificationService.NotifyRideRequested(ctx, ride, driverIDs)
		}
	}

	return ride, nil
}

// AcceptRide transitions a REQUESTED ride to ACCEPTED on behalf of a driver.
// Acceptance is exclusive: under concurrent calls exactly one driver wins and
// the rest get ErrRideAlreadyAccepted.
func (s *RideService) AcceptRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Role != domain.RoleDriver {
		return nil, ErrNotDriver
	}
	if !driver.Active || driver.DriverStatus != domain.DriverStatusAvailable {
		return nil, ErrDriverNotAvailable
	}

	// Short-TTL lock so concurrent accepts mostly resolve without hitting
	// the database. The conditional update below is the actual guarantee,
	// so a lock store failure degrades to the database path instead of
	// failing the accept.
	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireRideLock(ctx, rideID, rideAcceptLockTTL)
		switch {
		case err != nil:
		case !locked:
			return nil, ErrRideAlreadyAccepted
		default:
			defer func() { _ = s.lockStore.ReleaseRideLock(ctx, rideID) }()
		}
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	switch ride.Status {
	case domain.RideStatusRequested:
		// Available for acceptance.
	case domain.RideStatusAccepted, domain.RideStatusInProgress:
		return nil, ErrRideAlreadyAccepted
	default:
		return nil, ErrInvalidTransition
	}

	ride.DriverID = driverID
	ride.Status = domain.RideStatusAccepted
	ride.AcceptedAt = time.Now()

	if err := s.rideRepo.UpdateIfStatus(ctx, ride, domain.RideStatusRequested); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrRideAlreadyAccepted
		}
		return nil, err
	}

	if err := s.userRepo.UpdateDriverStatus(ctx, driverID, domain.DriverStatusBusy); err != nil &&
		!errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyDriverAssigned(ctx, ride, driver)
	}

	return ride, nil
}

// StartRide transitions an ACCEPTED ride to IN_PROGRESS. Only the assigned
// driver may start it.
func (s *RideService) StartRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusAccepted {
		return nil, ErrInvalidTransition
	}
	if ride.DriverID != driverID {
		return nil, ErrUnauthorized
	}

	ride.Status = domain.RideStatusInProgress
	ride.StartedAt = time.Now()

	if err := s.rideRepo.UpdateIfStatus(ctx, ride, domain.RideStatusAccepted); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideStarted(ctx, ride)
	}

	return ride, nil
}

// CompleteRide transitions an IN_PROGRESS ride to COMPLETED, computing and
// storing fare and distance exactly once. The driver becomes AVAILABLE again
// and their last-known location moves to the dropoff point.
func (s *RideService) CompleteRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusInProgress {
		return nil, ErrInvalidTransition
	}
	if ride.DriverID != driverID {
		return nil, ErrUnauthorized
	}

	fare, distanceKm := s.calculateFare(ride.Pickup, ride.Dropoff)

	ride.Status = domain.RideStatusCompleted
	ride.Fare = fare
	ride.DistanceKm = distanceKm
	ride.CompletedAt = time.Now()

	if err := s.rideRepo.UpdateIfStatus(ctx, ride, domain.RideStatusInProgress); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if err := s.userRepo.UpdateDriverStatus(ctx, driverID, domain.DriverStatusAvailable); err != nil &&
		!errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if s.locationStore != nil {
		_ = s.locationStore.UpdateLocation(ctx, driverID, ride.Dropoff.Lat, ride.Dropoff.Lng)
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideCompleted(ctx, ride)
	}

	return ride, nil
}

// CancelRideRequest contains the parameters for cancelling a ride.
type CancelRideRequest struct {
	RideID  string
	ActorID string
	Reason  string
}

// CancelRide transitions a REQUESTED or ACCEPTED ride to CANCELLED. Only the
// owning customer or the assigned driver may cancel. Once a ride is
// IN_PROGRESS it can only be completed.
func (s *RideService) CancelRide(ctx context.Context, req CancelRideRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if req.ActorID != ride.CustomerID && (ride.DriverID == "" || req.ActorID != ride.DriverID) {
		return nil, ErrUnauthorized
	}

	from := ride.Status
	if from != domain.RideStatusRequested && from != domain.RideStatusAccepted {
		return nil, ErrInvalidTransition
	}

	ride.Status = domain.RideStatusCancelled
	ride.CancelledAt = time.Now()
	ride.CancelReason = req.Reason

	if err := s.rideRepo.UpdateIfStatus(ctx, ride, from); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	// A driver freed by the cancellation goes back to AVAILABLE.
	if from == domain.RideStatusAccepted && ride.DriverID != "" {
		if err := s.userRepo.UpdateDriverStatus(ctx, ride.DriverID, domain.DriverStatusAvailable); err != nil &&
			!errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideCancelled(ctx, ride, req.ActorID, req.Reason)
	}

	return ride, nil
}

// GetRide retrieves a single ride. Visible to the owning customer, the
// assigned driver and admins.
func (s *RideService) GetRide(ctx context.Context, rideID string, actor Actor) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && actor.ID != ride.CustomerID && actor.ID != ride.DriverID {
		return nil, ErrUnauthorized
	}

	return ride, nil
}

// RidesForCustomer lists a customer's rides, most recent request first.
// Visible to the customer themselves and admins.
func (s *RideService) RidesForCustomer(ctx context.Context, customerID string, actor Actor) ([]*domain.Ride, error) {
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if !actor.IsAdmin() && actor.ID != customerID {
		return nil, ErrUnauthorized
	}

	return s.rideRepo.GetByCustomerID(ctx, customerID)
}

// RidesForDriver lists a driver's rides, most recent request first.
// Visible to the driver themselves and admins.
func (s *RideService) RidesForDriver(ctx context.Context, driverID string, actor Actor) ([]*domain.Ride, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	if !actor.IsAdmin() && actor.ID != driverID {
		return nil, ErrUnauthorized
	}

	return s.rideRepo.GetByDriverID(ctx, driverID)
}

// AllRides lists every ride, most recent request first. Admin only.
func (s *RideService) AllRides(ctx context.Context, actor Actor) ([]*domain.Ride, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	return s.rideRepo.GetAll(ctx)
}

func (s *RideService) validateRequest(req RequestRideRequest) error {
	if req.CustomerID == "" {
		return ErrInvalidCustomerID
	}

	if !isValidLatitude(req.Pickup.Lat) || !isValidLongitude(req.Pickup.Lng) {
		return ErrInvalidPickupLocation
	}

	if !isValidLatitude(req.Dropoff.Lat) || !isValidLongitude(req.Dropoff.Lng) {
		return ErrInvalidDropoffLocation
	}

	return nil
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
