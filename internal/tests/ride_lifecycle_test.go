package tests

import (
	"context"
	"testing"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

func newRequestedRide(id, customerID string) *domain.Ride {
	return &domain.Ride{
		ID:          id,
		CustomerID:  customerID,
		Pickup:      domain.Point{Lat: -1.2921, Lng: 36.8219},
		Dropoff:     domain.Point{Lat: -1.2864, Lng: 36.8172},
		Status:      domain.RideStatusRequested,
		RequestedAt: time.Now(),
	}
}

func TestAcceptRide_AssignsDriverAndMarksBusy(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	ride, err := rideService.AcceptRide(context.Background(), "ride-1", "driver-1")
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if ride.Status != domain.RideStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", ride.Status)
	}
	if ride.DriverID != "driver-1" {
		t.Errorf("expected driver-1 assigned, got %q", ride.DriverID)
	}
	if ride.AcceptedAt.IsZero() {
		t.Error("expected AcceptedAt to be set")
	}
	if got := userRepo.GetUser("driver-1").DriverStatus; got != domain.DriverStatusBusy {
		t.Errorf("expected driver BUSY after accept, got %s", got)
	}
}

func TestAcceptRide_RejectsNonDriver(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestCustomer("customer-2"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	_, err := rideService.AcceptRide(context.Background(), "ride-1", "customer-2")
	if err != service.ErrNotDriver {
		t.Errorf("expected ErrNotDriver, got %v", err)
	}
}

func TestAcceptRide_RejectsBusyDriver(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	driver := newTestDriver("driver-1")
	driver.DriverStatus = domain.DriverStatusBusy
	userRepo.AddUser(driver)
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	_, err := rideService.AcceptRide(context.Background(), "ride-1", "driver-1")
	if err != service.ErrDriverNotAvailable {
		t.Errorf("expected ErrDriverNotAvailable, got %v", err)
	}
}

func TestAcceptRide_RejectsUnvettedDriver(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	driver := newTestDriver("driver-1")
	driver.Active = false
	userRepo.AddUser(driver)
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	_, err := rideService.AcceptRide(context.Background(), "ride-1", "driver-1")
	if err != service.ErrDriverNotAvailable {
		t.Errorf("expected ErrDriverNotAvailable, got %v", err)
	}
}

func TestAcceptRide_RejectsAlreadyAcceptedRide(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	userRepo.AddUser(newTestDriver("driver-2"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	if _, err := rideService.AcceptRide(context.Background(), "ride-1", "driver-1"); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	_, err := rideService.AcceptRide(context.Background(), "ride-1", "driver-2")
	if err != service.ErrRideAlreadyAccepted {
		t.Errorf("expected ErrRideAlreadyAccepted, got %v", err)
	}

	if got := rideRepo.GetRide("ride-1").DriverID; got != "driver-1" {
		t.Errorf("expected driver-1 to keep the ride, got %q", got)
	}
}

func TestAcceptRide_RejectsCancelledRide(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	ride := newRequestedRide("ride-1", "customer-1")
	ride.Status = domain.RideStatusCancelled
	rideRepo.AddRide(ride)
	rideService := newRideService(rideRepo, userRepo)

	_, err := rideService.AcceptRide(context.Background(), "ride-1", "driver-1")
	if err != service.ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestStartRide_RequiresAssignedDriver(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	userRepo.AddUser(newTestDriver("driver-2"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	if _, err := rideService.AcceptRide(context.Background(), "ride-1", "driver-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	_, err := rideService.StartRide(context.Background(), "ride-1", "driver-2")
	if err != service.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized for non-assigned driver, got %v", err)
	}

	ride, err := rideService.StartRide(context.Background(), "ride-1", "driver-1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if ride.Status != domain.RideStatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", ride.Status)
	}
	if ride.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestStartRide_RejectsRequestedRide(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	_, err := rideService.StartRide(context.Background(), "ride-1", "driver-1")
	if err != service.ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCompleteRide_SetsFareAndFreesDriver(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	locationStore := NewMockLocationStore()
	userRepo.AddUser(newTestDriver("driver-1"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))

	rideService := service.NewRideService(rideRepo, userRepo, nil, locationStore, nil, nil, nil)

	ctx := context.Background()
	if _, err := rideService.AcceptRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := rideService.StartRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	ride, err := rideService.CompleteRide(ctx, "ride-1", "driver-1")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if ride.Status != domain.RideStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", ride.Status)
	}
	if ride.Fare <= 0 {
		t.Errorf("expected positive fare, got %f", ride.Fare)
	}
	if ride.DistanceKm <= 0 {
		t.Errorf("expected positive distance, got %f", ride.DistanceKm)
	}
	if ride.CompletedAt.IsZero() {
		t.Error("expected CompletedAt to be set")
	}
	if got := userRepo.GetUser("driver-1").DriverStatus; got != domain.DriverStatusAvailable {
		t.Errorf("expected driver AVAILABLE after completion, got %s", got)
	}

	// The driver's last-known position moves to the dropoff point.
	loc, ok := locationStore.GetLocation("driver-1")
	if !ok {
		t.Fatal("expected driver location to be recorded at completion")
	}
	if loc.Lat != ride.Dropoff.Lat || loc.Lng != ride.Dropoff.Lng {
		t.Errorf("expected location at dropoff (%f, %f), got (%f, %f)",
			ride.Dropoff.Lat, ride.Dropoff.Lng, loc.Lat, loc.Lng)
	}
}

func TestCompleteRide_RequiresAssignedDriver(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	userRepo.AddUser(newTestDriver("driver-2"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	ctx := context.Background()
	if _, err := rideService.AcceptRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := rideService.StartRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	_, err := rideService.CompleteRide(ctx, "ride-1", "driver-2")
	if err != service.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCompleteRide_IsNotIdempotent(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	ctx := context.Background()
	if _, err := rideService.AcceptRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := rideService.StartRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	first, err := rideService.CompleteRide(ctx, "ride-1", "driver-1")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	_, err = rideService.CompleteRide(ctx, "ride-1", "driver-1")
	if err != service.ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition on repeat completion, got %v", err)
	}

	// The stored fare is untouched by the failed attempt.
	if got := rideRepo.GetRide("ride-1").Fare; got != first.Fare {
		t.Errorf("expected fare %f unchanged, got %f", first.Fare, got)
	}
}

func TestLifecycle_ForwardOnly(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	userRepo.AddUser(newTestDriver("driver-2"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	ctx := context.Background()
	if _, err := rideService.AcceptRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := rideService.StartRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// Once in progress the ride cannot be re-accepted or re-started.
	if _, err := rideService.AcceptRide(ctx, "ride-1", "driver-2"); err != service.ErrRideAlreadyAccepted {
		t.Errorf("expected ErrRideAlreadyAccepted, got %v", err)
	}
	if _, err := rideService.StartRide(ctx, "ride-1", "driver-1"); err != service.ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}
