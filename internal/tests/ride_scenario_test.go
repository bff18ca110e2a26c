package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/service"
)

// TestScenario_NairobiRideEndToEnd runs a full ride through the real
// matching path: a customer requests a short hop across the Nairobi CBD,
// a nearby driver is surfaced, accepts, drives, and completes.
func TestScenario_NairobiRideEndToEnd(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	locationStore := NewMockLocationStore()
	lockStore := NewMockLockStore()

	userRepo.AddUser(newTestCustomer("customer-1"))
	userRepo.AddUser(newTestDriver("driver-1"))
	locationStore.AddDriverLocation(redis.DriverLocation{DriverID: "driver-1", Lat: -1.2900, Lng: 36.8200})

	matching := service.NewMatchingService(locationStore, nil, userRepo)
	rideService := service.NewRideService(rideRepo, userRepo, lockStore, locationStore,
		matching, service.NewNotificationService(), nil)

	ctx := context.Background()

	ride, err := rideService.RequestRide(ctx, service.RequestRideRequest{
		CustomerID: "customer-1",
		Pickup:     domain.Point{Lat: -1.2921, Lng: 36.8219, Address: "Kenyatta Avenue"},
		Dropoff:    domain.Point{Lat: -1.2864, Lng: 36.8172, Address: "University Way"},
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if ride, err = rideService.AcceptRide(ctx, ride.ID, "driver-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if ride, err = rideService.StartRide(ctx, ride.ID, "driver-1"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if ride, err = rideService.CompleteRide(ctx, ride.ID, "driver-1"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if ride.Status != domain.RideStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", ride.Status)
	}

	// Kenyatta Avenue to University Way is under a kilometer.
	if ride.DistanceKm < 0.5 || ride.DistanceKm > 1.5 {
		t.Errorf("expected distance under 1.5 km, got %f", ride.DistanceKm)
	}
	if ride.Fare < 2.5 {
		t.Errorf("expected fare at or above the minimum, got %f", ride.Fare)
	}

	// The driver is free again, positioned at the dropoff.
	if got := userRepo.GetUser("driver-1").DriverStatus; got != domain.DriverStatusAvailable {
		t.Errorf("expected driver AVAILABLE, got %s", got)
	}
	loc, _ := locationStore.GetLocation("driver-1")
	if loc.Lat != -1.2864 || loc.Lng != 36.8172 {
		t.Errorf("expected driver at dropoff, got (%f, %f)", loc.Lat, loc.Lng)
	}

	// A completed ride cannot be cancelled after the fact.
	if _, err := rideService.CancelRide(ctx, service.CancelRideRequest{
		RideID:  ride.ID,
		ActorID: "customer-1",
	}); err != service.ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition cancelling a completed ride, got %v", err)
	}

	// The customer can request again.
	if _, err := rideService.RequestRide(ctx, service.RequestRideRequest{
		CustomerID: "customer-1",
		Pickup:     domain.Point{Lat: -1.2864, Lng: 36.8172},
		Dropoff:    domain.Point{Lat: -1.2921, Lng: 36.8219},
	}); err != nil {
		t.Errorf("expected fresh request to succeed, got %v", err)
	}
}

func TestGetRide_VisibilityRules(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	ride := newRequestedRide("ride-1", "customer-1")
	ride.DriverID = "driver-1"
	ride.Status = domain.RideStatusAccepted
	rideRepo.AddRide(ride)
	rideService := newRideService(rideRepo, userRepo)

	ctx := context.Background()

	testCases := []struct {
		name    string
		actor   service.Actor
		wantErr error
	}{
		{"owning customer", service.Actor{ID: "customer-1", Role: domain.RoleCustomer}, nil},
		{"assigned driver", service.Actor{ID: "driver-1", Role: domain.RoleDriver}, nil},
		{"admin", service.Actor{ID: "admin-1", Role: domain.RoleAdmin}, nil},
		{"other customer", service.Actor{ID: "customer-2", Role: domain.RoleCustomer}, service.ErrUnauthorized},
		{"other driver", service.Actor{ID: "driver-2", Role: domain.RoleDriver}, service.ErrUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rideService.GetRide(ctx, "ride-1", tc.actor)
			if err != tc.wantErr {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRideListings_MostRecentRequestFirst(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	// Insert out of chronological order on purpose.
	for _, minutes := range []int{3, 0, 7, 1, 5, 2, 6, 4} {
		ride := newRequestedRide(fmt.Sprintf("ride-%d", minutes), "customer-1")
		ride.DriverID = "driver-1"
		ride.Status = domain.RideStatusCompleted
		ride.RequestedAt = base.Add(time.Duration(minutes) * time.Minute)
		rideRepo.AddRide(ride)
	}
	rideService := newRideService(rideRepo, userRepo)

	ctx := context.Background()
	admin := service.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	for _, listing := range []struct {
		name  string
		rides func() ([]*domain.Ride, error)
	}{
		{"customer", func() ([]*domain.Ride, error) { return rideService.RidesForCustomer(ctx, "customer-1", admin) }},
		{"driver", func() ([]*domain.Ride, error) { return rideService.RidesForDriver(ctx, "driver-1", admin) }},
		{"all", func() ([]*domain.Ride, error) { return rideService.AllRides(ctx, admin) }},
	} {
		t.Run(listing.name, func(t *testing.T) {
			rides, err := listing.rides()
			if err != nil {
				t.Fatalf("listing failed: %v", err)
			}
			if len(rides) != 8 {
				t.Fatalf("expected 8 rides, got %d", len(rides))
			}
			for i := 1; i < len(rides); i++ {
				if rides[i].RequestedAt.After(rides[i-1].RequestedAt) {
					t.Errorf("rides out of order at %d: %s after %s",
						i, rides[i].RequestedAt, rides[i-1].RequestedAt)
				}
			}
		})
	}
}

func TestRideListings_OwnerOrAdminOnly(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	ride := newRequestedRide("ride-1", "customer-1")
	ride.DriverID = "driver-1"
	ride.Status = domain.RideStatusCompleted
	rideRepo.AddRide(ride)
	rideRepo.AddRide(newRequestedRide("ride-2", "customer-2"))
	rideService := newRideService(rideRepo, userRepo)

	ctx := context.Background()

	rides, err := rideService.RidesForCustomer(ctx, "customer-1",
		service.Actor{ID: "customer-1", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(rides) != 1 || rides[0].ID != "ride-1" {
		t.Errorf("expected [ride-1], got %d rides", len(rides))
	}

	if _, err := rideService.RidesForCustomer(ctx, "customer-1",
		service.Actor{ID: "customer-2", Role: domain.RoleCustomer}); err != service.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	rides, err = rideService.RidesForDriver(ctx, "driver-1",
		service.Actor{ID: "admin-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("driver listing failed: %v", err)
	}
	if len(rides) != 1 {
		t.Errorf("expected 1 driver ride, got %d", len(rides))
	}

	if _, err := rideService.AllRides(ctx,
		service.Actor{ID: "customer-1", Role: domain.RoleCustomer}); err != service.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized for non-admin GetAll, got %v", err)
	}
	all, err := rideService.AllRides(ctx, service.Actor{ID: "admin-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("admin listing failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 rides, got %d", len(all))
	}
}
