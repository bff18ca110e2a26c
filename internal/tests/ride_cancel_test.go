package tests

import (
	"context"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

func TestCancelRide_CustomerCancelsRequested(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	ride, err := rideService.CancelRide(context.Background(), service.CancelRideRequest{
		RideID:  "ride-1",
		ActorID: "customer-1",
		Reason:  "changed my mind",
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if ride.Status != domain.RideStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", ride.Status)
	}
	if ride.CancelReason != "changed my mind" {
		t.Errorf("expected reason stored, got %q", ride.CancelReason)
	}
	if ride.CancelledAt.IsZero() {
		t.Error("expected CancelledAt to be set")
	}
}

func TestCancelRide_DriverCancelsAcceptedAndIsFreed(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	ctx := context.Background()
	if _, err := rideService.AcceptRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	ride, err := rideService.CancelRide(ctx, service.CancelRideRequest{
		RideID:  "ride-1",
		ActorID: "driver-1",
		Reason:  "vehicle breakdown",
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if ride.Status != domain.RideStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", ride.Status)
	}
	if got := userRepo.GetUser("driver-1").DriverStatus; got != domain.DriverStatusAvailable {
		t.Errorf("expected driver AVAILABLE after cancelling, got %s", got)
	}
}

func TestCancelRide_RejectsStranger(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	_, err := rideService.CancelRide(context.Background(), service.CancelRideRequest{
		RideID:  "ride-1",
		ActorID: "customer-2",
	})
	if err != service.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCancelRide_RejectsNonAssignedDriver(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(newTestDriver("driver-1"))
	rideRepo.AddRide(newRequestedRide("ride-1", "customer-1"))
	rideService := newRideService(rideRepo, userRepo)

	ctx := context.Background()
	if _, err := rideService.AcceptRide(ctx, "ride-1", "driver-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	_, err := rideService.CancelRide(ctx, service.CancelRideRequest{
		RideID:  "ride-1",
		ActorID: "driver-2",
	})
	if err != service.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCancelRide_RejectsInProgressRide(t *testing.T) {
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

	_, err := rideService.CancelRide(ctx, service.CancelRideRequest{
		RideID:  "ride-1",
		ActorID: "customer-1",
	})
	if err != service.ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition for in-progress ride, got %v", err)
	}
}

func TestCancelRide_RejectsTerminalRide(t *testing.T) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	ride := newRequestedRide("ride-1", "customer-1")
	ride.Status = domain.RideStatusCompleted
	ride.DriverID = "driver-1"
	rideRepo.AddRide(ride)
	rideService := newRideService(rideRepo, userRepo)

	_, err := rideService.CancelRide(context.Background(), service.CancelRideRequest{
		RideID:  "ride-1",
		ActorID: "customer-1",
	})
	if err != service.ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition for completed ride, got %v", err)
	}
}
