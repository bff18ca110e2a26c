package tests

import (
	"context"
	"fmt"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/service"
)

func TestMatching_ReturnsOnlyAvailableDrivers(t *testing.T) {
	locationStore := NewMockLocationStore()
	userRepo := NewMockUserRepository()

	available := newTestDriver("driver-available")
	busy := newTestDriver("driver-busy")
	busy.DriverStatus = domain.DriverStatusBusy
	offline := newTestDriver("driver-offline")
	offline.DriverStatus = domain.DriverStatusOffline
	unvetted := newTestDriver("driver-unvetted")
	unvetted.Active = false

	for _, d := range []*domain.User{available, busy, offline, unvetted} {
		userRepo.AddUser(d)
		locationStore.AddDriverLocation(redis.DriverLocation{DriverID: d.ID, Lat: -1.29, Lng: 36.82})
	}

	matching := service.NewMatchingService(locationStore, nil, userRepo)

	candidates, err := matching.FindNearbyAvailable(context.Background(), -1.2921, 36.8219)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %v", len(candidates), candidates)
	}
	if candidates[0] != "driver-available" {
		t.Errorf("expected driver-available, got %s", candidates[0])
	}
}

func TestMatching_SkipsStaleGeoEntries(t *testing.T) {
	locationStore := NewMockLocationStore()
	userRepo := NewMockUserRepository()

	// A geo entry without a matching account must not surface.
	locationStore.AddDriverLocation(redis.DriverLocation{DriverID: "ghost", Lat: -1.29, Lng: 36.82})

	driver := newTestDriver("driver-1")
	userRepo.AddUser(driver)
	locationStore.AddDriverLocation(redis.DriverLocation{DriverID: "driver-1", Lat: -1.29, Lng: 36.82})

	matching := service.NewMatchingService(locationStore, nil, userRepo)

	candidates, err := matching.FindNearbyAvailable(context.Background(), -1.2921, 36.8219)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(candidates) != 1 || candidates[0] != "driver-1" {
		t.Errorf("expected [driver-1], got %v", candidates)
	}
}

func TestMatching_CapsCandidates(t *testing.T) {
	locationStore := NewMockLocationStore()
	userRepo := NewMockUserRepository()

	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("driver-%d", i)
		userRepo.AddUser(newTestDriver(id))
		locationStore.AddDriverLocation(redis.DriverLocation{DriverID: id, Lat: -1.29, Lng: 36.82})
	}

	matching := service.NewMatchingService(locationStore, nil, userRepo)

	candidates, err := matching.FindNearbyAvailable(context.Background(), -1.2921, 36.8219)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(candidates) != 10 {
		t.Errorf("expected 10 candidates, got %d", len(candidates))
	}
}

func TestMatching_EmptyWhenNobodyNearby(t *testing.T) {
	locationStore := NewMockLocationStore()
	userRepo := NewMockUserRepository()

	matching := service.NewMatchingService(locationStore, nil, userRepo)

	candidates, err := matching.FindNearbyAvailable(context.Background(), -1.2921, 36.8219)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %v", candidates)
	}
}
