package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusRequested  RideStatus = "REQUESTED"
	RideStatusAccepted   RideStatus = "ACCEPTED"
	RideStatusInProgress RideStatus = "IN_PROGRESS"
	RideStatusCompleted  RideStatus = "COMPLETED"
	RideStatusCancelled  RideStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are permitted from s.
func (s RideStatus) Terminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// Active reports whether the ride still occupies its customer.
// A customer may hold at most one active ride at a time.
func (s RideStatus) Active() bool {
	return s == RideStatusRequested || s == RideStatusAccepted || s == RideStatusInProgress
}

// Point is a geographic coordinate with an optional human-readable address.
type Point struct {
	Lat     float64
	Lng     float64
	Address string
}

// Ride represents a single transport request tracked through its lifecycle.
//
// DriverID is empty until a driver accepts. Fare and DistanceKm stay zero
// until the ride completes. Each timestamp is set exactly once, when the
// ride enters the corresponding state.
type Ride struct {
	ID         string
	CustomerID string
	DriverID   string

	Pickup  Point
	Dropoff Point

	Status RideStatus

	Fare       float64
	DistanceKm float64

	RequestedAt  time.Time
	AcceptedAt   time.Time
	StartedAt    time.Time
	CompletedAt  time.Time
	CancelledAt  time.Time
	CancelReason string
}
