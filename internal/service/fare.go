package service

import (
	"math"

	"rideshare/internal/domain"
)

// FareCalculator computes the fare and the distance in kilometers for a
// completed ride. It is a replaceable pricing policy: the engine calls it
// exactly once, at completion, and stores whatever it returns.
type FareCalculator func(pickup, dropoff domain.Point) (fare, distanceKm float64)

// Standard pricing: base charge plus a per-kilometer rate over the
// haversine distance, with a floor so short hops are not free.
const (
	baseFare      = 2.0
	perKmRate     = 1.5
	minimumFare   = 2.5
	earthRadiusKm = 6371.0
)

// StandardFare is the default FareCalculator.
func StandardFare(pickup, dropoff domain.Point) (float64, float64) {
	distanceKm := HaversineKm(pickup, dropoff)

	fare := baseFare + distanceKm*perKmRate
	if fare < minimumFare {
		fare = minimumFare
	}

	return fare, distanceKm
}

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(a, b domain.Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
