package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation - Bad Request
	case errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidPickupLocation),
		errors.Is(err, service.ErrInvalidDropoffLocation),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidDriverStatus),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidRegistration):
		return http.StatusBadRequest

	// Failed login
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Forbidden - actor is not permitted
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrNotCustomer),
		errors.Is(err, service.ErrNotDriver),
		errors.Is(err, service.ErrUserInactive):
		return http.StatusForbidden

	// Conflict - state disagrees with the request
	case errors.Is(err, service.ErrActiveRideExists),
		errors.Is(err, service.ErrRideAlreadyAccepted),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDriverNotAvailable),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID             string  `json:"id"`
	CustomerID     string  `json:"customer_id"`
	DriverID       string  `json:"driver_id,omitempty"`
	PickupLat      float64 `json:"pickup_lat"`
	PickupLng      float64 `json:"pickup_lng"`
	PickupAddress  string  `json:"pickup_address,omitempty"`
	DropoffLat     float64 `json:"dropoff_lat"`
	DropoffLng     float64 `json:"dropoff_lng"`
	DropoffAddress string  `json:"dropoff_address,omitempty"`
	Status         string  `json:"status"`
	Fare           float64 `json:"fare,omitempty"`
	DistanceKm     float64 `json:"distance_km,omitempty"`
	RequestedAt    string  `json:"requested_at"`
	AcceptedAt     string  `json:"accepted_at,omitempty"`
	StartedAt      string  `json:"started_at,omitempty"`
	CompletedAt    string  `json:"completed_at,omitempty"`
	CancelledAt    string  `json:"cancelled_at,omitempty"`
	CancelReason   string  `json:"cancel_reason,omitempty"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:             ride.ID,
		CustomerID:     ride.CustomerID,
		DriverID:       ride.DriverID,
		PickupLat:      ride.Pickup.Lat,
		PickupLng:      ride.Pickup.Lng,
		PickupAddress:  ride.Pickup.Address,
		DropoffLat:     ride.Dropoff.Lat,
		DropoffLng:     ride.Dropoff.Lng,
		DropoffAddress: ride.Dropoff.Address,
		Status:         string(ride.Status),
		Fare:           ride.Fare,
		DistanceKm:     ride.DistanceKm,
		RequestedAt:    formatTime(ride.RequestedAt),
		AcceptedAt:     formatTime(ride.AcceptedAt),
		StartedAt:      formatTime(ride.StartedAt),
		CompletedAt:    formatTime(ride.CompletedAt),
		CancelledAt:    formatTime(ride.CancelledAt),
		CancelReason:   ride.CancelReason,
	}
}

func toRideResponses(rides []*domain.Ride) []RideResponse {
	responses := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		responses = append(responses, toRideResponse(ride))
	}
	return responses
}

// UserResponse is the HTTP representation of a user. The password hash
// never leaves the server.
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	DriverStatus string `json:"driver_status,omitempty"`
	VehicleType  string `json:"vehicle_type,omitempty"`
	LicensePlate string `json:"license_plate,omitempty"`
	Active       bool   `json:"active"`
	CreatedAt    string `json:"created_at"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone,
		Role:         string(user.Role),
		DriverStatus: string(user.DriverStatus),
		VehicleType:  user.VehicleType,
		LicensePlate: user.LicensePlate,
		Active:       user.Active,
		CreatedAt:    formatTime(user.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
