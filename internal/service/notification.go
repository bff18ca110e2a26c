package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"rideshare/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRideRequested  NotificationType = "RIDE_REQUESTED"
	NotificationDriverAssigned NotificationType = "DRIVER_ASSIGNED"
	NotificationRideStarted    NotificationType = "RIDE_STARTED"
	NotificationRideCompleted  NotificationType = "RIDE_COMPLETED"
	NotificationRideCancelled  NotificationType = "RIDE_CANCELLED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery. Delivery is currently
// log-only; a push/SMS client would slot in behind send.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyRideRequested notifies candidate drivers about a new ride request.
func (s *NotificationService) NotifyRideRequested(ctx context.Context, ride *domain.Ride, driverIDs []string) error {
	for _, driverID := range driverIDs {
		s.send(ctx, Notification{
			Type:        NotificationRideRequested,
			RecipientID: driverID,
			Title:       "New Ride Request",
			Message:     fmt.Sprintf("New ride request near you. Pickup at (%.4f, %.4f)", ride.Pickup.Lat, ride.Pickup.Lng),
			Data: map[string]interface{}{
				"ride_id":    ride.ID,
				"pickup_lat": ride.Pickup.Lat,
				"pickup_lng": ride.Pickup.Lng,
			},
			CreatedAt: time.Now(),
		})
	}
	return nil
}

// NotifyDriverAssigned notifies the customer that a driver accepted.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, ride *domain.Ride, driver *domain.User) error {
	s.send(ctx, Notification{
		Type:        NotificationDriverAssigned,
		RecipientID: ride.CustomerID,
		Title:       "Driver Assigned",
		Message:     fmt.Sprintf("%s %s is on the way", driver.FirstName, driver.LastName),
		Data: map[string]interface{}{
			"ride_id":   ride.ID,
			"driver_id": driver.ID,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyRideStarted notifies the customer that the ride is underway.
func (s *NotificationService) NotifyRideStarted(ctx context.Context, ride *domain.Ride) error {
	s.send(ctx, Notification{
		Type:        NotificationRideStarted,
		RecipientID: ride.CustomerID,
		Title:       "Ride Started",
		Message:     "Your ride is now in progress",
		Data:        map[string]interface{}{"ride_id": ride.ID},
		CreatedAt:   time.Now(),
	})
	return nil
}

// NotifyRideCompleted notifies the customer of completion and the fare.
func (s *NotificationService) NotifyRideCompleted(ctx context.Context, ride *domain.Ride) error {
	s.send(ctx, Notification{
		Type:        NotificationRideCompleted,
		RecipientID: ride.CustomerID,
		Title:       "Ride Completed",
		Message:     fmt.Sprintf("Ride completed. Fare: %.2f (%.2f km)", ride.Fare, ride.DistanceKm),
		Data: map[string]interface{}{
			"ride_id":     ride.ID,
			"fare":        ride.Fare,
			"distance_km": ride.DistanceKm,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyRideCancelled notifies the party that did not cancel.
func (s *NotificationService) NotifyRideCancelled(ctx context.Context, ride *domain.Ride, cancelledBy, reason string) error {
	recipient := ride.CustomerID
	if cancelledBy == ride.CustomerID && ride.DriverID != "" {
		recipient = ride.DriverID
	}

	message := "Ride has been cancelled"
	if reason != "" {
		message = fmt.Sprintf("Ride has been cancelled: %s", reason)
	}

	s.send(ctx, Notification{
		Type:        NotificationRideCancelled,
		RecipientID: recipient,
		Title:       "Ride Cancelled",
		Message:     message,
		Data: map[string]interface{}{
			"ride_id":      ride.ID,
			"cancelled_by": cancelledBy,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *NotificationService) send(ctx context.Context, n Notification) {
	log.Printf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q", n.Type, n.RecipientID, n.Title, n.Message)
}
