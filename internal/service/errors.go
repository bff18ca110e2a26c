package service

import "errors"

var (
	// ErrUnauthorized is returned when the actor is neither the owning
	// customer nor the assigned driver (nor an admin where admins are allowed).
	ErrUnauthorized = errors.New("actor not permitted for this operation")

	// ErrNotCustomer is returned when a non-customer tries to request a ride.
	ErrNotCustomer = errors.New("only customers can request rides")

	// ErrNotDriver is returned when a non-driver tries to accept a ride.
	ErrNotDriver = errors.New("only drivers can accept rides")

	// ErrActiveRideExists is returned when a customer with a ride in
	// REQUESTED, ACCEPTED or IN_PROGRESS state requests another one.
	ErrActiveRideExists = errors.New("customer already has an active ride")

	// ErrRideAlreadyAccepted is returned when another driver won the
	// acceptance race for the ride.
	ErrRideAlreadyAccepted = errors.New("ride already accepted by another driver")

	// ErrInvalidTransition is returned when the requested transition is not
	// legal from the ride's current status.
	ErrInvalidTransition = errors.New("operation not allowed in current ride status")

	// ErrDriverNotAvailable is returned when the accepting driver is not in
	// AVAILABLE status.
	ErrDriverNotAvailable = errors.New("driver is not available")

	// ErrUserInactive is returned when the account has been deactivated by
	// an admin, or a driver has not been vetted yet.
	ErrUserInactive = errors.New("account is not active")

	// ErrInvalidCustomerID is returned when customer ID is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidPickupLocation is returned when pickup coordinates are invalid.
	ErrInvalidPickupLocation = errors.New("invalid pickup location")

	// ErrInvalidDropoffLocation is returned when dropoff coordinates are invalid.
	ErrInvalidDropoffLocation = errors.New("invalid dropoff location")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidDriverStatus is returned when a driver status string is not
	// one of AVAILABLE, BUSY, OFFLINE.
	ErrInvalidDriverStatus = errors.New("invalid driver status")

	// ErrEmailTaken is returned when registering with an email that exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidRegistration is returned when required registration fields
	// are missing.
	ErrInvalidRegistration = errors.New("email, password and name are required")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRole is returned when a role string is not one of
	// ADMIN, DRIVER, CUSTOMER.
	ErrInvalidRole = errors.New("invalid role")
)
