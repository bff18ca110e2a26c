package domain

import "time"

// Role represents the capability class of a user.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleDriver   Role = "DRIVER"
	RoleCustomer Role = "CUSTOMER"
)

// DriverStatus represents a driver's availability for new rides.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusBusy      DriverStatus = "BUSY"
	DriverStatusOffline   DriverStatus = "OFFLINE"
)

// User represents an account in the system. Drivers and customers share
// the same table; DriverStatus, VehicleType and LicensePlate are only
// meaningful for the DRIVER role.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	DriverStatus DriverStatus
	VehicleType  string
	LicensePlate string
	Active       bool
	CreatedAt    time.Time
}

// IsDriver reports whether the user holds the DRIVER role.
func (u *User) IsDriver() bool { return u.Role == RoleDriver }

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
