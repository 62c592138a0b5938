package models

import "time"

// Driver check-in states.
const (
	CheckedIn  = "checked_in"
	CheckedOut = "checked_out"
)

// Driver is the operational view of a user with the driver role. The
// "qualifies for revenue" flag is always derived from trip logs, never
// stored here.
type Driver struct {
	ID             int64
	Name           string
	EmployeeCode   string
	Phone          string
	CheckinStatus  string
	LastCheckinAt  *time.Time
	LastCheckoutAt *time.Time
	VehicleID      *int64
	Registration   string
	Capacity       int
}
