package models

// User roles.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleDriver  = "driver"
	RoleStation = "station"
)

type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	Phone        string
	Role         string
	Status       string
	EmployeeCode string
	StationID    *int64
	PasswordHash string
}
