package models

type Vehicle struct {
	ID           int64
	Registration string
	VehicleType  string
	Capacity     int
	DriverID     *int64
}
