package models

// TripLog records one completed trip for a driver. The passenger load ratio
// is derived, not stored, so capacity corrections propagate automatically.
type TripLog struct {
	ID              int64
	DriverID        int64
	LogDate         string
	PassengerCount  int
	VehicleCapacity int
	WorkDay         bool
}

// LoadRatio returns passengers carried over vehicle capacity, 0 when the
// capacity is unknown.
func (t TripLog) LoadRatio() float64 {
	if t.VehicleCapacity <= 0 {
		return 0
	}
	return float64(t.PassengerCount) / float64(t.VehicleCapacity)
}
