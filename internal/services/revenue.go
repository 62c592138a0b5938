package services

import (
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
)

// Revenue is split three ways: company, station, and a pool divided equally
// among qualifying drivers. A driver qualifies with at least two trips in
// the period, each carrying at least 80% of vehicle capacity.
const (
	MinQualifyingTrips = 2

	// load ratio threshold as a fraction: passengers*loadDen >= capacity*loadNum
	loadNum = 4
	loadDen = 5
)

type Percentages struct {
	Company    int64
	Station    int64
	DriverPool int64
}

// DriverSummary carries the per-driver inputs of the split. CompletedTrips
// is supplied by trip tracking; it is not recomputed here.
type DriverSummary struct {
	DriverID       int64  `json:"driverId"`
	Name           string `json:"name"`
	CompletedTrips int    `json:"completedTrips"`
	WorkDays       int    `json:"workDays"`
}

func (d DriverSummary) Qualifies() bool {
	return d.CompletedTrips >= MinQualifyingTrips
}

// RevenueBreakdown is recomputed on every request and never stored.
type RevenueBreakdown struct {
	TotalRevenue         int64 `json:"totalRevenue"`
	CompanyShare         int64 `json:"companyShare"`
	StationShare         int64 `json:"stationShare"`
	DriverPoolShare      int64 `json:"driverPoolShare"`
	QualifiedDriverCount int   `json:"qualifiedDriverCount"`
	PerDriverShare       int64 `json:"perDriverShare"`
}

// ComputeRevenueSplit computes the three-way split. Company and station
// shares are rounded; the driver pool takes the exact remainder so the
// three shares always sum to the total. The per-driver share uses floor
// division, so it never overpays the pool.
func ComputeRevenueSplit(totalRevenue int64, drivers []DriverSummary, pct Percentages) (RevenueBreakdown, error) {
	if pct.Company+pct.Station+pct.DriverPool != 100 {
		return RevenueBreakdown{}, domain.ValidationError{Field: "percentages", Msg: "must sum to 100"}
	}
	if totalRevenue < 0 {
		return RevenueBreakdown{}, domain.ValidationError{Field: "totalRevenue", Msg: "must not be negative"}
	}

	out := RevenueBreakdown{TotalRevenue: totalRevenue}
	out.CompanyShare = roundShare(totalRevenue, pct.Company)
	out.StationShare = roundShare(totalRevenue, pct.Station)
	out.DriverPoolShare = totalRevenue - out.CompanyShare - out.StationShare

	for _, d := range drivers {
		if d.Qualifies() {
			out.QualifiedDriverCount++
		}
	}
	if out.QualifiedDriverCount > 0 {
		out.PerDriverShare = out.DriverPoolShare / int64(out.QualifiedDriverCount)
	}
	return out, nil
}

func roundShare(total, pct int64) int64 {
	return (total*pct + 50) / 100
}

// QualifyingTrip reports whether a single trip counts toward driver
// qualification: load ratio >= 0.80, boundary inclusive. The comparison is
// done in integers to keep the boundary exact.
func QualifyingTrip(t models.TripLog) bool {
	if t.VehicleCapacity <= 0 {
		return false
	}
	return t.PassengerCount*loadDen >= t.VehicleCapacity*loadNum
}

// DriverQualifies evaluates a driver's trips for the reporting period and
// returns the verdict plus the qualifying-trip count for display.
func DriverQualifies(trips []models.TripLog) (bool, int) {
	count := 0
	for _, t := range trips {
		if QualifyingTrip(t) {
			count++
		}
	}
	return count >= MinQualifyingTrips, count
}
