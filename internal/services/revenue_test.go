package services

import (
	"testing"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultPct = Percentages{Company: 10, Station: 5, DriverPool: 85}

func TestComputeRevenueSplitDocumentedExample(t *testing.T) {
	drivers := []DriverSummary{
		{DriverID: 1, Name: "Khamla", CompletedTrips: 3},
	}
	b, err := ComputeRevenueSplit(4_500_000, drivers, defaultPct)
	require.NoError(t, err)

	assert.Equal(t, int64(450_000), b.CompanyShare)
	assert.Equal(t, int64(225_000), b.StationShare)
	assert.Equal(t, int64(3_825_000), b.DriverPoolShare)
	assert.Equal(t, 1, b.QualifiedDriverCount)
	assert.Equal(t, int64(3_825_000), b.PerDriverShare)
}

func TestComputeRevenueSplitFifteenDrivers(t *testing.T) {
	drivers := make([]DriverSummary, 0, 15)
	for i := 1; i <= 15; i++ {
		drivers = append(drivers, DriverSummary{DriverID: int64(i), CompletedTrips: 2})
	}
	b, err := ComputeRevenueSplit(4_500_000, drivers, defaultPct)
	require.NoError(t, err)

	assert.Equal(t, 15, b.QualifiedDriverCount)
	assert.Equal(t, int64(255_000), b.PerDriverShare)
}

func TestComputeRevenueSplitSharesAlwaysSumToTotal(t *testing.T) {
	totals := []int64{0, 1, 7, 99, 101, 12_345, 4_500_001, 999_999_999}
	for _, total := range totals {
		b, err := ComputeRevenueSplit(total, nil, defaultPct)
		require.NoError(t, err)
		assert.Equal(t, total, b.CompanyShare+b.StationShare+b.DriverPoolShare,
			"total=%d", total)
	}
}

func TestComputeRevenueSplitFloorNeverOverpaysPool(t *testing.T) {
	drivers := []DriverSummary{
		{DriverID: 1, CompletedTrips: 2},
		{DriverID: 2, CompletedTrips: 2},
		{DriverID: 3, CompletedTrips: 5},
	}
	b, err := ComputeRevenueSplit(1_000_001, drivers, defaultPct)
	require.NoError(t, err)

	paid := b.PerDriverShare * int64(b.QualifiedDriverCount)
	assert.LessOrEqual(t, paid, b.DriverPoolShare)
	assert.Less(t, b.DriverPoolShare-paid, int64(b.QualifiedDriverCount))
}

func TestComputeRevenueSplitNoQualifiedDrivers(t *testing.T) {
	drivers := []DriverSummary{
		{DriverID: 1, CompletedTrips: 1},
		{DriverID: 2, CompletedTrips: 0},
	}
	b, err := ComputeRevenueSplit(4_500_000, drivers, defaultPct)
	require.NoError(t, err)

	assert.Equal(t, 0, b.QualifiedDriverCount)
	assert.Equal(t, int64(0), b.PerDriverShare)
	assert.Equal(t, int64(3_825_000), b.DriverPoolShare)
}

func TestComputeRevenueSplitRejectsBadPercentages(t *testing.T) {
	_, err := ComputeRevenueSplit(100, nil, Percentages{Company: 10, Station: 5, DriverPool: 80})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestComputeRevenueSplitRejectsNegativeTotal(t *testing.T) {
	_, err := ComputeRevenueSplit(-1, nil, defaultPct)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestQualifyingTripBoundary(t *testing.T) {
	cases := []struct {
		name       string
		passengers int
		capacity   int
		want       bool
	}{
		{"exactly 80 percent", 12, 15, true},
		{"just under 80 percent", 11, 15, false},
		{"full load", 15, 15, true},
		{"empty", 0, 15, false},
		{"capacity 14 at 11 passengers", 11, 14, false},
		{"capacity 14 at 12 passengers", 12, 14, true},
		{"unknown capacity", 10, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := QualifyingTrip(models.TripLog{PassengerCount: tc.passengers, VehicleCapacity: tc.capacity})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDriverQualifiesNeedsTwoQualifyingTrips(t *testing.T) {
	full := models.TripLog{PassengerCount: 15, VehicleCapacity: 15}
	light := models.TripLog{PassengerCount: 3, VehicleCapacity: 15}

	ok, count := DriverQualifies([]models.TripLog{full, light})
	assert.False(t, ok)
	assert.Equal(t, 1, count)

	ok, count = DriverQualifies([]models.TripLog{full, light, full})
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	ok, count = DriverQualifies(nil)
	assert.False(t, ok)
	assert.Equal(t, 0, count)
}
