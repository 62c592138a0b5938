package services

import (
	"strings"
	"testing"

	"busfleet/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummaryPDF(t *testing.T) {
	agg := repositories.SummaryAggregate{
		TicketCount:      42,
		PassengerCount:   61,
		TotalRevenue:     4_500_000,
		CashRevenue:      3_000_000,
		TransferRevenue:  1_500_000,
		PendingBookings:  3,
		ApprovedBookings: 10,
	}
	data, filename, err := buildSummaryPDF(agg, "2026-08-01 to 2026-08-31")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(filename, "REPORT_SUMMARY_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
}

func TestBuildDriversPDF(t *testing.T) {
	rep := DriversReport{
		Rows: []DriverReportRow{
			{
				DriverSummary: DriverSummary{DriverID: 1, Name: "Khamla", CompletedTrips: 3, WorkDays: 5},
				EmployeeCode:  "DRV-001",
				TotalTrips:    6,
				Qualified:     true,
				Share:         255_000,
			},
			{
				DriverSummary: DriverSummary{DriverID: 2, Name: "Bounmy", CompletedTrips: 1, WorkDays: 2},
				EmployeeCode:  "DRV-002",
				TotalTrips:    2,
			},
		},
		Breakdown: RevenueBreakdown{
			TotalRevenue:         4_500_000,
			CompanyShare:         450_000,
			StationShare:         225_000,
			DriverPoolShare:      3_825_000,
			QualifiedDriverCount: 1,
			PerDriverShare:       3_825_000,
		},
	}
	data, filename, err := buildDriversPDF(rep, "2026-08")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, filename, "DRIVERS")
}

func TestBuildFinancialPDF(t *testing.T) {
	rep := FinancialReport{
		FinancialAggregate: repositories.FinancialAggregate{
			TicketCount:     10,
			TotalRevenue:    1_000_000,
			CashRevenue:     600_000,
			TransferRevenue: 400_000,
		},
		Breakdown: RevenueBreakdown{
			TotalRevenue:    1_000_000,
			CompanyShare:    100_000,
			StationShare:    50_000,
			DriverPoolShare: 850_000,
		},
	}
	data, _, err := buildFinancialPDF(rep, "all time")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestGeneratePDFUnknownKind(t *testing.T) {
	svc := ReportDocsService{}
	_, _, err := svc.GeneratePDF("payroll", "", "")
	require.Error(t, err)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "all time", periodLabel("", ""))
	assert.Equal(t, "2026-08-31", periodLabel("2026-08-31", "2026-08-31"))
	assert.Equal(t, "2026-08-01 to 2026-08-31", periodLabel("2026-08-01", "2026-08-31"))
}
