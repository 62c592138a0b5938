package services

import (
	"database/sql"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
)

type ReportsService struct {
	ReportRepo  repositories.ReportRepo
	TicketRepo  repositories.TicketRepo
	TripLogRepo repositories.TripLogRepo
	DriverRepo  repositories.DriverRepo
	DB          *sql.DB
	Pct         Percentages
}

func (s ReportsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReportsService) reports() repositories.ReportRepo {
	if s.ReportRepo.DB != nil {
		return s.ReportRepo
	}
	return repositories.ReportRepo{DB: s.db()}
}

func (s ReportsService) tickets() repositories.TicketRepo {
	if s.TicketRepo.DB != nil {
		return s.TicketRepo
	}
	return repositories.TicketRepo{DB: s.db()}
}

func (s ReportsService) tripLogs() repositories.TripLogRepo {
	if s.TripLogRepo.DB != nil {
		return s.TripLogRepo
	}
	return repositories.TripLogRepo{DB: s.db()}
}

func (s ReportsService) drivers() repositories.DriverRepo {
	if s.DriverRepo.DB != nil {
		return s.DriverRepo
	}
	return repositories.DriverRepo{DB: s.db()}
}

func (s ReportsService) pct() Percentages {
	if s.Pct.Company+s.Pct.Station+s.Pct.DriverPool != 0 {
		return s.Pct
	}
	return Percentages{Company: 10, Station: 5, DriverPool: 85}
}

// DriverReportRow extends the pure DriverSummary with display fields.
type DriverReportRow struct {
	DriverSummary
	EmployeeCode string `json:"employeeCode"`
	TotalTrips   int    `json:"totalTrips"`
	Qualified    bool   `json:"qualified"`
	Share        int64  `json:"share"`
}

type DriversReport struct {
	Rows      []DriverReportRow `json:"rows"`
	Breakdown RevenueBreakdown  `json:"breakdown"`
}

type FinancialReport struct {
	repositories.FinancialAggregate
	Breakdown RevenueBreakdown `json:"breakdown"`
}

// PortalView is what a driver or station sees on their dashboard: the full
// breakdown plus their own cut.
type PortalView struct {
	Breakdown       RevenueBreakdown `json:"breakdown"`
	YourShare       int64            `json:"yourShare"`
	Qualified       bool             `json:"qualified"`
	QualifyingTrips int              `json:"qualifyingTrips"`
	Message         string           `json:"message,omitempty"`
}

type driverStat struct {
	totalTrips   int
	employeeCode string
}

// DriverSummaries derives per-driver qualification inputs for the period
// from the trip log. The canonical eligibility rule is trip-count based;
// work days are carried for display only.
func (s ReportsService) DriverSummaries(start, end string) ([]DriverSummary, map[int64]driverStat, error) {
	drivers, err := s.drivers().List()
	if err != nil {
		return nil, nil, err
	}
	logs, err := s.tripLogs().ListForPeriod(start, end)
	if err != nil {
		return nil, nil, err
	}

	byDriver := map[int64][]models.TripLog{}
	for _, l := range logs {
		byDriver[l.DriverID] = append(byDriver[l.DriverID], l)
	}

	summaries := make([]DriverSummary, 0, len(drivers))
	stats := make(map[int64]driverStat, len(drivers))
	for _, d := range drivers {
		trips := byDriver[d.ID]
		_, qualifying := DriverQualifies(trips)
		workDays := map[string]struct{}{}
		for _, t := range trips {
			if t.WorkDay {
				workDays[t.LogDate] = struct{}{}
			}
		}
		summaries = append(summaries, DriverSummary{
			DriverID:       d.ID,
			Name:           d.Name,
			CompletedTrips: qualifying,
			WorkDays:       len(workDays),
		})
		stats[d.ID] = driverStat{totalTrips: len(trips), employeeCode: d.EmployeeCode}
	}
	return summaries, stats, nil
}

// Breakdown recomputes the revenue split from current ticket and trip data.
func (s ReportsService) Breakdown(start, end string) (RevenueBreakdown, []DriverSummary, error) {
	total, err := s.tickets().SumRevenue(start, end)
	if err != nil {
		return RevenueBreakdown{}, nil, err
	}
	summaries, _, err := s.DriverSummaries(start, end)
	if err != nil {
		return RevenueBreakdown{}, nil, err
	}
	breakdown, err := ComputeRevenueSplit(total, summaries, s.pct())
	if err != nil {
		return RevenueBreakdown{}, nil, err
	}
	return breakdown, summaries, nil
}

func (s ReportsService) Summary(start, end string) (repositories.SummaryAggregate, error) {
	return s.reports().Summary(start, end)
}

func (s ReportsService) Sales(start, end string) ([]repositories.SalesRow, error) {
	return s.reports().Sales(start, end)
}

func (s ReportsService) Drivers(start, end string) (DriversReport, error) {
	total, err := s.tickets().SumRevenue(start, end)
	if err != nil {
		return DriversReport{}, err
	}
	summaries, stats, err := s.DriverSummaries(start, end)
	if err != nil {
		return DriversReport{}, err
	}
	breakdown, err := ComputeRevenueSplit(total, summaries, s.pct())
	if err != nil {
		return DriversReport{}, err
	}

	rows := make([]DriverReportRow, 0, len(summaries))
	for _, sum := range summaries {
		stat := stats[sum.DriverID]
		row := DriverReportRow{
			DriverSummary: sum,
			EmployeeCode:  stat.employeeCode,
			TotalTrips:    stat.totalTrips,
			Qualified:     sum.Qualifies(),
		}
		if row.Qualified {
			row.Share = breakdown.PerDriverShare
		}
		rows = append(rows, row)
	}
	return DriversReport{Rows: rows, Breakdown: breakdown}, nil
}

func (s ReportsService) Financial(start, end string) (FinancialReport, error) {
	agg, err := s.reports().Financial(start, end)
	if err != nil {
		return FinancialReport{}, err
	}
	breakdown, _, err := s.Breakdown(start, end)
	if err != nil {
		return FinancialReport{}, err
	}
	return FinancialReport{FinancialAggregate: agg, Breakdown: breakdown}, nil
}

func (s ReportsService) Vehicles(start, end string) ([]repositories.VehicleRow, error) {
	return s.reports().Vehicles(start, end)
}

func (s ReportsService) Staff(start, end string) ([]repositories.StaffRow, error) {
	return s.reports().Staff(start, end)
}

// DriverPortal returns the breakdown plus the calling driver's own share
// and qualification state.
func (s ReportsService) DriverPortal(rc domain.RequestContext, start, end string) (PortalView, error) {
	if rc.Role != models.RoleDriver {
		return PortalView{}, domain.UnauthorizedError{Msg: "driver role required"}
	}
	breakdown, summaries, err := s.Breakdown(start, end)
	if err != nil {
		return PortalView{}, err
	}

	view := PortalView{Breakdown: breakdown}
	for _, sum := range summaries {
		if sum.DriverID != int64(rc.UserID) {
			continue
		}
		view.QualifyingTrips = sum.CompletedTrips
		view.Qualified = sum.Qualifies()
		break
	}
	if view.Qualified {
		view.YourShare = breakdown.PerDriverShare
	} else {
		view.Message = "you do not currently qualify for a revenue share"
	}
	return view, nil
}

// StationPortal returns the breakdown with the station's fixed share.
func (s ReportsService) StationPortal(rc domain.RequestContext, start, end string) (PortalView, error) {
	if rc.Role != models.RoleStation {
		return PortalView{}, domain.UnauthorizedError{Msg: "station role required"}
	}
	breakdown, _, err := s.Breakdown(start, end)
	if err != nil {
		return PortalView{}, err
	}
	return PortalView{Breakdown: breakdown, YourShare: breakdown.StationShare, Qualified: true}, nil
}
