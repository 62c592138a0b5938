package repositories

import (
	"database/sql"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
)

// Typed aggregates per report kind. Queries always operate on a snapshot
// read at request time; reports are advisory, not transactional ledgers.

type SummaryAggregate struct {
	TicketCount      int64 `json:"ticketCount"`
	PassengerCount   int64 `json:"passengerCount"`
	TotalRevenue     int64 `json:"totalRevenue"`
	CashRevenue      int64 `json:"cashRevenue"`
	TransferRevenue  int64 `json:"transferRevenue"`
	PendingBookings  int64 `json:"pendingBookings"`
	ApprovedBookings int64 `json:"approvedBookings"`
	RejectedBookings int64 `json:"rejectedBookings"`
	ExpiredBookings  int64 `json:"expiredBookings"`
}

type SalesRow struct {
	Date       string `json:"date"`
	Tickets    int64  `json:"tickets"`
	Passengers int64  `json:"passengers"`
	Revenue    int64  `json:"revenue"`
}

type FinancialAggregate struct {
	TicketCount     int64 `json:"ticketCount"`
	TotalRevenue    int64 `json:"totalRevenue"`
	CashRevenue     int64 `json:"cashRevenue"`
	TransferRevenue int64 `json:"transferRevenue"`
}

type VehicleRow struct {
	VehicleID    int64  `json:"vehicleId"`
	Registration string `json:"registration"`
	Capacity     int    `json:"capacity"`
	DriverName   string `json:"driverName"`
	Tickets      int64  `json:"tickets"`
	Passengers   int64  `json:"passengers"`
}

type StaffRow struct {
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	TicketsSold int64  `json:"ticketsSold"`
	Revenue     int64  `json:"revenue"`
}

type ReportRepo struct {
	DB *sql.DB
}

func (r ReportRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func dateFilter(col, start, end string, args *[]any) string {
	if start == "" || end == "" {
		return ""
	}
	*args = append(*args, start, end)
	return ` WHERE DATE(` + col + `) BETWEEN ? AND ?`
}

func (r ReportRepo) Summary(start, end string) (SummaryAggregate, error) {
	var out SummaryAggregate

	args := []any{}
	filter := dateFilter("sold_at", start, end, &args)
	err := r.db().QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(passenger_count), 0),
			COALESCE(SUM(price), 0),
			COALESCE(SUM(CASE WHEN payment_method=? THEN price ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN payment_method=? THEN price ELSE 0 END), 0)
		FROM tickets`+filter,
		append([]any{models.PaymentCash, models.PaymentTransfer}, args...)...,
	).Scan(&out.TicketCount, &out.PassengerCount, &out.TotalRevenue, &out.CashRevenue, &out.TransferRevenue)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	bArgs := []any{}
	bFilter := dateFilter("created_at", start, end, &bArgs)
	err = r.db().QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN status='pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status='approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status='rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status='expired' THEN 1 ELSE 0 END), 0)
		FROM bookings`+bFilter, bArgs...,
	).Scan(&out.PendingBookings, &out.ApprovedBookings, &out.RejectedBookings, &out.ExpiredBookings)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	return out, nil
}

func (r ReportRepo) Sales(start, end string) ([]SalesRow, error) {
	args := []any{}
	filter := dateFilter("sold_at", start, end, &args)
	rows, err := r.db().Query(`
		SELECT DATE(sold_at), COUNT(*), COALESCE(SUM(passenger_count), 0), COALESCE(SUM(price), 0)
		FROM tickets`+filter+`
		GROUP BY DATE(sold_at)
		ORDER BY DATE(sold_at)`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []SalesRow{}
	for rows.Next() {
		var row SalesRow
		if err := rows.Scan(&row.Date, &row.Tickets, &row.Passengers, &row.Revenue); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (r ReportRepo) Financial(start, end string) (FinancialAggregate, error) {
	var out FinancialAggregate
	args := []any{}
	filter := dateFilter("sold_at", start, end, &args)
	err := r.db().QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(price), 0),
			COALESCE(SUM(CASE WHEN payment_method=? THEN price ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN payment_method=? THEN price ELSE 0 END), 0)
		FROM tickets`+filter,
		append([]any{models.PaymentCash, models.PaymentTransfer}, args...)...,
	).Scan(&out.TicketCount, &out.TotalRevenue, &out.CashRevenue, &out.TransferRevenue)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r ReportRepo) Vehicles(start, end string) ([]VehicleRow, error) {
	args := []any{}
	join := ``
	if start != "" && end != "" {
		join = ` AND DATE(t.sold_at) BETWEEN ? AND ?`
		args = append(args, start, end)
	}
	rows, err := r.db().Query(`
		SELECT
			v.id,
			COALESCE(v.registration, ''),
			COALESCE(v.capacity, 0),
			COALESCE(u.name, ''),
			COUNT(t.id),
			COALESCE(SUM(t.passenger_count), 0)
		FROM vehicles v
		LEFT JOIN users u ON u.id = v.driver_id
		LEFT JOIN tickets t ON t.assigned_driver_id = v.driver_id`+join+`
		GROUP BY v.id, v.registration, v.capacity, u.name
		ORDER BY v.id`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []VehicleRow{}
	for rows.Next() {
		var row VehicleRow
		if err := rows.Scan(&row.VehicleID, &row.Registration, &row.Capacity, &row.DriverName, &row.Tickets, &row.Passengers); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (r ReportRepo) Staff(start, end string) ([]StaffRow, error) {
	args := []any{}
	join := ``
	if start != "" && end != "" {
		join = ` AND DATE(t.sold_at) BETWEEN ? AND ?`
		args = append(args, start, end)
	}
	rows, err := r.db().Query(`
		SELECT
			u.id,
			COALESCE(u.name, ''),
			COALESCE(u.role, ''),
			COUNT(t.id),
			COALESCE(SUM(t.price), 0)
		FROM users u
		LEFT JOIN tickets t ON t.sold_by = u.id`+join+`
		WHERE u.role IN ('admin', 'staff', 'station')
		GROUP BY u.id, u.name, u.role
		ORDER BY u.id`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []StaffRow{}
	for rows.Next() {
		var row StaffRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Role, &row.TicketsSold, &row.Revenue); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}
