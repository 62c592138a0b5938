package repositories

import (
	"database/sql"
	"errors"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
)

type TicketRepo struct {
	DB *sql.DB
}

func (r TicketRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const ticketColumns = `
	id,
	COALESCE(ticket_no, ''),
	COALESCE(price, 0),
	COALESCE(payment_method, ''),
	COALESCE(kind, 'individual'),
	COALESCE(passenger_count, 1),
	COALESCE(price_per_person, 0),
	COALESCE(sold_by, 0),
	COALESCE(DATE_FORMAT(sold_at, '%Y-%m-%d %H:%i:%s'), ''),
	assigned_driver_id,
	COALESCE(destination, '')`

func scanTicket(row interface{ Scan(...any) error }) (models.Ticket, error) {
	var (
		t        models.Ticket
		driverID sql.NullInt64
	)
	err := row.Scan(
		&t.ID,
		&t.TicketNo,
		&t.Price,
		&t.PaymentMethod,
		&t.Kind,
		&t.PassengerCount,
		&t.PricePerPerson,
		&t.SoldBy,
		&t.SoldAt,
		&driverID,
		&t.Destination,
	)
	if err != nil {
		return models.Ticket{}, err
	}
	if driverID.Valid {
		v := driverID.Int64
		t.AssignedDriverID = &v
	}
	return t, nil
}

func (r TicketRepo) GetByID(id int64) (models.Ticket, error) {
	if id <= 0 {
		return models.Ticket{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+ticketColumns+` FROM tickets WHERE id=? LIMIT 1`, id)
	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return t, nil
}

// List returns tickets sold within the inclusive [start, end] date range,
// newest first. Empty range lists everything.
func (r TicketRepo) List(start, end string) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []any{}
	if start != "" && end != "" {
		query += ` WHERE DATE(sold_at) BETWEEN ? AND ?`
		args = append(args, start, end)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (r TicketRepo) Create(t models.Ticket) (int64, error) {
	var driverID any
	if t.AssignedDriverID != nil {
		driverID = *t.AssignedDriverID
	}
	res, err := r.db().Exec(`
		INSERT INTO tickets
			(ticket_no, price, payment_method, kind, passenger_count, price_per_person,
			 sold_by, sold_at, assigned_driver_id, destination)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), ?, ?)`,
		t.TicketNo,
		t.Price,
		t.PaymentMethod,
		t.Kind,
		t.PassengerCount,
		t.PricePerPerson,
		t.SoldBy,
		driverID,
		intdb.NullIfEmpty(t.Destination),
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// UpdatePaymentMethod is the only price-adjacent correction allowed after
// sale.
func (r TicketRepo) UpdatePaymentMethod(id int64, method string) error {
	res, err := r.db().Exec(`UPDATE tickets SET payment_method=? WHERE id=?`, method, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "ticket"}
	}
	return nil
}

func (r TicketRepo) AssignDriver(id, driverID int64) error {
	res, err := r.db().Exec(`UPDATE tickets SET assigned_driver_id=? WHERE id=?`, driverID, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "ticket"}
	}
	return nil
}

func (r TicketRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM tickets WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "ticket"}
	}
	return nil
}

// SumRevenue totals ticket prices over the inclusive date range.
func (r TicketRepo) SumRevenue(start, end string) (int64, error) {
	query := `SELECT COALESCE(SUM(price), 0) FROM tickets`
	args := []any{}
	if start != "" && end != "" {
		query += ` WHERE DATE(sold_at) BETWEEN ? AND ?`
		args = append(args, start, end)
	}
	var total int64
	if err := r.db().QueryRow(query, args...).Scan(&total); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return total, nil
}

// CountForDate supports ticket number sequencing per sale day.
func (r TicketRepo) CountForDate(date string) (int64, error) {
	var n int64
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM tickets WHERE DATE(sold_at)=?`, date).Scan(&n); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}
