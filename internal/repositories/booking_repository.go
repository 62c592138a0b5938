package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/utils"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id,
	COALESCE(booking_no, ''),
	COALESCE(status, 'pending'),
	COALESCE(passenger_name, ''),
	COALESCE(passenger_phone, ''),
	COALESCE(passenger_count, 1),
	COALESCE(kind, 'individual'),
	COALESCE(route_from, ''),
	COALESCE(route_to, ''),
	COALESCE(trip_date, ''),
	COALESCE(trip_time, ''),
	COALESCE(price, 0),
	COALESCE(price_per_person, 0),
	COALESCE(payment_method, ''),
	COALESCE(payment_slip, ''),
	COALESCE(admin_notes, ''),
	approved_by,
	approved_at,
	COALESCE(ticket_nos, ''),
	expires_at,
	created_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var (
		b          models.Booking
		approvedBy sql.NullInt64
		approvedAt sql.NullTime
		ticketNos  string
		expiresAt  sql.NullTime
		createdAt  sql.NullTime
	)
	err := row.Scan(
		&b.ID,
		&b.BookingNo,
		&b.Status,
		&b.PassengerName,
		&b.PassengerPhone,
		&b.PassengerCount,
		&b.Kind,
		&b.RouteFrom,
		&b.RouteTo,
		&b.TripDate,
		&b.TripTime,
		&b.Price,
		&b.PricePerPerson,
		&b.PaymentMethod,
		&b.PaymentSlip,
		&b.AdminNotes,
		&approvedBy,
		&approvedAt,
		&ticketNos,
		&expiresAt,
		&createdAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	if approvedBy.Valid {
		v := approvedBy.Int64
		b.ApprovedBy = &v
	}
	if approvedAt.Valid {
		v := approvedAt.Time
		b.ApprovedAt = &v
	}
	b.TicketNos = utils.SplitTicketNos(ticketNos)
	if expiresAt.Valid {
		b.ExpiresAt = expiresAt.Time
	}
	if createdAt.Valid {
		b.CreatedAt = createdAt.Time
	}
	return b, nil
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

func (r BookingRepo) List(status string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []any{}
	if status != "" {
		query += ` WHERE status=?`
		args = append(args, status)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (r BookingRepo) Create(b models.Booking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO bookings
			(booking_no, status, passenger_name, passenger_phone, passenger_count, kind,
			 route_from, route_to, trip_date, trip_time,
			 price, price_per_person, payment_method, payment_slip, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		b.BookingNo,
		models.BookingPending,
		b.PassengerName,
		b.PassengerPhone,
		b.PassengerCount,
		b.Kind,
		b.RouteFrom,
		b.RouteTo,
		b.TripDate,
		b.TripTime,
		b.Price,
		b.PricePerPerson,
		b.PaymentMethod,
		b.PaymentSlip,
		b.ExpiresAt,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// ApprovePending flips a pending booking to approved. The status guard in the
// WHERE clause makes this a compare-and-set: of two concurrent approvals only
// one sees an affected row.
func (r BookingRepo) ApprovePending(id, approverID int64, notes string, ticketNos []string, at time.Time) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET status=?, approved_by=?, approved_at=?, admin_notes=?, ticket_nos=?
		WHERE id=? AND status=?`,
		models.BookingApproved, approverID, at, notes, utils.JoinTicketNos(ticketNos),
		id, models.BookingPending,
	)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// RejectPending mirrors ApprovePending without ticket generation.
func (r BookingRepo) RejectPending(id, approverID int64, notes string, at time.Time) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET status=?, approved_by=?, approved_at=?, admin_notes=?
		WHERE id=? AND status=?`,
		models.BookingRejected, approverID, at, notes,
		id, models.BookingPending,
	)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// ExpirePending marks an overdue pending booking expired, again guarded by
// the stored status so a concurrent approve cannot be overwritten.
func (r BookingRepo) ExpirePending(id int64) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE bookings SET status=? WHERE id=? AND status=?`,
		models.BookingExpired, id, models.BookingPending,
	)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}
