package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
)

type DriverRepo struct {
	DB *sql.DB
}

func (r DriverRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Drivers are users with role 'driver'; the vehicle association is an
// application-level reference, not a foreign key.
const driverColumns = `
	u.id,
	COALESCE(u.name, ''),
	COALESCE(u.employee_code, ''),
	COALESCE(u.phone, ''),
	COALESCE(u.checkin_status, 'checked_out'),
	u.last_checkin_at,
	u.last_checkout_at,
	v.id,
	COALESCE(v.registration, ''),
	COALESCE(v.capacity, 0)`

const driverFrom = ` FROM users u LEFT JOIN vehicles v ON v.driver_id = u.id WHERE u.role='driver'`

func scanDriver(row interface{ Scan(...any) error }) (models.Driver, error) {
	var (
		d          models.Driver
		checkinAt  sql.NullTime
		checkoutAt sql.NullTime
		vehicleID  sql.NullInt64
	)
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.EmployeeCode,
		&d.Phone,
		&d.CheckinStatus,
		&checkinAt,
		&checkoutAt,
		&vehicleID,
		&d.Registration,
		&d.Capacity,
	)
	if err != nil {
		return models.Driver{}, err
	}
	if checkinAt.Valid {
		v := checkinAt.Time
		d.LastCheckinAt = &v
	}
	if checkoutAt.Valid {
		v := checkoutAt.Time
		d.LastCheckoutAt = &v
	}
	if vehicleID.Valid {
		v := vehicleID.Int64
		d.VehicleID = &v
	}
	return d, nil
}

func (r DriverRepo) List() ([]models.Driver, error) {
	rows, err := r.db().Query(`SELECT ` + driverColumns + driverFrom + ` ORDER BY u.id DESC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (r DriverRepo) GetByID(id int64) (models.Driver, error) {
	if id <= 0 {
		return models.Driver{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+driverColumns+driverFrom+` AND u.id=? LIMIT 1`, id)
	d, err := scanDriver(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Driver{}, domain.NotFoundError{Resource: "driver"}
		}
		return models.Driver{}, domain.InternalError{Err: err}
	}
	return d, nil
}

// SetCheckinStatus flips check-in state and stamps the matching timestamp.
func (r DriverRepo) SetCheckinStatus(id int64, status string, at time.Time) error {
	col := "last_checkin_at"
	if status == models.CheckedOut {
		col = "last_checkout_at"
	}
	res, err := r.db().Exec(
		`UPDATE users SET checkin_status=?, `+col+`=? WHERE id=? AND role='driver'`,
		status, at, id,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

// AutoCheckoutAll batch-checks-out every checked-in driver. Returns the
// number of drivers affected.
func (r DriverRepo) AutoCheckoutAll(at time.Time) (int64, error) {
	res, err := r.db().Exec(
		`UPDATE users SET checkin_status=?, last_checkout_at=? WHERE role='driver' AND checkin_status=?`,
		models.CheckedOut, at, models.CheckedIn,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

// Delete removes the driver and cascades to the associated vehicle record
// at the application level.
func (r DriverRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id=? AND role='driver'`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	if _, err := r.db().Exec(`DELETE FROM vehicles WHERE driver_id=?`, id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
