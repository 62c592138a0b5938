package repositories

import (
	"database/sql"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
)

type TripLogRepo struct {
	DB *sql.DB
}

func (r TripLogRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TripLogRepo) Create(t models.TripLog) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trip_logs (driver_id, log_date, passenger_count, vehicle_capacity, work_day)
		VALUES (?, ?, ?, ?, ?)`,
		t.DriverID, t.LogDate, t.PassengerCount, t.VehicleCapacity, t.WorkDay,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// ListByDriver returns a driver's trips within the inclusive date range.
func (r TripLogRepo) ListByDriver(driverID int64, start, end string) ([]models.TripLog, error) {
	query := `
		SELECT id, driver_id, COALESCE(log_date,''), COALESCE(passenger_count,0),
		       COALESCE(vehicle_capacity,0), COALESCE(work_day,0)
		FROM trip_logs WHERE driver_id=?`
	args := []any{driverID}
	if start != "" && end != "" {
		query += ` AND log_date BETWEEN ? AND ?`
		args = append(args, start, end)
	}
	query += ` ORDER BY log_date`

	return r.list(query, args...)
}

// ListForPeriod returns every trip in the range, for period-wide
// qualification counting.
func (r TripLogRepo) ListForPeriod(start, end string) ([]models.TripLog, error) {
	query := `
		SELECT id, driver_id, COALESCE(log_date,''), COALESCE(passenger_count,0),
		       COALESCE(vehicle_capacity,0), COALESCE(work_day,0)
		FROM trip_logs`
	args := []any{}
	if start != "" && end != "" {
		query += ` WHERE log_date BETWEEN ? AND ?`
		args = append(args, start, end)
	}
	query += ` ORDER BY driver_id, log_date`

	return r.list(query, args...)
}

func (r TripLogRepo) list(query string, args ...any) ([]models.TripLog, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.TripLog{}
	for rows.Next() {
		var t models.TripLog
		if err := rows.Scan(&t.ID, &t.DriverID, &t.LogDate, &t.PassengerCount, &t.VehicleCapacity, &t.WorkDay); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}
