package repositories

import (
	"database/sql"
	"errors"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `
	id,
	COALESCE(name, ''),
	COALESCE(username, ''),
	COALESCE(email, ''),
	COALESCE(phone, ''),
	COALESCE(role, ''),
	COALESCE(status, ''),
	COALESCE(employee_code, ''),
	station_id,
	COALESCE(password_hash, '')`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var (
		u         models.User
		stationID sql.NullInt64
	)
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.Phone,
		&u.Role,
		&u.Status,
		&u.EmployeeCode,
		&stationID,
		&u.PasswordHash,
	)
	if err != nil {
		return models.User{}, err
	}
	if stationID.Valid {
		v := stationID.Int64
		u.StationID = &v
	}
	return u, nil
}

// GetByLogin resolves a user by email or username for authentication.
func (r UserRepo) GetByLogin(login string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email=? OR username=? LIMIT 1`, login, login)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepo) List(role string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if role != "" {
		query += ` WHERE role=?`
		args = append(args, role)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (r UserRepo) CountByLogin(email, username string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email=? OR username=?`, email, username).Scan(&n)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

func (r UserRepo) Create(u models.User) (int64, error) {
	var stationID any
	if u.StationID != nil {
		stationID = *u.StationID
	}
	res, err := r.db().Exec(`
		INSERT INTO users
			(name, username, email, phone, role, status, employee_code, station_id, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		u.Name,
		u.Username,
		u.Email,
		u.Phone,
		u.Role,
		u.Status,
		intdb.NullIfEmpty(u.EmployeeCode),
		stationID,
		u.PasswordHash,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r UserRepo) Update(u models.User) error {
	res, err := r.db().Exec(`
		UPDATE users
		SET name=?, phone=?, role=?, status=?, employee_code=?, updated_at=NOW()
		WHERE id=?`,
		u.Name, u.Phone, u.Role, u.Status, intdb.NullIfEmpty(u.EmployeeCode), u.ID,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
