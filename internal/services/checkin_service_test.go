package services

import (
	"testing"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckinService(t *testing.T) (CheckinService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	now := time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC)
	svc := CheckinService{
		DriverRepo: repositories.DriverRepo{DB: db},
		DB:         db,
		Now:        func() time.Time { return now },
	}
	return svc, mock, func() { db.Close() }
}

func TestDriverChecksSelfIn(t *testing.T) {
	svc, mock, done := newCheckinService(t)
	defer done()

	mock.ExpectExec("UPDATE users SET checkin_status").
		WithArgs(models.CheckedIn, svc.Now(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users u LEFT JOIN vehicles").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(driverRowCols).
			AddRow(5, "Khamla", "DRV-001", "", models.CheckedIn, svc.Now(), nil, nil, "", 15))

	rc := domain.RequestContext{UserID: 5, Role: models.RoleDriver}
	d, err := svc.CheckIn(rc, 5)
	require.NoError(t, err)
	assert.Equal(t, models.CheckedIn, d.CheckinStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverCannotCheckInSomeoneElse(t *testing.T) {
	svc, _, done := newCheckinService(t)
	defer done()

	rc := domain.RequestContext{UserID: 5, Role: models.RoleDriver}
	_, err := svc.CheckIn(rc, 6)
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestStaffCanCheckOutAnyDriver(t *testing.T) {
	svc, mock, done := newCheckinService(t)
	defer done()

	mock.ExpectExec("UPDATE users SET checkin_status").
		WithArgs(models.CheckedOut, svc.Now(), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users u LEFT JOIN vehicles").
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(driverRowCols).
			AddRow(8, "Bounmy", "DRV-002", "", models.CheckedOut, nil, svc.Now(), nil, "", 15))

	rc := domain.RequestContext{UserID: 1, Role: models.RoleStaff}
	d, err := svc.CheckOut(rc, 8)
	require.NoError(t, err)
	assert.Equal(t, models.CheckedOut, d.CheckinStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutoCheckoutReturnsAffectedCount(t *testing.T) {
	svc, mock, done := newCheckinService(t)
	defer done()

	mock.ExpectExec("UPDATE users SET checkin_status").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := svc.AutoCheckout()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
