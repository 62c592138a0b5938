package repositories

import (
	"testing"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingRepo(t *testing.T) (BookingRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return BookingRepo{DB: db}, mock, func() { db.Close() }
}

func TestApprovePendingGuardsOnStatus(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE bookings").
		WithArgs(models.BookingApproved, int64(42), at, "ok", "TKT-20260831-7-01",
			int64(7), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ApprovePending(7, 42, "ok", []string{"TKT-20260831-7-01"}, at)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovePendingReportsLostRace(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.ApprovePending(7, 42, "", nil, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpirePendingOnlyFlipsPendingRows(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("UPDATE bookings SET status=").
		WithArgs(models.BookingExpired, int64(3), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.ExpirePending(3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMapsMissingRow(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(404)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetByIDRejectsBadID(t *testing.T) {
	repo, _, done := newBookingRepo(t)
	defer done()

	_, err := repo.GetByID(0)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
