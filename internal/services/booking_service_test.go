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

var bookingRowCols = []string{
	"id", "booking_no", "status", "passenger_name", "passenger_phone",
	"passenger_count", "kind", "route_from", "route_to", "trip_date",
	"trip_time", "price", "price_per_person", "payment_method",
	"payment_slip", "admin_notes", "approved_by", "approved_at",
	"ticket_nos", "expires_at", "created_at",
}

func bookingRow(id int64, status, kind string, passengers int, slip string, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(bookingRowCols).AddRow(
		id, "BKG-20260831-0001", status, "Somchai", "+85620555001",
		passengers, kind, "Vientiane", "Vang Vieng", "2026-09-01",
		"08:00", int64(150000)*int64(passengers), int64(150000), models.PaymentTransfer,
		slip, "", nil, nil,
		"", expiresAt, time.Now(),
	)
}

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc := BookingService{
		BookingRepo: repositories.BookingRepo{DB: db},
		DB:          db,
		ExpiryHours: 24,
		Now:         func() time.Time { return now },
	}
	return svc, mock, func() { db.Close() }
}

func TestApproveGeneratesOneTicketPerPassenger(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	future := svc.Now().Add(2 * time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, models.BookingPending, models.TicketIndividual, 1, "slip.jpg", future))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rc := domain.RequestContext{UserID: 42, Role: models.RoleStaff}
	b, err := svc.Approve(rc, 7, "verified slip")
	require.NoError(t, err)

	assert.Equal(t, models.BookingApproved, b.Status)
	require.NotNil(t, b.ApprovedBy)
	assert.Equal(t, int64(42), *b.ApprovedBy)
	require.Len(t, b.TicketNos, 1)
	assert.Equal(t, "TKT-20260831-7-01", b.TicketNos[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveGroupBookingGetsSingleGroupTicket(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	future := svc.Now().Add(2 * time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(9)).
		WillReturnRows(bookingRow(9, models.BookingPending, models.TicketGroup, 5, "slip.jpg", future))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rc := domain.RequestContext{UserID: 1, Role: models.RoleAdmin}
	b, err := svc.Approve(rc, 9, "")
	require.NoError(t, err)

	require.Len(t, b.TicketNos, 1)
	assert.Equal(t, "TKG-20260831-9", b.TicketNos[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveLosesRaceReturnsConflict(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	future := svc.Now().Add(2 * time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, models.BookingPending, models.TicketIndividual, 1, "slip.jpg", future))
	// the guarded update affects no rows: someone else got there first
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, models.BookingRejected, models.TicketIndividual, 1, "slip.jpg", future))

	rc := domain.RequestContext{UserID: 42, Role: models.RoleStaff}
	_, err := svc.Approve(rc, 7, "")
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAlreadyApprovedConflicts(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	future := svc.Now().Add(2 * time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, models.BookingApproved, models.TicketIndividual, 1, "slip.jpg", future))

	rc := domain.RequestContext{UserID: 42, Role: models.RoleAdmin}
	_, err := svc.Approve(rc, 7, "")
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveExpiredBookingConflicts(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	past := svc.Now().Add(-1 * time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, models.BookingPending, models.TicketIndividual, 1, "slip.jpg", past))
	// lazy expiry flips the row before the approval is even considered
	mock.ExpectExec("UPDATE bookings SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rc := domain.RequestContext{UserID: 42, Role: models.RoleStaff}
	_, err := svc.Approve(rc, 7, "")
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveWithoutPaymentSlipLeavesBookingPending(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	future := svc.Now().Add(2 * time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, models.BookingPending, models.TicketIndividual, 1, "", future))

	rc := domain.RequestContext{UserID: 42, Role: models.RoleStaff}
	_, err := svc.Approve(rc, 7, "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	// no UPDATE was expected, so the booking stayed pending
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRequiresApproverRole(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	rc := domain.RequestContext{UserID: 5, Role: models.RoleDriver}
	_, err := svc.Approve(rc, 7, "")
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestRejectPendingBooking(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	future := svc.Now().Add(2 * time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, models.BookingPending, models.TicketIndividual, 1, "", future))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rc := domain.RequestContext{UserID: 42, Role: models.RoleAdmin}
	b, err := svc.Reject(rc, 7, "slip unreadable")
	require.NoError(t, err)

	assert.Equal(t, models.BookingRejected, b.Status)
	assert.Equal(t, "slip unreadable", b.AdminNotes)
	assert.Empty(t, b.TicketNos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAppliesLazyExpiry(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	past := svc.Now().Add(-1 * time.Minute)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").
		WithArgs(int64(3)).
		WillReturnRows(bookingRow(3, models.BookingPending, models.TicketIndividual, 1, "", past))
	mock.ExpectExec("UPDATE bookings SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := svc.Get(3)
	require.NoError(t, err)
	assert.Equal(t, models.BookingExpired, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitValidatesGroupFare(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	_, err := svc.Submit(models.Booking{
		PassengerName:  "Noy",
		Kind:           models.TicketGroup,
		PassengerCount: 4,
		Price:          500_000,
		PricePerPerson: 150_000,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSubmitIndividualRequiresSinglePassenger(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	_, err := svc.Submit(models.Booking{
		PassengerName:  "Noy",
		Kind:           models.TicketIndividual,
		PassengerCount: 3,
		Price:          150_000,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSubmitStampsPendingStatusAndExpiry(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(11, 1))

	b, err := svc.Submit(models.Booking{
		PassengerName:  "Somphone",
		Kind:           models.TicketIndividual,
		PassengerCount: 1,
		Price:          150_000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), b.ID)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, svc.Now().Add(24*time.Hour), b.ExpiresAt)
	assert.NotEmpty(t, b.BookingNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}
