package services

import (
	"database/sql"
	"testing"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicketService(t *testing.T) (TicketService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	now := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	svc := TicketService{
		TicketRepo: repositories.TicketRepo{DB: db},
		DriverRepo: repositories.DriverRepo{DB: db},
		DB:         db,
		Now:        func() time.Time { return now },
	}
	return svc, mock, func() { db.Close() }
}

func TestSellStampsSequentialTicketNumber(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("2026-08-31").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(41))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(sqlmock.NewResult(100, 1))

	rc := domain.RequestContext{UserID: 7, Role: models.RoleStaff}
	sold, err := svc.Sell(rc, models.Ticket{
		Price:         150_000,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	assert.Equal(t, "TKT-20260831-0042", sold.TicketNo)
	assert.Equal(t, int64(100), sold.ID)
	assert.Equal(t, int64(7), sold.SoldBy)
	assert.Equal(t, models.PaymentCash, sold.PaymentMethod)
	assert.Equal(t, 1, sold.PassengerCount)
	assert.Equal(t, int64(150_000), sold.PricePerPerson)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellRejectsUnknownPaymentMethod(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	rc := domain.RequestContext{UserID: 7, Role: models.RoleStaff}
	_, err := svc.Sell(rc, models.Ticket{Price: 150_000, PaymentMethod: "cheque"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSellGroupTicketChecksFareArithmetic(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	rc := domain.RequestContext{UserID: 7, Role: models.RoleStaff}
	_, err := svc.Sell(rc, models.Ticket{
		Price:          700_000,
		PaymentMethod:  models.PaymentTransfer,
		Kind:           models.TicketGroup,
		PassengerCount: 4,
		PricePerPerson: 150_000,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCorrectPaymentMethodValidates(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	err := svc.CorrectPaymentMethod(3, "crypto")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAssignDriverRequiresExistingDriver(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	err := svc.AssignDriver(5, 99)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveRequiresAdmin(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	err := svc.Remove(domain.RequestContext{UserID: 7, Role: models.RoleStaff}, 5)
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}
