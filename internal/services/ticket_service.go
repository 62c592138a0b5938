package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
)

type TicketService struct {
	TicketRepo repositories.TicketRepo
	DriverRepo repositories.DriverRepo
	DB         *sql.DB
	Now        func() time.Time
}

func (s TicketService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TicketService) tickets() repositories.TicketRepo {
	if s.TicketRepo.DB != nil {
		return s.TicketRepo
	}
	return repositories.TicketRepo{DB: s.db()}
}

func (s TicketService) drivers() repositories.DriverRepo {
	if s.DriverRepo.DB != nil {
		return s.DriverRepo
	}
	return repositories.DriverRepo{DB: s.db()}
}

func (s TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Sell validates and persists a point-of-sale ticket. The record is
// immutable afterwards except payment-method correction and driver
// assignment.
func (s TicketService) Sell(rc domain.RequestContext, t models.Ticket) (models.Ticket, error) {
	t.PaymentMethod = strings.ToLower(strings.TrimSpace(t.PaymentMethod))
	if t.PaymentMethod != models.PaymentCash && t.PaymentMethod != models.PaymentTransfer {
		return models.Ticket{}, domain.ValidationError{Field: "paymentMethod", Msg: "must be cash or transfer"}
	}

	if t.Kind == "" {
		t.Kind = models.TicketIndividual
	}
	if t.Kind == models.TicketIndividual {
		if t.PassengerCount == 0 {
			t.PassengerCount = 1
		}
		if t.PricePerPerson == 0 {
			t.PricePerPerson = t.Price
		}
	}
	if err := validateFare(t.Kind, t.Price, t.PricePerPerson, t.PassengerCount); err != nil {
		return models.Ticket{}, err
	}

	now := s.now()
	day := now.Format("2006-01-02")
	seq, err := s.tickets().CountForDate(day)
	if err != nil {
		return models.Ticket{}, err
	}
	t.TicketNo = fmt.Sprintf("TKT-%s-%04d", now.Format("20060102"), seq+1)
	t.SoldBy = int64(rc.UserID)

	id, err := s.tickets().Create(t)
	if err != nil {
		return models.Ticket{}, err
	}
	t.ID = id
	t.SoldAt = now.Format("2006-01-02 15:04:05")
	return t, nil
}

// CorrectPaymentMethod is the one permitted post-sale edit besides driver
// assignment.
func (s TicketService) CorrectPaymentMethod(id int64, method string) error {
	method = strings.ToLower(strings.TrimSpace(method))
	if method != models.PaymentCash && method != models.PaymentTransfer {
		return domain.ValidationError{Field: "paymentMethod", Msg: "must be cash or transfer"}
	}
	return s.tickets().UpdatePaymentMethod(id, method)
}

func (s TicketService) AssignDriver(id, driverID int64) error {
	if _, err := s.drivers().GetByID(driverID); err != nil {
		return err
	}
	return s.tickets().AssignDriver(id, driverID)
}

// Remove is the explicit administrative removal; tickets are never deleted
// otherwise.
func (s TicketService) Remove(rc domain.RequestContext, id int64) error {
	if !rc.IsAdmin() {
		return domain.UnauthorizedError{Msg: "admin role required"}
	}
	return s.tickets().Delete(id)
}
