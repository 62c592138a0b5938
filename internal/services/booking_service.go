package services

import (
	"database/sql"
	"fmt"
	"math/rand"
	"strings"
	"time"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
)

// BookingService owns the approval state machine. Transitions are
// one-directional: pending -> approved | rejected | expired, and every
// mutation goes through a status-guarded update so two concurrent actors
// cannot both succeed.
type BookingService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	ExpiryHours int
	Now         func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Submit records a customer booking as pending with an expiry deadline.
func (s BookingService) Submit(b models.Booking) (models.Booking, error) {
	b.PassengerName = strings.TrimSpace(b.PassengerName)
	if b.PassengerName == "" {
		return models.Booking{}, domain.ValidationError{Field: "passengerName", Msg: "required"}
	}
	if b.PassengerCount <= 0 {
		b.PassengerCount = 1
	}
	if b.Kind == "" {
		b.Kind = models.TicketIndividual
	}
	if err := validateFare(b.Kind, b.Price, b.PricePerPerson, b.PassengerCount); err != nil {
		return models.Booking{}, err
	}

	now := s.now()
	expiry := s.ExpiryHours
	if expiry <= 0 {
		expiry = 24
	}
	b.Status = models.BookingPending
	b.ExpiresAt = now.Add(time.Duration(expiry) * time.Hour)
	b.BookingNo = fmt.Sprintf("BKG-%s-%04d", now.Format("20060102"), rand.Intn(10000))

	id, err := s.bookings().Create(b)
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = id
	b.CreatedAt = now
	return b, nil
}

// Get reads a booking and applies lazy expiry: a pending booking past its
// deadline is transitioned to expired before being returned. The same
// transition guards the approve path, so read and approve cannot diverge.
func (s BookingService) Get(id int64) (models.Booking, error) {
	b, err := s.bookings().GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	return s.expireIfDue(b)
}

func (s BookingService) expireIfDue(b models.Booking) (models.Booking, error) {
	if !b.ExpiryDue(s.now()) {
		return b, nil
	}
	flipped, err := s.bookings().ExpirePending(b.ID)
	if err != nil {
		return models.Booking{}, err
	}
	if flipped {
		b.Status = models.BookingExpired
		return b, nil
	}
	// lost the race to another transition; re-read the winner's state
	return s.bookings().GetByID(b.ID)
}

// Approve transitions a pending booking to approved and generates ticket
// numbers: one per passenger for individual bookings, one grouped ticket
// for group bookings.
func (s BookingService) Approve(rc domain.RequestContext, id int64, notes string) (models.Booking, error) {
	if !rc.CanApprove() {
		return models.Booking{}, domain.UnauthorizedError{Msg: "admin or staff role required"}
	}

	b, err := s.Get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == models.BookingExpired {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Status: b.Status, Msg: "booking expired"}
	}
	if b.Status != models.BookingPending {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Status: b.Status, Msg: "booking already processed"}
	}
	if strings.TrimSpace(b.PaymentSlip) == "" {
		return models.Booking{}, domain.ValidationError{Field: "paymentSlip", Msg: "payment slip required"}
	}

	now := s.now()
	ticketNos := generateTicketNos(b, now)

	ok, err := s.bookings().ApprovePending(b.ID, int64(rc.UserID), notes, ticketNos, now)
	if err != nil {
		return models.Booking{}, err
	}
	if !ok {
		// another approve/reject/expire won the compare-and-set
		current, cerr := s.bookings().GetByID(b.ID)
		status := ""
		if cerr == nil {
			status = current.Status
		}
		return models.Booking{}, domain.ConflictError{Resource: "booking", Status: status, Msg: "booking already processed"}
	}

	approver := int64(rc.UserID)
	b.Status = models.BookingApproved
	b.ApprovedBy = &approver
	b.ApprovedAt = &now
	b.AdminNotes = notes
	b.TicketNos = ticketNos
	return b, nil
}

// Reject mirrors Approve minus the payment-slip check and ticket generation.
func (s BookingService) Reject(rc domain.RequestContext, id int64, notes string) (models.Booking, error) {
	if !rc.CanApprove() {
		return models.Booking{}, domain.UnauthorizedError{Msg: "admin or staff role required"}
	}

	b, err := s.Get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == models.BookingExpired {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Status: b.Status, Msg: "booking expired"}
	}
	if b.Status != models.BookingPending {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Status: b.Status, Msg: "booking already processed"}
	}

	now := s.now()
	ok, err := s.bookings().RejectPending(b.ID, int64(rc.UserID), notes, now)
	if err != nil {
		return models.Booking{}, err
	}
	if !ok {
		current, cerr := s.bookings().GetByID(b.ID)
		status := ""
		if cerr == nil {
			status = current.Status
		}
		return models.Booking{}, domain.ConflictError{Resource: "booking", Status: status, Msg: "booking already processed"}
	}

	approver := int64(rc.UserID)
	b.Status = models.BookingRejected
	b.ApprovedBy = &approver
	b.ApprovedAt = &now
	b.AdminNotes = notes
	return b, nil
}

func generateTicketNos(b models.Booking, at time.Time) []string {
	day := at.Format("20060102")
	if b.Kind == models.TicketGroup {
		return []string{fmt.Sprintf("TKG-%s-%d", day, b.ID)}
	}
	nos := make([]string, 0, b.PassengerCount)
	for i := 1; i <= b.PassengerCount; i++ {
		nos = append(nos, fmt.Sprintf("TKT-%s-%d-%02d", day, b.ID, i))
	}
	return nos
}

// validateFare enforces the fare invariants shared by bookings and tickets:
// individual fares cover exactly one passenger, group fares must equal
// price-per-person times passenger count.
func validateFare(kind string, price, pricePerPerson int64, passengerCount int) error {
	switch kind {
	case models.TicketIndividual:
		if passengerCount != 1 {
			return domain.ValidationError{Field: "passengerCount", Msg: "individual ticket covers exactly 1 passenger"}
		}
	case models.TicketGroup:
		if passengerCount < 1 {
			return domain.ValidationError{Field: "passengerCount", Msg: "must be at least 1"}
		}
		if price != pricePerPerson*int64(passengerCount) {
			return domain.ValidationError{Field: "price", Msg: "must equal pricePerPerson * passengerCount"}
		}
	default:
		return domain.ValidationError{Field: "kind", Msg: "must be individual or group"}
	}
	if price < 0 {
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	return nil
}
