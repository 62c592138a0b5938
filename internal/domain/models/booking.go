package models

import "time"

// Booking statuses. Transitions are one-directional: pending is the only
// non-terminal state.
const (
	BookingPending  = "pending"
	BookingApproved = "approved"
	BookingRejected = "rejected"
	BookingExpired  = "expired"
)

// Booking is a pre-reservation; it becomes one or more tickets only on
// approval.
type Booking struct {
	ID             int64
	BookingNo      string
	Status         string
	PassengerName  string
	PassengerPhone string
	PassengerCount int
	Kind           string
	RouteFrom      string
	RouteTo        string
	TripDate       string
	TripTime       string
	Price          int64
	PricePerPerson int64
	PaymentMethod  string
	PaymentSlip    string
	AdminNotes     string
	ApprovedBy     *int64
	ApprovedAt     *time.Time
	TicketNos      []string
	ExpiresAt      time.Time
	CreatedAt      time.Time
}

// Terminal reports whether no further transition is allowed.
func (b Booking) Terminal() bool {
	return b.Status != BookingPending
}

// ExpiryDue reports whether a still-pending booking has outlived its
// expiry timestamp.
func (b Booking) ExpiryDue(now time.Time) bool {
	return b.Status == BookingPending && !b.ExpiresAt.IsZero() && !b.ExpiresAt.After(now)
}
