package models

// Payment methods accepted at the point of sale.
const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
)

// Ticket kinds.
const (
	TicketIndividual = "individual"
	TicketGroup      = "group"
)

// Ticket is immutable after sale except payment-method correction and
// driver assignment.
type Ticket struct {
	ID               int64
	TicketNo         string
	Price            int64
	PaymentMethod    string
	Kind             string
	PassengerCount   int
	PricePerPerson   int64
	SoldBy           int64
	SoldAt           string
	AssignedDriverID *int64
	Destination      string
}
