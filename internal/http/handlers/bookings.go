package handlers

import (
	"net/http"
	"strconv"

	"busfleet/internal/domain/models"
	"busfleet/internal/http/middleware"
	"busfleet/internal/repositories"
	"busfleet/internal/services"
	"busfleet/internal/utils"

	"github.com/gin-gonic/gin"
)

// BookingPayload is the API shape of a booking.
type BookingPayload struct {
	ID             int64    `json:"id"`
	BookingNo      string   `json:"bookingNo"`
	Status         string   `json:"status"`
	PassengerName  string   `json:"passengerName"`
	PassengerPhone string   `json:"passengerPhone"`
	PassengerCount int      `json:"passengerCount"`
	Kind           string   `json:"kind"`
	RouteFrom      string   `json:"routeFrom"`
	RouteTo        string   `json:"routeTo"`
	TripDate       string   `json:"tripDate"`
	TripTime       string   `json:"tripTime"`
	Price          int64    `json:"price"`
	PricePerPerson int64    `json:"pricePerPerson"`
	PaymentMethod  string   `json:"paymentMethod"`
	PaymentSlip    string   `json:"paymentSlip,omitempty"`
	AdminNotes     string   `json:"adminNotes,omitempty"`
	ApprovedBy     *int64   `json:"approvedBy,omitempty"`
	ApprovedAt     string   `json:"approvedAt,omitempty"`
	TicketNos      []string `json:"ticketNos,omitempty"`
	ExpiresAt      string   `json:"expiresAt"`
	CreatedAt      string   `json:"createdAt"`
}

func bookingPayloadFrom(b models.Booking) BookingPayload {
	p := BookingPayload{
		ID:             b.ID,
		BookingNo:      b.BookingNo,
		Status:         b.Status,
		PassengerName:  b.PassengerName,
		PassengerPhone: b.PassengerPhone,
		PassengerCount: b.PassengerCount,
		Kind:           b.Kind,
		RouteFrom:      b.RouteFrom,
		RouteTo:        b.RouteTo,
		TripDate:       b.TripDate,
		TripTime:       b.TripTime,
		Price:          b.Price,
		PricePerPerson: b.PricePerPerson,
		PaymentMethod:  b.PaymentMethod,
		PaymentSlip:    b.PaymentSlip,
		AdminNotes:     b.AdminNotes,
		ApprovedBy:     b.ApprovedBy,
		TicketNos:      b.TicketNos,
	}
	if b.ApprovedAt != nil {
		p.ApprovedAt = utils.FormatDateTime(*b.ApprovedAt)
	}
	if !b.ExpiresAt.IsZero() {
		p.ExpiresAt = utils.FormatDateTime(b.ExpiresAt)
	}
	if !b.CreatedAt.IsZero() {
		p.CreatedAt = utils.FormatDateTime(b.CreatedAt)
	}
	return p
}

func bookingService() services.BookingService {
	return services.BookingService{ExpiryHours: bookingExpiry}
}

// POST /api/bookings (public, no auth)
func CreateBooking(c *gin.Context) {
	var input BookingPayload
	if !BindJSONOrError(c, &input) {
		return
	}

	b, err := bookingService().Submit(models.Booking{
		PassengerName:  input.PassengerName,
		PassengerPhone: input.PassengerPhone,
		PassengerCount: input.PassengerCount,
		Kind:           input.Kind,
		RouteFrom:      input.RouteFrom,
		RouteTo:        input.RouteTo,
		TripDate:       input.TripDate,
		TripTime:       input.TripTime,
		Price:          input.Price,
		PricePerPerson: input.PricePerPerson,
		PaymentMethod:  input.PaymentMethod,
		PaymentSlip:    input.PaymentSlip,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookingPayloadFrom(b))
}

// GET /api/bookings?status=pending
func GetBookings(c *gin.Context) {
	list, err := (repositories.BookingRepo{}).List(c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]BookingPayload, 0, len(list))
	for _, b := range list {
		out = append(out, bookingPayloadFrom(b))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	b, err := bookingService().Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingPayloadFrom(b))
}

type bookingDecision struct {
	Action     string `json:"action"`
	AdminNotes string `json:"adminNotes"`
}

// POST /api/bookings/:id/approve with {"action": "approve"|"reject"}
func DecideBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var input bookingDecision
	if !BindJSONOrError(c, &input) {
		return
	}

	rc := middleware.GetRequestContext(c)
	svc := bookingService()

	var b models.Booking
	switch input.Action {
	case "approve":
		b, err = svc.Approve(rc, id, input.AdminNotes)
	case "reject":
		b, err = svc.Reject(rc, id, input.AdminNotes)
	default:
		RespondError(c, http.StatusBadRequest, "action must be approve or reject", nil)
		return
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingPayloadFrom(b))
}

// GET /api/bookings/:id/approve returns the approval view: current status
// plus whether the caller may still act on it.
func GetBookingApproval(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	b, err := bookingService().Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rc := middleware.GetRequestContext(c)
	c.JSON(http.StatusOK, gin.H{
		"booking":    bookingPayloadFrom(b),
		"canApprove": rc.CanApprove() && !b.Terminal(),
	})
}
