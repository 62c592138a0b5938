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

// TicketPayload is the API shape of a ticket.
type TicketPayload struct {
	ID               int64  `json:"id"`
	TicketNo         string `json:"ticketNo"`
	Price            int64  `json:"price"`
	PaymentMethod    string `json:"paymentMethod"`
	Kind             string `json:"kind"`
	PassengerCount   int    `json:"passengerCount"`
	PricePerPerson   int64  `json:"pricePerPerson"`
	SoldBy           int64  `json:"soldBy"`
	SoldAt           string `json:"soldAt"`
	AssignedDriverID *int64 `json:"assignedDriverId,omitempty"`
	Destination      string `json:"destination,omitempty"`
}

func ticketPayloadFrom(t models.Ticket) TicketPayload {
	return TicketPayload{
		ID:               t.ID,
		TicketNo:         t.TicketNo,
		Price:            t.Price,
		PaymentMethod:    t.PaymentMethod,
		Kind:             t.Kind,
		PassengerCount:   t.PassengerCount,
		PricePerPerson:   t.PricePerPerson,
		SoldBy:           t.SoldBy,
		SoldAt:           t.SoldAt,
		AssignedDriverID: t.AssignedDriverID,
		Destination:      t.Destination,
	}
}

// GET /api/tickets
func GetTickets(c *gin.Context) {
	start, end := utils.DateRange(c.Query("date"), c.Query("start"), c.Query("end"))
	list, err := (repositories.TicketRepo{}).List(start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]TicketPayload, 0, len(list))
	for _, t := range list {
		out = append(out, ticketPayloadFrom(t))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/tickets
func CreateTicket(c *gin.Context) {
	var input TicketPayload
	if !BindJSONOrError(c, &input) {
		return
	}

	svc := services.TicketService{}
	t, err := svc.Sell(middleware.GetRequestContext(c), models.Ticket{
		Price:            input.Price,
		PaymentMethod:    input.PaymentMethod,
		Kind:             input.Kind,
		PassengerCount:   input.PassengerCount,
		PricePerPerson:   input.PricePerPerson,
		AssignedDriverID: input.AssignedDriverID,
		Destination:      input.Destination,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticketPayloadFrom(t))
}

// PUT /api/tickets/:id/payment-method
func UpdateTicketPaymentMethod(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var input struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if !BindJSONOrError(c, &input) {
		return
	}
	if err := (services.TicketService{}).CorrectPaymentMethod(id, input.PaymentMethod); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment method updated"})
}

// PUT /api/tickets/:id/assign-driver
func AssignTicketDriver(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var input struct {
		DriverID int64 `json:"driverId"`
	}
	if !BindJSONOrError(c, &input) {
		return
	}
	if err := (services.TicketService{}).AssignDriver(id, input.DriverID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver assigned"})
}

// DELETE /api/tickets/:id
func DeleteTicket(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := (services.TicketService{}).Remove(middleware.GetRequestContext(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket removed"})
}
