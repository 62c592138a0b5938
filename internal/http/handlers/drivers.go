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

// DriverPayload merges the user row with the assigned vehicle.
type DriverPayload struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	EmployeeCode   string `json:"employeeCode"`
	Phone          string `json:"phone"`
	CheckinStatus  string `json:"checkinStatus"`
	LastCheckinAt  string `json:"lastCheckinAt,omitempty"`
	LastCheckoutAt string `json:"lastCheckoutAt,omitempty"`
	VehicleID      *int64 `json:"vehicleId,omitempty"`
	Registration   string `json:"registration,omitempty"`
	Capacity       int    `json:"capacity,omitempty"`
}

func driverPayloadFrom(d models.Driver) DriverPayload {
	p := DriverPayload{
		ID:            d.ID,
		Name:          d.Name,
		EmployeeCode:  d.EmployeeCode,
		Phone:         d.Phone,
		CheckinStatus: d.CheckinStatus,
		VehicleID:     d.VehicleID,
		Registration:  d.Registration,
		Capacity:      d.Capacity,
	}
	if d.LastCheckinAt != nil {
		p.LastCheckinAt = utils.FormatDateTime(*d.LastCheckinAt)
	}
	if d.LastCheckoutAt != nil {
		p.LastCheckoutAt = utils.FormatDateTime(*d.LastCheckoutAt)
	}
	return p
}

// GET /api/drivers
func GetDrivers(c *gin.Context) {
	list, err := (repositories.DriverRepo{}).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]DriverPayload, 0, len(list))
	for _, d := range list {
		out = append(out, driverPayloadFrom(d))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/drivers/:id
func GetDriver(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	d, err := (repositories.DriverRepo{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driverPayloadFrom(d))
}

// POST /api/drivers/:id/check-in
func CheckInDriver(c *gin.Context) {
	driverCheckinAction(c, true)
}

// POST /api/drivers/:id/check-out
func CheckOutDriver(c *gin.Context) {
	driverCheckinAction(c, false)
}

func driverCheckinAction(c *gin.Context, in bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	rc := middleware.GetRequestContext(c)
	svc := services.CheckinService{}

	var d models.Driver
	if in {
		d, err = svc.CheckIn(rc, id)
	} else {
		d, err = svc.CheckOut(rc, id)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driverPayloadFrom(d))
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := (repositories.DriverRepo{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver removed"})
}

// TripLogPayload is the API shape of a completed trip record.
type TripLogPayload struct {
	ID              int64   `json:"id"`
	DriverID        int64   `json:"driverId"`
	LogDate         string  `json:"logDate"`
	PassengerCount  int     `json:"passengerCount"`
	VehicleCapacity int     `json:"vehicleCapacity"`
	WorkDay         bool    `json:"workDay"`
	LoadRatio       float64 `json:"loadRatio"`
	Qualifying      bool    `json:"qualifying"`
}

func tripLogPayloadFrom(t models.TripLog) TripLogPayload {
	return TripLogPayload{
		ID:              t.ID,
		DriverID:        t.DriverID,
		LogDate:         t.LogDate,
		PassengerCount:  t.PassengerCount,
		VehicleCapacity: t.VehicleCapacity,
		WorkDay:         t.WorkDay,
		LoadRatio:       t.LoadRatio(),
		Qualifying:      services.QualifyingTrip(t),
	}
}

// POST /api/drivers/:id/trip-logs
func CreateTripLog(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var input TripLogPayload
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.PassengerCount < 0 || input.VehicleCapacity <= 0 {
		RespondError(c, http.StatusBadRequest, "passengerCount and vehicleCapacity must be valid", nil)
		return
	}

	if _, err := (repositories.DriverRepo{}).GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}

	t := models.TripLog{
		DriverID:        id,
		LogDate:         input.LogDate,
		PassengerCount:  input.PassengerCount,
		VehicleCapacity: input.VehicleCapacity,
		WorkDay:         input.WorkDay,
	}
	logID, err := (repositories.TripLogRepo{}).Create(t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t.ID = logID
	c.JSON(http.StatusCreated, tripLogPayloadFrom(t))
}

// GET /api/drivers/:id/trip-logs
func GetTripLogs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	start, end := utils.DateRange(c.Query("date"), c.Query("start"), c.Query("end"))
	list, err := (repositories.TripLogRepo{}).ListByDriver(id, start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]TripLogPayload, 0, len(list))
	for _, t := range list {
		out = append(out, tripLogPayloadFrom(t))
	}
	c.JSON(http.StatusOK, out)
}
