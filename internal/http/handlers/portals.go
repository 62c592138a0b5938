package handlers

import (
	"net/http"

	"busfleet/internal/http/middleware"
	"busfleet/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/driver-portal
func GetDriverPortal(c *gin.Context) {
	start, end := utils.DateRange(c.Query("date"), c.Query("start"), c.Query("end"))
	view, err := reportsService().DriverPortal(middleware.GetRequestContext(c), start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/station-portal
func GetStationPortal(c *gin.Context) {
	start, end := utils.DateRange(c.Query("date"), c.Query("start"), c.Query("end"))
	view, err := reportsService().StationPortal(middleware.GetRequestContext(c), start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
