package handlers

import (
	"net/http"

	"busfleet/internal/http/middleware"
	"busfleet/internal/services"
	"busfleet/internal/utils"

	"github.com/gin-gonic/gin"
)

func reportsService() services.ReportsService {
	return services.ReportsService{Pct: revenuePct}
}

// GET /api/reports?type=summary&date=...&format=pdf
func GetReport(c *gin.Context) {
	kind := c.DefaultQuery("type", "summary")
	start, end := utils.DateRange(c.Query("date"), c.Query("start"), c.Query("end"))
	svc := reportsService()

	if c.Query("format") == "pdf" {
		docs := services.ReportDocsService{Reports: svc, RequestID: middleware.GetRequestID(c)}
		data, filename, err := docs.GeneratePDF(kind, start, end)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", data)
		return
	}

	var (
		payload any
		err     error
	)
	switch kind {
	case "summary":
		payload, err = svc.Summary(start, end)
	case "sales":
		payload, err = svc.Sales(start, end)
	case "drivers":
		payload, err = svc.Drivers(start, end)
	case "financial":
		payload, err = svc.Financial(start, end)
	case "vehicles":
		payload, err = svc.Vehicles(start, end)
	case "staff":
		payload, err = svc.Staff(start, end)
	default:
		RespondError(c, http.StatusBadRequest, "unknown report type", nil)
		return
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// GET /api/reports/revenue-split
func GetRevenueSplit(c *gin.Context) {
	start, end := utils.DateRange(c.Query("date"), c.Query("start"), c.Query("end"))
	breakdown, summaries, err := reportsService().Breakdown(start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"breakdown": breakdown,
		"drivers":   summaries,
	})
}
