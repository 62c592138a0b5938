package handlers

import (
	"net/http"

	intconfig "busfleet/internal/config"
	"busfleet/internal/http/middleware"
	"busfleet/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	jwtSecret     []byte
	revenuePct    services.Percentages
	bookingExpiry int
)

// Configure wires env-derived settings used across handlers.
func Configure(env intconfig.Env) {
	jwtSecret = []byte(env.JWTSecret)
	revenuePct = services.Percentages{
		Company:    env.CompanyPct,
		Station:    env.StationPct,
		DriverPool: env.DriverPct,
	}
	bookingExpiry = env.BookingExpiryHours
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
