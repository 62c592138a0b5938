package handlers

import (
	"net/http"
	"time"

	intconfig "busfleet/internal/config"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

var router *gin.Engine

// SetRouter stores the engine so the route listing endpoint can inspect it.
func SetRouter(r *gin.Engine) {
	router = r
}

// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(startedAt).Round(time.Second).String(),
	})
}

// GET /health/db
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /routes lists registered routes, handy during development.
func Routes(c *gin.Context) {
	if router == nil {
		c.JSON(http.StatusOK, gin.H{"routes": []string{}})
		return
	}
	routes := router.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, r := range routes {
		out = append(out, gin.H{"method": r.Method, "path": r.Path})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
