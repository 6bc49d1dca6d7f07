package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessCheck reports whether one named dependency can currently serve.
type ReadinessCheck func(ctx context.Context) error

// RegisterHealth mounts the liveness and readiness endpoints. /health is a
// plain liveness ping. /ready runs every check against the live dependency
// and returns 503 when any of them fails.
func RegisterHealth(r gin.IRouter, startedAt time.Time, checks map[string]ReadinessCheck) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}
		for name, check := range checks {
			err := check(c.Request.Context())
			deps[name] = err == nil
			if err != nil {
				ready = false
			}
		}

		status := gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startedAt).String()}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})
}
