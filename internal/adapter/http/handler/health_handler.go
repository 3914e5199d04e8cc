package handler

import (
	"context"
	"net/http"
	"time"

	"marketplace-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type dependencyHealth struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// HealthCheck handles GET /health. Any failing dependency degrades the
// whole response to 503 so load balancers drain the instance.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := make(map[string]dependencyHealth, len(checkers))
		healthy := true

		for _, checker := range checkers {
			dh := checkDependency(c.Request.Context(), checker)
			if dh.Error != "" {
				healthy = false
			}
			report[checker.Name()] = dh
		}

		status, code := "healthy", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":       status,
			"dependencies": report,
		})
	}
}

func checkDependency(parent context.Context, checker ports.HealthChecker) dependencyHealth {
	ctx, cancel := context.WithTimeout(parent, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := checker.Ping(ctx)
	dh := dependencyHealth{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		dh.Status = "unhealthy"
		dh.Error = err.Error()
	}
	return dh
}
