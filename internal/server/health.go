package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus is the outcome of a health check.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the result of one dependency probe.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker probes one dependency.
type HealthChecker func() CheckResult

// RegisterHealthRoutes adds GET and HEAD /health.
func RegisterHealthRoutes(router *gin.Engine, service, version string, started time.Time, checks map[string]HealthChecker) {
	router.GET("/health", healthHandler(service, version, started, checks))
	router.HEAD("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
}

func healthHandler(service, version string, started time.Time, checks map[string]HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:  HealthStatusHealthy,
			Service: service,
			Version: version,
			Uptime:  time.Since(started).Truncate(time.Second).String(),
		}

		if len(checks) > 0 {
			resp.Checks = make(map[string]CheckResult, len(checks))
			for name, check := range checks {
				result := check()
				resp.Checks[name] = result
				switch {
				case result.Status == HealthStatusUnhealthy:
					resp.Status = HealthStatusUnhealthy
				case result.Status == HealthStatusDegraded && resp.Status == HealthStatusHealthy:
					resp.Status = HealthStatusDegraded
				}
			}
		}

		code := http.StatusOK
		if resp.Status == HealthStatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}

// PingChecker reports failure of ping as failStatus. Storage is critical
// and should fail unhealthy; caches and search only degrade the service.
func PingChecker(name string, failStatus HealthStatus, ping func() error) HealthChecker {
	return func() CheckResult {
		start := time.Now()
		err := ping()
		latency := time.Since(start).String()
		if err != nil {
			return CheckResult{Status: failStatus, Message: name + " connection failed", Latency: latency}
		}
		return CheckResult{Status: HealthStatusHealthy, Message: name + " connection OK", Latency: latency}
	}
}
