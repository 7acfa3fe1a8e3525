package httpserver

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"scm-event-dispatcher/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "SCM event dispatcher is running"
	HealthVersion = "1.0.0"
	ServiceName   = "scm-event-dispatcher"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready only when every registered dependency is healthy.
// @Summary Readiness Check
// @Description Check if the API and its optional dependencies are ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "A dependency is unavailable"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	names := make([]string, 0, len(srv.checks))
	for name := range srv.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(gin.H, len(names))
	var down []string
	for _, name := range names {
		if srv.checks[name].IsHealthy() {
			deps[name] = "up"
			continue
		}
		deps[name] = "down"
		down = append(down, name)
	}

	if len(down) > 0 {
		srv.l.Warnf(c.Request.Context(), "httpserver.readyCheck: unavailable: %v", down)
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "Service Unavailable",
			Data:      gin.H{"status": "not_ready", "dependencies": deps},
		})
		return
	}

	response.OK(c, gin.H{
		"status":       "ready",
		"message":      HealthMessage,
		"version":      HealthVersion,
		"service":      ServiceName,
		"dependencies": deps,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
