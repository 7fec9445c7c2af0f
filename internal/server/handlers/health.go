package handlers

import (
	"net/http"
	"time"

	"github.com/clinicops/rollup/internal/server/response"
)

// HandleHealth handles GET /health.
// @Summary Health check
// @Description Health check endpoint (liveness probe)
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":         "healthy",
		"service":        "rollup-api",
		"version":        "v1",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
