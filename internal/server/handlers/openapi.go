package handlers

import (
	"net/http"

	"github.com/clinicops/rollup/internal/embedded/openapi"
)

// HandleOpenAPIYAML serves the embedded OpenAPI 3.0 specification.
// @Summary Get OpenAPI specification
// @Description Returns the OpenAPI 3.0 specification for this API in YAML format
// @Tags meta
// @Produce application/x-yaml
// @Success 200 {string} string "OpenAPI 3.0 specification"
// @Router /api/v1/openapi.yaml [get].
func (h *Handlers) HandleOpenAPIYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	_, _ = w.Write(openapi.SpecYAML)
}
