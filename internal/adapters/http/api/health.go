// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// HealthDependencies reports model readiness for the health payload.
type HealthDependencies interface {
	ModelLoaded() bool
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// healthResponse mirrors the wire schema for GET /health.
type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Timestamp   string `json:"timestamp"`
}

// HandleHealth handles GET /health requests. The route always answers 200;
// readiness is conveyed in the payload so probes can see an unhealthy
// service that is still serving weather routes.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	loaded := h.deps.ModelLoaded()
	status := "healthy"
	if !loaded {
		status = "unhealthy"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      status,
		ModelLoaded: loaded,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
