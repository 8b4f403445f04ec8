// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/nahid/floodcast/internal/domain/model"
)

// ModelInfoDependencies defines the interface for model introspection.
type ModelInfoDependencies interface {
	ModelInfo() (model.Metadata, error)
}

// ModelInfoHandler handles model metadata requests.
type ModelInfoHandler struct {
	deps ModelInfoDependencies
}

// NewModelInfoHandler creates a new model info handler.
func NewModelInfoHandler(deps ModelInfoDependencies) *ModelInfoHandler {
	return &ModelInfoHandler{deps: deps}
}

// HandleModelInfo handles GET /model/info requests.
func (h *ModelInfoHandler) HandleModelInfo(w http.ResponseWriter, r *http.Request) {
	const op = "api.model_info"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	meta, err := h.deps.ModelInfo()
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, meta)
}
