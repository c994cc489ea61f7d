package handler

import (
	"net/http"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/dto"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// EntityHandler serves the tenant catalog.
type EntityHandler struct {
	entityUC *usecase.EntityUsecase
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler(entityUC *usecase.EntityUsecase) *EntityHandler {
	return &EntityHandler{entityUC: entityUC}
}

// List returns every onboarded entity.
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	entities, err := h.entityUC.List(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entities", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntitiesFromDomain(entities))
}
