package handler

import (
	"net/http"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/dto"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// AuditHandler serves the audit trail read side.
type AuditHandler struct {
	auditUC *usecase.AuditUsecase
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC *usecase.AuditUsecase) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List returns the entity's audit entries.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	entityID, _ := requestScope(r)

	entries, err := h.auditUC.List(r.Context(), entityID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditEntriesFromDomain(entries))
}
