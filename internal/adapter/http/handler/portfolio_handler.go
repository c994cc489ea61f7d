package handler

import (
	"net/http"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/dto"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// PortfolioHandler serves the holdings read side.
type PortfolioHandler struct {
	portfolioUC *usecase.PortfolioUsecase
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioUC *usecase.PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{portfolioUC: portfolioUC}
}

// Summary returns the entity's holdings with totals.
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	entityID, _ := requestScope(r)

	summary, err := h.portfolioUC.Summary(r.Context(), entityID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load portfolio", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PortfolioFromDomain(summary))
}
