package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/dto"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// ClockHandler handles virtual clock and settlement engine requests.
type ClockHandler struct {
	clockUC      *usecase.ClockUsecase
	settlementUC *usecase.SettlementUsecase
	logger       zerolog.Logger
}

// NewClockHandler creates a new ClockHandler.
func NewClockHandler(clockUC *usecase.ClockUsecase, settlementUC *usecase.SettlementUsecase, logger zerolog.Logger) *ClockHandler {
	return &ClockHandler{
		clockUC:      clockUC,
		settlementUC: settlementUC,
		logger:       logger,
	}
}

// Current returns the simulated date.
func (h *ClockHandler) Current(w http.ResponseWriter, r *http.Request) {
	date, err := h.clockUC.Current(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to read clock", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClockResponse{Date: date.String()})
}

// Advance moves the clock one day forward and settles whatever came due.
func (h *ClockHandler) Advance(w http.ResponseWriter, r *http.Request) {
	entityID, _ := requestScope(r)

	result, err := h.clockUC.AdvanceDay(r.Context(), entityID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to advance day", err)
		return
	}
	for _, miss := range result.Report.MissedMatches {
		h.logger.Warn().
			Str("entity_id", entityID).
			Str("order_id", miss.OrderID).
			Str("stage", string(miss.Stage)).
			Msg("matched ledger entry not found")
	}

	writeJSON(w, http.StatusOK, dto.AdvanceResponse{
		Date:   result.Date.String(),
		Report: result.Report,
	})
}

// RunSettlement re-triggers the engine without moving the clock.
func (h *ClockHandler) RunSettlement(w http.ResponseWriter, r *http.Request) {
	entityID, _ := requestScope(r)

	report := runEngine(r.Context(), h.settlementUC, h.logger, entityID)
	if report == nil {
		writeError(w, http.StatusInternalServerError, "settlement run failed", nil)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
