package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/dto"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/infrastructure/metrics"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response. Policy violations carry the full list
// of violated rules so the client can show each one.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := dto.ErrorResponse{Error: message}
	if err != nil {
		resp.Message = err.Error()
		var pvErr *domain.PolicyViolationError
		if errors.As(err, &pvErr) {
			resp.Violations = pvErr.Violations
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var pvErr *domain.PolicyViolationError
	var orderErr *domain.InvalidOrderTransitionError

	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrHoldingNotFound),
		errors.Is(err, domain.ErrLedgerEntryNotFound),
		errors.Is(err, domain.ErrEntityNotFound),
		errors.Is(err, domain.ErrPolicyNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidMethod),
		errors.Is(err, domain.ErrInvalidTenor),
		errors.Is(err, domain.ErrInvalidYield),
		errors.Is(err, domain.ErrSettlementDateInPast):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.As(err, &pvErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &orderErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// requestScope returns the entity and actor the session middleware resolved.
func requestScope(r *http.Request) (entityID, actor string) {
	return domain.EntityIDFromContext(r.Context()), domain.ActorFromContext(r.Context())
}

// runEngine triggers a settlement pass after a mutating operation, mirroring
// the re-run the storefront performed after every write. Engine failures are
// logged, not surfaced: the triggering operation already committed.
func runEngine(ctx context.Context, settlement *usecase.SettlementUsecase, logger zerolog.Logger, entityID string) *usecase.SettlementReport {
	if settlement == nil {
		return nil
	}
	start := time.Now()
	report, err := settlement.Run(ctx, entityID)
	if err != nil {
		logger.Error().Err(err).Str("entity_id", entityID).Msg("settlement run failed")
		return nil
	}
	metrics.RecordSettlementRun(time.Since(start), len(report.SettledOrders), len(report.MaturedHoldings))
	for _, miss := range report.MissedMatches {
		logger.Warn().
			Str("entity_id", entityID).
			Str("order_id", miss.OrderID).
			Str("stage", string(miss.Stage)).
			Msg("matched ledger entry not found")
	}
	return report
}
