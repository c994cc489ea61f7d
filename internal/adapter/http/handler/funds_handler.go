package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/dto"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/infrastructure/metrics"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// FundsHandler handles cash movement and ledger read requests.
type FundsHandler struct {
	fundsUC      *usecase.FundsUsecase
	settlementUC *usecase.SettlementUsecase
	logger       zerolog.Logger
}

// NewFundsHandler creates a new FundsHandler.
func NewFundsHandler(fundsUC *usecase.FundsUsecase, settlementUC *usecase.SettlementUsecase, logger zerolog.Logger) *FundsHandler {
	return &FundsHandler{
		fundsUC:      fundsUC,
		settlementUC: settlementUC,
		logger:       logger,
	}
}

// Add credits funds into the entity ledger.
func (h *FundsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entityID, actor := requestScope(r)
	entry, err := h.fundsUC.AddFunds(r.Context(), req.ToUseCaseInput(entityID, actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add funds", err)
		return
	}

	metrics.RecordDeposit()
	runEngine(r.Context(), h.settlementUC, h.logger, entityID)
	writeJSON(w, http.StatusCreated, dto.LedgerEntryFromDomain(entry))
}

// Withdraw debits available funds out of the entity ledger.
func (h *FundsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entityID, actor := requestScope(r)
	entry, err := h.fundsUC.Withdraw(r.Context(), req.ToUseCaseInput(entityID, actor))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to withdraw funds", err)
		return
	}

	metrics.RecordWithdrawal()
	writeJSON(w, http.StatusCreated, dto.LedgerEntryFromDomain(entry))
}

// Balances returns the entity's cash buckets.
func (h *FundsHandler) Balances(w http.ResponseWriter, r *http.Request) {
	entityID, _ := requestScope(r)

	balances, err := h.fundsUC.Balances(r.Context(), entityID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balances", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances))
}

// Ledger returns the entity's ledger entries.
func (h *FundsHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	entityID, _ := requestScope(r)

	entries, err := h.fundsUC.ListLedger(r.Context(), entityID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerEntriesFromDomain(entries))
}
