package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/dto"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/infrastructure/metrics"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// OrderHandler handles order lifecycle requests.
type OrderHandler struct {
	orderUC      *usecase.OrderUsecase
	settlementUC *usecase.SettlementUsecase
	logger       zerolog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderUC *usecase.OrderUsecase, settlementUC *usecase.SettlementUsecase, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orderUC:      orderUC,
		settlementUC: settlementUC,
		logger:       logger,
	}
}

// Create books a new investment order behind the policy gates.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entityID, actor := requestScope(r)
	input, err := req.ToUseCaseInput(entityID, actor)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid settlement date", err)
		return
	}

	order, err := h.orderUC.CreateOrder(r.Context(), input)
	if err != nil {
		var pvErr *domain.PolicyViolationError
		if errors.As(err, &pvErr) {
			metrics.RecordPolicyViolation()
		}
		writeError(w, mapDomainError(err), "failed to create order", err)
		return
	}
	metrics.RecordOrderEvent("created")

	// A same-day order may settle immediately.
	runEngine(r.Context(), h.settlementUC, h.logger, entityID)

	order, err = h.orderUC.Get(r.Context(), entityID, order.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load order", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.OrderFromDomain(order))
}

// Get retrieves an order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", nil)
		return
	}

	entityID, _ := requestScope(r)
	order, err := h.orderUC.Get(r.Context(), entityID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get order", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// List lists the entity's orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	entityID, _ := requestScope(r)

	orders, err := h.orderUC.List(r.Context(), entityID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list orders", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OrdersFromDomain(orders))
}

// Approve records a maker-checker approval on a pending order.
func (h *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", nil)
		return
	}

	var req dto.ApproveOrderRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	entityID, actor := requestScope(r)
	order, err := h.orderUC.Approve(r.Context(), usecase.ApproveOrderInput{
		EntityID: entityID,
		OrderID:  id,
		Approver: actor,
		Comment:  req.Comment,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to approve order", err)
		return
	}
	metrics.RecordOrderEvent("approved")

	runEngine(r.Context(), h.settlementUC, h.logger, entityID)

	order, err = h.orderUC.Get(r.Context(), entityID, order.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load order", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// Reject terminates a pending order.
func (h *OrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", nil)
		return
	}

	var req dto.RejectOrderRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	entityID, actor := requestScope(r)
	order, err := h.orderUC.Reject(r.Context(), usecase.RejectOrderInput{
		EntityID: entityID,
		OrderID:  id,
		Actor:    actor,
		Reason:   req.Reason,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reject order", err)
		return
	}
	metrics.RecordOrderEvent("rejected")

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}
