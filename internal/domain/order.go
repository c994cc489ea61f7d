package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the denormalized projection of the order's latest event.
type OrderStatus string

const (
	OrderPendingApproval OrderStatus = "Pending Approval"
	OrderSubmitted       OrderStatus = "Submitted"
	OrderSettled         OrderStatus = "Settled"
	OrderRejected        OrderStatus = "Rejected"
)

// orderTransitions defines the legal edges of the order state machine.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingApproval: {OrderSubmitted, OrderRejected},
	OrderSubmitted:       {OrderSettled},
	OrderSettled:         {},
	OrderRejected:        {},
}

// InvalidOrderTransitionError reports an attempt to move an order along an
// edge the state machine does not have.
type InvalidOrderTransitionError struct {
	OrderID string
	From    OrderStatus
	To      OrderStatus
}

func (e *InvalidOrderTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition from %s to %s for order %s", e.From, e.To, e.OrderID)
}

// OrderEventType names the kinds of events an order accumulates.
type OrderEventType string

const (
	OrderEventCreated  OrderEventType = "CREATED"
	OrderEventApproved OrderEventType = "APPROVED"
	OrderEventRejected OrderEventType = "REJECTED"
	OrderEventSettled  OrderEventType = "SETTLED"
)

// OrderEvent is one record in the order's append-only event log.
type OrderEvent struct {
	At      time.Time      `json:"at"`
	Type    OrderEventType `json:"type"`
	Details map[string]any `json:"details,omitempty"`
}

// Approval records one maker-checker sign-off.
type Approval struct {
	Approver string    `json:"approver"`
	At       time.Time `json:"at"`
	Comment  string    `json:"comment,omitempty"`
}

// Order is an investment order. The event log is the authoritative history;
// Status is a projection of the latest event kept for fast filtering.
type Order struct {
	ID             string          `json:"id"`
	EntityID       string          `json:"entityId"`
	InstrumentSlug string          `json:"instrumentSlug"`
	InstrumentName string          `json:"instrumentName"`
	Rating         string          `json:"rating"`
	Amount         decimal.Decimal `json:"amount"`
	ExpectedYield  decimal.Decimal `json:"expectedYield"`
	TenorDays      int             `json:"tenorDays"`
	Fee            decimal.Decimal `json:"fee"`
	Status         OrderStatus     `json:"status"`
	CreatedBy      string          `json:"createdBy"`
	Approvals      []Approval      `json:"approvals"`
	Events         []OrderEvent    `json:"events"`
	SettlementDate Date            `json:"settlementDate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CanTransition reports whether the order may move to the given status.
func (o *Order) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the order along a legal edge and appends the event that
// caused it. Prior events are never mutated or removed.
func (o *Order) Transition(to OrderStatus, event OrderEvent) error {
	if !o.CanTransition(to) {
		return &InvalidOrderTransitionError{OrderID: o.ID, From: o.Status, To: to}
	}

	o.Status = to
	o.Events = append(o.Events, event)
	return nil
}

// RecordEvent appends an event without changing status.
func (o *Order) RecordEvent(event OrderEvent) {
	o.Events = append(o.Events, event)
}

// IsTerminal reports whether the order can move no further.
func (o *Order) IsTerminal() bool {
	return len(orderTransitions[o.Status]) == 0
}
