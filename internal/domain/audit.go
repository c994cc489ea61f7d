package domain

import (
	"encoding/json"
	"time"
)

// SystemActor is recorded when a transition is driven by the engine rather
// than a logged-in user.
const SystemActor = "SYSTEM"

// AuditAction names the auditable state transitions.
type AuditAction string

const (
	AuditFundsAdded     AuditAction = "FUNDS_ADDED"
	AuditFundsWithdrawn AuditAction = "FUNDS_WITHDRAWN"
	AuditOrderCreated   AuditAction = "ORDER_CREATED"
	AuditOrderApproved  AuditAction = "ORDER_APPROVED"
	AuditOrderRejected  AuditAction = "ORDER_REJECTED"
	AuditOrderSettled   AuditAction = "ORDER_SETTLED"
	AuditHoldingMatured AuditAction = "HOLDING_MATURED"
	AuditUserLogin      AuditAction = "USER_LOGIN"
)

// AuditEntry is one append-only record of a meaningful state transition.
type AuditEntry struct {
	ID        string         `json:"id"`
	EntityID  string         `json:"entityId"`
	Actor     string         `json:"actor"`
	Action    AuditAction    `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// MarshalDetails flattens a domain object into audit details.
func MarshalDetails(v any) map[string]any {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"error": "failed to marshal details"}
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return map[string]any{"error": "failed to unmarshal details"}
	}

	return result
}
