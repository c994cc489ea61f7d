package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// LedgerEntryResponse represents a ledger entry in API responses.
type LedgerEntryResponse struct {
	ID             string          `json:"id"`
	EntityID       string          `json:"entity_id"`
	Direction      string          `json:"direction"`
	Method         string          `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      string          `json:"reference"`
	Status         string          `json:"status"`
	MatchedOrderID string          `json:"matched_order_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LedgerEntryFromDomain converts a domain ledger entry to a response.
func LedgerEntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:             e.ID,
		EntityID:       e.EntityID,
		Direction:      string(e.Direction),
		Method:         string(e.Method),
		Amount:         e.Amount,
		Reference:      e.Reference,
		Status:         string(e.Status),
		MatchedOrderID: e.MatchedOrderID,
		CreatedAt:      e.CreatedAt,
	}
}

// LedgerEntriesFromDomain converts domain ledger entries to responses.
func LedgerEntriesFromDomain(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	result := make([]*LedgerEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = LedgerEntryFromDomain(e)
	}
	return result
}

// BalancesResponse represents the entity's cash buckets.
type BalancesResponse struct {
	Available    decimal.Decimal `json:"available"`
	InSettlement decimal.Decimal `json:"in_settlement"`
	Invested     decimal.Decimal `json:"invested"`
}

// BalancesFromDomain converts a balance summary to a response.
func BalancesFromDomain(b domain.BalanceSummary) *BalancesResponse {
	return &BalancesResponse{
		Available:    b.Available,
		InSettlement: b.InSettlement,
		Invested:     b.Invested,
	}
}

// OrderEventResponse represents one order event in API responses.
type OrderEventResponse struct {
	At      time.Time      `json:"at"`
	Type    string         `json:"type"`
	Details map[string]any `json:"details,omitempty"`
}

// ApprovalResponse represents one approval record in API responses.
type ApprovalResponse struct {
	Approver string    `json:"approver"`
	At       time.Time `json:"at"`
	Comment  string    `json:"comment,omitempty"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID             string               `json:"id"`
	EntityID       string               `json:"entity_id"`
	InstrumentSlug string               `json:"instrument_slug"`
	InstrumentName string               `json:"instrument_name"`
	Rating         string               `json:"rating"`
	Amount         decimal.Decimal      `json:"amount"`
	ExpectedYield  decimal.Decimal      `json:"expected_yield"`
	TenorDays      int                  `json:"tenor_days"`
	Fee            decimal.Decimal      `json:"fee"`
	Status         string               `json:"status"`
	CreatedBy      string               `json:"created_by"`
	Approvals      []ApprovalResponse   `json:"approvals,omitempty"`
	Events         []OrderEventResponse `json:"events"`
	SettlementDate string               `json:"settlement_date"`
	CreatedAt      time.Time            `json:"created_at"`
}

// OrderFromDomain converts a domain order to a response.
func OrderFromDomain(o *domain.Order) *OrderResponse {
	approvals := make([]ApprovalResponse, len(o.Approvals))
	for i, a := range o.Approvals {
		approvals[i] = ApprovalResponse{Approver: a.Approver, At: a.At, Comment: a.Comment}
	}
	events := make([]OrderEventResponse, len(o.Events))
	for i, e := range o.Events {
		events[i] = OrderEventResponse{At: e.At, Type: string(e.Type), Details: e.Details}
	}
	return &OrderResponse{
		ID:             o.ID,
		EntityID:       o.EntityID,
		InstrumentSlug: o.InstrumentSlug,
		InstrumentName: o.InstrumentName,
		Rating:         o.Rating,
		Amount:         o.Amount,
		ExpectedYield:  o.ExpectedYield,
		TenorDays:      o.TenorDays,
		Fee:            o.Fee,
		Status:         string(o.Status),
		CreatedBy:      o.CreatedBy,
		Approvals:      approvals,
		Events:         events,
		SettlementDate: o.SettlementDate.String(),
		CreatedAt:      o.CreatedAt,
	}
}

// OrdersFromDomain converts domain orders to responses.
func OrdersFromDomain(orders []*domain.Order) []*OrderResponse {
	result := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = OrderFromDomain(o)
	}
	return result
}

// HoldingResponse represents a holding in API responses.
type HoldingResponse struct {
	ID             string          `json:"id"`
	EntityID       string          `json:"entity_id"`
	InstrumentSlug string          `json:"instrument_slug"`
	InstrumentName string          `json:"instrument_name"`
	Principal      decimal.Decimal `json:"principal"`
	Yield          decimal.Decimal `json:"yield"`
	StartDate      string          `json:"start_date"`
	MaturityDate   string          `json:"maturity_date"`
	TenorDays      int             `json:"tenor_days"`
	OrderID        string          `json:"order_id"`
	Interest       decimal.Decimal `json:"interest"`
}

// HoldingFromDomain converts a domain holding to a response.
func HoldingFromDomain(h *domain.Holding) *HoldingResponse {
	return &HoldingResponse{
		ID:             h.ID,
		EntityID:       h.EntityID,
		InstrumentSlug: h.InstrumentSlug,
		InstrumentName: h.InstrumentName,
		Principal:      h.Principal,
		Yield:          h.Yield,
		StartDate:      h.StartDate.String(),
		MaturityDate:   h.MaturityDate.String(),
		TenorDays:      h.TenorDays,
		OrderID:        h.OrderID,
		Interest:       h.Interest(),
	}
}

// PortfolioResponse represents the portfolio read side.
type PortfolioResponse struct {
	Holdings          []*HoldingResponse `json:"holdings"`
	TotalPrincipal    decimal.Decimal    `json:"total_principal"`
	ProjectedInterest decimal.Decimal    `json:"projected_interest"`
}

// PortfolioFromDomain converts a portfolio summary to a response.
func PortfolioFromDomain(s *usecase.PortfolioSummary) *PortfolioResponse {
	holdings := make([]*HoldingResponse, len(s.Holdings))
	for i, h := range s.Holdings {
		holdings[i] = HoldingFromDomain(h)
	}
	return &PortfolioResponse{
		Holdings:          holdings,
		TotalPrincipal:    s.TotalPrincipal,
		ProjectedInterest: s.ProjectedInterest,
	}
}

// AuditEntryResponse represents an audit entry in API responses.
type AuditEntryResponse struct {
	ID        string         `json:"id"`
	EntityID  string         `json:"entity_id"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AuditEntriesFromDomain converts domain audit entries to responses.
func AuditEntriesFromDomain(entries []*domain.AuditEntry) []*AuditEntryResponse {
	result := make([]*AuditEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &AuditEntryResponse{
			ID:        e.ID,
			EntityID:  e.EntityID,
			Actor:     e.Actor,
			Action:    string(e.Action),
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}
	return result
}

// ClockResponse represents the virtual clock.
type ClockResponse struct {
	Date string `json:"date"`
}

// AdvanceResponse represents the outcome of a day advance.
type AdvanceResponse struct {
	Date   string                    `json:"date"`
	Report *usecase.SettlementReport `json:"report"`
}

// EntityResponse represents a tenant in API responses.
type EntityResponse struct {
	ID        string    `json:"id"`
	LegalName string    `json:"legal_name"`
	CreatedAt time.Time `json:"created_at"`
}

// EntitiesFromDomain converts domain entities to responses.
func EntitiesFromDomain(entities []*domain.Entity) []*EntityResponse {
	result := make([]*EntityResponse, len(entities))
	for i, e := range entities {
		result[i] = &EntityResponse{ID: e.ID, LegalName: e.LegalName, CreatedAt: e.CreatedAt}
	}
	return result
}

// SessionResponse represents a login session in API responses.
type SessionResponse struct {
	Token     string    `json:"token,omitempty"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	EntityID  string    `json:"entity_id"`
	LoginTime time.Time `json:"login_time"`
}

// SessionFromDomain converts a domain session to a response.
func SessionFromDomain(token string, s *domain.Session) *SessionResponse {
	return &SessionResponse{
		Token:     token,
		UserID:    s.UserID,
		Email:     s.Email,
		Name:      s.Name,
		Role:      s.Role,
		EntityID:  s.EntityID,
		LoginTime: s.LoginTime,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error      string   `json:"error"`
	Message    string   `json:"message,omitempty"`
	Violations []string `json:"violations,omitempty"`
}
