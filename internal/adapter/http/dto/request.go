package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// AddFundsRequest is the request body for adding funds.
type AddFundsRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *AddFundsRequest) ToUseCaseInput(entityID, actor string) usecase.AddFundsInput {
	return usecase.AddFundsInput{
		EntityID:  entityID,
		Amount:    r.Amount,
		Method:    domain.Method(r.Method),
		Reference: r.Reference,
		Actor:     actor,
	}
}

// WithdrawFundsRequest is the request body for withdrawing funds.
type WithdrawFundsRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *WithdrawFundsRequest) ToUseCaseInput(entityID, actor string) usecase.WithdrawFundsInput {
	return usecase.WithdrawFundsInput{
		EntityID:  entityID,
		Amount:    r.Amount,
		Reference: r.Reference,
		Actor:     actor,
	}
}

// CreateOrderRequest is the request body for creating an order.
type CreateOrderRequest struct {
	InstrumentSlug string          `json:"instrument_slug"`
	InstrumentName string          `json:"instrument_name"`
	Rating         string          `json:"rating"`
	Amount         decimal.Decimal `json:"amount"`
	ExpectedYield  decimal.Decimal `json:"expected_yield"`
	TenorDays      int             `json:"tenor_days"`
	SettlementDate string          `json:"settlement_date,omitempty"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *CreateOrderRequest) ToUseCaseInput(entityID, actor string) (usecase.CreateOrderInput, error) {
	input := usecase.CreateOrderInput{
		EntityID:       entityID,
		InstrumentSlug: r.InstrumentSlug,
		InstrumentName: r.InstrumentName,
		Rating:         r.Rating,
		Amount:         r.Amount,
		ExpectedYield:  r.ExpectedYield,
		TenorDays:      r.TenorDays,
		Actor:          actor,
	}
	if r.SettlementDate != "" {
		date, err := domain.ParseDate(r.SettlementDate)
		if err != nil {
			return usecase.CreateOrderInput{}, err
		}
		input.SettlementDate = date
	}
	return input, nil
}

// ApproveOrderRequest is the request body for approving an order.
type ApproveOrderRequest struct {
	Comment string `json:"comment,omitempty"`
}

// RejectOrderRequest is the request body for rejecting an order.
type RejectOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// LoginRequest is the request body for the demo login.
type LoginRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	EntityID string `json:"entity_id,omitempty"`
}
