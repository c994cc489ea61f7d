package domain

import "errors"

var (
	// Ledger errors
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidMethod        = errors.New("unsupported payment method")
	ErrLedgerEntryNotFound  = errors.New("ledger entry not found")
	ErrMatchedEntryNotFound = errors.New("matched ledger entry not found")
	ErrInsufficientFunds    = errors.New("insufficient available balance")

	// Order errors
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidTenor         = errors.New("tenor must be at least one day")
	ErrInvalidYield         = errors.New("expected yield must be positive")
	ErrSettlementDateInPast = errors.New("settlement date is before the current date")

	// Portfolio errors
	ErrHoldingNotFound = errors.New("holding not found")

	// Tenancy errors
	ErrEntityNotFound  = errors.New("entity not found")
	ErrPolicyNotFound  = errors.New("no policy configured for entity")
	ErrSessionNotFound = errors.New("session not found or expired")
)
