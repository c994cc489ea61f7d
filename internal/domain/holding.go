package domain

import (
	"github.com/shopspring/decimal"
)

// Holding is an active investment position, created when its originating
// order settles and removed when it matures.
type Holding struct {
	ID             string          `json:"id"`
	EntityID       string          `json:"entityId"`
	InstrumentSlug string          `json:"instrumentSlug"`
	InstrumentName string          `json:"instrumentName"`
	Principal      decimal.Decimal `json:"principal"`
	Yield          decimal.Decimal `json:"yield"`
	StartDate      Date            `json:"startDate"`
	MaturityDate   Date            `json:"maturityDate"`
	TenorDays      int             `json:"tenorDays"`
	OrderID        string          `json:"orderId"`
}

var daysPerYearTimesHundred = decimal.NewFromInt(36500)

// Interest returns the simple, non-compounding pro-rata accrual over the full
// tenor: principal * (yield/100) * (tenorDays/365), rounded to paise.
func (h *Holding) Interest() decimal.Decimal {
	return h.Principal.
		Mul(h.Yield).
		Mul(decimal.NewFromInt(int64(h.TenorDays))).
		Div(daysPerYearTimesHundred).
		Round(2)
}

// MaturityValue is the principal plus accrued interest paid out at maturity.
func (h *Holding) MaturityValue() decimal.Decimal {
	return h.Principal.Add(h.Interest())
}

// MaturedBy reports whether the holding is due on the given day.
func (h *Holding) MaturedBy(today Date) bool {
	return !h.MaturityDate.After(today)
}
