package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Policy holds the per-entity investment gates checked before an order is
// created.
type Policy struct {
	MinRating             string          `json:"minRating"`
	MaxTenorDays          int             `json:"maxTenorDays"`
	ConcentrationCap      decimal.Decimal `json:"concentrationCap"`
	MakerCheckerThreshold decimal.Decimal `json:"makerCheckerThreshold"`
}

// ratingRanks orders the credit-rating scale for minRating comparisons.
var ratingRanks = map[string]int{
	"AAA": 8,
	"AA+": 7,
	"AA":  6,
	"AA-": 5,
	"A+":  4,
	"A":   3,
	"A-":  2,
	"BBB": 1,
}

// RatingAtLeast reports whether rating is at or above min on the scale.
// Unknown ratings never pass.
func RatingAtLeast(rating, min string) bool {
	r, ok := ratingRanks[rating]
	if !ok {
		return false
	}
	m, ok := ratingRanks[min]
	if !ok {
		return false
	}
	return r >= m
}

// RequiresApproval reports whether the amount needs a second approver.
func (p *Policy) RequiresApproval(amount decimal.Decimal) bool {
	return amount.GreaterThan(p.MakerCheckerThreshold)
}

// PolicyViolationError lists every rule an order would break.
type PolicyViolationError struct {
	Violations []string
}

func (e *PolicyViolationError) Error() string {
	return "policy violation: " + strings.Join(e.Violations, "; ")
}

// OrderCheck carries the inputs the policy gates evaluate.
type OrderCheck struct {
	Rating    string
	TenorDays int
	Amount    decimal.Decimal

	// InstrumentExposure is the invested principal already held in the same
	// instrument; TotalExposure is the invested principal across the book.
	InstrumentExposure decimal.Decimal
	TotalExposure      decimal.Decimal
}

// CheckOrder evaluates every gate and reports all violations at once, so the
// caller can surface the full list instead of the first failure.
func (p *Policy) CheckOrder(c OrderCheck) error {
	var violations []string

	if p.MinRating != "" && !RatingAtLeast(c.Rating, p.MinRating) {
		violations = append(violations,
			fmt.Sprintf("instrument rating %s is below the policy minimum %s", c.Rating, p.MinRating))
	}

	if p.MaxTenorDays > 0 && c.TenorDays > p.MaxTenorDays {
		violations = append(violations,
			fmt.Sprintf("tenor of %d days exceeds the policy maximum of %d days", c.TenorDays, p.MaxTenorDays))
	}

	// The cap gates over-weighting an existing book; the first investment
	// establishes the book and is never blocked by it.
	if p.ConcentrationCap.IsPositive() && c.TotalExposure.IsPositive() {
		share := c.InstrumentExposure.Add(c.Amount).Div(c.TotalExposure.Add(c.Amount))
		if share.GreaterThan(p.ConcentrationCap) {
			violations = append(violations,
				fmt.Sprintf("instrument share %s of invested exposure exceeds the concentration cap %s",
					share.Round(4).String(), p.ConcentrationCap.String()))
		}
	}

	if len(violations) > 0 {
		return &PolicyViolationError{Violations: violations}
	}
	return nil
}
