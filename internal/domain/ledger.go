package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction marks an entry as money in or money out.
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// Method describes how money moved.
type Method string

const (
	MethodUPI        Method = "UPI"
	MethodRTGS       Method = "RTGS"
	MethodNEFT       Method = "NEFT"
	MethodInvestment Method = "Investment"
	MethodMaturity   Method = "Maturity"
)

// DepositMethods are the methods accepted for adding or withdrawing funds.
var DepositMethods = map[Method]bool{
	MethodUPI:  true,
	MethodRTGS: true,
	MethodNEFT: true,
}

// LedgerStatus describes where the money of an entry currently sits.
//
// Credits are Credited on arrival and stay there. Investment debits walk a
// forward-only chain In-Settlement -> Invested -> Matured; non-investment
// debits are Debited and terminal.
type LedgerStatus string

const (
	StatusCredited     LedgerStatus = "Credited"
	StatusDebited      LedgerStatus = "Debited"
	StatusInSettlement LedgerStatus = "In-Settlement"
	StatusInvested     LedgerStatus = "Invested"
	StatusMatured      LedgerStatus = "Matured"
)

// ledgerTransitions defines the legal forward edges of the status chain.
var ledgerTransitions = map[LedgerStatus][]LedgerStatus{
	StatusInSettlement: {StatusInvested},
	StatusInvested:     {StatusMatured},
	StatusCredited:     {},
	StatusDebited:      {},
	StatusMatured:      {},
}

// InvalidLedgerTransitionError reports an attempt to move an entry backwards
// or across its status chain.
type InvalidLedgerTransitionError struct {
	EntryID string
	From    LedgerStatus
	To      LedgerStatus
}

func (e *InvalidLedgerTransitionError) Error() string {
	return fmt.Sprintf("invalid ledger status transition from %s to %s for entry %s", e.From, e.To, e.EntryID)
}

// LedgerEntry is a single credit or debit record. Entries are append-only;
// only the status field and the reference annotation ever mutate in place.
type LedgerEntry struct {
	ID             string          `json:"id"`
	EntityID       string          `json:"entityId"`
	Direction      Direction       `json:"direction"`
	Method         Method          `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      string          `json:"reference"`
	Status         LedgerStatus    `json:"status"`
	MatchedOrderID string          `json:"matchedOrderId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Validate checks the entry's standing invariants.
func (e *LedgerEntry) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Advance moves the entry one step along its status chain.
func (e *LedgerEntry) Advance(to LedgerStatus) error {
	for _, next := range ledgerTransitions[e.Status] {
		if next == to {
			e.Status = to
			return nil
		}
	}
	return &InvalidLedgerTransitionError{EntryID: e.ID, From: e.Status, To: to}
}

// Annotate appends a human-readable marker to the reference text.
func (e *LedgerEntry) Annotate(note string) {
	e.Reference = e.Reference + " " + note
}

// BalanceSummary is the derived view of an entity's money by lifecycle stage.
type BalanceSummary struct {
	Available    decimal.Decimal `json:"available"`
	InSettlement decimal.Decimal `json:"inSettlement"`
	Invested     decimal.Decimal `json:"invested"`
}

// SummarizeBalances recomputes balances from the entries' current statuses.
// There is no cached running balance; available is floored at zero.
func SummarizeBalances(entries []*LedgerEntry) BalanceSummary {
	var credits, debits, inSettlement, invested decimal.Decimal

	for _, e := range entries {
		switch e.Direction {
		case DirectionCredit:
			if e.Status == StatusCredited {
				credits = credits.Add(e.Amount)
			}
		case DirectionDebit:
			switch e.Status {
			case StatusDebited, StatusInSettlement, StatusInvested, StatusMatured:
				debits = debits.Add(e.Amount)
			}

			switch e.Status {
			case StatusInSettlement:
				inSettlement = inSettlement.Add(e.Amount)
			case StatusInvested:
				invested = invested.Add(e.Amount)
			}
		}
	}

	available := credits.Sub(debits)
	if available.IsNegative() {
		available = decimal.Zero
	}

	return BalanceSummary{
		Available:    available,
		InSettlement: inSettlement,
		Invested:     invested,
	}
}
