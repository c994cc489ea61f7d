package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

// SettlementUsecase is the single authority over order settlement and holding
// maturity. Running it more than once against an unchanged clock is a no-op.
type SettlementUsecase struct {
	orderRepo     OrderRepository
	ledgerRepo    LedgerRepository
	portfolioRepo PortfolioRepository
	auditRepo     AuditRepository
	clockRepo     ClockRepository
	txManager     TransactionManager
	idGen         IDGenerator
}

func NewSettlementUsecase(
	orderRepo OrderRepository,
	ledgerRepo LedgerRepository,
	portfolioRepo PortfolioRepository,
	auditRepo AuditRepository,
	clockRepo ClockRepository,
	txManager TransactionManager,
	idGen IDGenerator,
) *SettlementUsecase {
	return &SettlementUsecase{
		orderRepo:     orderRepo,
		ledgerRepo:    ledgerRepo,
		portfolioRepo: portfolioRepo,
		auditRepo:     auditRepo,
		clockRepo:     clockRepo,
		txManager:     txManager,
		idGen:         idGen,
	}
}

// MatchStage names the sub-pass in which a matched ledger entry went missing.
type MatchStage string

const (
	StageSettlement MatchStage = "settlement"
	StageMaturity   MatchStage = "maturity"
)

// MissedMatch reports an order whose mirroring ledger entry could not be
// found. The state transition proceeds regardless; the miss is surfaced so
// the caller can log it.
type MissedMatch struct {
	OrderID string     `json:"orderId"`
	Stage   MatchStage `json:"stage"`
}

// SettlementReport summarizes one engine run.
type SettlementReport struct {
	EntityID        string        `json:"entityId"`
	Date            domain.Date   `json:"date"`
	SettledOrders   []string      `json:"settledOrders"`
	MaturedHoldings []string      `json:"maturedHoldings"`
	MissedMatches   []MissedMatch `json:"missedMatches,omitempty"`
}

// Empty reports whether the run mutated nothing.
func (r *SettlementReport) Empty() bool {
	return len(r.SettledOrders) == 0 && len(r.MaturedHoldings) == 0
}

// Run executes the settlement sub-pass and then, strictly after it, the
// maturity sub-pass, for one entity, inside a single store transaction. A run
// that changes nothing rolls back and leaves the stores byte-identical.
func (u *SettlementUsecase) Run(ctx context.Context, entityID string) (*SettlementReport, error) {
	today, err := u.today(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	report := &SettlementReport{EntityID: entityID, Date: today}
	now := time.Now().UTC()

	if err := u.settleOrders(ctx, tx, entityID, today, now, report); err != nil {
		return nil, err
	}
	if err := u.matureHoldings(ctx, tx, entityID, today, now, report); err != nil {
		return nil, err
	}

	if report.Empty() {
		return report, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return report, nil
}

// settleOrders moves every due Submitted order to Settled, creates its
// holding, and flips its In-Settlement debit to Invested.
func (u *SettlementUsecase) settleOrders(
	ctx context.Context,
	tx Transaction,
	entityID string,
	today domain.Date,
	now time.Time,
	report *SettlementReport,
) error {
	orders, err := u.orderRepo.ListByEntityTx(ctx, tx, entityID)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	entries, err := u.ledgerRepo.ListByEntityTx(ctx, tx, entityID)
	if err != nil {
		return fmt.Errorf("list ledger entries: %w", err)
	}

	for _, order := range orders {
		if order.Status != domain.OrderSubmitted || order.SettlementDate.After(today) {
			continue
		}

		if err := order.Transition(domain.OrderSettled, domain.OrderEvent{
			At:   now,
			Type: domain.OrderEventSettled,
			Details: map[string]any{
				"settlementDate": today.String(),
			},
		}); err != nil {
			return err
		}
		if err := u.orderRepo.Update(ctx, tx, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		holding := &domain.Holding{
			ID:             u.idGen.Generate(),
			EntityID:       entityID,
			InstrumentSlug: order.InstrumentSlug,
			InstrumentName: order.InstrumentName,
			Principal:      order.Amount,
			Yield:          order.ExpectedYield,
			StartDate:      today,
			MaturityDate:   today.AddDays(order.TenorDays),
			TenorDays:      order.TenorDays,
			OrderID:        order.ID,
		}
		if err := u.portfolioRepo.Append(ctx, tx, holding); err != nil {
			return fmt.Errorf("append holding: %w", err)
		}

		matched, err := findMatchedEntry(entries, order.ID, domain.StatusInSettlement)
		switch {
		case errors.Is(err, domain.ErrMatchedEntryNotFound):
			report.MissedMatches = append(report.MissedMatches, MissedMatch{
				OrderID: order.ID,
				Stage:   StageSettlement,
			})
		case err != nil:
			return err
		default:
			if err := matched.Advance(domain.StatusInvested); err != nil {
				return err
			}
			matched.Annotate("(Settled)")
			if err := u.ledgerRepo.Update(ctx, tx, matched); err != nil {
				return fmt.Errorf("update ledger entry: %w", err)
			}
		}

		audit := &domain.AuditEntry{
			ID:       u.idGen.Generate(),
			EntityID: entityID,
			Actor:    domain.SystemActor,
			Action:   domain.AuditOrderSettled,
			Details: domain.MarshalDetails(map[string]any{
				"orderId":    order.ID,
				"holdingId":  holding.ID,
				"instrument": order.InstrumentSlug,
				"amount":     order.Amount,
			}),
			CreatedAt: now,
		}
		if err := u.auditRepo.Append(ctx, tx, audit); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}

		report.SettledOrders = append(report.SettledOrders, order.ID)
	}
	return nil
}

// matureHoldings pays out every due holding: a Maturity credit of principal
// plus interest, the Invested debit flipped to Matured, and the holding
// removed. It runs after settleOrders so a holding never settles and matures
// in the same pass out of order.
func (u *SettlementUsecase) matureHoldings(
	ctx context.Context,
	tx Transaction,
	entityID string,
	today domain.Date,
	now time.Time,
	report *SettlementReport,
) error {
	holdings, err := u.portfolioRepo.ListByEntityTx(ctx, tx, entityID)
	if err != nil {
		return fmt.Errorf("list holdings: %w", err)
	}
	entries, err := u.ledgerRepo.ListByEntityTx(ctx, tx, entityID)
	if err != nil {
		return fmt.Errorf("list ledger entries: %w", err)
	}

	for _, holding := range holdings {
		if !holding.MaturedBy(today) {
			continue
		}

		interest := holding.Interest()
		payout := &domain.LedgerEntry{
			ID:        u.idGen.Generate(),
			EntityID:  entityID,
			Direction: domain.DirectionCredit,
			Method:    domain.MethodMaturity,
			Amount:    holding.MaturityValue(),
			Reference: fmt.Sprintf("Maturity of %s (principal %s + interest %s)",
				holding.InstrumentName, holding.Principal.String(), interest.String()),
			Status:         domain.StatusCredited,
			MatchedOrderID: holding.OrderID,
			CreatedAt:      now,
		}
		if err := payout.Validate(); err != nil {
			return err
		}
		if err := u.ledgerRepo.Append(ctx, tx, payout); err != nil {
			return fmt.Errorf("append ledger entry: %w", err)
		}

		matched, err := findMatchedEntry(entries, holding.OrderID, domain.StatusInvested)
		switch {
		case errors.Is(err, domain.ErrMatchedEntryNotFound):
			report.MissedMatches = append(report.MissedMatches, MissedMatch{
				OrderID: holding.OrderID,
				Stage:   StageMaturity,
			})
		case err != nil:
			return err
		default:
			if err := matched.Advance(domain.StatusMatured); err != nil {
				return err
			}
			matched.Annotate("(Matured)")
			if err := u.ledgerRepo.Update(ctx, tx, matched); err != nil {
				return fmt.Errorf("update ledger entry: %w", err)
			}
		}

		if err := u.portfolioRepo.Remove(ctx, tx, holding.ID); err != nil {
			return fmt.Errorf("remove holding: %w", err)
		}

		audit := &domain.AuditEntry{
			ID:       u.idGen.Generate(),
			EntityID: entityID,
			Actor:    domain.SystemActor,
			Action:   domain.AuditHoldingMatured,
			Details: domain.MarshalDetails(map[string]any{
				"holdingId":  holding.ID,
				"orderId":    holding.OrderID,
				"instrument": holding.InstrumentSlug,
				"principal":  holding.Principal,
				"interest":   interest,
				"total":      holding.MaturityValue(),
			}),
			CreatedAt: now,
		}
		if err := u.auditRepo.Append(ctx, tx, audit); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}

		report.MaturedHoldings = append(report.MaturedHoldings, holding.ID)
	}
	return nil
}

func (u *SettlementUsecase) today(ctx context.Context) (domain.Date, error) {
	clock, err := u.clockRepo.Get(ctx)
	if err != nil {
		return domain.Date{}, fmt.Errorf("load clock: %w", err)
	}
	if clock == nil || clock.CurrentDate.IsZero() {
		return domain.Today(), nil
	}
	return clock.CurrentDate, nil
}

// findMatchedEntry locates the investment debit mirroring an order, in the
// expected status.
func findMatchedEntry(entries []*domain.LedgerEntry, orderID string, status domain.LedgerStatus) (*domain.LedgerEntry, error) {
	for _, e := range entries {
		if e.Direction == domain.DirectionDebit && e.MatchedOrderID == orderID && e.Status == status {
			return e, nil
		}
	}
	return nil, domain.ErrMatchedEntryNotFound
}
