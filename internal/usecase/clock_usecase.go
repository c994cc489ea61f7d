package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

// ClockUsecase owns the virtual business clock and ties every advance to a
// settlement run.
type ClockUsecase struct {
	clockRepo  ClockRepository
	settlement *SettlementUsecase
	txManager  TransactionManager
}

func NewClockUsecase(clockRepo ClockRepository, settlement *SettlementUsecase, txManager TransactionManager) *ClockUsecase {
	return &ClockUsecase{
		clockRepo:  clockRepo,
		settlement: settlement,
		txManager:  txManager,
	}
}

// AdvanceResult is the outcome of one day advance.
type AdvanceResult struct {
	Date   domain.Date       `json:"date"`
	Report *SettlementReport `json:"report"`
}

// Current returns the simulated date. A clock that was never advanced reads
// as wall-clock today without being persisted.
func (u *ClockUsecase) Current(ctx context.Context) (domain.Date, error) {
	clock, err := u.clockRepo.Get(ctx)
	if err != nil {
		return domain.Date{}, fmt.Errorf("load clock: %w", err)
	}
	if clock == nil || clock.CurrentDate.IsZero() {
		return domain.Today(), nil
	}
	return clock.CurrentDate, nil
}

// AdvanceDay moves the clock forward exactly one calendar day, persists it,
// and runs the settlement engine for the entity at the new date. The clock is
// initialized lazily on the first advance.
func (u *ClockUsecase) AdvanceDay(ctx context.Context, entityID string) (*AdvanceResult, error) {
	now := time.Now().UTC()

	tctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := u.txManager.Begin(tctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(tctx)

	clock, err := u.clockRepo.GetTx(tctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load clock: %w", err)
	}
	if clock == nil || clock.CurrentDate.IsZero() {
		clock = domain.NewClock(domain.DateOf(now), now)
	}
	date := clock.Advance(now)

	if err := u.clockRepo.Save(tctx, tx, clock); err != nil {
		return nil, fmt.Errorf("save clock: %w", err)
	}
	if err := tx.Commit(tctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	report, err := u.settlement.Run(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("settlement run: %w", err)
	}
	return &AdvanceResult{Date: date, Report: report}, nil
}
