package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

// FundsUsecase handles cash movements in and out of the entity's ledger.
type FundsUsecase struct {
	ledgerRepo LedgerRepository
	auditRepo  AuditRepository
	txManager  TransactionManager
	idGen      IDGenerator
}

func NewFundsUsecase(
	ledgerRepo LedgerRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	idGen IDGenerator,
) *FundsUsecase {
	return &FundsUsecase{
		ledgerRepo: ledgerRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		idGen:      idGen,
	}
}

type AddFundsInput struct {
	EntityID  string
	Amount    decimal.Decimal
	Method    domain.Method
	Reference string
	Actor     string
}

type WithdrawFundsInput struct {
	EntityID  string
	Amount    decimal.Decimal
	Reference string
	Actor     string
}

// AddFunds credits the entity ledger with an immediately available deposit.
func (u *FundsUsecase) AddFunds(ctx context.Context, input AddFundsInput) (*domain.LedgerEntry, error) {
	if !domain.DepositMethods[input.Method] {
		return nil, domain.ErrInvalidMethod
	}

	entry := &domain.LedgerEntry{
		ID:        u.idGen.Generate(),
		EntityID:  input.EntityID,
		Direction: domain.DirectionCredit,
		Method:    input.Method,
		Amount:    input.Amount,
		Reference: input.Reference,
		Status:    domain.StatusCredited,
		CreatedAt: time.Now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := u.ledgerRepo.Append(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("append ledger entry: %w", err)
	}

	audit := &domain.AuditEntry{
		ID:       u.idGen.Generate(),
		EntityID: input.EntityID,
		Actor:    input.Actor,
		Action:   domain.AuditFundsAdded,
		Details: domain.MarshalDetails(map[string]any{
			"entryId": entry.ID,
			"amount":  entry.Amount,
			"method":  entry.Method,
		}),
		CreatedAt: entry.CreatedAt,
	}
	if err := u.auditRepo.Append(ctx, tx, audit); err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return entry, nil
}

// Withdraw debits available cash out of the entity ledger.
func (u *FundsUsecase) Withdraw(ctx context.Context, input WithdrawFundsInput) (*domain.LedgerEntry, error) {
	entry := &domain.LedgerEntry{
		ID:        u.idGen.Generate(),
		EntityID:  input.EntityID,
		Direction: domain.DirectionDebit,
		Method:    domain.MethodRTGS,
		Amount:    input.Amount,
		Reference: input.Reference,
		Status:    domain.StatusDebited,
		CreatedAt: time.Now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	entries, err := u.ledgerRepo.ListByEntityTx(ctx, tx, input.EntityID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	balances := domain.SummarizeBalances(entries)
	if balances.Available.LessThan(input.Amount) {
		return nil, domain.ErrInsufficientFunds
	}

	if err := u.ledgerRepo.Append(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("append ledger entry: %w", err)
	}

	audit := &domain.AuditEntry{
		ID:       u.idGen.Generate(),
		EntityID: input.EntityID,
		Actor:    input.Actor,
		Action:   domain.AuditFundsWithdrawn,
		Details: domain.MarshalDetails(map[string]any{
			"entryId": entry.ID,
			"amount":  entry.Amount,
		}),
		CreatedAt: entry.CreatedAt,
	}
	if err := u.auditRepo.Append(ctx, tx, audit); err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return entry, nil
}

// Balances aggregates the entity's ledger into the three cash buckets.
func (u *FundsUsecase) Balances(ctx context.Context, entityID string) (domain.BalanceSummary, error) {
	entries, err := u.ledgerRepo.ListByEntity(ctx, entityID)
	if err != nil {
		return domain.BalanceSummary{}, fmt.Errorf("list ledger entries: %w", err)
	}
	return domain.SummarizeBalances(entries), nil
}

// ListLedger returns the entity's ledger entries, newest first.
func (u *FundsUsecase) ListLedger(ctx context.Context, entityID string) ([]*domain.LedgerEntry, error) {
	entries, err := u.ledgerRepo.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
