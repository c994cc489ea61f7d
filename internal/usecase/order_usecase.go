package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

// OrderUsecase handles the order lifecycle up to settlement: creation behind
// the policy gates, maker-checker approval, and rejection.
type OrderUsecase struct {
	orderRepo     OrderRepository
	ledgerRepo    LedgerRepository
	portfolioRepo PortfolioRepository
	policyRepo    PolicyRepository
	auditRepo     AuditRepository
	clockRepo     ClockRepository
	txManager     TransactionManager
	idGen         IDGenerator
}

func NewOrderUsecase(
	orderRepo OrderRepository,
	ledgerRepo LedgerRepository,
	portfolioRepo PortfolioRepository,
	policyRepo PolicyRepository,
	auditRepo AuditRepository,
	clockRepo ClockRepository,
	txManager TransactionManager,
	idGen IDGenerator,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:     orderRepo,
		ledgerRepo:    ledgerRepo,
		portfolioRepo: portfolioRepo,
		policyRepo:    policyRepo,
		auditRepo:     auditRepo,
		clockRepo:     clockRepo,
		txManager:     txManager,
		idGen:         idGen,
	}
}

type CreateOrderInput struct {
	EntityID       string
	InstrumentSlug string
	InstrumentName string
	Rating         string
	Amount         decimal.Decimal
	ExpectedYield  decimal.Decimal
	TenorDays      int
	SettlementDate domain.Date
	Actor          string
}

type ApproveOrderInput struct {
	EntityID string
	OrderID  string
	Approver string
	Comment  string
}

type RejectOrderInput struct {
	EntityID string
	OrderID  string
	Actor    string
	Reason   string
}

// feeBasisPointsDivisor converts basis points of amount into currency.
var feeBasisPointsDivisor = decimal.NewFromInt(10000)

// CreateOrder validates the order against the entity's policy, checks
// available funds, and books it. Orders at or under the maker-checker
// threshold are submitted immediately with their ledger debit; larger orders
// wait in Pending Approval and touch no cash until approved.
func (u *OrderUsecase) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.TenorDays < 1 {
		return nil, domain.ErrInvalidTenor
	}
	if !input.ExpectedYield.IsPositive() {
		return nil, domain.ErrInvalidYield
	}

	today, err := u.today(ctx)
	if err != nil {
		return nil, err
	}
	settlementDate := input.SettlementDate
	if settlementDate.IsZero() {
		settlementDate = today
	}
	if settlementDate.Before(today) {
		return nil, domain.ErrSettlementDateInPast
	}

	policy, err := u.policyRepo.GetByEntity(ctx, input.EntityID)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
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

	holdings, err := u.portfolioRepo.ListByEntityTx(ctx, tx, input.EntityID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	instrumentExposure, totalExposure := exposures(holdings, input.InstrumentSlug)

	if err := policy.CheckOrder(domain.OrderCheck{
		Rating:             input.Rating,
		TenorDays:          input.TenorDays,
		Amount:             input.Amount,
		InstrumentExposure: instrumentExposure,
		TotalExposure:      totalExposure,
	}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:             u.idGen.Generate(),
		EntityID:       input.EntityID,
		InstrumentSlug: input.InstrumentSlug,
		InstrumentName: input.InstrumentName,
		Rating:         input.Rating,
		Amount:         input.Amount,
		ExpectedYield:  input.ExpectedYield,
		TenorDays:      input.TenorDays,
		Fee: input.Amount.
			Mul(decimal.NewFromInt(OrderFeeBasisPoints)).
			Div(feeBasisPointsDivisor).
			Round(2),
		Status:         domain.OrderPendingApproval,
		CreatedBy:      input.Actor,
		SettlementDate: settlementDate,
		CreatedAt:      now,
	}
	order.RecordEvent(domain.OrderEvent{
		At:   now,
		Type: domain.OrderEventCreated,
		Details: map[string]any{
			"createdBy": input.Actor,
		},
	})

	if !policy.RequiresApproval(input.Amount) {
		order.Status = domain.OrderSubmitted
		if err := u.appendInvestmentDebit(ctx, tx, order, now); err != nil {
			return nil, err
		}
	}

	if err := u.orderRepo.Append(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("append order: %w", err)
	}

	audit := &domain.AuditEntry{
		ID:       u.idGen.Generate(),
		EntityID: input.EntityID,
		Actor:    input.Actor,
		Action:   domain.AuditOrderCreated,
		Details: domain.MarshalDetails(map[string]any{
			"orderId":    order.ID,
			"instrument": order.InstrumentSlug,
			"amount":     order.Amount,
			"status":     order.Status,
		}),
		CreatedAt: now,
	}
	if err := u.auditRepo.Append(ctx, tx, audit); err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return order, nil
}

// Approve moves a Pending Approval order to Submitted, records the sign-off,
// and books the investment debit that was deferred at creation.
func (u *OrderUsecase) Approve(ctx context.Context, input ApproveOrderInput) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := u.orderRepo.GetByIDTx(ctx, tx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.EntityID != input.EntityID {
		return nil, domain.ErrOrderNotFound
	}

	entries, err := u.ledgerRepo.ListByEntityTx(ctx, tx, input.EntityID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	if domain.SummarizeBalances(entries).Available.LessThan(order.Amount) {
		return nil, domain.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	if err := order.Transition(domain.OrderSubmitted, domain.OrderEvent{
		At:   now,
		Type: domain.OrderEventApproved,
		Details: map[string]any{
			"approver": input.Approver,
		},
	}); err != nil {
		return nil, err
	}
	order.Approvals = append(order.Approvals, domain.Approval{
		Approver: input.Approver,
		At:       now,
		Comment:  input.Comment,
	})

	if err := u.appendInvestmentDebit(ctx, tx, order, now); err != nil {
		return nil, err
	}
	if err := u.orderRepo.Update(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	audit := &domain.AuditEntry{
		ID:       u.idGen.Generate(),
		EntityID: input.EntityID,
		Actor:    input.Approver,
		Action:   domain.AuditOrderApproved,
		Details: domain.MarshalDetails(map[string]any{
			"orderId": order.ID,
			"comment": input.Comment,
		}),
		CreatedAt: now,
	}
	if err := u.auditRepo.Append(ctx, tx, audit); err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return order, nil
}

// Reject terminates a Pending Approval order. No ledger entry is ever written
// for a rejected order.
func (u *OrderUsecase) Reject(ctx context.Context, input RejectOrderInput) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := u.orderRepo.GetByIDTx(ctx, tx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.EntityID != input.EntityID {
		return nil, domain.ErrOrderNotFound
	}

	now := time.Now().UTC()
	if err := order.Transition(domain.OrderRejected, domain.OrderEvent{
		At:   now,
		Type: domain.OrderEventRejected,
		Details: map[string]any{
			"rejectedBy": input.Actor,
			"reason":     input.Reason,
		},
	}); err != nil {
		return nil, err
	}
	if err := u.orderRepo.Update(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	audit := &domain.AuditEntry{
		ID:       u.idGen.Generate(),
		EntityID: input.EntityID,
		Actor:    input.Actor,
		Action:   domain.AuditOrderRejected,
		Details: domain.MarshalDetails(map[string]any{
			"orderId": order.ID,
			"reason":  input.Reason,
		}),
		CreatedAt: now,
	}
	if err := u.auditRepo.Append(ctx, tx, audit); err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return order, nil
}

// Get returns a single order scoped to the entity.
func (u *OrderUsecase) Get(ctx context.Context, entityID, orderID string) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.EntityID != entityID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// List returns the entity's orders, newest first.
func (u *OrderUsecase) List(ctx context.Context, entityID string) ([]*domain.Order, error) {
	orders, err := u.orderRepo.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}
	return orders, nil
}

// appendInvestmentDebit writes the In-Settlement ledger mirror of a submitted
// order.
func (u *OrderUsecase) appendInvestmentDebit(ctx context.Context, tx Transaction, order *domain.Order, now time.Time) error {
	entry := &domain.LedgerEntry{
		ID:             u.idGen.Generate(),
		EntityID:       order.EntityID,
		Direction:      domain.DirectionDebit,
		Method:         domain.MethodInvestment,
		Amount:         order.Amount,
		Reference:      "Investment in " + order.InstrumentName,
		Status:         domain.StatusInSettlement,
		MatchedOrderID: order.ID,
		CreatedAt:      now,
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := u.ledgerRepo.Append(ctx, tx, entry); err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// today resolves the simulated current date, falling back to wall clock when
// the virtual clock was never initialized.
func (u *OrderUsecase) today(ctx context.Context) (domain.Date, error) {
	clock, err := u.clockRepo.Get(ctx)
	if err != nil {
		return domain.Date{}, fmt.Errorf("load clock: %w", err)
	}
	if clock == nil || clock.CurrentDate.IsZero() {
		return domain.Today(), nil
	}
	return clock.CurrentDate, nil
}

// exposures sums invested principal for the concentration gate.
func exposures(holdings []*domain.Holding, instrumentSlug string) (instrument, total decimal.Decimal) {
	for _, h := range holdings {
		total = total.Add(h.Principal)
		if h.InstrumentSlug == instrumentSlug {
			instrument = instrument.Add(h.Principal)
		}
	}
	return instrument, total
}
