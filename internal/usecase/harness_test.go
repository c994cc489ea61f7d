package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/repository/docstore"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase/mocks"
)

const (
	testEntity = "urban-threads"
	testActor  = "maker@urban-threads.example"
)

// harness wires every usecase over a shared in-memory document store, the
// way cmd/server wires them over the real backend.
type harness struct {
	backend *docstore.MemoryBackend
	txm     *docstore.TxManager

	clockRepo     *docstore.ClockRepo
	ledgerRepo    *docstore.LedgerRepo
	orderRepo     *docstore.OrderRepo
	portfolioRepo *docstore.PortfolioRepo
	auditRepo     *docstore.AuditRepo

	funds      *usecase.FundsUsecase
	orders     *usecase.OrderUsecase
	settlement *usecase.SettlementUsecase
	clock      *usecase.ClockUsecase
	portfolio  *usecase.PortfolioUsecase
	audit      *usecase.AuditUsecase
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	backend := docstore.NewMemoryBackend()
	txm := docstore.NewTxManager(backend)
	idGen := &mocks.StubIDGenerator{Prefix: "id"}

	clockRepo := docstore.NewClockRepo(backend)
	ledgerRepo := docstore.NewLedgerRepo(backend)
	orderRepo := docstore.NewOrderRepo(backend)
	portfolioRepo := docstore.NewPortfolioRepo(backend)
	auditRepo := docstore.NewAuditRepo(backend)
	policyRepo := docstore.NewPolicyRepo(backend)
	entityRepo := docstore.NewEntityRepo(backend)

	settlement := usecase.NewSettlementUsecase(
		orderRepo, ledgerRepo, portfolioRepo, auditRepo, clockRepo, txm, idGen)

	h := &harness{
		backend:       backend,
		txm:           txm,
		clockRepo:     clockRepo,
		ledgerRepo:    ledgerRepo,
		orderRepo:     orderRepo,
		portfolioRepo: portfolioRepo,
		auditRepo:     auditRepo,
		funds:         usecase.NewFundsUsecase(ledgerRepo, auditRepo, txm, idGen),
		orders: usecase.NewOrderUsecase(
			orderRepo, ledgerRepo, portfolioRepo, policyRepo, auditRepo, clockRepo, txm, idGen),
		settlement: settlement,
		clock:      usecase.NewClockUsecase(clockRepo, settlement, txm),
		portfolio:  usecase.NewPortfolioUsecase(portfolioRepo),
		audit:      usecase.NewAuditUsecase(auditRepo),
	}

	ctx := context.Background()
	entities := usecase.NewEntityUsecase(entityRepo, policyRepo, txm)
	require.NoError(t, entities.Seed(ctx, testEntity, "Urban Threads Pvt Ltd", &domain.Policy{
		MinRating:             "A",
		MaxTenorDays:          364,
		ConcentrationCap:      decimal.NewFromFloat(0.25),
		MakerCheckerThreshold: decimal.NewFromInt(2_500_000),
	}))

	h.setClock(t, domain.NewDate(2025, time.March, 3))
	return h
}

func (h *harness) setClock(t *testing.T, date domain.Date) {
	t.Helper()
	ctx := context.Background()

	tx, err := h.txm.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, h.clockRepo.Save(ctx, tx, domain.NewClock(date, time.Now())))
	require.NoError(t, tx.Commit(ctx))
}

func (h *harness) addFunds(t *testing.T, amount int64) {
	t.Helper()

	_, err := h.funds.AddFunds(context.Background(), usecase.AddFundsInput{
		EntityID:  testEntity,
		Amount:    decimal.NewFromInt(amount),
		Method:    domain.MethodRTGS,
		Reference: "Working capital transfer",
		Actor:     testActor,
	})
	require.NoError(t, err)
}

func (h *harness) advanceDays(t *testing.T, n int) *usecase.AdvanceResult {
	t.Helper()

	var last *usecase.AdvanceResult
	for i := 0; i < n; i++ {
		result, err := h.clock.AdvanceDay(context.Background(), testEntity)
		require.NoError(t, err)
		last = result
	}
	return last
}

func (h *harness) ledgerEntries(t *testing.T) []*domain.LedgerEntry {
	t.Helper()

	entries, err := h.ledgerRepo.ListByEntity(context.Background(), testEntity)
	require.NoError(t, err)
	return entries
}

func (h *harness) findAudit(t *testing.T, action domain.AuditAction) *domain.AuditEntry {
	t.Helper()

	entries, err := h.audit.List(context.Background(), testEntity)
	require.NoError(t, err)
	for _, e := range entries {
		if e.Action == action {
			return e
		}
	}
	return nil
}

func (h *harness) findEntryByOrder(t *testing.T, orderID string) *domain.LedgerEntry {
	t.Helper()

	for _, e := range h.ledgerEntries(t) {
		if e.MatchedOrderID == orderID && e.Direction == domain.DirectionDebit {
			return e
		}
	}
	return nil
}
