package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

func createOrderInput(amount int64) usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		EntityID:       testEntity,
		InstrumentSlug: "axis-fd-91d",
		InstrumentName: "Axis Fixed Deposit 91d",
		Rating:         "AA",
		Amount:         decimal.NewFromInt(amount),
		ExpectedYield:  decimal.NewFromFloat(6.85),
		TenorDays:      91,
		Actor:          testActor,
	}
}

func TestCreateOrderUnderThresholdAutoSubmits(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 5_000_000)

	order, err := h.orders.CreateOrder(ctx, createOrderInput(1_000_000))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderSubmitted, order.Status)
	require.Len(t, order.Events, 1)
	assert.Equal(t, domain.OrderEventCreated, order.Events[0].Type)
	assert.True(t, order.Fee.Equal(decimal.NewFromInt(500)), "5 bps of 1M, got %s", order.Fee)

	// The submitted order has its In-Settlement debit mirror.
	entry := h.findEntryByOrder(t, order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, domain.StatusInSettlement, entry.Status)
	assert.Equal(t, domain.MethodInvestment, entry.Method)
	assert.Equal(t, "Investment in Axis Fixed Deposit 91d", entry.Reference)

	balances, err := h.funds.Balances(ctx, testEntity)
	require.NoError(t, err)
	assert.True(t, balances.Available.Equal(decimal.NewFromInt(4_000_000)))
	assert.True(t, balances.InSettlement.Equal(decimal.NewFromInt(1_000_000)))
}

func TestCreateOrderAboveThresholdWaitsForApproval(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 5_000_000)

	order, err := h.orders.CreateOrder(ctx, createOrderInput(3_000_000))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPendingApproval, order.Status)
	assert.Nil(t, h.findEntryByOrder(t, order.ID), "no cash may move before approval")

	balances, err := h.funds.Balances(ctx, testEntity)
	require.NoError(t, err)
	assert.True(t, balances.Available.Equal(decimal.NewFromInt(5_000_000)))
}

func TestApproveBooksDeferredDebit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 5_000_000)

	order, err := h.orders.CreateOrder(ctx, createOrderInput(3_000_000))
	require.NoError(t, err)

	approved, err := h.orders.Approve(ctx, usecase.ApproveOrderInput{
		EntityID: testEntity,
		OrderID:  order.ID,
		Approver: "checker@urban-threads.example",
		Comment:  "ok within mandate",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderSubmitted, approved.Status)
	require.Len(t, approved.Approvals, 1)
	assert.Equal(t, "checker@urban-threads.example", approved.Approvals[0].Approver)
	require.Len(t, approved.Events, 2)
	assert.Equal(t, domain.OrderEventApproved, approved.Events[1].Type)

	entry := h.findEntryByOrder(t, order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, domain.StatusInSettlement, entry.Status)
}

func TestRejectNeverTouchesCash(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 5_000_000)

	order, err := h.orders.CreateOrder(ctx, createOrderInput(3_000_000))
	require.NoError(t, err)

	rejected, err := h.orders.Reject(ctx, usecase.RejectOrderInput{
		EntityID: testEntity,
		OrderID:  order.ID,
		Actor:    "checker@urban-threads.example",
		Reason:   "tenor mismatch with cash forecast",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderRejected, rejected.Status)
	assert.True(t, rejected.IsTerminal())
	assert.Nil(t, h.findEntryByOrder(t, order.ID))

	// A rejected order can never settle, even after days pass.
	h.advanceDays(t, 5)
	got, err := h.orders.Get(ctx, testEntity, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRejected, got.Status)

	balances, err := h.funds.Balances(ctx, testEntity)
	require.NoError(t, err)
	assert.True(t, balances.Available.Equal(decimal.NewFromInt(5_000_000)))
}

func TestCreateOrderPolicyViolations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 10_000_000)

	input := createOrderInput(1_000_000)
	input.Rating = "BBB"
	input.TenorDays = 400

	_, err := h.orders.CreateOrder(ctx, input)
	var pvErr *domain.PolicyViolationError
	require.ErrorAs(t, err, &pvErr)
	assert.Len(t, pvErr.Violations, 2)

	orders, err := h.orders.List(ctx, testEntity)
	require.NoError(t, err)
	assert.Empty(t, orders, "violating order must not be persisted")
}

func TestCreateOrderConcentrationCap(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 20_000_000)

	// Establish a book across two instruments, settled into holdings.
	_, err := h.orders.CreateOrder(ctx, createOrderInput(1_000_000))
	require.NoError(t, err)
	other := createOrderInput(2_000_000)
	other.InstrumentSlug = "hdfc-td-182d"
	other.InstrumentName = "HDFC Term Deposit 182d"
	other.TenorDays = 182
	_, err = h.orders.CreateOrder(ctx, other)
	require.NoError(t, err)
	_, err = h.settlement.Run(ctx, testEntity)
	require.NoError(t, err)

	// Another 1M into the first instrument would be 2M of a 4M book, over
	// the 25% cap.
	_, err = h.orders.CreateOrder(ctx, createOrderInput(1_000_000))
	var pvErr *domain.PolicyViolationError
	require.ErrorAs(t, err, &pvErr)
}

func TestCreateOrderInsufficientFunds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 500_000)

	_, err := h.orders.CreateOrder(ctx, createOrderInput(1_000_000))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestCreateOrderSettlementDateInPast(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 5_000_000)

	input := createOrderInput(1_000_000)
	input.SettlementDate = domain.NewDate(2025, 3, 1)

	_, err := h.orders.CreateOrder(ctx, input)
	assert.ErrorIs(t, err, domain.ErrSettlementDateInPast)
}

func TestGetOrderScopedToEntity(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 5_000_000)

	order, err := h.orders.CreateOrder(ctx, createOrderInput(1_000_000))
	require.NoError(t, err)

	_, err = h.orders.Get(ctx, "someone-else", order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
