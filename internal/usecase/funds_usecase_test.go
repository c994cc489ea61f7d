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

func TestAddFunds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	entry, err := h.funds.AddFunds(ctx, usecase.AddFundsInput{
		EntityID:  testEntity,
		Amount:    decimal.NewFromInt(5_000_000),
		Method:    domain.MethodUPI,
		Reference: "Seed capital",
		Actor:     testActor,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCredited, entry.Status)
	assert.Equal(t, domain.DirectionCredit, entry.Direction)

	balances, err := h.funds.Balances(ctx, testEntity)
	require.NoError(t, err)
	assert.True(t, balances.Available.Equal(decimal.NewFromInt(5_000_000)),
		"available = %s", balances.Available)

	audits, err := h.audit.List(ctx, testEntity)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, domain.AuditFundsAdded, audits[0].Action)
	assert.Equal(t, testActor, audits[0].Actor)
}

func TestAddFundsValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.funds.AddFunds(ctx, usecase.AddFundsInput{
		EntityID: testEntity,
		Amount:   decimal.NewFromInt(-100),
		Method:   domain.MethodUPI,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = h.funds.AddFunds(ctx, usecase.AddFundsInput{
		EntityID: testEntity,
		Amount:   decimal.NewFromInt(100),
		Method:   domain.MethodMaturity,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)

	// Nothing may have been persisted by the failed attempts.
	entries, err := h.funds.ListLedger(ctx, testEntity)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWithdraw(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 1_000_000)

	entry, err := h.funds.Withdraw(ctx, usecase.WithdrawFundsInput{
		EntityID:  testEntity,
		Amount:    decimal.NewFromInt(400_000),
		Reference: "Vendor payout",
		Actor:     testActor,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDebited, entry.Status)

	balances, err := h.funds.Balances(ctx, testEntity)
	require.NoError(t, err)
	assert.True(t, balances.Available.Equal(decimal.NewFromInt(600_000)),
		"available = %s", balances.Available)
}

func TestWithdrawRejectsOverdraft(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 100_000)

	_, err := h.funds.Withdraw(ctx, usecase.WithdrawFundsInput{
		EntityID: testEntity,
		Amount:   decimal.NewFromInt(100_001),
		Actor:    testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	balances, err := h.funds.Balances(ctx, testEntity)
	require.NoError(t, err)
	assert.True(t, balances.Available.Equal(decimal.NewFromInt(100_000)))
}

func TestWithdrawRejectsNonPositiveAmount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 100_000)

	_, err := h.funds.Withdraw(ctx, usecase.WithdrawFundsInput{
		EntityID: testEntity,
		Amount:   decimal.Zero,
		Actor:    testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestListLedgerNewestFirst(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addFunds(t, 100)
	h.addFunds(t, 200)

	entries, err := h.funds.ListLedger(ctx, testEntity)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(200)),
		"newest entry first, got %s", entries[0].Amount)
}
