package ledger

import (
	"context"
	"testing"

	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/undo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal, err error) {
	t.Helper()
	require.NoError(t, err)
	assert.True(t, d(want).Equal(got), "want %d got %s", want, got)
}

func TestMemory_Transfer(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		balance   int64
		allowance int64
		amount    decimal.Decimal
		wantErr   error
	}{
		{name: "success", balance: 100, allowance: 100, amount: d(40)},
		{name: "exact balance", balance: 40, allowance: 100, amount: d(40)},
		{name: "short balance", balance: 39, allowance: 100, amount: d(40), wantErr: settlementv1.ErrInsufficientFunds},
		{name: "short allowance", balance: 100, allowance: 39, amount: d(40), wantErr: settlementv1.ErrInsufficientFunds},
		{name: "zero amount", balance: 100, allowance: 100, amount: d(0), wantErr: errors.New(errors.InvalidInput, "", "")},
		{name: "fractional amount", balance: 100, allowance: 100, amount: decimal.RequireFromString("0.5"), wantErr: errors.New(errors.InvalidInput, "", "")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewMemory(logger.NewNop())
			require.NoError(t, l.Deposit(ctx, "alice", "USDC", d(tc.balance)))
			require.NoError(t, l.Approve(ctx, "alice", "USDC", d(tc.allowance)))

			err := l.Transfer(ctx, "USDC", "alice", "bob", tc.amount)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				bal, err := l.BalanceOf(ctx, "alice", "USDC")
				assertAmount(t, tc.balance, bal, err)
				return
			}
			require.NoError(t, err)

			bal, err := l.BalanceOf(ctx, "alice", "USDC")
			assertAmount(t, tc.balance-tc.amount.IntPart(), bal, err)
			bal, err = l.BalanceOf(ctx, "bob", "USDC")
			assertAmount(t, tc.amount.IntPart(), bal, err)
			allowance, err := l.AllowanceOf(ctx, "alice", "USDC")
			assertAmount(t, tc.allowance-tc.amount.IntPart(), allowance, err)
		})
	}
}

func TestMemory_Rollback(t *testing.T) {
	base := context.Background()
	l := NewMemory(logger.NewNop())
	require.NoError(t, l.Deposit(base, "alice", "USDC", d(100)))
	require.NoError(t, l.Approve(base, "alice", "USDC", d(100)))

	log := undo.New()
	ctx := undo.WithLog(base, log)
	require.NoError(t, l.Transfer(ctx, "USDC", "alice", "bob", d(30)))
	require.NoError(t, l.Transfer(ctx, "USDC", "alice", "carol", d(20)))
	require.NoError(t, l.Deposit(ctx, "dave", "WETH", d(1)))
	log.Rollback()

	bal, err := l.BalanceOf(base, "alice", "USDC")
	assertAmount(t, 100, bal, err)
	bal, err = l.BalanceOf(base, "bob", "USDC")
	assertAmount(t, 0, bal, err)
	bal, err = l.BalanceOf(base, "dave", "WETH")
	assertAmount(t, 0, bal, err)
	allowance, err := l.AllowanceOf(base, "alice", "USDC")
	assertAmount(t, 100, allowance, err)
}

func TestMemory_RollbackKeepsInterleavedCommits(t *testing.T) {
	base := context.Background()
	l := NewMemory(logger.NewNop())
	require.NoError(t, l.Deposit(base, "bob", "USDC", d(100)))
	require.NoError(t, l.Approve(base, "bob", "USDC", d(100)))

	unitA, unitB := undo.New(), undo.New()
	require.NoError(t, l.Transfer(undo.WithLog(base, unitA), "USDC", "bob", "alice", d(50)))
	require.NoError(t, l.Transfer(undo.WithLog(base, unitB), "USDC", "bob", "carol", d(30)))
	require.NoError(t, l.Approve(undo.WithLog(base, unitB), "carol", "USDC", d(10)))
	unitB.Commit(base)
	unitA.Rollback()

	bal, err := l.BalanceOf(base, "bob", "USDC")
	assertAmount(t, 70, bal, err)
	bal, err = l.BalanceOf(base, "alice", "USDC")
	assertAmount(t, 0, bal, err)
	bal, err = l.BalanceOf(base, "carol", "USDC")
	assertAmount(t, 30, bal, err)
	allowance, err := l.AllowanceOf(base, "bob", "USDC")
	assertAmount(t, 70, allowance, err)
	allowance, err = l.AllowanceOf(base, "carol", "USDC")
	assertAmount(t, 10, allowance, err)
}

func TestMemory_Validation(t *testing.T) {
	ctx := context.Background()
	l := NewMemory(logger.NewNop())

	assert.True(t, errors.ErrorCodeEquals(l.Deposit(ctx, "", "USDC", d(1)), string(errors.InvalidInput)))
	assert.True(t, errors.ErrorCodeEquals(l.Deposit(ctx, "alice", "", d(1)), string(errors.InvalidInput)))
	assert.True(t, errors.ErrorCodeEquals(l.Deposit(ctx, "alice", "USDC", d(-1)), string(errors.InvalidInput)))
	assert.True(t, errors.ErrorCodeEquals(l.Approve(ctx, "alice", "USDC", d(-1)), string(errors.InvalidInput)))
	assert.NoError(t, l.Approve(ctx, "alice", "USDC", d(0)))
	assert.True(t, errors.ErrorCodeEquals(l.Transfer(ctx, "USDC", "alice", "", d(1)), string(errors.InvalidInput)))
}
