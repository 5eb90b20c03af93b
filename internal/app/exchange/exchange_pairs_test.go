package exchange

import (
	"context"
	"fmt"
	"testing"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/ledger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/market"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/orderstore"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/settlement"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pairWBTC = "WBTC/USDC"

// gatedLedger parks the first USDC transfer to frozen until release is closed,
// then fails it.
type gatedLedger struct {
	*ledger.Memory
	frozen  string
	reached chan struct{}
	release chan struct{}
}

func (g *gatedLedger) Transfer(ctx context.Context, token, from, to string, amount decimal.Decimal) error {
	if token == "USDC" && to == g.frozen {
		close(g.reached)
		<-g.release
		return fmt.Errorf("%w: %s is frozen", settlementv1.ErrInsufficientFunds, to)
	}
	return g.Memory.Transfer(ctx, token, from, to, amount)
}

func TestPlace_RollbackKeepsCommitsOfOtherPairs(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	registry, err := market.NewRegistry(
		marketv1.Pair{Base: "WETH", Quote: "USDC"},
		marketv1.Pair{Base: "WBTC", Quote: "USDC"},
	)
	require.NoError(t, err)

	orders := orderstore.NewStore(registry, log)
	bank := &gatedLedger{
		Memory:  ledger.NewMemory(log),
		frozen:  "erin",
		reached: make(chan struct{}),
		release: make(chan struct{}),
	}
	engine, err := settlement.NewEngine(orders, bank, settlement.NewMemoryProcessed(), settlementv1.FeeConfig{Recipient: treasury}, log)
	require.NoError(t, err)
	ex := NewExchange(Dependencies{Pairs: registry, Orders: orders, Settlement: engine}, []string{"admin"}, log)

	fund := func(trader, token string, amount int64) {
		require.NoError(t, bank.Deposit(ctx, trader, token, d(amount)))
		require.NoError(t, bank.Approve(ctx, trader, token, d(amount)))
	}
	balance := func(trader, token string) int64 {
		b, err := bank.BalanceOf(ctx, trader, token)
		require.NoError(t, err)
		return b.IntPart()
	}

	fund("alice", "WETH", 5)
	fund("erin", "WETH", 5)
	fund("carol", "WBTC", 1)
	fund("bob", "USDC", 1000)

	_, err = ex.PlaceLimit(as("alice"), pairWETH, orderv1.SideSell, d(50), d(5))
	require.NoError(t, err)
	_, err = ex.PlaceLimit(as("erin"), pairWETH, orderv1.SideSell, d(50), d(5))
	require.NoError(t, err)
	_, err = ex.PlaceLimit(as("carol"), pairWBTC, orderv1.SideSell, d(300), d(1))
	require.NoError(t, err)

	// bob pays alice 250 on WETH/USDC, then parks on erin's leg
	failed := make(chan error, 1)
	go func() {
		_, err := ex.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(50), d(10))
		failed <- err
	}()
	<-bank.reached

	// meanwhile bob buys on WBTC/USDC and that unit commits
	res, err := ex.PlaceLimit(as("bob"), pairWBTC, orderv1.SideBuy, d(300), d(1))
	require.NoError(t, err)
	assert.Equal(t, orderv1.StatusFilled, res.Status)

	close(bank.release)
	err = <-failed
	require.Error(t, err)
	assert.True(t, errors.Is(err, settlementv1.ErrTransferFailed))

	assert.Equal(t, int64(700), balance("bob", "USDC"))
	assert.Equal(t, int64(1), balance("bob", "WBTC"))
	assert.Equal(t, int64(0), balance("bob", "WETH"))
	assert.Equal(t, int64(0), balance("alice", "USDC"))
	assert.Equal(t, int64(5), balance("alice", "WETH"))
	assert.Equal(t, int64(300), balance("carol", "USDC"))
	assert.Equal(t, int64(1000), balance("bob", "USDC")+balance("alice", "USDC")+balance("erin", "USDC")+balance("carol", "USDC"))

	allowance, err := bank.AllowanceOf(ctx, "bob", "USDC")
	require.NoError(t, err)
	assert.True(t, d(700).Equal(allowance), "bob allowance %s", allowance)

	depth, err := ex.GetBookDepth(ctx, pairWETH, 0)
	require.NoError(t, err)
	require.Len(t, depth.Asks, 1)
	assert.True(t, d(10).Equal(depth.Asks[0].Quantity))
	assert.Empty(t, depth.Bids)
}
