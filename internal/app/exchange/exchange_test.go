package exchange

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	exchangev1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/exchange/v1"
	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	matchpublisherv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/match-publisher/v1"
	matchpublisherv1_mock "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/match-publisher/v1/mock"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	orderbookv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/orderbook/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/ledger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/market"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/orderstore"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/settlement"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	pgmock "github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/postgresql/mock"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pairWETH = "WETH/USDC"
	treasury = "treasury"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type fixture struct {
	exchange *Exchange
	orders   *orderstore.Store
	ledger   *ledger.Memory
	engine   *settlement.Engine
}

type fixtureOption func(*Dependencies)

func withPublisher(p matchpublisherv1.MatchPublisher) fixtureOption {
	return func(d *Dependencies) { d.Publisher = p }
}

// testingT is satisfied by both *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

func newFixture(t testingT, fees settlementv1.FeeConfig, opts ...fixtureOption) *fixture {
	t.Helper()

	log := logger.NewNop()
	registry, err := market.NewRegistry(marketv1.Pair{Base: "WETH", Quote: "USDC"})
	require.NoError(t, err)

	orders := orderstore.NewStore(registry, log)
	led := ledger.NewMemory(log)
	if fees.Recipient == "" {
		fees.Recipient = treasury
	}
	engine, err := settlement.NewEngine(orders, led, settlement.NewMemoryProcessed(), fees, log)
	require.NoError(t, err)

	deps := Dependencies{Pairs: registry, Orders: orders, Settlement: engine}
	for _, opt := range opts {
		opt(&deps)
	}

	return &fixture{
		exchange: NewExchange(deps, []string{"admin"}, log),
		orders:   orders,
		ledger:   led,
		engine:   engine,
	}
}

func as(trader string) context.Context {
	return util.WithActorID(context.Background(), trader)
}

func (f *fixture) fund(t *testing.T, trader, token string, amount int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.ledger.Deposit(ctx, trader, token, d(amount)))
	allowance, err := f.ledger.AllowanceOf(ctx, trader, token)
	require.NoError(t, err)
	require.NoError(t, f.ledger.Approve(ctx, trader, token, allowance.Add(d(amount))))
}

func (f *fixture) balance(t *testing.T, trader, token string) int64 {
	t.Helper()
	b, err := f.ledger.BalanceOf(context.Background(), trader, token)
	require.NoError(t, err)
	return b.IntPart()
}

func (f *fixture) order(t *testing.T, id uint64) *orderv1.Order {
	t.Helper()
	o, err := f.exchange.GetOrder(context.Background(), id)
	require.NoError(t, err)
	return o
}

func (f *fixture) rest(t *testing.T, trader string, side orderv1.Side, price, qty int64) uint64 {
	t.Helper()
	res, err := f.exchange.PlaceLimit(as(trader), pairWETH, side, d(price), d(qty))
	require.NoError(t, err)
	require.Equal(t, orderv1.StatusOpen, res.Status)
	return res.OrderID
}

// levels renders depth as strings so equal books compare equal regardless of
// the internal representation of their decimals.
func levels(depth orderbookv1.Depth) []string {
	out := make([]string, 0, len(depth.Bids)+len(depth.Asks))
	for _, l := range depth.Bids {
		out = append(out, fmt.Sprintf("bid %s x %s (%d)", l.Price, l.Quantity, l.Orders))
	}
	for _, l := range depth.Asks {
		out = append(out, fmt.Sprintf("ask %s x %s (%d)", l.Price, l.Quantity, l.Orders))
	}
	return out
}

func TestScenarioA_LimitAgainstLimit(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "alice", "WETH", 10)
	f.fund(t, "bob", "USDC", 1000)

	sell := f.rest(t, "alice", orderv1.SideSell, 100, 10)

	res, err := f.exchange.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(10))
	require.NoError(t, err)

	assert.Equal(t, orderv1.StatusFilled, res.Status)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, sell, res.Trades[0].MakerID)
	assert.True(t, d(10).Equal(res.Trades[0].Quantity))
	assert.True(t, d(100).Equal(res.Trades[0].Price))
	assert.True(t, d(1000).Equal(res.FilledQuote))

	assert.Equal(t, orderv1.StatusFilled, f.order(t, sell).Status)
	assert.Equal(t, int64(10), f.balance(t, "bob", "WETH"))
	assert.Equal(t, int64(1000), f.balance(t, "alice", "USDC"))

	depth, err := f.exchange.GetBookDepth(context.Background(), pairWETH, 0)
	require.NoError(t, err)
	assert.Empty(t, depth.Bids)
	assert.Empty(t, depth.Asks)
}

func TestScenarioB_MarketBuyWithinBudget(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "s1", "WETH", 5)
	f.fund(t, "s2", "WETH", 5)
	f.fund(t, "buyer", "USDC", 600)

	maker1 := f.rest(t, "s1", orderv1.SideSell, 100, 5)
	maker2 := f.rest(t, "s2", orderv1.SideSell, 110, 5)

	res, err := f.exchange.PlaceMarket(as("buyer"), pairWETH, orderv1.SideBuy, d(600))
	require.NoError(t, err)

	assert.Equal(t, orderv1.StatusPartiallyFilled, res.Status)
	require.Len(t, res.Trades, 1)
	assert.True(t, d(5).Equal(res.Filled))
	assert.True(t, d(100).Equal(res.Trades[0].Price))

	assert.Equal(t, orderv1.StatusFilled, f.order(t, maker1).Status)
	assert.Equal(t, orderv1.StatusOpen, f.order(t, maker2).Status)

	taker := f.order(t, res.OrderID)
	assert.True(t, d(500).Equal(taker.Filled), "market buy fill tracks quote spent")
	assert.Equal(t, int64(100), f.balance(t, "buyer", "USDC"))

	depth, err := f.exchange.GetBookDepth(context.Background(), pairWETH, 0)
	require.NoError(t, err)
	assert.Empty(t, depth.Bids, "market orders never rest")
	require.Len(t, depth.Asks, 1)
	assert.True(t, d(110).Equal(depth.Asks[0].Price))
}

func TestScenarioC_IOCCancelsRemainder(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "alice", "WETH", 10)
	f.fund(t, "bob", "USDC", 1500)

	maker := f.rest(t, "alice", orderv1.SideSell, 100, 10)

	res, err := f.exchange.PlaceIOC(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(15))
	require.NoError(t, err)

	assert.Equal(t, orderv1.StatusCanceled, res.Status)
	assert.True(t, d(10).Equal(res.Filled))
	assert.Equal(t, orderv1.StatusFilled, f.order(t, maker).Status)

	taker := f.order(t, res.OrderID)
	assert.Equal(t, orderv1.StatusCanceled, taker.Status)
	assert.True(t, d(10).Equal(taker.Filled))
	assert.False(t, f.exchange.markets[pairWETH].book.Contains(res.OrderID))
}

func TestScenarioD_FOKWithoutLiquidity(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "alice", "WETH", 10)
	f.fund(t, "bob", "USDC", 1500)

	maker := f.rest(t, "alice", orderv1.SideSell, 100, 10)

	res, err := f.exchange.PlaceFOK(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(15))
	require.NoError(t, err)

	assert.Equal(t, orderv1.StatusCanceled, res.Status)
	assert.True(t, res.Filled.IsZero())
	assert.Empty(t, res.Trades)

	taker := f.order(t, res.OrderID)
	assert.True(t, taker.Filled.IsZero())
	assert.Equal(t, orderv1.StatusOpen, f.order(t, maker).Status)
	assert.Equal(t, int64(1500), f.balance(t, "bob", "USDC"))

	// enough liquidity fills completely
	res, err = f.exchange.PlaceFOK(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(10))
	require.NoError(t, err)
	assert.Equal(t, orderv1.StatusFilled, res.Status)
	assert.True(t, d(10).Equal(res.Filled))
}

func TestScenarioE_FeesOnNotional(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{MakerBps: 10, TakerBps: 20})
	f.fund(t, "seller", "WETH", 10_000)
	f.fund(t, "buyer", "USDC", 1_002_000)

	f.rest(t, "seller", orderv1.SideSell, 100, 10_000)

	res, err := f.exchange.PlaceLimit(as("buyer"), pairWETH, orderv1.SideBuy, d(100), d(10_000))
	require.NoError(t, err)
	require.Equal(t, orderv1.StatusFilled, res.Status)

	breakdown := settlement.Compute(res.Trades[0], f.order(t, res.OrderID), f.order(t, res.Trades[0].MakerID), f.exchange.FeeConfig())
	assert.True(t, d(1_000_000).Equal(breakdown.Notional))
	assert.True(t, d(1_000).Equal(breakdown.MakerFee))
	assert.True(t, d(2_000).Equal(breakdown.TakerFee))

	assert.Equal(t, int64(0), f.balance(t, "buyer", "USDC"))
	assert.Equal(t, int64(10_000), f.balance(t, "buyer", "WETH"))
	assert.Equal(t, int64(999_000), f.balance(t, "seller", "USDC"))
	assert.Equal(t, int64(3_000), f.balance(t, treasury, "USDC"))
}

func TestPlace_TransferFailureRollsBackEverything(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "alice", "WETH", 10)
	f.fund(t, "bob", "USDC", 400)

	maker := f.rest(t, "alice", orderv1.SideSell, 100, 10)
	before := levels(f.exchange.markets[pairWETH].book.Depth(0))

	_, err := f.exchange.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, settlementv1.ErrTransferFailed))

	assert.Equal(t, before, levels(f.exchange.markets[pairWETH].book.Depth(0)))
	assert.NoError(t, f.exchange.markets[pairWETH].book.Validate())

	m := f.order(t, maker)
	assert.Equal(t, orderv1.StatusOpen, m.Status)
	assert.True(t, m.Filled.IsZero())

	_, err = f.exchange.GetOrder(context.Background(), maker+1)
	assert.True(t, errors.Is(err, orderv1.ErrNotFound))

	assert.Equal(t, int64(10), f.balance(t, "alice", "WETH"))
	assert.Equal(t, int64(0), f.balance(t, "bob", "WETH"))
	assert.Equal(t, int64(400), f.balance(t, "bob", "USDC"))

	// the id of the rolled back order is not reused
	next := f.rest(t, "carol", orderv1.SideBuy, 90, 1)
	assert.Equal(t, maker+2, next)
}

func TestPlace_PartialSettlementOfManyMakersRollsBack(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "s1", "WETH", 5)
	f.fund(t, "s2", "WETH", 5)
	f.fund(t, "bob", "USDC", 700)

	f.rest(t, "s1", orderv1.SideSell, 100, 5)
	f.rest(t, "s2", orderv1.SideSell, 100, 5)

	// first maker settles, second runs out of funds
	_, err := f.exchange.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(10))
	require.Error(t, err)

	assert.Equal(t, int64(5), f.balance(t, "s1", "WETH"))
	assert.Equal(t, int64(0), f.balance(t, "s1", "USDC"))
	assert.Equal(t, int64(700), f.balance(t, "bob", "USDC"))

	depth := f.exchange.markets[pairWETH].book.Depth(0)
	require.Len(t, depth.Asks, 1)
	assert.True(t, d(10).Equal(depth.Asks[0].Quantity))
	assert.Equal(t, 2, depth.Asks[0].Orders)
}

func TestPlace_SelfTradeIsSkipped(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "alice", "WETH", 10)
	f.fund(t, "alice", "USDC", 1000)
	f.fund(t, "bob", "WETH", 4)

	f.rest(t, "alice", orderv1.SideSell, 100, 6)
	other := f.rest(t, "bob", orderv1.SideSell, 100, 4)

	res, err := f.exchange.PlaceLimit(as("alice"), pairWETH, orderv1.SideBuy, d(100), d(10))
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	assert.Equal(t, other, res.Trades[0].MakerID)
	assert.Equal(t, orderv1.StatusPartiallyFilled, res.Status)
	assert.True(t, f.exchange.markets[pairWETH].book.Contains(res.OrderID))
}

func TestPlace_MarketOrders(t *testing.T) {
	t.Run("sell without liquidity is canceled", func(t *testing.T) {
		f := newFixture(t, settlementv1.FeeConfig{})
		res, err := f.exchange.PlaceMarket(as("alice"), pairWETH, orderv1.SideSell, d(5))
		require.NoError(t, err)
		assert.Equal(t, orderv1.StatusCanceled, res.Status)
		assert.True(t, res.Filled.IsZero())
	})

	t.Run("sell walks bids at any price", func(t *testing.T) {
		f := newFixture(t, settlementv1.FeeConfig{})
		f.fund(t, "b1", "USDC", 500)
		f.fund(t, "b2", "USDC", 500)
		f.fund(t, "alice", "WETH", 8)
		f.rest(t, "b1", orderv1.SideBuy, 100, 5)
		f.rest(t, "b2", orderv1.SideBuy, 90, 5)

		res, err := f.exchange.PlaceMarket(as("alice"), pairWETH, orderv1.SideSell, d(8))
		require.NoError(t, err)
		assert.Equal(t, orderv1.StatusFilled, res.Status)
		require.Len(t, res.Trades, 2)
		assert.True(t, d(100).Equal(res.Trades[0].Price))
		assert.True(t, d(90).Equal(res.Trades[1].Price))
		assert.Equal(t, int64(770), f.balance(t, "alice", "USDC"))
	})

	t.Run("price is rejected", func(t *testing.T) {
		f := newFixture(t, settlementv1.FeeConfig{})
		_, err := f.exchange.place(as("alice"), orderv1.CreateRequest{Pair: pairWETH, Side: orderv1.SideBuy, Type: orderv1.TypeMarket, Price: d(1), Quantity: d(5)})
		assert.True(t, errors.ErrorCodeEquals(err, string(errors.InvalidInput)))
	})
}

func TestPlace_Rejections(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})

	testCases := []struct {
		name     string
		ctx      context.Context
		pair     string
		price    int64
		qty      int64
		wantCode errors.ErrorCode
	}{
		{name: "no caller", ctx: context.Background(), pair: pairWETH, price: 100, qty: 1, wantCode: errors.Unauthorized},
		{name: "unknown pair", ctx: as("alice"), pair: "WBTC/USDC", price: 100, qty: 1, wantCode: errors.InvalidInput},
		{name: "zero price", ctx: as("alice"), pair: pairWETH, price: 0, qty: 1, wantCode: errors.InvalidInput},
		{name: "zero quantity", ctx: as("alice"), pair: pairWETH, price: 100, qty: 0, wantCode: errors.InvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.exchange.PlaceLimit(tc.ctx, tc.pair, orderv1.SideBuy, d(tc.price), d(tc.qty))
			assert.Equal(t, tc.wantCode, errors.CodeOf(err))
		})
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	id := f.rest(t, "alice", orderv1.SideSell, 100, 10)

	err := f.exchange.Cancel(as("mallory"), id)
	assert.True(t, errors.Is(err, exchangev1.ErrUnauthorized))
	assert.True(t, f.exchange.markets[pairWETH].book.Contains(id))

	require.NoError(t, f.exchange.Cancel(as("alice"), id))
	assert.Equal(t, orderv1.StatusCanceled, f.order(t, id).Status)
	assert.False(t, f.exchange.markets[pairWETH].book.Contains(id))

	err = f.exchange.Cancel(as("alice"), id)
	assert.True(t, errors.Is(err, orderv1.ErrInvalidTransition))

	err = f.exchange.Cancel(as("alice"), 999)
	assert.True(t, errors.Is(err, orderv1.ErrNotFound))
}

func TestCancel_KeepsPartialFill(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "alice", "WETH", 10)
	f.fund(t, "bob", "USDC", 400)

	id := f.rest(t, "alice", orderv1.SideSell, 100, 10)
	_, err := f.exchange.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(4))
	require.NoError(t, err)

	require.NoError(t, f.exchange.Cancel(as("alice"), id))
	o := f.order(t, id)
	assert.Equal(t, orderv1.StatusCanceled, o.Status)
	assert.True(t, d(4).Equal(o.Filled))
}

func TestAdministration(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})

	_, err := f.exchange.AddSupportedPair(as("alice"), "WBTC", "USDC", 8)
	assert.True(t, errors.Is(err, exchangev1.ErrUnauthorized))

	pair, err := f.exchange.AddSupportedPair(as("admin"), "WBTC", "USDC", 8)
	require.NoError(t, err)
	assert.Equal(t, "WBTC/USDC", pair.Symbol())
	assert.Len(t, f.exchange.Pairs(), 2)

	_, err = f.exchange.AddSupportedPair(as("admin"), "WBTC", "USDC", 8)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.InvalidInput)))

	_, err = f.exchange.PlaceLimit(as("alice"), "WBTC/USDC", orderv1.SideBuy, d(100), d(1))
	require.NoError(t, err)

	assert.True(t, errors.Is(f.exchange.SetFeeRates(as("alice"), 1, 1), exchangev1.ErrUnauthorized))
	require.NoError(t, f.exchange.SetFeeRates(as("admin"), 5, 7))
	assert.Equal(t, uint32(5), f.exchange.FeeConfig().MakerBps)
	assert.Equal(t, uint32(7), f.exchange.FeeConfig().TakerBps)
	assert.Error(t, f.exchange.SetFeeRates(as("admin"), 10_001, 0))

	assert.True(t, errors.Is(f.exchange.SetFeeRecipient(as("alice"), "x"), exchangev1.ErrUnauthorized))
	require.NoError(t, f.exchange.SetFeeRecipient(as("admin"), "dao"))
	assert.Equal(t, "dao", f.exchange.FeeConfig().Recipient)
}

func TestPublish_AfterCommitOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := matchpublisherv1_mock.NewMockMatchPublisher(ctrl)
	f := newFixture(t, settlementv1.FeeConfig{}, withPublisher(publisher))
	f.fund(t, "alice", "WETH", 10)
	f.fund(t, "bob", "USDC", 500)

	f.rest(t, "alice", orderv1.SideSell, 100, 10)

	publisher.EXPECT().PublishTradeEvents(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, events ...*matchpublisherv1.TradeEvent) error {
			require.Len(t, events, 1)
			assert.Equal(t, pairWETH, events[0].Pair)
			assert.Equal(t, orderv1.SideBuy, events[0].TakerSide)
			assert.True(t, d(500).Equal(events[0].QuoteQuantity))
			return fmt.Errorf("broker down")
		})

	// a failed publish does not undo the committed trade
	res, err := f.exchange.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(5))
	require.NoError(t, err)
	assert.Equal(t, orderv1.StatusFilled, res.Status)

	// a failed unit publishes nothing
	_, err = f.exchange.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(5))
	require.Error(t, err)
}

func TestUnit_DatabaseTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tx := pgmock.NewMockTransaction(ctrl)
	f := newFixture(t, settlementv1.FeeConfig{}, func(d *Dependencies) { d.Transaction = tx })
	f.fund(t, "alice", "WETH", 10)

	gomock.InOrder(
		tx.EXPECT().Begin(gomock.Any()).DoAndReturn(func(ctx context.Context) (context.Context, error) { return ctx, nil }),
		tx.EXPECT().Commit(gomock.Any()).Return(nil),
	)
	f.rest(t, "alice", orderv1.SideSell, 100, 10)

	gomock.InOrder(
		tx.EXPECT().Begin(gomock.Any()).DoAndReturn(func(ctx context.Context) (context.Context, error) { return ctx, nil }),
		tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
	_, err := f.exchange.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(10))
	assert.True(t, errors.Is(err, settlementv1.ErrTransferFailed))

	tx.EXPECT().Begin(gomock.Any()).DoAndReturn(func(ctx context.Context) (context.Context, error) { return ctx, nil })
	tx.EXPECT().Commit(gomock.Any()).Return(fmt.Errorf("serialization failure"))
	_, err = f.exchange.PlaceLimit(as("carol"), pairWETH, orderv1.SideBuy, d(90), d(1))
	require.Error(t, err)

	depth := f.exchange.markets[pairWETH].book.Depth(0)
	assert.Empty(t, depth.Bids, "a failed commit reverts the book")

	tx.EXPECT().Begin(gomock.Any()).Return(nil, fmt.Errorf("pool exhausted"))
	_, err = f.exchange.PlaceLimit(as("carol"), pairWETH, orderv1.SideBuy, d(90), d(1))
	require.Error(t, err)
}

func TestSnapshotRestore(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "alice", "WETH", 10)
	f.fund(t, "bob", "USDC", 1000)

	f.rest(t, "alice", orderv1.SideSell, 100, 10)
	f.rest(t, "bob", orderv1.SideBuy, 90, 3)
	_, err := f.exchange.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(4))
	require.NoError(t, err)

	snapshot, err := f.exchange.Snapshot(context.Background(), pairWETH)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), snapshot.LastOrderID)
	assert.Len(t, snapshot.Orders, 2)

	restored := newFixture(t, settlementv1.FeeConfig{})
	require.NoError(t, restored.exchange.Restore(context.Background(), snapshot))

	assert.Equal(t,
		levels(f.exchange.markets[pairWETH].book.Depth(0)),
		levels(restored.exchange.markets[pairWETH].book.Depth(0)))

	next := restored.rest(t, "carol", orderv1.SideBuy, 80, 1)
	assert.Equal(t, uint64(4), next)

	_, err = restored.exchange.Snapshot(context.Background(), "WBTC/USDC")
	assert.Error(t, err)
	assert.Error(t, restored.exchange.Restore(context.Background(), nil))
}

func TestRecover_RebuildsBooksFromJournal(t *testing.T) {
	f := newFixture(t, settlementv1.FeeConfig{})
	f.fund(t, "alice", "WETH", 10)
	f.fund(t, "bob", "USDC", 1000)

	f.rest(t, "alice", orderv1.SideSell, 100, 10)
	f.rest(t, "bob", orderv1.SideBuy, 90, 3)
	_, err := f.exchange.PlaceLimit(as("bob"), pairWETH, orderv1.SideBuy, d(100), d(4))
	require.NoError(t, err)

	var resting []*orderv1.Order
	for _, id := range []uint64{1, 2} {
		resting = append(resting, f.order(t, id))
	}

	restored := newFixture(t, settlementv1.FeeConfig{})
	// a stale book from an older snapshot is replaced
	restored.fund(t, "dave", "WETH", 1)
	restored.rest(t, "dave", orderv1.SideSell, 120, 1)
	restored.orders.AdvanceID(3)
	require.NoError(t, restored.exchange.Recover(context.Background(), resting))

	assert.Equal(t,
		levels(f.exchange.markets[pairWETH].book.Depth(0)),
		levels(restored.exchange.markets[pairWETH].book.Depth(0)))
	assert.NoError(t, restored.exchange.markets[pairWETH].book.Validate())

	m := restored.order(t, 1)
	assert.Equal(t, orderv1.StatusPartiallyFilled, m.Status)
	assert.True(t, d(4).Equal(m.Filled))

	require.NoError(t, restored.exchange.Cancel(as("bob"), 2))

	orphan := &orderv1.Order{ID: 9, Trader: "erin", Pair: marketv1.Pair{Base: "WBTC", Quote: "USDC"}, Side: orderv1.SideSell,
		Type: orderv1.TypeLimit, Price: d(1), Quantity: d(1), Filled: decimal.Zero, Status: orderv1.StatusOpen}
	err = restored.exchange.Recover(context.Background(), []*orderv1.Order{orphan})
	assert.True(t, errors.Is(err, marketv1.ErrUnsupportedPair))
}
