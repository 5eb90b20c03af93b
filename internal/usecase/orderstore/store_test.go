package orderstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	orderv1_mock "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1/mock"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/market"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/undo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	reg, err := market.NewRegistry(marketv1.Pair{Base: "WETH", Quote: "USDC", BaseDecimals: 0})
	require.NoError(t, err)
	opts = append(opts, WithClock(func() time.Time { return fixedNow }))
	return NewStore(reg, logger.NewNop(), opts...)
}

func limitReq(trader string, side orderv1.Side, price, qty int64) orderv1.CreateRequest {
	return orderv1.CreateRequest{
		Trader:   trader,
		Pair:     "WETH/USDC",
		Side:     side,
		Type:     orderv1.TypeLimit,
		Price:    decimal.NewFromInt(price),
		Quantity: decimal.NewFromInt(qty),
	}
}

func TestStore_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		req      orderv1.CreateRequest
		wantCode errors.ErrorCode
	}{
		{name: "limit", req: limitReq("alice", orderv1.SideBuy, 100, 10)},
		{name: "market without price", req: orderv1.CreateRequest{Trader: "alice", Pair: "WETH/USDC", Side: orderv1.SideBuy, Type: orderv1.TypeMarket, Quantity: decimal.NewFromInt(500)}},
		{name: "market with price", req: orderv1.CreateRequest{Trader: "alice", Pair: "WETH/USDC", Side: orderv1.SideBuy, Type: orderv1.TypeMarket, Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(5)}, wantCode: errors.InvalidInput},
		{name: "zero price limit", req: limitReq("alice", orderv1.SideBuy, 0, 10), wantCode: errors.InvalidInput},
		{name: "zero quantity", req: limitReq("alice", orderv1.SideBuy, 100, 0), wantCode: errors.InvalidInput},
		{name: "fractional quantity", req: orderv1.CreateRequest{Trader: "alice", Pair: "WETH/USDC", Side: orderv1.SideSell, Type: orderv1.TypeIOC, Price: decimal.NewFromInt(1), Quantity: decimal.RequireFromString("1.5")}, wantCode: errors.InvalidInput},
		{name: "unknown type", req: orderv1.CreateRequest{Trader: "alice", Pair: "WETH/USDC", Side: orderv1.SideSell, Type: "STOP", Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)}, wantCode: errors.InvalidInput},
		{name: "unknown side", req: orderv1.CreateRequest{Trader: "alice", Pair: "WETH/USDC", Side: "HOLD", Type: orderv1.TypeLimit, Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)}, wantCode: errors.InvalidInput},
		{name: "missing trader", req: limitReq("", orderv1.SideBuy, 100, 10), wantCode: errors.InvalidInput},
		{name: "unsupported pair", req: orderv1.CreateRequest{Trader: "alice", Pair: "DOGE/USDC", Side: orderv1.SideBuy, Type: orderv1.TypeLimit, Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)}, wantCode: errors.InvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			order, err := s.Create(ctx, tc.req)
			if tc.wantCode != "" {
				assert.True(t, errors.ErrorCodeEquals(err, string(tc.wantCode)), "got %v", err)
				assert.Equal(t, uint64(0), s.LastID())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(1), order.ID)
			assert.Equal(t, orderv1.StatusOpen, order.Status)
			assert.True(t, order.Filled.IsZero())
			assert.Equal(t, fixedNow, order.CreatedAt)
			assert.Equal(t, "WETH/USDC", order.Pair.Symbol())
		})
	}
}

func TestStore_IDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 1; i <= 3; i++ {
		o, err := s.Create(ctx, limitReq("alice", orderv1.SideSell, 100, 1))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), o.ID)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.Create(ctx, limitReq("alice", orderv1.SideSell, 100, 10))
	require.NoError(t, err)

	created.Status = orderv1.StatusFilled
	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, orderv1.StatusOpen, got.Status)

	_, err = s.Get(ctx, 99)
	assert.True(t, errors.Is(err, orderv1.ErrNotFound))
}

func TestStore_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	o, err := s.Create(ctx, limitReq("alice", orderv1.SideSell, 100, 10))
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(ctx, o.ID, orderv1.StatusPartiallyFilled, decimal.NewFromInt(4)))
	require.NoError(t, s.UpdateStatus(ctx, o.ID, orderv1.StatusFilled, decimal.NewFromInt(10)))

	// repeated terminal update is a no-op
	require.NoError(t, s.UpdateStatus(ctx, o.ID, orderv1.StatusFilled, decimal.NewFromInt(10)))

	err = s.UpdateStatus(ctx, o.ID, orderv1.StatusCanceled, decimal.NewFromInt(10))
	assert.True(t, errors.Is(err, orderv1.ErrInvalidTransition))

	err = s.UpdateStatus(ctx, 42, orderv1.StatusFilled, decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, orderv1.ErrNotFound))

	other, err := s.Create(ctx, limitReq("bob", orderv1.SideBuy, 100, 10))
	require.NoError(t, err)
	err = s.UpdateStatus(ctx, other.ID, orderv1.StatusPartiallyFilled, decimal.NewFromInt(11))
	assert.True(t, errors.Is(err, orderv1.ErrInvalidFill))
}

func TestStore_Cancel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	o, err := s.Create(ctx, limitReq("alice", orderv1.SideSell, 100, 10))
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, o.ID, orderv1.StatusPartiallyFilled, decimal.NewFromInt(3)))

	require.NoError(t, s.Cancel(ctx, o.ID))
	got, err := s.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, orderv1.StatusCanceled, got.Status)
	assert.True(t, decimal.NewFromInt(3).Equal(got.Filled))

	assert.True(t, errors.Is(s.Cancel(ctx, o.ID), orderv1.ErrInvalidTransition))
	assert.True(t, errors.Is(s.Cancel(ctx, 77), orderv1.ErrNotFound))
}

func TestStore_RollbackRestoresState(t *testing.T) {
	s := newTestStore(t)
	base := context.Background()

	resting, err := s.Create(base, limitReq("alice", orderv1.SideSell, 100, 10))
	require.NoError(t, err)

	log := undo.New()
	ctx := undo.WithLog(base, log)

	created, err := s.Create(ctx, limitReq("bob", orderv1.SideBuy, 100, 10))
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, resting.ID, orderv1.StatusPartiallyFilled, decimal.NewFromInt(6)))
	require.NoError(t, s.UpdateStatus(ctx, resting.ID, orderv1.StatusFilled, decimal.NewFromInt(10)))

	log.Rollback()

	_, err = s.Get(base, created.ID)
	assert.True(t, errors.Is(err, orderv1.ErrNotFound))

	got, err := s.Get(base, resting.ID)
	require.NoError(t, err)
	assert.Equal(t, orderv1.StatusOpen, got.Status)
	assert.True(t, got.Filled.IsZero())

	// the rolled back id is not handed out again
	next, err := s.Create(base, limitReq("carol", orderv1.SideBuy, 100, 1))
	require.NoError(t, err)
	assert.Equal(t, created.ID+1, next.ID)
}

func TestStore_Journal(t *testing.T) {
	ctx := context.Background()

	t.Run("saves every change", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		journal := orderv1_mock.NewMockJournal(ctrl)
		s := newTestStore(t, WithJournal(journal))

		gomock.InOrder(
			journal.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, o *orderv1.Order) error {
				assert.Equal(t, orderv1.StatusOpen, o.Status)
				return nil
			}),
			journal.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, o *orderv1.Order) error {
				assert.Equal(t, orderv1.StatusCanceled, o.Status)
				return nil
			}),
		)

		o, err := s.Create(ctx, limitReq("alice", orderv1.SideSell, 100, 10))
		require.NoError(t, err)
		require.NoError(t, s.Cancel(ctx, o.ID))
	})

	t.Run("journal failure fails the call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		journal := orderv1_mock.NewMockJournal(ctrl)
		s := newTestStore(t, WithJournal(journal))

		journal.EXPECT().Save(gomock.Any(), gomock.Any()).Return(fmt.Errorf("connection reset"))

		log := undo.New()
		_, err := s.Create(undo.WithLog(ctx, log), limitReq("alice", orderv1.SideSell, 100, 10))
		require.Error(t, err)
		log.Rollback()

		_, err = s.Get(ctx, 1)
		assert.True(t, errors.Is(err, orderv1.ErrNotFound))
	})
}

func TestStore_Restore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	pair := marketv1.Pair{Base: "WETH", Quote: "USDC"}
	require.NoError(t, s.Restore(ctx, []*orderv1.Order{
		{ID: 7, Trader: "alice", Pair: pair, Side: orderv1.SideSell, Type: orderv1.TypeLimit, Price: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(5), Filled: decimal.NewFromInt(2), Status: orderv1.StatusPartiallyFilled},
	}))

	got, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Trader)
	assert.Equal(t, uint64(7), s.LastID())

	next, err := s.Create(ctx, limitReq("bob", orderv1.SideBuy, 100, 1))
	require.NoError(t, err)
	assert.Equal(t, uint64(8), next.ID)

	err = s.Restore(ctx, []*orderv1.Order{{ID: 9, Quantity: decimal.NewFromInt(1), Filled: decimal.NewFromInt(2)}})
	assert.True(t, errors.Is(err, orderv1.ErrInvalidFill))
}

func TestStore_AdvanceID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AdvanceID(41)
	s.AdvanceID(3)
	assert.Equal(t, uint64(41), s.LastID())

	o, err := s.Create(ctx, limitReq("alice", orderv1.SideBuy, 100, 1))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), o.ID)
}

func TestStore_Seed(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		journal uint64
		settled uint64
		err     error
		wantID  uint64
		wantErr bool
	}{
		{name: "empty sources", wantID: 1},
		{name: "journal ahead", journal: 12, settled: 9, wantID: 13},
		{name: "settled ahead", journal: 12, settled: 20, wantID: 21},
		{name: "source failure", err: fmt.Errorf("connection refused"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			journal := orderv1_mock.NewMockIDSource(ctrl)
			settled := orderv1_mock.NewMockIDSource(ctrl)
			journal.EXPECT().MaxID(gomock.Any()).Return(tc.journal, tc.err)
			if tc.err == nil {
				settled.EXPECT().MaxID(gomock.Any()).Return(tc.settled, nil)
			}

			s := newTestStore(t)
			err := s.Seed(ctx, journal, settled)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			o, err := s.Create(ctx, limitReq("carol", orderv1.SideBuy, 100, 1))
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, o.ID)
		})
	}
}
