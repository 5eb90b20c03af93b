package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	snapshotv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/snapshot/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	redis_mock "github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/redis/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *snapshotv1.Snapshot {
	return &snapshotv1.Snapshot{
		Pair:        "WETH/USDC",
		OrderOffset: 17,
		LastOrderID: 9,
		Orders: []*orderv1.Order{{
			ID:       3,
			Trader:   "alice",
			Pair:     marketv1.Pair{Base: "WETH", Quote: "USDC", BaseDecimals: 18},
			Side:     orderv1.SideSell,
			Type:     orderv1.TypeLimit,
			Price:    decimal.NewFromInt(100),
			Quantity: decimal.NewFromInt(10),
			Filled:   decimal.NewFromInt(4),
			Status:   orderv1.StatusPartiallyFilled,
		}},
	}
}

func TestStore_Store(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		snapshot *snapshotv1.Snapshot
		mockFn   func(r *redis_mock.MockClient)
		wantErr  bool
	}{
		{
			name:     "stores json under the pair key",
			snapshot: testSnapshot(),
			mockFn: func(r *redis_mock.MockClient) {
				r.EXPECT().Set(ctx, "snapshot:WETH/USDC", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any, _ time.Duration) error {
						var got snapshotv1.Snapshot
						require.NoError(t, json.Unmarshal(value.([]byte), &got))
						assert.Equal(t, int64(17), got.OrderOffset)
						assert.Len(t, got.Orders, 1)
						return nil
					})
			},
		},
		{
			name:     "redis failure",
			snapshot: testSnapshot(),
			mockFn: func(r *redis_mock.MockClient) {
				r.EXPECT().Set(ctx, "snapshot:WETH/USDC", gomock.Any(), gomock.Any()).Return(fmt.Errorf("down"))
			},
			wantErr: true,
		},
		{
			name:    "nil snapshot",
			mockFn:  func(r *redis_mock.MockClient) {},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			r := redis_mock.NewMockClient(ctrl)
			tc.mockFn(r)

			err := NewSnapshotStore(r, "WETH/USDC", logger.NewNop()).Store(ctx, tc.snapshot)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStore_LoadStore(t *testing.T) {
	ctx := context.Background()
	stored, err := json.Marshal(testSnapshot())
	require.NoError(t, err)

	testCases := []struct {
		name    string
		value   string
		err     error
		wantNil bool
		wantErr bool
	}{
		{name: "found", value: string(stored)},
		{name: "missing", value: "", wantNil: true},
		{name: "redis failure", err: fmt.Errorf("down"), wantErr: true},
		{name: "corrupt", value: "{", wantErr: true},
		{name: "other pair", value: `{"pair":"WBTC/USDC"}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			r := redis_mock.NewMockClient(ctrl)
			r.EXPECT().Get(ctx, "snapshot:WETH/USDC").Return(tc.value, tc.err)

			got, err := NewSnapshotStore(r, "WETH/USDC", logger.NewNop()).LoadStore(ctx)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.wantNil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, uint64(9), got.LastOrderID)
			require.Len(t, got.Orders, 1)
			assert.True(t, decimal.NewFromInt(4).Equal(got.Orders[0].Filled))
			assert.Equal(t, int32(18), got.Orders[0].Pair.BaseDecimals)
		})
	}
}
