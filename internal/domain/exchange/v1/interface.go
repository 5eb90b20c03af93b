package exchangev1

import (
	"context"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	orderbookv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/orderbook/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	snapshotv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/snapshot/v1"
	"github.com/shopspring/decimal"
)

// Exchange is the trader and operator facing surface of the order book.
// The caller is taken from util.GetActorID(ctx). Every mutating call is
// all-or-nothing.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=exchangev1_mock
type Exchange interface {
	PlaceLimit(ctx context.Context, pair string, side orderv1.Side, price, quantity decimal.Decimal) (*PlaceResult, error)
	// PlaceMarket takes a base quantity for a sell and a quote budget for a buy.
	PlaceMarket(ctx context.Context, pair string, side orderv1.Side, amount decimal.Decimal) (*PlaceResult, error)
	PlaceIOC(ctx context.Context, pair string, side orderv1.Side, price, quantity decimal.Decimal) (*PlaceResult, error)
	PlaceFOK(ctx context.Context, pair string, side orderv1.Side, price, quantity decimal.Decimal) (*PlaceResult, error)
	Cancel(ctx context.Context, orderID uint64) error

	GetOrder(ctx context.Context, orderID uint64) (*orderv1.Order, error)
	GetBookDepth(ctx context.Context, pair string, levels int) (orderbookv1.Depth, error)
	Pairs() []marketv1.Pair

	AddSupportedPair(ctx context.Context, base, quote string, baseDecimals int32) (marketv1.Pair, error)
	SetFeeRates(ctx context.Context, makerBps, takerBps uint32) error
	SetFeeRecipient(ctx context.Context, recipient string) error
	FeeConfig() settlementv1.FeeConfig

	Snapshot(ctx context.Context, pair string) (*snapshotv1.Snapshot, error)
	Restore(ctx context.Context, snapshot *snapshotv1.Snapshot) error
}
