package orderbookv1

import (
	"context"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	snapshotv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/snapshot/v1"
	"github.com/shopspring/decimal"
)

// Orderbook is the per-pair price-time priority book. Mutations record their
// inverse in the undo log carried by ctx.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Orderbook interface {
	Pair() marketv1.Pair
	AddResting(ctx context.Context, orderID uint64) error
	RemoveResting(ctx context.Context, orderID uint64)
	Match(ctx context.Context, taker *orderv1.Order, quoteBudget decimal.Decimal) (*MatchResult, error)
	CanFill(taker *orderv1.Order) bool
	Contains(orderID uint64) bool
	Depth(levels int) Depth
	Asks() []*Limit
	Bids() []*Limit
	CreateSnapshot() *snapshotv1.Snapshot
	RestoreOrderbook(snapshot *snapshotv1.Snapshot) error
	Validate() error
}
