package snapshotv1

import (
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
)

// Snapshot is the resting state of one pair's book at a command offset.
type Snapshot struct {
	Pair        string `json:"pair"`
	OrderOffset int64  `json:"orderOffset"`
	// LastOrderID is the order id sequence at snapshot time.
	LastOrderID uint64 `json:"lastOrderID"`
	// Orders holds the full record of every resting order in arrival order.
	Orders []*orderv1.Order `json:"orders"`
}
