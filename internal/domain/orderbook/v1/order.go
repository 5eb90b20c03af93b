package orderbookv1

import (
	"errors"
	"time"

	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/shopspring/decimal"
)

var (
	ErrNilOrder       = errors.New("order cannot be nil")
	ErrInvalidPrice   = errors.New("price must be positive")
	ErrInvalidSize    = errors.New("size must be positive")
	ErrOrderNotFound  = errors.New("order not found in limit")
	ErrDuplicateOrder = errors.New("order already resting")
)

// BookOrder is the book's view of a resting order.
type BookOrder struct {
	ID        uint64          `json:"id"`
	Trader    string          `json:"trader"`
	Side      orderv1.Side    `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Remaining decimal.Decimal `json:"remaining"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewBookOrder builds the resting view of o.
func NewBookOrder(o *orderv1.Order) *BookOrder {
	return &BookOrder{
		ID:        o.ID,
		Trader:    o.Trader,
		Side:      o.Side,
		Price:     o.Price,
		Quantity:  o.Quantity,
		Remaining: o.Remaining(),
		CreatedAt: o.CreatedAt,
	}
}

// Filled returns the quantity already executed.
func (o *BookOrder) Filled() decimal.Decimal {
	return o.Quantity.Sub(o.Remaining)
}

// MakerUpdate is a staged status change for a maker touched by one match call.
type MakerUpdate struct {
	OrderID uint64          `json:"orderID"`
	Status  orderv1.Status  `json:"status"`
	Filled  decimal.Decimal `json:"filled"`
}

// MatchResult is everything one match call produced.
type MatchResult struct {
	Records      []settlementv1.Record `json:"records"`
	MakerUpdates []MakerUpdate         `json:"makerUpdates"`
	// Filled is the base quantity the taker received or delivered.
	Filled decimal.Decimal `json:"filled"`
	// QuoteFilled is the truncated quote value of all records.
	QuoteFilled decimal.Decimal `json:"quoteFilled"`
	// SelfTradeSkips counts makers skipped because they belong to the taker.
	SelfTradeSkips int `json:"selfTradeSkips"`
}

// Level is an aggregated price level for depth views.
type Level struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Orders   int             `json:"orders"`
}

// Depth is the top of both sides, best price first.
type Depth struct {
	Pair string  `json:"pair"`
	Bids []Level `json:"bids"`
	Asks []Level `json:"asks"`
}
