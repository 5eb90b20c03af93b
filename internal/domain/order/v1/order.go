package orderv1

import (
	"time"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	"github.com/shopspring/decimal"
)

// Side is the direction of an order.
type Side string

const (
	// SideBuy buys base with quote.
	SideBuy Side = "BUY"
	// SideSell sells base for quote.
	SideSell Side = "SELL"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Type is the execution policy of an order.
type Type string

const (
	// TypeLimit rests any unfilled remainder on the book.
	TypeLimit Type = "LIMIT"
	// TypeMarket takes liquidity at any price and never rests.
	TypeMarket Type = "MARKET"
	// TypeIOC fills what it can at its limit and cancels the rest.
	TypeIOC Type = "IOC"
	// TypeFOK fills completely at its limit or not at all.
	TypeFOK Type = "FOK"
)

// Valid reports whether t is a known order type.
func (t Type) Valid() bool {
	switch t {
	case TypeLimit, TypeMarket, TypeIOC, TypeFOK:
		return true
	}
	return false
}

// Order is the canonical record of an order. Only the order store mutates it;
// everything else works on copies.
type Order struct {
	ID       uint64          `json:"id"`
	Trader   string          `json:"trader"`
	Pair     marketv1.Pair   `json:"pair"`
	Side     Side            `json:"side"`
	Type     Type            `json:"type"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	// Filled is in base units, except for a MARKET buy where Quantity is a quote
	// budget and Filled is the quote spent.
	Filled    decimal.Decimal `json:"filled"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Remaining returns Quantity - Filled.
func (o *Order) Remaining() decimal.Decimal {
	return o.Quantity.Sub(o.Filled)
}

// IsBuy reports whether the order buys base.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}

// IsQuoteBudget reports whether Quantity is denominated in the quote token.
func (o *Order) IsQuoteBudget() bool {
	return o.Type == TypeMarket && o.Side == SideBuy
}

// IsActive reports whether the order may still trade.
func (o *Order) IsActive() bool {
	return o.Status == StatusOpen || o.Status == StatusPartiallyFilled
}

// Clone returns a copy safe to hand out of the store.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

// CreateRequest carries the caller-supplied fields of a new order.
type CreateRequest struct {
	Trader   string
	Pair     string
	Side     Side
	Type     Type
	Price    decimal.Decimal
	Quantity decimal.Decimal
}
