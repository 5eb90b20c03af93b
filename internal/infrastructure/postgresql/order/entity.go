package order

import (
	"time"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	"github.com/shopspring/decimal"
)

// Order is the orders table row.
type Order struct {
	ID           uint64
	Trader       string
	Base         string
	Quote        string
	BaseDecimals int32
	Side         string
	Type         string
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	Filled       decimal.Decimal
	Status       string
	CreatedAt    time.Time
}

// FromDomain maps an order record to its row.
func FromDomain(o *orderv1.Order) *Order {
	return &Order{
		ID:           o.ID,
		Trader:       o.Trader,
		Base:         o.Pair.Base,
		Quote:        o.Pair.Quote,
		BaseDecimals: o.Pair.BaseDecimals,
		Side:         string(o.Side),
		Type:         string(o.Type),
		Price:        o.Price,
		Quantity:     o.Quantity,
		Filled:       o.Filled,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
	}
}

// ToDomain maps the row back to an order record.
func (o *Order) ToDomain() *orderv1.Order {
	return &orderv1.Order{
		ID:     o.ID,
		Trader: o.Trader,
		Pair: marketv1.Pair{
			Base:         o.Base,
			Quote:        o.Quote,
			BaseDecimals: o.BaseDecimals,
		},
		Side:      orderv1.Side(o.Side),
		Type:      orderv1.Type(o.Type),
		Price:     o.Price,
		Quantity:  o.Quantity,
		Filled:    o.Filled,
		Status:    orderv1.Status(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

// Filter narrows List. Zero fields are ignored.
type Filter struct {
	Trader string
	Base   string
	Quote  string
	Status orderv1.Status
	Limit  int
}
