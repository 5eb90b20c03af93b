package orderbookv1

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Limit is one price level: resting orders in arrival order plus their aggregate
// remaining quantity. Callers serialize access.
type Limit struct {
	Price       decimal.Decimal `json:"price"`
	Orders      []*BookOrder    `json:"orders"`
	TotalVolume decimal.Decimal `json:"totalVolume"`
}

// NewLimit creates an empty level at price.
func NewLimit(price decimal.Decimal) *Limit {
	return &Limit{
		Price:       price,
		Orders:      make([]*BookOrder, 0),
		TotalVolume: decimal.Zero,
	}
}

// AddOrder inserts order at its arrival position and grows the aggregate.
func (l *Limit) AddOrder(order *BookOrder) error {
	if order == nil {
		return ErrNilOrder
	}
	if !order.Remaining.IsPositive() {
		return fmt.Errorf("%w: order %d has %s remaining", ErrInvalidSize, order.ID, order.Remaining)
	}

	i := sort.Search(len(l.Orders), func(i int) bool { return l.Orders[i].ID >= order.ID })
	if i < len(l.Orders) && l.Orders[i].ID == order.ID {
		return fmt.Errorf("%w: %d", ErrDuplicateOrder, order.ID)
	}

	l.Orders = append(l.Orders, nil)
	copy(l.Orders[i+1:], l.Orders[i:])
	l.Orders[i] = order
	l.TotalVolume = l.TotalVolume.Add(order.Remaining)

	return nil
}

// RemoveOrder removes the order with id and shrinks the aggregate.
func (l *Limit) RemoveOrder(id uint64) (*BookOrder, error) {
	i := sort.Search(len(l.Orders), func(i int) bool { return l.Orders[i].ID >= id })
	if i == len(l.Orders) || l.Orders[i].ID != id {
		return nil, ErrOrderNotFound
	}

	order := l.Orders[i]
	l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
	l.TotalVolume = l.TotalVolume.Sub(order.Remaining)

	return order, nil
}

// Reduce takes qty off a resting order that stays on the level.
func (l *Limit) Reduce(order *BookOrder, qty decimal.Decimal) {
	order.Remaining = order.Remaining.Sub(qty)
	l.TotalVolume = l.TotalVolume.Sub(qty)
}

// Restore puts qty back on a resting order.
func (l *Limit) Restore(order *BookOrder, qty decimal.Decimal) {
	order.Remaining = order.Remaining.Add(qty)
	l.TotalVolume = l.TotalVolume.Add(qty)
}

// IsEmpty checks if the limit has no orders
func (l *Limit) IsEmpty() bool {
	return len(l.Orders) == 0
}

// OrderCount returns the number of orders at this limit
func (l *Limit) OrderCount() int {
	return len(l.Orders)
}

// Validate checks that the aggregate equals the sum of remaining quantities and
// that orders are in arrival order.
func (l *Limit) Validate() error {
	if !l.Price.IsPositive() {
		return fmt.Errorf("%w: limit price %s", ErrInvalidPrice, l.Price)
	}

	sum := decimal.Zero
	for i, order := range l.Orders {
		if order == nil {
			return ErrNilOrder
		}
		if !order.Remaining.IsPositive() {
			return fmt.Errorf("%w: order %d has %s remaining", ErrInvalidSize, order.ID, order.Remaining)
		}
		if i > 0 && l.Orders[i-1].ID >= order.ID {
			return fmt.Errorf("orders out of arrival order at %s", l.Price)
		}
		sum = sum.Add(order.Remaining)
	}

	if !sum.Equal(l.TotalVolume) {
		return fmt.Errorf("volume mismatch at %s: calculated %s, stored %s", l.Price, sum, l.TotalVolume)
	}

	return nil
}
