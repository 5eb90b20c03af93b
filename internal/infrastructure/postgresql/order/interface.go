package order

import (
	"context"

	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
)

// OrderRepository persists order records.
type OrderRepository interface {
	orderv1.Journal
	orderv1.IDSource
	GetByID(ctx context.Context, id uint64) (*orderv1.Order, error)
	List(ctx context.Context, filter Filter) ([]*orderv1.Order, error)
	// Resting returns the active limit orders that belong on a book, oldest first.
	Resting(ctx context.Context) ([]*orderv1.Order, error)
}
