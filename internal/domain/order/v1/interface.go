package orderv1

import (
	"context"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput marks a rejected create request.
	ErrInvalidInput = errors.New(errors.InvalidInput, "", "invalid order")
	// ErrNotFound marks an unknown order id.
	ErrNotFound = errors.New(errors.NotFound, "order_id", "order not found")
	// ErrInvalidTransition marks an illegal status change.
	ErrInvalidTransition = errors.New(errors.InvalidTransition, "status", "invalid status transition")
	// ErrInvalidFill marks a fill outside the order quantity or a decreasing fill.
	ErrInvalidFill = errors.New(errors.InvalidFill, "filled", "invalid filled quantity")
)

// Reader gives read access to orders.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderv1_mock
type Reader interface {
	Get(ctx context.Context, id uint64) (*Order, error)
}

// Store owns every order and its lifecycle. Mutations record their inverse in
// the undo log carried by ctx.
type Store interface {
	Reader
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	UpdateStatus(ctx context.Context, id uint64, status Status, filled decimal.Decimal) error
	Cancel(ctx context.Context, id uint64) error
	Restore(ctx context.Context, orders []*Order) error
	// LastID returns the last id handed out.
	LastID() uint64
	// AdvanceID moves the id sequence to at least id.
	AdvanceID(id uint64)
}

// Journal persists order records. Save is called inside the caller's unit of work.
type Journal interface {
	Save(ctx context.Context, order *Order) error
}

// IDSource reports the highest order id a durable store has seen.
type IDSource interface {
	MaxID(ctx context.Context) (uint64, error)
}
