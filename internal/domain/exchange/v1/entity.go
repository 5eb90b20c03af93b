package exchangev1

import (
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnauthorized is returned when the caller may not run the operation.
	ErrUnauthorized = errors.New(errors.Unauthorized, "actor", "caller is not authorized")
	// ErrNoActor is returned when the context carries no caller identity.
	ErrNoActor = errors.New(errors.Unauthorized, "actor", "caller identity is required")
)

// PlaceResult is the outcome of one order placement.
type PlaceResult struct {
	OrderID uint64         `json:"orderID"`
	Status  orderv1.Status `json:"status"`
	// Filled is the base quantity executed.
	Filled decimal.Decimal `json:"filled"`
	// FilledQuote is the quote value of the executed trades.
	FilledQuote decimal.Decimal       `json:"filledQuote"`
	Trades      []settlementv1.Record `json:"trades"`
}
