package settlementv1

import (
	"context"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds is returned by a Ledger when balance or allowance is short.
	ErrInsufficientFunds = errors.New(errors.TransferFailed, "amount", "insufficient balance or allowance")
	// ErrTransferFailed marks a settlement record whose ledger leg failed.
	ErrTransferFailed = errors.New(errors.TransferFailed, "", "transfer failed")
	// ErrInvalidSettlement marks a record pairing incompatible orders.
	ErrInvalidSettlement = errors.New(errors.InvalidSettlement, "", "invalid settlement")
	// ErrAlreadyProcessed marks a record that was settled before.
	ErrAlreadyProcessed = errors.New(errors.AlreadyProcessed, "", "settlement already processed")
)

// Ledger moves funds between traders, gated by the allowance each trader granted.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=settlementv1_mock
type Ledger interface {
	Transfer(ctx context.Context, token, from, to string, amount decimal.Decimal) error
}

// ProcessedStore remembers which (taker, maker) pairs were settled.
type ProcessedStore interface {
	IsProcessed(ctx context.Context, takerID, makerID uint64) (bool, error)
	// MarkProcessed returns ErrAlreadyProcessed when the pair is already marked.
	MarkProcessed(ctx context.Context, takerID, makerID uint64) error
}

// Engine settles batches of records.
type Engine interface {
	ProcessBatch(ctx context.Context, records []Record) error
	FeeConfig() FeeConfig
	SetFeeRates(makerBps, takerBps uint32) error
	SetFeeRecipient(recipient string) error
}
