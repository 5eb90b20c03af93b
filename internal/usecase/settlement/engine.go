package settlement

import (
	"context"
	"fmt"
	"strings"
	"sync"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
)

// Engine settles match records by moving funds through the ledger. It never
// holds funds itself.
type Engine struct {
	mu        sync.RWMutex
	fees      settlementv1.FeeConfig
	orders    orderv1.Reader
	ledger    settlementv1.Ledger
	processed settlementv1.ProcessedStore
	logger    logger.Interface
}

var _ settlementv1.Engine = (*Engine)(nil)

// NewEngine creates a settlement engine charging fees.
func NewEngine(
	orders orderv1.Reader,
	ledger settlementv1.Ledger,
	processed settlementv1.ProcessedStore,
	fees settlementv1.FeeConfig,
	log logger.Interface,
) (*Engine, error) {
	if err := fees.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		fees:      fees,
		orders:    orders,
		ledger:    ledger,
		processed: processed,
		logger:    log,
	}, nil
}

// FeeConfig returns the current fee configuration.
func (e *Engine) FeeConfig() settlementv1.FeeConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fees
}

// SetFeeRates replaces both rates.
func (e *Engine) SetFeeRates(makerBps, takerBps uint32) error {
	if err := settlementv1.ValidateRates(makerBps, takerBps); err != nil {
		return err
	}
	e.mu.Lock()
	e.fees.MakerBps, e.fees.TakerBps = makerBps, takerBps
	e.mu.Unlock()

	e.logger.Info("Fee rates updated",
		logger.NewField("makerBps", makerBps),
		logger.NewField("takerBps", takerBps),
	)
	return nil
}

// SetFeeRecipient replaces the account collecting fees.
func (e *Engine) SetFeeRecipient(recipient string) error {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return errors.New(errors.InvalidInput, "recipient", "fee recipient is required")
	}
	e.mu.Lock()
	e.fees.Recipient = recipient
	e.mu.Unlock()

	e.logger.Info("Fee recipient updated", logger.NewField("recipient", recipient))
	return nil
}

// Compute returns the money flow of rec between taker and maker under fees.
// The base leg goes from seller to buyer. The buyer pays notional-makerFee to
// the seller and makerFee to the recipient. The taker pays takerFee in quote.
func Compute(rec settlementv1.Record, taker, maker *orderv1.Order, fees settlementv1.FeeConfig) settlementv1.Breakdown {
	buyer, seller := taker, maker
	if !taker.IsBuy() {
		buyer, seller = maker, taker
	}

	pair := maker.Pair
	notional := marketv1.QuoteAmount(rec.Quantity, rec.Price, pair.BaseDecimals)
	makerFee := marketv1.Fee(notional, fees.MakerBps)
	takerFee := marketv1.Fee(notional, fees.TakerBps)

	return settlementv1.Breakdown{
		Notional: notional,
		MakerFee: makerFee,
		TakerFee: takerFee,
		Legs: []settlementv1.Leg{
			{Token: pair.Base, From: seller.Trader, To: buyer.Trader, Amount: rec.Quantity},
			{Token: pair.Quote, From: buyer.Trader, To: seller.Trader, Amount: notional.Sub(makerFee)},
			{Token: pair.Quote, From: buyer.Trader, To: fees.Recipient, Amount: makerFee},
			{Token: pair.Quote, From: taker.Trader, To: fees.Recipient, Amount: takerFee},
		},
	}
}

func invalidSettlement(rec settlementv1.Record, reason string) error {
	return fmt.Errorf("%w: record %s: %s", settlementv1.ErrInvalidSettlement, rec.Key(), reason)
}

func (e *Engine) load(ctx context.Context, rec settlementv1.Record) (taker, maker *orderv1.Order, err error) {
	if taker, err = e.orders.Get(ctx, rec.TakerID); err != nil {
		return nil, nil, err
	}
	if maker, err = e.orders.Get(ctx, rec.MakerID); err != nil {
		return nil, nil, err
	}

	switch {
	case taker.Trader == maker.Trader:
		return nil, nil, invalidSettlement(rec, "taker and maker belong to the same trader")
	case taker.Pair.Symbol() != maker.Pair.Symbol():
		return nil, nil, invalidSettlement(rec, fmt.Sprintf("pair %s does not match %s", taker.Pair.Symbol(), maker.Pair.Symbol()))
	case taker.Side == maker.Side:
		return nil, nil, invalidSettlement(rec, "taker and maker are on the same side")
	case !marketv1.IsPositiveWhole(rec.Quantity) || !marketv1.IsPositiveWhole(rec.Price):
		return nil, nil, invalidSettlement(rec, "price and quantity must be positive integers")
	}
	return taker, maker, nil
}

func (e *Engine) settle(ctx context.Context, rec settlementv1.Record, fees settlementv1.FeeConfig) error {
	done, err := e.processed.IsProcessed(ctx, rec.TakerID, rec.MakerID)
	if err != nil {
		return errors.NewTracer(fmt.Sprintf("check record %s", rec.Key())).Wrap(err)
	}
	if done {
		e.logger.DebugContext(ctx, "Settlement already processed", logger.NewField("record", rec.Key()))
		return nil
	}

	taker, maker, err := e.load(ctx, rec)
	if err != nil {
		return err
	}

	breakdown := Compute(rec, taker, maker, fees)
	for _, leg := range breakdown.Legs {
		if leg.Amount.IsZero() {
			continue
		}
		if err := e.ledger.Transfer(ctx, leg.Token, leg.From, leg.To, leg.Amount); err != nil {
			return fmt.Errorf("%w: record %s %s %s from %s to %s: %w",
				settlementv1.ErrTransferFailed, rec.Key(), leg.Amount, leg.Token, leg.From, leg.To, err)
		}
	}

	if err := e.processed.MarkProcessed(ctx, rec.TakerID, rec.MakerID); err != nil {
		if errors.Is(err, settlementv1.ErrAlreadyProcessed) {
			return nil
		}
		return errors.NewTracer(fmt.Sprintf("mark record %s", rec.Key())).Wrap(err)
	}

	e.logger.DebugContext(ctx, "Settlement processed",
		logger.NewField("record", rec.Key()),
		logger.NewField("notional", breakdown.Notional.String()),
		logger.NewField("makerFee", breakdown.MakerFee.String()),
		logger.NewField("takerFee", breakdown.TakerFee.String()),
	)
	return nil
}

// ProcessBatch settles records in order. Records already processed are skipped.
// The first failing record stops the batch; the caller owns rollback.
func (e *Engine) ProcessBatch(ctx context.Context, records []settlementv1.Record) error {
	fees := e.FeeConfig()
	for _, rec := range records {
		if err := e.settle(ctx, rec, fees); err != nil {
			e.logger.ErrorContext(ctx, err, logger.NewField("record", rec.Key()), logger.NewField("action", "settle"))
			return err
		}
	}
	return nil
}
