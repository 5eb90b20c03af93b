package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	exchangev1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/exchange/v1"
	orderreaderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order-reader/v1"
	snapshotv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/snapshot/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/util"
)

// Engine feeds one pair's command topic into the exchange and keeps periodic
// snapshots of the pair's book together with the last applied offset.
type Engine struct {
	exchange      exchangev1.Exchange
	orderReader   orderreaderv1.OrderReader
	snapshotStore snapshotv1.Store
	logger        logger.Interface
	pair          string

	mu                 sync.RWMutex
	orderOffset        int64
	lastSnapshotOffset int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	snapshotInterval    time.Duration
	snapshotOffsetDelta int64
	readBackoff         time.Duration

	statsMu     sync.RWMutex
	totalTrades int64
	rejected    int64
}

// NewEngine creates an Engine with the default options.
func NewEngine(
	exchange exchangev1.Exchange,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	pair string,
	log logger.Interface,
) (*Engine, error) {
	return NewEngineWithOptions(exchange, orderReader, snapshotStore, pair, log, DefaultEngineOptions())
}

// NewEngineWithOptions creates an Engine and restores the pair from the latest
// stored snapshot, if any.
func NewEngineWithOptions(
	exchange exchangev1.Exchange,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	pair string,
	log logger.Interface,
	options *Options,
) (*Engine, error) {
	if pair == "" {
		return nil, errors.New(errors.InvalidInput, "pair", "engine pair is required")
	}

	e := &Engine{
		exchange:      exchange,
		orderReader:   orderReader,
		snapshotStore: snapshotStore,
		logger:        log.WithFields(logger.NewField("pair", pair)),
		pair:          pair,

		snapshotInterval:    options.SnapshotInterval,
		snapshotOffsetDelta: options.SnapshotOffsetDelta,
		readBackoff:         options.ReadBackoff,
		orderOffset:         -1,
		lastSnapshotOffset:  -1,
	}

	if err := e.loadSnapshot(context.Background()); err != nil {
		return nil, errors.NewTracer("load snapshot").Wrap(err)
	}
	return e, nil
}

// Start positions the reader after the restored offset and starts the command
// processor and the snapshot manager.
func (e *Engine) Start(ctx context.Context) error {
	offset := e.getOrderOffset()
	if offset >= 0 {
		offset++
	}
	if err := e.orderReader.SetOffset(offset); err != nil {
		return errors.NewTracer("set reader offset").Wrap(err)
	}

	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.runOrderProcessor()
	go e.runSnapshotManager()

	e.logger.Info("Engine started", logger.NewField("offset", offset))
	return nil
}

// Stop cancels the processing routines, waits for them and stores a final
// snapshot when commands were applied since the last one.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}

	if e.getOrderOffset() > e.getLastSnapshotOffset() {
		e.createAndStoreSnapshot(ctx)
	}
	e.logger.Info("Engine stopped gracefully")
	return nil
}

// runOrderProcessor reads commands one at a time and applies them in topic order.
func (e *Engine) runOrderProcessor() {
	defer e.wg.Done()
	defer func() {
		if err := e.orderReader.Close(); err != nil {
			e.logger.Error(err, logger.NewField("action", "close_order_reader"))
		}
	}()

	e.logger.Info("Starting order processor")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Order processor shutting down")
			return
		default:
		}

		msg, cmd, err := e.orderReader.ReadMessage(e.ctx)
		if err != nil {
			if e.ctx.Err() != nil {
				continue
			}
			if cmd == nil && msg.Value != nil {
				// undecodable command: skip it so it is not read again on restart
				e.reject(msg.Offset, err)
				continue
			}
			e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "read_order_message"))
			time.Sleep(e.readBackoff)
			continue
		}

		if err := e.orderReader.CommitMessages(e.ctx, msg); err != nil {
			e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "commit_order_message"))
		}

		if err := e.processOrder(e.ctx, cmd); err != nil {
			// rejections are deterministic, replaying them would reject again
			e.reject(msg.Offset, err)
			continue
		}
		e.setOrderOffset(msg.Offset)
	}
}

func (e *Engine) reject(offset int64, err error) {
	e.statsMu.Lock()
	e.rejected++
	e.statsMu.Unlock()

	e.logger.WarnContext(e.ctx, "Command rejected",
		logger.NewField("offset", offset),
		logger.NewField("code", errors.CodeOf(err)),
		logger.NewField("error", err.Error()),
	)
	e.setOrderOffset(offset)
}

// runSnapshotManager handles periodic snapshots.
func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()

	e.logger.Info("Starting snapshot manager")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Snapshot manager shutting down")
			return
		case <-ticker.C:
			if e.shouldCreateSnapshot() {
				e.createAndStoreSnapshot(e.ctx)
			}
		}
	}
}

// processOrder runs one command as its trader.
func (e *Engine) processOrder(ctx context.Context, cmd *orderreaderv1.PlaceOrderCommand) error {
	if cmd.Type != orderreaderv1.CommandCancel && cmd.Pair != e.pair {
		return errors.New(errors.InvalidInput, "pair",
			fmt.Sprintf("command for %s read by the %s engine", cmd.Pair, e.pair))
	}

	ctx = util.WithActorID(ctx, cmd.Trader)
	e.logger.DebugContext(ctx, "Processing command",
		logger.NewField("offset", cmd.Offset),
		logger.NewField("type", cmd.Type),
		logger.NewField("trader", cmd.Trader),
	)

	var (
		result *exchangev1.PlaceResult
		err    error
	)
	switch cmd.Type {
	case orderreaderv1.CommandLimit:
		result, err = e.exchange.PlaceLimit(ctx, cmd.Pair, cmd.Side, cmd.Price, cmd.Quantity)
	case orderreaderv1.CommandMarket:
		result, err = e.exchange.PlaceMarket(ctx, cmd.Pair, cmd.Side, cmd.Quantity)
	case orderreaderv1.CommandIOC:
		result, err = e.exchange.PlaceIOC(ctx, cmd.Pair, cmd.Side, cmd.Price, cmd.Quantity)
	case orderreaderv1.CommandFOK:
		result, err = e.exchange.PlaceFOK(ctx, cmd.Pair, cmd.Side, cmd.Price, cmd.Quantity)
	case orderreaderv1.CommandCancel:
		return e.exchange.Cancel(ctx, cmd.OrderID)
	default:
		return errors.New(errors.InvalidInput, "type", fmt.Sprintf("unknown command type %q", cmd.Type))
	}
	if err != nil {
		return err
	}

	if n := len(result.Trades); n > 0 {
		e.statsMu.Lock()
		e.totalTrades += int64(n)
		total := e.totalTrades
		e.statsMu.Unlock()

		e.logger.InfoContext(ctx, "Trades executed",
			logger.NewField("orderID", result.OrderID),
			logger.NewField("tradeCount", n),
			logger.NewField("totalTrades", total),
			logger.NewField("status", result.Status),
		)
	}
	return nil
}

// shouldCreateSnapshot checks if enough commands were applied since the last snapshot.
func (e *Engine) shouldCreateSnapshot() bool {
	e.mu.RLock()
	currentOffset := e.orderOffset
	lastSnapshotOffset := e.lastSnapshotOffset
	e.mu.RUnlock()

	if currentOffset < 0 {
		return false
	}
	return currentOffset-lastSnapshotOffset >= e.snapshotOffsetDelta
}

// createAndStoreSnapshot creates and stores a snapshot.
func (e *Engine) createAndStoreSnapshot(ctx context.Context) {
	currentOffset := e.getOrderOffset()

	snapshot, err := e.exchange.Snapshot(ctx, e.pair)
	if err != nil {
		e.logger.ErrorContext(ctx, err, logger.NewField("action", "create_snapshot"))
		return
	}
	snapshot.OrderOffset = currentOffset

	if err := e.snapshotStore.Store(ctx, snapshot); err != nil {
		e.logger.ErrorContext(ctx, err, logger.NewField("action", "store_snapshot"))
		return
	}

	e.setLastSnapshotOffset(currentOffset)
	e.logger.InfoContext(ctx, "Snapshot stored successfully",
		logger.NewField("offset", currentOffset),
		logger.NewField("orders", len(snapshot.Orders)),
	)
}

func (e *Engine) getOrderOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderOffset
}

func (e *Engine) setOrderOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderOffset = offset
}

func (e *Engine) getLastSnapshotOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSnapshotOffset
}

func (e *Engine) setLastSnapshotOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSnapshotOffset = offset
}

// loadSnapshot restores the pair from the latest stored snapshot.
func (e *Engine) loadSnapshot(ctx context.Context) error {
	snapshot, err := e.snapshotStore.LoadStore(ctx)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return nil
	}

	if err := e.exchange.Restore(ctx, snapshot); err != nil {
		return err
	}

	e.mu.Lock()
	e.orderOffset = snapshot.OrderOffset
	e.lastSnapshotOffset = snapshot.OrderOffset
	e.mu.Unlock()

	e.logger.Info("Orderbook restored from snapshot",
		logger.NewField("orderOffset", snapshot.OrderOffset),
		logger.NewField("lastOrderID", snapshot.LastOrderID),
	)
	return nil
}

// GetOrderOffset returns the offset of the last applied command.
func (e *Engine) GetOrderOffset() int64 {
	return e.getOrderOffset()
}

// GetLastSnapshotOffset returns the offset carried by the last stored snapshot.
func (e *Engine) GetLastSnapshotOffset() int64 {
	return e.getLastSnapshotOffset()
}

// GetTotalTrades returns the number of trades executed by processed commands.
func (e *Engine) GetTotalTrades() int64 {
	e.statsMu.RLock()
	defer e.statsMu.RUnlock()
	return e.totalTrades
}

// GetRejected returns the number of commands that were skipped as invalid.
func (e *Engine) GetRejected() int64 {
	e.statsMu.RLock()
	defer e.statsMu.RUnlock()
	return e.rejected
}
