package orderbook

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/btree"
	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	orderbookv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/orderbook/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	snapshotv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/snapshot/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/undo"
	"github.com/shopspring/decimal"
)

const btreeDegree = 16

// Orderbook is the price-time priority book of one pair. Bids iterate from the
// highest price, asks from the lowest.
type Orderbook struct {
	mu     sync.RWMutex
	pair   marketv1.Pair
	asks   *btree.BTreeG[*orderbookv1.Limit]
	bids   *btree.BTreeG[*orderbookv1.Limit]
	orders map[uint64]*orderbookv1.BookOrder
	reader orderv1.Reader
	logger logger.Interface
}

var _ orderbookv1.Orderbook = (*Orderbook)(nil)

// NewOrderbook creates an empty book for pair. reader resolves orders handed to AddResting.
func NewOrderbook(pair marketv1.Pair, reader orderv1.Reader, log logger.Interface) *Orderbook {
	ob := &Orderbook{
		pair:   pair,
		reader: reader,
		logger: log,
	}
	ob.reset()
	return ob
}

func (ob *Orderbook) reset() {
	ob.asks = btree.NewG(btreeDegree, func(a, b *orderbookv1.Limit) bool {
		return a.Price.LessThan(b.Price)
	})
	ob.bids = btree.NewG(btreeDegree, func(a, b *orderbookv1.Limit) bool {
		return a.Price.GreaterThan(b.Price)
	})
	ob.orders = make(map[uint64]*orderbookv1.BookOrder)
}

// Pair returns the pair this book trades.
func (ob *Orderbook) Pair() marketv1.Pair {
	return ob.pair
}

func (ob *Orderbook) side(side orderv1.Side) *btree.BTreeG[*orderbookv1.Limit] {
	if side == orderv1.SideBuy {
		return ob.bids
	}
	return ob.asks
}

// insert puts order on its level, creating the level when absent. Callers hold mu.
func (ob *Orderbook) insert(order *orderbookv1.BookOrder) error {
	if _, ok := ob.orders[order.ID]; ok {
		return fmt.Errorf("%w: %d", orderbookv1.ErrDuplicateOrder, order.ID)
	}

	tree := ob.side(order.Side)
	limit, ok := tree.Get(orderbookv1.NewLimit(order.Price))
	if !ok {
		limit = orderbookv1.NewLimit(order.Price)
	}
	if err := limit.AddOrder(order); err != nil {
		return err
	}
	if !ok {
		tree.ReplaceOrInsert(limit)
	}
	ob.orders[order.ID] = order
	return nil
}

// remove takes the order off its level and drops the level once empty. Callers hold mu.
func (ob *Orderbook) remove(id uint64) (*orderbookv1.BookOrder, bool) {
	order, ok := ob.orders[id]
	if !ok {
		return nil, false
	}

	tree := ob.side(order.Side)
	if limit, found := tree.Get(orderbookv1.NewLimit(order.Price)); found {
		if _, err := limit.RemoveOrder(id); err != nil {
			ob.logger.Warn("Resting order missing from its level",
				logger.NewField("orderID", id),
				logger.NewField("price", order.Price.String()),
			)
		}
		if limit.IsEmpty() {
			tree.Delete(limit)
		}
	}
	delete(ob.orders, id)
	return order, true
}

func (ob *Orderbook) undoInsert(id uint64) func() {
	return func() {
		ob.mu.Lock()
		defer ob.mu.Unlock()
		ob.remove(id)
	}
}

func (ob *Orderbook) undoRemove(order *orderbookv1.BookOrder) func() {
	return func() {
		ob.mu.Lock()
		defer ob.mu.Unlock()
		if err := ob.insert(order); err != nil {
			ob.logger.Error(errors.TracerFromError(err), logger.NewField("orderID", order.ID), logger.NewField("action", "undo_remove"))
		}
	}
}

func (ob *Orderbook) undoReduce(id uint64, qty decimal.Decimal) func() {
	return func() {
		ob.mu.Lock()
		defer ob.mu.Unlock()
		order, ok := ob.orders[id]
		if !ok {
			return
		}
		if limit, found := ob.side(order.Side).Get(orderbookv1.NewLimit(order.Price)); found {
			limit.Restore(order, qty)
		}
	}
}

// AddResting places the unfilled remainder of an active LIMIT order on the book.
func (ob *Orderbook) AddResting(ctx context.Context, orderID uint64) error {
	order, err := ob.reader.Get(ctx, orderID)
	if err != nil {
		return err
	}

	switch {
	case order.Pair.Symbol() != ob.pair.Symbol():
		return errors.New(errors.InvalidInput, "pair",
			fmt.Sprintf("order %d trades %s, book is %s", orderID, order.Pair.Symbol(), ob.pair.Symbol()))
	case order.Type != orderv1.TypeLimit:
		return errors.New(errors.InvalidInput, "type", fmt.Sprintf("order %d is %s, only LIMIT orders rest", orderID, order.Type))
	case !order.IsActive():
		return errors.New(errors.InvalidTransition, "status", fmt.Sprintf("order %d is %s", orderID, order.Status))
	case !order.Remaining().IsPositive():
		return errors.New(errors.InvalidFill, "filled", fmt.Sprintf("order %d has nothing left to rest", orderID))
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	if err := ob.insert(orderbookv1.NewBookOrder(order)); err != nil {
		return err
	}
	undo.Record(ctx, ob.undoInsert(orderID))

	ob.logger.DebugContext(ctx, "Order resting",
		logger.NewField("orderID", orderID),
		logger.NewField("side", order.Side),
		logger.NewField("price", order.Price.String()),
		logger.NewField("remaining", order.Remaining().String()),
	)
	return nil
}

// RemoveResting takes an order off the book. Unknown ids are ignored.
func (ob *Orderbook) RemoveResting(ctx context.Context, orderID uint64) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	if order, ok := ob.remove(orderID); ok {
		undo.Record(ctx, ob.undoRemove(order))
	}
}

// crosses reports whether a level at price is acceptable to taker.
func crosses(taker *orderv1.Order, price decimal.Decimal) bool {
	if taker.Type == orderv1.TypeMarket {
		return true
	}
	if taker.IsBuy() {
		return price.LessThanOrEqual(taker.Price)
	}
	return price.GreaterThanOrEqual(taker.Price)
}

// Match walks the opposite side best price first and fills taker against
// resting orders in arrival order. quoteBudget bounds a MARKET buy and is
// ignored otherwise. Makers owned by the taker's trader are skipped.
func (ob *Orderbook) Match(ctx context.Context, taker *orderv1.Order, quoteBudget decimal.Decimal) (*orderbookv1.MatchResult, error) {
	if taker == nil {
		return nil, orderbookv1.ErrNilOrder
	}
	if taker.Pair.Symbol() != ob.pair.Symbol() {
		return nil, errors.New(errors.InvalidInput, "pair",
			fmt.Sprintf("order %d trades %s, book is %s", taker.ID, taker.Pair.Symbol(), ob.pair.Symbol()))
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	var (
		byBudget  = taker.IsQuoteBudget()
		remaining = taker.Remaining()
		budget    = quoteBudget
		decimals  = ob.pair.BaseDecimals
		emptied   []*orderbookv1.Limit
		done      bool
	)
	result := &orderbookv1.MatchResult{
		Filled:      decimal.Zero,
		QuoteFilled: decimal.Zero,
	}

	exhausted := func() bool {
		if byBudget {
			return !budget.IsPositive()
		}
		return !remaining.IsPositive()
	}

	ob.side(taker.Side.Opposite()).Ascend(func(limit *orderbookv1.Limit) bool {
		if done || exhausted() || !crosses(taker, limit.Price) {
			return false
		}

		makers := append([]*orderbookv1.BookOrder(nil), limit.Orders...)
		for _, maker := range makers {
			if done || exhausted() {
				break
			}
			if maker.Trader == taker.Trader {
				result.SelfTradeSkips++
				continue
			}

			fill := decimal.Min(remaining, maker.Remaining)
			if byBudget {
				fill = maker.Remaining
				if marketv1.QuoteAmount(fill, limit.Price, decimals).GreaterThan(budget) {
					fill = marketv1.AffordableBase(budget, limit.Price, decimals)
					done = true
				}
				if !fill.IsPositive() {
					done = true
					break
				}
			}

			quote := marketv1.QuoteAmount(fill, limit.Price, decimals)
			result.Records = append(result.Records, settlementv1.Record{
				TakerID:  taker.ID,
				MakerID:  maker.ID,
				Price:    limit.Price,
				Quantity: fill,
			})
			result.Filled = result.Filled.Add(fill)
			result.QuoteFilled = result.QuoteFilled.Add(quote)
			if byBudget {
				budget = budget.Sub(quote)
			} else {
				remaining = remaining.Sub(fill)
			}

			if fill.Equal(maker.Remaining) {
				if _, err := limit.RemoveOrder(maker.ID); err == nil {
					delete(ob.orders, maker.ID)
					undo.Record(ctx, ob.undoRemove(maker))
				}
				result.MakerUpdates = append(result.MakerUpdates, orderbookv1.MakerUpdate{
					OrderID: maker.ID,
					Status:  orderv1.StatusFilled,
					Filled:  maker.Quantity,
				})
				continue
			}

			limit.Reduce(maker, fill)
			undo.Record(ctx, ob.undoReduce(maker.ID, fill))
			result.MakerUpdates = append(result.MakerUpdates, orderbookv1.MakerUpdate{
				OrderID: maker.ID,
				Status:  orderv1.StatusPartiallyFilled,
				Filled:  maker.Filled(),
			})
		}

		if limit.IsEmpty() {
			emptied = append(emptied, limit)
		}
		return true
	})

	opposite := ob.side(taker.Side.Opposite())
	for _, limit := range emptied {
		opposite.Delete(limit)
	}

	if len(result.Records) > 0 || result.SelfTradeSkips > 0 {
		ob.logger.DebugContext(ctx, "Order matched",
			logger.NewField("orderID", taker.ID),
			logger.NewField("records", len(result.Records)),
			logger.NewField("filled", result.Filled.String()),
			logger.NewField("quoteFilled", result.QuoteFilled.String()),
			logger.NewField("selfTradeSkips", result.SelfTradeSkips),
		)
	}

	return result, nil
}

// CanFill reports whether the book holds enough acceptable liquidity from other
// traders to fill taker's whole remaining quantity.
func (ob *Orderbook) CanFill(taker *orderv1.Order) bool {
	if taker == nil {
		return false
	}

	ob.mu.RLock()
	defer ob.mu.RUnlock()

	need := taker.Remaining()
	byBudget := taker.IsQuoteBudget()
	available := decimal.Zero

	ob.side(taker.Side.Opposite()).Ascend(func(limit *orderbookv1.Limit) bool {
		if !crosses(taker, limit.Price) {
			return false
		}
		for _, maker := range limit.Orders {
			if maker.Trader == taker.Trader {
				continue
			}
			if byBudget {
				available = available.Add(marketv1.QuoteAmount(maker.Remaining, limit.Price, ob.pair.BaseDecimals))
			} else {
				available = available.Add(maker.Remaining)
			}
			if available.GreaterThanOrEqual(need) {
				return false
			}
		}
		return true
	})

	return available.GreaterThanOrEqual(need)
}

// Contains reports whether orderID is resting.
func (ob *Orderbook) Contains(orderID uint64) bool {
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	_, ok := ob.orders[orderID]
	return ok
}

func collectLevels(tree *btree.BTreeG[*orderbookv1.Limit], n int) []orderbookv1.Level {
	levels := make([]orderbookv1.Level, 0)
	tree.Ascend(func(limit *orderbookv1.Limit) bool {
		if n > 0 && len(levels) >= n {
			return false
		}
		levels = append(levels, orderbookv1.Level{
			Price:    limit.Price,
			Quantity: limit.TotalVolume,
			Orders:   limit.OrderCount(),
		})
		return true
	})
	return levels
}

// Depth returns up to levels aggregated levels per side, best first. levels <= 0 returns all.
func (ob *Orderbook) Depth(levels int) orderbookv1.Depth {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	return orderbookv1.Depth{
		Pair: ob.pair.Symbol(),
		Bids: collectLevels(ob.bids, levels),
		Asks: collectLevels(ob.asks, levels),
	}
}

func cloneLimits(tree *btree.BTreeG[*orderbookv1.Limit]) []*orderbookv1.Limit {
	limits := make([]*orderbookv1.Limit, 0, tree.Len())
	tree.Ascend(func(limit *orderbookv1.Limit) bool {
		c := orderbookv1.NewLimit(limit.Price)
		for _, o := range limit.Orders {
			copied := *o
			c.Orders = append(c.Orders, &copied)
		}
		c.TotalVolume = limit.TotalVolume
		limits = append(limits, c)
		return true
	})
	return limits
}

// Asks returns a copy of the ask levels sorted by price ascending.
func (ob *Orderbook) Asks() []*orderbookv1.Limit {
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	return cloneLimits(ob.asks)
}

// Bids returns a copy of the bid levels sorted by price descending.
func (ob *Orderbook) Bids() []*orderbookv1.Limit {
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	return cloneLimits(ob.bids)
}

func (ob *Orderbook) toOrder(o *orderbookv1.BookOrder) *orderv1.Order {
	status := orderv1.StatusOpen
	if o.Remaining.LessThan(o.Quantity) {
		status = orderv1.StatusPartiallyFilled
	}
	return &orderv1.Order{
		ID:        o.ID,
		Trader:    o.Trader,
		Pair:      ob.pair,
		Side:      o.Side,
		Type:      orderv1.TypeLimit,
		Price:     o.Price,
		Quantity:  o.Quantity,
		Filled:    o.Filled(),
		Status:    status,
		CreatedAt: o.CreatedAt,
	}
}

// CreateSnapshot captures every resting order. The offset is set by the caller.
func (ob *Orderbook) CreateSnapshot() *snapshotv1.Snapshot {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	orders := make([]*orderv1.Order, 0, len(ob.orders))
	collect := func(limit *orderbookv1.Limit) bool {
		for _, o := range limit.Orders {
			orders = append(orders, ob.toOrder(o))
		}
		return true
	}
	ob.bids.Ascend(collect)
	ob.asks.Ascend(collect)

	return &snapshotv1.Snapshot{
		Pair:   ob.pair.Symbol(),
		Orders: orders,
	}
}

// RestoreOrderbook replaces the book with the active orders of snapshot.
func (ob *Orderbook) RestoreOrderbook(snapshot *snapshotv1.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}
	if snapshot.Pair != ob.pair.Symbol() {
		return fmt.Errorf("snapshot is for %s, book is %s", snapshot.Pair, ob.pair.Symbol())
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	ob.reset()
	for _, order := range snapshot.Orders {
		if order == nil || !order.IsActive() || !order.Remaining().IsPositive() {
			continue
		}
		if err := ob.insert(orderbookv1.NewBookOrder(order)); err != nil {
			return fmt.Errorf("failed to restore order %d: %w", order.ID, err)
		}
	}
	return nil
}

func validateSide(tree *btree.BTreeG[*orderbookv1.Limit], side orderv1.Side, index map[uint64]*orderbookv1.BookOrder) (int, error) {
	var (
		prev  *orderbookv1.Limit
		count int
		err   error
	)
	tree.Ascend(func(limit *orderbookv1.Limit) bool {
		if limit.IsEmpty() {
			err = fmt.Errorf("empty %s level at %s", side, limit.Price)
			return false
		}
		if prev != nil {
			ordered := limit.Price.GreaterThan(prev.Price)
			if side == orderv1.SideBuy {
				ordered = limit.Price.LessThan(prev.Price)
			}
			if !ordered {
				err = fmt.Errorf("%s levels out of order at %s", side, limit.Price)
				return false
			}
		}
		if err = limit.Validate(); err != nil {
			return false
		}
		for _, o := range limit.Orders {
			if o.Side != side || !o.Price.Equal(limit.Price) {
				err = fmt.Errorf("order %d misplaced at %s %s", o.ID, side, limit.Price)
				return false
			}
			if index[o.ID] != o {
				err = fmt.Errorf("order %d missing from index", o.ID)
				return false
			}
		}
		count += limit.OrderCount()
		prev = limit
		return true
	})
	return count, err
}

// Validate checks level ordering, level aggregates and the order index.
func (ob *Orderbook) Validate() error {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	bids, err := validateSide(ob.bids, orderv1.SideBuy, ob.orders)
	if err != nil {
		return err
	}
	asks, err := validateSide(ob.asks, orderv1.SideSell, ob.orders)
	if err != nil {
		return err
	}
	if bids+asks != len(ob.orders) {
		return fmt.Errorf("index holds %d orders, levels hold %d", len(ob.orders), bids+asks)
	}
	return nil
}
