package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	exchangev1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/exchange/v1"
	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	matchpublisherv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/match-publisher/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	orderbookv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/orderbook/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	snapshotv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/snapshot/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/orderbook"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/postgresql"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/undo"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/util"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Dependencies are the collaborators an Exchange composes.
type Dependencies struct {
	Pairs      marketv1.Registry
	Orders     orderv1.Store
	Settlement settlementv1.Engine

	// Transaction, when set, wraps every unit in a database transaction so
	// the postgres ledger and order journal commit with the book.
	Transaction postgresql.Transaction
	// Publisher, when set, receives the trades of every committed unit.
	Publisher matchpublisherv1.MatchPublisher
}

// pairBook is one pair's book and the lock that serializes its operations.
type pairBook struct {
	mu   sync.Mutex
	book orderbookv1.Orderbook
}

// Exchange runs order placement, cancellation and administration as
// all-or-nothing units, one at a time per pair.
type Exchange struct {
	mu      sync.RWMutex
	markets map[string]*pairBook

	pairs      marketv1.Registry
	orders     orderv1.Store
	settlement settlementv1.Engine
	tx         postgresql.Transaction
	publisher  matchpublisherv1.MatchPublisher
	admins     map[string]struct{}
	logger     logger.Interface
	now        func() time.Time
}

var _ exchangev1.Exchange = (*Exchange)(nil)

// NewExchange creates an Exchange with a book for every registered pair.
func NewExchange(deps Dependencies, admins []string, log logger.Interface) *Exchange {
	e := &Exchange{
		markets:    make(map[string]*pairBook),
		pairs:      deps.Pairs,
		orders:     deps.Orders,
		settlement: deps.Settlement,
		tx:         deps.Transaction,
		publisher:  deps.Publisher,
		admins:     make(map[string]struct{}, len(admins)),
		logger:     log,
		now:        time.Now,
	}
	for _, a := range admins {
		if a != "" {
			e.admins[a] = struct{}{}
		}
	}
	for _, p := range deps.Pairs.List() {
		e.markets[p.Symbol()] = e.newPairBook(p)
	}
	return e
}

func (e *Exchange) newPairBook(pair marketv1.Pair) *pairBook {
	return &pairBook{book: orderbook.NewOrderbook(pair, e.orders, e.logger)}
}

func (e *Exchange) pairBook(symbol string) (*pairBook, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	m, ok := e.markets[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", marketv1.ErrUnsupportedPair, symbol)
	}
	return m, nil
}

func actor(ctx context.Context) (string, error) {
	id := util.GetActorID(ctx)
	if id == "" {
		return "", exchangev1.ErrNoActor
	}
	return id, nil
}

func (e *Exchange) requireAdmin(ctx context.Context) error {
	id, err := actor(ctx)
	if err != nil {
		return err
	}
	if _, ok := e.admins[id]; !ok {
		return fmt.Errorf("%w: %s is not an admin", exchangev1.ErrUnauthorized, id)
	}
	return nil
}

// inUnit runs fn as one unit. On error every recorded change is reverted and
// the transaction, if any, rolled back; the caller gets fn's error.
func (e *Exchange) inUnit(ctx context.Context, fn func(ctx context.Context) error) error {
	log := undo.New()
	ctx = undo.WithLog(ctx, log)

	if e.tx != nil {
		txCtx, err := e.tx.Begin(ctx)
		if err != nil {
			return errors.NewTracer("begin unit").Wrap(err)
		}
		ctx = txCtx
	}

	defer func() {
		if p := recover(); p != nil {
			e.rollback(ctx, log)
			panic(p)
		}
	}()

	if err := fn(ctx); err != nil {
		e.rollback(ctx, log)
		return err
	}

	if e.tx != nil {
		if err := e.tx.Commit(ctx); err != nil {
			log.Rollback()
			return errors.NewTracer("commit unit").Wrap(err)
		}
	}
	log.Commit(context.WithoutCancel(ctx))
	return nil
}

func (e *Exchange) rollback(ctx context.Context, log *undo.Log) {
	var errs error
	if e.tx != nil {
		errs = multierr.Append(errs, e.tx.Rollback(ctx))
	}
	log.Rollback()

	if errs != nil {
		e.logger.ErrorContext(ctx, errs, logger.NewField("action", "rollback_unit"))
	}
}

// PlaceLimit places a LIMIT order; any remainder rests on the book.
func (e *Exchange) PlaceLimit(ctx context.Context, pair string, side orderv1.Side, price, quantity decimal.Decimal) (*exchangev1.PlaceResult, error) {
	return e.place(ctx, orderv1.CreateRequest{Pair: pair, Side: side, Type: orderv1.TypeLimit, Price: price, Quantity: quantity})
}

// PlaceMarket places a MARKET order. amount is a base quantity for a sell and a
// quote budget for a buy.
func (e *Exchange) PlaceMarket(ctx context.Context, pair string, side orderv1.Side, amount decimal.Decimal) (*exchangev1.PlaceResult, error) {
	return e.place(ctx, orderv1.CreateRequest{Pair: pair, Side: side, Type: orderv1.TypeMarket, Price: decimal.Zero, Quantity: amount})
}

// PlaceIOC fills what crosses at price and cancels the rest.
func (e *Exchange) PlaceIOC(ctx context.Context, pair string, side orderv1.Side, price, quantity decimal.Decimal) (*exchangev1.PlaceResult, error) {
	return e.place(ctx, orderv1.CreateRequest{Pair: pair, Side: side, Type: orderv1.TypeIOC, Price: price, Quantity: quantity})
}

// PlaceFOK fills the whole quantity at price or cancels without trading.
func (e *Exchange) PlaceFOK(ctx context.Context, pair string, side orderv1.Side, price, quantity decimal.Decimal) (*exchangev1.PlaceResult, error) {
	return e.place(ctx, orderv1.CreateRequest{Pair: pair, Side: side, Type: orderv1.TypeFOK, Price: price, Quantity: quantity})
}

func (e *Exchange) place(ctx context.Context, req orderv1.CreateRequest) (*exchangev1.PlaceResult, error) {
	trader, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	req.Trader = trader

	m, err := e.pairBook(req.Pair)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var result *exchangev1.PlaceResult
	err = e.inUnit(ctx, func(ctx context.Context) error {
		var err error
		result, err = e.execute(ctx, m.book, req)
		return err
	})
	if err != nil {
		e.logger.WarnContext(ctx, "Order rejected",
			logger.NewField("pair", req.Pair),
			logger.NewField("type", req.Type),
			logger.NewField("side", req.Side),
			logger.NewField("error", err.Error()),
		)
		return nil, err
	}

	e.logger.InfoContext(ctx, "Order placed",
		logger.NewField("orderID", result.OrderID),
		logger.NewField("pair", req.Pair),
		logger.NewField("type", req.Type),
		logger.NewField("status", result.Status),
		logger.NewField("trades", len(result.Trades)),
	)
	return result, nil
}

// execute creates, matches, settles and finalizes one order inside a unit.
func (e *Exchange) execute(ctx context.Context, book orderbookv1.Orderbook, req orderv1.CreateRequest) (*exchangev1.PlaceResult, error) {
	order, err := e.orders.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &exchangev1.PlaceResult{
		OrderID:     order.ID,
		Filled:      decimal.Zero,
		FilledQuote: decimal.Zero,
	}

	if order.Type == orderv1.TypeFOK && !book.CanFill(order) {
		if err := e.orders.Cancel(ctx, order.ID); err != nil {
			return nil, err
		}
		result.Status = orderv1.StatusCanceled
		return result, nil
	}

	budget := decimal.Zero
	if order.IsQuoteBudget() {
		budget = order.Remaining()
	}

	match, err := book.Match(ctx, order, budget)
	if err != nil {
		return nil, err
	}

	for _, u := range match.MakerUpdates {
		if err := e.orders.UpdateStatus(ctx, u.OrderID, u.Status, u.Filled); err != nil {
			return nil, err
		}
	}

	if err := e.settlement.ProcessBatch(ctx, match.Records); err != nil {
		return nil, err
	}

	status, err := e.finalize(ctx, book, order, match)
	if err != nil {
		return nil, err
	}

	result.Status = status
	result.Filled = match.Filled
	result.FilledQuote = match.QuoteFilled
	result.Trades = match.Records

	if len(match.Records) > 0 {
		pair, side, records := order.Pair, order.Side, match.Records
		undo.OnCommit(ctx, func(ctx context.Context) {
			e.publish(ctx, pair, side, records)
		})
	}
	return result, nil
}

// finalize applies the taker's fill and the remainder policy of its type.
func (e *Exchange) finalize(ctx context.Context, book orderbookv1.Orderbook, order *orderv1.Order, match *orderbookv1.MatchResult) (orderv1.Status, error) {
	filled := match.Filled
	if order.IsQuoteBudget() {
		filled = match.QuoteFilled
	}

	status := orderv1.StatusOpen
	switch {
	case filled.Equal(order.Quantity):
		status = orderv1.StatusFilled
	case filled.IsPositive():
		status = orderv1.StatusPartiallyFilled
	}

	if status != orderv1.StatusOpen {
		if err := e.orders.UpdateStatus(ctx, order.ID, status, filled); err != nil {
			return "", err
		}
	}
	if status == orderv1.StatusFilled {
		return status, nil
	}

	switch order.Type {
	case orderv1.TypeLimit:
		if err := book.AddResting(ctx, order.ID); err != nil {
			return "", err
		}
		return status, nil
	case orderv1.TypeMarket:
		// a partly filled market order keeps its status and never rests
		if status == orderv1.StatusPartiallyFilled {
			return status, nil
		}
	case orderv1.TypeFOK:
		if status == orderv1.StatusPartiallyFilled {
			return "", errors.New(errors.InvalidFill, "filled",
				fmt.Sprintf("fill-or-kill order %d filled %s of %s", order.ID, filled, order.Quantity))
		}
	}

	if err := e.orders.Cancel(ctx, order.ID); err != nil {
		return "", err
	}
	return orderv1.StatusCanceled, nil
}

func (e *Exchange) publish(ctx context.Context, pair marketv1.Pair, takerSide orderv1.Side, records []settlementv1.Record) {
	if e.publisher == nil {
		return
	}

	ts := e.now()
	events := make([]*matchpublisherv1.TradeEvent, 0, len(records))
	for _, rec := range records {
		events = append(events, matchpublisherv1.CreateFromRecord(pair, takerSide, rec, ts))
	}

	if err := e.publisher.PublishTradeEvents(ctx, events...); err != nil {
		e.logger.ErrorContext(ctx, err,
			logger.NewField("pair", pair.Symbol()),
			logger.NewField("trades", len(events)),
			logger.NewField("action", "publish_trades"),
		)
	}
}

// Cancel cancels an active order owned by the caller and takes it off the book.
func (e *Exchange) Cancel(ctx context.Context, orderID uint64) error {
	trader, err := actor(ctx)
	if err != nil {
		return err
	}

	order, err := e.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Trader != trader {
		return fmt.Errorf("%w: order %d belongs to another trader", exchangev1.ErrUnauthorized, orderID)
	}

	m, err := e.pairBook(order.Pair.Symbol())
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err = e.inUnit(ctx, func(ctx context.Context) error {
		if err := e.orders.Cancel(ctx, orderID); err != nil {
			return err
		}
		m.book.RemoveResting(ctx, orderID)
		return nil
	})
	if err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "Order canceled",
		logger.NewField("orderID", orderID),
		logger.NewField("pair", order.Pair.Symbol()),
	)
	return nil
}

// GetOrder returns the order record.
func (e *Exchange) GetOrder(ctx context.Context, orderID uint64) (*orderv1.Order, error) {
	return e.orders.Get(ctx, orderID)
}

// GetBookDepth returns up to levels aggregated levels per side; levels <= 0
// returns the whole book.
func (e *Exchange) GetBookDepth(_ context.Context, pair string, levels int) (orderbookv1.Depth, error) {
	m, err := e.pairBook(pair)
	if err != nil {
		return orderbookv1.Depth{}, err
	}
	return m.book.Depth(levels), nil
}

// Pairs lists the supported pairs.
func (e *Exchange) Pairs() []marketv1.Pair {
	return e.pairs.List()
}

// AddSupportedPair registers a pair and opens its book.
func (e *Exchange) AddSupportedPair(ctx context.Context, base, quote string, baseDecimals int32) (marketv1.Pair, error) {
	if err := e.requireAdmin(ctx); err != nil {
		return marketv1.Pair{}, err
	}

	pair, err := marketv1.NewPair(base, quote, baseDecimals)
	if err != nil {
		return marketv1.Pair{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.pairs.Add(pair); err != nil {
		return marketv1.Pair{}, err
	}
	e.markets[pair.Symbol()] = e.newPairBook(pair)

	e.logger.InfoContext(ctx, "Pair added",
		logger.NewField("pair", pair.Symbol()),
		logger.NewField("baseDecimals", pair.BaseDecimals),
	)
	return pair, nil
}

// SetFeeRates replaces the maker and taker rates.
func (e *Exchange) SetFeeRates(ctx context.Context, makerBps, takerBps uint32) error {
	if err := e.requireAdmin(ctx); err != nil {
		return err
	}
	return e.settlement.SetFeeRates(makerBps, takerBps)
}

// SetFeeRecipient replaces the account collecting fees.
func (e *Exchange) SetFeeRecipient(ctx context.Context, recipient string) error {
	if err := e.requireAdmin(ctx); err != nil {
		return err
	}
	return e.settlement.SetFeeRecipient(recipient)
}

// FeeConfig returns the current fee configuration.
func (e *Exchange) FeeConfig() settlementv1.FeeConfig {
	return e.settlement.FeeConfig()
}

// Snapshot captures the resting orders of pair and the order id sequence.
func (e *Exchange) Snapshot(_ context.Context, pair string) (*snapshotv1.Snapshot, error) {
	m, err := e.pairBook(pair)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.book.CreateSnapshot()
	snapshot.LastOrderID = e.orders.LastID()
	return snapshot, nil
}

// Restore loads a snapshot into the order store and the pair's book.
func (e *Exchange) Restore(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	if snapshot == nil {
		return errors.New(errors.InvalidInput, "snapshot", "snapshot is required")
	}

	m, err := e.pairBook(snapshot.Pair)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := e.orders.Restore(ctx, snapshot.Orders); err != nil {
		return err
	}
	e.orders.AdvanceID(snapshot.LastOrderID)

	if err := m.book.RestoreOrderbook(snapshot); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "Book restored",
		logger.NewField("pair", snapshot.Pair),
		logger.NewField("orders", len(snapshot.Orders)),
		logger.NewField("offset", snapshot.OrderOffset),
	)
	return nil
}

// Recover rebuilds every book from the resting orders of a durable journal.
// Books of pairs with no resting order are emptied.
func (e *Exchange) Recover(ctx context.Context, resting []*orderv1.Order) error {
	byPair := make(map[string][]*orderv1.Order)
	for _, o := range resting {
		byPair[o.Pair.Symbol()] = append(byPair[o.Pair.Symbol()], o)
	}

	for _, pair := range e.pairs.List() {
		symbol := pair.Symbol()
		if err := e.Restore(ctx, &snapshotv1.Snapshot{Pair: symbol, Orders: byPair[symbol]}); err != nil {
			return err
		}
		delete(byPair, symbol)
	}
	for symbol := range byPair {
		return fmt.Errorf("%w: journal holds resting orders for %s", marketv1.ErrUnsupportedPair, symbol)
	}
	return nil
}
