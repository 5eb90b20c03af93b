package orderstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/undo"
	"github.com/shopspring/decimal"
)

// Store is the in-memory order store. It owns the order id sequence.
type Store struct {
	mu      sync.RWMutex
	orders  map[uint64]*orderv1.Order
	lastID  uint64
	pairs   marketv1.Registry
	journal orderv1.Journal
	logger  logger.Interface
	now     func() time.Time
}

var _ orderv1.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithJournal persists every order change through j inside the caller's unit.
func WithJournal(j orderv1.Journal) Option {
	return func(s *Store) { s.journal = j }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store validating pairs against pairs.
func NewStore(pairs marketv1.Registry, log logger.Interface, opts ...Option) *Store {
	s := &Store{
		orders: make(map[uint64]*orderv1.Order),
		pairs:  pairs,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func invalid(field, message string) error {
	return errors.New(errors.InvalidInput, field, message)
}

func validate(req orderv1.CreateRequest) error {
	switch {
	case req.Trader == "":
		return invalid("trader", "trader is required")
	case !req.Side.Valid():
		return invalid("side", fmt.Sprintf("unknown side %q", req.Side))
	case !req.Type.Valid():
		return invalid("type", fmt.Sprintf("unknown order type %q", req.Type))
	case !marketv1.IsPositiveWhole(req.Quantity):
		return invalid("quantity", "quantity must be a positive integer")
	}

	if req.Type == orderv1.TypeMarket {
		if !req.Price.IsZero() {
			return invalid("price", "market orders take no price")
		}
		return nil
	}
	if !marketv1.IsPositiveWhole(req.Price) {
		return invalid("price", "price must be a positive integer")
	}
	return nil
}

// Create validates req and stores a new OPEN order with the next id.
func (s *Store) Create(ctx context.Context, req orderv1.CreateRequest) (*orderv1.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	pair, ok := s.pairs.Get(req.Pair)
	if !ok {
		return nil, invalid("pair", fmt.Sprintf("unsupported pair %q", req.Pair))
	}

	s.mu.Lock()
	s.lastID++
	order := &orderv1.Order{
		ID:        s.lastID,
		Trader:    req.Trader,
		Pair:      pair,
		Side:      req.Side,
		Type:      req.Type,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Filled:    decimal.Zero,
		Status:    orderv1.StatusOpen,
		CreatedAt: s.now().UTC(),
	}
	s.orders[order.ID] = order
	s.mu.Unlock()

	// ids are never handed out twice, so a rolled back create leaves a gap
	undo.Record(ctx, func() {
		s.mu.Lock()
		delete(s.orders, order.ID)
		s.mu.Unlock()
	})

	if err := s.save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Order created",
		logger.NewField("orderID", order.ID),
		logger.NewField("pair", pair.Symbol()),
		logger.NewField("type", order.Type),
		logger.NewField("side", order.Side),
	)

	return order.Clone(), nil
}

// Get returns a copy of the order.
func (s *Store) Get(_ context.Context, id uint64) (*orderv1.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, errors.New(errors.NotFound, "order_id", fmt.Sprintf("order %d not found", id))
	}
	return order.Clone(), nil
}

// UpdateStatus moves the order to status with filled after checking the lifecycle table.
func (s *Store) UpdateStatus(ctx context.Context, id uint64, status orderv1.Status, filled decimal.Decimal) error {
	s.mu.Lock()
	order, ok := s.orders[id]
	if !ok {
		s.mu.Unlock()
		return errors.New(errors.NotFound, "order_id", fmt.Sprintf("order %d not found", id))
	}

	noop, err := orderv1.CheckTransition(order, status, filled)
	if err != nil || noop {
		s.mu.Unlock()
		return err
	}

	prev := *order
	order.Status = status
	order.Filled = filled
	saved := order.Clone()
	s.mu.Unlock()

	undo.Record(ctx, func() {
		s.mu.Lock()
		*s.orders[id] = prev
		s.mu.Unlock()
	})

	return s.save(ctx, saved)
}

// Cancel moves an active order to CANCELED keeping its fill.
func (s *Store) Cancel(ctx context.Context, id uint64) error {
	s.mu.RLock()
	order, ok := s.orders[id]
	var filled decimal.Decimal
	if ok {
		filled = order.Filled
	}
	s.mu.RUnlock()

	if !ok {
		return errors.New(errors.NotFound, "order_id", fmt.Sprintf("order %d not found", id))
	}
	if order.Status == orderv1.StatusCanceled {
		return errors.New(errors.InvalidTransition, "status", fmt.Sprintf("order %d is already canceled", id))
	}

	return s.UpdateStatus(ctx, id, orderv1.StatusCanceled, filled)
}

// Restore loads orders from a snapshot and moves the id sequence past them.
// It is not recorded in the undo log.
func (s *Store) Restore(_ context.Context, orders []*orderv1.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range orders {
		if o == nil {
			continue
		}
		if !o.Filled.LessThanOrEqual(o.Quantity) || o.Filled.IsNegative() {
			return errors.New(errors.InvalidFill, "filled", fmt.Sprintf("order %d has fill %s above %s", o.ID, o.Filled, o.Quantity))
		}
		s.orders[o.ID] = o.Clone()
		if o.ID > s.lastID {
			s.lastID = o.ID
		}
	}
	return nil
}

// LastID returns the last id handed out.
func (s *Store) LastID() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastID
}

// AdvanceID moves the sequence forward to id. A lower id is ignored.
func (s *Store) AdvanceID(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.lastID {
		s.lastID = id
	}
}

// Seed moves the id sequence past the highest id any source has seen, so ids
// handed out before a restart are never reused.
func (s *Store) Seed(ctx context.Context, sources ...orderv1.IDSource) error {
	for _, src := range sources {
		id, err := src.MaxID(ctx)
		if err != nil {
			return errors.NewTracer("seed order id").Wrap(err)
		}
		s.AdvanceID(id)
	}

	s.logger.InfoContext(ctx, "Order id sequence seeded", logger.NewField("lastID", s.LastID()))
	return nil
}

func (s *Store) save(ctx context.Context, order *orderv1.Order) error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.Save(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("orderID", order.ID), logger.NewField("action", "journal_order"))
		return errors.NewTracer(fmt.Sprintf("journal order %d", order.ID)).Wrap(err)
	}
	return nil
}
