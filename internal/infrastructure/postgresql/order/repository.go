package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/postgresql"
)

const (
	defaultListLimit = 100

	querySave = `INSERT INTO orders (id, trader, base, quote, base_decimals, side, type, price, quantity, filled, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET filled = EXCLUDED.filled, status = EXCLUDED.status, updated_at = NOW()`

	queryMaxID = `SELECT COALESCE(MAX(id), 0) FROM orders`

	queryResting = selectColumns + ` WHERE type = 'LIMIT' AND status IN ('OPEN', 'PARTIALLY_FILLED') ORDER BY id ASC`

	selectColumns = `SELECT id, trader, base, quote, base_decimals, side, type, price, quantity, filled, status, created_at FROM orders`
)

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

var _ OrderRepository = (*repository)(nil)

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) OrderRepository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// Save upserts the order. Only fill and status change after insert.
func (r *repository) Save(ctx context.Context, o *orderv1.Order) error {
	row := FromDomain(o)
	cmd, err := r.db.Exec(ctx, querySave,
		row.ID,
		row.Trader,
		row.Base,
		row.Quote,
		row.BaseDecimals,
		row.Side,
		row.Type,
		row.Price,
		row.Quantity,
		row.Filled,
		row.Status,
		row.CreatedAt,
	)
	if err != nil {
		return errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}

	r.logger.DebugContext(ctx, "Saved order",
		logger.NewField("orderID", row.ID),
		logger.NewField("commandTag", cmd.String()),
	)
	return nil
}

func scanOrder(row interface{ Scan(dest ...any) error }) (*orderv1.Order, error) {
	var o Order
	if err := row.Scan(
		&o.ID,
		&o.Trader,
		&o.Base,
		&o.Quote,
		&o.BaseDecimals,
		&o.Side,
		&o.Type,
		&o.Price,
		&o.Quantity,
		&o.Filled,
		&o.Status,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	return o.ToDomain(), nil
}

// GetByID loads one order.
func (r *repository) GetByID(ctx context.Context, id uint64) (*orderv1.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New(errors.NotFound, "order_id", fmt.Sprintf("order %d not found", id))
	}
	if err != nil {
		return nil, errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}
	return o, nil
}

// List returns orders matching filter, newest first.
func (r *repository) List(ctx context.Context, filter Filter) ([]*orderv1.Order, error) {
	var (
		conds []string
		args  []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if filter.Trader != "" {
		add("trader", filter.Trader)
	}
	if filter.Base != "" {
		add("base", filter.Base)
	}
	if filter.Quote != "" {
		add("quote", filter.Quote)
	}
	if filter.Status != "" {
		add("status", string(filter.Status))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := selectColumns
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}
	defer rows.Close()

	orders := make([]*orderv1.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}
	return orders, nil
}

// MaxID returns the highest journaled order id, zero for an empty journal.
func (r *repository) MaxID(ctx context.Context) (uint64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, queryMaxID).Scan(&id); err != nil {
		return 0, errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}
	return uint64(id), nil
}

// Resting returns every active limit order in arrival order.
func (r *repository) Resting(ctx context.Context) ([]*orderv1.Order, error) {
	rows, err := r.db.Query(ctx, queryResting)
	if err != nil {
		return nil, errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}
	defer rows.Close()

	orders := make([]*orderv1.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}
	return orders, nil
}
