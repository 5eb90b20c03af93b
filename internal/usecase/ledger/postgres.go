package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	ledgerv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/ledger/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/postgresql"
	"github.com/shopspring/decimal"
)

const (
	queryDeposit = `INSERT INTO balances (trader, token, amount) VALUES ($1, $2, $3)
ON CONFLICT (trader, token) DO UPDATE SET amount = balances.amount + EXCLUDED.amount`

	queryApprove = `INSERT INTO allowances (trader, token, amount) VALUES ($1, $2, $3)
ON CONFLICT (trader, token) DO UPDATE SET amount = EXCLUDED.amount`

	queryBalance   = `SELECT amount FROM balances WHERE trader = $1 AND token = $2`
	queryAllowance = `SELECT amount FROM allowances WHERE trader = $1 AND token = $2`

	querySpendAllowance = `UPDATE allowances SET amount = amount - $3 WHERE trader = $1 AND token = $2 AND amount >= $3`
	queryDebitBalance   = `UPDATE balances SET amount = amount - $3 WHERE trader = $1 AND token = $2 AND amount >= $3`

	queryRecordTransfer = `INSERT INTO transfers (token, from_trader, to_trader, amount) VALUES ($1, $2, $3, $4)`
)

// Postgres is a ledger backed by the balances, allowances and transfers tables.
// Calls join the transaction carried by ctx, so rolling back the caller's unit
// rolls back every leg.
type Postgres struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

var _ ledgerv1.Ledger = (*Postgres)(nil)

// NewPostgres creates a Postgres ledger.
func NewPostgres(db postgresql.PostgreSQLClient, log logger.Interface) *Postgres {
	return &Postgres{
		db:     db,
		logger: log,
	}
}

// inTx runs fn in the transaction carried by ctx, or in a new one.
func (l *Postgres) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := postgresql.GetTx(ctx); ok {
		return fn(ctx)
	}
	return postgresql.WithTx(ctx, l.db, fn)
}

// Deposit credits amount to trader's balance of token.
func (l *Postgres) Deposit(ctx context.Context, trader, token string, amount decimal.Decimal) error {
	if err := validateAccount(trader, token); err != nil {
		return err
	}
	if err := validateAmount(amount, true); err != nil {
		return err
	}

	if _, err := l.db.Exec(ctx, queryDeposit, trader, token, amount); err != nil {
		return errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}
	return nil
}

// Approve sets the allowance trader grants the exchange for token.
func (l *Postgres) Approve(ctx context.Context, trader, token string, amount decimal.Decimal) error {
	if err := validateAccount(trader, token); err != nil {
		return err
	}
	if err := validateAmount(amount, false); err != nil {
		return err
	}

	if _, err := l.db.Exec(ctx, queryApprove, trader, token, amount); err != nil {
		return errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}
	return nil
}

func (l *Postgres) amount(ctx context.Context, query, trader, token string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := l.db.QueryRow(ctx, query, trader, token).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
	}
	return amount, nil
}

// BalanceOf returns trader's balance of token.
func (l *Postgres) BalanceOf(ctx context.Context, trader, token string) (decimal.Decimal, error) {
	return l.amount(ctx, queryBalance, trader, token)
}

// AllowanceOf returns the remaining allowance of trader for token.
func (l *Postgres) AllowanceOf(ctx context.Context, trader, token string) (decimal.Decimal, error) {
	return l.amount(ctx, queryAllowance, trader, token)
}

// Transfer moves amount of token between traders with guarded updates, so a
// short balance or allowance never goes negative.
func (l *Postgres) Transfer(ctx context.Context, token, from, to string, amount decimal.Decimal) error {
	if err := validateAccount(from, token); err != nil {
		return err
	}
	if err := validateAccount(to, token); err != nil {
		return err
	}
	if err := validateAmount(amount, true); err != nil {
		return err
	}

	return l.inTx(ctx, func(ctx context.Context) error {
		tag, err := l.db.Exec(ctx, querySpendAllowance, from, token, amount)
		if err != nil {
			return errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s allowance for %s below %s", settlementv1.ErrInsufficientFunds, from, token, amount)
		}

		tag, err = l.db.Exec(ctx, queryDebitBalance, from, token, amount)
		if err != nil {
			return errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s balance of %s below %s", settlementv1.ErrInsufficientFunds, from, token, amount)
		}

		if _, err := l.db.Exec(ctx, queryDeposit, to, token, amount); err != nil {
			return errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
		}

		cmd, err := l.db.Exec(ctx, queryRecordTransfer, token, from, to, amount)
		if err != nil {
			return errors.TracerFromError(err).WithCode(errors.GeneralRepositoryError)
		}

		l.logger.DebugContext(ctx, "Transfer recorded",
			logger.NewField("commandTag", cmd.String()),
			logger.NewField("token", token),
			logger.NewField("from", from),
			logger.NewField("to", to),
		)
		return nil
	})
}
