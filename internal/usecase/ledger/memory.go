package ledger

import (
	"context"
	"fmt"
	"sync"

	ledgerv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/ledger/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/undo"
	"github.com/shopspring/decimal"
)

type account struct {
	trader, token string
}

// Memory is an in-memory ledger. Every mutation records its inverse in the
// undo log carried by ctx.
type Memory struct {
	mu         sync.RWMutex
	balances   map[account]decimal.Decimal
	allowances map[account]decimal.Decimal
	logger     logger.Interface
}

var _ ledgerv1.Ledger = (*Memory)(nil)

// NewMemory creates an empty ledger.
func NewMemory(log logger.Interface) *Memory {
	return &Memory{
		balances:   make(map[account]decimal.Decimal),
		allowances: make(map[account]decimal.Decimal),
		logger:     log,
	}
}

// add applies delta at key in m and records the opposite delta. Rolling back
// subtracts delta, leaving changes committed by other units in place.
// Callers hold mu.
func (l *Memory) add(ctx context.Context, m map[account]decimal.Decimal, key account, delta decimal.Decimal) {
	m[key] = m[key].Add(delta)
	undo.Record(ctx, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		m[key] = m[key].Sub(delta)
	})
}

// Deposit credits amount to trader's balance of token.
func (l *Memory) Deposit(ctx context.Context, trader, token string, amount decimal.Decimal) error {
	if err := validateAccount(trader, token); err != nil {
		return err
	}
	if err := validateAmount(amount, true); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.add(ctx, l.balances, account{trader, token}, amount)
	return nil
}

// Approve sets the allowance trader grants the exchange for token.
func (l *Memory) Approve(ctx context.Context, trader, token string, amount decimal.Decimal) error {
	if err := validateAccount(trader, token); err != nil {
		return err
	}
	if err := validateAmount(amount, false); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := account{trader, token}
	l.add(ctx, l.allowances, key, amount.Sub(l.allowances[key]))
	return nil
}

// BalanceOf returns trader's balance of token.
func (l *Memory) BalanceOf(_ context.Context, trader, token string) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account{trader, token}], nil
}

// AllowanceOf returns the remaining allowance of trader for token.
func (l *Memory) AllowanceOf(_ context.Context, trader, token string) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowances[account{trader, token}], nil
}

// Transfer moves amount of token from one trader to another, spending the
// sender's allowance.
func (l *Memory) Transfer(ctx context.Context, token, from, to string, amount decimal.Decimal) error {
	if err := validateAccount(from, token); err != nil {
		return err
	}
	if err := validateAccount(to, token); err != nil {
		return err
	}
	if err := validateAmount(amount, true); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	src, dst := account{from, token}, account{to, token}
	balance, allowance := l.balances[src], l.allowances[src]
	if balance.LessThan(amount) {
		return fmt.Errorf("%w: %s holds %s %s, needs %s", settlementv1.ErrInsufficientFunds, from, balance, token, amount)
	}
	if allowance.LessThan(amount) {
		return fmt.Errorf("%w: %s allows %s %s, needs %s", settlementv1.ErrInsufficientFunds, from, allowance, token, amount)
	}

	l.add(ctx, l.allowances, src, amount.Neg())
	l.add(ctx, l.balances, src, amount.Neg())
	l.add(ctx, l.balances, dst, amount)

	l.logger.DebugContext(ctx, "Transfer",
		logger.NewField("token", token),
		logger.NewField("from", from),
		logger.NewField("to", to),
		logger.NewField("amount", amount.String()),
	)
	return nil
}
