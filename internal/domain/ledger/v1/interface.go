package ledgerv1

import (
	"context"

	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/shopspring/decimal"
)

// Ledger holds trader balances and the allowance each trader grants the
// exchange. Transfer spends the sender's allowance.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=ledgerv1_mock
type Ledger interface {
	settlementv1.Ledger
	Deposit(ctx context.Context, trader, token string, amount decimal.Decimal) error
	Approve(ctx context.Context, trader, token string, amount decimal.Decimal) error
	BalanceOf(ctx context.Context, trader, token string) (decimal.Decimal, error)
	AllowanceOf(ctx context.Context, trader, token string) (decimal.Decimal, error)
}
