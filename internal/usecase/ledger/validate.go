package ledger

import (
	"fmt"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/shopspring/decimal"
)

func validateAccount(trader, token string) error {
	if trader == "" {
		return errors.New(errors.InvalidInput, "trader", "trader is required")
	}
	if token == "" {
		return errors.New(errors.InvalidInput, "token", "token is required")
	}
	return nil
}

func validateAmount(amount decimal.Decimal, positive bool) error {
	ok := marketv1.IsWhole(amount)
	if positive {
		ok = marketv1.IsPositiveWhole(amount)
	}
	if !ok {
		return errors.New(errors.InvalidInput, "amount", fmt.Sprintf("invalid amount %s", amount))
	}
	return nil
}
