package marketv1

import (
	"github.com/shopspring/decimal"
)

// BpsDenominator is the number of basis points in one unit.
const BpsDenominator = 10_000

// scale returns 10^decimals.
func scale(decimals int32) decimal.Decimal {
	return decimal.New(1, decimals)
}

// truncDiv divides and drops the fractional part, rounding toward zero.
func truncDiv(num, den decimal.Decimal) decimal.Decimal {
	q, _ := num.QuoRem(den, 0)
	return q
}

// QuoteAmount converts a base quantity at price into quote units:
// baseQty * price / 10^baseDecimals, truncated.
func QuoteAmount(baseQty, price decimal.Decimal, baseDecimals int32) decimal.Decimal {
	return truncDiv(baseQty.Mul(price), scale(baseDecimals))
}

// AffordableBase is the largest base quantity whose cost at price fits in budget:
// budget * 10^baseDecimals / price, truncated.
func AffordableBase(budget, price decimal.Decimal, baseDecimals int32) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return truncDiv(budget.Mul(scale(baseDecimals)), price)
}

// Fee applies a basis-point rate to notional, truncated.
func Fee(notional decimal.Decimal, bps uint32) decimal.Decimal {
	return truncDiv(notional.Mul(decimal.NewFromInt(int64(bps))), decimal.NewFromInt(BpsDenominator))
}

// IsWhole reports whether d is a non-negative integer.
func IsWhole(d decimal.Decimal) bool {
	return !d.IsNegative() && d.IsInteger()
}

// IsPositiveWhole reports whether d is a strictly positive integer.
func IsPositiveWhole(d decimal.Decimal) bool {
	return d.IsPositive() && d.IsInteger()
}
