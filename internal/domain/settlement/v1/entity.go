package settlementv1

import (
	"fmt"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/shopspring/decimal"
)

// Record is one maker/taker match awaiting fund transfer. Price is always the
// maker's resting price and Quantity is in base units.
type Record struct {
	TakerID   uint64          `json:"takerID"`
	MakerID   uint64          `json:"makerID"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Processed bool            `json:"processed"`
}

// Key identifies the record for idempotency.
func (r Record) Key() string {
	return fmt.Sprintf("%d/%d", r.TakerID, r.MakerID)
}

// FeeConfig holds maker and taker rates in basis points and the fee recipient.
type FeeConfig struct {
	MakerBps  uint32 `json:"makerBps" env:"MAKER_BPS" envDefault:"0"`
	TakerBps  uint32 `json:"takerBps" env:"TAKER_BPS" envDefault:"0"`
	Recipient string `json:"recipient" env:"RECIPIENT" envDefault:"fee-recipient"`
}

// ValidateRates checks both rates against the basis-point denominator.
func ValidateRates(makerBps, takerBps uint32) error {
	if makerBps > marketv1.BpsDenominator || takerBps > marketv1.BpsDenominator {
		return errors.New(errors.InvalidInput, "bps",
			fmt.Sprintf("fee rates must not exceed %d bps", marketv1.BpsDenominator))
	}
	return nil
}

// Validate checks the rates and the recipient.
func (f FeeConfig) Validate() error {
	if err := ValidateRates(f.MakerBps, f.TakerBps); err != nil {
		return err
	}
	if f.Recipient == "" {
		return errors.New(errors.InvalidInput, "recipient", "fee recipient is required")
	}
	return nil
}

// Leg is one ledger movement of a settled record.
type Leg struct {
	Token  string          `json:"token"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Breakdown is the computed money flow of one record.
type Breakdown struct {
	Notional decimal.Decimal `json:"notional"`
	MakerFee decimal.Decimal `json:"makerFee"`
	TakerFee decimal.Decimal `json:"takerFee"`
	Legs     []Leg           `json:"legs"`
}
