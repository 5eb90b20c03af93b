package orderreaderv1

import (
	"encoding/json"
	"fmt"

	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/shopspring/decimal"
)

// CommandType selects the exchange operation a command runs.
type CommandType string

const (
	CommandLimit  CommandType = "limit"
	CommandMarket CommandType = "market"
	CommandIOC    CommandType = "ioc"
	CommandFOK    CommandType = "fok"
	CommandCancel CommandType = "cancel"
)

// PlaceOrderCommand is one order instruction read from the command topic.
type PlaceOrderCommand struct {
	Type   CommandType  `json:"type"`
	Trader string       `json:"trader"`
	Pair   string       `json:"pair"`
	Side   orderv1.Side `json:"side"`
	// Price is ignored for market and cancel commands.
	Price decimal.Decimal `json:"price"`
	// Quantity is a quote budget for a market buy.
	Quantity decimal.Decimal `json:"quantity"`
	OrderID  uint64          `json:"orderID,omitempty"`

	// Offset is the topic offset the command was read at.
	Offset int64 `json:"-"`
}

// Validate checks the fields required by the command type.
func (c *PlaceOrderCommand) Validate() error {
	if c.Trader == "" {
		return errors.New(errors.InvalidInput, "trader", "trader is required")
	}
	switch c.Type {
	case CommandCancel:
		if c.OrderID == 0 {
			return errors.New(errors.InvalidInput, "orderID", "cancel requires an order id")
		}
		return nil
	case CommandLimit, CommandMarket, CommandIOC, CommandFOK:
		if c.Pair == "" {
			return errors.New(errors.InvalidInput, "pair", "pair is required")
		}
		return nil
	}
	return errors.New(errors.InvalidInput, "type", fmt.Sprintf("unknown command type %q", c.Type))
}

// ToBytes encodes the command as JSON.
func (c *PlaceOrderCommand) ToBytes() ([]byte, error) {
	return json.Marshal(c)
}

// FromBytes decodes a JSON command.
func FromBytes(data []byte) (*PlaceOrderCommand, error) {
	var cmd PlaceOrderCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, errors.NewTracer("decode order command").Wrap(err)
	}
	return &cmd, nil
}
