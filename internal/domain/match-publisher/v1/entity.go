package matchpublisherv1

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/shopspring/decimal"
)

// TradeEvent is a settled trade as published to downstream consumers.
type TradeEvent struct {
	ID            string          `json:"id"`
	Pair          string          `json:"pair"`
	TakerOrderID  uint64          `json:"takerOrderID"`
	MakerOrderID  uint64          `json:"makerOrderID"`
	BuyOrderID    uint64          `json:"buyOrderID"`
	SellOrderID   uint64          `json:"sellOrderID"`
	TakerSide     orderv1.Side    `json:"takerSide"`
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	QuoteQuantity decimal.Decimal `json:"quoteQuantity"`
	Timestamp     time.Time       `json:"timestamp"`
}

// CreateFromRecord creates a trade event from a settled record and its taker side.
func CreateFromRecord(pair marketv1.Pair, takerSide orderv1.Side, rec settlementv1.Record, ts time.Time) *TradeEvent {
	event := &TradeEvent{
		ID:            ulid.MustNew(ulid.Timestamp(ts), ulid.DefaultEntropy()).String(),
		Pair:          pair.Symbol(),
		TakerOrderID:  rec.TakerID,
		MakerOrderID:  rec.MakerID,
		TakerSide:     takerSide,
		Price:         rec.Price,
		Quantity:      rec.Quantity,
		QuoteQuantity: marketv1.QuoteAmount(rec.Quantity, rec.Price, pair.BaseDecimals),
		Timestamp:     ts.UTC(),
	}

	if takerSide == orderv1.SideBuy {
		event.BuyOrderID, event.SellOrderID = rec.TakerID, rec.MakerID
	} else {
		event.BuyOrderID, event.SellOrderID = rec.MakerID, rec.TakerID
	}

	return event
}

// ToBytes converts the trade event to a byte array.
func ToBytes(event *TradeEvent) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}

	return data
}

// FromBytes converts a byte array to a trade event.
func FromBytes(data []byte) *TradeEvent {
	var event TradeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
