package orderbook

import (
	"context"
	"fmt"
	"testing"

	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/undo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// place runs one limit order through the book the way the exchange does:
// match, apply maker and taker fills, rest the remainder.
func place(t *rapid.T, f *fixture, ctx context.Context, trader string, side orderv1.Side, price, qty int64) {
	taker, err := f.store.Create(ctx, orderv1.CreateRequest{
		Trader:   trader,
		Pair:     testPair.Symbol(),
		Side:     side,
		Type:     orderv1.TypeLimit,
		Price:    decimal.NewFromInt(price),
		Quantity: decimal.NewFromInt(qty),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := f.book.Match(ctx, taker, decimal.Zero)
	if err != nil {
		t.Fatalf("match: %v", err)
	}

	for _, rec := range res.Records {
		maker, err := f.store.Get(ctx, rec.MakerID)
		if err != nil {
			t.Fatalf("maker: %v", err)
		}
		if maker.Trader == trader {
			t.Fatalf("self trade between %d and %d", rec.TakerID, rec.MakerID)
		}
		if !rec.Price.Equal(maker.Price) {
			t.Fatalf("record price %s differs from maker price %s", rec.Price, maker.Price)
		}
		if side == orderv1.SideBuy && rec.Price.GreaterThan(taker.Price) ||
			side == orderv1.SideSell && rec.Price.LessThan(taker.Price) {
			t.Fatalf("record price %s violates taker limit %s", rec.Price, taker.Price)
		}
	}
	for _, u := range res.MakerUpdates {
		if err := f.store.UpdateStatus(ctx, u.OrderID, u.Status, u.Filled); err != nil {
			t.Fatalf("maker update: %v", err)
		}
	}

	switch {
	case res.Filled.Equal(taker.Quantity):
		err = f.store.UpdateStatus(ctx, taker.ID, orderv1.StatusFilled, res.Filled)
	case res.Filled.IsPositive():
		err = f.store.UpdateStatus(ctx, taker.ID, orderv1.StatusPartiallyFilled, res.Filled)
	}
	if err != nil {
		t.Fatalf("taker update: %v", err)
	}
	if res.Filled.LessThan(taker.Quantity) {
		if err := f.book.AddResting(ctx, taker.ID); err != nil {
			t.Fatalf("rest: %v", err)
		}
	}
}

func checkBook(t *rapid.T, f *fixture) {
	if err := f.book.Validate(); err != nil {
		t.Fatalf("invalid book: %v", err)
	}
	bids, asks := f.book.Bids(), f.book.Asks()
	if len(bids) > 0 && len(asks) > 0 && bids[0].Price.GreaterThanOrEqual(asks[0].Price) {
		// crossing levels may only belong to the same trader
		for _, b := range bids[0].Orders {
			for _, a := range asks[0].Orders {
				if b.Trader != a.Trader {
					t.Fatalf("book crossed between traders: bid %s ask %s", bids[0].Price, asks[0].Price)
				}
			}
		}
	}
}

func TestProperty_BookInvariantsHold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(t, testPair)
		ctx := context.Background()

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			trader := fmt.Sprintf("t%d", rapid.IntRange(0, 3).Draw(rt, "trader"))
			side := rapid.SampledFrom([]orderv1.Side{orderv1.SideBuy, orderv1.SideSell}).Draw(rt, "side")
			price := rapid.Int64Range(95, 105).Draw(rt, "price")
			qty := rapid.Int64Range(1, 20).Draw(rt, "qty")

			place(rt, f, ctx, trader, side, price, qty)
			checkBook(rt, f)
		}
	})
}

func TestProperty_RollbackRestoresBook(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(t, testPair)
		ctx := context.Background()

		resting := rapid.IntRange(0, 30).Draw(rt, "resting")
		for i := 0; i < resting; i++ {
			trader := fmt.Sprintf("t%d", rapid.IntRange(0, 3).Draw(rt, "trader"))
			side := rapid.SampledFrom([]orderv1.Side{orderv1.SideBuy, orderv1.SideSell}).Draw(rt, "side")
			place(rt, f, ctx, trader, side, rapid.Int64Range(95, 105).Draw(rt, "price"), rapid.Int64Range(1, 20).Draw(rt, "qty"))
		}

		before := f.book.Depth(0)
		snapshot := f.book.CreateSnapshot()

		log := undo.New()
		unit := undo.WithLog(ctx, log)
		side := rapid.SampledFrom([]orderv1.Side{orderv1.SideBuy, orderv1.SideSell}).Draw(rt, "unitSide")
		place(rt, f, unit, "taker", side, rapid.Int64Range(90, 110).Draw(rt, "unitPrice"), rapid.Int64Range(1, 100).Draw(rt, "unitQty"))
		log.Rollback()

		if err := f.book.Validate(); err != nil {
			rt.Fatalf("invalid book after rollback: %v", err)
		}
		require.Equal(rt, len(snapshot.Orders), len(f.book.CreateSnapshot().Orders))
		after := f.book.Depth(0)
		if len(before.Bids) != len(after.Bids) || len(before.Asks) != len(after.Asks) {
			rt.Fatalf("level count changed: %v vs %v", before, after)
		}
		for i := range before.Bids {
			if !before.Bids[i].Price.Equal(after.Bids[i].Price) || !before.Bids[i].Quantity.Equal(after.Bids[i].Quantity) {
				rt.Fatalf("bid level %d changed", i)
			}
		}
		for i := range before.Asks {
			if !before.Asks[i].Price.Equal(after.Asks[i].Price) || !before.Asks[i].Quantity.Equal(after.Asks[i].Quantity) {
				rt.Fatalf("ask level %d changed", i)
			}
		}
	})
}
