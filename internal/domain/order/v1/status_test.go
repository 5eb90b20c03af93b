package orderv1

import (
	"testing"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckTransition(t *testing.T) {
	n := decimal.NewFromInt

	tests := []struct {
		name     string
		status   Status
		filled   int64
		to       Status
		toFilled int64
		wantNoop bool
		wantCode errors.ErrorCode
	}{
		{name: "open to partial", status: StatusOpen, to: StatusPartiallyFilled, toFilled: 4},
		{name: "open to filled", status: StatusOpen, to: StatusFilled, toFilled: 10},
		{name: "open to canceled", status: StatusOpen, to: StatusCanceled},
		{name: "partial to higher partial", status: StatusPartiallyFilled, filled: 4, to: StatusPartiallyFilled, toFilled: 6},
		{name: "partial to same partial", status: StatusPartiallyFilled, filled: 4, to: StatusPartiallyFilled, toFilled: 4, wantCode: errors.InvalidTransition},
		{name: "partial to filled", status: StatusPartiallyFilled, filled: 4, to: StatusFilled, toFilled: 10},
		{name: "partial to canceled keeps fill", status: StatusPartiallyFilled, filled: 4, to: StatusCanceled, toFilled: 4},
		{name: "filled again is noop", status: StatusFilled, filled: 10, to: StatusFilled, toFilled: 10, wantNoop: true},
		{name: "canceled again is noop", status: StatusCanceled, filled: 3, to: StatusCanceled, toFilled: 3, wantNoop: true},
		{name: "filled to canceled", status: StatusFilled, filled: 10, to: StatusCanceled, toFilled: 10, wantCode: errors.InvalidTransition},
		{name: "canceled to open", status: StatusCanceled, to: StatusOpen, wantCode: errors.InvalidTransition},
		{name: "open to open", status: StatusOpen, to: StatusOpen, wantCode: errors.InvalidTransition},
		{name: "fill above quantity", status: StatusOpen, to: StatusPartiallyFilled, toFilled: 11, wantCode: errors.InvalidFill},
		{name: "fill decreases", status: StatusPartiallyFilled, filled: 5, to: StatusPartiallyFilled, toFilled: 3, wantCode: errors.InvalidFill},
		{name: "filled status short of quantity", status: StatusOpen, to: StatusFilled, toFilled: 9, wantCode: errors.InvalidFill},
		{name: "partial with full quantity", status: StatusOpen, to: StatusPartiallyFilled, toFilled: 10, wantCode: errors.InvalidFill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{ID: 1, Quantity: n(10), Filled: n(tt.filled), Status: tt.status}

			noop, err := CheckTransition(o, tt.to, n(tt.toFilled))
			if tt.wantCode != "" {
				assert.True(t, errors.ErrorCodeEquals(err, string(tt.wantCode)), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantNoop, noop)
		})
	}
}

func TestOrderHelpers(t *testing.T) {
	o := &Order{Side: SideBuy, Type: TypeMarket, Quantity: decimal.NewFromInt(500), Filled: decimal.NewFromInt(120), Status: StatusPartiallyFilled}

	assert.True(t, o.IsBuy())
	assert.True(t, o.IsQuoteBudget())
	assert.True(t, o.IsActive())
	assert.True(t, decimal.NewFromInt(380).Equal(o.Remaining()))
	assert.Equal(t, SideSell, o.Side.Opposite())

	c := o.Clone()
	c.Filled = decimal.Zero
	assert.True(t, decimal.NewFromInt(120).Equal(o.Filled))

	assert.False(t, Type("STOP").Valid())
	assert.False(t, Side("HOLD").Valid())
}
