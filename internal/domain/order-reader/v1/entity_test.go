package orderreaderv1

import (
	"testing"

	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderCommand_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cmd     PlaceOrderCommand
		wantErr bool
	}{
		{name: "limit", cmd: PlaceOrderCommand{Type: CommandLimit, Trader: "alice", Pair: "WETH/USDC"}},
		{name: "cancel", cmd: PlaceOrderCommand{Type: CommandCancel, Trader: "alice", OrderID: 4}},
		{name: "no trader", cmd: PlaceOrderCommand{Type: CommandLimit, Pair: "WETH/USDC"}, wantErr: true},
		{name: "cancel without id", cmd: PlaceOrderCommand{Type: CommandCancel, Trader: "alice"}, wantErr: true},
		{name: "no pair", cmd: PlaceOrderCommand{Type: CommandFOK, Trader: "alice"}, wantErr: true},
		{name: "unknown type", cmd: PlaceOrderCommand{Type: "stop", Trader: "alice", Pair: "WETH/USDC"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cmd.Validate()
			if tc.wantErr {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.InvalidInput)))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPlaceOrderCommand_Bytes(t *testing.T) {
	cmd := &PlaceOrderCommand{
		Type:     CommandIOC,
		Trader:   "alice",
		Pair:     "WETH/USDC",
		Side:     orderv1.SideBuy,
		Price:    decimal.NewFromInt(100),
		Quantity: decimal.RequireFromString("1000000000000000000000"),
		Offset:   12,
	}

	data, err := cmd.ToBytes()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Offset")

	got, err := FromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, CommandIOC, got.Type)
	assert.True(t, cmd.Quantity.Equal(got.Quantity))
	assert.Zero(t, got.Offset)

	_, err = FromBytes([]byte("{"))
	assert.Error(t, err)
}
