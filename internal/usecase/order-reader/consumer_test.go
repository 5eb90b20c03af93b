package orderreader

import (
	"testing"

	orderreaderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order-reader/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		wantType orderreaderv1.CommandType
		wantErr  bool
	}{
		{
			name:     "limit command",
			value:    `{"type":"limit","trader":"alice","pair":"WETH/USDC","side":"BUY","price":"100","quantity":"10"}`,
			wantType: orderreaderv1.CommandLimit,
		},
		{
			name:     "cancel command",
			value:    `{"type":"cancel","trader":"alice","orderID":7}`,
			wantType: orderreaderv1.CommandCancel,
		},
		{name: "malformed json", value: `{"type":`, wantErr: true},
		{name: "invalid command", value: `{"type":"limit","pair":"WETH/USDC"}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := decode(kafka.Message{Offset: 42, Value: []byte(tc.value)})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, cmd.Type)
			assert.Equal(t, int64(42), cmd.Offset)
		})
	}
}

func TestDecode_InvalidInput(t *testing.T) {
	_, err := decode(kafka.Message{Value: []byte(`{"type":"twap","trader":"alice","pair":"WETH/USDC"}`)})
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.InvalidInput)))
}
