package market

import (
	"testing"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(marketv1.Pair{Base: "WETH", Quote: "USDC", BaseDecimals: 18})
	require.NoError(t, err)

	require.NoError(t, r.Add(marketv1.Pair{Base: "WBTC", Quote: "USDC", BaseDecimals: 8}))

	err = r.Add(marketv1.Pair{Base: "WETH", Quote: "USDC", BaseDecimals: 6})
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.InvalidInput)))

	err = r.Add(marketv1.Pair{Base: "", Quote: "USDC"})
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.InvalidInput)))

	p, ok := r.Get("WETH/USDC")
	require.True(t, ok)
	assert.Equal(t, int32(18), p.BaseDecimals)

	_, ok = r.Get("DOGE/USDC")
	assert.False(t, ok)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "WBTC/USDC", list[0].Symbol())
	assert.Equal(t, "WETH/USDC", list[1].Symbol())
}
