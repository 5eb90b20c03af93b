package main

import (
	"math/rand"
	"testing"

	orderreaderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order-reader/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommands(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cmds := generateCommands(rng, 200, "WETH/USDC", 100, 10, []string{"alice", "bob"})
	require.Len(t, cmds, 200)

	for _, cmd := range cmds {
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "WETH/USDC", cmd.Pair)
		assert.True(t, cmd.Quantity.IsPositive())

		if cmd.Type == orderreaderv1.CommandMarket {
			assert.True(t, cmd.Price.IsZero())
			continue
		}
		assert.True(t, cmd.Price.IsPositive())
		if cmd.Side == orderv1.SideBuy {
			assert.False(t, cmd.Price.IntPart() > 100)
		} else {
			assert.False(t, cmd.Price.IntPart() < 100)
		}
	}
}
