package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

func TestGovernanceAggregator(t *testing.T) {
	assert := assert.New(t)

	view := NewStoreView(0, backend.NewMemDatabase())
	ga := NewGovernanceAggregator(view)

	_, ok := ga.Result(types.AxisDecayPeriod)
	assert.False(ok)

	ga.Submit(types.AxisDecayPeriod, testAddr(0), big.NewInt(100), big.NewInt(1), 1)
	ga.Submit(types.AxisDecayPeriod, testAddr(1), big.NewInt(200), big.NewInt(3), 1)
	value, ok := ga.Result(types.AxisDecayPeriod)
	assert.True(ok)
	assert.Equal(int64(175), value.Int64())

	// last write wins
	ga.Submit(types.AxisDecayPeriod, testAddr(0), big.NewInt(200), big.NewInt(1), 2)
	value, _ = ga.Result(types.AxisDecayPeriod)
	assert.Equal(int64(200), value.Int64())
	assert.Equal(2, len(ga.Votes(types.AxisDecayPeriod)))

	record, ok := ga.Vote(types.AxisDecayPeriod, testAddr(0))
	assert.True(ok)
	assert.Equal(uint64(2), record.BlockHeight)

	// no weight at all falls back to the plain average
	ga.Submit(types.AxisFee, testAddr(0), big.NewInt(10), big.NewInt(0), 2)
	ga.Submit(types.AxisFee, testAddr(1), big.NewInt(20), big.NewInt(0), 2)
	value, _ = ga.Result(types.AxisFee)
	assert.Equal(int64(15), value.Int64())
}
