package state

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

func TestCheckpointStore(t *testing.T) {
	assert := assert.New(t)

	view := NewStoreView(0, backend.NewMemDatabase())
	cs := NewCheckpointStore(view)
	addr := common.HexToAddress("0x0000000000000000000000000000000000000001")

	assert.Equal(0, cs.Query(addr, types.CategoryStake, 0).Sign())
	_, ok := cs.Latest(addr, types.CategoryStake)
	assert.False(ok)

	assert.Nil(cs.Write(addr, types.CategoryStake, 10, big.NewInt(1)))
	assert.Nil(cs.Write(addr, types.CategoryStake, 10, big.NewInt(2)))
	assert.Nil(cs.Write(addr, types.CategoryStake, 20, big.NewInt(3)))
	assert.Equal(uint64(2), cs.Count(addr, types.CategoryStake))

	assert.Equal(0, cs.Query(addr, types.CategoryStake, 9).Sign())
	assert.Equal(int64(2), cs.Query(addr, types.CategoryStake, 10).Int64())
	assert.Equal(int64(2), cs.Query(addr, types.CategoryStake, 19).Int64())
	assert.Equal(int64(3), cs.Query(addr, types.CategoryStake, 20).Int64())
	assert.Equal(int64(3), cs.Query(addr, types.CategoryStake, 1000).Int64())

	// categories are independent
	assert.Equal(0, cs.Query(addr, types.CategoryGovernance, 1000).Sign())

	err := cs.Write(addr, types.CategoryStake, 19, big.NewInt(4))
	assert.True(errors.Is(err, types.ErrNonMonotonicBlock))
	assert.Equal(int64(3), cs.Query(addr, types.CategoryStake, 1000).Int64())

	latest, ok := cs.Latest(addr, types.CategoryStake)
	assert.True(ok)
	assert.Equal(uint64(20), latest.BlockHeight)

	cl := cs.List(addr, types.CategoryStake)
	assert.Equal(2, cl.Len())
	for _, h := range []uint64{0, 9, 10, 15, 20, 25} {
		assert.Equal(cs.Query(addr, types.CategoryStake, h), cl.PowerAt(h))
	}
}
