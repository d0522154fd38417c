package state

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

func TestLedgerStateBasics(t *testing.T) {
	assert := assert.New(t)

	chainID := "testchain"
	db := backend.NewMemDatabase()
	ls := NewLedgerState(chainID, db)

	// ChainID
	assert.Equal(chainID, ls.GetChainID())

	// Height
	assert.Equal(uint64(0), ls.Height())
	assert.Nil(ls.Commit())
	assert.Equal(uint64(1), ls.Height())
	assert.Equal(uint64(1), ls.Delivered().Height())

	assert.Nil(ls.AdvanceTo(10))
	assert.Equal(uint64(10), ls.Height())
	assert.Nil(ls.AdvanceTo(10))
	err := ls.AdvanceTo(9)
	assert.True(errors.Is(err, types.ErrNonMonotonicBlock))
	assert.Equal(uint64(10), ls.Height())

	// Scratch views
	key := common.Bytes("k")
	scratch := ls.Scratch()
	scratch.Set(key, common.Bytes("v"))
	assert.Nil(ls.Delivered().Get(key))
	ls.ApplyScratch(scratch)
	assert.Equal(common.Bytes("v"), ls.Delivered().Get(key))
	assert.Nil(ls.Commit())

	// Reopen
	ls2 := NewLedgerState("", db)
	assert.Equal(chainID, ls2.GetChainID())
	assert.Equal(uint64(11), ls2.Height())
	assert.Equal(common.Bytes("v"), ls2.Delivered().Get(key))
}

func TestEventLog(t *testing.T) {
	assert := assert.New(t)

	view := NewStoreView(5, backend.NewMemDatabase())
	el := NewEventLog(view)
	assert.Equal(uint64(0), el.Count())

	for i := 0; i < 3; i++ {
		el.Append(types.NewEvent(types.EventTransfer, &types.TransferData{Amount: types.Tokens(int64(i))}))
	}
	assert.Equal(uint64(3), el.Count())

	events := el.Range(1, 100)
	assert.Equal(2, len(events))
	assert.Equal(uint64(1), events[0].Index)
	assert.Equal(uint64(5), events[0].BlockHeight)

	payload, err := events[1].Decode()
	assert.Nil(err)
	assert.Equal(types.Tokens(2), payload.(*types.TransferData).Amount)

	_, ok := el.Get(3)
	assert.False(ok)
}
