package state

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// CheckpointStore keeps the block ordered power history of every
// (address, category) pair. Each checkpoint is a separate entry so that a
// write touches one key and a lookup reads O(log n) keys.
type CheckpointStore struct {
	view *StoreView
}

// NewCheckpointStore returns the checkpoint store of view.
func NewCheckpointStore(view *StoreView) *CheckpointStore {
	return &CheckpointStore{view: view}
}

// Count returns the number of checkpoints of (addr, category).
func (cs *CheckpointStore) Count(addr common.Address, category types.Category) uint64 {
	return cs.view.getUint64(CheckpointCountKey(addr, category))
}

// At returns the idx-th checkpoint of (addr, category).
func (cs *CheckpointStore) At(addr common.Address, category types.Category, idx uint64) types.Checkpoint {
	cp := types.Checkpoint{}
	if !cs.view.getObject(CheckpointKey(addr, category, idx), &cp) {
		return types.Checkpoint{Power: new(big.Int)}
	}
	return cp
}

// Latest returns the most recent checkpoint of (addr, category).
func (cs *CheckpointStore) Latest(addr common.Address, category types.Category) (types.Checkpoint, bool) {
	n := cs.Count(addr, category)
	if n == 0 {
		return types.Checkpoint{}, false
	}
	return cs.At(addr, category, n-1), true
}

// Write records power at blockHeight, overwriting a checkpoint already
// taken at the same height.
func (cs *CheckpointStore) Write(addr common.Address, category types.Category, blockHeight uint64, power *big.Int) error {
	n := cs.Count(addr, category)
	if n > 0 {
		last := cs.At(addr, category, n-1)
		if blockHeight < last.BlockHeight {
			logger.Errorf("Non-monotonic checkpoint write for %v/%v: %v < %v", addr, category, blockHeight, last.BlockHeight)
			return errors.Wrapf(types.ErrNonMonotonicBlock, "%v/%v: write at %v, last checkpoint at %v",
				addr, category, blockHeight, last.BlockHeight)
		}
		if blockHeight == last.BlockHeight {
			cs.view.setObject(CheckpointKey(addr, category, n-1), &types.Checkpoint{BlockHeight: blockHeight, Power: types.NoNil(power)})
			return nil
		}
	}
	cs.view.setObject(CheckpointKey(addr, category, n), &types.Checkpoint{BlockHeight: blockHeight, Power: types.NoNil(power)})
	cs.view.setUint64(CheckpointCountKey(addr, category), n+1)
	return nil
}

// Query returns the power of the latest checkpoint at or before
// blockHeight, zero if there is none.
func (cs *CheckpointStore) Query(addr common.Address, category types.Category, blockHeight uint64) *big.Int {
	n := cs.Count(addr, category)
	idx := types.SearchCheckpoints(int(n), blockHeight, func(i int) types.Checkpoint {
		return cs.At(addr, category, uint64(i))
	})
	if idx < 0 {
		return new(big.Int)
	}
	return types.NoNil(cs.At(addr, category, uint64(idx)).Power)
}

// List loads the full history of (addr, category).
func (cs *CheckpointStore) List(addr common.Address, category types.Category) *types.CheckpointList {
	n := cs.Count(addr, category)
	cl := &types.CheckpointList{Checkpoints: make([]types.Checkpoint, 0, n)}
	for i := uint64(0); i < n; i++ {
		cl.Checkpoints = append(cl.Checkpoints, cs.At(addr, category, i))
	}
	return cl
}
