package types

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/pkg/errors"
)

// Checkpoint is a power snapshot taken at a block height.
type Checkpoint struct {
	BlockHeight uint64
	Power       *big.Int
}

func (c Checkpoint) String() string {
	return fmt.Sprintf("Checkpoint{%v: %v}", c.BlockHeight, c.Power)
}

// SearchCheckpoints returns the index of the latest checkpoint with
// BlockHeight <= height among n checkpoints sorted by height, or -1 when
// every checkpoint is newer. at(i) is called O(log n) times.
func SearchCheckpoints(n int, height uint64, at func(i int) Checkpoint) int {
	// first index whose height is beyond the target
	idx := sort.Search(n, func(i int) bool {
		return at(i).BlockHeight > height
	})
	return idx - 1
}

// CheckpointList is an in-memory sequence of checkpoints strictly ordered
// by block height.
type CheckpointList struct {
	Checkpoints []Checkpoint
}

// Len returns the number of checkpoints.
func (cl *CheckpointList) Len() int {
	return len(cl.Checkpoints)
}

// Write records power at blockHeight. A write at the height of the last
// checkpoint overwrites it. Writing below the last height is rejected.
func (cl *CheckpointList) Write(blockHeight uint64, power *big.Int) error {
	n := len(cl.Checkpoints)
	if n > 0 {
		last := &cl.Checkpoints[n-1]
		if blockHeight < last.BlockHeight {
			return errors.Wrapf(ErrNonMonotonicBlock, "write at %v, last checkpoint at %v", blockHeight, last.BlockHeight)
		}
		if blockHeight == last.BlockHeight {
			last.Power = NoNil(power)
			return nil
		}
	}
	cl.Checkpoints = append(cl.Checkpoints, Checkpoint{
		BlockHeight: blockHeight,
		Power:       NoNil(power),
	})
	return nil
}

// PowerAt returns the power of the latest checkpoint at or before
// blockHeight, zero if there is none.
func (cl *CheckpointList) PowerAt(blockHeight uint64) *big.Int {
	idx := SearchCheckpoints(len(cl.Checkpoints), blockHeight, func(i int) Checkpoint {
		return cl.Checkpoints[i]
	})
	if idx < 0 {
		return new(big.Int)
	}
	return NoNil(cl.Checkpoints[idx].Power)
}

// Latest returns the most recent checkpoint.
func (cl *CheckpointList) Latest() (Checkpoint, bool) {
	if len(cl.Checkpoints) == 0 {
		return Checkpoint{}, false
	}
	return cl.Checkpoints[len(cl.Checkpoints)-1], true
}
