package types

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCheckpointListZeroBeforeFirst(t *testing.T) {
	assert := assert.New(t)

	cl := &CheckpointList{}
	assert.Equal(0, cl.PowerAt(0).Sign())
	assert.Equal(0, cl.PowerAt(1000).Sign())
	_, ok := cl.Latest()
	assert.False(ok)

	assert.Nil(cl.Write(10, big.NewInt(5)))
	assert.Equal(0, cl.PowerAt(9).Sign())
	assert.Equal(int64(5), cl.PowerAt(10).Int64())
	assert.Equal(int64(5), cl.PowerAt(1000).Int64())
}

func TestCheckpointListCoalesce(t *testing.T) {
	assert := assert.New(t)

	cl := &CheckpointList{}
	assert.Nil(cl.Write(3, big.NewInt(1)))
	assert.Nil(cl.Write(3, big.NewInt(2)))
	assert.Nil(cl.Write(3, big.NewInt(7)))
	assert.Equal(1, cl.Len())
	assert.Equal(int64(7), cl.PowerAt(3).Int64())

	assert.Nil(cl.Write(4, big.NewInt(8)))
	assert.Equal(2, cl.Len())
	latest, ok := cl.Latest()
	assert.True(ok)
	assert.Equal(uint64(4), latest.BlockHeight)
	assert.Equal(int64(8), latest.Power.Int64())
}

func TestCheckpointListNonMonotonic(t *testing.T) {
	assert := assert.New(t)

	cl := &CheckpointList{}
	assert.Nil(cl.Write(10, big.NewInt(1)))
	err := cl.Write(9, big.NewInt(2))
	assert.True(errors.Is(err, ErrNonMonotonicBlock))
	assert.Equal(1, cl.Len())
	assert.Equal(int64(1), cl.PowerAt(10).Int64())
}

func TestCheckpointListBinarySearch(t *testing.T) {
	assert := assert.New(t)

	cl := &CheckpointList{}
	for h := uint64(0); h < 100; h++ {
		assert.Nil(cl.Write(h*10+5, new(big.Int).SetUint64(h)))
	}
	assert.Equal(0, cl.PowerAt(4).Sign())
	for h := uint64(0); h < 100; h++ {
		assert.Equal(h, cl.PowerAt(h*10+5).Uint64())
		assert.Equal(h, cl.PowerAt(h*10+14).Uint64())
	}
}

func TestSearchCheckpointsCallsAtLogarithmically(t *testing.T) {
	assert := assert.New(t)

	n := 1 << 12
	calls := 0
	idx := SearchCheckpoints(n, 2000, func(i int) Checkpoint {
		calls++
		return Checkpoint{BlockHeight: uint64(i)}
	})
	assert.Equal(2000, idx)
	assert.True(calls <= 13)
}
