package state

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

func testAddr(i int) common.Address {
	return common.BytesToAddress([]byte{0xaa, byte(i + 1)})
}

func TestVotingPowerDelegate(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	view := NewStoreView(1, backend.NewMemDatabase())
	vpl := NewVotingPowerLedger(view)
	a, b, c := testAddr(0), testAddr(1), testAddr(2)

	require.Nil(vpl.IncreaseBalance(a, types.CategoryStake, big.NewInt(100), 1))
	assert.Equal(int64(100), vpl.CurrentPower(a, types.CategoryStake).Int64())

	view.IncrementHeight()
	require.Nil(vpl.Delegate(a, b, types.CategoryStake, 2))
	assert.Equal(0, vpl.CurrentPower(a, types.CategoryStake).Sign())
	assert.Equal(int64(100), vpl.CurrentPower(b, types.CategoryStake).Int64())
	assert.Equal(b, vpl.Delegatee(a, types.CategoryStake))

	// history is preserved
	p, err := vpl.GetPowerAtBlock(a, 1, types.CategoryStake)
	require.Nil(err)
	assert.Equal(int64(100), p.Int64())
	p, err = vpl.GetPowerAtBlock(b, 1, types.CategoryStake)
	require.Nil(err)
	assert.Equal(0, p.Sign())

	// balance changes follow the delegatee
	view.IncrementHeight()
	require.Nil(vpl.IncreaseBalance(a, types.CategoryStake, big.NewInt(50), 3))
	assert.Equal(int64(150), vpl.CurrentPower(b, types.CategoryStake).Int64())
	require.Nil(vpl.Delegate(a, c, types.CategoryStake, 3))
	assert.Equal(0, vpl.CurrentPower(b, types.CategoryStake).Sign())
	assert.Equal(int64(150), vpl.CurrentPower(c, types.CategoryStake).Int64())

	// self delegation is the zero sentinel
	require.Nil(vpl.Delegate(a, a, types.CategoryStake, 3))
	assert.True(vpl.Delegatee(a, types.CategoryStake).IsEmpty())
	assert.Equal(int64(150), vpl.CurrentPower(a, types.CategoryStake).Int64())

	// categories are independent
	assert.Equal(0, vpl.CurrentPower(a, types.CategoryGovernance).Sign())

	_, err = vpl.GetPowerAtBlock(a, 4, types.CategoryStake)
	assert.True(errors.Is(err, types.ErrFutureBlock))
	_, err = vpl.GetPowerAtBlock(a, 1, types.Category(9))
	assert.True(errors.Is(err, types.ErrInvalidCategory))
	assert.True(errors.Is(vpl.Delegate(a, b, types.Category(9), 3), types.ErrInvalidCategory))

	err = vpl.DecreaseBalance(a, types.CategoryStake, big.NewInt(151), 3)
	assert.True(errors.Is(err, types.ErrInsufficientBalance))
	require.Nil(vpl.DecreaseBalance(a, types.CategoryStake, big.NewInt(150), 3))
	assert.Equal(0, vpl.CurrentPower(a, types.CategoryStake).Sign())
}

func TestVotingPowerSameDelegateeCoalesces(t *testing.T) {
	assert := assert.New(t)

	view := NewStoreView(7, backend.NewMemDatabase())
	vpl := NewVotingPowerLedger(view)
	a, b := testAddr(0), testAddr(1)

	assert.Nil(vpl.IncreaseBalance(a, types.CategoryStake, big.NewInt(10), 7))
	assert.Nil(vpl.Delegate(a, b, types.CategoryStake, 7))
	assert.Nil(vpl.Delegate(a, b, types.CategoryStake, 7))
	assert.Equal(uint64(1), vpl.Checkpoints().Count(b, types.CategoryStake))
	assert.Equal(int64(10), vpl.CurrentPower(b, types.CategoryStake).Int64())

	events := NewEventLog(view).Range(0, 10)
	assert.Equal(2, len(events))
	assert.Equal(types.EventDelegateChanged, events[1].Type)
}

// The sum of all powers always equals the sum of all direct balances.
func TestVotingPowerConservation(t *testing.T) {
	require := require.New(t)

	rng := rand.New(rand.NewSource(42))
	view := NewStoreView(0, backend.NewMemDatabase())
	vpl := NewVotingPowerLedger(view)

	numAccounts := 6
	for step := 0; step < 500; step++ {
		if rng.Intn(10) == 0 {
			view.IncrementHeight()
		}
		height := view.Height()
		addr := testAddr(rng.Intn(numAccounts))
		category := types.AllCategories()[rng.Intn(2)]

		switch rng.Intn(3) {
		case 0:
			require.Nil(vpl.IncreaseBalance(addr, category, big.NewInt(rng.Int63n(1000)), height))
		case 1:
			balance := vpl.Balance(addr, category)
			if balance.Sign() > 0 {
				amount := new(big.Int).Rand(rng, balance)
				require.Nil(vpl.DecreaseBalance(addr, category, amount, height))
			}
		case 2:
			require.Nil(vpl.Delegate(addr, testAddr(rng.Intn(numAccounts)), category, height))
		}

		for _, c := range types.AllCategories() {
			totalPower, totalBalance := new(big.Int), new(big.Int)
			for i := 0; i < numAccounts; i++ {
				totalPower.Add(totalPower, vpl.CurrentPower(testAddr(i), c))
				totalBalance.Add(totalBalance, vpl.Balance(testAddr(i), c))
			}
			require.Equal(0, totalPower.Cmp(totalBalance), "step %v category %v", step, c)
		}
	}

	// history matches the latest checkpoint for every account
	for i := 0; i < numAccounts; i++ {
		for _, c := range types.AllCategories() {
			p, err := vpl.GetPowerAtBlock(testAddr(i), view.Height(), c)
			require.Nil(err)
			require.Equal(0, p.Cmp(vpl.CurrentPower(testAddr(i), c)))
		}
	}
}
