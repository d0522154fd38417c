package types

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func TestProxyRewardShares(t *testing.T) {
	assert := assert.New(t)

	p := NewProxy(0, common.HexToAddress("0x01"), alice)
	sa, sb := NewPoolShare(alice), NewPoolShare(bob)

	p.Deposit(sa, Tokens(100))
	p.Deposit(sb, Tokens(300))
	assert.Equal(Tokens(400), p.TotalPrincipal)
	assert.Equal(2, len(p.Depositors))

	p.AccrueReward(Tokens(40))
	assert.Equal(Tokens(10), p.PendingReward(sa))
	assert.Equal(Tokens(30), p.PendingReward(sb))

	p.Settle(sa)
	assert.Equal(0, p.PendingReward(sa).Sign())
	assert.Equal(Tokens(30), p.PendingReward(sb))
}

func TestProxyUnallocatedRewards(t *testing.T) {
	assert := assert.New(t)

	p := NewProxy(0, common.HexToAddress("0x01"), alice)
	p.AccrueReward(Tokens(5))
	assert.Equal(Tokens(5), p.UnallocatedRewards)
	assert.Equal(0, p.RewardPerShare.Sign())

	sa := NewPoolShare(alice)
	p.Deposit(sa, Tokens(10))
	p.FoldUnallocated()
	assert.Equal(0, p.UnallocatedRewards.Sign())
	assert.Equal(Tokens(5), p.PendingReward(sa))
}

func TestProxyWithdraw(t *testing.T) {
	assert := assert.New(t)

	p := NewProxy(0, common.HexToAddress("0x01"), alice)
	sa := NewPoolShare(alice)
	p.Deposit(sa, Tokens(10))

	err := p.Withdraw(sa, Tokens(11))
	assert.True(errors.Is(err, ErrInsufficientPrincipal))
	assert.Equal(Tokens(10), sa.Principal)

	assert.Nil(p.Withdraw(sa, Tokens(4)))
	assert.True(p.HasDepositor(alice))
	assert.Nil(p.Withdraw(sa, Tokens(6)))
	assert.False(p.HasDepositor(alice))
	assert.False(sa.IsActive())
	assert.Equal(0, p.TotalPrincipal.Sign())
}

func TestProxyRewardDust(t *testing.T) {
	assert := assert.New(t)

	p := NewProxy(0, common.HexToAddress("0x01"), alice)
	sa, sb := NewPoolShare(alice), NewPoolShare(bob)
	p.Deposit(sa, big.NewInt(3))
	p.Deposit(sb, big.NewInt(3))
	p.AccrueReward(big.NewInt(7))

	total := new(big.Int).Add(p.PendingReward(sa), p.PendingReward(sb))
	assert.True(total.Cmp(big.NewInt(7)) <= 0)
}
