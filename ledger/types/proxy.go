package types

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

// Proxy is a delegation pool that votes with the aggregate stake of its
// depositors.
type Proxy struct {
	Handle     uint64
	Address    common.Address
	Creator    common.Address
	Controller common.Address
	Delegatee  common.Address // where the pool's STAKE power is routed, zero for itself

	TotalPrincipal     *big.Int
	RewardPerShare     *big.Int // accumulated reward per unit of principal, scaled by 1e18
	UnallocatedRewards *big.Int // rewards received while the pool was empty

	Depositors []common.Address
}

// NewProxy creates an empty pool controlled by its creator.
func NewProxy(handle uint64, addr, creator common.Address) *Proxy {
	return &Proxy{
		Handle:             handle,
		Address:            addr,
		Creator:            creator,
		Controller:         creator,
		TotalPrincipal:     big.NewInt(0),
		RewardPerShare:     big.NewInt(0),
		UnallocatedRewards: big.NewInt(0),
	}
}

func (p *Proxy) String() string {
	return fmt.Sprintf("Proxy{#%v %v, creator: %v, controller: %v, principal: %v, depositors: %v}",
		p.Handle, p.Address, p.Creator, p.Controller, p.TotalPrincipal, len(p.Depositors))
}

// IsController returns true if addr may vote on behalf of the pool.
func (p *Proxy) IsController(addr common.Address) bool {
	return p.Controller == addr
}

// HasDepositor returns true if addr currently holds principal in the pool.
func (p *Proxy) HasDepositor(addr common.Address) bool {
	for _, d := range p.Depositors {
		if d == addr {
			return true
		}
	}
	return false
}

func (p *Proxy) removeDepositor(addr common.Address) {
	for i, d := range p.Depositors {
		if d == addr {
			p.Depositors = append(p.Depositors[:i], p.Depositors[i+1:]...)
			return
		}
	}
}

// PendingReward returns the reward share has earned since its last settlement.
func (p *Proxy) PendingReward(share *PoolShare) *big.Int {
	accrued := MulDiv(share.Principal, p.RewardPerShare, Scale)
	pending := accrued.Sub(accrued, NoNil(share.RewardDebt))
	if pending.Sign() < 0 {
		return new(big.Int)
	}
	return pending
}

// Settle resets the reward baseline of share to the current accumulator.
func (p *Proxy) Settle(share *PoolShare) {
	share.RewardDebt = MulDiv(share.Principal, p.RewardPerShare, Scale)
}

// AccrueReward distributes amount over the current principal. While the
// pool is empty the reward is parked until the next deposit.
func (p *Proxy) AccrueReward(amount *big.Int) {
	if p.TotalPrincipal.Sign() == 0 {
		p.UnallocatedRewards = new(big.Int).Add(p.UnallocatedRewards, amount)
		return
	}
	inc := MulDiv(amount, Scale, p.TotalPrincipal)
	p.RewardPerShare = new(big.Int).Add(p.RewardPerShare, inc)
}

// FoldUnallocated distributes parked rewards once the pool has principal.
func (p *Proxy) FoldUnallocated() {
	if p.UnallocatedRewards.Sign() == 0 || p.TotalPrincipal.Sign() == 0 {
		return
	}
	parked := p.UnallocatedRewards
	p.UnallocatedRewards = big.NewInt(0)
	p.AccrueReward(parked)
}

// Deposit adds amount to the principal of share. Pending rewards must be
// settled by the caller beforehand.
func (p *Proxy) Deposit(share *PoolShare, amount *big.Int) {
	if !p.HasDepositor(share.Depositor) {
		p.Depositors = append(p.Depositors, share.Depositor)
	}
	share.Principal = new(big.Int).Add(NoNil(share.Principal), amount)
	p.TotalPrincipal = new(big.Int).Add(p.TotalPrincipal, amount)
	p.Settle(share)
}

// Withdraw removes amount from the principal of share. A depositor without
// principal left is dropped from the depositor list.
func (p *Proxy) Withdraw(share *PoolShare, amount *big.Int) error {
	if NoNil(share.Principal).Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientPrincipal, "%v has %v staked, requested %v",
			share.Depositor, NoNil(share.Principal), amount)
	}
	share.Principal = new(big.Int).Sub(share.Principal, amount)
	p.TotalPrincipal = new(big.Int).Sub(p.TotalPrincipal, amount)
	p.Settle(share)
	if share.Principal.Sign() == 0 {
		p.removeDepositor(share.Depositor)
	}
	return nil
}

// PoolShare is one depositor's position in a proxy pool.
type PoolShare struct {
	Depositor  common.Address
	Principal  *big.Int
	RewardDebt *big.Int
}

// NewPoolShare returns an empty position.
func NewPoolShare(depositor common.Address) *PoolShare {
	return &PoolShare{
		Depositor:  depositor,
		Principal:  big.NewInt(0),
		RewardDebt: big.NewInt(0),
	}
}

// IsActive returns true while the depositor has principal in the pool.
func (s *PoolShare) IsActive() bool {
	return IsPositive(s.Principal)
}

func (s *PoolShare) String() string {
	return fmt.Sprintf("PoolShare{%v, principal: %v, debt: %v}", s.Depositor, s.Principal, s.RewardDebt)
}
