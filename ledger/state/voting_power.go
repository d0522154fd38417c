package state

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// VotingPowerLedger tracks, per category, the balance each address holds
// directly, whom it delegates to and the resulting voting power history.
//
// An address that has not delegated counts its own balance. Delegating to
// oneself is stored as the zero address, so both forms are the same edge.
type VotingPowerLedger struct {
	view        *StoreView
	checkpoints *CheckpointStore
	events      *EventLog
}

// NewVotingPowerLedger returns the voting power ledger of view.
func NewVotingPowerLedger(view *StoreView) *VotingPowerLedger {
	return &VotingPowerLedger{
		view:        view,
		checkpoints: NewCheckpointStore(view),
		events:      NewEventLog(view),
	}
}

// Checkpoints returns the underlying checkpoint store.
func (vpl *VotingPowerLedger) Checkpoints() *CheckpointStore {
	return vpl.checkpoints
}

// Delegatee returns the delegation edge of addr, zero when undelegated.
func (vpl *VotingPowerLedger) Delegatee(addr common.Address, category types.Category) common.Address {
	return vpl.view.getAddress(DelegateeKey(addr, category))
}

// Balance returns the directly held balance of addr.
func (vpl *VotingPowerLedger) Balance(addr common.Address, category types.Category) *big.Int {
	return vpl.view.getBigInt(DirectBalanceKey(addr, category))
}

// CurrentPower returns the latest power of addr.
func (vpl *VotingPowerLedger) CurrentPower(addr common.Address, category types.Category) *big.Int {
	return vpl.view.getBigInt(CurrentPowerKey(addr, category))
}

// GetPowerAtBlock returns the power addr had at blockHeight.
func (vpl *VotingPowerLedger) GetPowerAtBlock(addr common.Address, blockHeight uint64, category types.Category) (*big.Int, error) {
	if !category.IsValid() {
		return nil, errors.Wrapf(types.ErrInvalidCategory, "%d", uint8(category))
	}
	if blockHeight > vpl.view.Height() {
		return nil, errors.Wrapf(types.ErrFutureBlock, "block %v, current height %v", blockHeight, vpl.view.Height())
	}
	return vpl.checkpoints.Query(addr, category, blockHeight), nil
}

// Delegate points the voting power of delegator's direct balance at
// delegatee. The full balance moves from the previous target to the new one.
func (vpl *VotingPowerLedger) Delegate(delegator, delegatee common.Address, category types.Category, blockHeight uint64) error {
	if !category.IsValid() {
		return errors.Wrapf(types.ErrInvalidCategory, "%d", uint8(category))
	}
	if delegatee == delegator {
		delegatee = common.Address{}
	}

	oldDelegatee := vpl.Delegatee(delegator, category)
	oldTarget := effectiveTarget(delegator, oldDelegatee)
	newTarget := effectiveTarget(delegator, delegatee)
	amount := vpl.Balance(delegator, category)

	if oldTarget == newTarget {
		// nothing moves, the checkpoint still records the block
		if err := vpl.movePower(newTarget, category, new(big.Int), blockHeight); err != nil {
			return err
		}
	} else {
		if err := vpl.movePower(oldTarget, category, new(big.Int).Neg(amount), blockHeight); err != nil {
			return err
		}
		if err := vpl.movePower(newTarget, category, amount, blockHeight); err != nil {
			return err
		}
	}

	vpl.view.setAddress(DelegateeKey(delegator, category), delegatee)
	vpl.events.Append(types.NewEvent(types.EventDelegateChanged, &types.DelegateChangedData{
		Delegator:    delegator,
		OldDelegatee: oldDelegatee,
		NewDelegatee: delegatee,
		Category:     category,
	}))
	return nil
}

// IncreaseBalance raises the direct balance of addr and the power of its
// current target.
func (vpl *VotingPowerLedger) IncreaseBalance(addr common.Address, category types.Category, amount *big.Int, blockHeight uint64) error {
	if !category.IsValid() {
		return errors.Wrapf(types.ErrInvalidCategory, "%d", uint8(category))
	}
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrapf(types.ErrInvalidAmount, "negative balance increase %v", amount)
	}
	balance := vpl.Balance(addr, category)
	vpl.view.setBigInt(DirectBalanceKey(addr, category), balance.Add(balance, amount))
	target := effectiveTarget(addr, vpl.Delegatee(addr, category))
	return vpl.movePower(target, category, amount, blockHeight)
}

// DecreaseBalance lowers the direct balance of addr and the power of its
// current target.
func (vpl *VotingPowerLedger) DecreaseBalance(addr common.Address, category types.Category, amount *big.Int, blockHeight uint64) error {
	if !category.IsValid() {
		return errors.Wrapf(types.ErrInvalidCategory, "%d", uint8(category))
	}
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrapf(types.ErrInvalidAmount, "negative balance decrease %v", amount)
	}
	balance := vpl.Balance(addr, category)
	if balance.Cmp(amount) < 0 {
		return errors.Wrapf(types.ErrInsufficientBalance, "%v holds %v %v, decrease of %v", addr, balance, category, amount)
	}
	vpl.view.setBigInt(DirectBalanceKey(addr, category), balance.Sub(balance, amount))
	target := effectiveTarget(addr, vpl.Delegatee(addr, category))
	return vpl.movePower(target, category, new(big.Int).Neg(amount), blockHeight)
}

func (vpl *VotingPowerLedger) movePower(addr common.Address, category types.Category, delta *big.Int, blockHeight uint64) error {
	power := vpl.CurrentPower(addr, category)
	power.Add(power, delta)
	if power.Sign() < 0 {
		logger.Errorf("Power of %v/%v would drop below zero: %v", addr, category, power)
		return errors.Errorf("negative power for %v/%v", addr, category)
	}
	if err := vpl.checkpoints.Write(addr, category, blockHeight, power); err != nil {
		return err
	}
	vpl.view.setBigInt(CurrentPowerKey(addr, category), power)
	return nil
}

func effectiveTarget(addr, delegatee common.Address) common.Address {
	if delegatee.IsEmpty() {
		return addr
	}
	return delegatee
}
