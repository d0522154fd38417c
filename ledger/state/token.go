package state

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// TokenLedger is the fungible token the pools stake and pay rewards in.
type TokenLedger struct {
	view   *StoreView
	events *EventLog
}

// NewTokenLedger returns the token ledger of view.
func NewTokenLedger(view *StoreView) *TokenLedger {
	return &TokenLedger{view: view, events: NewEventLog(view)}
}

// InitGenesis credits the genesis allocations. It can only run on an
// empty ledger.
func (tl *TokenLedger) InitGenesis(genesis *types.Genesis) error {
	if err := genesis.Validate(); err != nil {
		return err
	}
	if len(tl.view.Get(TotalSupplyKey())) != 0 {
		return errors.Wrap(types.ErrAlreadyExists, "genesis already applied")
	}
	for _, a := range genesis.Allocations {
		tl.view.setBigInt(TokenBalanceKey(a.Address), a.Amount)
	}
	tl.view.setBigInt(TotalSupplyKey(), genesis.TotalSupply())
	return nil
}

// TotalSupply returns the total token supply.
func (tl *TokenLedger) TotalSupply() *big.Int {
	return tl.view.getBigInt(TotalSupplyKey())
}

// BalanceOf returns the token balance of addr.
func (tl *TokenLedger) BalanceOf(addr common.Address) *big.Int {
	return tl.view.getBigInt(TokenBalanceKey(addr))
}

// Allowance returns how much spender may still move out of owner's balance.
func (tl *TokenLedger) Allowance(owner, spender common.Address) *big.Int {
	return tl.view.getBigInt(AllowanceKey(owner, spender))
}

// Transfer moves amount from one account to another.
func (tl *TokenLedger) Transfer(from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrapf(types.ErrInvalidAmount, "transfer of %v", amount)
	}
	fromBalance := tl.BalanceOf(from)
	if fromBalance.Cmp(amount) < 0 {
		return errors.Wrapf(types.ErrInsufficientBalance, "%v holds %v, transfer of %v", from, fromBalance, amount)
	}
	tl.view.setBigInt(TokenBalanceKey(from), fromBalance.Sub(fromBalance, amount))
	toBalance := tl.BalanceOf(to)
	tl.view.setBigInt(TokenBalanceKey(to), toBalance.Add(toBalance, amount))

	tl.events.Append(types.NewEvent(types.EventTransfer, &types.TransferData{
		From:   from,
		To:     to,
		Amount: types.NoNil(amount),
	}))
	return nil
}

// Approve sets the allowance of spender over owner's balance.
func (tl *TokenLedger) Approve(owner, spender common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrapf(types.ErrInvalidAmount, "approval of %v", amount)
	}
	tl.view.setBigInt(AllowanceKey(owner, spender), amount)
	tl.events.Append(types.NewEvent(types.EventApproval, &types.ApprovalData{
		Owner:   owner,
		Spender: spender,
		Amount:  types.NoNil(amount),
	}))
	return nil
}

// TransferFrom moves amount out of from's balance on behalf of spender,
// consuming allowance.
func (tl *TokenLedger) TransferFrom(spender, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrapf(types.ErrInvalidAmount, "transfer of %v", amount)
	}
	allowance := tl.Allowance(from, spender)
	if allowance.Cmp(amount) < 0 {
		return errors.Wrapf(types.ErrInsufficientAllowance, "%v allowed %v to move %v, requested %v",
			from, spender, allowance, amount)
	}
	if err := tl.Transfer(from, to, amount); err != nil {
		return err
	}
	tl.view.setBigInt(AllowanceKey(from, spender), allowance.Sub(allowance, amount))
	return nil
}
