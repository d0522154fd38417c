package execution

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var _ TxExecutor = (*DelegateTxExecutor)(nil)

// ------------------------------- Delegate Transaction -----------------------------------

// DelegateTxExecutor implements the TxExecutor interface
type DelegateTxExecutor struct {
}

// NewDelegateTxExecutor creates a new instance of DelegateTxExecutor
func NewDelegateTxExecutor() *DelegateTxExecutor {
	return &DelegateTxExecutor{}
}

func (exec *DelegateTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.DelegateTx)

	if res := validateAddress("Source", tx.Source); res.IsError() {
		return res
	}
	if res := validateNotModuleAccount(view, "Source", tx.Source); res.IsError() {
		return res
	}
	if !tx.Category.IsValid() {
		return result.Error("Invalid category %d", uint8(tx.Category)).WithErrorCode(result.CodeInvalidCategory)
	}
	// zero only re-routes the balance already escrowed
	if tx.Amount == nil || tx.Amount.Sign() < 0 {
		return result.Error("Invalid delegation amount %v", tx.Amount).WithErrorCode(result.CodeInvalidAmount)
	}
	if tx.Amount.Sign() > 0 {
		tl := st.NewTokenLedger(view)
		if allowance := tl.Allowance(tx.Source, types.DelegationManagerAddress); allowance.Cmp(tx.Amount) < 0 {
			return result.Error("%v approved %v for the delegation manager, delegating %v", tx.Source, allowance, tx.Amount).
				WithErrorCode(result.CodeInsufficientAllowance)
		}
	}
	return result.OK
}

func (exec *DelegateTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.DelegateTx)

	vpl := st.NewVotingPowerLedger(view)
	if tx.Amount.Sign() > 0 {
		err := st.NewTokenLedger(view).TransferFrom(types.DelegationManagerAddress, tx.Source, types.DelegationManagerAddress, tx.Amount)
		if err != nil {
			return types.ResultFromError(err)
		}
		if err := vpl.IncreaseBalance(tx.Source, tx.Category, tx.Amount, view.Height()); err != nil {
			return types.ResultFromError(err)
		}
	}
	if err := vpl.Delegate(tx.Source, tx.Delegatee, tx.Category, view.Height()); err != nil {
		return types.ResultFromError(err)
	}
	return result.OK
}

var _ TxExecutor = (*UndelegateTxExecutor)(nil)

// ------------------------------- Undelegate Transaction -----------------------------------

// UndelegateTxExecutor implements the TxExecutor interface
type UndelegateTxExecutor struct {
}

// NewUndelegateTxExecutor creates a new instance of UndelegateTxExecutor
func NewUndelegateTxExecutor() *UndelegateTxExecutor {
	return &UndelegateTxExecutor{}
}

func (exec *UndelegateTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.UndelegateTx)

	if res := validateAddress("Source", tx.Source); res.IsError() {
		return res
	}
	if !tx.Category.IsValid() {
		return result.Error("Invalid category %d", uint8(tx.Category)).WithErrorCode(result.CodeInvalidCategory)
	}
	if res := validatePositiveAmount(tx.Amount); res.IsError() {
		return res
	}
	if res := validateNotModuleAccount(view, "Source", tx.Source); res.IsError() {
		return res
	}
	balance := st.NewVotingPowerLedger(view).Balance(tx.Source, tx.Category)
	if balance.Cmp(tx.Amount) < 0 {
		return result.Error("%v escrowed %v %v, releasing %v", tx.Source, balance, tx.Category, tx.Amount).
			WithErrorCode(result.CodeInsufficientBalance)
	}
	return result.OK
}

func (exec *UndelegateTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.UndelegateTx)

	if err := st.NewVotingPowerLedger(view).DecreaseBalance(tx.Source, tx.Category, tx.Amount, view.Height()); err != nil {
		return types.ResultFromError(err)
	}
	if err := st.NewTokenLedger(view).Transfer(types.DelegationManagerAddress, tx.Source, tx.Amount); err != nil {
		return types.ResultFromError(err)
	}
	return result.OK
}
