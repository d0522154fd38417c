package execution

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var _ TxExecutor = (*SendTxExecutor)(nil)

// ------------------------------- Send Transaction -----------------------------------

// SendTxExecutor implements the TxExecutor interface
type SendTxExecutor struct {
}

// NewSendTxExecutor creates a new instance of SendTxExecutor
func NewSendTxExecutor() *SendTxExecutor {
	return &SendTxExecutor{}
}

func (exec *SendTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.SendTx)

	if res := validateAddress("From", tx.From); res.IsError() {
		return res
	}
	if res := validateNotModuleAccount(view, "From", tx.From); res.IsError() {
		return res
	}
	if res := validateAddress("To", tx.To); res.IsError() {
		return res
	}
	if res := validatePositiveAmount(tx.Amount); res.IsError() {
		return res
	}

	balance := st.NewTokenLedger(view).BalanceOf(tx.From)
	if balance.Cmp(tx.Amount) < 0 {
		return result.Error("Insufficient balance: %v has %v, sending %v", tx.From, balance, tx.Amount).
			WithErrorCode(result.CodeInsufficientBalance)
	}

	return result.OK
}

func (exec *SendTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.SendTx)

	if err := st.NewTokenLedger(view).Transfer(tx.From, tx.To, tx.Amount); err != nil {
		return types.ResultFromError(err)
	}
	return result.OK
}

var _ TxExecutor = (*ApproveTxExecutor)(nil)

// ------------------------------- Approve Transaction -----------------------------------

// ApproveTxExecutor implements the TxExecutor interface
type ApproveTxExecutor struct {
}

// NewApproveTxExecutor creates a new instance of ApproveTxExecutor
func NewApproveTxExecutor() *ApproveTxExecutor {
	return &ApproveTxExecutor{}
}

func (exec *ApproveTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.ApproveTx)

	if res := validateAddress("Owner", tx.Owner); res.IsError() {
		return res
	}
	if res := validateNotModuleAccount(view, "Owner", tx.Owner); res.IsError() {
		return res
	}
	if res := validateAddress("Spender", tx.Spender); res.IsError() {
		return res
	}
	if tx.Amount == nil || tx.Amount.Sign() < 0 {
		return result.Error("Invalid approval amount %v", tx.Amount).WithErrorCode(result.CodeInvalidAmount)
	}
	return result.OK
}

func (exec *ApproveTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.ApproveTx)

	if err := st.NewTokenLedger(view).Approve(tx.Owner, tx.Spender, tx.Amount); err != nil {
		return types.ResultFromError(err)
	}
	return result.OK
}
