package execution

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var _ TxExecutor = (*DepositRewardTxExecutor)(nil)

// ------------------------------- DepositReward Transaction -----------------------------------

// DepositRewardTxExecutor implements the TxExecutor interface
type DepositRewardTxExecutor struct {
}

// NewDepositRewardTxExecutor creates a new instance of DepositRewardTxExecutor
func NewDepositRewardTxExecutor() *DepositRewardTxExecutor {
	return &DepositRewardTxExecutor{}
}

func (exec *DepositRewardTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.DepositRewardTx)

	if res := validateAddress("Source", tx.Source); res.IsError() {
		return res
	}
	if res := validateNotModuleAccount(view, "Source", tx.Source); res.IsError() {
		return res
	}
	if res := validatePositiveAmount(tx.Amount); res.IsError() {
		return res
	}
	if _, res := getProxy(view, tx.Proxy); res.IsError() {
		return res
	}
	if balance := st.NewTokenLedger(view).BalanceOf(tx.Source); balance.Cmp(tx.Amount) < 0 {
		return result.Error("%v holds %v, depositing %v", tx.Source, balance, tx.Amount).
			WithErrorCode(result.CodeInsufficientBalance)
	}
	return result.OK
}

func (exec *DepositRewardTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.DepositRewardTx)

	proxy, res := getProxy(view, tx.Proxy)
	if res.IsError() {
		return res
	}
	if err := st.NewTokenLedger(view).Transfer(tx.Source, proxy.Address, tx.Amount); err != nil {
		return types.ResultFromError(err)
	}
	proxy.AccrueReward(tx.Amount)
	st.NewProxyRegistry(view).Save(proxy)

	emit(view, types.EventRewardDeposited, &types.RewardDepositedData{
		Proxy:  proxy.Address,
		Source: tx.Source,
		Amount: tx.Amount,
	})
	return result.OK
}
