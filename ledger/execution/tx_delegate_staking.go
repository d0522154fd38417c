package execution

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var _ TxExecutor = (*DelegateStakingTxExecutor)(nil)

// ------------------------------- DelegateStaking Transaction -----------------------------------

// DelegateStakingTxExecutor implements the TxExecutor interface
type DelegateStakingTxExecutor struct {
}

// NewDelegateStakingTxExecutor creates a new instance of DelegateStakingTxExecutor
func NewDelegateStakingTxExecutor() *DelegateStakingTxExecutor {
	return &DelegateStakingTxExecutor{}
}

func (exec *DelegateStakingTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.DelegateStakingTx)

	if res := validateAddress("Source", tx.Source); res.IsError() {
		return res
	}
	if res := validatePositiveAmount(tx.Amount); res.IsError() {
		return res
	}
	proxy, res := getProxy(view, tx.Proxy)
	if res.IsError() {
		return res
	}
	if res := validateNotModuleAccount(view, "Source", tx.Source); res.IsError() {
		return res
	}
	if !proxy.HasDepositor(tx.Source) && len(proxy.Depositors) >= types.MaxDepositorsPerProxy {
		return result.Error("Proxy %v is full", proxy.Address).WithErrorCode(result.CodeInvalidTx)
	}

	tl := st.NewTokenLedger(view)
	if allowance := tl.Allowance(tx.Source, proxy.Address); allowance.Cmp(tx.Amount) < 0 {
		return result.Error("%v approved %v for proxy %v, staking %v", tx.Source, allowance, proxy.Address, tx.Amount).
			WithErrorCode(result.CodeInsufficientAllowance)
	}
	if balance := tl.BalanceOf(tx.Source); balance.Cmp(tx.Amount) < 0 {
		return result.Error("%v holds %v, staking %v", tx.Source, balance, tx.Amount).
			WithErrorCode(result.CodeInsufficientBalance)
	}

	return result.OK
}

func (exec *DelegateStakingTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.DelegateStakingTx)

	proxy, res := getProxy(view, tx.Proxy)
	if res.IsError() {
		return res
	}
	pool := st.NewProxyPool(view)
	share := pool.GetShare(proxy.Address, tx.Source)

	if _, err := payReward(view, proxy, share, false); err != nil {
		return types.ResultFromError(err)
	}
	// the proxy pulls the tokens with the allowance granted to it
	if err := st.NewTokenLedger(view).TransferFrom(proxy.Address, tx.Source, proxy.Address, tx.Amount); err != nil {
		return types.ResultFromError(err)
	}
	proxy.Deposit(share, tx.Amount)
	proxy.FoldUnallocated()

	if err := st.NewVotingPowerLedger(view).IncreaseBalance(proxy.Address, types.CategoryStake, tx.Amount, view.Height()); err != nil {
		return types.ResultFromError(err)
	}

	pool.SetShare(proxy.Address, share)
	st.NewProxyRegistry(view).Save(proxy)

	emit(view, types.EventStaked, &types.StakeData{
		Proxy:     proxy.Address,
		Depositor: tx.Source,
		Amount:    tx.Amount,
	})
	return result.OK
}
