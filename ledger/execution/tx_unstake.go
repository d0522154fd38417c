package execution

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var _ TxExecutor = (*UnstakeTxExecutor)(nil)

// ------------------------------- Unstake Transaction -----------------------------------

// UnstakeTxExecutor implements the TxExecutor interface
type UnstakeTxExecutor struct {
}

// NewUnstakeTxExecutor creates a new instance of UnstakeTxExecutor
func NewUnstakeTxExecutor() *UnstakeTxExecutor {
	return &UnstakeTxExecutor{}
}

func (exec *UnstakeTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.UnstakeTx)

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
	share := st.NewProxyPool(view).GetShare(proxy.Address, tx.Source)
	if share.Principal.Cmp(tx.Amount) < 0 {
		return result.Error("%v has %v staked in %v, unstaking %v", tx.Source, share.Principal, proxy.Address, tx.Amount).
			WithErrorCode(result.CodeInsufficientPrincipal)
	}
	return result.OK
}

func (exec *UnstakeTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.UnstakeTx)

	proxy, res := getProxy(view, tx.Proxy)
	if res.IsError() {
		return res
	}
	pool := st.NewProxyPool(view)
	share := pool.GetShare(proxy.Address, tx.Source)

	// rewards are settled at the share held before the withdrawal
	paid, err := payReward(view, proxy, share, true)
	if err != nil {
		return types.ResultFromError(err)
	}
	if err := proxy.Withdraw(share, tx.Amount); err != nil {
		return types.ResultFromError(err)
	}
	if err := st.NewTokenLedger(view).Transfer(proxy.Address, tx.Source, tx.Amount); err != nil {
		return types.ResultFromError(err)
	}
	if err := st.NewVotingPowerLedger(view).DecreaseBalance(proxy.Address, types.CategoryStake, tx.Amount, view.Height()); err != nil {
		return types.ResultFromError(err)
	}

	pool.SetShare(proxy.Address, share)
	st.NewProxyRegistry(view).Save(proxy)

	emit(view, types.EventUnstaked, &types.StakeData{
		Proxy:     proxy.Address,
		Depositor: tx.Source,
		Amount:    tx.Amount,
	})
	return result.OK.WithInfo("reward", paid)
}
