package execution

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var _ TxExecutor = (*DelegateVoteTxExecutor)(nil)

// ------------------------------- DelegateVote Transaction -----------------------------------

// DelegateVoteTxExecutor implements the TxExecutor interface
type DelegateVoteTxExecutor struct {
}

// NewDelegateVoteTxExecutor creates a new instance of DelegateVoteTxExecutor
func NewDelegateVoteTxExecutor() *DelegateVoteTxExecutor {
	return &DelegateVoteTxExecutor{}
}

func (exec *DelegateVoteTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.DelegateVoteTx)

	if _, res := getControlledProxy(view, tx.Proxy, tx.Source); res.IsError() {
		return res
	}
	if err := tx.Axis.Validate(tx.Value); err != nil {
		return types.ResultFromError(err)
	}
	return result.OK
}

func (exec *DelegateVoteTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.DelegateVoteTx)

	proxy, res := getControlledProxy(view, tx.Proxy, tx.Source)
	if res.IsError() {
		return res
	}

	// the pool's own balance, wherever its power is routed
	weight := st.NewVotingPowerLedger(view).Balance(proxy.Address, types.CategoryStake)
	st.NewGovernanceAggregator(view).Submit(tx.Axis, proxy.Address, tx.Value, weight, view.Height())

	emit(view, types.EventVoteDelegated, &types.VoteDelegatedData{
		Proxy:  proxy.Address,
		Axis:   tx.Axis,
		Value:  tx.Value,
		Weight: weight,
	})
	return result.OK
}
