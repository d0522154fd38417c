package execution

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var _ TxExecutor = (*ClaimRewardTxExecutor)(nil)

// ------------------------------- ClaimReward Transaction -----------------------------------

// ClaimRewardTxExecutor implements the TxExecutor interface
type ClaimRewardTxExecutor struct {
}

// NewClaimRewardTxExecutor creates a new instance of ClaimRewardTxExecutor
func NewClaimRewardTxExecutor() *ClaimRewardTxExecutor {
	return &ClaimRewardTxExecutor{}
}

func (exec *ClaimRewardTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.ClaimRewardTx)

	if res := validateAddress("Source", tx.Source); res.IsError() {
		return res
	}
	if _, res := getProxy(view, tx.Proxy); res.IsError() {
		return res
	}
	return result.OK
}

func (exec *ClaimRewardTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.ClaimRewardTx)

	proxy, res := getProxy(view, tx.Proxy)
	if res.IsError() {
		return res
	}
	pool := st.NewProxyPool(view)
	share := pool.GetShare(proxy.Address, tx.Source)

	paid, err := payReward(view, proxy, share, true)
	if err != nil {
		return types.ResultFromError(err)
	}
	pool.SetShare(proxy.Address, share)

	return result.OK.WithInfo("reward", paid)
}
