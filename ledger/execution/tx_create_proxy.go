package execution

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var _ TxExecutor = (*CreateProxyTxExecutor)(nil)

// ------------------------------- CreateProxy Transaction -----------------------------------

// CreateProxyTxExecutor implements the TxExecutor interface
type CreateProxyTxExecutor struct {
	maxPerCreator uint64
}

// NewCreateProxyTxExecutor creates a new instance of CreateProxyTxExecutor
func NewCreateProxyTxExecutor(maxPerCreator uint64) *CreateProxyTxExecutor {
	return &CreateProxyTxExecutor{maxPerCreator: maxPerCreator}
}

func (exec *CreateProxyTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.CreateProxyTx)

	if res := validateAddress("Source", tx.Source); res.IsError() {
		return res
	}
	owned := st.NewProxyRegistry(view).ByCreator(tx.Source)
	if exec.maxPerCreator > 0 && uint64(len(owned)) >= exec.maxPerCreator {
		return result.Error("%v already created %v proxies, limit is %v", tx.Source, len(owned), exec.maxPerCreator).
			WithErrorCode(result.CodeAlreadyExists)
	}
	return result.OK
}

func (exec *CreateProxyTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.CreateProxyTx)

	proxy, err := st.NewProxyRegistry(view).Create(tx.Source, exec.maxPerCreator)
	if err != nil {
		return types.ResultFromError(err)
	}
	return result.OK.WithInfo("proxy", proxy.Address).WithInfo("handle", proxy.Handle)
}
