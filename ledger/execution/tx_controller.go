package execution

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var _ TxExecutor = (*SetControllerTxExecutor)(nil)

// ------------------------------- SetController Transaction -----------------------------------

// SetControllerTxExecutor implements the TxExecutor interface
type SetControllerTxExecutor struct {
}

// NewSetControllerTxExecutor creates a new instance of SetControllerTxExecutor
func NewSetControllerTxExecutor() *SetControllerTxExecutor {
	return &SetControllerTxExecutor{}
}

func (exec *SetControllerTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.SetControllerTx)

	if res := validateAddress("Controller", tx.Controller); res.IsError() {
		return res
	}
	if _, res := getControlledProxy(view, tx.Proxy, tx.Source); res.IsError() {
		return res
	}
	return result.OK
}

func (exec *SetControllerTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.SetControllerTx)

	proxy, res := getControlledProxy(view, tx.Proxy, tx.Source)
	if res.IsError() {
		return res
	}
	old := proxy.Controller
	proxy.Controller = tx.Controller
	st.NewProxyRegistry(view).Save(proxy)

	emit(view, types.EventControllerChanged, &types.ControllerChangedData{
		Proxy:         proxy.Address,
		OldController: old,
		NewController: tx.Controller,
	})
	return result.OK
}

var _ TxExecutor = (*ProxyDelegateTxExecutor)(nil)

// ------------------------------- ProxyDelegate Transaction -----------------------------------

// ProxyDelegateTxExecutor implements the TxExecutor interface
type ProxyDelegateTxExecutor struct {
}

// NewProxyDelegateTxExecutor creates a new instance of ProxyDelegateTxExecutor
func NewProxyDelegateTxExecutor() *ProxyDelegateTxExecutor {
	return &ProxyDelegateTxExecutor{}
}

func (exec *ProxyDelegateTxExecutor) sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.ProxyDelegateTx)

	if _, res := getControlledProxy(view, tx.Proxy, tx.Source); res.IsError() {
		return res
	}
	// a single level of routing: pools cannot delegate into pools
	if _, isProxy := st.NewProxyRegistry(view).ByAddress(tx.Delegatee); isProxy && tx.Delegatee != tx.Proxy {
		return result.Error("Proxy %v cannot delegate to proxy %v", tx.Proxy, tx.Delegatee).
			WithErrorCode(result.CodeInvalidTx)
	}
	return result.OK
}

func (exec *ProxyDelegateTxExecutor) process(chainID string, view *st.StoreView, transaction types.Tx) result.Result {
	tx := transaction.(*types.ProxyDelegateTx)

	proxy, res := getControlledProxy(view, tx.Proxy, tx.Source)
	if res.IsError() {
		return res
	}
	vpl := st.NewVotingPowerLedger(view)
	if err := vpl.Delegate(proxy.Address, tx.Delegatee, types.CategoryStake, view.Height()); err != nil {
		return types.ResultFromError(err)
	}
	proxy.Delegatee = vpl.Delegatee(proxy.Address, types.CategoryStake)
	st.NewProxyRegistry(view).Save(proxy)
	return result.OK
}
