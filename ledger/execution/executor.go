package execution

import (
	log "github.com/sirupsen/logrus"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "execution"})

// TxExecutor defines the interface of the transaction executors
type TxExecutor interface {
	sanityCheck(chainID string, view *st.StoreView, transaction types.Tx) result.Result
	process(chainID string, view *st.StoreView, transaction types.Tx) result.Result
}

// Params holds the policy knobs of the executors.
type Params struct {
	// MaxProxiesPerCreator limits proxies per creator, 0 for unlimited.
	MaxProxiesPerCreator uint64
}

// DefaultParams returns the default executor policy.
func DefaultParams() Params {
	return Params{MaxProxiesPerCreator: types.DefaultMaxProxiesPerCreator}
}

// Executor executes the transactions
type Executor struct {
	state *st.LedgerState

	sendTxExec            *SendTxExecutor
	approveTxExec         *ApproveTxExecutor
	createProxyTxExec     *CreateProxyTxExecutor
	delegateStakingTxExec *DelegateStakingTxExecutor
	delegateVoteTxExec    *DelegateVoteTxExecutor
	claimRewardTxExec     *ClaimRewardTxExecutor
	unstakeTxExec         *UnstakeTxExecutor
	setControllerTxExec   *SetControllerTxExecutor
	proxyDelegateTxExec   *ProxyDelegateTxExecutor
	delegateTxExec        *DelegateTxExecutor
	undelegateTxExec      *UndelegateTxExecutor
	depositRewardTxExec   *DepositRewardTxExecutor

	skipSanityCheck bool
}

// NewExecutor creates a new instance of Executor
func NewExecutor(state *st.LedgerState, params Params) *Executor {
	executor := &Executor{
		state:                 state,
		sendTxExec:            NewSendTxExecutor(),
		approveTxExec:         NewApproveTxExecutor(),
		createProxyTxExec:     NewCreateProxyTxExecutor(params.MaxProxiesPerCreator),
		delegateStakingTxExec: NewDelegateStakingTxExecutor(),
		delegateVoteTxExec:    NewDelegateVoteTxExecutor(),
		claimRewardTxExec:     NewClaimRewardTxExecutor(),
		unstakeTxExec:         NewUnstakeTxExecutor(),
		setControllerTxExec:   NewSetControllerTxExecutor(),
		proxyDelegateTxExec:   NewProxyDelegateTxExecutor(),
		delegateTxExec:        NewDelegateTxExecutor(),
		undelegateTxExec:      NewUndelegateTxExecutor(),
		depositRewardTxExec:   NewDepositRewardTxExecutor(),
		skipSanityCheck:       false,
	}

	return executor
}

// SetSkipSanityCheck sets the flag for sanity check.
// Skip checks while replaying already accepted transactions.
func (exec *Executor) SetSkipSanityCheck(skip bool) {
	exec.skipSanityCheck = skip
}

// ExecuteTx runs tx against a scratch copy of the delivered view. The
// scratch view is merged back only if the transaction succeeds, so a
// failing transaction leaves no trace, events included.
func (exec *Executor) ExecuteTx(tx types.Tx) result.Result {
	chainID := exec.state.GetChainID()
	scratch := exec.state.Scratch()

	sanityCheckResult := exec.sanityCheck(chainID, scratch, tx)
	if sanityCheckResult.IsError() {
		logger.Debugf("Tx %v failed sanity check: %v", tx, sanityCheckResult.Message)
		return sanityCheckResult
	}

	processResult := exec.process(chainID, scratch, tx)
	if processResult.IsError() {
		logger.Debugf("Tx %v failed: %v", tx, processResult.Message)
		return processResult
	}

	exec.state.ApplyScratch(scratch)
	return processResult
}

func (exec *Executor) sanityCheck(chainID string, view *st.StoreView, tx types.Tx) result.Result {
	if exec.skipSanityCheck {
		return result.OK
	}

	var sanityCheckResult result.Result
	txExecutor := exec.getTxExecutor(tx)
	if txExecutor != nil {
		sanityCheckResult = txExecutor.sanityCheck(chainID, view, tx)
	} else {
		sanityCheckResult = result.Error("Unknown tx type: %T", tx).WithErrorCode(result.CodeUnknownTx)
	}

	return sanityCheckResult
}

func (exec *Executor) process(chainID string, view *st.StoreView, tx types.Tx) result.Result {
	var processResult result.Result
	txExecutor := exec.getTxExecutor(tx)
	if txExecutor != nil {
		processResult = txExecutor.process(chainID, view, tx)
	} else {
		processResult = result.Error("Unknown tx type: %T", tx).WithErrorCode(result.CodeUnknownTx)
	}

	return processResult
}

func (exec *Executor) getTxExecutor(tx types.Tx) TxExecutor {
	var txExecutor TxExecutor
	switch tx.(type) {
	case *types.SendTx:
		txExecutor = exec.sendTxExec
	case *types.ApproveTx:
		txExecutor = exec.approveTxExec
	case *types.CreateProxyTx:
		txExecutor = exec.createProxyTxExec
	case *types.DelegateStakingTx:
		txExecutor = exec.delegateStakingTxExec
	case *types.DelegateVoteTx:
		txExecutor = exec.delegateVoteTxExec
	case *types.ClaimRewardTx:
		txExecutor = exec.claimRewardTxExec
	case *types.UnstakeTx:
		txExecutor = exec.unstakeTxExec
	case *types.SetControllerTx:
		txExecutor = exec.setControllerTxExec
	case *types.ProxyDelegateTx:
		txExecutor = exec.proxyDelegateTxExec
	case *types.DelegateTx:
		txExecutor = exec.delegateTxExec
	case *types.UndelegateTx:
		txExecutor = exec.undelegateTxExec
	case *types.DepositRewardTx:
		txExecutor = exec.depositRewardTxExec
	default:
		txExecutor = nil
	}
	return txExecutor
}
