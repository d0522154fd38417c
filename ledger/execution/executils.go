package execution

import (
	"math/big"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// --------------------------------- Execution Utilities -------------------------------------

func validateAddress(name string, addr common.Address) result.Result {
	if addr.IsEmpty() {
		return result.Error("%v address is empty", name).WithErrorCode(result.CodeInvalidTx)
	}
	return result.OK
}

func validatePositiveAmount(amount *big.Int) result.Result {
	if !types.IsPositive(amount) {
		return result.Error("Amount must be positive, got %v", amount).WithErrorCode(result.CodeInvalidAmount)
	}
	return result.OK
}

// validateNotModuleAccount rejects addresses whose balances are owned by the
// ledger itself: registered proxies and the delegation manager escrow.
func validateNotModuleAccount(view *st.StoreView, name string, addr common.Address) result.Result {
	if addr == types.DelegationManagerAddress {
		return result.Error("%v %v is the delegation manager account", name, addr).WithErrorCode(result.CodeUnauthorized)
	}
	if _, isProxy := st.NewProxyRegistry(view).ByAddress(addr); isProxy {
		return result.Error("%v %v is a proxy account managed by its pool", name, addr).WithErrorCode(result.CodeUnauthorized)
	}
	return result.OK
}

func getProxy(view *st.StoreView, addr common.Address) (*types.Proxy, result.Result) {
	proxy, err := st.NewProxyRegistry(view).MustGet(addr)
	if err != nil {
		return nil, types.ResultFromError(err)
	}
	return proxy, result.OK
}

// getControlledProxy returns the proxy at addr if source is its controller.
func getControlledProxy(view *st.StoreView, addr, source common.Address) (*types.Proxy, result.Result) {
	proxy, res := getProxy(view, addr)
	if res.IsError() {
		return nil, res
	}
	if !proxy.IsController(source) {
		return nil, result.Error("%v is not the controller of proxy %v", source, addr).
			WithErrorCode(result.CodeUnauthorized)
	}
	return proxy, result.OK
}

// payReward transfers the pending reward of share out of the proxy and
// resets its baseline. A RewardClaimed event is emitted when always is set
// or the reward is non zero.
func payReward(view *st.StoreView, proxy *types.Proxy, share *types.PoolShare, always bool) (*big.Int, error) {
	tl := st.NewTokenLedger(view)
	pending := proxy.PendingReward(share)

	// rounding must never eat into the principal held by the proxy
	available := new(big.Int).Sub(tl.BalanceOf(proxy.Address), proxy.TotalPrincipal)
	if pending.Cmp(available) > 0 {
		logger.Warnf("Proxy %v owes %v to %v but only %v is available", proxy.Address, pending, share.Depositor, available)
		pending = types.NoNil(nil)
		if available.Sign() > 0 {
			pending.Set(available)
		}
	}

	if pending.Sign() > 0 {
		if err := tl.Transfer(proxy.Address, share.Depositor, pending); err != nil {
			return nil, err
		}
	}
	proxy.Settle(share)
	if always || pending.Sign() > 0 {
		emit(view, types.EventRewardClaimed, &types.StakeData{
			Proxy:     proxy.Address,
			Depositor: share.Depositor,
			Amount:    pending,
		})
	}
	return pending, nil
}

func emit(view *st.StoreView, eventType types.EventType, payload interface{}) {
	st.NewEventLog(view).Append(types.NewEvent(eventType, payload))
}
