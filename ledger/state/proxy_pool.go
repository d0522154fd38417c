package state

import (
	"math/big"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// ProxyPool stores the depositor positions of the proxies.
type ProxyPool struct {
	view *StoreView
}

// NewProxyPool returns the pool share store of view.
func NewProxyPool(view *StoreView) *ProxyPool {
	return &ProxyPool{view: view}
}

// GetShare returns the position of depositor in proxy, empty if none.
func (pp *ProxyPool) GetShare(proxy, depositor common.Address) *types.PoolShare {
	share := &types.PoolShare{}
	if !pp.view.getObject(PoolShareKey(proxy, depositor), share) {
		return types.NewPoolShare(depositor)
	}
	return share
}

// SetShare stores share, removing it once nothing is left to track.
func (pp *ProxyPool) SetShare(proxy common.Address, share *types.PoolShare) {
	if !share.IsActive() && types.NoNil(share.RewardDebt).Sign() == 0 {
		pp.view.Delete(PoolShareKey(proxy, share.Depositor))
		return
	}
	pp.view.setObject(PoolShareKey(proxy, share.Depositor), share)
}

// Shares returns the positions of all current depositors of proxy.
func (pp *ProxyPool) Shares(proxy *types.Proxy) []*types.PoolShare {
	shares := make([]*types.PoolShare, 0, len(proxy.Depositors))
	for _, d := range proxy.Depositors {
		shares = append(shares, pp.GetShare(proxy.Address, d))
	}
	return shares
}

// SumPrincipal adds up the principal of all depositors of proxy.
func (pp *ProxyPool) SumPrincipal(proxy *types.Proxy) *big.Int {
	sum := new(big.Int)
	for _, s := range pp.Shares(proxy) {
		sum.Add(sum, types.NoNil(s.Principal))
	}
	return sum
}
