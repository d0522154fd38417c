package state

import (
	"golang.org/x/crypto/sha3"

	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// ProxyAddress derives the address of the handle-th proxy created by creator.
func ProxyAddress(creator common.Address, handle uint64) common.Address {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(types.ProxyAddressSalt))
	hasher.Write(creator[:])
	hasher.Write(uint64Bytes(handle))
	return common.BytesToAddress(hasher.Sum(nil)[12:])
}

// ProxyRegistry is the arena of proxies, indexed by handle, with address
// and creator lookups.
type ProxyRegistry struct {
	view   *StoreView
	events *EventLog
}

// NewProxyRegistry returns the proxy registry of view.
func NewProxyRegistry(view *StoreView) *ProxyRegistry {
	return &ProxyRegistry{view: view, events: NewEventLog(view)}
}

// Count returns the number of proxies created so far.
func (pr *ProxyRegistry) Count() uint64 {
	return pr.view.getUint64(ProxyCountKey())
}

// Create deploys a new proxy for creator. maxPerCreator limits how many
// proxies a single creator may own, 0 disables the limit.
func (pr *ProxyRegistry) Create(creator common.Address, maxPerCreator uint64) (*types.Proxy, error) {
	owned := pr.ByCreator(creator)
	if maxPerCreator > 0 && uint64(len(owned)) >= maxPerCreator {
		return nil, errors.Wrapf(types.ErrAlreadyExists, "%v already created %v proxies", creator, len(owned))
	}

	handle := pr.Count()
	addr := ProxyAddress(creator, handle)
	if _, exists := pr.ByAddress(addr); exists {
		return nil, errors.Wrapf(types.ErrAlreadyExists, "proxy address %v is taken", addr)
	}
	proxy := types.NewProxy(handle, addr, creator)

	pr.Save(proxy)
	pr.view.setUint64(ProxyHandleKey(addr), handle)
	pr.view.setObject(CreatorProxiesKey(creator), append(owned, handle))
	pr.view.setUint64(ProxyCountKey(), handle+1)

	pr.events.Append(types.NewEvent(types.EventStakeDelegationCreated, &types.StakeDelegationCreatedData{
		Creator: creator,
		Proxy:   addr,
		Handle:  handle,
	}))
	logger.Debugf("Created proxy %v", proxy)
	return proxy, nil
}

// Save stores the mutable fields of proxy.
func (pr *ProxyRegistry) Save(proxy *types.Proxy) {
	pr.view.setObject(ProxyKey(proxy.Handle), proxy)
}

// ByHandle returns the proxy with the given handle.
func (pr *ProxyRegistry) ByHandle(handle uint64) (*types.Proxy, bool) {
	proxy := &types.Proxy{}
	if !pr.view.getObject(ProxyKey(handle), proxy) {
		return nil, false
	}
	return proxy, true
}

// ByAddress returns the proxy deployed at addr.
func (pr *ProxyRegistry) ByAddress(addr common.Address) (*types.Proxy, bool) {
	var handle uint64
	if !pr.view.getObject(ProxyHandleKey(addr), &handle) {
		return nil, false
	}
	return pr.ByHandle(handle)
}

// MustGet is ByAddress returning ErrProxyNotFound for unknown addresses.
func (pr *ProxyRegistry) MustGet(addr common.Address) (*types.Proxy, error) {
	proxy, ok := pr.ByAddress(addr)
	if !ok {
		return nil, errors.Wrapf(types.ErrProxyNotFound, "%v", addr)
	}
	return proxy, nil
}

// ByCreator returns the handles of the proxies created by creator.
func (pr *ProxyRegistry) ByCreator(creator common.Address) []uint64 {
	handles := []uint64{}
	pr.view.getObject(CreatorProxiesKey(creator), &handles)
	return handles
}
