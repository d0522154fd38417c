package state

import (
	"encoding/binary"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

//
// ------------------------- Ledger State Keys -------------------------
//

func uint64Bytes(n uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}

func concat(parts ...[]byte) common.Bytes {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	key := make(common.Bytes, 0, size)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// ChainIDKey returns the key for chainID
func ChainIDKey() common.Bytes {
	return common.Bytes("chainid")
}

// HeightKey returns the key for the last saved block height
func HeightKey() common.Bytes {
	return common.Bytes("ls/height")
}

// CheckpointCountKey returns the key for the number of checkpoints of (addr, category)
func CheckpointCountKey(addr common.Address, category types.Category) common.Bytes {
	return concat([]byte("ls/cpc/"), []byte{byte(category)}, addr[:])
}

// CheckpointKey constructs the state key of the idx-th checkpoint of (addr, category)
func CheckpointKey(addr common.Address, category types.Category, idx uint64) common.Bytes {
	return concat([]byte("ls/cp/"), []byte{byte(category)}, addr[:], uint64Bytes(idx))
}

// CurrentPowerKey returns the key caching the latest power of (addr, category)
func CurrentPowerKey(addr common.Address, category types.Category) common.Bytes {
	return concat([]byte("ls/pw/"), []byte{byte(category)}, addr[:])
}

// DelegateeKey returns the key of the delegation edge of (addr, category)
func DelegateeKey(addr common.Address, category types.Category) common.Bytes {
	return concat([]byte("ls/dg/"), []byte{byte(category)}, addr[:])
}

// DirectBalanceKey returns the key of the directly held balance of (addr, category)
func DirectBalanceKey(addr common.Address, category types.Category) common.Bytes {
	return concat([]byte("ls/db/"), []byte{byte(category)}, addr[:])
}

// TokenBalanceKey returns the key of the token balance of addr
func TokenBalanceKey(addr common.Address) common.Bytes {
	return concat([]byte("ls/tb/"), addr[:])
}

// AllowanceKey returns the key of the allowance owner granted to spender
func AllowanceKey(owner, spender common.Address) common.Bytes {
	return concat([]byte("ls/ta/"), owner[:], spender[:])
}

// TotalSupplyKey returns the key of the token total supply
func TotalSupplyKey() common.Bytes {
	return common.Bytes("ls/ts")
}

// ProxyCountKey returns the key of the number of proxies ever created
func ProxyCountKey() common.Bytes {
	return common.Bytes("ls/pxc")
}

// ProxyKey constructs the state key of the proxy with the given handle
func ProxyKey(handle uint64) common.Bytes {
	return concat([]byte("ls/px/"), uint64Bytes(handle))
}

// ProxyHandleKey maps a proxy address to its handle
func ProxyHandleKey(addr common.Address) common.Bytes {
	return concat([]byte("ls/pxa/"), addr[:])
}

// CreatorProxiesKey returns the key of the handles created by creator
func CreatorProxiesKey(creator common.Address) common.Bytes {
	return concat([]byte("ls/pxcr/"), creator[:])
}

// PoolShareKey returns the key of a depositor's position in a proxy
func PoolShareKey(proxy, depositor common.Address) common.Bytes {
	return concat([]byte("ls/ps/"), proxy[:], depositor[:])
}

// VoteKey returns the key of the latest vote of proxy on axis
func VoteKey(axis types.VoteAxis, proxy common.Address) common.Bytes {
	return concat([]byte("ls/v/"), []byte{byte(axis)}, proxy[:])
}

// VotersKey returns the key of the proxies that voted on axis
func VotersKey(axis types.VoteAxis) common.Bytes {
	return concat([]byte("ls/vp/"), []byte{byte(axis)})
}

// EventCountKey returns the key of the audit log length
func EventCountKey() common.Bytes {
	return common.Bytes("ls/evc")
}

// EventKey constructs the state key of the idx-th event
func EventKey(idx uint64) common.Bytes {
	return concat([]byte("ls/ev/"), uint64Bytes(idx))
}
