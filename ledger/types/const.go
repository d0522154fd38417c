package types

import "github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"

const (
	// ProxyAddressSalt is mixed into the proxy address derivation.
	ProxyAddressSalt = "stake-delegation-proxy"

	// DefaultMaxProxiesPerCreator is the registry policy applied when none is configured.
	DefaultMaxProxiesPerCreator = 1

	// MaxDepositorsPerProxy bounds the depositor list stored with each pool.
	MaxDepositorsPerProxy = 10000
)

// DelegationManagerAddress is the module account that escrows tokens
// delegated directly, without a proxy.
var DelegationManagerAddress = common.HexToAddress("0x000000000000000000000000000000000000de1e")
