package common

import (
	"github.com/spf13/viper"
)

const (
	// CfgConfigPath defines custom config path
	CfgConfigPath = "config.path"
	// CfgDataPath defines custom DB path
	CfgDataPath = "data.path"

	// CfgChainID defines the chain ID the node serves
	CfgChainID = "chain.id"

	// CfgStorageBackend selects the key/value backend: leveldb, badger or memory.
	CfgStorageBackend = "storage.backend"
	// CfgStorageCacheSize sets the LevelDB block cache size in MiB.
	CfgStorageCacheSize = "storage.cacheSize"

	// CfgLedgerBlockIntervalSecs defines how often the node advances the logical clock.
	CfgLedgerBlockIntervalSecs = "ledger.blockIntervalSecs"
	// CfgLedgerHistoryCacheSize is the number of historical power lookups kept in memory.
	CfgLedgerHistoryCacheSize = "ledger.historyCacheSize"

	// CfgRegistryMaxProxiesPerCreator limits how many proxies one creator can
	// deploy. Zero means unlimited.
	CfgRegistryMaxProxiesPerCreator = "registry.maxProxiesPerCreator"

	// CfgRPCEnabled sets whether to run RPC service.
	CfgRPCEnabled = "rpc.enabled"
	// CfgRPCAddress sets the binding address of RPC service.
	CfgRPCAddress = "rpc.address"
	// CfgRPCPort sets the port of RPC service.
	CfgRPCPort = "rpc.port"
	// CfgRPCMaxConnections limits concurrent connections accepted by RPC server.
	CfgRPCMaxConnections = "rpc.maxConnections"
	// CfgRPCTimeoutSecs set a timeout for RPC.
	CfgRPCTimeoutSecs = "rpc.timeoutSecs"
	// CfgRPCTxEnabled allows transactions to be submitted through BroadcastTx.
	CfgRPCTxEnabled = "rpc.txEnabled"

	// CfgMetricsEnabled exposes prometheus metrics on the RPC router.
	CfgMetricsEnabled = "metrics.enabled"

	// CfgLogLevels sets the log level.
	CfgLogLevels = "log.levels"
)

// InitialConfig is the default configuartion produced by init command.
const InitialConfig = `# Stake delegation node configuration
chain:
  id: privatenet
storage:
  backend: leveldb
rpc:
  enabled: true
  port: 16900
log:
  levels: "*:info"
`

func init() {
	viper.SetDefault(CfgChainID, "privatenet")

	viper.SetDefault(CfgStorageBackend, "leveldb")
	viper.SetDefault(CfgStorageCacheSize, 256)

	viper.SetDefault(CfgLedgerBlockIntervalSecs, 6)
	viper.SetDefault(CfgLedgerHistoryCacheSize, 4096)

	viper.SetDefault(CfgRegistryMaxProxiesPerCreator, 1)

	viper.SetDefault(CfgRPCEnabled, false)
	viper.SetDefault(CfgRPCAddress, "0.0.0.0")
	viper.SetDefault(CfgRPCPort, "16900")
	viper.SetDefault(CfgRPCMaxConnections, 200)
	viper.SetDefault(CfgRPCTimeoutSecs, 60)
	viper.SetDefault(CfgRPCTxEnabled, false)

	viper.SetDefault(CfgMetricsEnabled, true)

	viper.SetDefault(CfgLogLevels, "*:info")
}

// WriteInitialConfig writes initial config file to file system.
func WriteInitialConfig(filePath string) error {
	return WriteFileAtomic(filePath, []byte(InitialConfig), 0600)
}
