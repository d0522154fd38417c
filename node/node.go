package node

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/util"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/event"
	ld "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/rpc"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/kvstore"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/version"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "node"})

var (
	nodeStorePrefix = common.Bytes("node/")
	nodeMetaKey     = common.Bytes("meta")
)

// NodeMeta is persisted next to the ledger so a data directory is never
// reopened for a different chain.
type NodeMeta struct {
	ChainID    string
	Version    string
	StartCount uint64
}

// LoadNodeMeta reads the metadata kept in kv. A fresh store yields metadata
// for chainID, a store written for another chain is an error.
func LoadNodeMeta(kv store.Store, chainID string) (*NodeMeta, error) {
	meta := &NodeMeta{}
	err := kv.Get(nodeMetaKey, meta)
	switch {
	case err == nil:
		if meta.ChainID != chainID {
			return nil, errors.Errorf("data directory belongs to chain %v, not %v", meta.ChainID, chainID)
		}
	case errors.Cause(err) == store.ErrKeyNotFound:
		meta.ChainID = chainID
	default:
		return nil, errors.Wrap(err, "failed to load node metadata")
	}
	return meta, nil
}

// SaveNodeMeta persists meta into kv.
func SaveNodeMeta(kv store.Store, meta *NodeMeta) error {
	return errors.Wrap(kv.Put(nodeMetaKey, meta), "failed to save node metadata")
}

type Node struct {
	Store    store.Store
	Ledger   *ld.Ledger
	EventBus *event.EventBus
	RPC      *rpc.StakeDelegationRPCServer
	Registry *prometheus.Registry

	blockInterval time.Duration
	meta          *NodeMeta

	// Life cycle
	wg      *sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

type Params struct {
	ChainID string
	DB      database.Database
	// Genesis is applied when the database holds no ledger yet.
	Genesis *types.Genesis
	// BlockInterval is how often the logical clock advances, 0 disables the ticker.
	BlockInterval time.Duration
}

// NewNode wires the ledger, the event bus and the RPC server on top of
// params.DB.
func NewNode(params *Params) (*Node, error) {
	logger = util.GetLoggerForModule("node")

	kv := kvstore.NewPrefixedKVStore(params.DB, nodeStorePrefix)
	meta, err := LoadNodeMeta(kv, params.ChainID)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	bus := event.NewEventBus(registry)

	ledgerParams := ld.ParamsFromConfig()
	ledgerParams.EventBus = bus
	ledgerParams.Registerer = registry
	ledger := ld.NewLedger(params.ChainID, params.DB, ledgerParams)

	if params.Genesis != nil && ledger.TotalSupply().Sign() == 0 {
		if err := ledger.InitGenesis(params.Genesis); err != nil {
			return nil, errors.Wrap(err, "failed to apply genesis")
		}
		if err := ledger.Commit(); err != nil {
			return nil, err
		}
	}

	node := &Node{
		Store:         kv,
		Ledger:        ledger,
		EventBus:      bus,
		Registry:      registry,
		blockInterval: params.BlockInterval,
		meta:          meta,
		wg:            &sync.WaitGroup{},
	}

	if viper.GetBool(common.CfgRPCEnabled) {
		node.RPC = rpc.NewStakeDelegationRPCServer(ledger, registry)
	}

	return node, nil
}

// Meta returns the persisted node metadata.
func (n *Node) Meta() NodeMeta {
	return *n.meta
}

// Start starts sub components and kick off the main loop.
func (n *Node) Start(ctx context.Context) error {
	n.meta.Version = version.Version
	n.meta.StartCount++
	if err := SaveNodeMeta(n.Store, n.meta); err != nil {
		return err
	}

	c, cancel := context.WithCancel(ctx)
	n.ctx = c
	n.cancel = cancel

	n.EventBus.SubscribeFunc(event.AllEvents, func(e *types.Event) {
		logger.Debugf("Event %v", e)
	})

	if n.RPC != nil {
		if err := n.RPC.Start(n.ctx); err != nil {
			cancel()
			return err
		}
	}

	if n.blockInterval > 0 {
		n.wg.Add(1)
		go n.blockLoop()
	}

	logger.Infof("Node started, chain %v at height %v", n.meta.ChainID, n.Ledger.Height())
	return nil
}

// blockLoop advances the logical clock, committing the state at every tick.
func (n *Node) blockLoop() {
	defer n.wg.Done()

	ticker := time.NewTicker(n.blockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-n.ctx.Done():
			n.stopped = true
			return
		case <-ticker.C:
			if err := n.Ledger.Commit(); err != nil {
				logger.Errorf("Failed to commit block: %v", err)
				continue
			}
			logger.Debugf("Height advanced to %v", n.Ledger.Height())
		}
	}
}

// Stop notifies all sub components to stop without blocking.
func (n *Node) Stop() {
	if n.cancel != nil {
		n.cancel()
	}
}

// Wait blocks until all sub components stop. Pending state is committed
// once the block loop and the RPC server are gone.
func (n *Node) Wait() {
	n.wg.Wait()
	if n.RPC != nil {
		n.RPC.Wait()
	}
	n.EventBus.Stop()
	if err := n.Ledger.Commit(); err != nil {
		logger.Errorf("Failed to commit on shutdown: %v", err)
	}
}
