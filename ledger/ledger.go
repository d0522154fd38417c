package ledger

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/event"
	exec "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/execution"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "ledger"})

// DefaultHistoryCacheSize is the number of historical power lookups kept
// in memory when no size is configured.
const DefaultHistoryCacheSize = 4096

// Params configures a Ledger.
type Params struct {
	Executor         exec.Params
	HistoryCacheSize int

	// EventBus receives the events of every successful transaction, optional.
	EventBus *event.EventBus
	// Registerer exposes the ledger metrics, optional.
	Registerer prometheus.Registerer
}

// DefaultParams returns the parameters used by tests and tools.
func DefaultParams() Params {
	return Params{
		Executor:         exec.DefaultParams(),
		HistoryCacheSize: DefaultHistoryCacheSize,
	}
}

// ParamsFromConfig reads the ledger parameters from the viper config.
func ParamsFromConfig() Params {
	params := DefaultParams()
	params.Executor.MaxProxiesPerCreator = viper.GetUint64(common.CfgRegistryMaxProxiesPerCreator)
	if size := viper.GetInt(common.CfgLedgerHistoryCacheSize); size > 0 {
		params.HistoryCacheSize = size
	}
	return params
}

type historyKey struct {
	addr     common.Address
	category types.Category
	height   uint64
}

// Ledger is the entry point to the staking state machine. Mutations are
// serialized, queries may run concurrently with each other.
type Ledger struct {
	mu        sync.RWMutex
	publishMu sync.Mutex

	state    *st.LedgerState
	executor *exec.Executor
	bus      *event.EventBus
	history  *lru.Cache
	metrics  *ledgerMetrics
}

// NewLedger creates a ledger on top of db. The state is restored from the
// last commit found in db.
func NewLedger(chainID string, db database.Database, params Params) *Ledger {
	state := st.NewLedgerState(chainID, db)
	size := params.HistoryCacheSize
	if size <= 0 {
		size = DefaultHistoryCacheSize
	}
	history, err := lru.New(size)
	if err != nil {
		log.Panic(err)
	}
	ledger := &Ledger{
		state:    state,
		executor: exec.NewExecutor(state, params.Executor),
		bus:      params.EventBus,
		history:  history,
		metrics:  newLedgerMetrics(params.Registerer),
	}
	ledger.metrics.height.Set(float64(state.Height()))
	return ledger
}

// GetChainID returns the chain ID of the ledger.
func (ledger *Ledger) GetChainID() string {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.GetChainID()
}

// InitGenesis credits the genesis allocations and persists them. It fails
// with ErrAlreadyExists if the ledger was initialized before.
func (ledger *Ledger) InitGenesis(genesis *types.Genesis) error {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	if genesis.ChainID != "" && genesis.ChainID != ledger.state.GetChainID() {
		return errors.Errorf("genesis is for chain %v, ledger serves %v", genesis.ChainID, ledger.state.GetChainID())
	}

	scratch := ledger.state.Scratch()
	if err := st.NewTokenLedger(scratch).InitGenesis(genesis); err != nil {
		return err
	}
	ledger.state.ApplyScratch(scratch)
	if err := ledger.state.Save(); err != nil {
		return err
	}
	logger.Infof("Genesis applied, %v allocations, total supply %v", len(genesis.Allocations), types.FormatAmount(genesis.TotalSupply()))
	return nil
}

// ExecuteTx applies tx at the current height. A failed transaction leaves
// the state untouched and returns an error wrapping the matching sentinel.
func (ledger *Ledger) ExecuteTx(tx types.Tx) (*types.TxResult, error) {
	ledger.mu.Lock()

	el := st.NewEventLog(ledger.state.Delivered())
	before := el.Count()
	res := ledger.executor.ExecuteTx(tx)
	if res.IsError() {
		ledger.mu.Unlock()
		ledger.metrics.txs.WithLabelValues(txTypeName(tx), "error").Inc()
		return nil, types.ErrorFromResult(res)
	}
	events := el.Range(before, el.Count())
	txResult := &types.TxResult{
		BlockHeight: ledger.state.Height(),
		Events:      events,
		Info:        res.Info,
	}
	// publishMu is taken before mu is released so events reach the bus in
	// audit log order
	ledger.publishMu.Lock()
	ledger.mu.Unlock()

	ledger.metrics.txs.WithLabelValues(txTypeName(tx), "ok").Inc()
	if ledger.bus != nil && len(events) > 0 {
		ledger.bus.Publish(events...)
	}
	ledger.publishMu.Unlock()
	return txResult, nil
}

// ExecuteRawTx decodes and applies an encoded transaction.
func (ledger *Ledger) ExecuteRawTx(raw []byte) (*types.TxResult, error) {
	tx, err := types.TxFromBytes(raw)
	if err != nil {
		return nil, err
	}
	return ledger.ExecuteTx(tx)
}

// Height returns the current logical block height.
func (ledger *Ledger) Height() uint64 {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return ledger.state.Height()
}

// Commit persists the state and advances the height by one.
func (ledger *Ledger) Commit() error {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	if err := ledger.state.Commit(); err != nil {
		return err
	}
	ledger.metrics.height.Set(float64(ledger.state.Height()))
	return nil
}

// AdvanceTo persists the state and moves the height forward to height.
func (ledger *Ledger) AdvanceTo(height uint64) error {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	if err := ledger.state.AdvanceTo(height); err != nil {
		return err
	}
	ledger.metrics.height.Set(float64(ledger.state.Height()))
	return nil
}

//
// ------------------------- Queries -------------------------
//

// GetPowerAtBlock returns the voting power of addr at blockHeight. Heights
// below the current one are immutable and served from the cache.
func (ledger *Ledger) GetPowerAtBlock(addr common.Address, blockHeight uint64, category types.Category) (*big.Int, error) {
	if !category.IsValid() {
		return nil, errors.Wrapf(types.ErrInvalidCategory, "%d", category)
	}

	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	key := historyKey{addr: addr, category: category, height: blockHeight}
	final := blockHeight < ledger.state.Height()
	if final {
		if power, ok := ledger.history.Get(key); ok {
			ledger.metrics.cacheHits.Inc()
			return new(big.Int).Set(power.(*big.Int)), nil
		}
		ledger.metrics.cacheMisses.Inc()
	}

	power, err := st.NewVotingPowerLedger(ledger.state.Delivered()).GetPowerAtBlock(addr, blockHeight, category)
	if err != nil {
		return nil, err
	}
	if final {
		ledger.history.Add(key, new(big.Int).Set(power))
	}
	return power, nil
}

// CurrentPower returns the voting power of addr including the effects of
// the transactions executed at the current height.
func (ledger *Ledger) CurrentPower(addr common.Address, category types.Category) (*big.Int, error) {
	if !category.IsValid() {
		return nil, errors.Wrapf(types.ErrInvalidCategory, "%d", category)
	}
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewVotingPowerLedger(ledger.state.Delivered()).CurrentPower(addr, category), nil
}

// Delegatee returns who addr delegates category power to, the zero address
// meaning addr itself.
func (ledger *Ledger) Delegatee(addr common.Address, category types.Category) common.Address {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewVotingPowerLedger(ledger.state.Delivered()).Delegatee(addr, category)
}

// Balance returns the direct (undelegated source) balance of addr.
func (ledger *Ledger) Balance(addr common.Address, category types.Category) *big.Int {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewVotingPowerLedger(ledger.state.Delivered()).Balance(addr, category)
}

// TokenBalance returns the token balance of addr.
func (ledger *Ledger) TokenBalance(addr common.Address) *big.Int {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewTokenLedger(ledger.state.Delivered()).BalanceOf(addr)
}

func (ledger *Ledger) Allowance(owner, spender common.Address) *big.Int {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewTokenLedger(ledger.state.Delivered()).Allowance(owner, spender)
}

func (ledger *Ledger) TotalSupply() *big.Int {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewTokenLedger(ledger.state.Delivered()).TotalSupply()
}

// ProxyCount returns the number of proxies ever created.
func (ledger *Ledger) ProxyCount() uint64 {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewProxyRegistry(ledger.state.Delivered()).Count()
}

// GetProxy returns the proxy at addr.
func (ledger *Ledger) GetProxy(addr common.Address) (*types.Proxy, error) {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewProxyRegistry(ledger.state.Delivered()).MustGet(addr)
}

// GetProxyByHandle returns the proxy with the given registry handle.
func (ledger *Ledger) GetProxyByHandle(handle uint64) (*types.Proxy, error) {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	proxy, ok := st.NewProxyRegistry(ledger.state.Delivered()).ByHandle(handle)
	if !ok {
		return nil, errors.Wrapf(types.ErrProxyNotFound, "handle %v", handle)
	}
	return proxy, nil
}

// GetProxyByCreator returns the proxies deployed by creator, oldest first.
func (ledger *Ledger) GetProxyByCreator(creator common.Address) []*types.Proxy {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	registry := st.NewProxyRegistry(ledger.state.Delivered())
	proxies := []*types.Proxy{}
	for _, handle := range registry.ByCreator(creator) {
		if proxy, ok := registry.ByHandle(handle); ok {
			proxies = append(proxies, proxy)
		}
	}
	return proxies
}

// GetPoolShare returns the position of depositor in the proxy pool.
func (ledger *Ledger) GetPoolShare(proxyAddr, depositor common.Address) (*types.PoolShare, error) {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	view := ledger.state.Delivered()
	if _, err := st.NewProxyRegistry(view).MustGet(proxyAddr); err != nil {
		return nil, err
	}
	return st.NewProxyPool(view).GetShare(proxyAddr, depositor), nil
}

// PendingReward returns the reward depositor could claim right now.
func (ledger *Ledger) PendingReward(proxyAddr, depositor common.Address) (*big.Int, error) {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	view := ledger.state.Delivered()
	proxy, err := st.NewProxyRegistry(view).MustGet(proxyAddr)
	if err != nil {
		return nil, err
	}
	return proxy.PendingReward(st.NewProxyPool(view).GetShare(proxyAddr, depositor)), nil
}

// GetVote returns the latest vote of a proxy on axis.
func (ledger *Ledger) GetVote(proxyAddr common.Address, axis types.VoteAxis) (*types.VoteRecord, bool) {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewGovernanceAggregator(ledger.state.Delivered()).Vote(axis, proxyAddr)
}

// Votes returns the latest vote of every proxy on axis.
func (ledger *Ledger) Votes(axis types.VoteAxis) []*types.VoteRecord {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewGovernanceAggregator(ledger.state.Delivered()).Votes(axis)
}

// GovernanceResult returns the stake weighted outcome on axis. ok is false
// while nobody has voted.
func (ledger *Ledger) GovernanceResult(axis types.VoteAxis) (*big.Int, bool) {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewGovernanceAggregator(ledger.state.Delivered()).Result(axis)
}

// EventCount returns the number of events in the audit log.
func (ledger *Ledger) EventCount() uint64 {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewEventLog(ledger.state.Delivered()).Count()
}

// Events returns the audit log entries with index in [from, to).
func (ledger *Ledger) Events(from, to uint64) []*types.Event {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewEventLog(ledger.state.Delivered()).Range(from, to)
}

// Checkpoints returns the full checkpoint history of addr.
func (ledger *Ledger) Checkpoints(addr common.Address, category types.Category) *types.CheckpointList {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewCheckpointStore(ledger.state.Delivered()).List(addr, category)
}

// CheckpointCount returns the number of checkpoints recorded for addr.
func (ledger *Ledger) CheckpointCount(addr common.Address, category types.Category) uint64 {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	return st.NewCheckpointStore(ledger.state.Delivered()).Count(addr, category)
}

// CheckpointRange returns the checkpoints of addr with index in [from, to).
func (ledger *Ledger) CheckpointRange(addr common.Address, category types.Category, from, to uint64) []types.Checkpoint {
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()
	cs := st.NewCheckpointStore(ledger.state.Delivered())
	if count := cs.Count(addr, category); to > count {
		to = count
	}
	ret := []types.Checkpoint{}
	for idx := from; idx < to; idx++ {
		ret = append(ret, cs.At(addr, category, idx))
	}
	return ret
}

func txTypeName(tx types.Tx) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", tx), "*types.")
}
