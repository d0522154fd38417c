package rpc

import (
	"github.com/pkg/errors"
	"github.com/powerman/rpc-codec/jsonrpc2"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/version"
)

const (
	// MaxEventsPerQuery caps the size of a GetEvents page.
	MaxEventsPerQuery = 1000
	// MaxCheckpointsPerQuery caps the size of a GetCheckpoints page.
	MaxCheckpointsPerQuery = 1000
)

// rpcError converts a ledger error into a JSON-RPC error carrying the
// ledger error code.
func rpcError(err error) error {
	return jsonrpc2.NewError(int(types.ErrorCodeOf(err)), err.Error())
}

func parseAddress(name, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, errors.Errorf("%v must be specified", name)
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("%v is not a valid address: %v", name, s)
	}
	return common.HexToAddress(s), nil
}

func parseCategory(s string) (types.Category, error) {
	if s == "" {
		return types.CategoryStake, nil
	}
	return types.ParseCategory(s)
}

// ------------------------------- GetVersion -----------------------------------

type GetVersionArgs struct {
}

type GetVersionResult struct {
	Version   string `json:"version"`
	GitHash   string `json:"git_hash"`
	Timestamp string `json:"timestamp"`
}

func (t *StakeDelegationRPCService) GetVersion(args *GetVersionArgs, result *GetVersionResult) (err error) {
	result.Version = version.Version
	result.GitHash = version.GitHash
	result.Timestamp = version.Timestamp
	return nil
}

// ------------------------------- GetStatus -----------------------------------

type GetStatusArgs struct{}

type GetStatusResult struct {
	ChainID     string            `json:"chain_id"`
	Height      common.JSONUint64 `json:"height"`
	ProxyCount  common.JSONUint64 `json:"proxy_count"`
	EventCount  common.JSONUint64 `json:"event_count"`
	TotalSupply *common.JSONBig   `json:"total_supply"`
	TxEnabled   bool              `json:"tx_enabled"`
}

func (t *StakeDelegationRPCService) GetStatus(args *GetStatusArgs, result *GetStatusResult) (err error) {
	result.ChainID = t.ledger.GetChainID()
	result.Height = common.JSONUint64(t.ledger.Height())
	result.ProxyCount = common.JSONUint64(t.ledger.ProxyCount())
	result.EventCount = common.JSONUint64(t.ledger.EventCount())
	result.TotalSupply = common.NewJSONBig(t.ledger.TotalSupply())
	result.TxEnabled = t.txEnabled
	return nil
}

// ------------------------------- GetPowerAtBlock -----------------------------------

type GetPowerAtBlockArgs struct {
	Address     string            `json:"address"`
	BlockHeight common.JSONUint64 `json:"block_height"`
	Category    string            `json:"category"`
}

type GetPowerResult struct {
	Address     string            `json:"address"`
	Category    types.Category    `json:"category"`
	BlockHeight common.JSONUint64 `json:"block_height"`
	Power       *common.JSONBig   `json:"power"`
}

func (t *StakeDelegationRPCService) GetPowerAtBlock(args *GetPowerAtBlockArgs, result *GetPowerResult) (err error) {
	addr, err := parseAddress("Address", args.Address)
	if err != nil {
		return err
	}
	category, err := parseCategory(args.Category)
	if err != nil {
		return rpcError(err)
	}
	power, err := t.ledger.GetPowerAtBlock(addr, uint64(args.BlockHeight), category)
	if err != nil {
		return rpcError(err)
	}
	result.Address = addr.Hex()
	result.Category = category
	result.BlockHeight = args.BlockHeight
	result.Power = common.NewJSONBig(power)
	return nil
}

// ------------------------------- GetCurrentPower -----------------------------------

type GetCurrentPowerArgs struct {
	Address  string `json:"address"`
	Category string `json:"category"`
}

func (t *StakeDelegationRPCService) GetCurrentPower(args *GetCurrentPowerArgs, result *GetPowerResult) (err error) {
	addr, err := parseAddress("Address", args.Address)
	if err != nil {
		return err
	}
	category, err := parseCategory(args.Category)
	if err != nil {
		return rpcError(err)
	}
	power, err := t.ledger.CurrentPower(addr, category)
	if err != nil {
		return rpcError(err)
	}
	result.Address = addr.Hex()
	result.Category = category
	result.BlockHeight = common.JSONUint64(t.ledger.Height())
	result.Power = common.NewJSONBig(power)
	return nil
}

// ------------------------------- GetBalance -----------------------------------

type GetBalanceArgs struct {
	Address string `json:"address"`
	Spender string `json:"spender"` // optional, reports the allowance granted to it
}

type CategoryBalance struct {
	Category  types.Category  `json:"category"`
	Direct    *common.JSONBig `json:"direct"`
	Delegatee common.Address  `json:"delegatee"`
}

type GetBalanceResult struct {
	Address    string             `json:"address"`
	Balance    *common.JSONBig    `json:"balance"`
	Allowance  *common.JSONBig    `json:"allowance,omitempty"`
	Categories []*CategoryBalance `json:"categories"`
}

func (t *StakeDelegationRPCService) GetBalance(args *GetBalanceArgs, result *GetBalanceResult) (err error) {
	addr, err := parseAddress("Address", args.Address)
	if err != nil {
		return err
	}
	result.Address = addr.Hex()
	result.Balance = common.NewJSONBig(t.ledger.TokenBalance(addr))
	if args.Spender != "" {
		spender, err := parseAddress("Spender", args.Spender)
		if err != nil {
			return err
		}
		result.Allowance = common.NewJSONBig(t.ledger.Allowance(addr, spender))
	}
	result.Categories = []*CategoryBalance{}
	for _, category := range types.AllCategories() {
		result.Categories = append(result.Categories, &CategoryBalance{
			Category:  category,
			Direct:    common.NewJSONBig(t.ledger.Balance(addr, category)),
			Delegatee: t.ledger.Delegatee(addr, category),
		})
	}
	return nil
}

// ------------------------------- GetProxy -----------------------------------

type GetProxyArgs struct {
	Address string `json:"address"`
	Creator string `json:"creator"`
}

type ProxyResult struct {
	Handle             common.JSONUint64 `json:"handle"`
	Address            common.Address    `json:"address"`
	Creator            common.Address    `json:"creator"`
	Controller         common.Address    `json:"controller"`
	Delegatee          common.Address    `json:"delegatee"`
	TotalPrincipal     *common.JSONBig   `json:"total_principal"`
	RewardPerShare     *common.JSONBig   `json:"reward_per_share"`
	UnallocatedRewards *common.JSONBig   `json:"unallocated_rewards"`
	Depositors         []common.Address  `json:"depositors"`
	Power              *common.JSONBig   `json:"power"`
}

type GetProxyResult struct {
	Proxies []*ProxyResult `json:"proxies"`
}

func (t *StakeDelegationRPCService) newProxyResult(proxy *types.Proxy) *ProxyResult {
	power, _ := t.ledger.CurrentPower(proxy.Address, types.CategoryStake)
	depositors := proxy.Depositors
	if depositors == nil {
		depositors = []common.Address{}
	}
	return &ProxyResult{
		Handle:             common.JSONUint64(proxy.Handle),
		Address:            proxy.Address,
		Creator:            proxy.Creator,
		Controller:         proxy.Controller,
		Delegatee:          proxy.Delegatee,
		TotalPrincipal:     common.NewJSONBig(proxy.TotalPrincipal),
		RewardPerShare:     common.NewJSONBig(proxy.RewardPerShare),
		UnallocatedRewards: common.NewJSONBig(proxy.UnallocatedRewards),
		Depositors:         depositors,
		Power:              common.NewJSONBig(power),
	}
}

func (t *StakeDelegationRPCService) GetProxy(args *GetProxyArgs, result *GetProxyResult) (err error) {
	result.Proxies = []*ProxyResult{}
	switch {
	case args.Address != "":
		addr, err := parseAddress("Address", args.Address)
		if err != nil {
			return err
		}
		proxy, err := t.ledger.GetProxy(addr)
		if err != nil {
			return rpcError(err)
		}
		result.Proxies = append(result.Proxies, t.newProxyResult(proxy))
	case args.Creator != "":
		creator, err := parseAddress("Creator", args.Creator)
		if err != nil {
			return err
		}
		for _, proxy := range t.ledger.GetProxyByCreator(creator) {
			result.Proxies = append(result.Proxies, t.newProxyResult(proxy))
		}
	default:
		return errors.New("Address or Creator must be specified")
	}
	return nil
}

// ------------------------------- GetPoolShare -----------------------------------

type GetPoolShareArgs struct {
	Proxy     string `json:"proxy"`
	Depositor string `json:"depositor"`
}

type GetPoolShareResult struct {
	Proxy         common.Address  `json:"proxy"`
	Depositor     common.Address  `json:"depositor"`
	Principal     *common.JSONBig `json:"principal"`
	RewardDebt    *common.JSONBig `json:"reward_debt"`
	PendingReward *common.JSONBig `json:"pending_reward"`
}

func (t *StakeDelegationRPCService) GetPoolShare(args *GetPoolShareArgs, result *GetPoolShareResult) (err error) {
	proxyAddr, err := parseAddress("Proxy", args.Proxy)
	if err != nil {
		return err
	}
	depositor, err := parseAddress("Depositor", args.Depositor)
	if err != nil {
		return err
	}
	share, err := t.ledger.GetPoolShare(proxyAddr, depositor)
	if err != nil {
		return rpcError(err)
	}
	pending, err := t.ledger.PendingReward(proxyAddr, depositor)
	if err != nil {
		return rpcError(err)
	}
	result.Proxy = proxyAddr
	result.Depositor = depositor
	result.Principal = common.NewJSONBig(share.Principal)
	result.RewardDebt = common.NewJSONBig(share.RewardDebt)
	result.PendingReward = common.NewJSONBig(pending)
	return nil
}

// ------------------------------- GetVote -----------------------------------

type GetVoteArgs struct {
	Proxy string `json:"proxy"`
	Axis  string `json:"axis"`
}

type VoteResult struct {
	Proxy       common.Address    `json:"proxy"`
	Axis        types.VoteAxis    `json:"axis"`
	Value       *common.JSONBig   `json:"value"`
	Weight      *common.JSONBig   `json:"weight"`
	BlockHeight common.JSONUint64 `json:"block_height"`
}

func newVoteResult(v *types.VoteRecord) *VoteResult {
	return &VoteResult{
		Proxy:       v.Proxy,
		Axis:        v.Axis,
		Value:       common.NewJSONBig(v.Value),
		Weight:      common.NewJSONBig(v.Weight),
		BlockHeight: common.JSONUint64(v.BlockHeight),
	}
}

func (t *StakeDelegationRPCService) GetVote(args *GetVoteArgs, result *VoteResult) (err error) {
	proxyAddr, err := parseAddress("Proxy", args.Proxy)
	if err != nil {
		return err
	}
	axis, err := types.ParseVoteAxis(args.Axis)
	if err != nil {
		return rpcError(err)
	}
	vote, ok := t.ledger.GetVote(proxyAddr, axis)
	if !ok {
		return errors.Errorf("Proxy %v has not voted on %v", proxyAddr, axis)
	}
	*result = *newVoteResult(vote)
	return nil
}

// ------------------------------- GetGovernanceResult -----------------------------------

type GetGovernanceResultArgs struct {
	Axis string `json:"axis"`
}

type GetGovernanceResultResult struct {
	Axis  types.VoteAxis  `json:"axis"`
	Value *common.JSONBig `json:"value"` // nil while nobody voted
	Min   *common.JSONBig `json:"min"`
	Max   *common.JSONBig `json:"max"`
	Votes []*VoteResult   `json:"votes"`
}

func (t *StakeDelegationRPCService) GetGovernanceResult(args *GetGovernanceResultArgs, result *GetGovernanceResultResult) (err error) {
	axis, err := types.ParseVoteAxis(args.Axis)
	if err != nil {
		return rpcError(err)
	}
	result.Axis = axis
	if value, ok := t.ledger.GovernanceResult(axis); ok {
		result.Value = common.NewJSONBig(value)
	}
	result.Min = common.NewJSONBig(axis.Range().Min)
	result.Max = common.NewJSONBig(axis.Range().Max)
	result.Votes = []*VoteResult{}
	for _, v := range t.ledger.Votes(axis) {
		result.Votes = append(result.Votes, newVoteResult(v))
	}
	return nil
}

// ------------------------------- GetEvents -----------------------------------

type GetEventsArgs struct {
	From common.JSONUint64 `json:"from"`
	To   common.JSONUint64 `json:"to"` // exclusive, 0 for "up to the latest"
}

type GetEventsResult struct {
	Events []*types.Event    `json:"events"`
	Count  common.JSONUint64 `json:"count"`
}

func (t *StakeDelegationRPCService) GetEvents(args *GetEventsArgs, result *GetEventsResult) (err error) {
	from, to := uint64(args.From), uint64(args.To)
	count := t.ledger.EventCount()
	if to == 0 || to > count {
		to = count
	}
	if to > from && to-from > MaxEventsPerQuery {
		to = from + MaxEventsPerQuery
	}
	result.Events = t.ledger.Events(from, to)
	result.Count = common.JSONUint64(count)
	return nil
}

// ------------------------------- GetCheckpoints -----------------------------------

type GetCheckpointsArgs struct {
	Address  string            `json:"address"`
	Category string            `json:"category"`
	From     common.JSONUint64 `json:"from"`
	To       common.JSONUint64 `json:"to"` // exclusive, 0 for "up to the latest"
}

type CheckpointResult struct {
	BlockHeight common.JSONUint64 `json:"block_height"`
	Power       *common.JSONBig   `json:"power"`
}

type GetCheckpointsResult struct {
	Address     common.Address      `json:"address"`
	Category    types.Category      `json:"category"`
	Checkpoints []*CheckpointResult `json:"checkpoints"`
	Count       common.JSONUint64   `json:"count"`
}

func (t *StakeDelegationRPCService) GetCheckpoints(args *GetCheckpointsArgs, result *GetCheckpointsResult) (err error) {
	addr, err := parseAddress("Address", args.Address)
	if err != nil {
		return err
	}
	category, err := parseCategory(args.Category)
	if err != nil {
		return rpcError(err)
	}

	from, to := uint64(args.From), uint64(args.To)
	count := t.ledger.CheckpointCount(addr, category)
	if to == 0 || to > count {
		to = count
	}
	if to > from && to-from > MaxCheckpointsPerQuery {
		to = from + MaxCheckpointsPerQuery
	}

	result.Address = addr
	result.Category = category
	result.Count = common.JSONUint64(count)
	result.Checkpoints = []*CheckpointResult{}
	for _, cp := range t.ledger.CheckpointRange(addr, category, from, to) {
		result.Checkpoints = append(result.Checkpoints, &CheckpointResult{
			BlockHeight: common.JSONUint64(cp.BlockHeight),
			Power:       common.NewJSONBig(cp.Power),
		})
	}
	return nil
}
