package state

import (
	"math/big"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// GovernanceAggregator collects the proxies' votes and computes the stake
// weighted parameter value per axis. Only the latest vote of every proxy
// counts.
type GovernanceAggregator struct {
	view *StoreView
}

// NewGovernanceAggregator returns the aggregator of view.
func NewGovernanceAggregator(view *StoreView) *GovernanceAggregator {
	return &GovernanceAggregator{view: view}
}

// Submit records the vote of proxy, replacing its previous vote on axis.
func (ga *GovernanceAggregator) Submit(axis types.VoteAxis, proxy common.Address, value, weight *big.Int, blockHeight uint64) {
	if _, voted := ga.Vote(axis, proxy); !voted {
		voters := ga.voters(axis)
		ga.view.setObject(VotersKey(axis), append(voters, proxy))
	}
	ga.view.setObject(VoteKey(axis, proxy), &types.VoteRecord{
		Proxy:       proxy,
		Axis:        axis,
		Value:       types.NoNil(value),
		Weight:      types.NoNil(weight),
		BlockHeight: blockHeight,
	})
}

// Vote returns the latest vote of proxy on axis.
func (ga *GovernanceAggregator) Vote(axis types.VoteAxis, proxy common.Address) (*types.VoteRecord, bool) {
	record := &types.VoteRecord{}
	if !ga.view.getObject(VoteKey(axis, proxy), record) {
		return nil, false
	}
	return record, true
}

// Votes returns the latest vote of every proxy on axis.
func (ga *GovernanceAggregator) Votes(axis types.VoteAxis) []*types.VoteRecord {
	voters := ga.voters(axis)
	ret := make([]*types.VoteRecord, 0, len(voters))
	for _, proxy := range voters {
		if record, ok := ga.Vote(axis, proxy); ok {
			ret = append(ret, record)
		}
	}
	return ret
}

// Result returns the weighted average of the votes on axis. Without any
// weight the plain average is used. ok is false when nobody voted.
func (ga *GovernanceAggregator) Result(axis types.VoteAxis) (value *big.Int, ok bool) {
	votes := ga.Votes(axis)
	if len(votes) == 0 {
		return nil, false
	}
	weighted, totalWeight, plain := new(big.Int), new(big.Int), new(big.Int)
	for _, v := range votes {
		weighted.Add(weighted, new(big.Int).Mul(v.Value, v.Weight))
		totalWeight.Add(totalWeight, v.Weight)
		plain.Add(plain, v.Value)
	}
	if totalWeight.Sign() == 0 {
		return plain.Quo(plain, big.NewInt(int64(len(votes)))), true
	}
	return weighted.Quo(weighted, totalWeight), true
}

func (ga *GovernanceAggregator) voters(axis types.VoteAxis) []common.Address {
	voters := []common.Address{}
	ga.view.getObject(VotersKey(axis), &voters)
	return voters
}
