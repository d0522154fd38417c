package state

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// EventLog is the append-only audit log stored in a view. Events appended
// to a scratch view disappear with it when the transaction fails.
type EventLog struct {
	view *StoreView
}

// NewEventLog returns the audit log of view.
func NewEventLog(view *StoreView) *EventLog {
	return &EventLog{view: view}
}

// Count returns the number of recorded events.
func (el *EventLog) Count() uint64 {
	return el.view.getUint64(EventCountKey())
}

// Append assigns the next index and the current height to e and stores it.
func (el *EventLog) Append(e *types.Event) {
	idx := el.Count()
	e.Index = idx
	e.BlockHeight = el.view.Height()
	el.view.setObject(EventKey(idx), e)
	el.view.setUint64(EventCountKey(), idx+1)
}

// Get returns the event with the given index.
func (el *EventLog) Get(idx uint64) (*types.Event, bool) {
	e := &types.Event{}
	if !el.view.getObject(EventKey(idx), e) {
		return nil, false
	}
	return e, true
}

// Range returns the events with index in [from, to). to is capped at Count.
func (el *EventLog) Range(from, to uint64) []*types.Event {
	count := el.Count()
	if to > count {
		to = count
	}
	ret := []*types.Event{}
	for idx := from; idx < to; idx++ {
		if e, ok := el.Get(idx); ok {
			ret = append(ret, e)
		}
	}
	return ret
}
