package types

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

// EventType identifies the payload of an event.
type EventType uint8

const (
	EventStakeDelegationCreated EventType = iota + 1
	EventDelegateChanged
	EventStaked
	EventUnstaked
	EventRewardClaimed
	EventVoteDelegated
	EventRewardDeposited
	EventTransfer
	EventApproval
	EventControllerChanged
)

var eventTypeNames = map[EventType]string{
	EventStakeDelegationCreated: "StakeDelegationCreated",
	EventDelegateChanged:        "DelegateChanged",
	EventStaked:                 "Staked",
	EventUnstaked:               "Unstaked",
	EventRewardClaimed:          "RewardClaimed",
	EventVoteDelegated:          "VoteDelegated",
	EventRewardDeposited:        "RewardDeposited",
	EventTransfer:               "Transfer",
	EventApproval:               "Approval",
	EventControllerChanged:      "ControllerChanged",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// ParseEventType accepts the event name.
func ParseEventType(s string) (EventType, error) {
	for t, name := range eventTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown event type %q", s)
}

// Event is an entry of the append-only audit log.
type Event struct {
	Index       uint64
	BlockHeight uint64
	Type        EventType
	Data        []byte // RLP encoded payload
}

type StakeDelegationCreatedData struct {
	Creator common.Address `json:"creator"`
	Proxy   common.Address `json:"proxy"`
	Handle  uint64         `json:"handle"`
}

type DelegateChangedData struct {
	Delegator    common.Address `json:"delegator"`
	OldDelegatee common.Address `json:"old_delegatee"`
	NewDelegatee common.Address `json:"new_delegatee"`
	Category     Category       `json:"category"`
}

// StakeData is the payload of Staked, Unstaked and RewardClaimed events.
type StakeData struct {
	Proxy     common.Address `json:"proxy"`
	Depositor common.Address `json:"depositor"`
	Amount    *big.Int       `json:"amount"`
}

type VoteDelegatedData struct {
	Proxy  common.Address `json:"proxy"`
	Axis   VoteAxis       `json:"axis"`
	Value  *big.Int       `json:"value"`
	Weight *big.Int       `json:"weight"`
}

type RewardDepositedData struct {
	Proxy  common.Address `json:"proxy"`
	Source common.Address `json:"source"`
	Amount *big.Int       `json:"amount"`
}

type TransferData struct {
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Amount *big.Int       `json:"amount"`
}

type ApprovalData struct {
	Owner   common.Address `json:"owner"`
	Spender common.Address `json:"spender"`
	Amount  *big.Int       `json:"amount"`
}

type ControllerChangedData struct {
	Proxy         common.Address `json:"proxy"`
	OldController common.Address `json:"old_controller"`
	NewController common.Address `json:"new_controller"`
}

// NewEvent encodes payload into an event. Index and height are assigned
// when the event is appended to the log.
func NewEvent(eventType EventType, payload interface{}) *Event {
	data, err := rlp.EncodeToBytes(payload)
	if err != nil {
		panic(fmt.Sprintf("Failed to encode %v event payload: %v", eventType, err))
	}
	return &Event{Type: eventType, Data: data}
}

// Decode returns the typed payload of the event.
func (e *Event) Decode() (interface{}, error) {
	var payload interface{}
	switch e.Type {
	case EventStakeDelegationCreated:
		payload = &StakeDelegationCreatedData{}
	case EventDelegateChanged:
		payload = &DelegateChangedData{}
	case EventStaked, EventUnstaked, EventRewardClaimed:
		payload = &StakeData{}
	case EventVoteDelegated:
		payload = &VoteDelegatedData{}
	case EventRewardDeposited:
		payload = &RewardDepositedData{}
	case EventTransfer:
		payload = &TransferData{}
	case EventApproval:
		payload = &ApprovalData{}
	case EventControllerChanged:
		payload = &ControllerChangedData{}
	default:
		return nil, errors.Errorf("unknown event type %d", uint8(e.Type))
	}
	if err := rlp.DecodeBytes(e.Data, payload); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %v event", e.Type)
	}
	return payload, nil
}

func (e *Event) String() string {
	return fmt.Sprintf("Event{#%v %v at %v}", e.Index, e.Type, e.BlockHeight)
}

type eventJSON struct {
	Index       common.JSONUint64 `json:"index"`
	BlockHeight common.JSONUint64 `json:"block_height"`
	Type        string            `json:"type"`
	Data        interface{}       `json:"data"`
}

// MarshalJSON renders the decoded payload. Amounts are plain JSON numbers
// since encoding/json writes big.Int without quoting.
func (e *Event) MarshalJSON() ([]byte, error) {
	payload, err := e.Decode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(eventJSON{
		Index:       common.JSONUint64(e.Index),
		BlockHeight: common.JSONUint64(e.BlockHeight),
		Type:        e.Type.String(),
		Data:        payload,
	})
}
