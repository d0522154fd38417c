package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

// TxType is the leading byte of an encoded transaction.
type TxType uint8

const (
	TxSend TxType = iota + 1
	TxApprove
	TxCreateProxy
	TxDelegateStaking
	TxDelegateVote
	TxClaimReward
	TxUnstake
	TxSetController
	TxProxyDelegate
	TxDelegate
	TxUndelegate
	TxDepositReward
)

// Tx is a state transition. Source is the account the transition acts for.
type Tx interface {
	AssertIsTx()
	GetSource() common.Address
	String() string
}

//-----------------------------------------------------------------------------

// SendTx moves tokens between accounts.
type SendTx struct {
	From   common.Address
	To     common.Address
	Amount *big.Int
}

func (_ *SendTx) AssertIsTx() {}

func (tx *SendTx) GetSource() common.Address { return tx.From }

func (tx *SendTx) String() string {
	return fmt.Sprintf("SendTx{%v -> %v, %v}", tx.From, tx.To, tx.Amount)
}

//-----------------------------------------------------------------------------

// ApproveTx sets the allowance Spender may move out of Owner's balance.
type ApproveTx struct {
	Owner   common.Address
	Spender common.Address
	Amount  *big.Int
}

func (_ *ApproveTx) AssertIsTx() {}

func (tx *ApproveTx) GetSource() common.Address { return tx.Owner }

func (tx *ApproveTx) String() string {
	return fmt.Sprintf("ApproveTx{%v approves %v for %v}", tx.Owner, tx.Spender, tx.Amount)
}

//-----------------------------------------------------------------------------

// CreateProxyTx deploys a new delegation proxy owned by Source.
type CreateProxyTx struct {
	Source common.Address
}

func (_ *CreateProxyTx) AssertIsTx() {}

func (tx *CreateProxyTx) GetSource() common.Address { return tx.Source }

func (tx *CreateProxyTx) String() string {
	return fmt.Sprintf("CreateProxyTx{%v}", tx.Source)
}

//-----------------------------------------------------------------------------

// DelegateStakingTx stakes Amount tokens of Source into Proxy. Source must
// have approved the proxy for at least Amount.
type DelegateStakingTx struct {
	Proxy  common.Address
	Source common.Address
	Amount *big.Int
}

func (_ *DelegateStakingTx) AssertIsTx() {}

func (tx *DelegateStakingTx) GetSource() common.Address { return tx.Source }

func (tx *DelegateStakingTx) String() string {
	return fmt.Sprintf("DelegateStakingTx{%v stakes %v into %v}", tx.Source, tx.Amount, tx.Proxy)
}

//-----------------------------------------------------------------------------

// DelegateVoteTx submits the pool's vote on one governance axis.
type DelegateVoteTx struct {
	Proxy  common.Address
	Source common.Address
	Axis   VoteAxis
	Value  *big.Int
}

func (_ *DelegateVoteTx) AssertIsTx() {}

func (tx *DelegateVoteTx) GetSource() common.Address { return tx.Source }

func (tx *DelegateVoteTx) String() string {
	return fmt.Sprintf("DelegateVoteTx{%v votes %v=%v via %v}", tx.Source, tx.Axis, tx.Value, tx.Proxy)
}

//-----------------------------------------------------------------------------

// ClaimRewardTx pays out the pending reward of Source in Proxy.
type ClaimRewardTx struct {
	Proxy  common.Address
	Source common.Address
}

func (_ *ClaimRewardTx) AssertIsTx() {}

func (tx *ClaimRewardTx) GetSource() common.Address { return tx.Source }

func (tx *ClaimRewardTx) String() string {
	return fmt.Sprintf("ClaimRewardTx{%v from %v}", tx.Source, tx.Proxy)
}

//-----------------------------------------------------------------------------

// UnstakeTx settles pending rewards and withdraws Amount of principal.
type UnstakeTx struct {
	Proxy  common.Address
	Source common.Address
	Amount *big.Int
}

func (_ *UnstakeTx) AssertIsTx() {}

func (tx *UnstakeTx) GetSource() common.Address { return tx.Source }

func (tx *UnstakeTx) String() string {
	return fmt.Sprintf("UnstakeTx{%v withdraws %v from %v}", tx.Source, tx.Amount, tx.Proxy)
}

//-----------------------------------------------------------------------------

// SetControllerTx hands the vote authority of Proxy to Controller.
type SetControllerTx struct {
	Proxy      common.Address
	Source     common.Address
	Controller common.Address
}

func (_ *SetControllerTx) AssertIsTx() {}

func (tx *SetControllerTx) GetSource() common.Address { return tx.Source }

func (tx *SetControllerTx) String() string {
	return fmt.Sprintf("SetControllerTx{%v: %v -> %v}", tx.Proxy, tx.Source, tx.Controller)
}

//-----------------------------------------------------------------------------

// ProxyDelegateTx routes the pool's STAKE power to Delegatee.
type ProxyDelegateTx struct {
	Proxy     common.Address
	Source    common.Address
	Delegatee common.Address
}

func (_ *ProxyDelegateTx) AssertIsTx() {}

func (tx *ProxyDelegateTx) GetSource() common.Address { return tx.Source }

func (tx *ProxyDelegateTx) String() string {
	return fmt.Sprintf("ProxyDelegateTx{%v -> %v}", tx.Proxy, tx.Delegatee)
}

//-----------------------------------------------------------------------------

// DelegateTx escrows Amount tokens with the delegation manager and delegates
// the full direct balance of Source under Category to Delegatee.
type DelegateTx struct {
	Source    common.Address
	Delegatee common.Address
	Category  Category
	Amount    *big.Int
}

func (_ *DelegateTx) AssertIsTx() {}

func (tx *DelegateTx) GetSource() common.Address { return tx.Source }

func (tx *DelegateTx) String() string {
	return fmt.Sprintf("DelegateTx{%v -> %v, %v %v}", tx.Source, tx.Delegatee, tx.Amount, tx.Category)
}

//-----------------------------------------------------------------------------

// UndelegateTx releases Amount tokens from the delegation manager escrow.
type UndelegateTx struct {
	Source   common.Address
	Category Category
	Amount   *big.Int
}

func (_ *UndelegateTx) AssertIsTx() {}

func (tx *UndelegateTx) GetSource() common.Address { return tx.Source }

func (tx *UndelegateTx) String() string {
	return fmt.Sprintf("UndelegateTx{%v, %v %v}", tx.Source, tx.Amount, tx.Category)
}

//-----------------------------------------------------------------------------

// DepositRewardTx pays Amount reward tokens from Source into Proxy.
type DepositRewardTx struct {
	Source common.Address
	Proxy  common.Address
	Amount *big.Int
}

func (_ *DepositRewardTx) AssertIsTx() {}

func (tx *DepositRewardTx) GetSource() common.Address { return tx.Source }

func (tx *DepositRewardTx) String() string {
	return fmt.Sprintf("DepositRewardTx{%v -> %v, %v}", tx.Source, tx.Proxy, tx.Amount)
}

//-----------------------------------------------------------------------------

// TxTypeOf returns the type tag of tx.
func TxTypeOf(tx Tx) (TxType, error) {
	switch tx.(type) {
	case *SendTx:
		return TxSend, nil
	case *ApproveTx:
		return TxApprove, nil
	case *CreateProxyTx:
		return TxCreateProxy, nil
	case *DelegateStakingTx:
		return TxDelegateStaking, nil
	case *DelegateVoteTx:
		return TxDelegateVote, nil
	case *ClaimRewardTx:
		return TxClaimReward, nil
	case *UnstakeTx:
		return TxUnstake, nil
	case *SetControllerTx:
		return TxSetController, nil
	case *ProxyDelegateTx:
		return TxProxyDelegate, nil
	case *DelegateTx:
		return TxDelegate, nil
	case *UndelegateTx:
		return TxUndelegate, nil
	case *DepositRewardTx:
		return TxDepositReward, nil
	default:
		return 0, errors.Wrapf(ErrUnknownTx, "%T", tx)
	}
}

// TxToBytes encodes tx as its type byte followed by the RLP payload.
func TxToBytes(tx Tx) ([]byte, error) {
	txType, err := TxTypeOf(tx)
	if err != nil {
		return nil, err
	}
	payload, err := rlp.EncodeToBytes(tx)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(txType)}, payload...), nil
}

// TxFromBytes decodes a transaction encoded by TxToBytes.
func TxFromBytes(raw []byte) (Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(ErrUnknownTx, "empty tx bytes")
	}
	var tx Tx
	switch TxType(raw[0]) {
	case TxSend:
		tx = &SendTx{}
	case TxApprove:
		tx = &ApproveTx{}
	case TxCreateProxy:
		tx = &CreateProxyTx{}
	case TxDelegateStaking:
		tx = &DelegateStakingTx{}
	case TxDelegateVote:
		tx = &DelegateVoteTx{}
	case TxClaimReward:
		tx = &ClaimRewardTx{}
	case TxUnstake:
		tx = &UnstakeTx{}
	case TxSetController:
		tx = &SetControllerTx{}
	case TxProxyDelegate:
		tx = &ProxyDelegateTx{}
	case TxDelegate:
		tx = &DelegateTx{}
	case TxUndelegate:
		tx = &UndelegateTx{}
	case TxDepositReward:
		tx = &DepositRewardTx{}
	default:
		return nil, errors.Wrapf(ErrUnknownTx, "type %d", raw[0])
	}
	if err := rlp.DecodeBytes(raw[1:], tx); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %T", tx)
	}
	return tx, nil
}

// TxResult is the outcome of an executed transaction.
type TxResult struct {
	BlockHeight uint64                 `json:"block_height"`
	Events      []*Event               `json:"events"`
	Info        map[string]interface{} `json:"info,omitempty"`
}
