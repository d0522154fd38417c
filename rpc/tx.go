package rpc

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// ------------------------------- BroadcastTx -----------------------------------

type BroadcastTxArgs struct {
	TxBytes string `json:"tx_bytes"` // hex of types.TxToBytes
}

type BroadcastTxResult struct {
	BlockHeight common.JSONUint64      `json:"block_height"`
	Events      []*types.Event         `json:"events"`
	Info        map[string]interface{} `json:"info,omitempty"`
}

// BroadcastTx executes an encoded transaction at the current height.
// Transactions are not signed, so the endpoint stays disabled unless the
// operator turns on rpc.txEnabled.
func (t *StakeDelegationRPCService) BroadcastTx(args *BroadcastTxArgs, result *BroadcastTxResult) (err error) {
	if !t.txEnabled {
		return errors.New("Transaction submission is disabled on this node")
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(args.TxBytes, "0x"))
	if err != nil {
		return errors.Wrap(err, "TxBytes is not valid hex")
	}

	txResult, err := t.ledger.ExecuteRawTx(raw)
	if err != nil {
		logger.Debugf("Rejected tx: %v", err)
		return rpcError(err)
	}
	result.BlockHeight = common.JSONUint64(txResult.BlockHeight)
	result.Events = txResult.Events
	result.Info = txResult.Info
	return nil
}
