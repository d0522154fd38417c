package integration

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/node"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/rpc"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

const testChainID = "integration_chain"

// Account returns a deterministic test address.
func Account(i byte) common.Address {
	return common.BytesToAddress([]byte{0x1e, 0x57, i})
}

// testNode is a running node with its JSON-RPC client.
type testNode struct {
	*node.Node
	client rpc.Client
	t      *testing.T
}

// startTestNode boots an in-memory node where accounts 1..numAccounts hold
// balance tokens each, with transaction submission enabled.
func startTestNode(t *testing.T, numAccounts int, balance int64) *testNode {
	viper.Set(common.CfgRPCEnabled, true)
	viper.Set(common.CfgRPCTxEnabled, true)
	viper.Set(common.CfgRPCAddress, "127.0.0.1")
	viper.Set(common.CfgRPCPort, "0")

	genesis := &types.Genesis{ChainID: testChainID}
	for i := 1; i <= numAccounts; i++ {
		genesis.Allocations = append(genesis.Allocations, types.Allocation{
			Address: Account(byte(i)),
			Amount:  types.Tokens(balance),
		})
	}

	n, err := node.NewNode(&node.Params{
		ChainID: testChainID,
		DB:      backend.NewMemDatabase(),
		Genesis: genesis,
	})
	require.Nil(t, err)
	require.Nil(t, n.Start(context.Background()))
	t.Cleanup(func() {
		n.Stop()
		n.Wait()
	})

	client, err := rpc.NewClient("http://" + n.RPC.Addr().String() + "/rpc")
	require.Nil(t, err)
	return &testNode{Node: n, client: client, t: t}
}

// broadcast submits tx over JSON-RPC and fails the test on rejection.
func (tn *testNode) broadcast(tx types.Tx) map[string]interface{} {
	raw, err := types.TxToBytes(tx)
	require.Nil(tn.t, err)
	var res struct {
		Info map[string]interface{} `json:"info"`
	}
	require.Nil(tn.t, tn.client.Call("sd.BroadcastTx", &rpc.BroadcastTxArgs{TxBytes: hex.EncodeToString(raw)}, &res), "tx %v", tx)
	return res.Info
}

// broadcastErr submits tx and returns the rejection, if any.
func (tn *testNode) broadcastErr(tx types.Tx) error {
	raw, err := types.TxToBytes(tx)
	require.Nil(tn.t, err)
	var res rpc.BroadcastTxResult
	return tn.client.Call("sd.BroadcastTx", &rpc.BroadcastTxArgs{TxBytes: hex.EncodeToString(raw)}, &res)
}

// commit closes the current block.
func (tn *testNode) commit() uint64 {
	require.Nil(tn.t, tn.Ledger.Commit())
	return tn.Ledger.Height()
}
