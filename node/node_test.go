package node

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/kvstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testGenesis(chainID string) *types.Genesis {
	return &types.Genesis{
		ChainID: chainID,
		Allocations: []types.Allocation{
			{Address: common.HexToAddress("0x1000000000000000000000000000000000000001"), Amount: types.Tokens(1000)},
		},
	}
}

func TestNodeLifecycle(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	viper.Set(common.CfgRPCEnabled, true)
	viper.Set(common.CfgRPCAddress, "127.0.0.1")
	viper.Set(common.CfgRPCPort, "0")
	defer viper.Set(common.CfgRPCEnabled, false)

	db := backend.NewMemDatabase()
	n, err := NewNode(&Params{
		ChainID:       "node_test",
		DB:            db,
		Genesis:       testGenesis("node_test"),
		BlockInterval: 10 * time.Millisecond,
	})
	require.Nil(err)
	require.NotNil(n.RPC)
	assert.Equal(types.Tokens(1000), n.Ledger.TotalSupply())
	assert.Equal(uint64(1), n.Ledger.Height())

	require.Nil(n.Start(context.Background()))
	assert.NotNil(n.RPC.Addr())
	assert.Eventually(func() bool {
		return n.Ledger.Height() >= 3
	}, 2*time.Second, 10*time.Millisecond)

	n.Stop()
	n.Wait()
	stoppedAt := n.Ledger.Height()

	// Reopening the same data keeps the state and refuses another chain.
	viper.Set(common.CfgRPCEnabled, false)
	reopened, err := NewNode(&Params{ChainID: "node_test", DB: db, Genesis: testGenesis("node_test")})
	require.Nil(err)
	assert.Equal(stoppedAt, reopened.Ledger.Height())
	assert.Equal(uint64(1), reopened.Meta().StartCount)
	assert.Equal(types.Tokens(1000), reopened.Ledger.TotalSupply())

	_, err = NewNode(&Params{ChainID: "other_chain", DB: db})
	assert.NotNil(err)
}

func TestNodeWithoutTicker(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	n, err := NewNode(&Params{ChainID: "node_test", DB: backend.NewMemDatabase()})
	require.Nil(err)
	assert.Nil(n.RPC)
	assert.Equal(0, n.Ledger.TotalSupply().Sign())

	require.Nil(n.Start(context.Background()))
	height := n.Ledger.Height()
	n.Stop()
	n.Wait()
	// Wait commits the pending state once
	assert.Equal(height+1, n.Ledger.Height())
}

func TestNodeMetaRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	db := backend.NewMemDatabase()
	kv := kvstore.NewPrefixedKVStore(db, nodeStorePrefix)

	meta, err := LoadNodeMeta(kv, "chain_a")
	require.Nil(err)
	assert.Equal("chain_a", meta.ChainID)
	assert.Equal(uint64(0), meta.StartCount)

	meta.StartCount = 3
	require.Nil(SaveNodeMeta(kv, meta))

	loaded, err := LoadNodeMeta(kv, "chain_a")
	require.Nil(err)
	assert.Equal(uint64(3), loaded.StartCount)

	_, err = LoadNodeMeta(kv, "chain_b")
	assert.NotNil(err)

	has, err := db.Has(common.Bytes("node/meta"))
	require.Nil(err)
	assert.True(has)
}
