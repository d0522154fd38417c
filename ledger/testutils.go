package ledger

import (
	"math/big"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

// --------------- Test Utilities --------------- //

// TestAccount returns a deterministic account address for tests.
func TestAccount(i int) common.Address {
	return common.BytesToAddress([]byte{0xac, 0xc0, byte(i)})
}

// NewTestLedger creates an in-memory ledger where TestAccount(1..numAccounts)
// hold balance each and TestAccount(0) holds the rest of supply. The
// genesis is committed, so the ledger starts at height 1.
func NewTestLedger(params Params, numAccounts int, balance, supply *big.Int) *Ledger {
	chainID := "test_chain_id"
	ledger := NewLedger(chainID, backend.NewMemDatabase(), params)

	genesis := &types.Genesis{ChainID: chainID}
	rest := new(big.Int).Set(supply)
	for i := 1; i <= numAccounts; i++ {
		genesis.Allocations = append(genesis.Allocations, types.Allocation{Address: TestAccount(i), Amount: new(big.Int).Set(balance)})
		rest.Sub(rest, balance)
	}
	if rest.Sign() > 0 {
		genesis.Allocations = append(genesis.Allocations, types.Allocation{Address: TestAccount(0), Amount: rest})
	}
	if err := ledger.InitGenesis(genesis); err != nil {
		panic(err)
	}
	if err := ledger.Commit(); err != nil {
		panic(err)
	}
	return ledger
}

// MustExecute executes tx and panics if it fails.
func (ledger *Ledger) MustExecute(tx types.Tx) *types.TxResult {
	res, err := ledger.ExecuteTx(tx)
	if err != nil {
		panic(err)
	}
	return res
}
