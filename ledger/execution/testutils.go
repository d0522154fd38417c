package execution

import (
	"math/big"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common/result"
	st "github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/state"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

// --------------- Test Utilities --------------- //

type execTest struct {
	chainID  string
	state    *st.LedgerState
	executor *Executor

	accounts []common.Address
}

func newExecTest(numAccounts int, balance *big.Int) *execTest {
	et := &execTest{chainID: "test_chain_id"}
	et.state = st.NewLedgerState(et.chainID, backend.NewMemDatabase())
	et.executor = NewExecutor(et.state, DefaultParams())

	genesis := &types.Genesis{ChainID: et.chainID}
	for i := 0; i < numAccounts; i++ {
		addr := common.BytesToAddress([]byte{0xac, byte(i + 1)})
		et.accounts = append(et.accounts, addr)
		genesis.Allocations = append(genesis.Allocations, types.Allocation{Address: addr, Amount: balance})
	}
	if err := st.NewTokenLedger(et.state.Delivered()).InitGenesis(genesis); err != nil {
		panic(err)
	}
	if err := et.state.Commit(); err != nil {
		panic(err)
	}
	return et
}

func (et *execTest) view() *st.StoreView {
	return et.state.Delivered()
}

func (et *execTest) exec(tx types.Tx) result.Result {
	return et.executor.ExecuteTx(tx)
}

func (et *execTest) balance(addr common.Address) *big.Int {
	return st.NewTokenLedger(et.view()).BalanceOf(addr)
}

func (et *execTest) power(addr common.Address) *big.Int {
	return st.NewVotingPowerLedger(et.view()).CurrentPower(addr, types.CategoryStake)
}

func (et *execTest) proxy(addr common.Address) *types.Proxy {
	proxy, ok := st.NewProxyRegistry(et.view()).ByAddress(addr)
	if !ok {
		return nil
	}
	return proxy
}

func (et *execTest) share(proxy, depositor common.Address) *types.PoolShare {
	return st.NewProxyPool(et.view()).GetShare(proxy, depositor)
}

func (et *execTest) createProxy(creator common.Address) common.Address {
	res := et.exec(&types.CreateProxyTx{Source: creator})
	if res.IsError() {
		panic(res.String())
	}
	return res.Info["proxy"].(common.Address)
}

func (et *execTest) stake(proxy, depositor common.Address, amount *big.Int) result.Result {
	if res := et.exec(&types.ApproveTx{Owner: depositor, Spender: proxy, Amount: amount}); res.IsError() {
		return res
	}
	return et.exec(&types.DelegateStakingTx{Proxy: proxy, Source: depositor, Amount: amount})
}
