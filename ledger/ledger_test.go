package ledger

import (
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/event"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

func percent(n int64) *big.Int {
	return new(big.Int).Div(types.Tokens(n), big.NewInt(100))
}

func stake(t *testing.T, ledger *Ledger, proxy, depositor common.Address, amount *big.Int) {
	_, err := ledger.ExecuteTx(&types.ApproveTx{Owner: depositor, Spender: proxy, Amount: amount})
	require.Nil(t, err)
	_, err = ledger.ExecuteTx(&types.DelegateStakingTx{Proxy: proxy, Source: depositor, Amount: amount})
	require.Nil(t, err)
}

func TestLedgerScenario(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	supply := types.Tokens(1500000000)
	ledger := NewTestLedger(DefaultParams(), 3, types.Tokens(1000), supply)
	deployer, user1, user2, user3 := TestAccount(0), TestAccount(1), TestAccount(2), TestAccount(3)

	assert.Equal(supply, ledger.TotalSupply())
	for _, u := range []common.Address{user1, user2, user3} {
		assert.Equal(types.Tokens(1000), ledger.TokenBalance(u))
	}

	// User1 deploys a proxy
	res, err := ledger.ExecuteTx(&types.CreateProxyTx{Source: user1})
	require.Nil(err)
	proxyAddr := res.Info["proxy"].(common.Address)
	require.Equal(1, len(res.Events))
	assert.Equal(types.EventStakeDelegationCreated, res.Events[0].Type)
	data, err := res.Events[0].Decode()
	require.Nil(err)
	assert.Equal(proxyAddr, data.(*types.StakeDelegationCreatedData).Proxy)
	assert.Equal(user1, data.(*types.StakeDelegationCreatedData).Creator)

	proxies := ledger.GetProxyByCreator(user1)
	require.Equal(1, len(proxies))
	assert.Equal(proxyAddr, proxies[0].Address)

	// User2 and user3 stake through the proxy in different blocks
	stake(t, ledger, proxyAddr, user2, types.Tokens(500))
	firstBlock := ledger.Height()
	require.Nil(ledger.Commit())

	stake(t, ledger, proxyAddr, user3, types.Tokens(500))
	secondBlock := ledger.Height()
	require.Nil(ledger.Commit())

	power, err := ledger.GetPowerAtBlock(user2, firstBlock, types.CategoryStake)
	require.Nil(err)
	assert.Equal(0, power.Sign())
	power, err = ledger.GetPowerAtBlock(proxyAddr, firstBlock, types.CategoryStake)
	require.Nil(err)
	assert.Equal(types.Tokens(500), power)
	power, err = ledger.GetPowerAtBlock(proxyAddr, secondBlock, types.CategoryStake)
	require.Nil(err)
	assert.Equal(types.Tokens(1000), power)
	power, err = ledger.GetPowerAtBlock(proxyAddr, firstBlock-1, types.CategoryStake)
	require.Nil(err)
	assert.Equal(0, power.Sign())

	_, err = ledger.GetPowerAtBlock(proxyAddr, ledger.Height()+1, types.CategoryStake)
	assert.True(errors.Is(err, types.ErrFutureBlock))

	// User1 stakes as well and votes as the controller
	stake(t, ledger, proxyAddr, user1, types.Tokens(500))
	current, err := ledger.CurrentPower(proxyAddr, types.CategoryStake)
	require.Nil(err)
	assert.Equal(types.Tokens(1500), current)

	_, err = ledger.ExecuteTx(&types.DelegateVoteTx{Proxy: proxyAddr, Source: user1, Axis: types.AxisDecayPeriod, Value: big.NewInt(30)})
	assert.True(errors.Is(err, types.ErrOutOfRange))
	_, err = ledger.ExecuteTx(&types.DelegateVoteTx{Proxy: proxyAddr, Source: user1, Axis: types.AxisDecayPeriod, Value: big.NewInt(120)})
	assert.Nil(err)
	_, err = ledger.ExecuteTx(&types.DelegateVoteTx{Proxy: proxyAddr, Source: user1, Axis: types.AxisReferralShare, Value: percent(12)})
	assert.True(errors.Is(err, types.ErrOutOfRange))
	_, err = ledger.ExecuteTx(&types.DelegateVoteTx{Proxy: proxyAddr, Source: user1, Axis: types.AxisReferralShare, Value: percent(8)})
	assert.Nil(err)
	_, err = ledger.ExecuteTx(&types.DelegateVoteTx{Proxy: proxyAddr, Source: user2, Axis: types.AxisFee, Value: big.NewInt(0)})
	assert.True(errors.Is(err, types.ErrUnauthorized))

	vote, ok := ledger.GetVote(proxyAddr, types.AxisDecayPeriod)
	require.True(ok)
	assert.Equal(big.NewInt(120), vote.Value)
	assert.Equal(types.Tokens(1500), vote.Weight)
	outcome, ok := ledger.GovernanceResult(types.AxisReferralShare)
	require.True(ok)
	assert.Equal(percent(8), outcome)
	_, ok = ledger.GovernanceResult(types.AxisFee)
	assert.False(ok)

	// Rewards are shared pro rata, claiming twice pays once
	_, err = ledger.ExecuteTx(&types.DepositRewardTx{Source: deployer, Proxy: proxyAddr, Amount: types.Tokens(150)})
	require.Nil(err)
	pending, err := ledger.PendingReward(proxyAddr, user2)
	require.Nil(err)
	assert.Equal(types.Tokens(50), pending)

	res, err = ledger.ExecuteTx(&types.ClaimRewardTx{Proxy: proxyAddr, Source: user1})
	require.Nil(err)
	assert.Equal(types.Tokens(50), res.Info["reward"])
	res, err = ledger.ExecuteTx(&types.ClaimRewardTx{Proxy: proxyAddr, Source: user1})
	require.Nil(err)
	assert.Equal(0, res.Info["reward"].(*big.Int).Sign())

	// User1 leaves the pool
	_, err = ledger.ExecuteTx(&types.UnstakeTx{Proxy: proxyAddr, Source: user1, Amount: types.Tokens(501)})
	assert.True(errors.Is(err, types.ErrInsufficientPrincipal))
	_, err = ledger.ExecuteTx(&types.UnstakeTx{Proxy: proxyAddr, Source: user1, Amount: types.Tokens(500)})
	require.Nil(err)
	require.Nil(ledger.Commit())

	assert.Equal(types.Tokens(1050), ledger.TokenBalance(user1))
	assert.Equal(types.Tokens(500), ledger.TokenBalance(user2))
	assert.Equal(types.Tokens(500), ledger.TokenBalance(user3))

	proxy, err := ledger.GetProxy(proxyAddr)
	require.Nil(err)
	assert.Equal(types.Tokens(1000), proxy.TotalPrincipal)
	current, err = ledger.CurrentPower(proxyAddr, types.CategoryStake)
	require.Nil(err)
	assert.Equal(proxy.TotalPrincipal, current)
	share, err := ledger.GetPoolShare(proxyAddr, user1)
	require.Nil(err)
	assert.False(share.IsActive())
	assert.Equal(supply, ledger.TotalSupply())

	// The audit log holds every successful transaction's events in order
	events := ledger.Events(0, ledger.EventCount())
	require.True(len(events) > 0)
	for i, e := range events {
		assert.Equal(uint64(i), e.Index)
	}
	assert.Equal(types.EventStakeDelegationCreated, events[0].Type)
}

func TestLedgerScenarioSameBlock(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ledger := NewTestLedger(DefaultParams(), 3, types.Tokens(1000), types.Tokens(1500000000))
	user1, user2, user3 := TestAccount(1), TestAccount(2), TestAccount(3)
	proxyAddr := ledger.MustExecute(&types.CreateProxyTx{Source: user1}).Info["proxy"].(common.Address)
	require.Nil(ledger.Commit())

	// Both delegations land in one block and coalesce into one checkpoint
	stake(t, ledger, proxyAddr, user2, types.Tokens(500))
	stake(t, ledger, proxyAddr, user3, types.Tokens(500))
	block := ledger.Height()
	require.Nil(ledger.Commit())

	power, err := ledger.GetPowerAtBlock(user2, block, types.CategoryStake)
	require.Nil(err)
	assert.Equal(0, power.Sign())
	power, err = ledger.GetPowerAtBlock(proxyAddr, block, types.CategoryStake)
	require.Nil(err)
	assert.Equal(types.Tokens(1000), power)
	assert.Equal(1, ledger.Checkpoints(proxyAddr, types.CategoryStake).Len())

	// User1 claims then unstakes 500
	stake(t, ledger, proxyAddr, user1, types.Tokens(500))
	require.Nil(ledger.Commit())
	ledger.MustExecute(&types.ClaimRewardTx{Proxy: proxyAddr, Source: user1})
	ledger.MustExecute(&types.UnstakeTx{Proxy: proxyAddr, Source: user1, Amount: types.Tokens(500)})
	require.Nil(ledger.Commit())

	assert.Equal(types.Tokens(1000), ledger.TokenBalance(user1))
	assert.Equal(types.Tokens(500), ledger.TokenBalance(user2))
	assert.Equal(types.Tokens(500), ledger.TokenBalance(user3))
	current, err := ledger.CurrentPower(proxyAddr, types.CategoryStake)
	require.Nil(err)
	assert.Equal(types.Tokens(1000), current)
}

func TestLedgerDelegationManagerIntoProxy(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ledger := NewTestLedger(DefaultParams(), 3, types.Tokens(1000), types.Tokens(1500000000))
	user1, user2, user3 := TestAccount(1), TestAccount(2), TestAccount(3)
	proxyAddr := ledger.MustExecute(&types.CreateProxyTx{Source: user1}).Info["proxy"].(common.Address)
	require.Nil(ledger.Commit())

	for _, u := range []common.Address{user2, user3} {
		ledger.MustExecute(&types.ApproveTx{Owner: u, Spender: types.DelegationManagerAddress, Amount: types.Tokens(500)})
		ledger.MustExecute(&types.DelegateTx{Source: u, Delegatee: proxyAddr, Category: types.CategoryStake, Amount: types.Tokens(500)})
	}
	block := ledger.Height()
	require.Nil(ledger.Commit())

	power, err := ledger.GetPowerAtBlock(user2, block, types.CategoryStake)
	require.Nil(err)
	assert.Equal(0, power.Sign())
	power, err = ledger.GetPowerAtBlock(proxyAddr, block, types.CategoryStake)
	require.Nil(err)
	assert.Equal(types.Tokens(1000), power)
	assert.Equal(proxyAddr, ledger.Delegatee(user2, types.CategoryStake))
	assert.Equal(types.Tokens(500), ledger.TokenBalance(user2))
	assert.Equal(types.Tokens(500), ledger.TokenBalance(user3))

	// Pooled principal and inbound delegations add up on the proxy
	stake(t, ledger, proxyAddr, user1, types.Tokens(500))
	current, err := ledger.CurrentPower(proxyAddr, types.CategoryStake)
	require.Nil(err)
	assert.Equal(types.Tokens(1500), current)
	ledger.MustExecute(&types.ClaimRewardTx{Proxy: proxyAddr, Source: user1})
	ledger.MustExecute(&types.UnstakeTx{Proxy: proxyAddr, Source: user1, Amount: types.Tokens(500)})
	require.Nil(ledger.Commit())

	current, err = ledger.CurrentPower(proxyAddr, types.CategoryStake)
	require.Nil(err)
	assert.Equal(types.Tokens(1000), current)
	assert.Equal(types.Tokens(1000), ledger.TokenBalance(user1))
	assert.Equal(types.Tokens(500), ledger.TokenBalance(user2))
	assert.Equal(types.Tokens(500), ledger.TokenBalance(user3))
}

func TestLedgerClock(t *testing.T) {
	assert := assert.New(t)

	ledger := NewTestLedger(DefaultParams(), 1, types.Tokens(10), types.Tokens(10))
	assert.Equal(uint64(1), ledger.Height())

	assert.Nil(ledger.AdvanceTo(5))
	assert.Equal(uint64(5), ledger.Height())
	assert.Nil(ledger.AdvanceTo(5))
	err := ledger.AdvanceTo(4)
	assert.True(errors.Is(err, types.ErrNonMonotonicBlock))
	assert.Nil(ledger.Commit())
	assert.Equal(uint64(6), ledger.Height())
}

func TestLedgerRestart(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	db := backend.NewMemDatabase()
	ledger := NewLedger("restart_chain", db, DefaultParams())
	user := TestAccount(1)
	require.Nil(ledger.InitGenesis(&types.Genesis{
		ChainID:     "restart_chain",
		Allocations: []types.Allocation{{Address: user, Amount: types.Tokens(100)}},
	}))
	require.Nil(ledger.Commit())
	res, err := ledger.ExecuteTx(&types.CreateProxyTx{Source: user})
	require.Nil(err)
	proxyAddr := res.Info["proxy"].(common.Address)
	stake(t, ledger, proxyAddr, user, types.Tokens(40))
	require.Nil(ledger.Commit())

	// Uncommitted changes are lost
	_, err = ledger.ExecuteTx(&types.SendTx{From: user, To: TestAccount(2), Amount: types.Tokens(1)})
	require.Nil(err)

	restarted := NewLedger("restart_chain", db, DefaultParams())
	assert.Equal(uint64(2), restarted.Height())
	assert.Equal(types.Tokens(60), restarted.TokenBalance(user))
	proxy, err := restarted.GetProxy(proxyAddr)
	require.Nil(err)
	assert.Equal(types.Tokens(40), proxy.TotalPrincipal)
	power, err := restarted.GetPowerAtBlock(proxyAddr, 1, types.CategoryStake)
	require.Nil(err)
	assert.Equal(types.Tokens(40), power)

	err = restarted.InitGenesis(&types.Genesis{ChainID: "restart_chain"})
	assert.True(errors.Is(err, types.ErrAlreadyExists))
}

func TestLedgerFailedTxIsInvisible(t *testing.T) {
	assert := assert.New(t)

	ledger := NewTestLedger(DefaultParams(), 2, types.Tokens(10), types.Tokens(20))
	before := ledger.EventCount()

	_, err := ledger.ExecuteTx(&types.SendTx{From: TestAccount(1), To: TestAccount(2), Amount: types.Tokens(11)})
	assert.True(errors.Is(err, types.ErrInsufficientBalance))
	_, err = ledger.ExecuteTx(&types.ClaimRewardTx{Proxy: TestAccount(9), Source: TestAccount(1)})
	assert.True(errors.Is(err, types.ErrProxyNotFound))

	assert.Equal(before, ledger.EventCount())
	assert.Equal(types.Tokens(10), ledger.TokenBalance(TestAccount(1)))

	_, err = ledger.ExecuteRawTx([]byte{0xff})
	assert.True(errors.Is(err, types.ErrUnknownTx))
}

func TestLedgerPublishesEvents(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bus := event.NewEventBus(nil)
	defer bus.Stop()

	params := DefaultParams()
	params.EventBus = bus
	ledger := NewTestLedger(params, 2, types.Tokens(10), types.Tokens(20))

	_, ch := bus.Subscribe(types.EventTransfer)
	var mu sync.Mutex
	seen := []types.EventType{}
	bus.SubscribeFunc(event.AllEvents, func(e *types.Event) {
		mu.Lock()
		seen = append(seen, e.Type)
		mu.Unlock()
	})

	_, err := ledger.ExecuteTx(&types.SendTx{From: TestAccount(1), To: TestAccount(2), Amount: types.Tokens(3)})
	require.Nil(err)
	_, err = ledger.ExecuteTx(&types.SendTx{From: TestAccount(1), To: TestAccount(2), Amount: types.Tokens(30)})
	require.NotNil(err)

	select {
	case e := <-ch:
		data, err := e.Decode()
		require.Nil(err)
		assert.Equal(types.Tokens(3), data.(*types.TransferData).Amount)
	case <-time.After(time.Second):
		t.Fatal("transfer event not published")
	}
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %v", e)
	default:
	}

	assert.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestLedgerHistoryCacheAndMetrics(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	reg := prometheus.NewRegistry()
	params := DefaultParams()
	params.Registerer = reg
	ledger := NewTestLedger(params, 1, types.Tokens(10), types.Tokens(10))
	user := TestAccount(1)

	res, err := ledger.ExecuteTx(&types.CreateProxyTx{Source: user})
	require.Nil(err)
	proxyAddr := res.Info["proxy"].(common.Address)
	stake(t, ledger, proxyAddr, user, types.Tokens(4))
	stakedAt := ledger.Height()
	require.Nil(ledger.Commit())

	for i := 0; i < 3; i++ {
		power, err := ledger.GetPowerAtBlock(proxyAddr, stakedAt, types.CategoryStake)
		require.Nil(err)
		assert.Equal(types.Tokens(4), power)
		// callers may scribble on the result
		power.SetInt64(0)
	}
	assert.Equal(float64(1), testutil.ToFloat64(ledger.metrics.cacheMisses))
	assert.Equal(float64(2), testutil.ToFloat64(ledger.metrics.cacheHits))

	// queries at the current height bypass the cache
	_, err = ledger.GetPowerAtBlock(proxyAddr, ledger.Height(), types.CategoryStake)
	require.Nil(err)
	assert.Equal(float64(1), testutil.ToFloat64(ledger.metrics.cacheMisses))

	assert.Equal(float64(ledger.Height()), testutil.ToFloat64(ledger.metrics.height))
	assert.Equal(float64(1), testutil.ToFloat64(ledger.metrics.txs.WithLabelValues("DelegateStakingTx", "ok")))

	_, err = ledger.GetPowerAtBlock(proxyAddr, 1, types.Category(9))
	assert.True(errors.Is(err, types.ErrInvalidCategory))
}

func TestLedgerPublishesInLogOrder(t *testing.T) {
	assert := assert.New(t)

	bus := event.NewEventBus(nil)
	defer bus.Stop()

	params := DefaultParams()
	params.EventBus = bus
	numSenders := 8
	ledger := NewTestLedger(params, numSenders, types.Tokens(10), types.Tokens(100))
	_, ch := bus.Subscribe(types.EventTransfer)

	var wg sync.WaitGroup
	for i := 1; i <= numSenders; i++ {
		wg.Add(1)
		go func(from common.Address) {
			defer wg.Done()
			for j := 0; j < 4; j++ {
				_, err := ledger.ExecuteTx(&types.SendTx{From: from, To: TestAccount(0), Amount: types.Tokens(1)})
				assert.Nil(err)
			}
		}(TestAccount(i))
	}
	wg.Wait()

	total := numSenders * 4
	assert.Equal(uint64(total), ledger.EventCount())
	var last *types.Event
	for i := 0; i < total; i++ {
		select {
		case e := <-ch:
			if last != nil {
				assert.True(e.Index > last.Index, "event %v published after %v", e.Index, last.Index)
			}
			last = e
		case <-time.After(time.Second):
			t.Fatalf("only %v of %v events published", i, total)
		}
	}
}
