package types

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

func TestTxBytes(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	proxy := common.HexToAddress("0x0000000000000000000000000000000000000077")
	txs := []Tx{
		&SendTx{From: alice, To: bob, Amount: Tokens(1)},
		&ApproveTx{Owner: alice, Spender: proxy, Amount: Tokens(2)},
		&CreateProxyTx{Source: alice},
		&DelegateStakingTx{Proxy: proxy, Source: bob, Amount: Tokens(3)},
		&DelegateVoteTx{Proxy: proxy, Source: alice, Axis: AxisDecayPeriod, Value: big.NewInt(120)},
		&ClaimRewardTx{Proxy: proxy, Source: bob},
		&UnstakeTx{Proxy: proxy, Source: bob, Amount: Tokens(1)},
		&SetControllerTx{Proxy: proxy, Source: alice, Controller: bob},
		&ProxyDelegateTx{Proxy: proxy, Source: alice, Delegatee: bob},
		&DelegateTx{Source: alice, Delegatee: bob, Category: CategoryGovernance, Amount: Tokens(4)},
		&UndelegateTx{Source: alice, Category: CategoryGovernance, Amount: Tokens(4)},
		&DepositRewardTx{Source: alice, Proxy: proxy, Amount: Tokens(5)},
	}
	for _, tx := range txs {
		raw, err := TxToBytes(tx)
		require.Nil(err)
		decoded, err := TxFromBytes(raw)
		require.Nil(err)
		assert.Equal(tx, decoded)
		assert.Equal(tx.GetSource(), decoded.GetSource())
	}
}

func TestTxFromBytesUnknown(t *testing.T) {
	assert := assert.New(t)

	_, err := TxFromBytes(nil)
	assert.True(errors.Is(err, ErrUnknownTx))
	_, err = TxFromBytes([]byte{0xff, 0xc0})
	assert.True(errors.Is(err, ErrUnknownTx))
}
