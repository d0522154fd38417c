package kvstore

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

type ledgerMeta struct {
	ChainID string
	Height  uint64
	Supply  *big.Int
	Creator common.Address
}

func TestKVStorePutGetDelete(t *testing.T) {
	assert := assert.New(t)

	db := backend.NewMemDatabase()
	kv := NewKVStore(db)

	key := common.Bytes("meta")
	meta := ledgerMeta{
		ChainID: "testchain",
		Height:  17,
		Supply:  big.NewInt(1500000000),
		Creator: common.HexToAddress("0x00000000000000000000000000000000000000a1"),
	}
	assert.Nil(kv.Put(key, meta))

	var decoded ledgerMeta
	assert.Nil(kv.Get(key, &decoded))
	assert.Equal(meta.ChainID, decoded.ChainID)
	assert.Equal(meta.Height, decoded.Height)
	assert.Equal(0, meta.Supply.Cmp(decoded.Supply))
	assert.Equal(meta.Creator, decoded.Creator)

	assert.Nil(kv.Delete(key))
	err := kv.Get(key, &decoded)
	assert.Equal(store.ErrKeyNotFound, err)
}

func TestKVStorePrefixIsolation(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	db := backend.NewMemDatabase()
	plain := NewKVStore(db)
	nodeKV := NewPrefixedKVStore(db, common.Bytes("node/"))

	require.Nil(nodeKV.Put(common.Bytes("meta"), uint64(7)))

	has, err := nodeKV.Has(common.Bytes("meta"))
	require.Nil(err)
	assert.True(has)

	var height uint64
	assert.Equal(store.ErrKeyNotFound, plain.Get(common.Bytes("meta"), &height))
	require.Nil(plain.Get(common.Bytes("node/meta"), &height))
	assert.Equal(uint64(7), height)

	require.Nil(nodeKV.Delete(common.Bytes("meta")))
	has, err = nodeKV.Has(common.Bytes("meta"))
	require.Nil(err)
	assert.False(has)
}

func TestKVStoreDecodeError(t *testing.T) {
	assert := assert.New(t)

	db := backend.NewMemDatabase()
	kv := NewPrefixedKVStore(db, common.Bytes("x/"))
	assert.Nil(kv.Put(common.Bytes("name"), "not a number"))

	var height uint64
	err := kv.Get(common.Bytes("name"), &height)
	assert.NotNil(err)
	assert.NotEqual(store.ErrKeyNotFound, errors.Cause(err))
	assert.Contains(err.Error(), "failed to decode")
}
