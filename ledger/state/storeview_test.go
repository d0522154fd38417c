package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

func TestStoreViewBasics(t *testing.T) {
	assert := assert.New(t)

	initHeight := uint64(1)
	incrementedHeight := initHeight + 1
	db := backend.NewMemDatabase()
	sv1 := NewStoreView(initHeight, db)

	// Height tests
	assert.Equal(initHeight, sv1.Height())

	sv1.IncrementHeight()
	assert.Equal(incrementedHeight, sv1.Height())

	// Set/Get tests
	k1, v1 := common.Bytes("key1"), common.Bytes("value1")
	k2, v2 := common.Bytes("key2"), common.Bytes("value2")
	k3, v3 := common.Bytes("key3"), common.Bytes("value3")
	k4, v4 := common.Bytes("key4"), common.Bytes("value4")

	sv1.Set(k1, v1)
	sv1.Set(k2, v2)
	sv1.Set(k3, v3)

	assert.Equal(v1, sv1.Get(k1))
	assert.Equal(v2, sv1.Get(k2))
	assert.Equal(v3, sv1.Get(k3))

	// Save tests
	assert.Nil(sv1.Save())
	assert.Equal(0, sv1.Dirty())
	stored, err := db.Get(k1)
	assert.Nil(err)
	assert.Equal([]byte(v1), stored)

	// StoreView copy tests
	sv2 := sv1.Copy()
	assert.Equal(incrementedHeight, sv2.Height())
	assert.Equal(v1, sv2.Get(k1))
	assert.Equal(v2, sv2.Get(k2))
	assert.Equal(v3, sv2.Get(k3))

	sv2.Set(k4, v4)
	sv2.Delete(k1)
	assert.Equal(common.Bytes(nil), sv2.Get(k1))
	assert.Equal(v4, sv2.Get(k4))
	assert.Equal(common.Bytes(nil), sv1.Get(k4))
	assert.Equal(v1, sv1.Get(k1))

	// Merge tests
	sv1.Merge(sv2)
	assert.Equal(v4, sv1.Get(k4))
	assert.Equal(common.Bytes(nil), sv1.Get(k1))

	assert.Nil(sv1.Save())
	_, err = db.Get(k1)
	assert.NotNil(err)
}

func TestStoreViewDroppedCopy(t *testing.T) {
	assert := assert.New(t)

	db := backend.NewMemDatabase()
	sv := NewStoreView(0, db)
	sv.Set(common.Bytes("a"), common.Bytes("1"))

	scratch := sv.Copy()
	scratch.Set(common.Bytes("a"), common.Bytes("2"))
	scratch.Set(common.Bytes("b"), common.Bytes("3"))
	assert.Equal(common.Bytes("2"), scratch.Get(common.Bytes("a")))

	// never merged
	assert.Equal(common.Bytes("1"), sv.Get(common.Bytes("a")))
	assert.Equal(common.Bytes(nil), sv.Get(common.Bytes("b")))

	nested := scratch.Copy()
	assert.Equal(common.Bytes("3"), nested.Get(common.Bytes("b")))
	assert.NotNil(nested.Save())
	assert.Panics(func() { sv.Merge(nested) })
}
