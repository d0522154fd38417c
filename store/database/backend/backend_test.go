package backend

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database"
)

var testValues = []string{"a", "1251", "\x00123\x00"}

func newTestLDB(t *testing.T) *LDBDatabase {
	db, err := NewLDBDatabase(t.TempDir(), 0, 0)
	require.Nil(t, err)
	t.Cleanup(db.Close)
	return db
}

func newTestBadgerDB(t *testing.T) *BadgerDatabase {
	db, err := NewBadgerDatabase("")
	require.Nil(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestLDB_PutGet(t *testing.T) {
	testPutGet(newTestLDB(t), t)
}

func TestMemoryDB_PutGet(t *testing.T) {
	testPutGet(NewMemDatabase(), t)
}

func TestBadgerDB_PutGet(t *testing.T) {
	testPutGet(newTestBadgerDB(t), t)
}

func TestLDB_Batch(t *testing.T) {
	testBatch(newTestLDB(t), t)
}

func TestMemoryDB_Batch(t *testing.T) {
	testBatch(NewMemDatabase(), t)
}

func TestBadgerDB_Batch(t *testing.T) {
	testBatch(newTestBadgerDB(t), t)
}

func TestOpenBackend(t *testing.T) {
	assert := assert.New(t)

	db, err := Open(BackendMemory, "", 0)
	assert.Nil(err)
	assert.IsType(&MemDatabase{}, db)

	db, err = Open(BackendLevelDB, t.TempDir(), 16)
	assert.Nil(err)
	assert.IsType(&LDBDatabase{}, db)
	db.Close()

	_, err = Open("rocksdb", t.TempDir(), 16)
	assert.NotNil(err)
}

func testPutGet(db database.Database, t *testing.T) {
	assert := assert.New(t)

	for _, k := range testValues {
		assert.Nil(db.Put([]byte(k), []byte(k)))
	}
	for _, k := range testValues {
		data, err := db.Get([]byte(k))
		assert.Nil(err)
		assert.True(bytes.Equal(data, []byte(k)), "get returned wrong result for %q", k)

		exists, err := db.Has([]byte(k))
		assert.Nil(err)
		assert.True(exists)
	}

	_, err := db.Get([]byte("non-exist-key"))
	assert.Equal(store.ErrKeyNotFound, err)

	exists, err := db.Has([]byte("non-exist-key"))
	assert.Nil(err)
	assert.False(exists)

	for _, k := range testValues {
		assert.Nil(db.Put([]byte(k), []byte("?")))
		data, err := db.Get([]byte(k))
		assert.Nil(err)
		assert.Equal([]byte("?"), data)
	}

	for _, k := range testValues {
		db.Delete([]byte(k))
		_, err := db.Get([]byte(k))
		assert.Equal(store.ErrKeyNotFound, err)
	}
}

func testBatch(db database.Database, t *testing.T) {
	assert := assert.New(t)

	assert.Nil(db.Put([]byte("stale"), []byte("x")))

	batch := db.NewBatch()
	for _, k := range testValues {
		assert.Nil(batch.Put([]byte(k), []byte(k)))
	}
	assert.Nil(batch.Delete([]byte("stale")))
	assert.True(batch.ValueSize() > 0)

	// Nothing is visible before Write
	_, err := db.Get([]byte(testValues[0]))
	assert.Equal(store.ErrKeyNotFound, err)

	assert.Nil(batch.Write())
	for _, k := range testValues {
		data, err := db.Get([]byte(k))
		assert.Nil(err)
		assert.Equal([]byte(k), data)
	}
	_, err = db.Get([]byte("stale"))
	assert.Equal(store.ErrKeyNotFound, err)

	batch.Reset()
	assert.Equal(0, batch.ValueSize())
	assert.Nil(batch.Put([]byte("dropped"), []byte("y")))
	batch.Reset()
	assert.Nil(batch.Write())
	_, err = db.Get([]byte("dropped"))
	assert.Equal(store.ErrKeyNotFound, err)
}
