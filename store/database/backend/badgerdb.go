package backend

import (
	"github.com/dgraph-io/badger/v4"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database"
)

var _ database.Database = (*BadgerDatabase)(nil)

// BadgerDatabase a badger wrapped object.
type BadgerDatabase struct {
	db *badger.DB
}

// NewBadgerDatabase returns a BadgerDB wrapped object. An empty dirname opens
// an in-memory instance.
func NewBadgerDatabase(dirname string) (*BadgerDatabase, error) {
	opts := badger.DefaultOptions(dirname).WithLogger(nil)
	if dirname == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	logger.Infof("Opened badger database at %v", dirname)

	return &BadgerDatabase{
		db: db,
	}, nil
}

// Put puts the given key / value to the database
func (db *BadgerDatabase) Put(key []byte, value []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Has checks if the given key is present in the database
func (db *BadgerDatabase) Has(key []byte) (bool, error) {
	err := db.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound || err == badger.ErrEmptyKey {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Get returns the given key if it's present.
func (db *BadgerDatabase) Get(key []byte) ([]byte, error) {
	var value []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound || err == badger.ErrEmptyKey {
				return store.ErrKeyNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Delete deletes the key from the database
func (db *BadgerDatabase) Delete(key []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (db *BadgerDatabase) Close() {
	if err := db.db.Close(); err != nil {
		logger.Errorf("Failed to close badger database, err: %v", err)
	}
}

func (db *BadgerDatabase) NewBatch() database.Batch {
	return &badgerBatch{db: db.db, wb: db.db.NewWriteBatch()}
}

type badgerBatch struct {
	db   *badger.DB
	wb   *badger.WriteBatch
	size int
}

func (b *badgerBatch) Put(key, value []byte) error {
	b.size += len(value)
	return b.wb.Set(key, value)
}

func (b *badgerBatch) Delete(key []byte) error {
	b.size++
	return b.wb.Delete(key)
}

func (b *badgerBatch) Write() error {
	err := b.wb.Flush()
	// A flushed WriteBatch cannot be reused.
	b.wb = b.db.NewWriteBatch()
	b.size = 0
	return err
}

func (b *badgerBatch) ValueSize() int {
	return b.size
}

func (b *badgerBatch) Reset() {
	b.wb.Cancel()
	b.wb = b.db.NewWriteBatch()
	b.size = 0
}
