package kvstore

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database"
)

// NewKVStore returns a store over the whole key space of db.
func NewKVStore(db database.Database) store.Store {
	return NewPrefixedKVStore(db, nil)
}

// NewPrefixedKVStore returns a store whose keys all live under prefix, so
// node bookkeeping can share a database with the ledger state.
func NewPrefixedKVStore(db database.Database, prefix common.Bytes) *KVStore {
	return &KVStore{db: db, prefix: append(common.Bytes{}, prefix...)}
}

// KVStore keeps rlp encoded values in a Database.
type KVStore struct {
	db     database.Database
	prefix common.Bytes
}

func (kv *KVStore) key(key common.Bytes) common.Bytes {
	if len(kv.prefix) == 0 {
		return key
	}
	full := make(common.Bytes, 0, len(kv.prefix)+len(key))
	return append(append(full, kv.prefix...), key...)
}

// Put upserts key/value into DB
func (kv *KVStore) Put(key common.Bytes, value interface{}) error {
	encodedValue, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %T for key %q", value, key)
	}
	return kv.db.Put(kv.key(key), encodedValue)
}

// Delete deletes key entry from DB
func (kv *KVStore) Delete(key common.Bytes) error {
	return kv.db.Delete(kv.key(key))
}

// Has reports whether key is present.
func (kv *KVStore) Has(key common.Bytes) (bool, error) {
	return kv.db.Has(kv.key(key))
}

// Get decodes the value stored under key into value. A missing key yields
// store.ErrKeyNotFound unwrapped.
func (kv *KVStore) Get(key common.Bytes, value interface{}) error {
	encodedValue, err := kv.db.Get(kv.key(key))
	if err != nil {
		return err
	}
	if err := rlp.DecodeBytes(encodedValue, value); err != nil {
		return errors.Wrapf(err, "failed to decode key %q into %T", key, value)
	}
	return nil
}
