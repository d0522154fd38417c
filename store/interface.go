package store

import (
	"errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

// ErrKeyNotFound for missing key.
var ErrKeyNotFound = errors.New("KeyNotFound")

// Store is the interface for key/value storages. Values are serialized
// before they reach the underlying database.
type Store interface {
	Put(key common.Bytes, value interface{}) error
	Delete(key common.Bytes) error
	Get(key common.Bytes, value interface{}) error
}
