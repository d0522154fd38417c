package backend

import (
	"fmt"
	"path"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database"
)

const (
	BackendLevelDB = "leveldb"
	BackendBadger  = "badger"
	BackendMemory  = "memory"
)

// Open opens the database backend selected by name under dataPath.
func Open(name string, dataPath string, cache int) (database.Database, error) {
	switch name {
	case BackendLevelDB:
		return NewLDBDatabase(path.Join(dataPath, "db", "main"), cache, OpenFileLimit)
	case BackendBadger:
		return NewBadgerDatabase(path.Join(dataPath, "db", "badger"))
	case BackendMemory:
		return NewMemDatabase(), nil
	default:
		return nil, fmt.Errorf("Unsupported storage backend: %v", name)
	}
}
