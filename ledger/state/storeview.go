package state

import (
	"fmt"
	"math/big"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database"
)

//
// ------------------------- StoreView -------------------------
//

// StoreView is a writable overlay on top of a parent view, or on top of
// the database for the root view. Writes stay in the overlay until they
// are merged into the parent or saved to the database.
type StoreView struct {
	height uint64 // block height
	db     database.Database
	parent *StoreView
	dirty  map[string][]byte // nil value marks a deletion
}

// NewStoreView creates an instance of the StoreView
func NewStoreView(height uint64, db database.Database) *StoreView {
	return &StoreView{
		height: height,
		db:     db,
		dirty:  make(map[string][]byte),
	}
}

// Copy returns a scratch view layered on top of sv. Changes made to the
// copy are invisible to sv until sv.Merge is called with it.
func (sv *StoreView) Copy() *StoreView {
	return &StoreView{
		height: sv.height,
		db:     sv.db,
		parent: sv,
		dirty:  make(map[string][]byte),
	}
}

// Merge folds the changes of a copy created by sv.Copy() into sv.
func (sv *StoreView) Merge(child *StoreView) {
	if child.parent != sv {
		panic("Cannot merge a StoreView that was not copied from this view")
	}
	for k, v := range child.dirty {
		sv.dirty[k] = v
	}
	child.dirty = make(map[string][]byte)
}

// Height returns the block height corresponding to the stored state
func (sv *StoreView) Height() uint64 {
	return sv.height
}

// IncrementHeight increments the block height by 1
func (sv *StoreView) IncrementHeight() {
	sv.height++
}

func (sv *StoreView) setHeight(height uint64) {
	sv.height = height
}

// Save writes the pending changes of a root view to the database in one batch.
func (sv *StoreView) Save() error {
	if sv.parent != nil {
		return fmt.Errorf("Only the root StoreView can be saved")
	}
	batch := sv.db.NewBatch()
	for k, v := range sv.dirty {
		var err error
		if v == nil {
			err = batch.Delete([]byte(k))
		} else {
			err = batch.Put([]byte(k), v)
		}
		if err != nil {
			return err
		}
	}
	if err := batch.Put(HeightKey(), uint64Bytes(sv.height)); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	sv.dirty = make(map[string][]byte)
	return nil
}

// Dirty returns the number of pending changes.
func (sv *StoreView) Dirty() int {
	return len(sv.dirty)
}

// Get returns the value corresponding the key
func (sv *StoreView) Get(key common.Bytes) common.Bytes {
	for view := sv; view != nil; view = view.parent {
		if value, ok := view.dirty[string(key)]; ok {
			return value
		}
	}
	value, err := sv.db.Get(key)
	if err != nil {
		return nil
	}
	return value
}

// Set sets the value of the key
func (sv *StoreView) Set(key common.Bytes, value common.Bytes) {
	if value == nil {
		value = common.Bytes{}
	}
	sv.dirty[string(key)] = common.CopyBytes(value)
}

// Delete removes the key
func (sv *StoreView) Delete(key common.Bytes) {
	sv.dirty[string(key)] = nil
}

func (sv *StoreView) getObject(key common.Bytes, obj interface{}) bool {
	data := sv.Get(key)
	if len(data) == 0 {
		return false
	}
	if err := types.FromBytes(data, obj); err != nil {
		panic(fmt.Sprintf("Error reading %T at %X error: %v", obj, key, err.Error()))
	}
	return true
}

func (sv *StoreView) setObject(key common.Bytes, obj interface{}) {
	data, err := types.ToBytes(obj)
	if err != nil {
		panic(fmt.Sprintf("Error writing %T %v error: %v", obj, obj, err.Error()))
	}
	sv.Set(key, data)
}

func (sv *StoreView) getUint64(key common.Bytes) uint64 {
	var n uint64
	sv.getObject(key, &n)
	return n
}

func (sv *StoreView) setUint64(key common.Bytes, n uint64) {
	sv.setObject(key, n)
}

func (sv *StoreView) getBigInt(key common.Bytes) *big.Int {
	n := new(big.Int)
	sv.getObject(key, n)
	return n
}

func (sv *StoreView) setBigInt(key common.Bytes, n *big.Int) {
	sv.setObject(key, types.NoNil(n))
}

func (sv *StoreView) getAddress(key common.Bytes) common.Address {
	var addr common.Address
	sv.getObject(key, &addr)
	return addr
}

func (sv *StoreView) setAddress(key common.Bytes, addr common.Address) {
	if addr.IsEmpty() {
		sv.Delete(key)
		return
	}
	sv.setObject(key, addr)
}
