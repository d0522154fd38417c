package state

import (
	"encoding/binary"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "state"})

//
// ------------------------- State -------------------------
//

type LedgerState struct {
	chainID string
	db      database.Database

	delivered *StoreView // for actually applying the transactions
}

// NewLedgerState creates a new Ledger State on top of db. The height is
// restored from the last save, a fresh database starts at height 0.
func NewLedgerState(chainID string, db database.Database) *LedgerState {
	height := uint64(0)
	if raw, err := db.Get(HeightKey()); err == nil && len(raw) == 8 {
		height = binary.BigEndian.Uint64(raw)
	}
	s := &LedgerState{
		chainID:   chainID,
		db:        db,
		delivered: NewStoreView(height, db),
	}
	if stored := string(s.delivered.Get(ChainIDKey())); stored == "" {
		s.delivered.Set(ChainIDKey(), []byte(chainID))
	} else if chainID == "" {
		s.chainID = stored
	}
	return s
}

// GetChainID gets chain ID.
func (s *LedgerState) GetChainID() string {
	if s.chainID != "" {
		return s.chainID
	}
	s.chainID = string(s.delivered.Get(ChainIDKey()))
	return s.chainID
}

// DB returns the database instance of the ledger state
func (s *LedgerState) DB() database.Database {
	return s.db
}

// Height returns the block height corresponding to the ledger state
func (s *LedgerState) Height() uint64 {
	return s.delivered.Height()
}

// Delivered returns a view of current state that contains both committed and delivered
// transcations.
func (s *LedgerState) Delivered() *StoreView {
	return s.delivered
}

// Scratch returns a view layered on top of the delivered view. It is folded
// back with ApplyScratch or simply dropped.
func (s *LedgerState) Scratch() *StoreView {
	return s.delivered.Copy()
}

// ApplyScratch merges the changes of a scratch view into the delivered view.
func (s *LedgerState) ApplyScratch(scratch *StoreView) {
	s.delivered.Merge(scratch)
}

// Save persists the delivered view without advancing the height.
func (s *LedgerState) Save() error {
	return s.delivered.Save()
}

// Commit persists the delivered view and advances the height by one.
func (s *LedgerState) Commit() error {
	s.delivered.IncrementHeight()
	if err := s.delivered.Save(); err != nil {
		s.delivered.setHeight(s.delivered.Height() - 1)
		return errors.Wrap(err, "failed to save the delivered view")
	}
	logger.Debugf("Committed state, height is now %v", s.delivered.Height())
	return nil
}

// AdvanceTo moves the logical clock forward to height. Going backwards is
// rejected, staying at the current height is a no-op.
func (s *LedgerState) AdvanceTo(height uint64) error {
	current := s.delivered.Height()
	if height < current {
		return errors.Wrapf(types.ErrNonMonotonicBlock, "cannot move from height %v back to %v", current, height)
	}
	s.delivered.setHeight(height)
	if err := s.delivered.Save(); err != nil {
		s.delivered.setHeight(current)
		return errors.Wrap(err, "failed to save the delivered view")
	}
	return nil
}
