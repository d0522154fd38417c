package types

import (
	"encoding/json"
	"math/big"
	"os"

	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

// Allocation is the initial token balance of an account.
type Allocation struct {
	Address common.Address `json:"address"`
	Amount  *big.Int       `json:"amount"`
}

type allocationJSON struct {
	Address common.Address  `json:"address"`
	Amount  *common.JSONBig `json:"amount"`
}

func (a Allocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(allocationJSON{a.Address, common.NewJSONBig(a.Amount)})
}

func (a *Allocation) UnmarshalJSON(data []byte) error {
	var b allocationJSON
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	a.Address = b.Address
	a.Amount = NoNil(b.Amount.ToInt())
	return nil
}

// Genesis describes the initial token distribution of a chain.
type Genesis struct {
	ChainID     string       `json:"chain_id"`
	Allocations []Allocation `json:"allocations"`
}

// TotalSupply returns the sum of all allocations.
func (g *Genesis) TotalSupply() *big.Int {
	total := new(big.Int)
	for _, a := range g.Allocations {
		total.Add(total, NoNil(a.Amount))
	}
	return total
}

// Validate checks the genesis for duplicate or negative allocations.
func (g *Genesis) Validate() error {
	if g.ChainID == "" {
		return errors.New("genesis without chain ID")
	}
	seen := make(map[common.Address]bool, len(g.Allocations))
	for _, a := range g.Allocations {
		if seen[a.Address] {
			return errors.Errorf("duplicate genesis allocation for %v", a.Address)
		}
		seen[a.Address] = true
		if !IsNonnegative(a.Amount) {
			return errors.Wrapf(ErrInvalidAmount, "negative genesis allocation for %v", a.Address)
		}
	}
	return nil
}

// LoadGenesis reads a genesis JSON file.
func LoadGenesis(filePath string) (*Genesis, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read genesis file %v", filePath)
	}
	genesis := &Genesis{}
	if err := json.Unmarshal(data, genesis); err != nil {
		return nil, errors.Wrapf(err, "failed to parse genesis file %v", filePath)
	}
	if err := genesis.Validate(); err != nil {
		return nil, err
	}
	return genesis, nil
}
