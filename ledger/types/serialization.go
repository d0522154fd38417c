package types

import (
	"github.com/ethereum/go-ethereum/rlp"
)

// ToBytes encodes a state object for the store.
func ToBytes(a interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(a)
}

// FromBytes decodes a state object written by ToBytes.
func FromBytes(in []byte, a interface{}) error {
	return rlp.DecodeBytes(in, a)
}
