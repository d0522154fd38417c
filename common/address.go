package common

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the expected length of an address in bytes
const AddressLength = 20

// Bytes is a raw byte slice used for store keys and values
type Bytes []byte

// Address represents the 20 byte address of an account or a proxy
type Address [AddressLength]byte

// BytesToAddress returns Address with value b. If b is larger than len(h),
// b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress returns Address with byte values of s. Malformed input
// yields the zero address, use IsHexAddress to validate first.
func HexToAddress(s string) Address {
	b, _ := hex.DecodeString(normalizeHex(s))
	return BytesToAddress(b)
}

// IsHexAddress verifies whether a string can represent a valid hex-encoded
// address or not.
func IsHexAddress(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*AddressLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func normalizeHex(s string) string {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return s
}

// SetBytes sets the address to the value of b.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// Bytes gets the byte representation of the underlying address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the 0x-prefixed hex representation of the address.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// IsEmpty returns true if all the bytes of the address are zero
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// MarshalText implements encoding.TextMarshaler
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Address) UnmarshalText(input []byte) error {
	if !IsHexAddress(string(input)) {
		return fmt.Errorf("Invalid address: %s", string(input))
	}
	*a = HexToAddress(string(input))
	return nil
}

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)
	return
}
