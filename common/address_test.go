package common

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressHex(t *testing.T) {
	assert := assert.New(t)

	addr := HexToAddress("0x2E833968E5bB786Ae419c4d13189fB081Cc43bab")
	assert.Equal("0x2e833968e5bb786ae419c4d13189fb081cc43bab", addr.Hex())
	assert.False(addr.IsEmpty())
	assert.True(Address{}.IsEmpty())

	assert.True(IsHexAddress("0x2E833968E5bB786Ae419c4d13189fB081Cc43bab"))
	assert.False(IsHexAddress("0x2E83"))
	assert.False(IsHexAddress("0xZZ833968E5bB786Ae419c4d13189fB081Cc43bab"))

	short := HexToAddress("0x1")
	assert.Equal(byte(1), short[AddressLength-1])
}

func TestAddressJSON(t *testing.T) {
	assert := assert.New(t)

	type wrapper struct {
		Addr   Address    `json:"addr"`
		Amount *JSONBig   `json:"amount"`
		Height JSONUint64 `json:"height"`
	}
	amount, _ := new(big.Int).SetString("500000000000000000000", 10)
	w := wrapper{
		Addr:   HexToAddress("0x00000000000000000000000000000000000000aa"),
		Amount: NewJSONBig(amount),
		Height: 42,
	}
	raw, err := json.Marshal(w)
	assert.Nil(err)
	assert.Equal(`{"addr":"0x00000000000000000000000000000000000000aa","amount":"500000000000000000000","height":"42"}`, string(raw))

	var decoded wrapper
	assert.Nil(json.Unmarshal(raw, &decoded))
	assert.Equal(w.Addr, decoded.Addr)
	assert.Equal(0, amount.Cmp(decoded.Amount.ToInt()))
	assert.Equal(JSONUint64(42), decoded.Height)

	assert.NotNil(json.Unmarshal([]byte(`{"addr":"0x12"}`), &decoded))
}
