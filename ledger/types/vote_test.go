package types

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func percent(n int64) *big.Int {
	return MulDiv(Scale, big.NewInt(n), big.NewInt(100))
}

func TestVoteAxisRanges(t *testing.T) {
	assert := assert.New(t)

	assert.True(errors.Is(AxisDecayPeriod.Validate(big.NewInt(30)), ErrOutOfRange))
	assert.Nil(AxisDecayPeriod.Validate(big.NewInt(120)))
	assert.Nil(AxisDecayPeriod.Validate(big.NewInt(60)))
	assert.Nil(AxisDecayPeriod.Validate(big.NewInt(300)))
	assert.True(errors.Is(AxisDecayPeriod.Validate(big.NewInt(301)), ErrOutOfRange))

	assert.True(errors.Is(AxisReferralShare.Validate(percent(12)), ErrOutOfRange))
	assert.True(errors.Is(AxisReferralShare.Validate(percent(4)), ErrOutOfRange))
	assert.Nil(AxisReferralShare.Validate(percent(8)))

	assert.Nil(AxisFee.Validate(percent(1)))
	assert.True(errors.Is(AxisFee.Validate(new(big.Int).Add(percent(1), big.NewInt(1))), ErrOutOfRange))

	assert.Nil(AxisSlippageFee.Validate(Scale))
	assert.Nil(AxisGovernanceShare.Validate(big.NewInt(0)))
	assert.True(errors.Is(AxisGovernanceShare.Validate(percent(11)), ErrOutOfRange))
	assert.True(errors.Is(AxisFee.Validate(big.NewInt(-1)), ErrOutOfRange))
	assert.True(errors.Is(AxisFee.Validate(nil), ErrOutOfRange))
}

func TestVoteAxisText(t *testing.T) {
	assert := assert.New(t)

	for _, axis := range AllAxes() {
		text, err := axis.MarshalText()
		assert.Nil(err)
		var parsed VoteAxis
		assert.Nil(parsed.UnmarshalText(text))
		assert.Equal(axis, parsed)
	}
	_, err := ParseVoteAxis("bogus")
	assert.NotNil(err)
	assert.False(VoteAxis(9).IsValid())
}

func TestCategory(t *testing.T) {
	assert := assert.New(t)

	c, err := ParseCategory("stake")
	assert.Nil(err)
	assert.Equal(CategoryStake, c)
	c, err = ParseCategory("GOVERNANCE")
	assert.Nil(err)
	assert.Equal(CategoryGovernance, c)

	_, err = ParseCategory("liquidity")
	assert.True(errors.Is(err, ErrInvalidCategory))
	assert.False(Category(7).IsValid())
	assert.Equal(2, len(AllCategories()))
}
