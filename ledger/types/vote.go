package types

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

// VoteAxis is a governance parameter a proxy can vote on.
type VoteAxis uint8

const (
	AxisFee VoteAxis = iota
	AxisSlippageFee
	AxisDecayPeriod
	AxisReferralShare
	AxisGovernanceShare

	numAxes
)

// VoteRange is the inclusive band a vote value must fall in.
type VoteRange struct {
	Min *big.Int
	Max *big.Int
}

var (
	axisNames = [numAxes]string{
		AxisFee:             "Fee",
		AxisSlippageFee:     "SlippageFee",
		AxisDecayPeriod:     "DecayPeriod",
		AxisReferralShare:   "ReferralShare",
		AxisGovernanceShare: "GovernanceShare",
	}

	axisRanges [numAxes]VoteRange
)

func init() {
	percent := func(numerator, denominator int64) *big.Int {
		return MulDiv(Scale, big.NewInt(numerator), big.NewInt(denominator))
	}
	axisRanges[AxisFee] = VoteRange{Min: big.NewInt(0), Max: percent(1, 100)}
	axisRanges[AxisSlippageFee] = VoteRange{Min: big.NewInt(0), Max: new(big.Int).Set(Scale)}
	axisRanges[AxisDecayPeriod] = VoteRange{Min: big.NewInt(60), Max: big.NewInt(300)} // seconds
	axisRanges[AxisReferralShare] = VoteRange{Min: percent(5, 100), Max: percent(10, 100)}
	axisRanges[AxisGovernanceShare] = VoteRange{Min: big.NewInt(0), Max: percent(10, 100)}
}

// AllAxes returns the vote axes in declaration order.
func AllAxes() []VoteAxis {
	ret := make([]VoteAxis, 0, numAxes)
	for a := VoteAxis(0); a < numAxes; a++ {
		ret = append(ret, a)
	}
	return ret
}

func (a VoteAxis) IsValid() bool {
	return a < numAxes
}

func (a VoteAxis) String() string {
	if !a.IsValid() {
		return "Unknown"
	}
	return axisNames[a]
}

// Range returns the accepted value band of the axis.
func (a VoteAxis) Range() VoteRange {
	r := axisRanges[a]
	return VoteRange{Min: new(big.Int).Set(r.Min), Max: new(big.Int).Set(r.Max)}
}

// Validate checks value against the axis band. Values are never clamped.
func (a VoteAxis) Validate(value *big.Int) error {
	if !a.IsValid() {
		return errors.Errorf("invalid vote axis: %d", uint8(a))
	}
	if value == nil {
		return errors.Wrapf(ErrOutOfRange, "%v vote without value", a)
	}
	r := axisRanges[a]
	if value.Cmp(r.Min) < 0 || value.Cmp(r.Max) > 0 {
		return errors.Wrapf(ErrOutOfRange, "%v vote %v not in [%v, %v]", a, value, r.Min, r.Max)
	}
	return nil
}

// ParseVoteAxis accepts the axis name (case insensitive).
func ParseVoteAxis(s string) (VoteAxis, error) {
	for a := VoteAxis(0); a < numAxes; a++ {
		if strings.EqualFold(s, axisNames[a]) {
			return a, nil
		}
	}
	return 0, errors.Errorf("invalid vote axis: %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (a VoteAxis) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, errors.Errorf("invalid vote axis: %d", uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *VoteAxis) UnmarshalText(input []byte) error {
	parsed, err := ParseVoteAxis(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// VoteRecord is the last vote a proxy submitted on one axis.
type VoteRecord struct {
	Proxy       common.Address
	Axis        VoteAxis
	Value       *big.Int
	Weight      *big.Int
	BlockHeight uint64
}
