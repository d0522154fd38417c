package types

import (
	"strings"

	"github.com/pkg/errors"
)

// Category is the governance dimension a power value is tracked under.
type Category uint8

const (
	// CategoryStake tracks staked principal, the only category used for quorum.
	CategoryStake Category = iota
	// CategoryGovernance tracks power used for parameter votes.
	CategoryGovernance

	numCategories
)

var categoryNames = [numCategories]string{
	CategoryStake:      "STAKE",
	CategoryGovernance: "GOVERNANCE",
}

// AllCategories returns every known category in declaration order.
func AllCategories() []Category {
	ret := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		ret = append(ret, c)
	}
	return ret
}

func (c Category) IsValid() bool {
	return c < numCategories
}

func (c Category) String() string {
	if !c.IsValid() {
		return "UNKNOWN"
	}
	return categoryNames[c]
}

// ParseCategory accepts the category name (case insensitive).
func ParseCategory(s string) (Category, error) {
	for c := Category(0); c < numCategories; c++ {
		if strings.EqualFold(s, categoryNames[c]) {
			return c, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidCategory, "%q", s)
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, errors.Wrapf(ErrInvalidCategory, "%d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(input []byte) error {
	parsed, err := ParseCategory(string(input))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
