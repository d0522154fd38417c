package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the fixed point precision of token amounts and voting power.
const Decimals = 18

var (
	Zero *big.Int
	// Scale is 10^Decimals, i.e. one whole token expressed in wei.
	Scale *big.Int
)

func init() {
	Zero = big.NewInt(0)
	Scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)
}

// Tokens converts whole tokens into wei.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), Scale)
}

// NoNil returns a copy of amount, mapping nil to zero.
func NoNil(amount *big.Int) *big.Int {
	if amount == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(amount)
}

// IsPositive returns true for amounts strictly greater than zero.
func IsPositive(amount *big.Int) bool {
	return amount != nil && amount.Sign() > 0
}

// IsNonnegative returns true for nil or amounts >= 0.
func IsNonnegative(amount *big.Int) bool {
	return amount == nil || amount.Sign() >= 0
}

// ParseAmount parses a string representation of token amount. Plain numbers
// are whole tokens (decimals allowed), a "wei" suffix means the raw unit.
func ParseAmount(in string) (*big.Int, bool) {
	in = strings.TrimSpace(in)
	inWei := false
	if len(in) > 3 && strings.EqualFold("wei", in[len(in)-3:]) {
		inWei = true
		in = in[:len(in)-3]
	}
	r, ok := new(big.Rat).SetString(in)
	if !ok || r.Sign() < 0 {
		return nil, false
	}
	if !inWei {
		r.Mul(r, new(big.Rat).SetInt(Scale))
	}
	if !r.IsInt() {
		return nil, false
	}
	return new(big.Int).Set(r.Num()), true
}

// FormatAmount renders a wei amount as whole tokens, trimming trailing zeros.
func FormatAmount(amount *big.Int) string {
	a := NoNil(amount)
	neg := a.Sign() < 0
	a.Abs(a)
	whole, frac := new(big.Int).QuoRem(a, Scale, new(big.Int))
	s := whole.String()
	if frac.Sign() != 0 {
		fs := fmt.Sprintf("%0*s", Decimals, frac.String())
		s += "." + strings.TrimRight(fs, "0")
	}
	if neg {
		s = "-" + s
	}
	return s
}

// MulDiv returns a*b/c rounded down.
func MulDiv(a, b, c *big.Int) *big.Int {
	if c.Sign() == 0 {
		return new(big.Int)
	}
	res := new(big.Int).Mul(NoNil(a), NoNil(b))
	return res.Quo(res, c)
}
