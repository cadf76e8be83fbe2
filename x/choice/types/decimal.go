package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// Decimals are math.LegacyDec values: 18 fractional digits, the same
// fixed-point layout the amounts are quoted in on the wire. The helpers below
// round every operation towards zero.

var decimalFractional = new(big.Int).Exp(big.NewInt(10), big.NewInt(math.LegacyPrecision), nil)

// CommissionRate is the swap commission, 0.3%.
var CommissionRate = Permille(3)

// Permille returns n/1000.
func Permille(n int64) math.LegacyDec {
	return math.LegacyNewDecWithPrec(n, 3)
}

// Ratio returns floor(num/den) as a decimal.
func Ratio(num, den math.Int) (math.LegacyDec, error) {
	if den.IsZero() {
		return math.LegacyDec{}, ErrDivideByZero.Wrapf("ratio %s/0", num)
	}
	atomics := new(big.Int).Mul(num.BigInt(), decimalFractional)
	atomics.Quo(atomics, den.BigInt())
	return decFromAtomics(atomics)
}

// MulFloor returns floor(x*d).
func MulFloor(x math.Int, d math.LegacyDec) (math.Int, error) {
	prod := new(big.Int).Mul(x.BigInt(), d.BigInt())
	return fromBig(prod.Quo(prod, decimalFractional))
}

// Inv returns floor(1/d).
func Inv(d math.LegacyDec) (math.LegacyDec, error) {
	if d.IsZero() {
		return math.LegacyDec{}, ErrDivideByZero.Wrap("inverse of zero")
	}
	one := new(big.Int).Mul(decimalFractional, decimalFractional)
	return decFromAtomics(one.Quo(one, d.BigInt()))
}

// ValidateDecimal rejects negative values in user supplied decimals.
func ValidateDecimal(name string, d *math.LegacyDec) error {
	if d == nil {
		return nil
	}
	if d.IsNil() || d.IsNegative() {
		return ErrInvalidDecimal.Wrapf("%s must be a non-negative decimal", name)
	}
	return nil
}

func decFromAtomics(atomics *big.Int) (math.LegacyDec, error) {
	if atomics.BitLen() > math.MaxBitLen {
		return math.LegacyDec{}, ErrOverflow.Wrapf("decimal of %d bits", atomics.BitLen())
	}
	return math.LegacyNewDecFromBigIntWithPrec(atomics, math.LegacyPrecision), nil
}
