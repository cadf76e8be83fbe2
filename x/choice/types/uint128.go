package types

import (
	"math/big"

	"cosmossdk.io/math"
)

var (
	maxUint128Big = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

	// MaxUint128 is the largest amount any token balance or supply may reach.
	MaxUint128 = math.NewIntFromBigInt(maxUint128Big)
)

// FitsUint128 reports whether x is a valid unsigned 128-bit amount.
func FitsUint128(x math.Int) bool {
	return !x.IsNegative() && x.BigInt().Cmp(maxUint128Big) <= 0
}

// ToUint128 narrows a wide intermediate back to an amount.
func ToUint128(x math.Int) (math.Int, error) {
	if !FitsUint128(x) {
		return math.Int{}, ErrConversionOverflow.Wrapf("%s does not fit in uint128", x)
	}
	return x, nil
}

// CheckedAdd adds two amounts, failing above the uint128 range.
func CheckedAdd(a, b math.Int) (math.Int, error) {
	sum, err := fromBig(new(big.Int).Add(a.BigInt(), b.BigInt()))
	if err != nil || !FitsUint128(sum) {
		return math.Int{}, ErrOverflow.Wrapf("%s + %s", a, b)
	}
	return sum, nil
}

// CheckedSub subtracts two amounts, failing below zero.
func CheckedSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, ErrOverflow.Wrapf("cannot subtract %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// CheckedMul multiplies two amounts, failing above the uint128 range.
func CheckedMul(a, b math.Int) (math.Int, error) {
	prod, err := fromBig(new(big.Int).Mul(a.BigInt(), b.BigInt()))
	if err != nil || !FitsUint128(prod) {
		return math.Int{}, ErrOverflow.Wrapf("%s * %s", a, b)
	}
	return prod, nil
}

// MulWide multiplies two amounts into a 256-bit intermediate, such as the
// constant product of two reserves.
func MulWide(a, b math.Int) (math.Int, error) {
	if !FitsUint128(a) || !FitsUint128(b) {
		return math.Int{}, ErrOverflow.Wrapf("%s * %s: operand outside uint128", a, b)
	}
	return fromBig(new(big.Int).Mul(a.BigInt(), b.BigInt()))
}

// MulDivFloor returns floor(a*b/c) computed on an unbounded intermediate.
func MulDivFloor(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, ErrDivideByZero.Wrapf("%s * %s / 0", a, b)
	}
	num := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return fromBig(num.Quo(num, c.BigInt()))
}

// Pow10 returns 10^n.
func Pow10(n uint8) math.Int {
	return math.NewIntFromBigInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil))
}

// Sqrt returns floor(sqrt(x)).
func Sqrt(x math.Int) math.Int {
	if !x.IsPositive() {
		return math.ZeroInt()
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt()))
}

// fromBig converts an intermediate result into a math.Int. math.Int panics
// above 256 bits, so the width is checked first.
func fromBig(b *big.Int) (math.Int, error) {
	if b.BitLen() > math.MaxBitLen {
		return math.Int{}, ErrOverflow.Wrapf("intermediate of %d bits", b.BitLen())
	}
	return math.NewIntFromBigInt(b), nil
}
