package types_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/choice-exchange/choice/x/choice/types"
)

func TestRatio_Floors(t *testing.T) {
	r, err := types.Ratio(math.NewInt(1), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, "0.333333333333333333", r.String())

	r, err = types.Ratio(math.NewInt(2), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, "0.666666666666666666", r.String())

	_, err = types.Ratio(math.NewInt(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrDivideByZero)
}

func TestInv_CommissionRate(t *testing.T) {
	inv, err := types.Inv(types.CommissionRate)
	require.NoError(t, err)
	require.Equal(t, "333.333333333333333333", inv.String())

	oneMinus := math.LegacyOneDec().Sub(types.CommissionRate)
	inv, err = types.Inv(oneMinus)
	require.NoError(t, err)
	require.Equal(t, "1.003009027081243731", inv.String())

	_, err = types.Inv(math.LegacyZeroDec())
	require.ErrorIs(t, err, types.ErrDivideByZero)
}

func TestMulFloor(t *testing.T) {
	got, err := types.MulFloor(math.NewInt(1000), types.CommissionRate)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(3), got)

	got, err = types.MulFloor(math.NewInt(999), types.CommissionRate)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2), got)
}

func TestMulDivFloor_WideIntermediate(t *testing.T) {
	// the product overflows uint128 but the quotient does not
	got, err := types.MulDivFloor(types.MaxUint128, types.MaxUint128, types.MaxUint128)
	require.NoError(t, err)
	require.Equal(t, types.MaxUint128, got)

	_, err = types.MulDivFloor(math.NewInt(1), math.NewInt(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrDivideByZero)
}

func TestCheckedArithmetic(t *testing.T) {
	_, err := types.CheckedAdd(types.MaxUint128, math.OneInt())
	require.ErrorIs(t, err, types.ErrOverflow)

	_, err = types.CheckedSub(math.NewInt(1), math.NewInt(2))
	require.ErrorIs(t, err, types.ErrOverflow)

	_, err = types.CheckedMul(types.MaxUint128, math.NewInt(2))
	require.ErrorIs(t, err, types.ErrOverflow)

	_, err = types.ToUint128(types.MaxUint128.Add(math.OneInt()))
	require.ErrorIs(t, err, types.ErrConversionOverflow)

	_, err = types.ToUint128(math.NewInt(-1))
	require.ErrorIs(t, err, types.ErrConversionOverflow)
}

func TestSqrt(t *testing.T) {
	require.Equal(t, math.NewInt(31_622_776), types.Sqrt(math.NewInt(1_000_000_000).Mul(math.NewInt(1_000_000))))
	require.Equal(t, math.NewInt(1), types.Sqrt(math.NewInt(1)))
	require.True(t, types.Sqrt(math.ZeroInt()).IsZero())
}

func TestPow10(t *testing.T) {
	require.Equal(t, math.NewInt(1), types.Pow10(0))
	require.Equal(t, "1000000000000000000", types.Pow10(18).String())
}

func drawAmount(t *rapid.T, label string) math.Int {
	return math.NewIntFromUint64(rapid.Uint64Range(0, 1<<62).Draw(t, label))
}

func TestMulFloorProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := drawAmount(t, "x")
		num := math.NewIntFromUint64(rapid.Uint64Range(0, 1_000_000).Draw(t, "num"))
		den := math.NewIntFromUint64(rapid.Uint64Range(1, 1_000_000).Draw(t, "den"))

		r, err := types.Ratio(num, den)
		if err != nil {
			t.Fatal(err)
		}
		got, err := types.MulFloor(x, r)
		if err != nil {
			t.Fatal(err)
		}

		// floor rounding never exceeds the exact product x*num/den
		exact := new(big.Int).Mul(x.BigInt(), num.BigInt())
		exact.Quo(exact, den.BigInt())
		if got.BigInt().Cmp(exact) > 0 {
			t.Fatalf("mul floor %s exceeds exact %s", got, exact)
		}
	})
}

func TestSqrtProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := drawAmount(t, "x")
		s := types.Sqrt(x)
		if s.Mul(s).GT(x) {
			t.Fatalf("sqrt(%s)=%s too large", x, s)
		}
		next := s.AddRaw(1)
		if next.Mul(next).LTE(x) {
			t.Fatalf("sqrt(%s)=%s too small", x, s)
		}
	})
}
