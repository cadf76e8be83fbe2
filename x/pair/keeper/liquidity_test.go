package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/pair/keeper"
	"github.com/choice-exchange/choice/x/pair/types"
)

func ints(a, b int64) [2]math.Int {
	return [2]math.Int{math.NewInt(a), math.NewInt(b)}
}

func TestComputeProvision_Bootstrap(t *testing.T) {
	p, err := keeper.ComputeProvision(ints(0, 0), ints(1_000_000_000, 1_000_000), math.ZeroInt(), [2]bool{}, nil)
	require.NoError(t, err)
	require.True(t, p.Bootstrap)
	// isqrt(1e15) less the locked minimum
	require.Equal(t, math.NewInt(31_621_776), p.Share)
	require.Equal(t, ints(1_000_000_000, 1_000_000), p.Desired)
	require.True(t, p.Refund[0].IsZero())
	require.True(t, p.Refund[1].IsZero())

	_, err = keeper.ComputeProvision(ints(0, 0), ints(1, 1), math.ZeroInt(), [2]bool{}, nil)
	require.ErrorIs(t, err, types.ErrMinimumLiquidityAmount)
	require.ErrorContains(t, err, "required=1000 given=1")

	// exactly the minimum still mints nothing
	_, err = keeper.ComputeProvision(ints(0, 0), ints(1_000, 1_000), math.ZeroInt(), [2]bool{}, nil)
	require.ErrorIs(t, err, types.ErrMinimumLiquidityAmount)
}

func TestComputeProvision_Proportional(t *testing.T) {
	p, err := keeper.ComputeProvision(ints(100, 100), ints(50, 60), math.NewInt(100), [2]bool{}, nil)
	require.NoError(t, err)
	require.False(t, p.Bootstrap)
	require.Equal(t, math.NewInt(50), p.Share)
	require.Equal(t, ints(50, 50), p.Desired)
	require.Equal(t, ints(0, 10), p.Refund)

	_, err = keeper.ComputeProvision(ints(100, 100), ints(50, 60), math.NewInt(100), [2]bool{}, decPtr("0.1"))
	require.ErrorIs(t, err, types.ErrMaxSlippageAssertion)

	p, err = keeper.ComputeProvision(ints(100, 100), ints(50, 60), math.NewInt(100), [2]bool{}, decPtr("0.2"))
	require.NoError(t, err)
	require.Equal(t, ints(0, 10), p.Refund)

	// token sides are pulled for Desired only
	p, err = keeper.ComputeProvision(ints(100, 100), ints(50, 60), math.NewInt(100), [2]bool{false, true}, decPtr("0.1"))
	require.NoError(t, err)
	require.Equal(t, ints(0, 0), p.Refund)
	require.Equal(t, ints(50, 50), p.Desired)
}

func TestComputeProvision_RoundsConsumedUp(t *testing.T) {
	// share floor(10*7/3) = 23; 3*23/7 is not whole, so 10 is consumed
	p, err := keeper.ComputeProvision(ints(3, 3), ints(10, 10), math.NewInt(7), [2]bool{}, nil)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(23), p.Share)
	require.Equal(t, ints(10, 10), p.Desired)
}

func TestComputeProvision_Errors(t *testing.T) {
	_, err := keeper.ComputeProvision(ints(1_000, 1_000), ints(1, 1), choicetypes.MaxUint128, [2]bool{}, nil)
	require.ErrorIs(t, err, types.ErrLpSupplyOverflow)

	_, err = keeper.ComputeProvision(ints(1_000_000, 1_000_000), ints(1, 1_000_000), math.NewInt(100), [2]bool{}, nil)
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)
}

func TestComputeWithdrawal(t *testing.T) {
	refunds, err := keeper.ComputeWithdrawal(ints(1_000, 2_000), math.NewInt(100), math.NewInt(1_000))
	require.NoError(t, err)
	require.Equal(t, ints(100, 200), refunds)

	refunds, err = keeper.ComputeWithdrawal(ints(10, 7), math.NewInt(1), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, ints(3, 2), refunds)
}

func TestAssertMinimumAssets(t *testing.T) {
	native := choicetypes.NativeAssetInfo("inj")
	token := choicetypes.TokenAssetInfo("inj1token")
	refunds := []choicetypes.Asset{
		choicetypes.NewAsset(native, math.NewInt(100)),
		choicetypes.NewAsset(token, math.NewInt(200)),
	}

	require.NoError(t, keeper.AssertMinimumAssets(refunds, nil))

	// minimums are matched by asset, not position
	ok := [2]choicetypes.Asset{
		choicetypes.NewAsset(token, math.NewInt(200)),
		choicetypes.NewAsset(native, math.NewInt(100)),
	}
	require.NoError(t, keeper.AssertMinimumAssets(refunds, &ok))

	high := [2]choicetypes.Asset{
		choicetypes.NewAsset(token, math.NewInt(201)),
		choicetypes.NewAsset(native, math.NewInt(100)),
	}
	require.ErrorIs(t, keeper.AssertMinimumAssets(refunds, &high), types.ErrMinAmountAssertion)

	other := choicetypes.NativeAssetInfo("usdt")
	absent := [2]choicetypes.Asset{
		choicetypes.NewAsset(other, math.ZeroInt()),
		choicetypes.NewAsset(native, math.NewInt(1)),
	}
	require.NoError(t, keeper.AssertMinimumAssets(refunds, &absent))

	absent[0].Amount = math.NewInt(1)
	require.ErrorIs(t, keeper.AssertMinimumAssets(refunds, &absent), types.ErrMinAmountAssertion)
}

func TestAssertDeadline(t *testing.T) {
	deadline := uint64(10)
	require.NoError(t, keeper.AssertDeadline(5, &deadline))
	require.NoError(t, keeper.AssertDeadline(5, nil))
	require.ErrorIs(t, keeper.AssertDeadline(10, &deadline), types.ErrExpiredDeadline)
	require.ErrorIs(t, keeper.AssertDeadline(11, &deadline), types.ErrExpiredDeadline)
}

func TestProvisionNeverDilutes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pools := [2]math.Int{
			math.NewInt(rapid.Int64Range(1, 1<<50).Draw(t, "pool0")),
			math.NewInt(rapid.Int64Range(1, 1<<50).Draw(t, "pool1")),
		}
		total := math.NewInt(rapid.Int64Range(1, 1<<50).Draw(t, "total"))
		deposits := [2]math.Int{
			math.NewInt(rapid.Int64Range(1, 1<<50).Draw(t, "deposit0")),
			math.NewInt(rapid.Int64Range(1, 1<<50).Draw(t, "deposit1")),
		}

		p, err := keeper.ComputeProvision(pools, deposits, total, [2]bool{}, nil)
		if err != nil {
			return
		}
		for i := range pools {
			if p.Desired[i].GT(deposits[i]) {
				t.Fatalf("side %d consumes %s of a %s deposit", i, p.Desired[i], deposits[i])
			}
			if !p.Desired[i].Add(p.Refund[i]).Equal(deposits[i]) {
				t.Fatalf("side %d: desired %s + refund %s != %s", i, p.Desired[i], p.Refund[i], deposits[i])
			}
			// consumed/pool never falls short of share/total
			if p.Desired[i].Mul(total).LT(pools[i].Mul(p.Share)) {
				t.Fatalf("side %d: %s/%s below %s/%s", i, p.Desired[i], pools[i], p.Share, total)
			}
		}

		// withdrawing the fresh share never returns more than was consumed
		after := [2]math.Int{pools[0].Add(p.Desired[0]), pools[1].Add(p.Desired[1])}
		out, err := keeper.ComputeWithdrawal(after, p.Share, total.Add(p.Share))
		if err != nil {
			t.Fatal(err)
		}
		for i := range out {
			if out[i].GT(p.Desired[i]) {
				t.Fatalf("side %d: withdraw %s exceeds deposit %s", i, out[i], p.Desired[i])
			}
		}
	})
}
