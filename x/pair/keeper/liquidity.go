package keeper

import (
	"cosmossdk.io/math"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/pair/types"
)

// Provision is the outcome of a liquidity deposit.
type Provision struct {
	// Share is minted to the receiver.
	Share math.Int
	// Bootstrap is set on the first deposit, which also locks
	// MinimumLiquidityAmount in the pair.
	Bootstrap bool
	// Desired is the part of each deposit consumed at the pool ratio.
	Desired [2]math.Int
	// Refund is returned to the depositor. Token sides never refund; only
	// Desired is pulled from them.
	Refund [2]math.Int
}

// ComputeProvision prices a deposit against pools, the reserves before the
// deposit, and the current liquidity token supply. isToken marks the sides
// held as contract tokens.
func ComputeProvision(
	pools, deposits [2]math.Int,
	totalShare math.Int,
	isToken [2]bool,
	slippageTolerance *math.LegacyDec,
) (Provision, error) {
	var p Provision

	if totalShare.IsZero() {
		p.Bootstrap = true
		product, err := choicetypes.MulWide(deposits[0], deposits[1])
		if err != nil {
			return p, err
		}
		share := choicetypes.Sqrt(product)
		minimum := math.NewInt(types.MinimumLiquidityAmount)
		if share.LTE(minimum) {
			return p, types.ErrMinimumLiquidityAmount.Wrapf("required=%s given=%s", minimum, share)
		}
		p.Share = share.Sub(minimum)
	} else {
		s0, err := choicetypes.MulDivFloor(deposits[0], totalShare, pools[0])
		if err != nil {
			return p, err
		}
		s1, err := choicetypes.MulDivFloor(deposits[1], totalShare, pools[1])
		if err != nil {
			return p, err
		}
		p.Share = math.MinInt(s0, s1)
	}

	if p.Share.IsZero() {
		return p, types.ErrInvalidZeroAmount.Wrap("deposit mints no liquidity")
	}
	if _, err := choicetypes.CheckedAdd(totalShare, p.Share); err != nil {
		return p, types.ErrLpSupplyOverflow.Wrapf("%s + %s", totalShare, p.Share)
	}

	for i := range pools {
		desired := deposits[i]
		if !p.Bootstrap {
			var err error
			desired, err = choicetypes.MulDivFloor(pools[i], p.Share, totalShare)
			if err != nil {
				return p, err
			}
			back, err := choicetypes.MulDivFloor(desired, totalShare, p.Share)
			if err != nil {
				return p, err
			}
			// round the consumed amount up
			if !back.Equal(pools[i]) {
				desired = desired.AddRaw(1)
			}
			desired = math.MinInt(desired, deposits[i])
		}
		p.Desired[i] = desired

		refund := deposits[i].Sub(desired)
		if isToken[i] {
			refund = math.ZeroInt()
		}
		if slippageTolerance != nil {
			allowed, err := choicetypes.MulFloor(deposits[i], *slippageTolerance)
			if err != nil {
				return p, err
			}
			if refund.GT(allowed) {
				return p, types.ErrMaxSlippageAssertion.Wrapf("refund %s above %s", refund, allowed)
			}
		}
		p.Refund[i] = refund
	}
	return p, nil
}

// ComputeWithdrawal returns the share of each pool that amount liquidity
// tokens out of totalShare redeem, floored.
func ComputeWithdrawal(pools [2]math.Int, amount, totalShare math.Int) ([2]math.Int, error) {
	var refunds [2]math.Int
	ratio, err := choicetypes.Ratio(amount, totalShare)
	if err != nil {
		return refunds, err
	}
	for i, pool := range pools {
		if refunds[i], err = choicetypes.MulFloor(pool, ratio); err != nil {
			return refunds, err
		}
	}
	return refunds, nil
}

// AssertMinimumAssets matches each minimum against the refunds by asset
// identity. A minimum on an asset missing from refunds compares against zero.
func AssertMinimumAssets(refunds []choicetypes.Asset, minAssets *[2]choicetypes.Asset) error {
	if minAssets == nil {
		return nil
	}
	for _, minAsset := range minAssets {
		got := choicetypes.NewAsset(minAsset.Info, math.ZeroInt())
		for _, refund := range refunds {
			if refund.Info.Equal(minAsset.Info) {
				got = refund
				break
			}
		}
		if got.Amount.LT(minAsset.Amount) {
			return types.ErrMinAmountAssertion.Wrapf("min_asset %s, asset %s", minAsset, got)
		}
	}
	return nil
}

// AssertDeadline rejects calls at or after deadline, in unix seconds.
func AssertDeadline(now uint64, deadline *uint64) error {
	if deadline != nil && now >= *deadline {
		return types.ErrExpiredDeadline.Wrapf("deadline %d, block time %d", *deadline, now)
	}
	return nil
}
