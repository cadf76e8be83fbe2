package keeper

import (
	"cosmossdk.io/math"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/pair/types"
)

// ComputeSwap prices offerAmount against the pools with the constant product
// formula. Amounts are scaled to the larger of the two decimals, priced, and
// floored back to the ask decimals. The returned amount is net of commission.
func ComputeSwap(offerPool, askPool, offerAmount math.Int, offerDecimals, askDecimals uint8) (types.SimulationResponse, error) {
	if offerDecimals > types.MaxDecimals || askDecimals > types.MaxDecimals {
		return types.SimulationResponse{}, choicetypes.ErrInvalidAsset.Wrapf("decimals %d/%d above %d", offerDecimals, askDecimals, types.MaxDecimals)
	}
	target := max(offerDecimals, askDecimals)

	offerPoolUp, err := upscale(offerPool, target-offerDecimals)
	if err != nil {
		return types.SimulationResponse{}, err
	}
	askPoolUp, err := upscale(askPool, target-askDecimals)
	if err != nil {
		return types.SimulationResponse{}, err
	}
	offerUp, err := upscale(offerAmount, target-offerDecimals)
	if err != nil {
		return types.SimulationResponse{}, err
	}

	ret, spread, commission, err := computeSwapRaw(offerPoolUp, askPoolUp, offerUp)
	if err != nil {
		return types.SimulationResponse{}, err
	}

	scale := choicetypes.Pow10(target - askDecimals)
	return types.SimulationResponse{
		ReturnAmount:     ret.Quo(scale),
		SpreadAmount:     spread.Quo(scale),
		CommissionAmount: commission.Quo(scale),
	}, nil
}

func upscale(x math.Int, diff uint8) (math.Int, error) {
	up, err := choicetypes.MulDivFloor(x, choicetypes.Pow10(diff), math.OneInt())
	if err != nil {
		return math.Int{}, err
	}
	return choicetypes.ToUint128(up)
}

// computeSwapRaw works on amounts already expressed in the same decimals.
func computeSwapRaw(offerPool, askPool, offerAmount math.Int) (ret, spread, commission math.Int, err error) {
	// ask_amount = ask_pool * offer / (offer_pool + offer), before commission
	ret, err = choicetypes.MulDivFloor(askPool, offerAmount, offerPool.Add(offerAmount))
	if err != nil {
		return
	}

	price, err := choicetypes.Ratio(askPool, offerPool)
	if err != nil {
		return
	}
	atPrice, err := choicetypes.MulFloor(offerAmount, price)
	if err != nil {
		return
	}
	spread = math.ZeroInt()
	if atPrice.GT(ret) {
		spread = atPrice.Sub(ret)
	}

	commission, err = choicetypes.MulFloor(ret, choicetypes.CommissionRate)
	if err != nil {
		return
	}
	inv, err := choicetypes.Inv(choicetypes.CommissionRate)
	if err != nil {
		return
	}
	back, err := choicetypes.MulFloor(commission, inv)
	if err != nil {
		return
	}
	// round the commission up
	if !back.Equal(ret) {
		commission = commission.AddRaw(1)
	}
	ret = ret.Sub(commission)

	if ret, err = choicetypes.ToUint128(ret); err != nil {
		return
	}
	if spread, err = choicetypes.ToUint128(spread); err != nil {
		return
	}
	commission, err = choicetypes.ToUint128(commission)
	return
}

// ComputeOfferAmount is the inverse of ComputeSwap: the offer needed for the
// pair to return askAmount after commission.
func ComputeOfferAmount(offerPool, askPool, askAmount math.Int) (types.ReverseSimulationResponse, error) {
	var res types.ReverseSimulationResponse

	if _, err := choicetypes.ToUint128(askAmount); err != nil {
		return res, err
	}
	cp, err := choicetypes.MulWide(offerPool, askPool)
	if err != nil {
		return res, err
	}

	oneMinusCommission := math.LegacyOneDec().Sub(choicetypes.CommissionRate)
	inv, err := choicetypes.Inv(oneMinusCommission)
	if err != nil {
		return res, err
	}
	beforeCommission, err := choicetypes.MulFloor(askAmount, inv)
	if err != nil {
		return res, err
	}
	back, err := choicetypes.MulFloor(beforeCommission, oneMinusCommission)
	if err != nil {
		return res, err
	}
	if !back.Equal(askAmount) {
		beforeCommission = beforeCommission.AddRaw(1)
	}
	if beforeCommission.GTE(askPool) {
		return res, types.ErrInsufficientLiquidity.Wrapf("ask %s needs %s of a %s pool", askAmount, beforeCommission, askPool)
	}

	afterAskPool := askPool.Sub(beforeCommission)
	afterOfferPool := cp.Quo(afterAskPool)
	if !afterOfferPool.Mul(afterAskPool).Equal(cp) {
		afterOfferPool = afterOfferPool.AddRaw(1)
	}

	offer, err := choicetypes.CheckedSub(afterOfferPool, offerPool)
	if err != nil {
		return res, err
	}

	price, err := choicetypes.Ratio(askPool, offerPool)
	if err != nil {
		return res, err
	}
	atPrice, err := choicetypes.MulFloor(offer, price)
	if err != nil {
		return res, err
	}
	spread := math.ZeroInt()
	if atPrice.GT(beforeCommission) {
		spread = atPrice.Sub(beforeCommission)
	}

	if res.OfferAmount, err = choicetypes.ToUint128(offer); err != nil {
		return res, err
	}
	if res.SpreadAmount, err = choicetypes.ToUint128(spread); err != nil {
		return res, err
	}
	res.CommissionAmount = beforeCommission.Sub(askAmount)
	return res, nil
}

// AssertMaxSpread rejects a trade whose slippage exceeds maxSpread. With a
// belief price the slippage is measured against the expected return at that
// price, otherwise against the pool spread. Amounts of different decimals are
// normalised first.
func AssertMaxSpread(
	beliefPrice, maxSpread *math.LegacyDec,
	offerAmount, returnAmount, spreadAmount math.Int,
	offerDecimals, returnDecimals uint8,
) error {
	if maxSpread == nil {
		return nil
	}

	var err error
	switch {
	case offerDecimals > returnDecimals:
		scale := choicetypes.Pow10(offerDecimals - returnDecimals)
		if returnAmount, err = choicetypes.CheckedMul(returnAmount, scale); err != nil {
			return err
		}
		if spreadAmount, err = choicetypes.CheckedMul(spreadAmount, scale); err != nil {
			return err
		}
	case offerDecimals < returnDecimals:
		scale := choicetypes.Pow10(returnDecimals - offerDecimals)
		if offerAmount, err = choicetypes.CheckedMul(offerAmount, scale); err != nil {
			return err
		}
	}

	if beliefPrice != nil {
		inv, err := choicetypes.Inv(*beliefPrice)
		if err != nil {
			return err
		}
		expected, err := choicetypes.MulFloor(offerAmount, inv)
		if err != nil {
			return err
		}
		if returnAmount.GTE(expected) {
			return nil
		}
		slippage, err := choicetypes.Ratio(expected.Sub(returnAmount), expected)
		if err != nil {
			return err
		}
		if slippage.GT(*maxSpread) {
			return types.ErrMaxSpreadAssertion.Wrapf("expected %s, got %s", expected, returnAmount)
		}
		return nil
	}

	total := returnAmount.Add(spreadAmount)
	if total.IsZero() {
		return nil
	}
	slippage, err := choicetypes.Ratio(spreadAmount, total)
	if err != nil {
		return err
	}
	if slippage.GT(*maxSpread) {
		return types.ErrMaxSpreadAssertion.Wrapf("spread %s of %s", spreadAmount, total)
	}
	return nil
}

// CommissionSplit divides a swap commission between the fee wallet, the burn
// auction and the pool.
type CommissionSplit struct {
	FeeWallet math.Int
	Burn      math.Int
	Pool      math.Int
}

// SplitCommission gives a sixth each to the fee wallet and the burn auction;
// the pool keeps the rest.
func SplitCommission(commission math.Int) CommissionSplit {
	sixth := commission.QuoRaw(6)
	return CommissionSplit{
		FeeWallet: sixth,
		Burn:      sixth,
		Pool:      commission.Sub(sixth).Sub(sixth),
	}
}
