package keeper

import (
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	auctiontypes "github.com/choice-exchange/choice/x/auction/types"
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	"github.com/choice-exchange/choice/x/pair/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// sideOf returns the index of info within the pair's assets.
func sideOf(pools [2]choicetypes.Asset, info choicetypes.AssetInfo) (int, error) {
	for i, pool := range pools {
		if pool.Info.Equal(info) {
			return i, nil
		}
	}
	return 0, types.ErrAssetMismatch.Wrapf("%s is not traded by this pair", info)
}

func (c Contract) swap(
	deps wasmtypes.Deps,
	env wasmtypes.Env,
	info wasmtypes.MessageInfo,
	sender string,
	offer choicetypes.Asset,
	beliefPrice, maxSpread *math.LegacyDec,
	to *string,
	deadline *uint64,
) (*wasmtypes.Response, error) {
	if err := AssertDeadline(env.Block.Seconds(), deadline); err != nil {
		return nil, err
	}
	if err := choicetypes.ValidateDecimal("belief_price", beliefPrice); err != nil {
		return nil, err
	}
	if err := choicetypes.ValidateDecimal("max_spread", maxSpread); err != nil {
		return nil, err
	}
	if err := offer.AssertSentNativeTokenBalance(info.Funds); err != nil {
		return nil, err
	}

	receiver := sender
	if to != nil {
		if _, err := parseAddr(*to); err != nil {
			return nil, err
		}
		receiver = *to
	}

	stored, err := pairInfo.Load(deps.Storage)
	if err != nil {
		return nil, err
	}
	pair := stored.ToNormal()
	pools, err := pair.QueryPools(deps.Querier)
	if err != nil {
		return nil, err
	}

	offerIdx, err := sideOf(pools, offer.Info)
	if err != nil {
		return nil, err
	}
	askIdx := 1 - offerIdx

	// the offer is already in the pair's balance
	offerPool, err := choicetypes.CheckedSub(pools[offerIdx].Amount, offer.Amount)
	if err != nil {
		return nil, err
	}
	askPool := pools[askIdx]
	offerDecimals, askDecimals := pair.AssetDecimals[offerIdx], pair.AssetDecimals[askIdx]

	sim, err := ComputeSwap(offerPool, askPool.Amount, offer.Amount, offerDecimals, askDecimals)
	if err != nil {
		return nil, err
	}
	if err := AssertMaxSpread(beliefPrice, maxSpread, offer.Amount, sim.ReturnAmount, sim.SpreadAmount, offerDecimals, askDecimals); err != nil {
		return nil, err
	}

	split := SplitCommission(sim.CommissionAmount)
	res := wasmtypes.NewResponse()

	if sim.ReturnAmount.IsPositive() {
		msg, err := choicetypes.NewAsset(askPool.Info, sim.ReturnAmount).IntoMsg(receiver)
		if err != nil {
			return nil, err
		}
		res.AddMessages(msg)
	}
	if split.Burn.IsPositive() {
		msg, err := burnMsg(pair.BurnAddress, choicetypes.NewAsset(askPool.Info, split.Burn))
		if err != nil {
			return nil, err
		}
		res.AddMessages(msg)
	}
	if split.FeeWallet.IsPositive() {
		msg, err := choicetypes.NewAsset(askPool.Info, split.FeeWallet).IntoMsg(pair.FeeWalletAddress)
		if err != nil {
			return nil, err
		}
		res.AddMessages(msg)
	}

	offerPoolPost, err := choicetypes.CheckedAdd(offerPool, offer.Amount)
	if err != nil {
		return nil, err
	}
	askPoolPost, err := choicetypes.CheckedSub(askPool.Amount, sim.ReturnAmount.Add(split.FeeWallet).Add(split.Burn))
	if err != nil {
		return nil, err
	}

	c.metrics.Swaps.WithLabelValues(pair.ContractAddr, offer.Info.String()).Inc()
	c.metrics.SwapVolume.WithLabelValues(pair.ContractAddr, offer.Info.String()).Add(toFloat(offer.Amount))
	c.metrics.Commissions.WithLabelValues(pair.ContractAddr, askPool.Info.String(), "burn").Add(toFloat(split.Burn))
	c.metrics.Commissions.WithLabelValues(pair.ContractAddr, askPool.Info.String(), "fee_wallet").Add(toFloat(split.FeeWallet))
	c.metrics.Commissions.WithLabelValues(pair.ContractAddr, askPool.Info.String(), "pool").Add(toFloat(split.Pool))

	deps.Logger.Debug("swap",
		"offer", offer.String(),
		"return", sim.ReturnAmount.String(),
		"commission", sim.CommissionAmount.String(),
	)

	return res.
		AddAttribute("action", "swap").
		AddAttribute("sender", sender).
		AddAttribute("receiver", receiver).
		AddAttribute("offer_asset", offer.Info.String()).
		AddAttribute("ask_asset", askPool.Info.String()).
		AddAttribute("offer_amount", offer.Amount.String()).
		AddAttribute("return_amount", sim.ReturnAmount.String()).
		AddAttribute("spread_amount", sim.SpreadAmount.String()).
		AddAttribute("commission_amount", sim.CommissionAmount.String()).
		AddAttribute("burn_amount", split.Burn.String()).
		AddAttribute("fee_wallet_amount", split.FeeWallet.String()).
		AddAttribute("pool_amount", split.Pool.String()).
		AddAttribute("offer_pool_balance", offerPoolPost.String()).
		AddAttribute("ask_pool_balance", askPoolPost.String()), nil
}

// burnMsg forwards the burn share to the burn address: natives through
// SendNative with the funds attached, tokens through a token Send.
func burnMsg(burnAddress string, asset choicetypes.Asset) (wasmtypes.CosmosMsg, error) {
	if asset.Info.NativeToken != nil {
		return wasmtypes.NewExecuteMsg(burnAddress, auctiontypes.ExecuteMsg{
			SendNative: &auctiontypes.SendNative{Asset: asset},
		}, sdk.NewCoins(sdk.NewCoin(asset.Info.NativeToken.Denom, asset.Amount)))
	}
	return wasmtypes.NewExecuteMsg(asset.Info.String(), cw20types.ExecuteMsg{
		Send: &cw20types.Send{Contract: burnAddress, Amount: asset.Amount},
	}, nil)
}

func (c Contract) provideLiquidity(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, m *types.ProvideLiquidity) (*wasmtypes.Response, error) {
	if err := AssertDeadline(env.Block.Seconds(), m.Deadline); err != nil {
		return nil, err
	}
	if err := choicetypes.ValidateDecimal("slippage_tolerance", m.SlippageTolerance); err != nil {
		return nil, err
	}
	for _, asset := range m.Assets {
		if err := asset.Validate(); err != nil {
			return nil, err
		}
		if err := asset.AssertSentNativeTokenBalance(info.Funds); err != nil {
			return nil, err
		}
	}

	receiver := info.Sender
	if m.Receiver != nil {
		if _, err := parseAddr(*m.Receiver); err != nil {
			return nil, err
		}
		receiver = *m.Receiver
	}

	stored, err := pairInfo.Load(deps.Storage)
	if err != nil {
		return nil, err
	}
	pair := stored.ToNormal()
	pools, err := pair.QueryPools(deps.Querier)
	if err != nil {
		return nil, err
	}

	var (
		deposits   [2]math.Int
		reserves   [2]math.Int
		isToken    [2]bool
		depositSet [2]bool
	)
	for _, asset := range m.Assets {
		i, err := sideOf(pools, asset.Info)
		if err != nil {
			return nil, err
		}
		if depositSet[i] {
			return nil, types.ErrAssetMismatch.Wrapf("%s given twice", asset.Info)
		}
		deposits[i], depositSet[i] = asset.Amount, true
	}
	for i, pool := range pools {
		reserves[i] = pool.Amount
		isToken[i] = !pool.IsNative()
		// native deposits are already in the pair's balance
		if pool.IsNative() {
			if reserves[i], err = choicetypes.CheckedSub(pool.Amount, deposits[i]); err != nil {
				return nil, err
			}
		}
	}

	totalShare, err := choicetypes.QueryDenomTotalSupply(deps.Querier, pair.LiquidityToken)
	if err != nil {
		return nil, err
	}

	p, err := ComputeProvision(reserves, deposits, totalShare, isToken, m.SlippageTolerance)
	if err != nil {
		return nil, err
	}

	res := wasmtypes.NewResponse()
	if p.Bootstrap {
		res.AddMessages(wasmtypes.NewMintTokensMsg(pair.LiquidityToken, math.NewInt(types.MinimumLiquidityAmount), pair.ContractAddr))
	}
	var refunds [2]choicetypes.Asset
	for i, pool := range pools {
		refunds[i] = choicetypes.NewAsset(pool.Info, p.Refund[i])
		switch {
		case pool.Info.NativeToken != nil && p.Refund[i].IsPositive():
			res.AddMessages(wasmtypes.NewBankSendMsg(info.Sender, sdk.NewCoin(pool.Info.NativeToken.Denom, p.Refund[i])))
		case pool.Info.Token != nil && p.Desired[i].IsPositive():
			pull, err := wasmtypes.NewExecuteMsg(pool.Info.Token.ContractAddr, cw20types.ExecuteMsg{
				TransferFrom: &cw20types.TransferFrom{
					Owner:     info.Sender,
					Recipient: pair.ContractAddr,
					Amount:    p.Desired[i],
				},
			}, nil)
			if err != nil {
				return nil, err
			}
			res.AddMessages(pull)
		}
	}
	res.AddMessages(wasmtypes.NewMintTokensMsg(pair.LiquidityToken, p.Share, receiver))

	c.metrics.LiquidityProvided.WithLabelValues(pair.ContractAddr, strconv.FormatBool(p.Bootstrap)).Inc()
	deps.Logger.Debug("provided liquidity", "receiver", receiver, "share", p.Share.String(), "bootstrap", p.Bootstrap)

	return res.
		AddAttribute("action", "provide_liquidity").
		AddAttribute("sender", info.Sender).
		AddAttribute("receiver", receiver).
		AddAttribute("assets", fmt.Sprintf("%s, %s", m.Assets[0], m.Assets[1])).
		AddAttribute("share", p.Share.String()).
		AddAttribute("refund_assets", fmt.Sprintf("%s, %s", refunds[0], refunds[1])), nil
}

func (c Contract) withdrawLiquidity(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, m *types.WithdrawLiquidity) (*wasmtypes.Response, error) {
	if err := AssertDeadline(env.Block.Seconds(), m.Deadline); err != nil {
		return nil, err
	}

	stored, err := pairInfo.Load(deps.Storage)
	if err != nil {
		return nil, err
	}
	pair := stored.ToNormal()

	if m.Amount.IsNil() || !m.Amount.IsPositive() || !info.Funds.AmountOf(pair.LiquidityToken).Equal(m.Amount) {
		return nil, types.ErrInvalidLiquidityFunds
	}

	pools, err := pair.QueryPools(deps.Querier)
	if err != nil {
		return nil, err
	}
	totalShare, err := choicetypes.QueryDenomTotalSupply(deps.Querier, pair.LiquidityToken)
	if err != nil {
		return nil, err
	}
	amounts, err := ComputeWithdrawal([2]math.Int{pools[0].Amount, pools[1].Amount}, m.Amount, totalShare)
	if err != nil {
		return nil, err
	}
	refunds := []choicetypes.Asset{
		choicetypes.NewAsset(pools[0].Info, amounts[0]),
		choicetypes.NewAsset(pools[1].Info, amounts[1]),
	}
	if err := AssertMinimumAssets(refunds, m.MinAssets); err != nil {
		return nil, err
	}

	res := wasmtypes.NewResponse()
	for _, refund := range refunds {
		if refund.Amount.IsZero() {
			continue
		}
		msg, err := refund.IntoMsg(info.Sender)
		if err != nil {
			return nil, err
		}
		res.AddMessages(msg)
	}
	res.AddMessages(wasmtypes.NewBurnTokensMsg(pair.LiquidityToken, m.Amount))

	c.metrics.LiquidityWithdrawn.WithLabelValues(pair.ContractAddr).Inc()
	deps.Logger.Debug("withdrew liquidity", "sender", info.Sender, "share", m.Amount.String())

	return res.
		AddAttribute("action", "withdraw_liquidity").
		AddAttribute("sender", info.Sender).
		AddAttribute("withdrawn_share", m.Amount.String()).
		AddAttribute("refund_assets", fmt.Sprintf("%s, %s", refunds[0], refunds[1])), nil
}
