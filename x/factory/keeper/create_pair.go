package keeper

import (
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	"github.com/choice-exchange/choice/x/factory/types"
	pairtypes "github.com/choice-exchange/choice/x/pair/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// nextReplyID hands out the sub-message id a pending pair is staged under.
func nextReplyID(deps wasmtypes.Deps) (uint64, error) {
	seq, _, err := replySequence.MayLoad(deps.Storage)
	if err != nil {
		return 0, err
	}
	seq++
	return seq, replySequence.Save(deps.Storage, seq)
}

// queryDecimals resolves the decimals of an asset: natives from the
// registry, tokens from their token info.
func queryDecimals(deps wasmtypes.Deps, info choicetypes.AssetInfo) (uint8, error) {
	if info.NativeToken != nil {
		decimals, found, err := nativeDecimals.MayLoad(deps.Storage, []byte(info.NativeToken.Denom))
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, types.ErrInvalidAsset.Wrapf("decimals of %s are not registered", info.NativeToken.Denom)
		}
		return decimals, nil
	}
	res, err := choicetypes.QueryTokenInfo(deps.Querier, info.Token.ContractAddr)
	if err != nil {
		return 0, types.ErrInvalidAsset.Wrapf("token info of %s: %s", info, err)
	}
	return res.Decimals, nil
}

func (c Contract) createPair(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, cfg config, assets [2]choicetypes.Asset) (*wasmtypes.Response, error) {
	if assets[0].Info.Equal(assets[1].Info) {
		return nil, types.ErrSameAsset
	}

	var (
		rawAssets [2]choicetypes.AssetRaw
		rawInfos  [2]choicetypes.AssetInfoRaw
		decimals  [2]uint8
		infos     [2]choicetypes.AssetInfo
	)
	for i, asset := range assets {
		if err := asset.Validate(); err != nil {
			return nil, err
		}
		d, err := queryDecimals(deps, asset.Info)
		if err != nil {
			return nil, err
		}
		raw, err := asset.ToRaw()
		if err != nil {
			return nil, err
		}
		rawAssets[i], rawInfos[i], decimals[i], infos[i] = raw, raw.Info, d, asset.Info
	}

	key := choicetypes.PairKey(rawInfos)
	if pairs.Has(deps.Storage, key) {
		return nil, types.ErrPairExists.Wrapf("%s-%s", infos[0], infos[1])
	}

	fee, err := choicetypes.QueryDenomCreationFee(deps.Querier)
	if err != nil {
		return nil, err
	}
	if !info.Funds.IsAllGTE(fee) {
		return nil, types.ErrInsufficientCreationFee.Wrapf("sent %s, need %s", info.Funds, fee)
	}
	// native seed amounts stay with the factory until the reply
	required := totalFunds(fee, assets)
	if !info.Funds.IsAllGTE(required) {
		return nil, types.ErrInsufficientSeedFunds.Wrapf("sent %s, need %s", info.Funds, required)
	}

	id, err := nextReplyID(deps)
	if err != nil {
		return nil, err
	}
	if err := pendingPairs.Save(deps.Storage, types.ReplyKey(id), types.PendingPair{
		PairKey:       key,
		Assets:        rawAssets,
		AssetDecimals: decimals,
		Sender:        info.Sender,
	}); err != nil {
		return nil, err
	}

	instantiate, err := wasmtypes.NewInstantiateMsg(cfg.PairCodeID, env.Contract.Address, types.PairLabel, pairtypes.InstantiateMsg{
		AssetInfos:       infos,
		AssetDecimals:    decimals,
		BurnAddress:      cfg.BurnAddress.String(),
		FeeWalletAddress: cfg.FeeWalletAddress.String(),
	}, fee)
	if err != nil {
		return nil, err
	}

	deps.Logger.Debug("creating pair", "pair", fmt.Sprintf("%s-%s", infos[0], infos[1]), "reply_id", id)

	return wasmtypes.NewResponse().
		AddSubMessage(wasmtypes.SubMsg{ID: id, Msg: instantiate, ReplyOn: wasmtypes.ReplySuccess}).
		AddAttribute("action", "create_pair").
		AddAttribute("pair", fmt.Sprintf("%s-%s", infos[0], infos[1])).
		AddAttribute("reply_id", strconv.FormatUint(id, 10)), nil
}

// Reply registers the pair instantiated for a pending record and seeds it
// with the creator's assets.
func (c Contract) Reply(deps wasmtypes.Deps, env wasmtypes.Env, reply wasmtypes.Reply) (res *wasmtypes.Response, err error) {
	outcome := "created"
	defer func() {
		if err != nil && outcome == "created" {
			outcome = "failed"
		}
		c.metrics.Replies.WithLabelValues(outcome).Inc()
	}()

	replyKey := types.ReplyKey(reply.ID)
	pending, found, err := pendingPairs.MayLoad(deps.Storage, replyKey)
	if err != nil {
		return nil, err
	}
	if !found {
		outcome = "unknown_id"
		return nil, types.ErrInvalidReplyID.Wrapf("id %d", reply.ID)
	}
	if reply.Result.Ok == nil {
		return nil, types.ErrSubMsgFailed.Wrap(reply.Result.Err)
	}
	if len(reply.Result.Ok.MsgResponses) == 0 {
		return nil, types.ErrParseReply.Wrap("no message response")
	}
	instantiated, err := wasmtypes.ParseInstantiateResponse(reply.Result.Ok.MsgResponses[0].Value)
	if err != nil {
		return nil, types.ErrParseReply.Wrap(err.Error())
	}

	var created choicetypes.PairInfo
	if err := deps.Querier.Smart(instantiated.Address, pairtypes.NewPairQuery(), &created); err != nil {
		return nil, err
	}
	pairAddr, err := parseAddr(instantiated.Address)
	if err != nil {
		return nil, err
	}

	cfg, err := configItem.Load(deps.Storage)
	if err != nil {
		return nil, err
	}
	if err := pairs.Save(deps.Storage, pending.PairKey, choicetypes.PairInfoRaw{
		AssetInfos:       [2]choicetypes.AssetInfoRaw{pending.Assets[0].Info, pending.Assets[1].Info},
		ContractAddr:     pairAddr,
		LiquidityToken:   created.LiquidityToken,
		AssetDecimals:    pending.AssetDecimals,
		BurnAddress:      cfg.BurnAddress,
		FeeWalletAddress: cfg.FeeWalletAddress,
	}); err != nil {
		return nil, err
	}
	pendingPairs.Remove(deps.Storage, replyKey)

	res = wasmtypes.NewResponse()
	if !pending.Assets[0].Amount.IsZero() || !pending.Assets[1].Amount.IsZero() {
		msgs, err := seedMsgs(env.Contract.Address, instantiated.Address, pending)
		if err != nil {
			return nil, err
		}
		res.AddMessages(msgs...)
		c.metrics.PairsSeeded.Inc()
	}

	kind := "native_native"
	switch {
	case pending.Assets[0].Info.Token != nil && pending.Assets[1].Info.Token != nil:
		kind = "token_token"
	case pending.Assets[0].Info.Token != nil || pending.Assets[1].Info.Token != nil:
		kind = "native_token"
	}
	c.metrics.PairsCreated.WithLabelValues(kind).Inc()
	deps.Logger.Info("pair created", "pair", instantiated.Address, "liquidity_token", created.LiquidityToken)

	return res.
		AddAttribute("pair_contract_addr", instantiated.Address).
		AddAttribute("liquidity_token_addr", created.LiquidityToken), nil
}

// seedMsgs moves the creator's token seeds into the factory, approves the
// pair to pull them and provides liquidity on the creator's behalf.
func seedMsgs(factory, pair string, pending types.PendingPair) ([]wasmtypes.CosmosMsg, error) {
	var (
		msgs   []wasmtypes.CosmosMsg
		funds  sdk.Coins
		assets [2]choicetypes.Asset
	)
	for i, raw := range pending.Assets {
		asset := raw.ToNormal()
		assets[i] = asset
		if asset.Info.NativeToken != nil {
			if asset.Amount.IsPositive() {
				funds = funds.Add(sdk.NewCoin(asset.Info.NativeToken.Denom, asset.Amount))
			}
			continue
		}
		if !asset.Amount.IsPositive() {
			continue
		}
		token := asset.Info.Token.ContractAddr
		allow, err := wasmtypes.NewExecuteMsg(token, cw20types.ExecuteMsg{
			IncreaseAllowance: &cw20types.IncreaseAllowance{Spender: pair, Amount: asset.Amount},
		}, nil)
		if err != nil {
			return nil, err
		}
		pull, err := wasmtypes.NewExecuteMsg(token, cw20types.ExecuteMsg{
			TransferFrom: &cw20types.TransferFrom{Owner: pending.Sender, Recipient: factory, Amount: asset.Amount},
		}, nil)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, allow, pull)
	}

	receiver := pending.Sender
	provide, err := wasmtypes.NewExecuteMsg(pair, pairtypes.ExecuteMsg{
		ProvideLiquidity: &pairtypes.ProvideLiquidity{Assets: assets, Receiver: &receiver},
	}, funds)
	if err != nil {
		return nil, err
	}
	return append(msgs, provide), nil
}

// totalFunds sums the coins a create pair call must carry.
func totalFunds(fee sdk.Coins, assets [2]choicetypes.Asset) sdk.Coins {
	total := fee
	for _, asset := range assets {
		if asset.Info.NativeToken != nil && asset.Amount.IsPositive() {
			total = total.Add(sdk.NewCoin(asset.Info.NativeToken.Denom, asset.Amount))
		}
	}
	return total
}
