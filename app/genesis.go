package app

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	auctiontypes "github.com/choice-exchange/choice/x/auction/types"
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	factorytypes "github.com/choice-exchange/choice/x/factory/types"
	routertypes "github.com/choice-exchange/choice/x/router/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// burnSubaccountNonce is the owner subaccount the burn share lands in by default.
const burnSubaccountNonce = 1

// deploy writes the genesis state: host params, balances, the protocol
// contracts, tokens, native decimals and pairs, in that order.
func (a *ChoiceApp) deploy(g GenesisConfig) error {
	ctx := a.ctx
	a.owner = sdk.MustAccAddressFromBech32(g.Owner)

	fee, err := sdk.ParseCoinsNormalized(g.DenomCreationFee)
	if err != nil {
		return err
	}
	params := a.keeper.GetParams(ctx)
	params.DenomCreationFee = fee
	if err := a.keeper.SetParams(ctx, params); err != nil {
		return err
	}

	for _, acc := range g.Accounts {
		coins, err := sdk.ParseCoinsNormalized(acc.Coins)
		if err != nil {
			return err
		}
		if err := a.keeper.MintCoins(ctx, sdk.MustAccAddressFromBech32(acc.Address), coins); err != nil {
			return fmt.Errorf("fund %s: %w", acc.Address, err)
		}
	}

	burnSubaccount := g.BurnSubaccount
	if burnSubaccount == "" {
		burnSubaccount = wasmtypes.SubaccountID(a.owner, burnSubaccountNonce)
	}

	if a.adapter, err = a.instantiate(a.codes.Adapter, cw20types.AdapterInstantiateMsg{}, "token-adapter"); err != nil {
		return err
	}
	if a.forwarder, err = a.instantiate(a.codes.Forwarder, auctiontypes.InstantiateMsg{
		Owner:                 g.Owner,
		AdapterContract:       a.adapter.String(),
		BurnAuctionSubaccount: burnSubaccount,
	}, "send-to-auction"); err != nil {
		return err
	}
	if a.factory, err = a.instantiate(a.codes.Factory, factorytypes.InstantiateMsg{
		PairCodeID:       a.codes.Pair,
		BurnAddress:      a.forwarder.String(),
		FeeWalletAddress: g.FeeWallet,
	}, "choice-factory"); err != nil {
		return err
	}
	if a.router, err = a.instantiate(a.codes.Router, routertypes.InstantiateMsg{
		ChoiceFactory: a.factory.String(),
	}, "choice-router"); err != nil {
		return err
	}

	for _, token := range g.Tokens {
		if err := a.deployToken(token); err != nil {
			return fmt.Errorf("token %s: %w", token.Symbol, err)
		}
	}

	for _, nd := range g.NativeDecimals {
		if err := a.registerNativeDecimals(nd); err != nil {
			return fmt.Errorf("native decimals %s: %w", nd.Denom, err)
		}
	}

	for i, pair := range g.Pairs {
		if err := a.createPair(pair, fee); err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}
	}
	return nil
}

func (a *ChoiceApp) instantiate(codeID uint64, msg any, label string) (sdk.AccAddress, error) {
	bz, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	addr, _, err := a.keeper.Instantiate(a.ctx, codeID, a.owner, a.owner, bz, label, nil)
	if err != nil {
		return nil, fmt.Errorf("instantiate %s: %w", label, err)
	}
	a.logger.Debug("instantiated contract", "label", label, "address", addr.String(), "code_id", codeID)
	return addr, nil
}

func (a *ChoiceApp) deployToken(token GenesisToken) error {
	balances := make([]cw20types.Balance, 0, len(token.Balances))
	for _, bal := range token.Balances {
		amount, err := parseGenesisAmount(bal.Amount)
		if err != nil {
			return err
		}
		balances = append(balances, cw20types.Balance{Address: bal.Address, Amount: amount})
	}

	name := token.Name
	if name == "" {
		name = token.Symbol
	}
	bz, err := json.Marshal(cw20types.InstantiateMsg{
		Name:            name,
		Symbol:          token.Symbol,
		Decimals:        token.Decimals,
		InitialBalances: balances,
	})
	if err != nil {
		return err
	}
	addr, _, err := a.keeper.Instantiate(a.ctx, a.codes.Token, a.owner, nil, bz, token.Symbol, nil)
	if err != nil {
		return err
	}
	a.tokens[token.Symbol] = addr
	return nil
}

// registerNativeDecimals gives the factory the unit of the denom its
// verification needs, then registers the decimals as the owner.
func (a *ChoiceApp) registerNativeDecimals(nd GenesisNativeDecimal) error {
	if err := a.keeper.MintCoins(a.ctx, a.factory, sdk.NewCoins(sdk.NewCoin(nd.Denom, math.OneInt()))); err != nil {
		return err
	}
	bz, err := json.Marshal(factorytypes.ExecuteMsg{
		AddNativeTokenDecimals: &factorytypes.AddNativeTokenDecimals{Denom: nd.Denom, Decimals: nd.Decimals},
	})
	if err != nil {
		return err
	}
	_, err = a.execute(a.owner, a.factory, bz, nil)
	return err
}

// resolveAsset reads a genesis asset string: a token symbol, a token
// address, or a native denom.
func (a *ChoiceApp) resolveAsset(s string) choicetypes.AssetInfo {
	if addr, ok := a.tokens[s]; ok {
		return choicetypes.TokenAssetInfo(addr.String())
	}
	if _, err := sdk.AccAddressFromBech32(s); err == nil {
		return choicetypes.TokenAssetInfo(s)
	}
	return choicetypes.NativeAssetInfo(s)
}

// createPair approves the factory for the token seeds, then creates the
// pair with the creation fee and the native seeds attached.
func (a *ChoiceApp) createPair(pair GenesisPair, fee sdk.Coins) error {
	creator := a.owner
	if pair.Creator != "" {
		creator = sdk.MustAccAddressFromBech32(pair.Creator)
	}

	var assets [2]choicetypes.Asset
	funds := fee
	for i, ga := range pair.Assets {
		amount, err := parseGenesisAmount(ga.Amount)
		if err != nil {
			return err
		}
		assets[i] = choicetypes.NewAsset(a.resolveAsset(ga.Asset), amount)
		if !amount.IsPositive() {
			continue
		}

		if assets[i].IsNative() {
			funds = funds.Add(sdk.NewCoin(assets[i].Info.NativeToken.Denom, amount))
			continue
		}
		token := sdk.MustAccAddressFromBech32(assets[i].Info.Token.ContractAddr)
		approve, err := json.Marshal(cw20types.ExecuteMsg{
			IncreaseAllowance: &cw20types.IncreaseAllowance{Spender: a.factory.String(), Amount: amount},
		})
		if err != nil {
			return err
		}
		if _, err := a.execute(creator, token, approve, nil); err != nil {
			return fmt.Errorf("approve factory: %w", err)
		}
	}

	msg, err := json.Marshal(factorytypes.ExecuteMsg{CreatePair: &factorytypes.CreatePair{Assets: assets}})
	if err != nil {
		return err
	}
	if _, err := a.execute(creator, a.factory, msg, funds); err != nil {
		return err
	}

	query, err := json.Marshal(factorytypes.NewPairQuery([2]choicetypes.AssetInfo{assets[0].Info, assets[1].Info}))
	if err != nil {
		return err
	}
	bz, err := a.keeper.QuerySmart(a.ctx, a.factory, query)
	if err != nil {
		return err
	}
	var info choicetypes.PairInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return err
	}
	a.pairs = append(a.pairs, sdk.MustAccAddressFromBech32(info.ContractAddr))

	a.logger.Info("created pair",
		"pair", fmt.Sprintf("%s-%s", info.AssetInfos[0], info.AssetInfos[1]),
		"contract", info.ContractAddr,
		"liquidity_token", info.LiquidityToken,
	)
	return nil
}
