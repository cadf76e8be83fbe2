package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/pair/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

var pairInfo = wasmtypes.NewItem[choicetypes.PairInfoRaw](types.PairInfoKey)

// Contract is the constant product pair code. Reserves are never stored; each
// operation reads the pair's live balances.
type Contract struct {
	metrics *PairMetrics
}

var (
	_ wasmtypes.Contract = Contract{}
	_ wasmtypes.Migrator = Contract{}
)

func NewContract() Contract {
	return Contract{metrics: NewPairMetrics()}
}

func (Contract) Instantiate(deps wasmtypes.Deps, env wasmtypes.Env, _ wasmtypes.MessageInfo, raw json.RawMessage) (*wasmtypes.Response, error) {
	var msg types.InstantiateMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}
	if msg.AssetInfos[0].Equal(msg.AssetInfos[1]) {
		return nil, choicetypes.ErrInvalidAsset.Wrap("pair assets must differ")
	}
	for _, d := range msg.AssetDecimals {
		if d > types.MaxDecimals {
			return nil, choicetypes.ErrInvalidAsset.Wrapf("decimals %d above %d", d, types.MaxDecimals)
		}
	}

	var infos [2]choicetypes.AssetInfoRaw
	for i, info := range msg.AssetInfos {
		rawInfo, err := info.ToRaw()
		if err != nil {
			return nil, err
		}
		infos[i] = rawInfo
	}
	self, err := parseAddr(env.Contract.Address)
	if err != nil {
		return nil, err
	}
	burn, err := parseAddr(msg.BurnAddress)
	if err != nil {
		return nil, err
	}
	feeWallet, err := parseAddr(msg.FeeWalletAddress)
	if err != nil {
		return nil, err
	}

	lpDenom := wasmtypes.FactoryDenom(env.Contract.Address, types.LPSubdenom)
	if err := pairInfo.Save(deps.Storage, choicetypes.PairInfoRaw{
		AssetInfos:       infos,
		ContractAddr:     self,
		LiquidityToken:   lpDenom,
		AssetDecimals:    msg.AssetDecimals,
		BurnAddress:      burn,
		FeeWalletAddress: feeWallet,
	}); err != nil {
		return nil, err
	}
	if err := choicetypes.SetContractVersion(deps.Storage, types.ContractName, types.ContractVersion); err != nil {
		return nil, err
	}

	return wasmtypes.NewResponse().
		AddMessages(
			wasmtypes.NewCreateDenomMsg(types.LPSubdenom),
			wasmtypes.NewSetMetadataMsg(lpDenom, types.LPName, types.LPSymbol, types.LPDecimals),
		).
		AddAttribute("lp_denom", lpDenom), nil
}

func (c Contract) Execute(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, raw json.RawMessage) (res *wasmtypes.Response, err error) {
	var msg types.ExecuteMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	operation := "unknown"
	defer func() {
		if err != nil {
			codespace, _, _ := errorsmod.ABCIInfo(err, false)
			c.metrics.Rejections.WithLabelValues(operation, codespace).Inc()
		}
	}()

	switch {
	case msg.Receive != nil:
		operation = "receive"
		return c.receive(deps, env, info, msg.Receive.Sender, msg.Receive.Amount, msg.Receive.Msg)

	case msg.ProvideLiquidity != nil:
		operation = "provide_liquidity"
		return c.provideLiquidity(deps, env, info, msg.ProvideLiquidity)

	case msg.WithdrawLiquidity != nil:
		operation = "withdraw_liquidity"
		return c.withdrawLiquidity(deps, env, info, msg.WithdrawLiquidity)

	case msg.Swap != nil:
		operation = "swap"
		m := msg.Swap
		// token offers must arrive through the token's own Receive hook
		if !m.OfferAsset.IsNative() {
			return nil, types.ErrUnauthorized.Wrap("token offer must be sent through the token contract")
		}
		if err := m.OfferAsset.Validate(); err != nil {
			return nil, err
		}
		return c.swap(deps, env, info, info.Sender, m.OfferAsset, m.BeliefPrice, m.MaxSpread, m.To, m.Deadline)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown pair execute message")
}

// receive handles a token Send to the pair. Only the pair's own token
// contracts may call it.
func (c Contract) receive(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, sender string, amount math.Int, hook []byte) (*wasmtypes.Response, error) {
	var msg types.Cw20HookMsg
	if err := wasmtypes.DecodeMsg(hook, &msg); err != nil {
		return nil, err
	}
	if msg.Swap == nil {
		return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown pair hook message")
	}

	stored, err := pairInfo.Load(deps.Storage)
	if err != nil {
		return nil, err
	}
	authorized := false
	for _, assetInfo := range stored.AssetInfos {
		if assetInfo.Token != nil && assetInfo.Token.ContractAddr.String() == info.Sender {
			authorized = true
			break
		}
	}
	if !authorized {
		return nil, types.ErrUnauthorized.Wrapf("%s is not a pair token", info.Sender)
	}

	offer := choicetypes.NewAsset(choicetypes.TokenAssetInfo(info.Sender), amount)
	if err := offer.Validate(); err != nil {
		return nil, err
	}
	hookMsg := msg.Swap
	return c.swap(deps, env, info, sender, offer, hookMsg.BeliefPrice, hookMsg.MaxSpread, hookMsg.To, hookMsg.Deadline)
}

func (Contract) Query(deps wasmtypes.Deps, _ wasmtypes.Env, raw json.RawMessage) ([]byte, error) {
	var msg types.QueryMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	switch {
	case msg.Pair != nil:
		stored, err := pairInfo.Load(deps.Storage)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(stored.ToNormal())
	case msg.Pool != nil:
		res, err := queryPool(deps)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(res)
	case msg.Simulation != nil:
		res, err := querySimulation(deps, msg.Simulation.OfferAsset)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(res)
	case msg.ReverseSimulation != nil:
		res, err := queryReverseSimulation(deps, msg.ReverseSimulation.AskAsset)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(res)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown pair query")
}

func (Contract) Migrate(deps wasmtypes.Deps, _ wasmtypes.Env, _ json.RawMessage) (*wasmtypes.Response, error) {
	if err := choicetypes.MigrateVersion(deps.Storage, types.MigrateTargetVersion, types.ContractName); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse(), nil
}

func parseAddr(bech string) (sdk.AccAddress, error) {
	addr, err := sdk.AccAddressFromBech32(bech)
	if err != nil {
		return nil, choicetypes.ErrInvalidAddress.Wrapf("%q: %s", bech, err)
	}
	return addr, nil
}

func toFloat(x math.Int) float64 {
	f, err := x.ToLegacyDec().Float64()
	if err != nil {
		return 0
	}
	return f
}
