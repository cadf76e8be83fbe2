package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/factory/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

type config struct {
	choicetypes.Ownership
	PairCodeID       uint64         `json:"pair_code_id"`
	BurnAddress      sdk.AccAddress `json:"burn_address"`
	FeeWalletAddress sdk.AccAddress `json:"fee_wallet_address"`
}

var (
	configItem     = wasmtypes.NewItem[config](types.ConfigKey)
	pairs          = wasmtypes.NewMap[choicetypes.PairInfoRaw](types.PairsKey)
	nativeDecimals = wasmtypes.NewMap[uint8](types.NativeDecimalsKey)
	pendingPairs   = wasmtypes.NewMap[types.PendingPair](types.PendingPairsKey)
	replySequence  = wasmtypes.NewItem[uint64](types.ReplySequenceKey)
)

// Contract is the pair registry. It instantiates one pair per unordered asset
// couple and records it once the instantiation reply arrives.
type Contract struct {
	metrics *FactoryMetrics
}

var (
	_ wasmtypes.Contract = Contract{}
	_ wasmtypes.Migrator = Contract{}
	_ wasmtypes.Replier  = Contract{}
)

func NewContract() Contract {
	return Contract{metrics: NewFactoryMetrics()}
}

func (Contract) Instantiate(deps wasmtypes.Deps, _ wasmtypes.Env, info wasmtypes.MessageInfo, raw json.RawMessage) (*wasmtypes.Response, error) {
	var msg types.InstantiateMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}
	owner, err := parseAddr(info.Sender)
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

	if err := configItem.Save(deps.Storage, config{
		Ownership:        choicetypes.Ownership{Owner: owner},
		PairCodeID:       msg.PairCodeID,
		BurnAddress:      burn,
		FeeWalletAddress: feeWallet,
	}); err != nil {
		return nil, err
	}
	if err := choicetypes.SetContractVersion(deps.Storage, types.ContractName, types.ContractVersion); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse(), nil
}

func (c Contract) Execute(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, raw json.RawMessage) (res *wasmtypes.Response, err error) {
	var msg types.ExecuteMsg
	if name, ok := choicetypes.UnitVariant(raw); ok {
		switch name {
		case "accept_ownership":
			msg.AcceptOwnership = &struct{}{}
		case "cancel_ownership_proposal":
			msg.CancelOwnershipProposal = &struct{}{}
		default:
			return nil, wasmtypes.ErrInvalidMsg.Wrapf("unknown factory execute message %q", name)
		}
	} else if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	operation := "unknown"
	defer func() {
		if err != nil {
			codespace, _, _ := errorsmod.ABCIInfo(err, false)
			c.metrics.Rejections.WithLabelValues(operation, codespace).Inc()
		}
	}()

	cfg, err := configItem.Load(deps.Storage)
	if err != nil {
		return nil, err
	}

	switch {
	case msg.CreatePair != nil:
		operation = "create_pair"
		return c.createPair(deps, env, info, cfg, msg.CreatePair.Assets)

	case msg.AddNativeTokenDecimals != nil:
		operation = "add_native_token_decimals"
		m := msg.AddNativeTokenDecimals
		return addNativeTokenDecimals(deps, env, info.Sender, cfg, m.Denom, m.Decimals)

	case msg.UpdateConfig != nil:
		operation = "update_config"
		return updateConfig(deps, info.Sender, cfg, msg.UpdateConfig.Params)

	case msg.MigratePair != nil:
		operation = "migrate_pair"
		return migratePair(info.Sender, cfg, msg.MigratePair)

	case msg.WithdrawNative != nil:
		operation = "withdraw_native"
		return withdrawNative(info.Sender, cfg, msg.WithdrawNative)

	case msg.ProposeNewOwner != nil:
		operation = "propose_new_owner"
		res, err := cfg.Propose(info.Sender, msg.ProposeNewOwner.NewOwner)
		if err != nil {
			return nil, err
		}
		return res, configItem.Save(deps.Storage, cfg)

	case msg.AcceptOwnership != nil:
		operation = "accept_ownership"
		res, err := cfg.Accept(info.Sender)
		if err != nil {
			return nil, err
		}
		return res, configItem.Save(deps.Storage, cfg)

	case msg.CancelOwnershipProposal != nil:
		operation = "cancel_ownership_proposal"
		res, err := cfg.Cancel(info.Sender)
		if err != nil {
			return nil, err
		}
		return res, configItem.Save(deps.Storage, cfg)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown factory execute message")
}

func (Contract) Query(deps wasmtypes.Deps, _ wasmtypes.Env, raw json.RawMessage) ([]byte, error) {
	var msg types.QueryMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	switch {
	case msg.Config != nil:
		res, err := queryConfig(deps)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(res)
	case msg.Pair != nil:
		res, err := queryPair(deps, msg.Pair.AssetInfos)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(res)
	case msg.Pairs != nil:
		res, err := queryPairs(deps, msg.Pairs.StartAfter, msg.Pairs.Limit)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(res)
	case msg.NativeTokenDecimals != nil:
		res, err := queryNativeTokenDecimals(deps, msg.NativeTokenDecimals.Denom)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(res)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown factory query")
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
