package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/choice-exchange/choice/x/auction/types"
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

type config struct {
	choicetypes.Ownership
	AdapterContract       sdk.AccAddress `json:"adapter_contract"`
	BurnAuctionSubaccount string         `json:"burn_auction_subaccount"`
}

var configItem = wasmtypes.NewItem[config](types.ConfigKey)

// Contract relays assets into the burn auction subaccount. Natives are
// deposited into the forwarder's own subaccount and transferred on; tokens
// are first converted into their adapter denom.
type Contract struct{}

var (
	_ wasmtypes.Contract = Contract{}
	_ wasmtypes.Migrator = Contract{}
)

func NewContract() Contract {
	return Contract{}
}

func (Contract) Instantiate(deps wasmtypes.Deps, _ wasmtypes.Env, _ wasmtypes.MessageInfo, raw json.RawMessage) (*wasmtypes.Response, error) {
	var msg types.InstantiateMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}
	owner, err := parseAddr(msg.Owner)
	if err != nil {
		return nil, err
	}
	adapter, err := parseAddr(msg.AdapterContract)
	if err != nil {
		return nil, err
	}
	if err := wasmtypes.ValidateSubaccountID(msg.BurnAuctionSubaccount); err != nil {
		return nil, types.ErrInvalidSubaccount.Wrap(err.Error())
	}

	cfg := config{
		Ownership:             choicetypes.Ownership{Owner: owner},
		AdapterContract:       adapter,
		BurnAuctionSubaccount: msg.BurnAuctionSubaccount,
	}
	if err := configItem.Save(deps.Storage, cfg); err != nil {
		return nil, err
	}
	if err := choicetypes.SetContractVersion(deps.Storage, types.ContractName, types.ContractVersion); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse(), nil
}

func (c Contract) Execute(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, raw json.RawMessage) (*wasmtypes.Response, error) {
	var msg types.ExecuteMsg
	if name, ok := choicetypes.UnitVariant(raw); ok {
		switch name {
		case "accept_ownership":
			msg.AcceptOwnership = &struct{}{}
		case "cancel_ownership_proposal":
			msg.CancelOwnershipProposal = &struct{}{}
		default:
			return nil, wasmtypes.ErrInvalidMsg.Wrapf("unknown forwarder execute message %q", name)
		}
	} else if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	cfg, err := configItem.Load(deps.Storage)
	if err != nil {
		return nil, err
	}

	switch {
	case msg.Receive != nil:
		token := info.Sender
		if _, err := parseAddr(token); err != nil {
			return nil, err
		}
		asset := choicetypes.NewAsset(choicetypes.TokenAssetInfo(token), msg.Receive.Amount)
		res, err := c.forward(cfg, env, info.Funds, asset)
		if err != nil {
			return nil, err
		}
		return res.
			AddAttribute("action", "receive_cw20").
			AddAttribute("sender", msg.Receive.Sender).
			AddAttribute("amount", msg.Receive.Amount.String()), nil

	case msg.SendNative != nil:
		asset := msg.SendNative.Asset
		if !asset.IsNative() {
			return nil, types.ErrNotNative
		}
		res, err := c.forward(cfg, env, info.Funds, asset)
		if err != nil {
			return nil, err
		}
		return res.AddAttribute("action", "send_native"), nil

	case msg.UpdateConfig != nil:
		return c.updateConfig(deps, info.Sender, cfg, msg.UpdateConfig)

	case msg.ProposeNewOwner != nil:
		res, err := cfg.Propose(info.Sender, msg.ProposeNewOwner.NewOwner)
		if err != nil {
			return nil, err
		}
		return res, configItem.Save(deps.Storage, cfg)

	case msg.AcceptOwnership != nil:
		res, err := cfg.Accept(info.Sender)
		if err != nil {
			return nil, err
		}
		return res, configItem.Save(deps.Storage, cfg)

	case msg.CancelOwnershipProposal != nil:
		res, err := cfg.Cancel(info.Sender)
		if err != nil {
			return nil, err
		}
		return res, configItem.Save(deps.Storage, cfg)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown forwarder execute message")
}

// forward builds the messages moving asset into the auction subaccount.
func (Contract) forward(cfg config, env wasmtypes.Env, funds sdk.Coins, asset choicetypes.Asset) (*wasmtypes.Response, error) {
	if asset.Amount.IsNil() || !asset.Amount.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrapf("forward %s", asset)
	}
	self, err := parseAddr(env.Contract.Address)
	if err != nil {
		return nil, err
	}
	subaccount := wasmtypes.SubaccountID(self, types.ForwarderSubaccountNonce)
	res := wasmtypes.NewResponse()

	var denom string
	if asset.Info.NativeToken != nil {
		denom = asset.Info.NativeToken.Denom
		if funds.Empty() {
			return nil, types.ErrNoFunds
		}
		sent := funds.AmountOf(denom)
		if sent.IsZero() {
			return nil, types.ErrDenomMismatch.Wrapf("expected %s, but no matching funds provided", denom)
		}
		if !sent.Equal(asset.Amount) {
			return nil, types.ErrFundsMismatch.Wrapf("expected %s, provided %s", asset.Amount, sent)
		}
	} else {
		token := asset.Info.Token.ContractAddr
		// the adapter mints factory/<adapter>/<token> back to the forwarder
		denom = wasmtypes.FactoryDenom(cfg.AdapterContract.String(), token)
		convert, err := wasmtypes.NewExecuteMsg(token, cw20types.ExecuteMsg{
			Send: &cw20types.Send{Contract: cfg.AdapterContract.String(), Amount: asset.Amount},
		}, nil)
		if err != nil {
			return nil, err
		}
		res.AddMessages(convert)
	}

	coin := sdk.NewCoin(denom, asset.Amount)
	return res.AddMessages(
		wasmtypes.NewDepositMsg(subaccount, coin),
		wasmtypes.NewExternalTransferMsg(subaccount, cfg.BurnAuctionSubaccount, coin),
	), nil
}

func (Contract) updateConfig(deps wasmtypes.Deps, sender string, cfg config, m *types.UpdateConfig) (*wasmtypes.Response, error) {
	if err := cfg.AssertOwner(sender); err != nil {
		return nil, err
	}
	if m.AdapterContract != nil {
		adapter, err := parseAddr(*m.AdapterContract)
		if err != nil {
			return nil, err
		}
		cfg.AdapterContract = adapter
	}
	if m.BurnAuctionSubaccount != nil {
		if err := wasmtypes.ValidateSubaccountID(*m.BurnAuctionSubaccount); err != nil {
			return nil, types.ErrInvalidSubaccount.Wrap(err.Error())
		}
		cfg.BurnAuctionSubaccount = *m.BurnAuctionSubaccount
	}
	if err := configItem.Save(deps.Storage, cfg); err != nil {
		return nil, err
	}
	deps.Logger.Info("forwarder config updated", "adapter", cfg.AdapterContract.String(), "subaccount", cfg.BurnAuctionSubaccount)
	return wasmtypes.NewResponse().
		AddAttribute("action", "update_config").
		AddAttribute("adapter_contract", cfg.AdapterContract.String()).
		AddAttribute("burn_auction_subaccount", cfg.BurnAuctionSubaccount), nil
}

func (Contract) Query(deps wasmtypes.Deps, _ wasmtypes.Env, raw json.RawMessage) ([]byte, error) {
	var msg types.QueryMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}
	if msg.GetConfig == nil {
		return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown forwarder query")
	}
	cfg, err := configItem.Load(deps.Storage)
	if err != nil {
		return nil, err
	}
	res := types.ConfigResponse{
		Owner:                 cfg.Owner.String(),
		AdapterContract:       cfg.AdapterContract.String(),
		BurnAuctionSubaccount: cfg.BurnAuctionSubaccount,
	}
	if !cfg.ProposedOwner.Empty() {
		proposed := cfg.ProposedOwner.String()
		res.ProposedOwner = &proposed
	}
	return wasmtypes.EncodeResponse(res)
}

func (Contract) Migrate(deps wasmtypes.Deps, _ wasmtypes.Env, _ json.RawMessage) (*wasmtypes.Response, error) {
	if err := choicetypes.MigrateVersion(deps.Storage, types.ContractVersion, types.ContractName); err != nil {
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
