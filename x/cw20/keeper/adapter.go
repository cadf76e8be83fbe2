package keeper

import (
	"encoding/json"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/cw20/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

var registeredTokens = wasmtypes.NewMap[bool](types.AdapterDenomKey)

// Adapter bridges contract tokens into token factory denoms. Each token gets
// factory/<adapter>/<token address>, minted one to one against tokens the
// adapter holds.
type Adapter struct{}

var (
	_ wasmtypes.Contract = Adapter{}
	_ wasmtypes.Migrator = Adapter{}
)

func NewAdapter() Adapter {
	return Adapter{}
}

func (Adapter) Instantiate(deps wasmtypes.Deps, _ wasmtypes.Env, _ wasmtypes.MessageInfo, _ json.RawMessage) (*wasmtypes.Response, error) {
	if err := choicetypes.SetContractVersion(deps.Storage, types.AdapterContractName, types.AdapterVersion); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse(), nil
}

func (a Adapter) Execute(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, raw json.RawMessage) (*wasmtypes.Response, error) {
	var msg types.AdapterExecuteMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	switch {
	case msg.Receive != nil:
		// the caller is the token contract itself
		return a.receive(deps, env, info.Sender, msg.Receive)
	case msg.RegisterCw20Contract != nil:
		res := wasmtypes.NewResponse()
		token, err := parseAddr(msg.RegisterCw20Contract.Addr)
		if err != nil {
			return nil, err
		}
		if registeredTokens.Has(deps.Storage, token) {
			return nil, types.ErrInvalidTokenInfo.Wrapf("%s already registered", token)
		}
		if err := a.register(deps, env, token, res); err != nil {
			return nil, err
		}
		return res, nil
	case msg.RedeemAndTransfer != nil:
		recipient := info.Sender
		if msg.RedeemAndTransfer.Recipient != nil {
			recipient = *msg.RedeemAndTransfer.Recipient
		}
		return a.redeem(deps, env, info.Funds, recipient)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown adapter execute message")
}

func (a Adapter) receive(deps wasmtypes.Deps, env wasmtypes.Env, tokenAddr string, msg *types.ReceiveMsg) (*wasmtypes.Response, error) {
	token, err := parseAddr(tokenAddr)
	if err != nil {
		return nil, err
	}
	if err := assertPositive(msg.Amount); err != nil {
		return nil, err
	}
	if _, err := parseAddr(msg.Sender); err != nil {
		return nil, err
	}

	res := wasmtypes.NewResponse()
	if !registeredTokens.Has(deps.Storage, token) {
		if err := a.register(deps, env, token, res); err != nil {
			return nil, err
		}
	}

	denom := wasmtypes.FactoryDenom(env.Contract.Address, token.String())
	res.AddMessages(wasmtypes.NewMintTokensMsg(denom, msg.Amount, msg.Sender))
	return res.
		AddAttribute("action", "receive").
		AddAttribute("denom", denom).
		AddAttribute("recipient", msg.Sender).
		AddAttribute("amount", msg.Amount.String()), nil
}

// register creates the factory denom of token, paying the creation fee from
// the adapter's own balance.
func (Adapter) register(deps wasmtypes.Deps, env wasmtypes.Env, token sdk.AccAddress, res *wasmtypes.Response) error {
	tokenInfo, err := choicetypes.QueryTokenInfo(deps.Querier, token.String())
	if err != nil {
		return types.ErrInvalidTokenInfo.Wrapf("%s is not a token contract: %s", token, err)
	}

	fee, err := choicetypes.QueryDenomCreationFee(deps.Querier)
	if err != nil {
		return err
	}
	for _, coin := range fee {
		bal, err := choicetypes.QueryBalance(deps.Querier, env.Contract.Address, coin.Denom)
		if err != nil {
			return err
		}
		if bal.LT(coin.Amount) {
			return types.ErrInsufficientFunds.Wrapf("adapter cannot pay denom creation fee %s", fee)
		}
	}

	if err := registeredTokens.Save(deps.Storage, token, true); err != nil {
		return err
	}
	denom := wasmtypes.FactoryDenom(env.Contract.Address, token.String())
	res.AddMessages(
		wasmtypes.NewCreateDenomMsg(token.String()),
		wasmtypes.NewSetMetadataMsg(denom, tokenInfo.Name, tokenInfo.Symbol, tokenInfo.Decimals),
	)
	res.AddAttribute("registered_token", token.String())
	deps.Logger.Debug("registered token", "token", token.String(), "denom", denom)
	return nil
}

func (Adapter) redeem(deps wasmtypes.Deps, env wasmtypes.Env, funds sdk.Coins, recipient string) (*wasmtypes.Response, error) {
	if len(funds) != 1 {
		return nil, types.ErrInvalidZeroAmount.Wrap("attach exactly one adapter denom")
	}
	coin := funds[0]

	prefix := wasmtypes.FactoryDenom(env.Contract.Address, "")
	tokenAddr, ok := strings.CutPrefix(coin.Denom, prefix)
	if !ok {
		return nil, types.ErrUnauthorized.Wrapf("%s is not an adapter denom", coin.Denom)
	}
	token, err := parseAddr(tokenAddr)
	if err != nil {
		return nil, err
	}
	if !registeredTokens.Has(deps.Storage, token) {
		return nil, types.ErrInvalidTokenInfo.Wrapf("%s is not registered", token)
	}
	if _, err := parseAddr(recipient); err != nil {
		return nil, err
	}

	release, err := wasmtypes.NewExecuteMsg(token.String(), types.ExecuteMsg{
		Transfer: &types.Transfer{Recipient: recipient, Amount: coin.Amount},
	}, nil)
	if err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().
		AddMessages(wasmtypes.NewBurnTokensMsg(coin.Denom, coin.Amount), release).
		AddAttribute("action", "redeem_and_transfer").
		AddAttribute("recipient", recipient).
		AddAttribute("amount", coin.String()), nil
}

func (Adapter) Query(deps wasmtypes.Deps, _ wasmtypes.Env, raw json.RawMessage) ([]byte, error) {
	var msg types.AdapterQueryMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	switch {
	case msg.RegisteredContracts != nil:
		tokens := []string{}
		err := registeredTokens.Range(deps.Storage, nil, 0, func(key []byte, _ bool) error {
			tokens = append(tokens, sdk.AccAddress(key).String())
			return nil
		})
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(tokens)
	case msg.NewDenomFee != nil:
		fee, err := choicetypes.QueryDenomCreationFee(deps.Querier)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(fee)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown adapter query")
}

func (Adapter) Migrate(deps wasmtypes.Deps, _ wasmtypes.Env, _ json.RawMessage) (*wasmtypes.Response, error) {
	if err := choicetypes.MigrateVersion(deps.Storage, types.AdapterVersion, types.AdapterContractName); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse(), nil
}
