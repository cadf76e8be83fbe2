package keeper

import (
	"encoding/json"
	"regexp"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/cw20/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

var symbolPattern = regexp.MustCompile(`^[a-zA-Z\-]{3,12}$`)

// Contract is the fungible token code.
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
	if len(msg.Name) < 3 || len(msg.Name) > 50 {
		return nil, types.ErrInvalidTokenInfo.Wrap("name is not in the expected format (3-50 UTF-8 bytes)")
	}
	if !symbolPattern.MatchString(msg.Symbol) {
		return nil, types.ErrInvalidTokenInfo.Wrap("ticker symbol is not in expected format [a-zA-Z\\-]{3,12}")
	}
	if msg.Decimals > 18 {
		return nil, types.ErrInvalidTokenInfo.Wrap("decimals must not exceed 18")
	}

	seen := make(map[string]struct{}, len(msg.InitialBalances))
	total := math.ZeroInt()
	for _, b := range msg.InitialBalances {
		addr, err := parseAddr(b.Address)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[addr.String()]; dup {
			return nil, types.ErrDuplicateBalance.Wrap(b.Address)
		}
		seen[addr.String()] = struct{}{}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return nil, types.ErrInvalidTokenInfo.Wrapf("initial balance of %s", b.Address)
		}
		if total, err = choicetypes.CheckedAdd(total, b.Amount); err != nil {
			return nil, err
		}
		if err := saveBalance(deps.Storage, addr, b.Amount); err != nil {
			return nil, err
		}
	}

	state := tokenState{Name: msg.Name, Symbol: msg.Symbol, Decimals: msg.Decimals, TotalSupply: total}
	if msg.Mint != nil {
		minter, err := parseAddr(msg.Mint.Minter)
		if err != nil {
			return nil, err
		}
		if msg.Mint.Cap != nil && total.GT(*msg.Mint.Cap) {
			return nil, types.ErrInvalidTokenInfo.Wrap("initial supply greater than cap")
		}
		state.Mint = &types.MinterResponse{Minter: minter.String(), Cap: msg.Mint.Cap}
	}
	if err := tokenInfo.Save(deps.Storage, state); err != nil {
		return nil, err
	}
	if err := choicetypes.SetContractVersion(deps.Storage, types.ContractName, types.ContractVersion); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse(), nil
}

func (c Contract) Execute(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, raw json.RawMessage) (*wasmtypes.Response, error) {
	var msg types.ExecuteMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}
	sender, err := parseAddr(info.Sender)
	if err != nil {
		return nil, err
	}

	switch {
	case msg.Transfer != nil:
		return c.transfer(deps, sender, msg.Transfer.Recipient, msg.Transfer.Amount)
	case msg.Burn != nil:
		return c.burn(deps, sender, msg.Burn.Amount)
	case msg.Send != nil:
		return c.send(deps, sender, msg.Send.Contract, msg.Send.Amount, msg.Send.Msg)
	case msg.IncreaseAllowance != nil:
		m := msg.IncreaseAllowance
		return c.changeAllowance(deps, env, sender, m.Spender, m.Amount, m.Expires, true)
	case msg.DecreaseAllowance != nil:
		m := msg.DecreaseAllowance
		return c.changeAllowance(deps, env, sender, m.Spender, m.Amount, m.Expires, false)
	case msg.TransferFrom != nil:
		return c.transferFrom(deps, env, sender, msg.TransferFrom)
	case msg.SendFrom != nil:
		return c.sendFrom(deps, env, sender, msg.SendFrom)
	case msg.BurnFrom != nil:
		return c.burnFrom(deps, env, sender, msg.BurnFrom)
	case msg.Mint != nil:
		return c.mint(deps, sender, msg.Mint.Recipient, msg.Mint.Amount)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown token execute message")
}

func (Contract) Query(deps wasmtypes.Deps, _ wasmtypes.Env, raw json.RawMessage) ([]byte, error) {
	var msg types.QueryMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	switch {
	case msg.Balance != nil:
		addr, err := parseAddr(msg.Balance.Address)
		if err != nil {
			return nil, err
		}
		bal, err := loadBalance(deps.Storage, addr)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(types.BalanceResponse{Balance: bal})

	case msg.TokenInfo != nil:
		state, err := tokenInfo.Load(deps.Storage)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(types.TokenInfoResponse{
			Name:        state.Name,
			Symbol:      state.Symbol,
			Decimals:    state.Decimals,
			TotalSupply: state.TotalSupply,
		})

	case msg.Allowance != nil:
		owner, err := parseAddr(msg.Allowance.Owner)
		if err != nil {
			return nil, err
		}
		spender, err := parseAddr(msg.Allowance.Spender)
		if err != nil {
			return nil, err
		}
		a, err := loadAllowance(deps.Storage, owner, spender)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(types.AllowanceResponse{Allowance: a.Amount, Expires: a.Expires})

	case msg.Minter != nil:
		state, err := tokenInfo.Load(deps.Storage)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(state.Mint)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown token query")
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
