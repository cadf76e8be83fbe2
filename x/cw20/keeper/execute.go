package keeper

import (
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/cw20/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

func (Contract) transfer(deps wasmtypes.Deps, sender sdk.AccAddress, recipient string, amount math.Int) (*wasmtypes.Response, error) {
	to, err := parseAddr(recipient)
	if err != nil {
		return nil, err
	}
	if err := move(deps.Storage, sender, to, amount); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().
		AddAttribute("action", "transfer").
		AddAttribute("from", sender.String()).
		AddAttribute("to", to.String()).
		AddAttribute("amount", amount.String()), nil
}

func (Contract) burn(deps wasmtypes.Deps, sender sdk.AccAddress, amount math.Int) (*wasmtypes.Response, error) {
	if err := destroy(deps.Storage, sender, amount); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().
		AddAttribute("action", "burn").
		AddAttribute("from", sender.String()).
		AddAttribute("amount", amount.String()), nil
}

func (Contract) send(deps wasmtypes.Deps, sender sdk.AccAddress, contract string, amount math.Int, hook []byte) (*wasmtypes.Response, error) {
	to, err := parseAddr(contract)
	if err != nil {
		return nil, err
	}
	if err := move(deps.Storage, sender, to, amount); err != nil {
		return nil, err
	}
	receive, err := receiveMsg(to.String(), sender.String(), amount, hook)
	if err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().
		AddAttribute("action", "send").
		AddAttribute("from", sender.String()).
		AddAttribute("to", to.String()).
		AddAttribute("amount", amount.String()).
		AddMessages(receive), nil
}

func (Contract) changeAllowance(
	deps wasmtypes.Deps,
	env wasmtypes.Env,
	owner sdk.AccAddress,
	spender string,
	amount math.Int,
	expires *types.Expiration,
	increase bool,
) (*wasmtypes.Response, error) {
	spenderAddr, err := parseAddr(spender)
	if err != nil {
		return nil, err
	}
	if spenderAddr.Equals(owner) {
		return nil, types.ErrCannotSetOwnAccount
	}
	if amount.IsNil() || amount.IsNegative() {
		return nil, types.ErrInvalidZeroAmount.Wrap("allowance amount must be non-negative")
	}

	current, err := loadAllowance(deps.Storage, owner, spenderAddr)
	if err != nil {
		return nil, err
	}
	if expires != nil {
		if expires.IsExpired(env.Block.Height, env.Block.Seconds()) {
			return nil, types.ErrInvalidExpiration
		}
		current.Expires = expires
	}

	action := "increase_allowance"
	if increase {
		if current.Amount, err = choicetypes.CheckedAdd(current.Amount, amount); err != nil {
			return nil, err
		}
	} else {
		action = "decrease_allowance"
		if current.Amount.LTE(amount) {
			current.Amount = math.ZeroInt()
		} else {
			current.Amount = current.Amount.Sub(amount)
		}
	}

	key := allowanceKey(owner, spenderAddr)
	if current.Amount.IsZero() {
		allowances.Remove(deps.Storage, key)
	} else if err := allowances.Save(deps.Storage, key, current); err != nil {
		return nil, err
	}

	return wasmtypes.NewResponse().
		AddAttribute("action", action).
		AddAttribute("owner", owner.String()).
		AddAttribute("spender", spenderAddr.String()).
		AddAttribute("amount", amount.String()), nil
}

func (Contract) transferFrom(deps wasmtypes.Deps, env wasmtypes.Env, spender sdk.AccAddress, m *types.TransferFrom) (*wasmtypes.Response, error) {
	owner, err := parseAddr(m.Owner)
	if err != nil {
		return nil, err
	}
	to, err := parseAddr(m.Recipient)
	if err != nil {
		return nil, err
	}
	if err := deductAllowance(deps.Storage, env, owner, spender, m.Amount); err != nil {
		return nil, err
	}
	if err := move(deps.Storage, owner, to, m.Amount); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().
		AddAttribute("action", "transfer_from").
		AddAttribute("from", owner.String()).
		AddAttribute("to", to.String()).
		AddAttribute("by", spender.String()).
		AddAttribute("amount", m.Amount.String()), nil
}

func (Contract) sendFrom(deps wasmtypes.Deps, env wasmtypes.Env, spender sdk.AccAddress, m *types.SendFrom) (*wasmtypes.Response, error) {
	owner, err := parseAddr(m.Owner)
	if err != nil {
		return nil, err
	}
	to, err := parseAddr(m.Contract)
	if err != nil {
		return nil, err
	}
	if err := deductAllowance(deps.Storage, env, owner, spender, m.Amount); err != nil {
		return nil, err
	}
	if err := move(deps.Storage, owner, to, m.Amount); err != nil {
		return nil, err
	}
	receive, err := receiveMsg(to.String(), spender.String(), m.Amount, m.Msg)
	if err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().
		AddAttribute("action", "send_from").
		AddAttribute("from", owner.String()).
		AddAttribute("to", to.String()).
		AddAttribute("by", spender.String()).
		AddAttribute("amount", m.Amount.String()).
		AddMessages(receive), nil
}

func (Contract) burnFrom(deps wasmtypes.Deps, env wasmtypes.Env, spender sdk.AccAddress, m *types.BurnFrom) (*wasmtypes.Response, error) {
	owner, err := parseAddr(m.Owner)
	if err != nil {
		return nil, err
	}
	if err := deductAllowance(deps.Storage, env, owner, spender, m.Amount); err != nil {
		return nil, err
	}
	if err := destroy(deps.Storage, owner, m.Amount); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().
		AddAttribute("action", "burn_from").
		AddAttribute("from", owner.String()).
		AddAttribute("by", spender.String()).
		AddAttribute("amount", m.Amount.String()), nil
}

func (Contract) mint(deps wasmtypes.Deps, sender sdk.AccAddress, recipient string, amount math.Int) (*wasmtypes.Response, error) {
	if err := assertPositive(amount); err != nil {
		return nil, err
	}
	state, err := tokenInfo.Load(deps.Storage)
	if err != nil {
		return nil, err
	}
	if state.Mint == nil || state.Mint.Minter != sender.String() {
		return nil, types.ErrUnauthorized.Wrapf("%s is not the minter", sender)
	}

	supply, err := choicetypes.CheckedAdd(state.TotalSupply, amount)
	if err != nil {
		return nil, err
	}
	if state.Mint.Cap != nil && supply.GT(*state.Mint.Cap) {
		return nil, types.ErrCannotExceedCap
	}
	to, err := parseAddr(recipient)
	if err != nil {
		return nil, err
	}

	state.TotalSupply = supply
	if err := tokenInfo.Save(deps.Storage, state); err != nil {
		return nil, err
	}
	bal, err := loadBalance(deps.Storage, to)
	if err != nil {
		return nil, err
	}
	if err := saveBalance(deps.Storage, to, bal.Add(amount)); err != nil {
		return nil, err
	}
	deps.Logger.Debug("minted tokens", "to", to.String(), "amount", amount.String())

	return wasmtypes.NewResponse().
		AddAttribute("action", "mint").
		AddAttribute("to", to.String()).
		AddAttribute("amount", amount.String()), nil
}

func assertPositive(amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidZeroAmount
	}
	return nil
}

func move(store storetypes.KVStore, from, to sdk.AccAddress, amount math.Int) error {
	if err := assertPositive(amount); err != nil {
		return err
	}
	fromBal, err := loadBalance(store, from)
	if err != nil {
		return err
	}
	if fromBal.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("%s has %s, needs %s", from, fromBal, amount)
	}
	if err := saveBalance(store, from, fromBal.Sub(amount)); err != nil {
		return err
	}
	toBal, err := loadBalance(store, to)
	if err != nil {
		return err
	}
	toBal, err = choicetypes.CheckedAdd(toBal, amount)
	if err != nil {
		return err
	}
	return saveBalance(store, to, toBal)
}

func destroy(store storetypes.KVStore, from sdk.AccAddress, amount math.Int) error {
	if err := assertPositive(amount); err != nil {
		return err
	}
	bal, err := loadBalance(store, from)
	if err != nil {
		return err
	}
	if bal.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("%s has %s, needs %s", from, bal, amount)
	}
	if err := saveBalance(store, from, bal.Sub(amount)); err != nil {
		return err
	}
	state, err := tokenInfo.Load(store)
	if err != nil {
		return err
	}
	state.TotalSupply = state.TotalSupply.Sub(amount)
	return tokenInfo.Save(store, state)
}

func deductAllowance(store storetypes.KVStore, env wasmtypes.Env, owner, spender sdk.AccAddress, amount math.Int) error {
	a, err := loadAllowance(store, owner, spender)
	if err != nil {
		return err
	}
	if a.Expires.IsExpired(env.Block.Height, env.Block.Seconds()) {
		return types.ErrExpired
	}
	if a.Amount.IsZero() {
		return types.ErrNoAllowance
	}
	if amount.IsNil() || a.Amount.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("allowance %s, needs %s", a.Amount, amount)
	}
	a.Amount = a.Amount.Sub(amount)

	key := allowanceKey(owner, spender)
	if a.Amount.IsZero() {
		allowances.Remove(store, key)
		return nil
	}
	return allowances.Save(store, key, a)
}

func receiveMsg(contract, sender string, amount math.Int, hook []byte) (wasmtypes.CosmosMsg, error) {
	return wasmtypes.NewExecuteMsg(contract, types.ReceiverExecuteMsg{
		Receive: &types.ReceiveMsg{Sender: sender, Amount: amount, Msg: hook},
	}, nil)
}
