package keeper

import (
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/factory/types"
	pairtypes "github.com/choice-exchange/choice/x/pair/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

func updateConfig(deps wasmtypes.Deps, sender string, cfg config, params types.UpdateConfigParams) (*wasmtypes.Response, error) {
	if err := cfg.AssertOwner(sender); err != nil {
		return nil, err
	}
	if params.PairCodeID != nil {
		cfg.PairCodeID = *params.PairCodeID
	}
	if params.BurnAddress != nil {
		burn, err := parseAddr(*params.BurnAddress)
		if err != nil {
			return nil, err
		}
		cfg.BurnAddress = burn
	}
	if params.FeeWalletAddress != nil {
		feeWallet, err := parseAddr(*params.FeeWalletAddress)
		if err != nil {
			return nil, err
		}
		cfg.FeeWalletAddress = feeWallet
	}
	if err := configItem.Save(deps.Storage, cfg); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().AddAttribute("action", "update_config"), nil
}

// addNativeTokenDecimals registers the decimals of a bank denom. A token
// factory denom may be registered by its creator; anything else needs the
// owner. The factory must hold a balance of the denom.
func addNativeTokenDecimals(deps wasmtypes.Deps, env wasmtypes.Env, sender string, cfg config, denom string, decimals uint8) (*wasmtypes.Response, error) {
	if strings.HasPrefix(denom, "factory/") {
		parts := strings.Split(denom, "/")
		if len(parts) < 3 {
			return nil, types.ErrInvalidDenom.Wrapf("%q is not factory/{creator}/{subdenom}", denom)
		}
		creator, err := parseAddr(parts[1])
		if err != nil {
			return nil, types.ErrInvalidDenom.Wrap(err.Error())
		}
		if creator.String() != sender {
			if err := cfg.AssertOwner(sender); err != nil {
				return nil, err
			}
		}
	} else if err := cfg.AssertOwner(sender); err != nil {
		return nil, err
	}
	if decimals > pairtypes.MaxDecimals {
		return nil, types.ErrInvalidAsset.Wrapf("decimals %d above %d", decimals, pairtypes.MaxDecimals)
	}

	balance, err := choicetypes.QueryBalance(deps.Querier, env.Contract.Address, denom)
	if err != nil {
		return nil, err
	}
	if !balance.IsPositive() {
		return nil, types.ErrZeroVerificationBalance.Wrap(denom)
	}

	if err := nativeDecimals.Save(deps.Storage, []byte(denom), decimals); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().
		AddAttribute("action", "add_allow_native_token").
		AddAttribute("denom", denom).
		AddAttribute("decimals", strconv.Itoa(int(decimals))), nil
}

// migratePair migrates a pair the factory administers, to the configured
// pair code unless another code id is given.
func migratePair(sender string, cfg config, m *types.MigratePair) (*wasmtypes.Response, error) {
	if err := cfg.AssertOwner(sender); err != nil {
		return nil, err
	}
	if _, err := parseAddr(m.Contract); err != nil {
		return nil, err
	}
	codeID := cfg.PairCodeID
	if m.CodeID != nil {
		codeID = *m.CodeID
	}
	msg, err := wasmtypes.NewMigrateMsg(m.Contract, codeID, pairtypes.MigrateMsg{})
	if err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse().
		AddMessages(msg).
		AddAttribute("action", "migrate_pair").
		AddAttribute("contract", m.Contract).
		AddAttribute("code_id", strconv.FormatUint(codeID, 10)), nil
}

// withdrawNative sends native coins held by the factory to the owner.
func withdrawNative(sender string, cfg config, m *types.WithdrawNative) (*wasmtypes.Response, error) {
	if err := cfg.AssertOwner(sender); err != nil {
		return nil, err
	}
	if m.Amount.IsNil() || !m.Amount.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrapf("withdraw %s%s", m.Amount, m.Denom)
	}
	if err := sdk.ValidateDenom(m.Denom); err != nil {
		return nil, types.ErrInvalidDenom.Wrap(err.Error())
	}
	return wasmtypes.NewResponse().
		AddMessages(wasmtypes.NewBankSendMsg(sender, sdk.NewCoin(m.Denom, m.Amount))).
		AddAttribute("action", "withdraw_native").
		AddAttribute("owner", sender), nil
}
