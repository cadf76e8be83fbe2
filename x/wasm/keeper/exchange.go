package keeper

import (
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/choice-exchange/choice/x/wasm/types"
)

// GetSubaccountDeposit returns the exchange deposit of a subaccount in denom.
func (k Keeper) GetSubaccountDeposit(ctx sdk.Context, subaccountID, denom string) math.Int {
	return decodeInt(ctx.KVStore(k.storeKey).Get(types.GetSubaccountDepositKey(strings.ToLower(subaccountID), denom)))
}

// Deposit moves bank funds of sender into one of its own exchange subaccounts.
func (k Keeper) Deposit(ctx sdk.Context, sender sdk.AccAddress, subaccountID string, amount sdk.Coin) error {
	if subaccountID == "" {
		subaccountID = types.SubaccountID(sender, 0)
	}
	if err := k.assertSubaccountOwner(sender, subaccountID); err != nil {
		return err
	}
	if !amount.IsValid() || amount.IsZero() {
		return types.ErrInvalidCoins.Wrapf("deposit %s", amount)
	}

	if err := k.subBalance(ctx, sender, amount); err != nil {
		return err
	}
	k.addDeposit(ctx, subaccountID, amount)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"subaccount_deposit",
		sdk.NewAttribute("src_address", sender.String()),
		sdk.NewAttribute("subaccount_id", subaccountID),
		sdk.NewAttribute(sdk.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// ExternalTransfer moves a deposit from a subaccount owned by sender to any
// other subaccount.
func (k Keeper) ExternalTransfer(ctx sdk.Context, sender sdk.AccAddress, source, destination string, amount sdk.Coin) error {
	if err := k.assertSubaccountOwner(sender, source); err != nil {
		return err
	}
	if err := types.ValidateSubaccountID(destination); err != nil {
		return err
	}
	if !amount.IsValid() || amount.IsZero() {
		return types.ErrInvalidCoins.Wrapf("transfer %s", amount)
	}

	available := k.GetSubaccountDeposit(ctx, source, amount.Denom)
	if available.LT(amount.Amount) {
		return types.ErrInsufficientFunds.Wrapf("subaccount %s has %s%s, needs %s", source, available, amount.Denom, amount)
	}
	k.setDeposit(ctx, source, amount.Denom, available.Sub(amount.Amount))
	k.addDeposit(ctx, destination, amount)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"subaccount_external_transfer",
		sdk.NewAttribute("src_subaccount_id", source),
		sdk.NewAttribute("dst_subaccount_id", destination),
		sdk.NewAttribute(sdk.AttributeKeyAmount, amount.String()),
	))
	return nil
}

func (k Keeper) assertSubaccountOwner(sender sdk.AccAddress, subaccountID string) error {
	if err := types.ValidateSubaccountID(subaccountID); err != nil {
		return err
	}
	if !strings.EqualFold(subaccountID[:42], types.SubaccountOwnerPrefix(sender)) {
		return types.ErrUnauthorized.Wrapf("subaccount %s does not belong to %s", subaccountID, sender)
	}
	return nil
}

func (k Keeper) addDeposit(ctx sdk.Context, subaccountID string, amount sdk.Coin) {
	current := k.GetSubaccountDeposit(ctx, subaccountID, amount.Denom)
	k.setDeposit(ctx, subaccountID, amount.Denom, current.Add(amount.Amount))
}

func (k Keeper) setDeposit(ctx sdk.Context, subaccountID, denom string, amount math.Int) {
	key := types.GetSubaccountDepositKey(strings.ToLower(subaccountID), denom)
	store := ctx.KVStore(k.storeKey)
	if amount.IsZero() {
		store.Delete(key)
		return
	}
	store.Set(key, encodeInt(amount))
}
