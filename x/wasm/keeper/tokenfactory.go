package keeper

import (
	"encoding/json"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/choice-exchange/choice/x/wasm/types"
)

// CreateDenom registers factory/{creator}/{subdenom} with creator as admin and
// charges the configured creation fee from the creator.
func (k Keeper) CreateDenom(ctx sdk.Context, creator sdk.AccAddress, subdenom string) (string, error) {
	if subdenom == "" || len(subdenom) > 64 || strings.Contains(subdenom, "/") {
		return "", types.ErrInvalidMsg.Wrapf("invalid subdenom %q", subdenom)
	}
	denom := types.FactoryDenom(creator.String(), subdenom)
	if err := sdk.ValidateDenom(denom); err != nil {
		return "", types.ErrInvalidMsg.Wrapf("denom %s: %s", denom, err)
	}

	store := ctx.KVStore(k.storeKey)
	if store.Has(types.GetDenomAdminKey(denom)) {
		return "", types.ErrDenomExists.Wrap(denom)
	}

	params := k.GetParams(ctx)
	if !params.DenomCreationFee.IsZero() {
		if err := k.BurnCoins(ctx, creator, params.DenomCreationFee); err != nil {
			return "", err
		}
	}

	store.Set(types.GetDenomAdminKey(denom), []byte(creator.String()))

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"create_denom",
		sdk.NewAttribute("creator", creator.String()),
		sdk.NewAttribute("new_token_denom", denom),
	))
	k.Logger(ctx).Debug("created denom", "denom", denom, "creator", creator.String())
	return denom, nil
}

// GetDenomAdmin returns the admin of a factory denom.
func (k Keeper) GetDenomAdmin(ctx sdk.Context, denom string) (string, error) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetDenomAdminKey(denom))
	if bz == nil {
		return "", types.ErrDenomNotFound.Wrap(denom)
	}
	return string(bz), nil
}

// MintTokens mints a factory denom; only its admin may do so.
func (k Keeper) MintTokens(ctx sdk.Context, sender sdk.AccAddress, denom string, amount math.Int, to sdk.AccAddress) error {
	if err := k.assertDenomAdmin(ctx, sender, denom); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrInvalidCoins.Wrapf("mint amount must be positive: %s", amount)
	}
	return k.MintCoins(ctx, to, sdk.NewCoins(sdk.NewCoin(denom, amount)))
}

// BurnTokens burns a factory denom from the admin's own balance.
func (k Keeper) BurnTokens(ctx sdk.Context, sender sdk.AccAddress, denom string, amount math.Int) error {
	if err := k.assertDenomAdmin(ctx, sender, denom); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrInvalidCoins.Wrapf("burn amount must be positive: %s", amount)
	}
	return k.BurnCoins(ctx, sender, sdk.NewCoins(sdk.NewCoin(denom, amount)))
}

// SetDenomMetadata stores display metadata for a factory denom.
func (k Keeper) SetDenomMetadata(ctx sdk.Context, sender sdk.AccAddress, denom string, metadata types.Metadata) error {
	if err := k.assertDenomAdmin(ctx, sender, denom); err != nil {
		return err
	}
	bz, err := json.Marshal(metadata)
	if err != nil {
		return types.ErrInvalidMsg.Wrapf("metadata: %s", err)
	}
	ctx.KVStore(k.storeKey).Set(types.GetDenomMetadataKey(denom), bz)
	return nil
}

// GetDenomMetadata returns the metadata of a factory denom, if any was set.
func (k Keeper) GetDenomMetadata(ctx sdk.Context, denom string) (types.Metadata, bool) {
	var metadata types.Metadata
	bz := ctx.KVStore(k.storeKey).Get(types.GetDenomMetadataKey(denom))
	if bz == nil {
		return metadata, false
	}
	if err := json.Unmarshal(bz, &metadata); err != nil {
		return metadata, false
	}
	return metadata, true
}

func (k Keeper) assertDenomAdmin(ctx sdk.Context, sender sdk.AccAddress, denom string) error {
	admin, err := k.GetDenomAdmin(ctx, denom)
	if err != nil {
		return err
	}
	if admin != sender.String() {
		return types.ErrUnauthorized.Wrapf("%s is not the admin of %s", sender, denom)
	}
	return nil
}
