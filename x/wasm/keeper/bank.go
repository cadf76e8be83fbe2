package keeper

import (
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/choice-exchange/choice/x/wasm/types"
)

// GetBalance returns the balance of addr in denom, zero when unset.
func (k Keeper) GetBalance(ctx sdk.Context, addr sdk.AccAddress, denom string) math.Int {
	bz := ctx.KVStore(k.storeKey).Get(types.GetBalanceKey(addr, denom))
	return decodeInt(bz)
}

// GetAllBalances returns every non-zero balance of addr sorted by denom.
func (k Keeper) GetAllBalances(ctx sdk.Context, addr sdk.AccAddress) sdk.Coins {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetBalancesPrefix(addr))
	iter := store.Iterator(nil, nil)
	defer iter.Close()

	coins := sdk.NewCoins()
	for ; iter.Valid(); iter.Next() {
		amount := decodeInt(iter.Value())
		if amount.IsPositive() {
			coins = append(coins, sdk.NewCoin(string(iter.Key()), amount))
		}
	}
	return coins.Sort()
}

// GetSupply returns the total supply of denom.
func (k Keeper) GetSupply(ctx sdk.Context, denom string) math.Int {
	return decodeInt(ctx.KVStore(k.storeKey).Get(types.GetSupplyKey(denom)))
}

// SendCoins moves amount from one account to another.
func (k Keeper) SendCoins(ctx sdk.Context, from, to sdk.AccAddress, amount sdk.Coins) error {
	if !amount.IsValid() {
		return types.ErrInvalidCoins.Wrapf("send %s", amount)
	}
	for _, coin := range amount {
		if err := k.subBalance(ctx, from, coin); err != nil {
			return err
		}
		k.addBalance(ctx, to, coin)
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"transfer",
		sdk.NewAttribute("recipient", to.String()),
		sdk.NewAttribute("sender", from.String()),
		sdk.NewAttribute(sdk.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// MintCoins creates amount out of thin air into addr and grows supply.
func (k Keeper) MintCoins(ctx sdk.Context, addr sdk.AccAddress, amount sdk.Coins) error {
	if !amount.IsValid() {
		return types.ErrInvalidCoins.Wrapf("mint %s", amount)
	}
	for _, coin := range amount {
		k.addBalance(ctx, addr, coin)
		k.setSupply(ctx, coin.Denom, k.GetSupply(ctx, coin.Denom).Add(coin.Amount))
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"coinbase",
		sdk.NewAttribute("minter", addr.String()),
		sdk.NewAttribute(sdk.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// BurnCoins destroys amount held by addr and shrinks supply.
func (k Keeper) BurnCoins(ctx sdk.Context, addr sdk.AccAddress, amount sdk.Coins) error {
	if !amount.IsValid() {
		return types.ErrInvalidCoins.Wrapf("burn %s", amount)
	}
	for _, coin := range amount {
		if err := k.subBalance(ctx, addr, coin); err != nil {
			return err
		}
		k.setSupply(ctx, coin.Denom, k.GetSupply(ctx, coin.Denom).Sub(coin.Amount))
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"burn",
		sdk.NewAttribute("burner", addr.String()),
		sdk.NewAttribute(sdk.AttributeKeyAmount, amount.String()),
	))
	return nil
}

func (k Keeper) addBalance(ctx sdk.Context, addr sdk.AccAddress, coin sdk.Coin) {
	balance := k.GetBalance(ctx, addr, coin.Denom).Add(coin.Amount)
	k.setBalance(ctx, addr, coin.Denom, balance)
}

func (k Keeper) subBalance(ctx sdk.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	balance := k.GetBalance(ctx, addr, coin.Denom)
	if balance.LT(coin.Amount) {
		return types.ErrInsufficientFunds.Wrapf("%s has %s%s, needs %s", addr, balance, coin.Denom, coin)
	}
	k.setBalance(ctx, addr, coin.Denom, balance.Sub(coin.Amount))
	return nil
}

func (k Keeper) setBalance(ctx sdk.Context, addr sdk.AccAddress, denom string, amount math.Int) {
	store := ctx.KVStore(k.storeKey)
	key := types.GetBalanceKey(addr, denom)
	if amount.IsZero() {
		store.Delete(key)
		return
	}
	store.Set(key, encodeInt(amount))
}

func (k Keeper) setSupply(ctx sdk.Context, denom string, amount math.Int) {
	store := ctx.KVStore(k.storeKey)
	if amount.IsZero() {
		store.Delete(types.GetSupplyKey(denom))
		return
	}
	store.Set(types.GetSupplyKey(denom), encodeInt(amount))
}

func encodeInt(v math.Int) []byte {
	bz, err := v.Marshal()
	if err != nil {
		panic(err)
	}
	return bz
}

func decodeInt(bz []byte) math.Int {
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		panic(err)
	}
	return v
}
