package keeper

import (
	"encoding/json"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/choice-exchange/choice/x/wasm/keeper"
	"github.com/choice-exchange/choice/x/wasm/types"
)

// TestBlockTime is the block time every test context starts at.
var TestBlockTime = time.Unix(1_700_000_000, 0).UTC()

// WasmKeeper creates a contract host keeper backed by an in-memory store.
func WasmKeeper(t testing.TB) (*keeper.Keeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	k := keeper.NewKeeper(storeKey)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{
		ChainID: "choice-test-1",
		Height:  1,
		Time:    TestBlockTime,
	}, false, log.NewNopLogger())

	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))
	return k, ctx
}

// TestAddr returns a fresh random account address.
func TestAddr() sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
}

// FundAccount mints coins straight into addr.
func FundAccount(t testing.TB, k *keeper.Keeper, ctx sdk.Context, addr sdk.AccAddress, coins ...sdk.Coin) {
	require.NoError(t, k.MintCoins(ctx, addr, sdk.NewCoins(coins...)))
}

// Coin is shorthand for sdk.NewCoin with an int64 amount.
func Coin(denom string, amount int64) sdk.Coin {
	return sdk.NewCoin(denom, math.NewInt(amount))
}

// MustJSON encodes a contract message.
func MustJSON(t testing.TB, v any) json.RawMessage {
	t.Helper()
	bz, err := json.Marshal(v)
	require.NoError(t, err)
	return bz
}

// QuerySmart runs a smart query and decodes the answer into res.
func QuerySmart(t testing.TB, k *keeper.Keeper, ctx sdk.Context, contract sdk.AccAddress, req, res any) {
	t.Helper()
	bz, err := k.QuerySmart(ctx, contract, MustJSON(t, req))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bz, res))
}
