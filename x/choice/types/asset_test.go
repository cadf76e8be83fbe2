package types_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/choice-exchange/choice/x/choice/types"
)

func testAddr(b byte) sdk.AccAddress {
	addr := make([]byte, 20)
	addr[19] = b
	return addr
}

func TestAssetInfo_JSONShape(t *testing.T) {
	bz, err := json.Marshal(types.NativeAssetInfo("inj"))
	require.NoError(t, err)
	require.JSONEq(t, `{"native_token":{"denom":"inj"}}`, string(bz))

	token := testAddr(1).String()
	bz, err = json.Marshal(types.NewAsset(types.TokenAssetInfo(token), math.NewInt(10)))
	require.NoError(t, err)
	require.JSONEq(t, `{"info":{"token":{"contract_addr":"`+token+`"}},"amount":"10"}`, string(bz))

	var asset types.Asset
	require.NoError(t, json.Unmarshal([]byte(`{"info":{"native_token":{"denom":"usdt"}},"amount":"42"}`), &asset))
	require.Equal(t, "42usdt", asset.String())
}

func TestAssetInfo_Equal(t *testing.T) {
	token := testAddr(1).String()
	require.True(t, types.NativeAssetInfo("inj").Equal(types.NativeAssetInfo("inj")))
	require.False(t, types.NativeAssetInfo("inj").Equal(types.NativeAssetInfo("usdt")))
	require.False(t, types.NativeAssetInfo(token).Equal(types.TokenAssetInfo(token)))
	require.True(t, types.TokenAssetInfo(token).Equal(types.TokenAssetInfo(token)))
}

func TestAssetInfo_Validate(t *testing.T) {
	require.NoError(t, types.NativeAssetInfo("inj").Validate())
	require.ErrorIs(t, types.AssetInfo{}.Validate(), types.ErrInvalidAsset)
	require.ErrorIs(t, types.TokenAssetInfo("not-an-address").Validate(), types.ErrInvalidAsset)

	both := types.NativeAssetInfo("inj")
	both.Token = &types.TokenInfo{ContractAddr: testAddr(1).String()}
	require.ErrorIs(t, both.Validate(), types.ErrInvalidAsset)

	asset := types.NewAsset(types.NativeAssetInfo("inj"), types.MaxUint128.AddRaw(1))
	require.ErrorIs(t, asset.Validate(), types.ErrInvalidAsset)
}

func TestPairKey_OrderIndependent(t *testing.T) {
	a, err := types.NativeAssetInfo("inj").ToRaw()
	require.NoError(t, err)
	b, err := types.TokenAssetInfo(testAddr(7).String()).ToRaw()
	require.NoError(t, err)

	require.Equal(t, types.PairKey([2]types.AssetInfoRaw{a, b}), types.PairKey([2]types.AssetInfoRaw{b, a}))
	require.True(t, b.ToNormal().Equal(types.TokenAssetInfo(testAddr(7).String())))
}

func TestPairKey_Distinct(t *testing.T) {
	key := func(x, y types.AssetInfo) []byte {
		a, err := x.ToRaw()
		require.NoError(t, err)
		b, err := y.ToRaw()
		require.NoError(t, err)
		return types.PairKey([2]types.AssetInfoRaw{a, b})
	}
	n := types.NativeAssetInfo

	require.NotEqual(t, key(n("inj"), n("usdt")), key(n("inju"), n("sdt")))
	require.NotEqual(t, key(n("ab"), n("c")), key(n("a"), n("bc")))

	// a denom spelling out address bytes is still a different asset
	addr := testAddr(3)
	token := types.AssetInfoRaw{Token: &types.TokenInfoRaw{ContractAddr: addr}}
	denom := types.AssetInfoRaw{NativeToken: &types.NativeTokenInfo{Denom: string(addr)}}
	require.NotEqual(t, token.Bytes(), denom.Bytes())
}

func TestAssertSentNativeTokenBalance(t *testing.T) {
	asset := types.NewAsset(types.NativeAssetInfo("inj"), math.NewInt(100))

	require.NoError(t, asset.AssertSentNativeTokenBalance(sdk.NewCoins(sdk.NewInt64Coin("inj", 100))))
	require.ErrorIs(t, asset.AssertSentNativeTokenBalance(sdk.NewCoins(sdk.NewInt64Coin("inj", 99))), types.ErrNativeFundsMismatch)
	require.ErrorIs(t, asset.AssertSentNativeTokenBalance(nil), types.ErrNativeFundsMismatch)

	zero := types.NewAsset(types.NativeAssetInfo("inj"), math.ZeroInt())
	require.NoError(t, zero.AssertSentNativeTokenBalance(nil))

	token := types.NewAsset(types.TokenAssetInfo(testAddr(1).String()), math.NewInt(5))
	require.NoError(t, token.AssertSentNativeTokenBalance(nil))
}

func TestAsset_IntoMsg(t *testing.T) {
	recipient := testAddr(2).String()

	msg, err := types.NewAsset(types.NativeAssetInfo("inj"), math.NewInt(5)).IntoMsg(recipient)
	require.NoError(t, err)
	require.NotNil(t, msg.Bank)
	require.Equal(t, recipient, msg.Bank.Send.ToAddress)

	token := testAddr(1).String()
	msg, err = types.NewAsset(types.TokenAssetInfo(token), math.NewInt(5)).IntoMsg(recipient)
	require.NoError(t, err)
	require.Equal(t, token, msg.Wasm.Execute.ContractAddr)
	require.JSONEq(t, `{"transfer":{"recipient":"`+recipient+`","amount":"5"}}`, string(msg.Wasm.Execute.Msg))
}

func TestOwnership_TwoStep(t *testing.T) {
	owner, candidate := testAddr(1), testAddr(2)
	o := types.Ownership{Owner: owner}

	_, err := o.Propose(candidate.String(), candidate.String())
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = o.Accept(candidate.String())
	require.ErrorIs(t, err, types.ErrNoOwnershipProposal)

	res, err := o.Propose(owner.String(), candidate.String())
	require.NoError(t, err)
	v, _ := res.Attribute("proposed_owner")
	require.Equal(t, candidate.String(), v)

	_, err = o.Accept(owner.String())
	require.ErrorIs(t, err, types.ErrNoOwnershipProposal)

	_, err = o.Accept(candidate.String())
	require.NoError(t, err)
	require.Equal(t, candidate, o.Owner)
	require.Empty(t, o.ProposedOwner)

	_, err = o.Propose(candidate.String(), owner.String())
	require.NoError(t, err)
	_, err = o.Cancel(candidate.String())
	require.NoError(t, err)
	_, err = o.Accept(owner.String())
	require.ErrorIs(t, err, types.ErrNoOwnershipProposal)
}

func TestUnitVariant(t *testing.T) {
	name, ok := types.UnitVariant([]byte(`"accept_ownership"`))
	require.True(t, ok)
	require.Equal(t, "accept_ownership", name)

	_, ok = types.UnitVariant([]byte(`{"accept_ownership":{}}`))
	require.False(t, ok)
}

func TestMigrateVersion(t *testing.T) {
	store := dbadapter.Store{DB: dbm.NewMemDB()}
	require.NoError(t, types.SetContractVersion(store, "crates.io:choice-pair", "1.1.0"))

	require.ErrorIs(t, types.MigrateVersion(store, "1.1.2", "crates.io:choice-factory"), types.ErrMigrateVersion)
	require.NoError(t, types.MigrateVersion(store, "1.1.2", "crates.io:choice-pair"))

	v, err := types.GetContractVersion(store)
	require.NoError(t, err)
	require.Equal(t, "1.1.2", v.Version)

	// same version is a no-op, an older target is a downgrade
	require.NoError(t, types.MigrateVersion(store, "1.1.2", "crates.io:choice-pair"))
	require.ErrorIs(t, types.MigrateVersion(store, "1.0.9", "crates.io:choice-pair"), types.ErrMigrateVersion)
}
