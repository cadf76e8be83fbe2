package keeper_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/choice-exchange/choice/testutil/keeper"
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	factorytypes "github.com/choice-exchange/choice/x/factory/types"
	"github.com/choice-exchange/choice/x/router/keeper"
	"github.com/choice-exchange/choice/x/router/types"
)

type routerFixture struct {
	*keepertest.Protocol
	router sdk.AccAddress
	tkn    sdk.AccAddress
	bob    sdk.AccAddress

	tknInfo, inj, usdt choicetypes.AssetInfo
}

// setupRouter creates a TKN/inj pool at 1:1 and an inj/usdt pool at 1:2.
func setupRouter(t *testing.T) *routerFixture {
	t.Helper()
	p := keepertest.DeployProtocol(t)
	alice := keepertest.TestAddr()
	bob := keepertest.TestAddr()
	tkn := p.NewToken(t, "TKN", 6,
		cw20types.Balance{Address: alice.String(), Amount: math.NewInt(10_000_000_000)},
		cw20types.Balance{Address: bob.String(), Amount: math.NewInt(1_000_000)},
	)
	keepertest.FundAccount(t, p.K, p.Ctx, alice, keepertest.Coin("inj", 10_000_000_000), keepertest.Coin("usdt", 10_000_000_000))
	keepertest.FundAccount(t, p.K, p.Ctx, bob, keepertest.Coin("usdt", 1_000_000))
	p.RegisterNativeDecimals(t, "inj", 6)
	p.RegisterNativeDecimals(t, "usdt", 6)
	p.Approve(t, tkn, alice, p.Factory, 1_000_000_000)

	f := &routerFixture{
		Protocol: p,
		tkn:      tkn,
		bob:      bob,
		tknInfo:  choicetypes.TokenAssetInfo(tkn.String()),
		inj:      choicetypes.NativeAssetInfo("inj"),
		usdt:     choicetypes.NativeAssetInfo("usdt"),
	}
	p.CreatePair(t, alice, [2]choicetypes.Asset{
		choicetypes.NewAsset(f.tknInfo, math.NewInt(1_000_000_000)),
		choicetypes.NewAsset(f.inj, math.NewInt(1_000_000_000)),
	}, sdk.NewCoins(keepertest.Coin("inj", 1_000_000_000)))
	p.CreatePair(t, alice, [2]choicetypes.Asset{
		choicetypes.NewAsset(f.inj, math.NewInt(1_000_000_000)),
		choicetypes.NewAsset(f.usdt, math.NewInt(2_000_000_000)),
	}, sdk.NewCoins(keepertest.Coin("inj", 1_000_000_000), keepertest.Coin("usdt", 2_000_000_000)))

	f.router = p.DeployRouter(t)
	return f
}

func (f *routerFixture) simulate(t *testing.T, offer int64, ops ...types.SwapOperation) math.Int {
	t.Helper()
	var res types.SimulateSwapOperationsResponse
	keepertest.QuerySmart(t, f.K, f.Ctx, f.router, types.NewSimulateSwapOperationsQuery(math.NewInt(offer), ops...), &res)
	return res.Amount
}

func (f *routerFixture) sendTokens(t *testing.T, amount int64, hook types.Cw20HookMsg) error {
	t.Helper()
	_, err := f.K.Execute(f.Ctx, f.tkn, f.bob, keepertest.MustJSON(t, cw20types.ExecuteMsg{Send: &cw20types.Send{
		Contract: f.router.String(),
		Amount:   math.NewInt(amount),
		Msg:      keepertest.MustJSON(t, hook),
	}}), nil)
	return err
}

func TestAssertOperations(t *testing.T) {
	krw := choicetypes.NativeAssetInfo("ukrw")
	inj := choicetypes.NativeAssetInfo("inj")
	asset1 := choicetypes.TokenAssetInfo(keepertest.TestAddr().String())
	asset2 := choicetypes.TokenAssetInfo(keepertest.TestAddr().String())

	cases := []struct {
		name string
		ops  []types.SwapOperation
		err  error
	}{
		{"empty", nil, types.ErrNoOperations},
		{"single hop", []types.SwapOperation{types.NewSwapOperation(krw, asset1)}, nil},
		{"inj output", []types.SwapOperation{
			types.NewSwapOperation(krw, asset1),
			types.NewSwapOperation(asset1, inj),
		}, nil},
		{"token output", []types.SwapOperation{
			types.NewSwapOperation(krw, asset1),
			types.NewSwapOperation(asset1, inj),
			types.NewSwapOperation(inj, asset2),
		}, nil},
		{"disconnected hops", []types.SwapOperation{
			types.NewSwapOperation(krw, asset1),
			types.NewSwapOperation(inj, asset2),
		}, types.ErrMultipleOutputToken},
		{"empty hop", []types.SwapOperation{{}}, types.ErrInvalidOperation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := keeper.AssertOperations(tc.ops)
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestTokenRoute(t *testing.T) {
	f := setupRouter(t)
	ops := []types.SwapOperation{
		types.NewSwapOperation(f.tknInfo, f.inj),
		types.NewSwapOperation(f.inj, f.usdt),
	}
	want := f.simulate(t, 1_000_000, ops...)
	require.True(t, want.IsPositive())

	tooMuch := want.AddRaw(1)
	err := f.sendTokens(t, 1_000_000, types.Cw20HookMsg{ExecuteSwapOperations: &types.ExecuteSwapOperations{
		Operations:     ops,
		MinimumReceive: &tooMuch,
	}})
	require.ErrorIs(t, err, types.ErrMinimumReceiveAssertion)
	require.Equal(t, math.NewInt(1_000_000), f.TokenBalance(t, f.tkn, f.bob))

	require.NoError(t, f.sendTokens(t, 1_000_000, types.Cw20HookMsg{ExecuteSwapOperations: &types.ExecuteSwapOperations{
		Operations:     ops,
		MinimumReceive: &want,
	}}))
	require.Equal(t, math.NewInt(1_000_000).Add(want), f.K.GetBalance(f.Ctx, f.bob, "usdt"))
	require.True(t, f.TokenBalance(t, f.tkn, f.bob).IsZero())

	// nothing is left with the router between hops
	require.True(t, f.TokenBalance(t, f.tkn, f.router).IsZero())
	require.True(t, f.K.GetBalance(f.Ctx, f.router, "inj").IsZero())
	require.True(t, f.K.GetBalance(f.Ctx, f.router, "usdt").IsZero())
}

func TestNativeRoute(t *testing.T) {
	f := setupRouter(t)
	carol := keepertest.TestAddr()
	ops := []types.SwapOperation{
		types.NewSwapOperation(f.usdt, f.inj),
		types.NewSwapOperation(f.inj, f.tknInfo),
	}
	want := f.simulate(t, 1_000_000, ops...)

	to := carol.String()
	_, err := f.K.Execute(f.Ctx, f.router, f.bob, keepertest.MustJSON(t, types.ExecuteMsg{
		ExecuteSwapOperations: &types.ExecuteSwapOperations{Operations: ops, MinimumReceive: &want, To: &to},
	}), sdk.NewCoins(keepertest.Coin("usdt", 1_000_000)))
	require.NoError(t, err)

	require.Equal(t, want, f.TokenBalance(t, f.tkn, carol))
	require.True(t, f.K.GetBalance(f.Ctx, f.bob, "usdt").IsZero())
	require.Equal(t, math.NewInt(1_000_000), f.TokenBalance(t, f.tkn, f.bob))
}

func TestReverseSimulation(t *testing.T) {
	f := setupRouter(t)
	ops := []types.SwapOperation{
		types.NewSwapOperation(f.tknInfo, f.inj),
		types.NewSwapOperation(f.inj, f.usdt),
	}
	out := f.simulate(t, 1_000_000, ops...)

	var res types.SimulateSwapOperationsResponse
	keepertest.QuerySmart(t, f.K, f.Ctx, f.router, types.NewReverseSimulateSwapOperationsQuery(out, ops...), &res)
	require.True(t, res.Amount.LTE(math.NewInt(1_000_000)))
	require.InDelta(t, 1_000_000, res.Amount.Int64(), 20)

	_, err := f.K.QuerySmart(f.Ctx, f.router, keepertest.MustJSON(t, types.NewSimulateSwapOperationsQuery(math.NewInt(1))))
	require.ErrorIs(t, err, types.ErrNoOperations)
	_, err = f.K.QuerySmart(f.Ctx, f.router, keepertest.MustJSON(t, types.NewReverseSimulateSwapOperationsQuery(math.NewInt(1))))
	require.ErrorIs(t, err, types.ErrNoOperations)

	// no tkn/usdt pair
	_, err = f.K.QuerySmart(f.Ctx, f.router, keepertest.MustJSON(t, types.NewSimulateSwapOperationsQuery(math.NewInt(1),
		types.NewSwapOperation(f.tknInfo, f.usdt))))
	require.ErrorIs(t, err, factorytypes.ErrPairNotFound)
}

func TestRoute_Rejections(t *testing.T) {
	f := setupRouter(t)
	exec := func(msg types.ExecuteMsg, funds sdk.Coins) error {
		_, err := f.K.Execute(f.Ctx, f.router, f.bob, keepertest.MustJSON(t, msg), funds)
		return err
	}
	usdt := sdk.NewCoins(keepertest.Coin("usdt", 1_000))

	require.ErrorIs(t, exec(types.ExecuteMsg{ExecuteSwapOperations: &types.ExecuteSwapOperations{}}, usdt), types.ErrNoOperations)
	require.ErrorIs(t, exec(types.ExecuteMsg{ExecuteSwapOperations: &types.ExecuteSwapOperations{Operations: []types.SwapOperation{
		types.NewSwapOperation(f.usdt, f.inj),
		types.NewSwapOperation(f.tknInfo, f.usdt),
	}}}, usdt), types.ErrMultipleOutputToken)

	// hops are internal to the router
	require.ErrorIs(t, exec(types.ExecuteMsg{ExecuteSwapOperation: &types.ExecuteSwapOperation{
		Operation: types.NewSwapOperation(f.usdt, f.inj),
	}}, usdt), types.ErrUnauthorized)

	require.ErrorIs(t, exec(types.ExecuteMsg{ExecuteSwapOperations: &types.ExecuteSwapOperations{Operations: []types.SwapOperation{
		types.NewSwapOperation(f.usdt, f.tknInfo),
	}}}, usdt), factorytypes.ErrPairNotFound)

	// no offer funds reach the router
	require.ErrorIs(t, exec(types.ExecuteMsg{ExecuteSwapOperations: &types.ExecuteSwapOperations{Operations: []types.SwapOperation{
		types.NewSwapOperation(f.usdt, f.inj),
	}}}, nil), types.ErrZeroOfferAmount)

	require.Equal(t, math.NewInt(1_000_000), f.K.GetBalance(f.Ctx, f.bob, "usdt"))
}

func TestAssertMinimumReceive(t *testing.T) {
	f := setupRouter(t)
	balance := f.K.GetBalance(f.Ctx, f.bob, "usdt")
	assert := func(prev, minimum math.Int) error {
		_, err := f.K.Execute(f.Ctx, f.router, keepertest.TestAddr(), keepertest.MustJSON(t, types.ExecuteMsg{
			AssertMinimumReceive: &types.AssertMinimumReceive{
				AssetInfo:      f.usdt,
				PrevBalance:    prev,
				MinimumReceive: minimum,
				Receiver:       f.bob.String(),
			},
		}), nil)
		return err
	}

	require.NoError(t, assert(balance, math.ZeroInt()))
	require.NoError(t, assert(balance.SubRaw(10), math.NewInt(10)))
	require.ErrorIs(t, assert(balance.SubRaw(10), math.NewInt(11)), types.ErrMinimumReceiveAssertion)
	require.ErrorIs(t, assert(balance.AddRaw(1), math.ZeroInt()), choicetypes.ErrOverflow)
}

func TestConfigAndMigrate(t *testing.T) {
	f := setupRouter(t)
	var cfg types.ConfigResponse
	keepertest.QuerySmart(t, f.K, f.Ctx, f.router, types.NewConfigQuery(), &cfg)
	require.Equal(t, f.Factory.String(), cfg.ChoiceFactory)

	codeID := f.K.StoreCode(keeper.NewContract())
	_, err := f.K.Migrate(f.Ctx, f.router, f.Owner, codeID, json.RawMessage(`{}`))
	require.NoError(t, err)
	version, err := choicetypes.GetContractVersion(f.K.ContractState(f.Ctx, f.router))
	require.NoError(t, err)
	require.Equal(t, types.ContractName, version.Contract)
	require.Equal(t, types.MigrateTargetVersion, version.Version)
}
