package keeper_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/choice-exchange/choice/testutil/keeper"
	"github.com/choice-exchange/choice/x/auction/keeper"
	"github.com/choice-exchange/choice/x/auction/types"
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

func sendNative(amount int64) types.ExecuteMsg {
	return types.ExecuteMsg{SendNative: &types.SendNative{
		Asset: choicetypes.NewAsset(choicetypes.NativeAssetInfo("inj"), math.NewInt(amount)),
	}}
}

func getConfig(t *testing.T, p *keepertest.Protocol) types.ConfigResponse {
	t.Helper()
	var cfg types.ConfigResponse
	keepertest.QuerySmart(t, p.K, p.Ctx, p.Forwarder, types.NewGetConfigQuery(), &cfg)
	return cfg
}

func TestInstantiate_RejectsBadSubaccount(t *testing.T) {
	k, ctx := keepertest.WasmKeeper(t)
	codeID := k.StoreCode(keeper.NewContract())
	owner := keepertest.TestAddr()

	_, _, err := k.Instantiate(ctx, codeID, owner, nil, keepertest.MustJSON(t, types.InstantiateMsg{
		Owner:                 owner.String(),
		AdapterContract:       owner.String(),
		BurnAuctionSubaccount: "0x1234",
	}), "send-to-auction", nil)
	require.ErrorIs(t, err, types.ErrInvalidSubaccount)

	_, _, err = k.Instantiate(ctx, codeID, owner, nil, keepertest.MustJSON(t, types.InstantiateMsg{
		Owner:                 "not-an-address",
		AdapterContract:       owner.String(),
		BurnAuctionSubaccount: wasmtypes.SubaccountID(owner, 0),
	}), "send-to-auction", nil)
	require.ErrorIs(t, err, choicetypes.ErrInvalidAddress)
}

func TestSendNative(t *testing.T) {
	p := keepertest.DeployProtocol(t)
	user := keepertest.TestAddr()
	keepertest.FundAccount(t, p.K, p.Ctx, user, keepertest.Coin("inj", 1_000), keepertest.Coin("usdt", 1_000))

	_, err := p.K.Execute(p.Ctx, p.Forwarder, user, keepertest.MustJSON(t, sendNative(400)), sdk.NewCoins(keepertest.Coin("inj", 400)))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(400), p.BurnedAmount("inj"))
	require.Equal(t, math.NewInt(600), p.K.GetBalance(p.Ctx, user, "inj"))
	// nothing is left behind in the forwarder's own subaccount
	own := wasmtypes.SubaccountID(p.Forwarder, types.ForwarderSubaccountNonce)
	require.True(t, p.K.GetSubaccountDeposit(p.Ctx, own, "inj").IsZero())

	cases := []struct {
		name  string
		msg   types.ExecuteMsg
		funds sdk.Coins
		err   error
	}{
		{"no funds", sendNative(10), nil, types.ErrNoFunds},
		{"other denom", sendNative(10), sdk.NewCoins(keepertest.Coin("usdt", 10)), types.ErrDenomMismatch},
		{"amount differs", sendNative(10), sdk.NewCoins(keepertest.Coin("inj", 11)), types.ErrFundsMismatch},
		{"zero amount", sendNative(0), sdk.NewCoins(keepertest.Coin("inj", 1)), types.ErrInvalidAmount},
		{"token asset", types.ExecuteMsg{SendNative: &types.SendNative{
			Asset: choicetypes.NewAsset(choicetypes.TokenAssetInfo(p.Adapter.String()), math.NewInt(10)),
		}}, nil, types.ErrNotNative},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.K.Execute(p.Ctx, p.Forwarder, user, keepertest.MustJSON(t, tc.msg), tc.funds)
			require.ErrorIs(t, err, tc.err)
		})
	}
	require.Equal(t, math.NewInt(400), p.BurnedAmount("inj"))
}

func TestReceiveToken(t *testing.T) {
	p := keepertest.DeployProtocol(t)
	user := keepertest.TestAddr()
	token := p.NewToken(t, "TKN", 6, cw20types.Balance{Address: user.String(), Amount: math.NewInt(1_000)})

	_, err := p.K.Execute(p.Ctx, token, user, keepertest.MustJSON(t, cw20types.ExecuteMsg{Send: &cw20types.Send{
		Contract: p.Forwarder.String(),
		Amount:   math.NewInt(250),
	}}), nil)
	require.NoError(t, err)

	require.Equal(t, math.NewInt(250), p.BurnedAmount(p.AdapterDenom(token)))
	require.Equal(t, math.NewInt(250), p.TokenBalance(t, token, p.Adapter))
	require.True(t, p.TokenBalance(t, token, p.Forwarder).IsZero())
	require.Equal(t, math.NewInt(750), p.TokenBalance(t, token, user))
}

func TestUpdateConfigAndOwnership(t *testing.T) {
	p := keepertest.DeployProtocol(t)
	stranger := keepertest.TestAddr()
	candidate := keepertest.TestAddr()
	exec := func(sender sdk.AccAddress, msg any) error {
		_, err := p.K.Execute(p.Ctx, p.Forwarder, sender, keepertest.MustJSON(t, msg), nil)
		return err
	}

	cfg := getConfig(t, p)
	require.Equal(t, p.Owner.String(), cfg.Owner)
	require.Equal(t, p.Adapter.String(), cfg.AdapterContract)
	require.Equal(t, p.BurnSubaccount, cfg.BurnAuctionSubaccount)
	require.Nil(t, cfg.ProposedOwner)

	sub := wasmtypes.SubaccountID(stranger, 3)
	update := types.ExecuteMsg{UpdateConfig: &types.UpdateConfig{BurnAuctionSubaccount: &sub}}
	require.ErrorIs(t, exec(stranger, update), choicetypes.ErrUnauthorized)
	require.NoError(t, exec(p.Owner, update))
	require.Equal(t, sub, getConfig(t, p).BurnAuctionSubaccount)

	bad := "0xnothex"
	require.ErrorIs(t, exec(p.Owner, types.ExecuteMsg{UpdateConfig: &types.UpdateConfig{BurnAuctionSubaccount: &bad}}), types.ErrInvalidSubaccount)

	propose := types.ExecuteMsg{ProposeNewOwner: &choicetypes.ProposeNewOwnerMsg{NewOwner: candidate.String()}}
	require.ErrorIs(t, exec(stranger, propose), choicetypes.ErrUnauthorized)
	require.NoError(t, exec(p.Owner, propose))
	require.Equal(t, candidate.String(), *getConfig(t, p).ProposedOwner)

	accept := json.RawMessage(`"accept_ownership"`)
	_, err := p.K.Execute(p.Ctx, p.Forwarder, stranger, accept, nil)
	require.ErrorIs(t, err, choicetypes.ErrNoOwnershipProposal)
	_, err = p.K.Execute(p.Ctx, p.Forwarder, candidate, accept, nil)
	require.NoError(t, err)

	cfg = getConfig(t, p)
	require.Equal(t, candidate.String(), cfg.Owner)
	require.Nil(t, cfg.ProposedOwner)

	// the old owner lost its rights
	require.ErrorIs(t, exec(p.Owner, update), choicetypes.ErrUnauthorized)

	require.NoError(t, exec(candidate, types.ExecuteMsg{ProposeNewOwner: &choicetypes.ProposeNewOwnerMsg{NewOwner: stranger.String()}}))
	require.NoError(t, exec(candidate, types.ExecuteMsg{CancelOwnershipProposal: &struct{}{}}))
	_, err = p.K.Execute(p.Ctx, p.Forwarder, stranger, accept, nil)
	require.ErrorIs(t, err, choicetypes.ErrNoOwnershipProposal)
}

func TestMigrate(t *testing.T) {
	p := keepertest.DeployProtocol(t)
	codeID := p.K.StoreCode(keeper.NewContract())
	_, err := p.K.Migrate(p.Ctx, p.Forwarder, p.Owner, codeID, json.RawMessage(`{}`))
	require.NoError(t, err)

	version, err := choicetypes.GetContractVersion(p.K.ContractState(p.Ctx, p.Forwarder))
	require.NoError(t, err)
	require.Equal(t, types.ContractName, version.Contract)
	require.Equal(t, types.ContractVersion, version.Version)
}
