package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	auctionkeeper "github.com/choice-exchange/choice/x/auction/keeper"
	auctiontypes "github.com/choice-exchange/choice/x/auction/types"
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20keeper "github.com/choice-exchange/choice/x/cw20/keeper"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	factorykeeper "github.com/choice-exchange/choice/x/factory/keeper"
	factorytypes "github.com/choice-exchange/choice/x/factory/types"
	pairkeeper "github.com/choice-exchange/choice/x/pair/keeper"
	pairtypes "github.com/choice-exchange/choice/x/pair/types"
	routerkeeper "github.com/choice-exchange/choice/x/router/keeper"
	routertypes "github.com/choice-exchange/choice/x/router/types"
	"github.com/choice-exchange/choice/x/wasm/keeper"
	"github.com/choice-exchange/choice/x/wasm/types"
)

// Protocol is the shared infrastructure every pair depends on, deployed on
// one in-memory host: the token adapter, the burn forwarder feeding an
// auction subaccount and the factory.
type Protocol struct {
	K   *keeper.Keeper
	Ctx sdk.Context

	Owner     sdk.AccAddress
	FeeWallet sdk.AccAddress
	// BurnSubaccount receives the forwarded burn share.
	BurnSubaccount string

	TokenCodeID uint64
	PairCodeID  uint64

	Adapter   sdk.AccAddress
	Forwarder sdk.AccAddress
	Factory   sdk.AccAddress
}

// DeployProtocol stores the contract codes and instantiates the adapter, the
// burn forwarder and a factory owned by Owner.
func DeployProtocol(t testing.TB) *Protocol {
	t.Helper()
	k, ctx := WasmKeeper(t)
	p := &Protocol{
		K:              k,
		Ctx:            ctx,
		Owner:          TestAddr(),
		FeeWallet:      TestAddr(),
		BurnSubaccount: types.SubaccountID(TestAddr(), 0),
	}

	p.TokenCodeID = k.StoreCode(cw20keeper.NewContract())
	p.PairCodeID = k.StoreCode(pairkeeper.NewContract())
	adapterCodeID := k.StoreCode(cw20keeper.NewAdapter())
	forwarderCodeID := k.StoreCode(auctionkeeper.NewContract())

	adapter, _, err := k.Instantiate(ctx, adapterCodeID, p.Owner, p.Owner, MustJSON(t, cw20types.AdapterInstantiateMsg{}), "adapter", nil)
	require.NoError(t, err)
	p.Adapter = adapter

	forwarder, _, err := k.Instantiate(ctx, forwarderCodeID, p.Owner, p.Owner, MustJSON(t, auctiontypes.InstantiateMsg{
		Owner:                 p.Owner.String(),
		AdapterContract:       adapter.String(),
		BurnAuctionSubaccount: p.BurnSubaccount,
	}), "send-to-auction", nil)
	require.NoError(t, err)
	p.Forwarder = forwarder

	factoryCodeID := k.StoreCode(factorykeeper.NewContract())
	factory, _, err := k.Instantiate(ctx, factoryCodeID, p.Owner, p.Owner, MustJSON(t, factorytypes.InstantiateMsg{
		PairCodeID:       p.PairCodeID,
		BurnAddress:      forwarder.String(),
		FeeWalletAddress: p.FeeWallet.String(),
	}), "factory", nil)
	require.NoError(t, err)
	p.Factory = factory
	return p
}

// RegisterNativeDecimals funds the factory with one unit of denom and
// registers its decimals as the owner.
func (p *Protocol) RegisterNativeDecimals(t testing.TB, denom string, decimals uint8) {
	t.Helper()
	FundAccount(t, p.K, p.Ctx, p.Factory, Coin(denom, 1))
	_, err := p.K.Execute(p.Ctx, p.Factory, p.Owner, MustJSON(t, factorytypes.ExecuteMsg{
		AddNativeTokenDecimals: &factorytypes.AddNativeTokenDecimals{Denom: denom, Decimals: decimals},
	}), nil)
	require.NoError(t, err)
}

// CreatePair creates a pair through the factory and returns its registry entry.
func (p *Protocol) CreatePair(t testing.TB, sender sdk.AccAddress, assets [2]choicetypes.Asset, funds sdk.Coins) choicetypes.PairInfo {
	t.Helper()
	_, err := p.K.Execute(p.Ctx, p.Factory, sender, MustJSON(t, factorytypes.ExecuteMsg{
		CreatePair: &factorytypes.CreatePair{Assets: assets},
	}), funds)
	require.NoError(t, err)

	var pair choicetypes.PairInfo
	QuerySmart(t, p.K, p.Ctx, p.Factory, factorytypes.NewPairQuery([2]choicetypes.AssetInfo{assets[0].Info, assets[1].Info}), &pair)
	return pair
}

// NewToken instantiates a contract token holding the given balances.
func (p *Protocol) NewToken(t testing.TB, symbol string, decimals uint8, balances ...cw20types.Balance) sdk.AccAddress {
	t.Helper()
	if balances == nil {
		balances = []cw20types.Balance{}
	}
	addr, _, err := p.K.Instantiate(p.Ctx, p.TokenCodeID, p.Owner, nil, MustJSON(t, cw20types.InstantiateMsg{
		Name:            symbol + " token",
		Symbol:          symbol,
		Decimals:        decimals,
		InitialBalances: balances,
	}), symbol, nil)
	require.NoError(t, err)
	return addr
}

// InstantiatePair creates a pair directly, without the factory, burning into
// the protocol's forwarder.
func (p *Protocol) InstantiatePair(t testing.TB, infos [2]choicetypes.AssetInfo, decimals [2]uint8) sdk.AccAddress {
	t.Helper()
	addr, _, err := p.K.Instantiate(p.Ctx, p.PairCodeID, p.Owner, p.Owner, MustJSON(t, pairtypes.InstantiateMsg{
		AssetInfos:       infos,
		AssetDecimals:    decimals,
		BurnAddress:      p.Forwarder.String(),
		FeeWalletAddress: p.FeeWallet.String(),
	}), "pair", nil)
	require.NoError(t, err)
	return addr
}

// TokenBalance queries a contract token balance.
func (p *Protocol) TokenBalance(t testing.TB, token, addr sdk.AccAddress) math.Int {
	t.Helper()
	var res cw20types.BalanceResponse
	QuerySmart(t, p.K, p.Ctx, token, cw20types.NewBalanceQuery(addr.String()), &res)
	return res.Balance
}

// Approve lets spender pull amount of token from owner.
func (p *Protocol) Approve(t testing.TB, token, owner, spender sdk.AccAddress, amount int64) {
	t.Helper()
	_, err := p.K.Execute(p.Ctx, token, owner, MustJSON(t, cw20types.ExecuteMsg{
		IncreaseAllowance: &cw20types.IncreaseAllowance{Spender: spender.String(), Amount: math.NewInt(amount)},
	}), nil)
	require.NoError(t, err)
}

// BurnedAmount is what reached the auction subaccount in denom.
func (p *Protocol) BurnedAmount(denom string) math.Int {
	return p.K.GetSubaccountDeposit(p.Ctx, p.BurnSubaccount, denom)
}

// AdapterDenom is the factory denom the adapter mints for token.
func (p *Protocol) AdapterDenom(token sdk.AccAddress) string {
	return types.FactoryDenom(p.Adapter.String(), token.String())
}

// DeployRouter instantiates a router over the protocol's factory.
func (p *Protocol) DeployRouter(t testing.TB) sdk.AccAddress {
	t.Helper()
	codeID := p.K.StoreCode(routerkeeper.NewContract())
	addr, _, err := p.K.Instantiate(p.Ctx, codeID, p.Owner, p.Owner, MustJSON(t, routertypes.InstantiateMsg{
		ChoiceFactory: p.Factory.String(),
	}), "router", nil)
	require.NoError(t, err)
	return addr
}
