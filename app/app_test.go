package app_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/choice-exchange/choice/app"
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	factorytypes "github.com/choice-exchange/choice/x/factory/types"
	pairtypes "github.com/choice-exchange/choice/x/pair/types"
)

var genesisTime = time.Unix(1_700_000_000, 0).UTC()

func newApp(t *testing.T) (*app.ChoiceApp, app.Config) {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.Genesis.GenesisTime = genesisTime
	a, err := app.NewChoiceApp(log.NewNopLogger(), cfg.Genesis)
	require.NoError(t, err)
	return a, cfg
}

func query(t *testing.T, a *app.ChoiceApp, contract string, req, res any) {
	t.Helper()
	bz, err := json.Marshal(req)
	require.NoError(t, err)
	out, err := a.QuerySmart(context.Background(), contract, bz)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, res))
}

func TestNewChoiceApp_DeploysGenesis(t *testing.T) {
	a, cfg := newApp(t)
	require.Equal(t, int64(2), a.Height())
	require.Equal(t, genesisTime, a.BlockTime())

	var fc factorytypes.ConfigResponse
	query(t, a, a.FactoryAddress(), factorytypes.NewConfigQuery(), &fc)
	require.Equal(t, cfg.Genesis.Owner, fc.Owner)
	require.Equal(t, a.CodeIDs().Pair, fc.PairCodeID)
	require.Equal(t, a.ForwarderAddress(), fc.BurnAddress)

	var listed factorytypes.PairsResponse
	query(t, a, a.FactoryAddress(), factorytypes.NewPairsQuery(nil, nil), &listed)
	require.Len(t, listed.Pairs, 2)
	require.Len(t, a.Pairs(), 2)

	token, ok := a.TokenAddress("CHOICE")
	require.True(t, ok)

	var pair choicetypes.PairInfo
	query(t, a, a.FactoryAddress(), factorytypes.NewPairQuery([2]choicetypes.AssetInfo{
		choicetypes.NativeAssetInfo(app.NativeDenom),
		choicetypes.TokenAssetInfo(token.String()),
	}), &pair)
	require.Equal(t, [2]uint8{6, 18}, pair.AssetDecimals)

	var pool pairtypes.PoolResponse
	query(t, a, pair.ContractAddr, pairtypes.NewPoolQuery(), &pool)
	require.Equal(t, math.NewInt(100_000_000_000), pool.Assets[0].Amount)
	require.True(t, pool.TotalShare.IsPositive())
}

func TestExecute_SwapAndRollback(t *testing.T) {
	a, _ := newApp(t)
	trader := app.DevnetAddress("trader")
	injUsdt := a.Pairs()[0]

	offer := choicetypes.NewAsset(choicetypes.NativeAssetInfo(app.NativeDenom), math.NewIntWithDecimal(1, 18))
	var sim pairtypes.SimulationResponse
	query(t, a, injUsdt.String(), pairtypes.NewSimulationQuery(offer), &sim)
	require.True(t, sim.ReturnAmount.IsPositive())

	before := a.Balance(trader, "usdt")
	msg, err := json.Marshal(pairtypes.ExecuteMsg{Swap: &pairtypes.Swap{OfferAsset: offer}})
	require.NoError(t, err)
	_, err = a.Execute(trader, injUsdt, msg, sdk.NewCoins(sdk.NewCoin(app.NativeDenom, offer.Amount)))
	require.NoError(t, err)
	require.Equal(t, before.Amount.Add(sim.ReturnAmount), a.Balance(trader, "usdt").Amount)

	// funds that do not match the offer fail without moving anything
	injBefore := a.Balance(trader, app.NativeDenom)
	_, err = a.Execute(trader, injUsdt, msg, sdk.NewCoins(sdk.NewCoin(app.NativeDenom, math.OneInt())))
	require.ErrorIs(t, err, choicetypes.ErrNativeFundsMismatch)
	require.Equal(t, injBefore, a.Balance(trader, app.NativeDenom))
}

func TestNewChoiceApp_WithMeter(t *testing.T) {
	reader := metricsdk.NewManualReader()
	meter := metricsdk.NewMeterProvider(metricsdk.WithReader(reader)).Meter("test")

	cfg := app.DefaultConfig()
	cfg.Genesis.GenesisTime = genesisTime
	_, err := app.NewChoiceApp(log.NewNopLogger(), cfg.Genesis, app.WithMeter(meter))
	require.NoError(t, err)

	// genesis instantiates and executes contracts through the host
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}
	require.True(t, names["choice.contract.calls"])
	require.True(t, names["choice.contract.duration"])
	require.True(t, names["choice.contract.dispatches"])
}

func TestAdvanceBlock(t *testing.T) {
	a, _ := newApp(t)
	first := a.AdvanceBlock(5 * time.Second)
	second := a.AdvanceBlock(5 * time.Second)

	require.Equal(t, first.Version+1, second.Version)
	require.Equal(t, int64(4), a.Height())
	require.Equal(t, genesisTime.Add(10*time.Second), a.BlockTime())
}

func TestQuerySmart_BadAddress(t *testing.T) {
	a, _ := newApp(t)
	_, err := a.QuerySmart(context.Background(), "nope", json.RawMessage(`{"config":{}}`))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, app.DefaultConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*app.Config)
	}{
		{"no api", func(c *app.Config) { c.API = nil }},
		{"no chain id", func(c *app.Config) { c.Genesis.ChainID = "" }},
		{"bad owner", func(c *app.Config) { c.Genesis.Owner = "owner" }},
		{"bad fee", func(c *app.Config) { c.Genesis.DenomCreationFee = "-1inj" }},
		{"bad coins", func(c *app.Config) { c.Genesis.Accounts[0].Coins = "lots" }},
		{"duplicate token", func(c *app.Config) {
			c.Genesis.Tokens = append(c.Genesis.Tokens, c.Genesis.Tokens[0])
		}},
		{"one sided pair", func(c *app.Config) {
			c.Genesis.Pairs[0].Assets = c.Genesis.Pairs[0].Assets[:1]
		}},
		{"negative seed", func(c *app.Config) { c.Genesis.Pairs[0].Assets[0].Amount = "-5" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := app.DefaultConfig()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestNewChoiceApp_FailedGenesis(t *testing.T) {
	cfg := app.DefaultConfig()
	// the second pair repeats the first
	cfg.Genesis.Pairs[1] = cfg.Genesis.Pairs[0]
	_, err := app.NewChoiceApp(log.NewNopLogger(), cfg.Genesis)
	require.ErrorIs(t, err, factorytypes.ErrPairExists)
}
