package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/metric"

	"github.com/choice-exchange/choice/api"
	auctionkeeper "github.com/choice-exchange/choice/x/auction/keeper"
	cw20keeper "github.com/choice-exchange/choice/x/cw20/keeper"
	factorykeeper "github.com/choice-exchange/choice/x/factory/keeper"
	pairkeeper "github.com/choice-exchange/choice/x/pair/keeper"
	routerkeeper "github.com/choice-exchange/choice/x/router/keeper"
	wasmkeeper "github.com/choice-exchange/choice/x/wasm/keeper"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

var _ api.Backend = (*ChoiceApp)(nil)

// CodeIDs are the code ids every contract implementation is stored under.
type CodeIDs struct {
	Token     uint64 `json:"token"`
	Adapter   uint64 `json:"adapter"`
	Forwarder uint64 `json:"forwarder"`
	Pair      uint64 `json:"pair"`
	Factory   uint64 `json:"factory"`
	Router    uint64 `json:"router"`
}

// ChoiceApp is a single process devnet: the contract host on an in-memory
// store with the whole protocol deployed. Every call is serialised.
type ChoiceApp struct {
	logger log.Logger
	keeper *wasmkeeper.Keeper
	cms    storetypes.CommitMultiStore
	ctx    sdk.Context
	mu     sync.Mutex

	owner     sdk.AccAddress
	codes     CodeIDs
	adapter   sdk.AccAddress
	forwarder sdk.AccAddress
	factory   sdk.AccAddress
	router    sdk.AccAddress
	tokens    map[string]sdk.AccAddress
	pairs     []sdk.AccAddress
}

// Option configures a ChoiceApp before genesis is deployed.
type Option func(*ChoiceApp) error

// WithMeter records contract calls on meter.
func WithMeter(meter metric.Meter) Option {
	return func(a *ChoiceApp) error {
		return a.keeper.SetMeter(meter)
	}
}

// NewChoiceApp builds the host, deploys the protocol described by genesis
// and commits the first block.
func NewChoiceApp(logger log.Logger, genesis GenesisConfig, opts ...Option) (*ChoiceApp, error) {
	if err := genesis.Validate(); err != nil {
		return nil, err
	}

	storeKey := storetypes.NewKVStoreKey(wasmtypes.StoreKey)
	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	genesisTime := genesis.GenesisTime
	if genesisTime.IsZero() {
		genesisTime = time.Now().UTC()
	}

	app := &ChoiceApp{
		logger: logger.With("module", "app"),
		keeper: wasmkeeper.NewKeeper(storeKey),
		cms:    cms,
		tokens: make(map[string]sdk.AccAddress),
	}
	app.ctx = sdk.NewContext(cms, cmtproto.Header{
		ChainID: genesis.ChainID,
		Height:  1,
		Time:    genesisTime,
	}, false, logger)

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	app.storeCodes()
	if err := app.deploy(genesis); err != nil {
		return nil, fmt.Errorf("genesis deployment failed: %w", err)
	}
	app.commit(0)

	app.logger.Info("devnet ready",
		"chain_id", genesis.ChainID,
		"factory", app.factory.String(),
		"router", app.router.String(),
		"pairs", len(app.pairs),
	)
	return app, nil
}

func (a *ChoiceApp) storeCodes() {
	a.codes = CodeIDs{
		Token:     a.keeper.StoreCode(cw20keeper.NewContract()),
		Adapter:   a.keeper.StoreCode(cw20keeper.NewAdapter()),
		Forwarder: a.keeper.StoreCode(auctionkeeper.NewContract()),
		Pair:      a.keeper.StoreCode(pairkeeper.NewContract()),
		Factory:   a.keeper.StoreCode(factorykeeper.NewContract()),
		Router:    a.keeper.StoreCode(routerkeeper.NewContract()),
	}
}

// QuerySmart runs a read-only smart query. Writes made by the contract are
// discarded.
func (a *ChoiceApp) QuerySmart(ctx context.Context, contract string, req json.RawMessage) (json.RawMessage, error) {
	addr, err := sdk.AccAddressFromBech32(contract)
	if err != nil {
		return nil, wasmtypes.ErrInvalidAddress.Wrapf("%s: %s", contract, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	queryCtx, _ := a.ctx.WithContext(ctx).CacheContext()
	return a.keeper.QuerySmart(queryCtx, addr, req)
}

// Execute runs one execute message. A failed message leaves no trace.
func (a *ChoiceApp) Execute(sender, contract sdk.AccAddress, msg json.RawMessage, funds sdk.Coins) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.execute(sender, contract, msg, funds)
}

func (a *ChoiceApp) execute(sender, contract sdk.AccAddress, msg json.RawMessage, funds sdk.Coins) ([]byte, error) {
	ctx := a.ctx.WithEventManager(sdk.NewEventManager())
	return a.keeper.Execute(ctx, contract, sender, msg, funds)
}

// AdvanceBlock commits the current block and opens the next one d later.
func (a *ChoiceApp) AdvanceBlock(d time.Duration) storetypes.CommitID {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.commit(d)
}

func (a *ChoiceApp) commit(d time.Duration) storetypes.CommitID {
	id := a.cms.Commit()
	a.ctx = a.ctx.
		WithBlockHeight(a.ctx.BlockHeight() + 1).
		WithBlockTime(a.ctx.BlockTime().Add(d))
	return id
}

// Height is the height of the block being built.
func (a *ChoiceApp) Height() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctx.BlockHeight()
}

// BlockTime is the time of the block being built.
func (a *ChoiceApp) BlockTime() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctx.BlockTime()
}

// Balance returns the bank balance of addr in denom.
func (a *ChoiceApp) Balance(addr sdk.AccAddress, denom string) sdk.Coin {
	a.mu.Lock()
	defer a.mu.Unlock()
	return sdk.NewCoin(denom, a.keeper.GetBalance(a.ctx, addr, denom))
}

func (a *ChoiceApp) FactoryAddress() string { return a.factory.String() }

func (a *ChoiceApp) RouterAddress() string { return a.router.String() }

func (a *ChoiceApp) ForwarderAddress() string { return a.forwarder.String() }

func (a *ChoiceApp) Owner() sdk.AccAddress { return a.owner }

func (a *ChoiceApp) CodeIDs() CodeIDs { return a.codes }

// TokenAddress returns the contract of a genesis token.
func (a *ChoiceApp) TokenAddress(symbol string) (sdk.AccAddress, bool) {
	addr, ok := a.tokens[symbol]
	return addr, ok
}

// Pairs lists the pair contracts created at genesis, in creation order.
func (a *ChoiceApp) Pairs() []sdk.AccAddress {
	return append([]sdk.AccAddress(nil), a.pairs...)
}
