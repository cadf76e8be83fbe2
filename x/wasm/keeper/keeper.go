package keeper

import (
	"encoding/binary"
	"encoding/json"
	"sort"

	"cosmossdk.io/log"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/metric"

	"github.com/choice-exchange/choice/app/telemetry"
	"github.com/choice-exchange/choice/x/wasm/types"
)

// Keeper hosts Go contract codes: it owns their instances and state, and
// provides the bank, token factory and exchange services they call into.
type Keeper struct {
	storeKey storetypes.StoreKey
	codes    map[uint64]types.Contract
	metrics  *HostMetrics
	otel     *telemetry.ContractMetrics
}

// NewKeeper creates a new contract host Keeper instance
func NewKeeper(key storetypes.StoreKey) *Keeper {
	return &Keeper{
		storeKey: key,
		codes:    make(map[uint64]types.Contract),
		metrics:  NewHostMetrics(),
	}
}

// SetMeter records contract calls and dispatches on meter from now on.
func (k *Keeper) SetMeter(meter metric.Meter) error {
	m, err := telemetry.NewContractMetrics(meter)
	if err != nil {
		return err
	}
	k.otel = m
	return nil
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// StoreCode registers a contract implementation and returns its code id.
// It takes the lowest free code id starting from 1.
func (k Keeper) StoreCode(contract types.Contract) uint64 {
	var codeID uint64 = 1
	for {
		if _, ok := k.codes[codeID]; !ok {
			break
		}
		codeID++
	}
	k.codes[codeID] = contract
	return codeID
}

// SetCode registers a contract implementation under a fixed code id.
func (k Keeper) SetCode(codeID uint64, contract types.Contract) error {
	if _, ok := k.codes[codeID]; ok {
		return types.ErrDuplicateCodeEntry.Wrapf("code %d", codeID)
	}
	k.codes[codeID] = contract
	return nil
}

// CodeIDs lists the registered code ids in ascending order.
func (k Keeper) CodeIDs() []uint64 {
	ids := make([]uint64, 0, len(k.codes))
	for id := range k.codes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// GetParams returns the host parameters, falling back to the defaults.
func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	bz := ctx.KVStore(k.storeKey).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		panic(err)
	}
	return params
}

func (k Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return err
	}
	ctx.KVStore(k.storeKey).Set(types.ParamsKey, bz)
	return nil
}

// GetContractInfo returns the host record of a contract.
func (k Keeper) GetContractInfo(ctx sdk.Context, addr sdk.AccAddress) (types.ContractInfo, error) {
	var info types.ContractInfo
	bz := ctx.KVStore(k.storeKey).Get(types.GetContractKey(addr))
	if bz == nil {
		return info, types.ErrContractNotFound.Wrap(addr.String())
	}
	if err := json.Unmarshal(bz, &info); err != nil {
		return info, err
	}
	return info, nil
}

// IterateContractInfo walks every contract; fn returns true to stop.
func (k Keeper) IterateContractInfo(ctx sdk.Context, fn func(addr sdk.AccAddress, info types.ContractInfo) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.ContractKeyPrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		var info types.ContractInfo
		if err := json.Unmarshal(iter.Value(), &info); err != nil {
			panic(err)
		}
		// keys are length prefixed addresses
		if fn(sdk.AccAddress(iter.Key()[1:]), info) {
			return
		}
	}
}

func (k Keeper) setContractInfo(ctx sdk.Context, addr sdk.AccAddress, info types.ContractInfo) error {
	bz, err := json.Marshal(info)
	if err != nil {
		return err
	}
	ctx.KVStore(k.storeKey).Set(types.GetContractKey(addr), bz)
	return nil
}

func (k Keeper) nextInstanceID(ctx sdk.Context) uint64 {
	store := ctx.KVStore(k.storeKey)
	var seq uint64 = 1
	if bz := store.Get(types.SequenceKey); bz != nil {
		seq = binary.BigEndian.Uint64(bz)
	}
	store.Set(types.SequenceKey, sdk.Uint64ToBigEndian(seq+1))
	return seq
}

// ContractState exposes the raw state of a contract, for queries and tests.
func (k Keeper) ContractState(ctx sdk.Context, addr sdk.AccAddress) storetypes.KVStore {
	return k.contractStore(ctx, addr)
}

// contractStore returns the isolated state namespace of a contract.
func (k Keeper) contractStore(ctx sdk.Context, addr sdk.AccAddress) storetypes.KVStore {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.GetContractStorePrefix(addr))
}

func (k Keeper) env(ctx sdk.Context, contract sdk.AccAddress) types.Env {
	return types.Env{
		Block: types.BlockInfo{
			Height:  ctx.BlockHeight(),
			Time:    ctx.BlockTime(),
			ChainID: ctx.ChainID(),
		},
		Contract: types.ContractEnv{Address: contract.String()},
	}
}

func (k Keeper) deps(ctx sdk.Context, contract sdk.AccAddress, depth int) types.Deps {
	return types.Deps{
		Storage: k.contractStore(ctx, contract),
		Querier: querier{k: k, ctx: ctx, depth: depth},
		Logger:  k.Logger(ctx).With("contract", contract.String()),
	}
}
