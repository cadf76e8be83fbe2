package keeper

import (
	"encoding/json"
	"strconv"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/choice-exchange/choice/app/telemetry"
	"github.com/choice-exchange/choice/x/wasm/types"
)

// Instantiate creates a new contract from codeID. The call, and every message
// the contract dispatches, commits atomically or not at all.
func (k Keeper) Instantiate(
	ctx sdk.Context,
	codeID uint64,
	creator sdk.AccAddress,
	admin sdk.AccAddress,
	msg json.RawMessage,
	label string,
	funds sdk.Coins,
) (sdk.AccAddress, []byte, error) {
	cacheCtx, commit := ctx.CacheContext()
	adminAddr := ""
	if admin != nil {
		adminAddr = admin.String()
	}
	addr, data, err := k.instantiate(cacheCtx, codeID, creator, adminAddr, msg, label, funds, 0)
	if err != nil {
		return nil, nil, err
	}
	commit()
	return addr, data, nil
}

// Execute calls a contract's execute entry point atomically.
func (k Keeper) Execute(ctx sdk.Context, contract, caller sdk.AccAddress, msg json.RawMessage, funds sdk.Coins) ([]byte, error) {
	cacheCtx, commit := ctx.CacheContext()
	data, err := k.execute(cacheCtx, contract, caller, msg, funds, 0)
	if err != nil {
		return nil, err
	}
	commit()
	return data, nil
}

// Migrate moves a contract onto newCodeID; only the contract admin may do so.
func (k Keeper) Migrate(ctx sdk.Context, contract, caller sdk.AccAddress, newCodeID uint64, msg json.RawMessage) ([]byte, error) {
	cacheCtx, commit := ctx.CacheContext()
	data, err := k.migrate(cacheCtx, contract, caller, newCodeID, msg, 0)
	if err != nil {
		return nil, err
	}
	commit()
	return data, nil
}

// QuerySmart runs a read-only JSON query against a contract. State changes a
// query might attempt are discarded.
func (k Keeper) QuerySmart(ctx sdk.Context, contract sdk.AccAddress, req json.RawMessage) ([]byte, error) {
	cacheCtx, _ := ctx.CacheContext()
	return k.query(cacheCtx, contract, req, 0)
}

func (k Keeper) instantiate(
	ctx sdk.Context,
	codeID uint64,
	creator sdk.AccAddress,
	admin string,
	msg json.RawMessage,
	label string,
	funds sdk.Coins,
	depth int,
) (addr sdk.AccAddress, data []byte, err error) {
	code, ok := k.codes[codeID]
	if !ok {
		return nil, nil, types.ErrUnknownCode.Wrapf("code %d", codeID)
	}

	addr = types.BuildContractAddress(codeID, k.nextInstanceID(ctx))
	if ctx.KVStore(k.storeKey).Has(types.GetContractKey(addr)) {
		return nil, nil, types.ErrInvalidMsg.Wrapf("contract %s already exists", addr)
	}

	done := k.trackCall(&ctx, "instantiate", addr, depth)
	defer func() { done(err) }()

	info := types.ContractInfo{CodeID: codeID, Creator: creator.String(), Admin: admin, Label: label}
	if err := k.setContractInfo(ctx, addr, info); err != nil {
		return nil, nil, err
	}
	if err := k.transferFunds(ctx, creator, addr, funds); err != nil {
		return nil, nil, err
	}

	res, err := code.Instantiate(k.deps(ctx, addr, depth), k.env(ctx, addr), types.MessageInfo{
		Sender: creator.String(),
		Funds:  funds,
	}, msg)
	if err != nil {
		return nil, nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"instantiate",
		sdk.NewAttribute("_contract_address", addr.String()),
		sdk.NewAttribute("code_id", strconv.FormatUint(codeID, 10)),
	))
	k.metrics.Instantiations.WithLabelValues(strconv.FormatUint(codeID, 10)).Inc()

	data, err = k.handleResponse(ctx, addr, res, depth)
	if err != nil {
		return nil, nil, err
	}
	return addr, data, nil
}

func (k Keeper) execute(ctx sdk.Context, contract, caller sdk.AccAddress, msg json.RawMessage, funds sdk.Coins, depth int) (data []byte, err error) {
	info, err := k.GetContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	code, ok := k.codes[info.CodeID]
	if !ok {
		return nil, types.ErrUnknownCode.Wrapf("code %d", info.CodeID)
	}

	done := k.trackCall(&ctx, "execute", contract, depth)
	defer func() { done(err) }()

	if err := k.transferFunds(ctx, caller, contract, funds); err != nil {
		return nil, err
	}

	res, err := code.Execute(k.deps(ctx, contract, depth), k.env(ctx, contract), types.MessageInfo{
		Sender: caller.String(),
		Funds:  funds,
	}, msg)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"execute",
		sdk.NewAttribute("_contract_address", contract.String()),
	))
	return k.handleResponse(ctx, contract, res, depth)
}

func (k Keeper) migrate(ctx sdk.Context, contract, caller sdk.AccAddress, newCodeID uint64, msg json.RawMessage, depth int) (data []byte, err error) {
	info, err := k.GetContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	if info.Admin == "" || info.Admin != caller.String() {
		return nil, types.ErrUnauthorized.Wrapf("%s cannot migrate %s", caller, contract)
	}
	code, ok := k.codes[newCodeID]
	if !ok {
		return nil, types.ErrUnknownCode.Wrapf("code %d", newCodeID)
	}
	migrator, ok := code.(types.Migrator)
	if !ok {
		return nil, types.ErrNotMigratable.Wrapf("code %d", newCodeID)
	}

	done := k.trackCall(&ctx, "migrate", contract, depth)
	defer func() { done(err) }()

	info.CodeID = newCodeID
	if err := k.setContractInfo(ctx, contract, info); err != nil {
		return nil, err
	}

	res, err := migrator.Migrate(k.deps(ctx, contract, depth), k.env(ctx, contract), msg)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"migrate",
		sdk.NewAttribute("_contract_address", contract.String()),
		sdk.NewAttribute("code_id", strconv.FormatUint(newCodeID, 10)),
	))
	k.metrics.Migrations.WithLabelValues(strconv.FormatUint(newCodeID, 10)).Inc()

	return k.handleResponse(ctx, contract, res, depth)
}

func (k Keeper) reply(ctx sdk.Context, contract sdk.AccAddress, reply types.Reply, depth int) (data []byte, err error) {
	info, err := k.GetContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	replier, ok := k.codes[info.CodeID].(types.Replier)
	if !ok {
		return nil, types.ErrNoReplyHandler.Wrapf("code %d", info.CodeID)
	}

	done := k.trackCall(&ctx, "reply", contract, depth)
	defer func() { done(err) }()

	res, err := replier.Reply(k.deps(ctx, contract, depth), k.env(ctx, contract), reply)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		"reply",
		sdk.NewAttribute("_contract_address", contract.String()),
	))
	return k.handleResponse(ctx, contract, res, depth)
}

func (k Keeper) query(ctx sdk.Context, contract sdk.AccAddress, req json.RawMessage, depth int) (bz []byte, err error) {
	if depth > int(k.GetParams(ctx).MaxCallDepth) {
		return nil, types.ErrMaxCallDepth.Wrapf("query depth %d", depth)
	}
	info, err := k.GetContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	code, ok := k.codes[info.CodeID]
	if !ok {
		return nil, types.ErrUnknownCode.Wrapf("code %d", info.CodeID)
	}

	done := k.trackCall(&ctx, "query", contract, depth)
	defer func() { done(err) }()

	return code.Query(k.deps(ctx, contract, depth), k.env(ctx, contract), req)
}

func (k Keeper) transferFunds(ctx sdk.Context, from, to sdk.AccAddress, funds sdk.Coins) error {
	if funds.IsZero() {
		return nil
	}
	return k.SendCoins(ctx, from, to, funds)
}

// trackCall opens a span for an entry point call and returns the closure that
// records its outcome.
func (k Keeper) trackCall(ctx *sdk.Context, entryPoint string, contract sdk.AccAddress, depth int) func(error) {
	start := time.Now()
	spanCtx, span := telemetry.StartContractSpan(ctx.Context(), entryPoint, contract.String(), depth)
	*ctx = ctx.WithContext(spanCtx)

	return func(err error) {
		status := "success"
		if err != nil {
			status = "failed"
			telemetry.RecordError(span, err)
		}
		span.End()
		elapsed := time.Since(start)
		k.metrics.Calls.WithLabelValues(entryPoint, status).Inc()
		k.metrics.CallLatency.WithLabelValues(entryPoint).Observe(elapsed.Seconds())
		k.otel.RecordCall(spanCtx, entryPoint, status, elapsed)
	}
}
