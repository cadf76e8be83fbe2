package keeper

import (
	"strings"

	abci "github.com/cometbft/cometbft/abci/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/choice-exchange/choice/app/telemetry"
	"github.com/choice-exchange/choice/x/wasm/types"
)

// handleResponse emits the contract's events and runs its messages in order.
// Each sub-message runs in its own cache; a failure without an error reply
// aborts the caller. The returned data is the contract's own data unless a
// reply overrode it.
func (k Keeper) handleResponse(ctx sdk.Context, contract sdk.AccAddress, res *types.Response, depth int) ([]byte, error) {
	if res == nil {
		return nil, nil
	}

	if len(res.Attributes) > 0 {
		attrs := make([]sdk.Attribute, 0, len(res.Attributes)+1)
		attrs = append(attrs, sdk.NewAttribute("_contract_address", contract.String()))
		for _, attr := range res.Attributes {
			attrs = append(attrs, sdk.NewAttribute(attr.Key, attr.Value))
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent("wasm", attrs...))
	}
	for _, ev := range res.Events {
		attrs := make([]sdk.Attribute, 0, len(ev.Attributes)+1)
		attrs = append(attrs, sdk.NewAttribute("_contract_address", contract.String()))
		for _, attr := range ev.Attributes {
			attrs = append(attrs, sdk.NewAttribute(attr.Key, attr.Value))
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent("wasm-"+strings.TrimSpace(ev.Type), attrs...))
	}

	data := res.Data
	for _, sub := range res.Messages {
		replyData, err := k.dispatchSubMsg(ctx, contract, sub, depth)
		if err != nil {
			return nil, err
		}
		if replyData != nil {
			data = replyData
		}
	}
	return data, nil
}

func (k Keeper) dispatchSubMsg(ctx sdk.Context, contract sdk.AccAddress, sub types.SubMsg, depth int) ([]byte, error) {
	subCtx, commit := ctx.CacheContext()
	data, msgRes, err := k.dispatchMsg(subCtx, contract, sub.Msg, depth+1)

	if err != nil {
		if !sub.ReplyOn.OnError() {
			return nil, err
		}
		k.Logger(ctx).Debug("sub-message failed", "contract", contract.String(), "id", sub.ID, "err", err)
		k.metrics.Replies.WithLabelValues("error").Inc()
		replyEvent(ctx, sub.ID, "error")
		return k.reply(ctx, contract, types.Reply{
			ID:      sub.ID,
			Payload: sub.Payload,
			Result:  types.SubMsgResult{Err: err.Error()},
		}, depth)
	}

	events := subCtx.EventManager().Events()
	commit()

	if !sub.ReplyOn.OnSuccess() {
		return nil, nil
	}

	k.metrics.Replies.WithLabelValues("success").Inc()
	replyEvent(ctx, sub.ID, "success")
	var msgResponses []types.MsgResponse
	if msgRes != nil {
		msgResponses = append(msgResponses, *msgRes)
	}
	return k.reply(ctx, contract, types.Reply{
		ID:      sub.ID,
		Payload: sub.Payload,
		Result: types.SubMsgResult{Ok: &types.SubMsgResponse{
			Events:       toContractEvents(events),
			Data:         data,
			MsgResponses: msgResponses,
		}},
	}, depth)
}

// replyEvent marks a reply on the span of the calling contract.
func replyEvent(ctx sdk.Context, id uint64, outcome string) {
	telemetry.AddSpanEvent(trace.SpanFromContext(ctx.Context()), "reply",
		attribute.Int64("reply.id", int64(id)),
		attribute.String("reply.outcome", outcome),
	)
}

// dispatchMsg executes one message on behalf of contract. It returns the data
// of a called contract and the protobuf message response, if the message kind
// produces one.
func (k Keeper) dispatchMsg(ctx sdk.Context, contract sdk.AccAddress, msg types.CosmosMsg, depth int) (data []byte, res *types.MsgResponse, err error) {
	msgType := msgTypeOf(msg)

	if depth > int(k.GetParams(ctx).MaxCallDepth) {
		return nil, nil, types.ErrMaxCallDepth.Wrapf("depth %d dispatching %s", depth, msgType)
	}

	spanCtx, span := telemetry.StartDispatchSpan(ctx.Context(), msgType, contract.String())
	ctx = ctx.WithContext(spanCtx)
	defer func() {
		status := "success"
		if err != nil {
			status = "failed"
			telemetry.RecordError(span, err)
		}
		span.End()
		k.metrics.Dispatches.WithLabelValues(msgType, status).Inc()
		k.otel.RecordDispatch(spanCtx, msgType, status)
	}()

	switch {
	case msg.Bank != nil && msg.Bank.Send != nil:
		to, err := parseAddress(msg.Bank.Send.ToAddress)
		if err != nil {
			return nil, nil, err
		}
		return nil, nil, k.SendCoins(ctx, contract, to, msg.Bank.Send.Amount)

	case msg.Bank != nil && msg.Bank.Burn != nil:
		return nil, nil, k.BurnCoins(ctx, contract, msg.Bank.Burn.Amount)

	case msg.Wasm != nil && msg.Wasm.Execute != nil:
		target, err := parseAddress(msg.Wasm.Execute.ContractAddr)
		if err != nil {
			return nil, nil, err
		}
		data, err := k.execute(ctx, target, contract, msg.Wasm.Execute.Msg, msg.Wasm.Execute.Funds, depth)
		if err != nil {
			return nil, nil, err
		}
		return data, &types.MsgResponse{
			TypeURL: types.MsgExecuteContractResponseTypeURL,
			Value:   types.MarshalExecuteResponse(data),
		}, nil

	case msg.Wasm != nil && msg.Wasm.Instantiate != nil:
		inst := msg.Wasm.Instantiate
		if inst.Admin != "" {
			if _, err := parseAddress(inst.Admin); err != nil {
				return nil, nil, err
			}
		}
		addr, data, err := k.instantiate(ctx, inst.CodeID, contract, inst.Admin, inst.Msg, inst.Label, inst.Funds, depth)
		if err != nil {
			return nil, nil, err
		}
		return data, &types.MsgResponse{
			TypeURL: types.MsgInstantiateContractResponseTypeURL,
			Value:   types.InstantiateResponse{Address: addr.String(), Data: data}.Marshal(),
		}, nil

	case msg.Wasm != nil && msg.Wasm.Migrate != nil:
		target, err := parseAddress(msg.Wasm.Migrate.ContractAddr)
		if err != nil {
			return nil, nil, err
		}
		data, err := k.migrate(ctx, target, contract, msg.Wasm.Migrate.NewCodeID, msg.Wasm.Migrate.Msg, depth)
		return data, nil, err

	case msg.TokenFactory != nil && msg.TokenFactory.CreateDenom != nil:
		_, err := k.CreateDenom(ctx, contract, msg.TokenFactory.CreateDenom.Subdenom)
		return nil, nil, err

	case msg.TokenFactory != nil && msg.TokenFactory.MintTokens != nil:
		mint := msg.TokenFactory.MintTokens
		to, err := parseAddress(mint.MintToAddress)
		if err != nil {
			return nil, nil, err
		}
		return nil, nil, k.MintTokens(ctx, contract, mint.Denom, mint.Amount, to)

	case msg.TokenFactory != nil && msg.TokenFactory.BurnTokens != nil:
		burn := msg.TokenFactory.BurnTokens
		return nil, nil, k.BurnTokens(ctx, contract, burn.Denom, burn.Amount)

	case msg.TokenFactory != nil && msg.TokenFactory.SetMetadata != nil:
		md := msg.TokenFactory.SetMetadata
		return nil, nil, k.SetDenomMetadata(ctx, contract, md.Denom, md.Metadata)

	case msg.Exchange != nil && msg.Exchange.Deposit != nil:
		dep := msg.Exchange.Deposit
		return nil, nil, k.Deposit(ctx, contract, dep.SubaccountID, dep.Amount)

	case msg.Exchange != nil && msg.Exchange.ExternalTransfer != nil:
		tr := msg.Exchange.ExternalTransfer
		return nil, nil, k.ExternalTransfer(ctx, contract, tr.SourceSubaccountID, tr.DestinationSubaccountID, tr.Amount)
	}

	return nil, nil, types.ErrInvalidMsg.Wrap("empty or unsupported cosmos message")
}

func msgTypeOf(msg types.CosmosMsg) string {
	switch {
	case msg.Bank != nil && msg.Bank.Send != nil:
		return "bank_send"
	case msg.Bank != nil && msg.Bank.Burn != nil:
		return "bank_burn"
	case msg.Wasm != nil && msg.Wasm.Execute != nil:
		return "wasm_execute"
	case msg.Wasm != nil && msg.Wasm.Instantiate != nil:
		return "wasm_instantiate"
	case msg.Wasm != nil && msg.Wasm.Migrate != nil:
		return "wasm_migrate"
	case msg.TokenFactory != nil:
		return "token_factory"
	case msg.Exchange != nil:
		return "exchange"
	default:
		return "unknown"
	}
}

func parseAddress(bech string) (sdk.AccAddress, error) {
	addr, err := sdk.AccAddressFromBech32(bech)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("%q: %s", bech, err)
	}
	return addr, nil
}

func toContractEvents(events sdk.Events) []types.Event {
	out := make([]types.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, types.Event{Type: ev.Type, Attributes: toContractAttributes(ev.Attributes)})
	}
	return out
}

func toContractAttributes(attrs []abci.EventAttribute) []types.Attribute {
	out := make([]types.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, types.Attribute{Key: attr.Key, Value: attr.Value})
	}
	return out
}

// FindAttribute returns the value of key on the first event of type evType.
func FindAttribute(events sdk.Events, evType, key string) (string, bool) {
	for _, ev := range events {
		if ev.Type != evType {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
	}
	return "", false
}
