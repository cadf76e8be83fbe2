package keeper_test

import (
	"encoding/json"
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/choice-exchange/choice/testutil/keeper"
	"github.com/choice-exchange/choice/x/wasm/keeper"
	"github.com/choice-exchange/choice/x/wasm/types"
)

// probe is a minimal contract used to drive the host from tests.
type probe struct{}

type probeExecute struct {
	Dispatch *struct {
		Msgs    []types.CosmosMsg `json:"msgs"`
		ReplyOn types.ReplyOn     `json:"reply_on"`
	} `json:"dispatch,omitempty"`
	Store *struct {
		Value string `json:"value"`
	} `json:"store,omitempty"`
	Fail *struct{} `json:"fail,omitempty"`
}

var lastReplyKey = []byte("last_reply")

func (probe) Instantiate(deps types.Deps, _ types.Env, info types.MessageInfo, _ json.RawMessage) (*types.Response, error) {
	deps.Storage.Set([]byte("creator"), []byte(info.Sender))
	return types.NewResponse().AddAttribute("action", "instantiate"), nil
}

func (probe) Execute(deps types.Deps, _ types.Env, _ types.MessageInfo, msg json.RawMessage) (*types.Response, error) {
	var m probeExecute
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	switch {
	case m.Dispatch != nil:
		res := types.NewResponse()
		for i, cm := range m.Dispatch.Msgs {
			res.AddSubMessage(types.SubMsg{ID: uint64(i + 1), Msg: cm, ReplyOn: m.Dispatch.ReplyOn})
		}
		return res, nil
	case m.Store != nil:
		deps.Storage.Set([]byte("value"), []byte(m.Store.Value))
		return types.NewResponse().
			AddAttribute("action", "store").
			AddEvent(types.Event{Type: "stored", Attributes: []types.Attribute{{Key: "value", Value: m.Store.Value}}}).
			SetData([]byte(m.Store.Value)), nil
	case m.Fail != nil:
		return nil, errors.New("probe failure")
	}
	return nil, types.ErrInvalidMsg
}

func (probe) Query(deps types.Deps, _ types.Env, _ json.RawMessage) ([]byte, error) {
	return types.EncodeResponse(map[string]string{"value": string(deps.Storage.Get([]byte("value")))})
}

func (probe) Reply(deps types.Deps, _ types.Env, reply types.Reply) (*types.Response, error) {
	bz, err := json.Marshal(reply)
	if err != nil {
		return nil, err
	}
	deps.Storage.Set(lastReplyKey, bz)
	return types.NewResponse(), nil
}

func execMsg(t *testing.T, v any) json.RawMessage {
	t.Helper()
	bz, err := json.Marshal(v)
	require.NoError(t, err)
	return bz
}

func setupProbe(t *testing.T) (*keeper.Keeper, sdk.Context, sdk.AccAddress, sdk.AccAddress) {
	k, ctx := keepertest.WasmKeeper(t)
	codeID := k.StoreCode(probe{})
	creator := keepertest.TestAddr()

	addr, _, err := k.Instantiate(ctx, codeID, creator, creator, []byte(`{}`), "probe", nil)
	require.NoError(t, err)
	return k, ctx, addr, creator
}

func TestInstantiate_AssignsDistinctAddresses(t *testing.T) {
	k, ctx := keepertest.WasmKeeper(t)
	codeID := k.StoreCode(probe{})
	creator := keepertest.TestAddr()

	first, _, err := k.Instantiate(ctx, codeID, creator, nil, []byte(`{}`), "one", nil)
	require.NoError(t, err)
	second, _, err := k.Instantiate(ctx, codeID, creator, nil, []byte(`{}`), "two", nil)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.Len(t, first, types.ContractAddrLen)

	info, err := k.GetContractInfo(ctx, first)
	require.NoError(t, err)
	require.Equal(t, codeID, info.CodeID)
	require.Equal(t, "one", info.Label)
	require.Empty(t, info.Admin)

	var seen int
	k.IterateContractInfo(ctx, func(sdk.AccAddress, types.ContractInfo) bool {
		seen++
		return false
	})
	require.Equal(t, 2, seen)
}

func TestInstantiate_UnknownCode(t *testing.T) {
	k, ctx := keepertest.WasmKeeper(t)
	_, _, err := k.Instantiate(ctx, 42, keepertest.TestAddr(), nil, []byte(`{}`), "x", nil)
	require.ErrorIs(t, err, types.ErrUnknownCode)
}

func TestExecute_EmitsContractEvents(t *testing.T) {
	k, ctx, addr, creator := setupProbe(t)
	ctx = ctx.WithEventManager(sdk.NewEventManager())

	data, err := k.Execute(ctx, addr, creator, execMsg(t, map[string]any{"store": map[string]string{"value": "hello"}}), nil)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	events := ctx.EventManager().Events()
	action, ok := keeper.FindAttribute(events, "wasm", "action")
	require.True(t, ok)
	require.Equal(t, "store", action)
	value, ok := keeper.FindAttribute(events, "wasm-stored", "value")
	require.True(t, ok)
	require.Equal(t, "hello", value)
	contract, ok := keeper.FindAttribute(events, "wasm", "_contract_address")
	require.True(t, ok)
	require.Equal(t, addr.String(), contract)

	out, err := k.QuerySmart(ctx, addr, []byte(`{}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"value":"hello"}`, string(out))
}

func TestExecute_FailureRollsBackFunds(t *testing.T) {
	k, ctx, addr, creator := setupProbe(t)
	keepertest.FundAccount(t, k, ctx, creator, keepertest.Coin("uinj", 100))

	_, err := k.Execute(ctx, addr, creator, execMsg(t, map[string]any{"fail": map[string]any{}}), sdk.NewCoins(keepertest.Coin("uinj", 40)))
	require.Error(t, err)

	require.Equal(t, math.NewInt(100), k.GetBalance(ctx, creator, "uinj"))
	require.True(t, k.GetBalance(ctx, addr, "uinj").IsZero())
}

func TestDispatch_BankSendFromContract(t *testing.T) {
	k, ctx, addr, creator := setupProbe(t)
	recipient := keepertest.TestAddr()
	keepertest.FundAccount(t, k, ctx, addr, keepertest.Coin("uinj", 50))

	msg := map[string]any{"dispatch": map[string]any{
		"msgs":     []types.CosmosMsg{types.NewBankSendMsg(recipient.String(), keepertest.Coin("uinj", 20))},
		"reply_on": types.ReplyNever,
	}}
	_, err := k.Execute(ctx, addr, creator, execMsg(t, msg), nil)
	require.NoError(t, err)

	require.Equal(t, math.NewInt(20), k.GetBalance(ctx, recipient, "uinj"))
	require.Equal(t, math.NewInt(30), k.GetBalance(ctx, addr, "uinj"))
}

func TestDispatch_FailureWithoutReplyAborts(t *testing.T) {
	k, ctx, addr, creator := setupProbe(t)
	recipient := keepertest.TestAddr()
	keepertest.FundAccount(t, k, ctx, addr, keepertest.Coin("uinj", 50))

	msg := map[string]any{"dispatch": map[string]any{
		"msgs": []types.CosmosMsg{
			types.NewBankSendMsg(recipient.String(), keepertest.Coin("uinj", 20)),
			types.NewBankSendMsg(recipient.String(), keepertest.Coin("uinj", 100)),
		},
		"reply_on": types.ReplyNever,
	}}
	_, err := k.Execute(ctx, addr, creator, execMsg(t, msg), nil)
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	// the first transfer is rolled back together with the call
	require.True(t, k.GetBalance(ctx, recipient, "uinj").IsZero())
	require.Equal(t, math.NewInt(50), k.GetBalance(ctx, addr, "uinj"))
}

func TestDispatch_ErrorReplyKeepsCaller(t *testing.T) {
	k, ctx, addr, creator := setupProbe(t)
	recipient := keepertest.TestAddr()

	msg := map[string]any{"dispatch": map[string]any{
		"msgs":     []types.CosmosMsg{types.NewBankSendMsg(recipient.String(), keepertest.Coin("uinj", 1))},
		"reply_on": types.ReplyError,
	}}
	_, err := k.Execute(ctx, addr, creator, execMsg(t, msg), nil)
	require.NoError(t, err)

	reply := lastReply(t, k, ctx, addr)
	require.Equal(t, uint64(1), reply.ID)
	require.Nil(t, reply.Result.Ok)
	require.Contains(t, reply.Result.Err, "insufficient funds")
}

func TestDispatch_InstantiateReplyCarriesAddress(t *testing.T) {
	k, ctx, addr, creator := setupProbe(t)

	inst, err := types.NewInstantiateMsg(1, addr.String(), "child", map[string]any{}, nil)
	require.NoError(t, err)
	msg := map[string]any{"dispatch": map[string]any{
		"msgs":     []types.CosmosMsg{inst},
		"reply_on": types.ReplySuccess,
	}}
	_, err = k.Execute(ctx, addr, creator, execMsg(t, msg), nil)
	require.NoError(t, err)

	reply := lastReply(t, k, ctx, addr)
	require.NotNil(t, reply.Result.Ok)
	require.Len(t, reply.Result.Ok.MsgResponses, 1)
	require.Equal(t, types.MsgInstantiateContractResponseTypeURL, reply.Result.Ok.MsgResponses[0].TypeURL)

	parsed, err := types.ParseInstantiateResponse(reply.Result.Ok.MsgResponses[0].Value)
	require.NoError(t, err)
	child, err := sdk.AccAddressFromBech32(parsed.Address)
	require.NoError(t, err)

	info, err := k.GetContractInfo(ctx, child)
	require.NoError(t, err)
	require.Equal(t, addr.String(), info.Creator)
	require.Equal(t, addr.String(), info.Admin)
}

func TestMigrate_RequiresAdmin(t *testing.T) {
	k, ctx, addr, creator := setupProbe(t)

	_, err := k.Migrate(ctx, addr, keepertest.TestAddr(), 1, []byte(`{}`))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// probe has no migrate entry point
	_, err = k.Migrate(ctx, addr, creator, 1, []byte(`{}`))
	require.ErrorIs(t, err, types.ErrNotMigratable)
}

func TestQuerySmart_DoesNotPersistWrites(t *testing.T) {
	k, ctx, addr, _ := setupProbe(t)
	out, err := k.QuerySmart(ctx, addr, []byte(`{}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"value":""}`, string(out))

	_, err = k.QuerySmart(ctx, keepertest.TestAddr(), []byte(`{}`))
	require.ErrorIs(t, err, types.ErrContractNotFound)
}

func TestSetCode_Duplicate(t *testing.T) {
	k, _ := keepertest.WasmKeeper(t)
	require.NoError(t, k.SetCode(7, probe{}))
	require.ErrorIs(t, k.SetCode(7, probe{}), types.ErrDuplicateCodeEntry)
	require.Equal(t, uint64(1), k.StoreCode(probe{}))
	require.Equal(t, []uint64{1, 7}, k.CodeIDs())
}

func lastReply(t *testing.T, k *keeper.Keeper, ctx sdk.Context, addr sdk.AccAddress) types.Reply {
	t.Helper()
	bz := k.ContractState(ctx, addr).Get(lastReplyKey)
	require.NotNil(t, bz, "no reply recorded")
	var reply types.Reply
	require.NoError(t, json.Unmarshal(bz, &reply))
	return reply
}
