package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/router/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

type config struct {
	ChoiceFactory sdk.AccAddress `json:"choice_factory"`
}

var configItem = wasmtypes.NewItem[config](types.ConfigKey)

// Contract composes pair swaps into routes. It holds no funds between calls:
// every hop swaps whatever the router received from the previous one.
type Contract struct {
	metrics *RouterMetrics
}

var (
	_ wasmtypes.Contract = Contract{}
	_ wasmtypes.Migrator = Contract{}
)

func NewContract() Contract {
	return Contract{metrics: NewRouterMetrics()}
}

func (Contract) Instantiate(deps wasmtypes.Deps, _ wasmtypes.Env, _ wasmtypes.MessageInfo, raw json.RawMessage) (*wasmtypes.Response, error) {
	var msg types.InstantiateMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}
	factory, err := parseAddr(msg.ChoiceFactory)
	if err != nil {
		return nil, err
	}
	if err := configItem.Save(deps.Storage, config{ChoiceFactory: factory}); err != nil {
		return nil, err
	}
	if err := choicetypes.SetContractVersion(deps.Storage, types.ContractName, types.ContractVersion); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse(), nil
}

func (c Contract) Execute(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, raw json.RawMessage) (res *wasmtypes.Response, err error) {
	var msg types.ExecuteMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	operation := "unknown"
	defer func() {
		if err != nil {
			codespace, _, _ := errorsmod.ABCIInfo(err, false)
			c.metrics.Rejections.WithLabelValues(operation, codespace).Inc()
		}
	}()

	switch {
	case msg.Receive != nil:
		operation = "receive"
		var hook types.Cw20HookMsg
		if err := wasmtypes.DecodeMsg(msg.Receive.Msg, &hook); err != nil {
			return nil, err
		}
		if hook.ExecuteSwapOperations == nil {
			return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown router hook message")
		}
		if _, err := parseAddr(msg.Receive.Sender); err != nil {
			return nil, err
		}
		return c.executeSwapOperations(deps, env, msg.Receive.Sender, hook.ExecuteSwapOperations)

	case msg.ExecuteSwapOperations != nil:
		operation = "execute_swap_operations"
		return c.executeSwapOperations(deps, env, info.Sender, msg.ExecuteSwapOperations)

	case msg.ExecuteSwapOperation != nil:
		operation = "execute_swap_operation"
		m := msg.ExecuteSwapOperation
		return c.executeSwapOperation(deps, env, info, m.Operation, m.To, m.Deadline)

	case msg.AssertMinimumReceive != nil:
		operation = "assert_minimum_receive"
		return assertMinimumReceive(deps, msg.AssertMinimumReceive)
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown router execute message")
}

func (Contract) Query(deps wasmtypes.Deps, _ wasmtypes.Env, raw json.RawMessage) ([]byte, error) {
	var msg types.QueryMsg
	if err := wasmtypes.DecodeMsg(raw, &msg); err != nil {
		return nil, err
	}

	cfg, err := configItem.Load(deps.Storage)
	if err != nil {
		return nil, err
	}

	switch {
	case msg.Config != nil:
		return wasmtypes.EncodeResponse(types.ConfigResponse{ChoiceFactory: cfg.ChoiceFactory.String()})
	case msg.SimulateSwapOperations != nil:
		m := msg.SimulateSwapOperations
		amount, err := simulateSwapOperations(deps, cfg, m.OfferAmount, m.Operations)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(types.SimulateSwapOperationsResponse{Amount: amount})
	case msg.ReverseSimulateSwapOperations != nil:
		m := msg.ReverseSimulateSwapOperations
		amount, err := reverseSimulateSwapOperations(deps, cfg, m.AskAmount, m.Operations)
		if err != nil {
			return nil, err
		}
		return wasmtypes.EncodeResponse(types.SimulateSwapOperationsResponse{Amount: amount})
	}
	return nil, wasmtypes.ErrInvalidMsg.Wrap("unknown router query")
}

func (Contract) Migrate(deps wasmtypes.Deps, _ wasmtypes.Env, _ json.RawMessage) (*wasmtypes.Response, error) {
	if err := choicetypes.MigrateVersion(deps.Storage, types.MigrateTargetVersion, types.ContractName); err != nil {
		return nil, err
	}
	return wasmtypes.NewResponse(), nil
}

func parseAddr(bech string) (sdk.AccAddress, error) {
	addr, err := sdk.AccAddressFromBech32(bech)
	if err != nil {
		return nil, choicetypes.ErrInvalidAddress.Wrapf("%q: %s", bech, err)
	}
	return addr, nil
}
