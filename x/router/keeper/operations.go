package keeper

import (
	"encoding/json"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	factorytypes "github.com/choice-exchange/choice/x/factory/types"
	pairtypes "github.com/choice-exchange/choice/x/pair/types"
	"github.com/choice-exchange/choice/x/router/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// AssertOperations checks a route ends in exactly one asset: every hop's
// offer must be consumed by an earlier ask, save the first.
func AssertOperations(ops []types.SwapOperation) error {
	if len(ops) == 0 {
		return types.ErrNoOperations
	}
	outputs := make(map[string]struct{})
	for _, op := range ops {
		offer, ask, err := op.Assets()
		if err != nil {
			return err
		}
		delete(outputs, offer.String())
		outputs[ask.String()] = struct{}{}
	}
	if len(outputs) != 1 {
		return types.ErrMultipleOutputToken
	}
	return nil
}

// executeSwapOperations expands a route into one self-call per hop and, when
// a minimum is requested, a trailing balance check on the receiver.
func (c Contract) executeSwapOperations(deps wasmtypes.Deps, env wasmtypes.Env, sender string, m *types.ExecuteSwapOperations) (*wasmtypes.Response, error) {
	if err := AssertOperations(m.Operations); err != nil {
		return nil, err
	}
	to := sender
	if m.To != nil {
		if _, err := parseAddr(*m.To); err != nil {
			return nil, err
		}
		to = *m.To
	}
	_, target, _ := m.Operations[len(m.Operations)-1].Assets()

	res := wasmtypes.NewResponse()
	for i, op := range m.Operations {
		hop := &types.ExecuteSwapOperation{Operation: op, Deadline: m.Deadline}
		if i == len(m.Operations)-1 {
			hop.To = &to
		}
		msg, err := wasmtypes.NewExecuteMsg(env.Contract.Address, types.ExecuteMsg{ExecuteSwapOperation: hop}, nil)
		if err != nil {
			return nil, err
		}
		res.AddMessages(msg)
	}

	if m.MinimumReceive != nil {
		prev, err := target.QueryPool(deps.Querier, to)
		if err != nil {
			return nil, err
		}
		msg, err := wasmtypes.NewExecuteMsg(env.Contract.Address, types.ExecuteMsg{
			AssertMinimumReceive: &types.AssertMinimumReceive{
				AssetInfo:      target,
				PrevBalance:    prev,
				MinimumReceive: *m.MinimumReceive,
				Receiver:       to,
			},
		}, nil)
		if err != nil {
			return nil, err
		}
		res.AddMessages(msg)
	}

	c.metrics.Routes.WithLabelValues(strconv.Itoa(len(m.Operations))).Inc()
	deps.Logger.Debug("routing swap", "sender", sender, "to", to, "hops", len(m.Operations))
	return res, nil
}

// executeSwapOperation swaps the router's entire balance of the offer asset
// through the pair the factory registered for the hop.
func (c Contract) executeSwapOperation(deps wasmtypes.Deps, env wasmtypes.Env, info wasmtypes.MessageInfo, op types.SwapOperation, to *string, deadline *uint64) (*wasmtypes.Response, error) {
	if info.Sender != env.Contract.Address {
		return nil, types.ErrUnauthorized.Wrapf("%s is not the router", info.Sender)
	}
	offer, ask, err := op.Assets()
	if err != nil {
		return nil, err
	}
	cfg, err := configItem.Load(deps.Storage)
	if err != nil {
		return nil, err
	}
	pair, err := queryPairInfo(deps, cfg, offer, ask)
	if err != nil {
		return nil, err
	}

	amount, err := offer.QueryPool(deps.Querier, env.Contract.Address)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, types.ErrZeroOfferAmount.Wrap(offer.String())
	}

	msg, err := swapMsg(pair.ContractAddr, choicetypes.NewAsset(offer, amount), to, deadline)
	if err != nil {
		return nil, err
	}
	c.metrics.Hops.WithLabelValues(offer.String(), ask.String()).Inc()
	return wasmtypes.NewResponse().AddMessages(msg), nil
}

// swapMsg offers asset to a pair: natives through Swap with the funds
// attached, tokens through a token Send carrying the swap hook.
func swapMsg(pair string, offer choicetypes.Asset, to *string, deadline *uint64) (wasmtypes.CosmosMsg, error) {
	if offer.Info.NativeToken != nil {
		return wasmtypes.NewExecuteMsg(pair, pairtypes.ExecuteMsg{
			Swap: &pairtypes.Swap{OfferAsset: offer, To: to, Deadline: deadline},
		}, sdk.NewCoins(sdk.NewCoin(offer.Info.NativeToken.Denom, offer.Amount)))
	}
	hook, err := json.Marshal(pairtypes.Cw20HookMsg{Swap: &pairtypes.SwapHook{To: to, Deadline: deadline}})
	if err != nil {
		return wasmtypes.CosmosMsg{}, err
	}
	return wasmtypes.NewExecuteMsg(offer.Info.Token.ContractAddr, cw20types.ExecuteMsg{
		Send: &cw20types.Send{Contract: pair, Amount: offer.Amount, Msg: hook},
	}, nil)
}

func assertMinimumReceive(deps wasmtypes.Deps, m *types.AssertMinimumReceive) (*wasmtypes.Response, error) {
	if _, err := parseAddr(m.Receiver); err != nil {
		return nil, err
	}
	if m.PrevBalance.IsNil() || m.MinimumReceive.IsNil() {
		return nil, wasmtypes.ErrInvalidMsg.Wrap("prev_balance and minimum_receive are required")
	}
	balance, err := m.AssetInfo.QueryPool(deps.Querier, m.Receiver)
	if err != nil {
		return nil, err
	}
	received, err := choicetypes.CheckedSub(balance, m.PrevBalance)
	if err != nil {
		return nil, err
	}
	if received.LT(m.MinimumReceive) {
		return nil, types.ErrMinimumReceiveAssertion.Wrapf("minimum receive amount: %s, swap amount: %s", m.MinimumReceive, received)
	}
	return wasmtypes.NewResponse(), nil
}

func queryPairInfo(deps wasmtypes.Deps, cfg config, offer, ask choicetypes.AssetInfo) (choicetypes.PairInfo, error) {
	var pair choicetypes.PairInfo
	err := deps.Querier.Smart(cfg.ChoiceFactory.String(), factorytypes.NewPairQuery([2]choicetypes.AssetInfo{offer, ask}), &pair)
	return pair, err
}

func simulateSwapOperations(deps wasmtypes.Deps, cfg config, offerAmount math.Int, ops []types.SwapOperation) (math.Int, error) {
	if len(ops) == 0 {
		return math.Int{}, types.ErrNoOperations
	}
	if offerAmount.IsNil() {
		return math.Int{}, wasmtypes.ErrInvalidMsg.Wrap("offer_amount is required")
	}
	amount := offerAmount
	for _, op := range ops {
		offer, ask, err := op.Assets()
		if err != nil {
			return math.Int{}, err
		}
		pair, err := queryPairInfo(deps, cfg, offer, ask)
		if err != nil {
			return math.Int{}, err
		}
		var sim pairtypes.SimulationResponse
		if err := deps.Querier.Smart(pair.ContractAddr, pairtypes.NewSimulationQuery(choicetypes.NewAsset(offer, amount)), &sim); err != nil {
			return math.Int{}, err
		}
		amount = sim.ReturnAmount
	}
	return amount, nil
}

// reverseSimulateSwapOperations walks the route backwards to find the offer
// amount that returns askAmount.
func reverseSimulateSwapOperations(deps wasmtypes.Deps, cfg config, askAmount math.Int, ops []types.SwapOperation) (math.Int, error) {
	if len(ops) == 0 {
		return math.Int{}, types.ErrNoOperations
	}
	if askAmount.IsNil() {
		return math.Int{}, wasmtypes.ErrInvalidMsg.Wrap("ask_amount is required")
	}
	amount := askAmount
	for i := len(ops) - 1; i >= 0; i-- {
		offer, ask, err := ops[i].Assets()
		if err != nil {
			return math.Int{}, err
		}
		pair, err := queryPairInfo(deps, cfg, offer, ask)
		if err != nil {
			return math.Int{}, err
		}
		var sim pairtypes.ReverseSimulationResponse
		if err := deps.Querier.Smart(pair.ContractAddr, pairtypes.NewReverseSimulationQuery(choicetypes.NewAsset(ask, amount)), &sim); err != nil {
			return math.Int{}, err
		}
		amount = sim.OfferAmount
	}
	return amount, nil
}
