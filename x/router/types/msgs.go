package types

import (
	"cosmossdk.io/math"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
)

type InstantiateMsg struct {
	ChoiceFactory string `json:"choice_factory"`
}

// SwapOperation is one hop of a route. Choice is the only kind of hop, a
// swap through a factory registered pair.
type SwapOperation struct {
	Choice *ChoiceSwap `json:"choice,omitempty"`
}

type ChoiceSwap struct {
	OfferAssetInfo choicetypes.AssetInfo `json:"offer_asset_info"`
	AskAssetInfo   choicetypes.AssetInfo `json:"ask_asset_info"`
}

// NewSwapOperation is shorthand for a Choice hop.
func NewSwapOperation(offer, ask choicetypes.AssetInfo) SwapOperation {
	return SwapOperation{Choice: &ChoiceSwap{OfferAssetInfo: offer, AskAssetInfo: ask}}
}

// Assets returns the offer and ask side of the hop.
func (op SwapOperation) Assets() (offer, ask choicetypes.AssetInfo, err error) {
	if op.Choice == nil {
		return offer, ask, ErrInvalidOperation.Wrap("empty operation")
	}
	if err := op.Choice.OfferAssetInfo.Validate(); err != nil {
		return offer, ask, err
	}
	if err := op.Choice.AskAssetInfo.Validate(); err != nil {
		return offer, ask, err
	}
	return op.Choice.OfferAssetInfo, op.Choice.AskAssetInfo, nil
}

// ExecuteMsg is the router's execute message. Exactly one field is set.
type ExecuteMsg struct {
	// Receive is the token hook; its msg decodes into Cw20HookMsg.
	Receive               *cw20types.ReceiveMsg  `json:"receive,omitempty"`
	ExecuteSwapOperations *ExecuteSwapOperations `json:"execute_swap_operations,omitempty"`
	ExecuteSwapOperation  *ExecuteSwapOperation  `json:"execute_swap_operation,omitempty"`
	AssertMinimumReceive  *AssertMinimumReceive  `json:"assert_minimum_receive,omitempty"`
}

// ExecuteSwapOperations runs a route. Natives for the first hop are attached
// as funds; tokens arrive through the token's Send.
type ExecuteSwapOperations struct {
	Operations     []SwapOperation `json:"operations"`
	MinimumReceive *math.Int       `json:"minimum_receive,omitempty"`
	To             *string         `json:"to,omitempty"`
	Deadline       *uint64         `json:"deadline,omitempty"`
}

// ExecuteSwapOperation swaps the router's whole balance of the offer asset.
// Only the router may send it.
type ExecuteSwapOperation struct {
	Operation SwapOperation `json:"operation"`
	To        *string       `json:"to,omitempty"`
	Deadline  *uint64       `json:"deadline,omitempty"`
}

// AssertMinimumReceive fails unless Receiver gained MinimumReceive of the
// asset since PrevBalance was taken.
type AssertMinimumReceive struct {
	AssetInfo      choicetypes.AssetInfo `json:"asset_info"`
	PrevBalance    math.Int              `json:"prev_balance"`
	MinimumReceive math.Int              `json:"minimum_receive"`
	Receiver       string                `json:"receiver"`
}

type Cw20HookMsg struct {
	ExecuteSwapOperations *ExecuteSwapOperations `json:"execute_swap_operations,omitempty"`
}

type QueryMsg struct {
	Config                        *struct{}                      `json:"config,omitempty"`
	SimulateSwapOperations        *SimulateSwapOperations        `json:"simulate_swap_operations,omitempty"`
	ReverseSimulateSwapOperations *ReverseSimulateSwapOperations `json:"reverse_simulate_swap_operations,omitempty"`
}

type SimulateSwapOperations struct {
	OfferAmount math.Int        `json:"offer_amount"`
	Operations  []SwapOperation `json:"operations"`
}

type ReverseSimulateSwapOperations struct {
	AskAmount  math.Int        `json:"ask_amount"`
	Operations []SwapOperation `json:"operations"`
}

type ConfigResponse struct {
	ChoiceFactory string `json:"choice_factory"`
}

// SimulateSwapOperationsResponse carries the final return amount of a
// simulation, or the required offer amount of a reverse simulation.
type SimulateSwapOperationsResponse struct {
	Amount math.Int `json:"amount"`
}

type MigrateMsg struct{}

func NewConfigQuery() QueryMsg {
	return QueryMsg{Config: &struct{}{}}
}

func NewSimulateSwapOperationsQuery(offerAmount math.Int, ops ...SwapOperation) QueryMsg {
	return QueryMsg{SimulateSwapOperations: &SimulateSwapOperations{OfferAmount: offerAmount, Operations: ops}}
}

func NewReverseSimulateSwapOperationsQuery(askAmount math.Int, ops ...SwapOperation) QueryMsg {
	return QueryMsg{ReverseSimulateSwapOperations: &ReverseSimulateSwapOperations{AskAmount: askAmount, Operations: ops}}
}
