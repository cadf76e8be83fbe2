package types

import (
	"cosmossdk.io/math"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
)

// InstantiateMsg is sent by the factory when it creates a pair.
type InstantiateMsg struct {
	AssetInfos       [2]choicetypes.AssetInfo `json:"asset_infos"`
	AssetDecimals    [2]uint8                 `json:"asset_decimals"`
	BurnAddress      string                   `json:"burn_address"`
	FeeWalletAddress string                   `json:"fee_wallet_address"`
}

// ExecuteMsg is the pair's execute message. Exactly one field is set.
type ExecuteMsg struct {
	// Receive is the token hook; its msg decodes into Cw20HookMsg.
	Receive           *cw20types.ReceiveMsg `json:"receive,omitempty"`
	ProvideLiquidity  *ProvideLiquidity     `json:"provide_liquidity,omitempty"`
	WithdrawLiquidity *WithdrawLiquidity    `json:"withdraw_liquidity,omitempty"`
	Swap              *Swap                 `json:"swap,omitempty"`
}

type ProvideLiquidity struct {
	Assets            [2]choicetypes.Asset `json:"assets"`
	Receiver          *string              `json:"receiver,omitempty"`
	Deadline          *uint64              `json:"deadline,omitempty"`
	SlippageTolerance *math.LegacyDec      `json:"slippage_tolerance,omitempty"`
}

// WithdrawLiquidity burns Amount of the attached liquidity token.
type WithdrawLiquidity struct {
	Amount    math.Int              `json:"amount"`
	MinAssets *[2]choicetypes.Asset `json:"min_assets,omitempty"`
	Deadline  *uint64               `json:"deadline,omitempty"`
}

// Swap trades a native offer asset. Token offers go through Receive.
type Swap struct {
	OfferAsset  choicetypes.Asset `json:"offer_asset"`
	BeliefPrice *math.LegacyDec   `json:"belief_price,omitempty"`
	MaxSpread   *math.LegacyDec   `json:"max_spread,omitempty"`
	To          *string           `json:"to,omitempty"`
	Deadline    *uint64           `json:"deadline,omitempty"`
}

// Cw20HookMsg is carried inside a token Send to the pair.
type Cw20HookMsg struct {
	Swap *SwapHook `json:"swap,omitempty"`
}

type SwapHook struct {
	BeliefPrice *math.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread   *math.LegacyDec `json:"max_spread,omitempty"`
	To          *string         `json:"to,omitempty"`
	Deadline    *uint64         `json:"deadline,omitempty"`
}

// QueryMsg is the pair's query message. Exactly one field is set.
type QueryMsg struct {
	Pair              *struct{}          `json:"pair,omitempty"`
	Pool              *struct{}          `json:"pool,omitempty"`
	Simulation        *SimulationQuery   `json:"simulation,omitempty"`
	ReverseSimulation *ReverseSimulation `json:"reverse_simulation,omitempty"`
}

type SimulationQuery struct {
	OfferAsset choicetypes.Asset `json:"offer_asset"`
}

type ReverseSimulation struct {
	AskAsset choicetypes.Asset `json:"ask_asset"`
}

// PoolResponse reports the live reserves and the liquidity token supply.
type PoolResponse struct {
	Assets     [2]choicetypes.Asset `json:"assets"`
	TotalShare math.Int             `json:"total_share"`
}

type SimulationResponse struct {
	ReturnAmount     math.Int `json:"return_amount"`
	SpreadAmount     math.Int `json:"spread_amount"`
	CommissionAmount math.Int `json:"commission_amount"`
}

type ReverseSimulationResponse struct {
	OfferAmount      math.Int `json:"offer_amount"`
	SpreadAmount     math.Int `json:"spread_amount"`
	CommissionAmount math.Int `json:"commission_amount"`
}

type MigrateMsg struct{}

// NewPairQuery returns the query answered with the pair's PairInfo.
func NewPairQuery() QueryMsg {
	return QueryMsg{Pair: &struct{}{}}
}

func NewPoolQuery() QueryMsg {
	return QueryMsg{Pool: &struct{}{}}
}

func NewSimulationQuery(offer choicetypes.Asset) QueryMsg {
	return QueryMsg{Simulation: &SimulationQuery{OfferAsset: offer}}
}

func NewReverseSimulationQuery(ask choicetypes.Asset) QueryMsg {
	return QueryMsg{ReverseSimulation: &ReverseSimulation{AskAsset: ask}}
}
