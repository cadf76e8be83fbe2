package keeper

import (
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/pair/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

func loadPools(deps wasmtypes.Deps) (choicetypes.PairInfo, [2]choicetypes.Asset, error) {
	stored, err := pairInfo.Load(deps.Storage)
	if err != nil {
		return choicetypes.PairInfo{}, [2]choicetypes.Asset{}, err
	}
	pair := stored.ToNormal()
	pools, err := pair.QueryPools(deps.Querier)
	return pair, pools, err
}

func queryPool(deps wasmtypes.Deps) (types.PoolResponse, error) {
	pair, pools, err := loadPools(deps)
	if err != nil {
		return types.PoolResponse{}, err
	}
	total, err := choicetypes.QueryDenomTotalSupply(deps.Querier, pair.LiquidityToken)
	if err != nil {
		return types.PoolResponse{}, err
	}
	return types.PoolResponse{Assets: pools, TotalShare: total}, nil
}

// querySimulation prices offer against the current reserves.
func querySimulation(deps wasmtypes.Deps, offer choicetypes.Asset) (types.SimulationResponse, error) {
	if err := offer.Validate(); err != nil {
		return types.SimulationResponse{}, err
	}
	pair, pools, err := loadPools(deps)
	if err != nil {
		return types.SimulationResponse{}, err
	}
	offerIdx, err := sideOf(pools, offer.Info)
	if err != nil {
		return types.SimulationResponse{}, err
	}
	askIdx := 1 - offerIdx
	return ComputeSwap(
		pools[offerIdx].Amount, pools[askIdx].Amount, offer.Amount,
		pair.AssetDecimals[offerIdx], pair.AssetDecimals[askIdx],
	)
}

// queryReverseSimulation returns the offer needed to receive ask.
func queryReverseSimulation(deps wasmtypes.Deps, ask choicetypes.Asset) (types.ReverseSimulationResponse, error) {
	if err := ask.Validate(); err != nil {
		return types.ReverseSimulationResponse{}, err
	}
	_, pools, err := loadPools(deps)
	if err != nil {
		return types.ReverseSimulationResponse{}, err
	}
	askIdx, err := sideOf(pools, ask.Info)
	if err != nil {
		return types.ReverseSimulationResponse{}, err
	}
	return ComputeOfferAmount(pools[1-askIdx].Amount, pools[askIdx].Amount, ask.Amount)
}
