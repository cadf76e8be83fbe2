package keeper

import (
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/factory/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

func queryConfig(deps wasmtypes.Deps) (types.ConfigResponse, error) {
	cfg, err := configItem.Load(deps.Storage)
	if err != nil {
		return types.ConfigResponse{}, err
	}
	res := types.ConfigResponse{
		Owner:            cfg.Owner.String(),
		PairCodeID:       cfg.PairCodeID,
		BurnAddress:      cfg.BurnAddress.String(),
		FeeWalletAddress: cfg.FeeWalletAddress.String(),
	}
	if !cfg.ProposedOwner.Empty() {
		proposed := cfg.ProposedOwner.String()
		res.ProposedOwner = &proposed
	}
	return res, nil
}

func pairKeyOf(infos [2]choicetypes.AssetInfo) ([]byte, error) {
	var raw [2]choicetypes.AssetInfoRaw
	for i, info := range infos {
		r, err := info.ToRaw()
		if err != nil {
			return nil, err
		}
		raw[i] = r
	}
	return choicetypes.PairKey(raw), nil
}

func queryPair(deps wasmtypes.Deps, infos [2]choicetypes.AssetInfo) (choicetypes.PairInfo, error) {
	key, err := pairKeyOf(infos)
	if err != nil {
		return choicetypes.PairInfo{}, err
	}
	stored, found, err := pairs.MayLoad(deps.Storage, key)
	if err != nil {
		return choicetypes.PairInfo{}, err
	}
	if !found {
		return choicetypes.PairInfo{}, types.ErrPairNotFound.Wrapf("%s-%s", infos[0], infos[1])
	}
	return stored.ToNormal(), nil
}

// queryPairs pages through the registry in pair key order.
func queryPairs(deps wasmtypes.Deps, startAfter *[2]choicetypes.AssetInfo, limit *uint32) (types.PairsResponse, error) {
	n := types.DefaultPairsLimit
	if limit != nil {
		n = min(int(*limit), types.MaxPairsLimit)
	}
	var start []byte
	if startAfter != nil {
		key, err := pairKeyOf(*startAfter)
		if err != nil {
			return types.PairsResponse{}, err
		}
		start = key
	}

	res := types.PairsResponse{Pairs: []choicetypes.PairInfo{}}
	if n == 0 {
		return res, nil
	}
	err := pairs.Range(deps.Storage, start, n, func(_ []byte, stored choicetypes.PairInfoRaw) error {
		res.Pairs = append(res.Pairs, stored.ToNormal())
		return nil
	})
	return res, err
}

func queryNativeTokenDecimals(deps wasmtypes.Deps, denom string) (types.NativeTokenDecimalsResponse, error) {
	decimals, found, err := nativeDecimals.MayLoad(deps.Storage, []byte(denom))
	if err != nil {
		return types.NativeTokenDecimalsResponse{}, err
	}
	if !found {
		return types.NativeTokenDecimalsResponse{}, wasmtypes.ErrNotFound.Wrapf("decimals of %s", denom)
	}
	return types.NativeTokenDecimalsResponse{Decimals: decimals}, nil
}
