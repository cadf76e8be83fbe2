package keeper

import (
	"encoding/json"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/choice-exchange/choice/x/wasm/types"
)

var _ types.Querier = querier{}

// querier is the chain view handed to a contract at a given call depth.
type querier struct {
	k     Keeper
	ctx   sdk.Context
	depth int
}

func (q querier) Balance(address, denom string) (math.Int, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return math.ZeroInt(), err
	}
	return q.k.GetBalance(q.ctx, addr, denom), nil
}

func (q querier) Supply(denom string) (math.Int, error) {
	return q.k.GetSupply(q.ctx, denom), nil
}

func (q querier) DenomCreationFee() (sdk.Coins, error) {
	return q.k.GetParams(q.ctx).DenomCreationFee, nil
}

func (q querier) Smart(contract string, req, res any) error {
	addr, err := parseAddress(contract)
	if err != nil {
		return err
	}
	bz, err := json.Marshal(req)
	if err != nil {
		return types.ErrInvalidMsg.Wrapf("encode query: %s", err)
	}

	cacheCtx, _ := q.ctx.CacheContext()
	out, err := q.k.query(cacheCtx, addr, bz, q.depth+1)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	if err := json.Unmarshal(out, res); err != nil {
		return types.ErrInvalidMsg.Wrapf("decode query response from %s: %s", contract, err)
	}
	return nil
}
