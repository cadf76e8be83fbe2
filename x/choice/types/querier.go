package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// QueryBalance returns the bank balance of account in denom.
func QueryBalance(q wasmtypes.Querier, account, denom string) (math.Int, error) {
	return q.Balance(account, denom)
}

// QueryTokenBalance returns the balance account holds on a token contract.
func QueryTokenBalance(q wasmtypes.Querier, contract, account string) (math.Int, error) {
	var res cw20types.BalanceResponse
	if err := q.Smart(contract, cw20types.NewBalanceQuery(account), &res); err != nil {
		return math.Int{}, err
	}
	if res.Balance.IsNil() {
		return math.ZeroInt(), nil
	}
	return res.Balance, nil
}

// QueryTokenInfo returns the metadata of a token contract.
func QueryTokenInfo(q wasmtypes.Querier, contract string) (cw20types.TokenInfoResponse, error) {
	var res cw20types.TokenInfoResponse
	err := q.Smart(contract, cw20types.NewTokenInfoQuery(), &res)
	return res, err
}

// QueryDenomTotalSupply returns the total supply of a token factory denom.
func QueryDenomTotalSupply(q wasmtypes.Querier, denom string) (math.Int, error) {
	return q.Supply(denom)
}

// QueryDenomCreationFee returns the token factory denom creation fee.
func QueryDenomCreationFee(q wasmtypes.Querier) (sdk.Coins, error) {
	return q.DenomCreationFee()
}
