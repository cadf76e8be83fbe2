package keeper

import (
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/choice-exchange/choice/x/cw20/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// tokenState is the stored token metadata.
type tokenState struct {
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Decimals    uint8                 `json:"decimals"`
	TotalSupply math.Int              `json:"total_supply"`
	Mint        *types.MinterResponse `json:"mint,omitempty"`
}

type allowance struct {
	Amount  math.Int          `json:"amount"`
	Expires *types.Expiration `json:"expires,omitempty"`
}

var (
	tokenInfo  = wasmtypes.NewItem[tokenState](types.TokenInfoKey)
	balances   = wasmtypes.NewMap[math.Int](types.BalancesKey)
	allowances = wasmtypes.NewMap[allowance](types.AllowancesKey)
)

func loadBalance(store storetypes.KVStore, addr sdk.AccAddress) (math.Int, error) {
	bal, ok, err := balances.MayLoad(store, addr)
	if err != nil {
		return math.Int{}, err
	}
	if !ok {
		return math.ZeroInt(), nil
	}
	return bal, nil
}

func saveBalance(store storetypes.KVStore, addr sdk.AccAddress, amount math.Int) error {
	if amount.IsZero() {
		balances.Remove(store, addr)
		return nil
	}
	return balances.Save(store, addr, amount)
}

func allowanceKey(owner, spender sdk.AccAddress) []byte {
	key := make([]byte, 0, 1+len(owner)+len(spender))
	key = append(key, byte(len(owner)))
	key = append(key, owner...)
	return append(key, spender...)
}

func loadAllowance(store storetypes.KVStore, owner, spender sdk.AccAddress) (allowance, error) {
	a, ok, err := allowances.MayLoad(store, allowanceKey(owner, spender))
	if err != nil {
		return allowance{}, err
	}
	if !ok {
		return allowance{Amount: math.ZeroInt()}, nil
	}
	return a, nil
}
