package types

import (
	"time"

	storetypes "cosmossdk.io/store/types"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BlockInfo is the block a contract call executes in.
type BlockInfo struct {
	Height  int64     `json:"height"`
	Time    time.Time `json:"time"`
	ChainID string    `json:"chain_id"`
}

// Seconds returns the block time as unix seconds, the unit deadlines are expressed in.
func (b BlockInfo) Seconds() uint64 {
	if b.Time.Unix() < 0 {
		return 0
	}
	return uint64(b.Time.Unix())
}

// ContractEnv identifies the contract being called.
type ContractEnv struct {
	Address string `json:"address"`
}

// Env is the environment passed to every contract entry point.
type Env struct {
	Block    BlockInfo   `json:"block"`
	Contract ContractEnv `json:"contract"`
}

// MessageInfo carries the caller and the funds transferred along with the call.
// Funds are already credited to the contract when an entry point runs.
type MessageInfo struct {
	Sender string    `json:"sender"`
	Funds  sdk.Coins `json:"funds"`
}

// Querier is the read-only view a contract has of the rest of the chain.
type Querier interface {
	// Balance returns the bank balance of address in denom.
	Balance(address, denom string) (math.Int, error)
	// Supply returns the total supply of denom.
	Supply(denom string) (math.Int, error)
	// DenomCreationFee returns the token factory fee for creating a denom.
	DenomCreationFee() (sdk.Coins, error)
	// Smart runs a JSON query against another contract and decodes the answer into res.
	Smart(contract string, req, res any) error
}

// Deps bundles what a contract may touch during a call.
type Deps struct {
	Storage storetypes.KVStore
	Querier Querier
	Logger  log.Logger
}
