package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultMaxCallDepth bounds nested contract calls dispatched from one message.
const DefaultMaxCallDepth = 10

// Params are the host-level settings contracts observe.
type Params struct {
	// DenomCreationFee is charged by the token factory for every new denom.
	DenomCreationFee sdk.Coins `json:"denom_creation_fee"`
	MaxCallDepth     uint32    `json:"max_call_depth"`
}

func DefaultParams() Params {
	return Params{
		DenomCreationFee: sdk.NewCoins(),
		MaxCallDepth:     DefaultMaxCallDepth,
	}
}

func (p Params) Validate() error {
	if !p.DenomCreationFee.IsValid() {
		return fmt.Errorf("invalid denom creation fee: %s", p.DenomCreationFee)
	}
	if p.MaxCallDepth == 0 {
		return fmt.Errorf("max call depth must be positive")
	}
	return nil
}
