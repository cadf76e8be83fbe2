package types

import (
	"cosmossdk.io/errors"
)

// Forwarder sentinel errors
var (
	ErrNotNative         = errors.Register(ModuleName, 2, "Invalid asset: Expected a native token")
	ErrNoFunds           = errors.Register(ModuleName, 3, "No funds provided")
	ErrFundsMismatch     = errors.Register(ModuleName, 4, "Mismatched fund amount")
	ErrDenomMismatch     = errors.Register(ModuleName, 5, "Mismatched denomination")
	ErrInvalidSubaccount = errors.Register(ModuleName, 6, "Invalid burn auction subaccount ID")
	ErrInvalidAmount     = errors.Register(ModuleName, 7, "amount must be positive")
)
