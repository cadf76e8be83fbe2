package types

import (
	"cosmossdk.io/errors"
)

// Router sentinel errors
var (
	ErrNoOperations            = errors.Register(ModuleName, 2, "must provide operations")
	ErrMultipleOutputToken     = errors.Register(ModuleName, 3, "invalid operations; multiple output token")
	ErrUnauthorized            = errors.Register(ModuleName, 4, "unauthorized")
	ErrMinimumReceiveAssertion = errors.Register(ModuleName, 5, "assertion failed; minimum receive amount")
	ErrInvalidOperation        = errors.Register(ModuleName, 6, "invalid swap operation")
	ErrZeroOfferAmount         = errors.Register(ModuleName, 7, "router holds none of the offer asset")
)
