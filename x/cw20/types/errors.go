package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the codespace of the token contract.
const ModuleName = "cw20"

// Token contract sentinel errors
var (
	ErrUnauthorized        = errors.Register(ModuleName, 2, "Unauthorized")
	ErrInvalidZeroAmount   = errors.Register(ModuleName, 3, "Invalid zero amount")
	ErrInsufficientFunds   = errors.Register(ModuleName, 4, "insufficient funds")
	ErrCannotSetOwnAccount = errors.Register(ModuleName, 5, "Cannot set to own account")
	ErrExpired             = errors.Register(ModuleName, 6, "Allowance is expired")
	ErrNoAllowance         = errors.Register(ModuleName, 7, "No allowance for this account")
	ErrCannotExceedCap     = errors.Register(ModuleName, 8, "Minting cannot exceed the cap")
	ErrInvalidTokenInfo    = errors.Register(ModuleName, 9, "invalid token info")
	ErrInvalidExpiration   = errors.Register(ModuleName, 10, "Invalid expiration value")
	ErrDuplicateBalance    = errors.Register(ModuleName, 11, "Duplicate initial balance addresses")
)
