package types

import (
	"cosmossdk.io/errors"
)

// Contract host sentinel errors
var (
	ErrUnknownCode        = errors.Register(ModuleName, 2, "unknown code id")
	ErrContractNotFound   = errors.Register(ModuleName, 3, "contract not found")
	ErrInsufficientFunds  = errors.Register(ModuleName, 4, "insufficient funds")
	ErrInvalidMsg         = errors.Register(ModuleName, 5, "invalid message")
	ErrUnauthorized       = errors.Register(ModuleName, 6, "unauthorized")
	ErrNotFound           = errors.Register(ModuleName, 7, "not found")
	ErrDenomExists        = errors.Register(ModuleName, 8, "denom already exists")
	ErrDenomNotFound      = errors.Register(ModuleName, 9, "denom does not exist")
	ErrInvalidSubaccount  = errors.Register(ModuleName, 10, "invalid subaccount id")
	ErrNotMigratable      = errors.Register(ModuleName, 11, "contract does not support migration")
	ErrNoReplyHandler     = errors.Register(ModuleName, 12, "contract does not handle replies")
	ErrParseResponse      = errors.Register(ModuleName, 13, "failed to parse message response")
	ErrInvalidAddress     = errors.Register(ModuleName, 14, "invalid address")
	ErrMaxCallDepth       = errors.Register(ModuleName, 15, "max call depth exceeded")
	ErrInvalidCoins       = errors.Register(ModuleName, 16, "invalid coins")
	ErrDuplicateCodeEntry = errors.Register(ModuleName, 17, "code already registered")
)
