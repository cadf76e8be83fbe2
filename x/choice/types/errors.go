package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the codespace shared by every choice contract.
const ModuleName = "choice"

// Shared sentinel errors
var (
	ErrOverflow            = errors.Register(ModuleName, 2, "overflow")
	ErrConversionOverflow  = errors.Register(ModuleName, 3, "conversion overflow")
	ErrDivideByZero        = errors.Register(ModuleName, 4, "divide by zero")
	ErrInvalidAsset        = errors.Register(ModuleName, 5, "invalid asset")
	ErrInvalidAddress      = errors.Register(ModuleName, 6, "invalid address")
	ErrInvalidMsg          = errors.Register(ModuleName, 7, "invalid message")
	ErrUnauthorized        = errors.Register(ModuleName, 8, "Unauthorized")
	ErrNoOwnershipProposal = errors.Register(ModuleName, 9, "No ownership proposal for you")
	ErrMigrateVersion      = errors.Register(ModuleName, 10, "cannot migrate contract version")
	ErrNativeFundsMismatch = errors.Register(ModuleName, 11, "Native token balance mismatch between the argument and the transferred")
	ErrInvalidDecimal      = errors.Register(ModuleName, 12, "invalid decimal")
)
