package types

import (
	"cosmossdk.io/errors"
)

// Factory contract sentinel errors
var (
	ErrSameAsset               = errors.Register(ModuleName, 2, "same asset")
	ErrInvalidAsset            = errors.Register(ModuleName, 3, "asset is invalid")
	ErrPairExists              = errors.Register(ModuleName, 4, "Pair already exists")
	ErrPairNotFound            = errors.Register(ModuleName, 5, "pair not found")
	ErrInsufficientCreationFee = errors.Register(ModuleName, 6, "Insufficient funds for the denom creation fee")
	ErrInvalidReplyID          = errors.Register(ModuleName, 7, "invalid reply msg")
	ErrSubMsgFailed            = errors.Register(ModuleName, 8, "Submessage error")
	ErrParseReply              = errors.Register(ModuleName, 9, "failed to parse MsgInstantiateContractResponse")
	ErrInvalidDenom            = errors.Register(ModuleName, 10, "invalid denom format")
	ErrZeroVerificationBalance = errors.Register(ModuleName, 11, "a balance greater than zero is required by the factory for verification")
	ErrInsufficientSeedFunds   = errors.Register(ModuleName, 12, "attached funds do not cover the native seed liquidity")
	ErrInvalidAmount           = errors.Register(ModuleName, 13, "invalid amount")
)
